package request

// ClientRequest represents a client create or update request
type ClientRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}
