package request

import (
	"github.com/google/uuid"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one priced line on an invoice or a billing preview
type LineItemRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
}

// ToEntity converts the request line to its entity form
func (r LineItemRequest) ToEntity() entity.LineItem {
	return entity.LineItem{Name: r.Name, Price: r.Price, Quantity: r.Quantity}
}

// LineItemsToEntities converts a slice of request lines
func LineItemsToEntities(items []LineItemRequest) []entity.LineItem {
	out := make([]entity.LineItem, len(items))
	for i, it := range items {
		out[i] = it.ToEntity()
	}
	return out
}

// CreateInvoiceRequest represents an invoice creation request. The
// invoice number, date, totals and settings snapshot are server-assigned.
type CreateInvoiceRequest struct {
	ClientID      *uuid.UUID         `json:"client_id"`
	ClientName    string             `json:"client_name" binding:"max=255"`
	ClientPhone   string             `json:"client_phone" binding:"max=50"`
	LineItems     []LineItemRequest  `json:"line_items" binding:"required,min=1,dive"`
	Tip           decimal.Decimal    `json:"tip"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
}

// UpdateInvoiceRequest represents an invoice update request
type UpdateInvoiceRequest struct {
	ClientID      *uuid.UUID         `json:"client_id"`
	ClientName    string             `json:"client_name" binding:"max=255"`
	ClientPhone   string             `json:"client_phone" binding:"max=50"`
	LineItems     []LineItemRequest  `json:"line_items" binding:"required,min=1,dive"`
	Tip           decimal.Decimal    `json:"tip"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Note          string             `json:"note" binding:"max=500"`
}

// DeleteInvoiceRequest carries the reason an invoice is being voided
type DeleteInvoiceRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// ComputeAmountRequest represents a billing preview request. The regime
// is optional; when absent the current shop settings apply.
type ComputeAmountRequest struct {
	LineItems []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
	Regime    *entity.TaxRegime `json:"regime"`
}
