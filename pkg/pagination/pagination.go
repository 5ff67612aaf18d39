package pagination

// Cursor-based pagination keyed on an invoice's date (epoch milliseconds).
// The cursor is the ordering-field value of the last record the caller has
// seen; the server holds no cursor state between calls.

// CursorParams represents input parameters for cursor-based pagination
type CursorParams struct {
	After *int64 `form:"after" json:"after"` // date of the last seen record
	Limit int    `form:"limit" json:"limit"`
}

// DefaultCursorParams returns default cursor pagination values
func DefaultCursorParams() *CursorParams {
	return &CursorParams{Limit: 15}
}

// Validate ensures cursor pagination parameters are within valid ranges
func (c *CursorParams) Validate() {
	if c.Limit < 1 {
		c.Limit = 15
	}
	if c.Limit > 100 {
		c.Limit = 100
	}
}

// CursorPage represents one page of results plus pagination metadata
type CursorPage[T any] struct {
	Items      []T    `json:"items"`
	HasMore    bool   `json:"has_more"`
	NextCursor *int64 `json:"next_cursor,omitempty"`
	Limit      int    `json:"limit"`
}

// NewCursorPage builds a page from fetched items. hasMore is supplied by
// the caller because exhaustion is query-specific: a plain list knows it
// from the row count, a merged multi-branch search only from its branches.
func NewCursorPage[T any](items []T, limit int, hasMore bool, cursorOf func(T) int64) *CursorPage[T] {
	page := &CursorPage[T]{
		Items:   items,
		HasMore: hasMore,
		Limit:   limit,
	}
	if len(items) > 0 {
		next := cursorOf(items[len(items)-1])
		page.NextCursor = &next
	}
	return page
}
