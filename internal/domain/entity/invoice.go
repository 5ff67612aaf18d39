package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItem is one priced service or product on an invoice
type LineItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// GrossValue returns price * quantity, unrounded
func (li LineItem) GrossValue() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ShopIdentity is the shop contact block printed on receipts. Snapshotted
// into each invoice alongside the tax regime.
type ShopIdentity struct {
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:255" json:"email"`
}

// Invoice represents a saved sale. InvoiceNumber and Date are immutable
// after creation; edits replace the total and set UpdatedAtMs, soft
// deletes set DeletedAtMs and are reversible.
type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber string     `gorm:"size:20;unique;not null" json:"invoice_number"`
	Date          int64      `gorm:"not null;index" json:"date"` // epoch ms
	ClientID      *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`

	// Client contact is flattened onto the invoice so that each field can
	// serve as an independent search index.
	ClientName  string `gorm:"size:255;index" json:"client_name"`
	ClientPhone string `gorm:"size:50;index" json:"client_phone"`

	LineItems     []LineItem         `gorm:"serializer:json" json:"line_items"`
	Tip           decimal.Decimal    `gorm:"type:decimal(12,2)" json:"tip"`
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	Total         Amount             `gorm:"embedded;embeddedPrefix:total_" json:"total"`

	// Settings snapshot taken at save time.
	Regime TaxRegime    `gorm:"embedded;embeddedPrefix:tax_" json:"regime"`
	Shop   ShopIdentity `gorm:"embedded;embeddedPrefix:shop_" json:"shop"`

	UpdatedAtMs *int64 `gorm:"column:updated_at_ms" json:"updated_at,omitempty"`
	DeletedAtMs *int64 `gorm:"column:deleted_at_ms;index" json:"deleted_at,omitempty"`
	UpdateNote  string `gorm:"type:text" json:"update_note,omitempty"`
	DeleteNote  string `gorm:"type:text" json:"delete_note,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Client *Client `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// IsDeleted reports whether the invoice is soft-deleted
func (i *Invoice) IsDeleted() bool {
	return i.DeletedAtMs != nil
}

// ReportRange is a time window in epoch milliseconds, inclusive of both
// bounds at second granularity (00:00:00 through 23:59:59).
type ReportRange struct {
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`
}

// ReportSummary holds the folded totals of a set of invoices. Sums are
// unrounded; display precision is the caller's choice.
type ReportSummary struct {
	SubTotal decimal.Decimal `json:"sub_total"`
	Total    decimal.Decimal `json:"total"`
	Tip      decimal.Decimal `json:"tip"`
	TaxA     decimal.Decimal `json:"tax_a"`
	TaxB     decimal.Decimal `json:"tax_b"`
	ShowTaxA bool            `json:"show_tax_a"`
	ShowTaxB bool            `json:"show_tax_b"`
}
