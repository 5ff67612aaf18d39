package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopSettings is the single row of shop-wide configuration: the shop
// identity printed on receipts and the tax regime applied to new
// invoices. Invoices embed a copy of both at save time.
type ShopSettings struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Shop      ShopIdentity `gorm:"embedded;embeddedPrefix:shop_" json:"shop"`
	Regime    TaxRegime    `gorm:"embedded;embeddedPrefix:tax_" json:"regime"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *ShopSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShopSettings model
func (ShopSettings) TableName() string {
	return "shop_settings"
}
