package entity

import "github.com/shopspring/decimal"

// TaxRegime holds the tax flags and rates active for one invoice. It is
// copied verbatim into every invoice at save time so that later edits to
// the shop settings never change historical documents.
type TaxRegime struct {
	Enabled          bool            `gorm:"default:false" json:"enabled"`
	UseSecondTax     bool            `gorm:"default:false" json:"use_second_tax"`
	Compounded       bool            `gorm:"default:false" json:"compounded"`
	PriceIncludesTax bool            `gorm:"default:false" json:"price_includes_tax"`
	TaxARate         decimal.Decimal `gorm:"type:decimal(8,6)" json:"tax_a_rate"`
	TaxBRate         decimal.Decimal `gorm:"type:decimal(8,6)" json:"tax_b_rate"`

	// Display-only fields, never used in arithmetic.
	TaxAName   string `gorm:"size:50" json:"tax_a_name"`
	TaxBName   string `gorm:"size:50" json:"tax_b_name"`
	TaxANumber string `gorm:"size:50" json:"tax_a_number"`
	TaxBNumber string `gorm:"size:50" json:"tax_b_number"`
}

// Amount is the result of a tax computation. Each field is rounded to
// 2 decimals exactly once, at the end of the computation.
type Amount struct {
	SubTotal decimal.Decimal `gorm:"type:decimal(12,2)" json:"sub_total"`
	TaxA     decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax_a"`
	TaxB     decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax_b"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
}
