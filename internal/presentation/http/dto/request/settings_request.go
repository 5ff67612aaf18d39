package request

import (
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest replaces the shop identity and tax regime
type UpdateSettingsRequest struct {
	Shop struct {
		Name    string `json:"name" binding:"max=255"`
		Address string `json:"address" binding:"max=1000"`
		Phone   string `json:"phone" binding:"max=50"`
		Email   string `json:"email" binding:"omitempty,email"`
	} `json:"shop"`
	Regime struct {
		Enabled          bool            `json:"enabled"`
		UseSecondTax     bool            `json:"use_second_tax"`
		Compounded       bool            `json:"compounded"`
		PriceIncludesTax bool            `json:"price_includes_tax"`
		TaxARate         decimal.Decimal `json:"tax_a_rate"`
		TaxBRate         decimal.Decimal `json:"tax_b_rate"`
		TaxAName         string          `json:"tax_a_name" binding:"max=50"`
		TaxBName         string          `json:"tax_b_name" binding:"max=50"`
		TaxANumber       string          `json:"tax_a_number" binding:"max=50"`
		TaxBNumber       string          `json:"tax_b_number" binding:"max=50"`
	} `json:"regime"`
}

// ToShopIdentity converts the shop block to its entity form
func (r *UpdateSettingsRequest) ToShopIdentity() entity.ShopIdentity {
	return entity.ShopIdentity{
		Name:    r.Shop.Name,
		Address: r.Shop.Address,
		Phone:   r.Shop.Phone,
		Email:   r.Shop.Email,
	}
}

// ToTaxRegime converts the regime block to its entity form
func (r *UpdateSettingsRequest) ToTaxRegime() entity.TaxRegime {
	return entity.TaxRegime{
		Enabled:          r.Regime.Enabled,
		UseSecondTax:     r.Regime.UseSecondTax,
		Compounded:       r.Regime.Compounded,
		PriceIncludesTax: r.Regime.PriceIncludesTax,
		TaxARate:         r.Regime.TaxARate,
		TaxBRate:         r.Regime.TaxBRate,
		TaxAName:         r.Regime.TaxAName,
		TaxBName:         r.Regime.TaxBName,
		TaxANumber:       r.Regime.TaxANumber,
		TaxBNumber:       r.Regime.TaxBNumber,
	}
}
