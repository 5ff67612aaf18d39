package service

import (
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/pascallapointe/HairBill-sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// legacyDisabledRegimeTotals preserves a long-standing behavior: a
// disabled regime returns the gross as total but zero subtotal and taxes.
// Historical receipts were issued this way, so it stays until the product
// owners decide to change it deliberately.
const legacyDisabledRegimeTotals = true

var one = decimal.NewFromInt(1)

// taxStrategy turns a gross line-item total into an Amount under one
// specific regime shape.
type taxStrategy func(gross decimal.Decimal, r *entity.TaxRegime) entity.Amount

// BillingService computes invoice amounts. It is pure: no store access,
// safe for concurrent use.
type BillingService struct{}

// NewBillingService creates a new billing service
func NewBillingService() *BillingService {
	return &BillingService{}
}

// ComputeAmount computes subtotal, taxes and total for a set of line
// items under the given regime. Rates and prices are taken as-is; a
// negative input yields a mathematically consistent negative Amount
// rather than an error, since validation belongs to the caller.
func (s *BillingService) ComputeAmount(items []entity.LineItem, regime *entity.TaxRegime) entity.Amount {
	gross := decimal.Zero
	for _, item := range items {
		gross = gross.Add(item.GrossValue())
	}
	return strategyFor(regime)(gross, regime)
}

// strategyFor resolves the regime flags to one of the closed set of
// named strategies. Every combination is reachable and independently
// tested; nested branching inside the math is avoided on purpose.
func strategyFor(r *entity.TaxRegime) taxStrategy {
	switch {
	case !r.Enabled:
		return taxDisabled
	case r.PriceIncludesTax && r.UseSecondTax && r.Compounded:
		return extractDualCompound
	case r.PriceIncludesTax && r.UseSecondTax:
		return extractDualFlat
	case r.PriceIncludesTax:
		return extractSingle
	case r.UseSecondTax && r.Compounded:
		return addDualCompound
	case r.UseSecondTax:
		return addDualFlat
	default:
		return addSingle
	}
}

func taxDisabled(gross decimal.Decimal, _ *entity.TaxRegime) entity.Amount {
	if legacyDisabledRegimeTotals {
		return entity.Amount{
			SubTotal: decimal.Zero,
			TaxA:     decimal.Zero,
			TaxB:     decimal.Zero,
			Total:    money.Round(gross),
		}
	}
	rounded := money.Round(gross)
	return entity.Amount{SubTotal: rounded, Total: rounded}
}

// Additive path: prices exclude tax, taxes go on top.

func addSingle(gross decimal.Decimal, r *entity.TaxRegime) entity.Amount {
	taxA := r.TaxARate.Mul(gross)
	return entity.Amount{
		SubTotal: money.Round(gross),
		TaxA:     money.Round(taxA),
		TaxB:     decimal.Zero,
		Total:    money.Round(gross.Add(taxA)),
	}
}

func addDualFlat(gross decimal.Decimal, r *entity.TaxRegime) entity.Amount {
	taxA := r.TaxARate.Mul(gross)
	taxB := r.TaxBRate.Mul(gross)
	return entity.Amount{
		SubTotal: money.Round(gross),
		TaxA:     money.Round(taxA),
		TaxB:     money.Round(taxB),
		Total:    money.Round(gross.Add(taxA).Add(taxB)),
	}
}

func addDualCompound(gross decimal.Decimal, r *entity.TaxRegime) entity.Amount {
	taxA := r.TaxARate.Mul(gross)
	taxB := r.TaxBRate.Mul(gross.Add(taxA)) // second tax on a base that includes the first
	return entity.Amount{
		SubTotal: money.Round(gross),
		TaxA:     money.Round(taxA),
		TaxB:     money.Round(taxB),
		Total:    money.Round(gross.Add(taxA).Add(taxB)),
	}
}

// Extraction path: prices already contain tax, the gross is decomposed
// back into its pre-tax components. The gross stays as the total; the
// independently rounded parts may drift from it by at most one cent.

func extractSingle(gross decimal.Decimal, r *entity.TaxRegime) entity.Amount {
	subTotal := gross.Div(one.Add(r.TaxARate))
	return entity.Amount{
		SubTotal: money.Round(subTotal),
		TaxA:     money.Round(r.TaxARate.Mul(subTotal)),
		TaxB:     decimal.Zero,
		Total:    gross,
	}
}

func extractDualFlat(gross decimal.Decimal, r *entity.TaxRegime) entity.Amount {
	subTotal := gross.Div(one.Add(r.TaxARate).Add(r.TaxBRate))
	return entity.Amount{
		SubTotal: money.Round(subTotal),
		TaxA:     money.Round(r.TaxARate.Mul(subTotal)),
		TaxB:     money.Round(r.TaxBRate.Mul(subTotal)),
		Total:    gross,
	}
}

func extractDualCompound(gross decimal.Decimal, r *entity.TaxRegime) entity.Amount {
	// Effective second-tax rate on the pre-tax base is taxBRate*(1+taxARate).
	effectiveB := r.TaxBRate.Mul(one.Add(r.TaxARate))
	subTotal := gross.Div(one.Add(r.TaxARate).Add(effectiveB))
	return entity.Amount{
		SubTotal: money.Round(subTotal),
		TaxA:     money.Round(r.TaxARate.Mul(subTotal)),
		TaxB:     money.Round(effectiveB.Mul(subTotal)),
		Total:    gross,
	}
}
