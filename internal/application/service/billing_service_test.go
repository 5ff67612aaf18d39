package service

import (
	"testing"

	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/pascallapointe/HairBill-sub000/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(price string, qty int) entity.LineItem {
	return entity.LineItem{Price: decimal.RequireFromString(price), Quantity: qty}
}

// Canadian GST/QST rates, the regime this engine grew up with.
func dualRegime(compounded, inclusive bool) *entity.TaxRegime {
	return &entity.TaxRegime{
		Enabled:          true,
		UseSecondTax:     true,
		Compounded:       compounded,
		PriceIncludesTax: inclusive,
		TaxARate:         decimal.RequireFromString("0.05"),
		TaxBRate:         decimal.RequireFromString("0.09975"),
	}
}

func assertAmount(t *testing.T, got entity.Amount, subTotal, taxA, taxB, total string) {
	t.Helper()
	assert.True(t, got.SubTotal.Equal(decimal.RequireFromString(subTotal)), "subtotal = %s, want %s", got.SubTotal, subTotal)
	assert.True(t, got.TaxA.Equal(decimal.RequireFromString(taxA)), "taxA = %s, want %s", got.TaxA, taxA)
	assert.True(t, got.TaxB.Equal(decimal.RequireFromString(taxB)), "taxB = %s, want %s", got.TaxB, taxB)
	assert.True(t, got.Total.Equal(decimal.RequireFromString(total)), "total = %s, want %s", got.Total, total)
}

func TestComputeAmount_DisabledRegime(t *testing.T) {
	s := NewBillingService()

	got := s.ComputeAmount(
		[]entity.LineItem{item("45.50", 2), item("9.00", 1)},
		&entity.TaxRegime{Enabled: false},
	)

	// A disabled regime keeps the gross as total but reports zero
	// subtotal and taxes.
	assertAmount(t, got, "0", "0", "0", "100.00")
}

func TestComputeAmount_SingleTax(t *testing.T) {
	s := NewBillingService()
	regime := &entity.TaxRegime{
		Enabled:  true,
		TaxARate: decimal.RequireFromString("0.05"),
	}

	got := s.ComputeAmount([]entity.LineItem{item("100.00", 1)}, regime)
	assertAmount(t, got, "100.00", "5.00", "0", "105.00")
}

func TestComputeAmount_DualTaxFlat(t *testing.T) {
	s := NewBillingService()

	got := s.ComputeAmount([]entity.LineItem{item("25.00", 4)}, dualRegime(false, false))

	// QST on 100 is 9.975, rounded half up once at the end.
	assertAmount(t, got, "100.00", "5.00", "9.98", "114.98")
}

func TestComputeAmount_DualTaxCompounded(t *testing.T) {
	s := NewBillingService()

	got := s.ComputeAmount([]entity.LineItem{item("100.00", 1)}, dualRegime(true, false))

	// Second tax on 105.00: 10.47375 -> 10.47.
	assertAmount(t, got, "100.00", "5.00", "10.47", "115.47")
}

func TestComputeAmount_CompoundingChangesTaxB(t *testing.T) {
	s := NewBillingService()
	items := []entity.LineItem{item("100.00", 1)}

	flat := s.ComputeAmount(items, dualRegime(false, false))
	compounded := s.ComputeAmount(items, dualRegime(true, false))

	assert.False(t, flat.TaxB.Equal(compounded.TaxB),
		"flat and compounded taxB should differ when taxARate > 0")
}

func TestComputeAmount_TaxInclusiveDecomposition(t *testing.T) {
	s := NewBillingService()

	got := s.ComputeAmount([]entity.LineItem{item("114.98", 1)}, dualRegime(false, true))

	assertAmount(t, got, "100.00", "5.00", "9.98", "114.98")
}

func TestComputeAmount_TaxInclusiveCompoundedDecomposition(t *testing.T) {
	s := NewBillingService()

	got := s.ComputeAmount([]entity.LineItem{item("115.47", 1)}, dualRegime(true, true))

	assertAmount(t, got, "100.00", "5.00", "10.47", "115.47")
}

func TestComputeAmount_InclusiveTotalWithinOneCentOfParts(t *testing.T) {
	s := NewBillingService()

	// Gross values that do not decompose cleanly; the unrounded total may
	// sit up to one cent away from the independently rounded parts.
	for _, gross := range []string{"10.01", "99.99", "114.99", "0.03", "1234.56"} {
		got := s.ComputeAmount([]entity.LineItem{item(gross, 1)}, dualRegime(false, true))
		parts := got.SubTotal.Add(got.TaxA).Add(got.TaxB)
		assert.True(t, money.WithinOneCent(got.Total, parts),
			"gross %s: total %s vs parts %s", gross, got.Total, parts)
	}
}

func TestComputeAmount_DecompositionRoundTrip(t *testing.T) {
	s := NewBillingService()

	subtotals := []string{"0", "0.01", "9.99", "100.00", "123.45", "9999.99"}
	regimes := []*entity.TaxRegime{
		dualRegime(false, false),
		dualRegime(true, false),
		{Enabled: true, TaxARate: decimal.RequireFromString("0.05")},
		{Enabled: true, TaxARate: decimal.RequireFromString("0.15")},
	}

	for _, sub := range subtotals {
		for _, forward := range regimes {
			want := decimal.RequireFromString(sub)
			gross := s.ComputeAmount([]entity.LineItem{{Price: want, Quantity: 1}}, forward)

			reverse := *forward
			reverse.PriceIncludesTax = true
			got := s.ComputeAmount([]entity.LineItem{{Price: gross.Total, Quantity: 1}}, &reverse)

			assert.True(t, money.WithinOneCent(got.SubTotal, want),
				"subtotal %s via rates (%s, %s, compounded=%v): got back %s",
				sub, forward.TaxARate, forward.TaxBRate, forward.Compounded, got.SubTotal)
		}
	}
}

func TestComputeAmount_Idempotent(t *testing.T) {
	s := NewBillingService()
	items := []entity.LineItem{item("39.95", 3), item("12.50", 1)}
	regime := dualRegime(true, false)

	first := s.ComputeAmount(items, regime)
	second := s.ComputeAmount(items, regime)

	require.True(t, first.SubTotal.Equal(second.SubTotal))
	require.True(t, first.TaxA.Equal(second.TaxA))
	require.True(t, first.TaxB.Equal(second.TaxB))
	require.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, first.Total.String(), second.Total.String())
}

func TestComputeAmount_NegativeInputsStayConsistent(t *testing.T) {
	s := NewBillingService()

	// Validation is the caller's job; the engine just has to produce a
	// consistent Amount without blowing up.
	got := s.ComputeAmount([]entity.LineItem{item("-50.00", 2)}, dualRegime(false, false))

	assertAmount(t, got, "-100.00", "-5.00", "-9.98", "-114.98")

	negRate := &entity.TaxRegime{Enabled: true, TaxARate: decimal.RequireFromString("-0.05")}
	got = s.ComputeAmount([]entity.LineItem{item("100.00", 1)}, negRate)
	assertAmount(t, got, "100.00", "-5.00", "0", "95.00")
}

func TestComputeAmount_NoItems(t *testing.T) {
	s := NewBillingService()

	got := s.ComputeAmount(nil, dualRegime(false, false))
	assertAmount(t, got, "0", "0", "0", "0")
}
