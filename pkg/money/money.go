package money

import "github.com/shopspring/decimal"

// oneCent is the tolerance allowed between a total and the sum of its
// rounded components.
var oneCent = decimal.New(1, -2)

// Round snaps an amount to 2 decimal places, half away from zero.
// Intermediate tax arithmetic must stay unrounded; call this once per
// field when a computation is complete.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinOneCent reports whether two amounts differ by at most one cent.
// Decomposing a tax-inclusive gross rounds subtotal and taxes
// independently of the gross, so the parts can drift a cent from it.
func WithinOneCent(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(oneCent)
}
