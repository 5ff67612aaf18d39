package service

import (
	"testing"
	"time"

	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func rangeBounds(t *testing.T, rng entity.ReportRange) (time.Time, time.Time) {
	t.Helper()
	return time.UnixMilli(rng.StartTime), time.UnixMilli(rng.EndTime)
}

func TestRangeByFormat_Monthly(t *testing.T) {
	s := NewReportService(nil)

	rng, err := s.RangeByFormat(2024, intPtr(2), true, nil)
	require.NoError(t, err)

	start, end := rangeBounds(t, rng)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local), start)
	// 2024 is a leap year, February runs to the 29th.
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.Local), end)
}

func TestRangeByFormat_MonthlyNonLeapFebruary(t *testing.T) {
	s := NewReportService(nil)

	rng, err := s.RangeByFormat(2023, intPtr(2), true, nil)
	require.NoError(t, err)

	_, end := rangeBounds(t, rng)
	assert.Equal(t, time.Date(2023, time.February, 28, 23, 59, 59, 0, time.Local), end)
}

func TestRangeByFormat_AnnualDefaultsToCalendarYear(t *testing.T) {
	s := NewReportService(nil)

	rng, err := s.RangeByFormat(2024, nil, false, nil)
	require.NoError(t, err)

	start, end := rangeBounds(t, rng)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.Local), end)
}

func TestRangeByFormat_FiscalAnnual(t *testing.T) {
	s := NewReportService(nil)

	// Fiscal year starting in April runs through March of the next year.
	rng, err := s.RangeByFormat(2024, intPtr(4), false, nil)
	require.NoError(t, err)

	start, end := rangeBounds(t, rng)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, time.March, 31, 23, 59, 59, 0, time.Local), end)
}

func TestRangeByFormat_Quarterly(t *testing.T) {
	s := NewReportService(nil)

	tests := []struct {
		name       string
		year       int
		startMonth int
		quarter    int
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			name: "first calendar quarter", year: 2024, startMonth: 1, quarter: 1,
			wantStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, time.March, 31, 23, 59, 59, 0, time.Local),
		},
		{
			name: "fourth calendar quarter", year: 2024, startMonth: 1, quarter: 4,
			wantStart: time.Date(2024, time.October, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, time.December, 31, 23, 59, 59, 0, time.Local),
		},
		{
			name: "quarter straddling year end", year: 2024, startMonth: 11, quarter: 1,
			wantStart: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, time.January, 31, 23, 59, 59, 0, time.Local),
		},
		{
			name: "quarter fully in the following year", year: 2024, startMonth: 11, quarter: 2,
			wantStart: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, time.April, 30, 23, 59, 59, 0, time.Local),
		},
		{
			name: "fiscal april fourth quarter", year: 2024, startMonth: 4, quarter: 4,
			wantStart: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, time.March, 31, 23, 59, 59, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := s.RangeByFormat(tt.year, intPtr(tt.startMonth), false, intPtr(tt.quarter))
			require.NoError(t, err)

			start, end := rangeBounds(t, rng)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestRangeByFormat_RejectsOutOfRangeInputs(t *testing.T) {
	s := NewReportService(nil)

	_, err := s.RangeByFormat(2024, intPtr(0), true, nil)
	assert.Error(t, err)

	_, err = s.RangeByFormat(2024, intPtr(13), true, nil)
	assert.Error(t, err)

	_, err = s.RangeByFormat(2024, intPtr(1), false, intPtr(0))
	assert.Error(t, err)

	_, err = s.RangeByFormat(2024, intPtr(1), false, intPtr(5))
	assert.Error(t, err)
}

func TestRangeByDates_TruncatesToDayBounds(t *testing.T) {
	s := NewReportService(nil)

	from := time.Date(2024, time.March, 5, 14, 30, 12, 0, time.Local)
	to := time.Date(2024, time.March, 9, 8, 15, 0, 0, time.Local)

	rng := s.RangeByDates(from, to)
	start, end := rangeBounds(t, rng)

	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2024, time.March, 9, 23, 59, 59, 0, time.Local), end)
}

func summaryInvoice(subTotal, taxA, taxB, total, tip string, enabled, second bool) entity.Invoice {
	return entity.Invoice{
		Tip: decimal.RequireFromString(tip),
		Total: entity.Amount{
			SubTotal: decimal.RequireFromString(subTotal),
			TaxA:     decimal.RequireFromString(taxA),
			TaxB:     decimal.RequireFromString(taxB),
			Total:    decimal.RequireFromString(total),
		},
		Regime: entity.TaxRegime{Enabled: enabled, UseSecondTax: second},
	}
}

func TestSummarize_MixedRegimes(t *testing.T) {
	s := NewReportService(nil)

	invoices := []entity.Invoice{
		summaryInvoice("100.00", "5.00", "9.98", "114.98", "10.00", true, true),
		summaryInvoice("50.00", "2.50", "0", "52.50", "0", true, false),
		// Issued while taxes were disabled; contributes to total only.
		summaryInvoice("0", "0", "0", "30.00", "5.00", false, false),
	}

	got := s.Summarize(invoices)

	assert.True(t, got.SubTotal.Equal(decimal.RequireFromString("150.00")), "subtotal = %s", got.SubTotal)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("197.48")), "total = %s", got.Total)
	assert.True(t, got.Tip.Equal(decimal.RequireFromString("15.00")), "tip = %s", got.Tip)
	assert.True(t, got.TaxA.Equal(decimal.RequireFromString("7.50")), "taxA = %s", got.TaxA)
	assert.True(t, got.TaxB.Equal(decimal.RequireFromString("9.98")), "taxB = %s", got.TaxB)
	assert.True(t, got.ShowTaxA)
	assert.True(t, got.ShowTaxB)
}

func TestSummarize_TaxVisibilityFollowsRegimes(t *testing.T) {
	s := NewReportService(nil)

	disabledOnly := s.Summarize([]entity.Invoice{
		summaryInvoice("0", "0", "0", "30.00", "0", false, false),
	})
	assert.False(t, disabledOnly.ShowTaxA)
	assert.False(t, disabledOnly.ShowTaxB)

	singleOnly := s.Summarize([]entity.Invoice{
		summaryInvoice("50.00", "2.50", "0", "52.50", "0", true, false),
	})
	assert.True(t, singleOnly.ShowTaxA)
	assert.False(t, singleOnly.ShowTaxB)
}

func TestSummarize_Empty(t *testing.T) {
	s := NewReportService(nil)

	got := s.Summarize(nil)

	assert.True(t, got.Total.IsZero())
	assert.False(t, got.ShowTaxA)
	assert.False(t, got.ShowTaxB)
}
