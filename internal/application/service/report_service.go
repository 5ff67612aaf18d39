package service

import (
	"context"
	"time"

	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/repository"
	"github.com/pascallapointe/HairBill-sub000/pkg/apperror"
	"github.com/pascallapointe/HairBill-sub000/pkg/calendar"
	"github.com/shopspring/decimal"
)

// ReportService derives report time windows and folds invoice sets into
// summary totals. Range and summary computation are pure; GetReport adds
// the store scan.
type ReportService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository) *ReportService {
	return &ReportService{invoiceRepo: invoiceRepo}
}

// RangeByFormat derives a report window from a year, an optional fiscal
// start month (defaults to January), and either a monthly flag or an
// optional quarter:
//
//   - annual: twelve months beginning at startMonth of year
//   - monthly: exactly startMonth of year
//   - quarterly: the three-month block at quarter offsets from startMonth,
//     wrapping into the following calendar year when it crosses December
//
// Out-of-range months and quarters fail fast; nothing is clamped.
func (s *ReportService) RangeByFormat(year int, startMonth *int, monthly bool, quarter *int) (entity.ReportRange, error) {
	sm := 1
	if startMonth != nil {
		sm = *startMonth
		if sm < 1 || sm > 12 {
			return entity.ReportRange{}, apperror.NewInvalidArgumentError("start month must be between 1 and 12")
		}
	}

	var startYear, startMo, endYear, endMo int

	switch {
	case monthly:
		startYear, startMo = year, sm
		endYear, endMo = year, sm

	case quarter != nil:
		q := *quarter
		if q < 1 || q > 4 {
			return entity.ReportRange{}, apperror.NewInvalidArgumentError("quarter must be between 1 and 4")
		}
		// Month indexes are taken mod 12; each one that lands before the
		// fiscal start month has wrapped into the following year.
		startIdx := (sm - 1 + (q-1)*3) % 12
		endIdx := (startIdx + 2) % 12

		startYear, startMo = year, startIdx+1
		if startIdx < sm-1 {
			startYear = year + 1
		}
		endYear, endMo = year, endIdx+1
		if endIdx < sm-1 {
			endYear = year + 1
		}

	default: // annual, fiscal-year style
		startYear, startMo = year, sm
		if sm == 1 {
			endYear, endMo = year, 12
		} else {
			endYear, endMo = year+1, sm-1
		}
	}

	start := time.Date(startYear, time.Month(startMo), 1, 0, 0, 0, 0, time.Local)
	lastDay := calendar.DaysInMonth(endYear, endMo)
	end := time.Date(endYear, time.Month(endMo), lastDay, 23, 59, 59, 0, time.Local)

	return entity.ReportRange{StartTime: start.UnixMilli(), EndTime: end.UnixMilli()}, nil
}

// RangeByDates truncates each date to its own day boundary. Ordering of
// the two dates is not validated here; callers reject an inverted range
// before querying.
func (s *ReportService) RangeByDates(startDate, endDate time.Time) entity.ReportRange {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 0, endDate.Location())
	return entity.ReportRange{StartTime: start.UnixMilli(), EndTime: end.UnixMilli()}
}

// Summarize folds a list of invoices into report totals. Subtotal, total
// and tip are summed for every invoice; taxes only for invoices whose
// snapshotted regime had them enabled, so a report spanning a settings
// change attributes tax exactly to the invoices that carried it. Sums
// are returned unrounded.
func (s *ReportService) Summarize(invoices []entity.Invoice) entity.ReportSummary {
	summary := entity.ReportSummary{
		SubTotal: decimal.Zero,
		Total:    decimal.Zero,
		Tip:      decimal.Zero,
		TaxA:     decimal.Zero,
		TaxB:     decimal.Zero,
	}

	for _, inv := range invoices {
		summary.SubTotal = summary.SubTotal.Add(inv.Total.SubTotal)
		summary.Total = summary.Total.Add(inv.Total.Total)
		summary.Tip = summary.Tip.Add(inv.Tip)

		if !inv.Regime.Enabled {
			continue
		}
		summary.TaxA = summary.TaxA.Add(inv.Total.TaxA)
		summary.ShowTaxA = true
		if inv.Regime.UseSecondTax {
			summary.TaxB = summary.TaxB.Add(inv.Total.TaxB)
			summary.ShowTaxB = true
		}
	}

	return summary
}

// Report is a report window with its invoices and folded totals
type Report struct {
	Range    entity.ReportRange   `json:"range"`
	Invoices []entity.Invoice     `json:"invoices"`
	Summary  entity.ReportSummary `json:"summary"`
}

// GetReport scans the store for invoices inside the window and summarizes them
func (s *ReportService) GetReport(ctx context.Context, rng entity.ReportRange) (*Report, error) {
	invoices, err := s.invoiceRepo.ListByDateRange(ctx, rng.StartTime, rng.EndTime)
	if err != nil {
		return nil, err
	}

	return &Report{
		Range:    rng,
		Invoices: invoices,
		Summary:  s.Summarize(invoices),
	}, nil
}
