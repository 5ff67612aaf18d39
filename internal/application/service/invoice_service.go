package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/enum"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/repository"
	"github.com/pascallapointe/HairBill-sub000/pkg/apperror"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// invoiceNumberSeqDigits is the width of the per-month sequence in a
// YYMM#### invoice number.
const invoiceNumberSeqDigits = 4

// defaultSearchPageSize is the per-branch page size for cross-field search
const defaultSearchPageSize = 20

// searchFields are the invoice columns a free-text query runs against,
// one prefix-range branch each.
var searchFields = []string{
	repository.SearchFieldInvoiceNumber,
	repository.SearchFieldClientName,
	repository.SearchFieldClientPhone,
}

// InvoiceService handles invoice creation, numbering, search and lifecycle
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	settingsRepo repository.SettingsRepository
	billing      *BillingService
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	settingsRepo repository.SettingsRepository,
	billing *BillingService,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
		billing:      billing,
	}
}

// NextInvoiceNumber derives the next sequential invoice number for the
// calendar month of now, format YYMM####. The sequence continues after
// the most recent invoice dated within the month, or starts at 0001.
//
// Allocation is not synchronized with the eventual save: two sessions
// allocating in the same month can read the same predecessor and produce
// the same number. The unique index on invoice_number turns that race
// into a failed save instead of a silent duplicate.
func (s *InvoiceService) NextInvoiceNumber(ctx context.Context, now time.Time) (string, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).UnixMilli()

	last, err := s.invoiceRepo.LatestSince(ctx, monthStart)
	if err != nil {
		return "", err
	}

	seq := 1
	if last != nil && len(last.InvoiceNumber) >= invoiceNumberSeqDigits {
		tail := last.InvoiceNumber[len(last.InvoiceNumber)-invoiceNumberSeqDigits:]
		if n, err := strconv.Atoi(tail); err == nil {
			seq = n + 1
		}
	}

	// Zero-pad by slicing the tail, so a sequence past 9999 truncates
	// instead of widening the number. Receipts fix the number at eight
	// characters and no shop has come near that volume in a month.
	padded := fmt.Sprintf("0000%d", seq)
	return now.Format("0601") + padded[len(padded)-invoiceNumberSeqDigits:], nil
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	ClientID      *uuid.UUID
	ClientName    string
	ClientPhone   string
	LineItems     []entity.LineItem
	Tip           decimal.Decimal
	PaymentMethod enum.PaymentMethod
}

// CreateInvoice computes the amount under the current tax regime,
// allocates the invoice number, snapshots the settings into the document
// and persists it.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	settings, err := s.currentSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	number, err := s.NextInvoiceNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		InvoiceNumber: number,
		Date:          now.UnixMilli(),
		ClientID:      input.ClientID,
		ClientName:    input.ClientName,
		ClientPhone:   input.ClientPhone,
		LineItems:     input.LineItems,
		Tip:           input.Tip,
		PaymentMethod: input.PaymentMethod,
		Total:         s.billing.ComputeAmount(input.LineItems, &settings.Regime),
		Regime:        settings.Regime,
		Shop:          settings.Shop,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice by id
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// UpdateInvoiceInput represents the update invoice input
type UpdateInvoiceInput struct {
	ClientID      *uuid.UUID
	ClientName    string
	ClientPhone   string
	LineItems     []entity.LineItem
	Tip           decimal.Decimal
	PaymentMethod enum.PaymentMethod
	Note          string
}

// UpdateInvoice replaces the editable fields of an invoice and recomputes
// its total under the regime snapshotted at issue time, so the edit
// cannot retroactively apply today's tax settings. Invoice number and
// date never change.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	invoice.ClientID = input.ClientID
	invoice.ClientName = input.ClientName
	invoice.ClientPhone = input.ClientPhone
	invoice.LineItems = input.LineItems
	invoice.Tip = input.Tip
	invoice.PaymentMethod = input.PaymentMethod
	invoice.Total = s.billing.ComputeAmount(input.LineItems, &invoice.Regime)
	invoice.UpdateNote = input.Note

	updatedAt := time.Now().UnixMilli()
	invoice.UpdatedAtMs = &updatedAt

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// DeleteInvoice soft-deletes an invoice, keeping it restorable
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID, note string) error {
	deletedAt := time.Now().UnixMilli()
	return s.invoiceRepo.SetDeleted(ctx, id, &deletedAt, note)
}

// RestoreInvoice clears the soft-delete marker
func (s *InvoiceService) RestoreInvoice(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.SetDeleted(ctx, id, nil, "")
}

// ListInvoices returns a page of active invoices, newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, before *int64, limit int) ([]entity.Invoice, bool, error) {
	invoices, err := s.invoiceRepo.List(ctx, before, limit+1)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(invoices) > limit
	if hasMore {
		invoices = invoices[:limit]
	}
	return invoices, hasMore, nil
}

// Search matches term as a prefix against invoice number, client name
// and client phone. The store cannot OR range predicates across fields,
// so one query per field runs concurrently and the results are merged
// with one copy per invoice id. Order within the merged page follows the
// branch order; callers needing a strict order re-sort.
//
// The page is exhausted only when every branch returned fewer rows than
// the page size; until then hasMore stays true even if one branch ran dry.
func (s *InvoiceService) Search(ctx context.Context, term string, afterDate *int64, limit int) ([]entity.Invoice, bool, error) {
	if limit <= 0 {
		limit = defaultSearchPageSize
	}

	branches := make([][]entity.Invoice, len(searchFields))
	g, gctx := errgroup.WithContext(ctx)
	for i, field := range searchFields {
		i, field := i, field
		g.Go(func() error {
			rows, err := s.invoiceRepo.SearchByPrefix(gctx, field, term, afterDate, limit)
			if err != nil {
				return err
			}
			branches[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	seen := make(map[uuid.UUID]struct{})
	merged := make([]entity.Invoice, 0, limit)
	exhausted := true
	for _, rows := range branches {
		if len(rows) >= limit {
			exhausted = false
		}
		for _, inv := range rows {
			if _, dup := seen[inv.ID]; dup {
				continue
			}
			seen[inv.ID] = struct{}{}
			merged = append(merged, inv)
		}
	}

	return merged, !exhausted, nil
}

// currentSettings loads the shop settings, falling back to a disabled
// regime when none have been saved yet.
func (s *InvoiceService) currentSettings(ctx context.Context) (*entity.ShopSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &entity.ShopSettings{}, nil
	}
	return settings, nil
}
