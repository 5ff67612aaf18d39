package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvoiceRepo is an in-memory stand-in implementing the same scan
// semantics as the Postgres repository.
type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices []entity.Invoice
}

func (f *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	f.invoices = append(f.invoices, *invoice)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if inv.ID == id && !inv.IsDeleted() {
			found := inv
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) Update(_ context.Context, invoice *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, inv := range f.invoices {
		if inv.ID == invoice.ID {
			f.invoices[i] = *invoice
			return nil
		}
	}
	return nil
}

func (f *fakeInvoiceRepo) SetDeleted(_ context.Context, id uuid.UUID, deletedAt *int64, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, inv := range f.invoices {
		if inv.ID == id {
			f.invoices[i].DeletedAtMs = deletedAt
			f.invoices[i].DeleteNote = note
			return nil
		}
	}
	return nil
}

func (f *fakeInvoiceRepo) List(_ context.Context, before *int64, limit int) ([]entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []entity.Invoice
	for _, inv := range f.invoices {
		if inv.IsDeleted() {
			continue
		}
		if before != nil && inv.Date >= *before {
			continue
		}
		rows = append(rows, inv)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeInvoiceRepo) ListByDateRange(_ context.Context, startTime, endTime int64) ([]entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []entity.Invoice
	for _, inv := range f.invoices {
		if inv.IsDeleted() || inv.Date < startTime || inv.Date > endTime {
			continue
		}
		rows = append(rows, inv)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows, nil
}

func (f *fakeInvoiceRepo) LatestSince(_ context.Context, monthStart int64) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entity.Invoice
	for i, inv := range f.invoices {
		if inv.Date < monthStart {
			continue
		}
		if latest == nil || inv.Date > latest.Date {
			latest = &f.invoices[i]
		}
	}
	if latest == nil {
		return nil, nil
	}
	found := *latest
	return &found, nil
}

func (f *fakeInvoiceRepo) SearchByPrefix(_ context.Context, field, term string, afterDate *int64, limit int) ([]entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fieldOf := func(inv entity.Invoice) string {
		switch field {
		case "invoice_number":
			return inv.InvoiceNumber
		case "client_name":
			return inv.ClientName
		default:
			return inv.ClientPhone
		}
	}
	var rows []entity.Invoice
	for _, inv := range f.invoices {
		if inv.IsDeleted() || !strings.HasPrefix(fieldOf(inv), term) {
			continue
		}
		if afterDate != nil && inv.Date <= *afterDate {
			continue
		}
		rows = append(rows, inv)
	}
	sort.Slice(rows, func(i, j int) bool {
		if fieldOf(rows[i]) != fieldOf(rows[j]) {
			return fieldOf(rows[i]) < fieldOf(rows[j])
		}
		return rows[i].Date < rows[j].Date
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type fakeSettingsRepo struct {
	settings *entity.ShopSettings
}

func (f *fakeSettingsRepo) Get(context.Context) (*entity.ShopSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Create(_ context.Context, s *entity.ShopSettings) error {
	f.settings = s
	return nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s *entity.ShopSettings) error {
	f.settings = s
	return nil
}

func newTestInvoiceService(repo *fakeInvoiceRepo, settings *entity.ShopSettings) *InvoiceService {
	return NewInvoiceService(repo, &fakeSettingsRepo{settings: settings}, NewBillingService())
}

func monthInvoice(number string, date time.Time) entity.Invoice {
	return entity.Invoice{ID: uuid.New(), InvoiceNumber: number, Date: date.UnixMilli()}
}

func TestNextInvoiceNumber_EmptyMonth(t *testing.T) {
	s := newTestInvoiceService(&fakeInvoiceRepo{}, nil)

	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)
	got, err := s.NextInvoiceNumber(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "24030001", got)
}

func TestNextInvoiceNumber_ContinuesSequence(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)
	repo := &fakeInvoiceRepo{invoices: []entity.Invoice{
		monthInvoice("24030003", now.Add(-48*time.Hour)),
		monthInvoice("24030007", now.Add(-2*time.Hour)),
	}}
	s := newTestInvoiceService(repo, nil)

	got, err := s.NextInvoiceNumber(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "24030008", got)
}

func TestNextInvoiceNumber_IgnoresPreviousMonth(t *testing.T) {
	now := time.Date(2024, time.April, 1, 9, 0, 0, 0, time.Local)
	repo := &fakeInvoiceRepo{invoices: []entity.Invoice{
		monthInvoice("24030142", time.Date(2024, time.March, 31, 23, 0, 0, 0, time.Local)),
	}}
	s := newTestInvoiceService(repo, nil)

	got, err := s.NextInvoiceNumber(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "24040001", got)
}

func TestNextInvoiceNumber_CountsDeletedInvoices(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)
	deleted := monthInvoice("24030009", now.Add(-time.Hour))
	deletedAt := now.Add(-30 * time.Minute).UnixMilli()
	deleted.DeletedAtMs = &deletedAt

	repo := &fakeInvoiceRepo{invoices: []entity.Invoice{deleted}}
	s := newTestInvoiceService(repo, nil)

	// Soft-deleted invoices keep their number; reissuing it would collide
	// on restore.
	got, err := s.NextInvoiceNumber(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "24030010", got)
}

func TestNextInvoiceNumber_SequenceOverflowTruncates(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)
	repo := &fakeInvoiceRepo{invoices: []entity.Invoice{
		monthInvoice("24039999", now.Add(-time.Hour)),
	}}
	s := newTestInvoiceService(repo, nil)

	got, err := s.NextInvoiceNumber(context.Background(), now)
	require.NoError(t, err)
	// 10000 keeps only its last four digits.
	assert.Equal(t, "24030000", got)
}

func TestCreateInvoice_SnapshotsSettings(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	settings := &entity.ShopSettings{
		Shop:   entity.ShopIdentity{Name: "Chez Lise"},
		Regime: *dualRegime(false, false),
	}
	s := newTestInvoiceService(repo, settings)

	inv, err := s.CreateInvoice(context.Background(), &CreateInvoiceInput{
		ClientName: "Alice Tremblay",
		LineItems:  []entity.LineItem{item("100.00", 1)},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, inv.ID)
	assert.Len(t, inv.InvoiceNumber, 8)
	assert.Equal(t, "Chez Lise", inv.Shop.Name)
	assert.True(t, inv.Regime.Enabled)
	assert.True(t, inv.Total.Total.Equal(decimal.RequireFromString("114.98")))

	// Later settings changes must not touch the stored snapshot.
	settings.Regime.Enabled = false
	stored, err := s.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.Regime.Enabled)
}

func TestCreateInvoice_NoSettingsSaved(t *testing.T) {
	s := newTestInvoiceService(&fakeInvoiceRepo{}, nil)

	inv, err := s.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LineItems: []entity.LineItem{item("30.00", 1)},
	})
	require.NoError(t, err)

	assert.False(t, inv.Regime.Enabled)
	assert.True(t, inv.Total.Total.Equal(decimal.RequireFromString("30.00")))
}

func TestUpdateInvoice_RecomputesUnderSnapshottedRegime(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	settings := &entity.ShopSettings{Regime: *dualRegime(false, false)}
	s := newTestInvoiceService(repo, settings)

	inv, err := s.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LineItems: []entity.LineItem{item("100.00", 1)},
	})
	require.NoError(t, err)
	number, date := inv.InvoiceNumber, inv.Date

	// The shop disables taxes after the invoice was issued.
	settings.Regime.Enabled = false

	updated, err := s.UpdateInvoice(context.Background(), inv.ID, &UpdateInvoiceInput{
		LineItems: []entity.LineItem{item("200.00", 1)},
		Note:      "price correction",
	})
	require.NoError(t, err)

	// Recomputed under the regime snapshotted at issue time.
	assert.True(t, updated.Total.Total.Equal(decimal.RequireFromString("229.95")),
		"total = %s", updated.Total.Total)
	assert.Equal(t, number, updated.InvoiceNumber)
	assert.Equal(t, date, updated.Date)
	assert.Equal(t, "price correction", updated.UpdateNote)
	assert.NotNil(t, updated.UpdatedAtMs)
}

func TestDeleteAndRestoreInvoice(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	s := newTestInvoiceService(repo, nil)

	inv, err := s.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LineItems: []entity.LineItem{item("30.00", 1)},
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteInvoice(context.Background(), inv.ID, "voided by owner"))
	_, err = s.GetInvoice(context.Background(), inv.ID)
	assert.Error(t, err)

	require.NoError(t, s.RestoreInvoice(context.Background(), inv.ID))
	restored, err := s.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())
}

func TestListInvoices_Pagination(t *testing.T) {
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)
	repo := &fakeInvoiceRepo{}
	for i := 0; i < 5; i++ {
		inv := monthInvoice("2403000"+string(rune('1'+i)), base.Add(time.Duration(i)*time.Hour))
		repo.invoices = append(repo.invoices, inv)
	}
	s := newTestInvoiceService(repo, nil)

	page, hasMore, err := s.ListInvoices(context.Background(), nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, hasMore)
	assert.Equal(t, "24030005", page[0].InvoiceNumber)

	next, hasMore, err := s.ListInvoices(context.Background(), &page[1].Date, 3)
	require.NoError(t, err)
	require.Len(t, next, 3)
	assert.False(t, hasMore)
	assert.Equal(t, "24030003", next[0].InvoiceNumber)
}

func TestSearch_MergesBranchesAndDeduplicates(t *testing.T) {
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)

	// "240" matches this invoice on number, name and phone at once; it
	// must appear exactly once in the merged page.
	tripleMatch := monthInvoice("24030001", base)
	tripleMatch.ClientName = "2400 Garage Inc"
	tripleMatch.ClientPhone = "2405551234"

	nameOnly := monthInvoice("24020011", base.Add(time.Hour))
	nameOnly.ClientName = "240 Depanneur"

	miss := monthInvoice("23120004", base.Add(2*time.Hour))
	miss.ClientName = "Bob"

	repo := &fakeInvoiceRepo{invoices: []entity.Invoice{tripleMatch, nameOnly, miss}}
	s := newTestInvoiceService(repo, nil)

	got, hasMore, err := s.Search(context.Background(), "240", nil, 10)
	require.NoError(t, err)
	assert.False(t, hasMore)

	require.Len(t, got, 2)
	seen := map[uuid.UUID]int{}
	for _, inv := range got {
		seen[inv.ID]++
	}
	assert.Equal(t, 1, seen[tripleMatch.ID])
	assert.Equal(t, 1, seen[nameOnly.ID])
}

func TestSearch_HasMoreUntilEveryBranchRunsDry(t *testing.T) {
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)
	repo := &fakeInvoiceRepo{}
	for i := 0; i < 4; i++ {
		inv := monthInvoice("2403000"+string(rune('1'+i)), base.Add(time.Duration(i)*time.Hour))
		repo.invoices = append(repo.invoices, inv)
	}
	s := newTestInvoiceService(repo, nil)

	// The number branch fills its page, so the result is not exhausted
	// even though the name and phone branches returned nothing.
	got, hasMore, err := s.Search(context.Background(), "2403", nil, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.True(t, hasMore)

	got, hasMore, err = s.Search(context.Background(), "2403", nil, 10)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.False(t, hasMore)
}

func TestSearch_NoMatches(t *testing.T) {
	s := newTestInvoiceService(&fakeInvoiceRepo{}, nil)

	got, hasMore, err := s.Search(context.Background(), "zzz", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, hasMore)
}
