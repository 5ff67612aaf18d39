package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	domainRepo "github.com/pascallapointe/HairBill-sub000/internal/domain/repository"
	"github.com/pascallapointe/HairBill-sub000/pkg/apperror"
	"gorm.io/gorm"
)

// searchColumns maps the exported search fields to their columns. Only
// listed fields may reach query assembly.
var searchColumns = map[string]string{
	domainRepo.SearchFieldInvoiceNumber: "invoice_number",
	domainRepo.SearchFieldClientName:    "client_name",
	domainRepo.SearchFieldClientPhone:   "client_phone",
}

// prefixUpperBound closes a prefix range: every string with the given
// prefix sorts at or before prefix + "~" in ASCII ordering.
const prefixUpperBound = "~"

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) SetDeleted(ctx context.Context, id uuid.UUID, deletedAt *int64, note string) error {
	result := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at_ms": deletedAt,
			"delete_note":   note,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Invoice")
	}
	return nil
}

func (r *invoiceRepository) List(ctx context.Context, before *int64, limit int) ([]entity.Invoice, error) {
	var invoices []entity.Invoice

	query := r.db.WithContext(ctx).Scopes(ActiveInvoices)
	if before != nil {
		query = query.Where("date < ?", *before)
	}

	err := query.Order("date DESC").Limit(limit).Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListByDateRange(ctx context.Context, startTime, endTime int64) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(ActiveInvoices, DateBetween(startTime, endTime)).
		Order("date ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) LatestSince(ctx context.Context, monthStart int64) (*entity.Invoice, error) {
	var invoice entity.Invoice

	// Deliberately unscoped: a soft-deleted invoice keeps its number, and
	// the next allocation must continue after it.
	err := r.db.WithContext(ctx).
		Where("date >= ?", monthStart).
		Order("date DESC").
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) SearchByPrefix(ctx context.Context, field, term string, afterDate *int64, limit int) ([]entity.Invoice, error) {
	column, ok := searchColumns[field]
	if !ok {
		return nil, apperror.NewInvalidArgumentError("unknown search field: " + field)
	}

	var invoices []entity.Invoice
	query := r.db.WithContext(ctx).Scopes(ActiveInvoices).
		Where(column+" >= ? AND "+column+" <= ?", term, term+prefixUpperBound)
	if afterDate != nil {
		query = query.Where("date > ?", *afterDate)
	}

	err := query.Order(column + " ASC, date ASC").Limit(limit).Find(&invoices).Error
	return invoices, err
}
