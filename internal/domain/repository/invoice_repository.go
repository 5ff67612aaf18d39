package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
)

// Searchable invoice fields for prefix-range queries. The store cannot
// express OR-across-fields, so callers issue one query per field and
// merge the results.
const (
	SearchFieldInvoiceNumber = "invoice_number"
	SearchFieldClientName    = "client_name"
	SearchFieldClientPhone   = "client_phone"
)

// InvoiceRepository is the store contract the billing engine needs:
// ordered scans by date, range filters, a date cursor, get-by-id and
// field updates. Errors from the store are propagated unchanged.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error

	// SetDeleted marks or clears the soft-delete fields. A nil deletedAt
	// restores the invoice.
	SetDeleted(ctx context.Context, id uuid.UUID, deletedAt *int64, note string) error

	// List returns active invoices newest first, starting strictly before
	// the cursor date when one is given.
	List(ctx context.Context, before *int64, limit int) ([]entity.Invoice, error)

	// ListByDateRange returns active invoices with startTime <= date <= endTime,
	// ordered by date ascending.
	ListByDateRange(ctx context.Context, startTime, endTime int64) ([]entity.Invoice, error)

	// LatestSince returns the most recent invoice (by date) dated at or
	// after monthStart, soft-deleted ones included, or nil when none
	// exists. Number allocation reads this.
	LatestSince(ctx context.Context, monthStart int64) (*entity.Invoice, error)

	// SearchByPrefix runs one prefix-range branch: field >= term AND
	// field <= term+"~", ordered by that field, resuming after the given
	// date cursor when one is given.
	SearchByPrefix(ctx context.Context, field, term string, afterDate *int64, limit int) ([]entity.Invoice, error)
}
