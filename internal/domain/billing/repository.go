package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washdesk/backend/internal/domain/shared"
)

// InvoiceTotals are the sums shown above a filtered invoice list
type InvoiceTotals struct {
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
}

// InvoiceRepository defines the interface for invoice persistence.
// Every method takes the owner ID explicitly.
type InvoiceRepository interface {
	// Create inserts the invoice and its items, assigning InvoiceNo from the
	// owner's invoice_no sequence, all inside one transaction. On a retryable
	// numbering conflict nothing is persisted and sequence.IsRetryable(err)
	// is true.
	Create(ctx context.Context, inv *Invoice) error

	// FindByID finds an invoice (with items) by ID within an owner account
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Invoice, error)

	// FindByInvoiceNo finds an invoice by its number within an owner account
	FindByInvoiceNo(ctx context.Context, ownerID uuid.UUID, invoiceNo int64) (*Invoice, error)

	// FindAll finds all invoices for an owner matching the filter
	FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// Totals sums total and paid amounts over the owner's invoices matching
	// the filter
	Totals(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (InvoiceTotals, error)

	// Update persists changes to an existing invoice. InvoiceNo is never
	// updated.
	Update(ctx context.Context, inv *Invoice) error

	// Delete removes an invoice and its items within an owner account. The
	// invoice's number is never reallocated.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// Save persists a payment (insert or update)
	Save(ctx context.Context, payment *Payment) error

	// FindByInvoice lists payments against an invoice within an owner account
	FindByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]Payment, error)

	// SumCompletedByInvoice sums completed payment amounts for an invoice
	SumCompletedByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (decimal.Decimal, error)
}

// DashboardQueries are the read-only aggregate queries behind the cached
// dashboard. They always hit the underlying tables; caching happens a layer
// above.
type DashboardQueries interface {
	// RevenueBetween sums paid amounts on invoices created in [from, to)
	RevenueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// OutstandingBetween sums (total - paid) on invoices created in [from, to)
	OutstandingBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// CountInvoicesBetween counts invoices created in [from, to)
	CountInvoicesBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int64, error)

	// CountInvoicesByStatusOn counts invoices with the status created on the
	// given day
	CountInvoicesByStatusOn(ctx context.Context, ownerID uuid.UUID, status InvoiceStatus, day time.Time) (int64, error)

	// DailyRevenue returns per-day paid-amount sums for invoices created in
	// [from, to), keyed by the day's date (midnight, local)
	DailyRevenue(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error)

	// AverageInvoiceValueOn averages paid amounts over invoices created on
	// the given day; zero when there are none
	AverageInvoiceValueOn(ctx context.Context, ownerID uuid.UUID, day time.Time) (decimal.Decimal, error)
}
