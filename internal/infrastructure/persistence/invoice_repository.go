package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/billing"
	"github.com/washdesk/backend/internal/domain/sequence"
	"github.com/washdesk/backend/internal/domain/shared"
	"github.com/washdesk/backend/internal/infrastructure/persistence/owner"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db        *gorm.DB
	allocator sequence.Allocator
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB, allocator sequence.Allocator) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db, allocator: allocator}
}

// Create inserts the invoice and its items, assigning InvoiceNo from the
// owner's invoice_no sequence, all inside one transaction. A rollback
// releases the number back to the counter.
func (r *GormInvoiceRepository) Create(ctx context.Context, inv *billing.Invoice) error {
	if err := owner.Require(inv.OwnerID); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoiceNo, err := r.allocator.AllocateNext(ctx, tx, inv.OwnerID, sequence.KindInvoice)
		if err != nil {
			return err
		}
		inv.InvoiceNo = invoiceNo

		if err := tx.Create(inv).Error; err != nil {
			return translateNumberConflict(err)
		}
		return nil
	})
}

// FindByID finds an invoice (with items) by ID within an owner account
func (r *GormInvoiceRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var inv billing.Invoice
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Preload("Items").
		First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByInvoiceNo finds an invoice by its number within an owner account
func (r *GormInvoiceRepository) FindByInvoiceNo(ctx context.Context, ownerID uuid.UUID, invoiceNo int64) (*billing.Invoice, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var inv billing.Invoice
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Preload("Items").
		Where("invoice_no = ?", invoiceNo).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindAll finds all invoices for an owner matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var invoices []billing.Invoice
	query := r.applyFilter(r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Scopes(owner.Scope(ownerID)), filter)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Totals sums total and paid amounts over the owner's invoices matching
// the filter
func (r *GormInvoiceRepository) Totals(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (billing.InvoiceTotals, error) {
	if err := owner.Require(ownerID); err != nil {
		return billing.InvoiceTotals{}, err
	}
	var totals billing.InvoiceTotals
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Scopes(owner.Scope(ownerID)), filter)

	if err := query.
		Select("COALESCE(SUM(total_amount), 0) AS total_amount, COALESCE(SUM(paid_amount), 0) AS paid_amount").
		Scan(&totals).Error; err != nil {
		return billing.InvoiceTotals{}, err
	}
	return totals, nil
}

// Update persists changes to an existing invoice. InvoiceNo is never
// updated; items present on the invoice are upserted.
func (r *GormInvoiceRepository) Update(ctx context.Context, inv *billing.Invoice) error {
	if err := owner.Require(inv.OwnerID); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&billing.Invoice{}).
			Scopes(owner.Scope(inv.OwnerID)).
			Where("id = ?", inv.ID).
			Select("customer_id", "job_card_id", "subtotal", "tax_amount",
				"discount_amount", "total_amount", "paid_amount", "status",
				"notes", "version", "updated_at").
			Updates(inv)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		for i := range inv.Items {
			if err := tx.Save(&inv.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an invoice and its items within an owner account. The
// invoice's number is never reallocated.
func (r *GormInvoiceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := owner.Require(ownerID); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(owner.Scope(ownerID)).
			Delete(&billing.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		// Items cascade on PostgreSQL; delete explicitly for engines
		// without foreign key enforcement
		return tx.Delete(&billing.InvoiceItem{}, "invoice_id = ?", id).Error
	})
}

// applyFilter applies filter options including pagination and ordering
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	}
	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "from":
			if from, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", from)
			}
		case "to":
			if to, ok := value.(time.Time); ok {
				query = query.Where("created_at < ?", to)
			}
		}
	}
	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
