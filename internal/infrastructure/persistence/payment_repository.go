package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/billing"
	"github.com/washdesk/backend/internal/infrastructure/persistence/owner"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Save persists a payment (insert or update)
func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	if err := owner.Require(payment.OwnerID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(payment).Error
}

// FindByInvoice lists payments against an invoice within an owner account
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var payments []billing.Payment
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// SumCompletedByInvoice sums completed payment amounts for an invoice
func (r *GormPaymentRepository) SumCompletedByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	if err := owner.Require(ownerID); err != nil {
		return decimal.Zero, err
	}
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&billing.Payment{}).
		Scopes(owner.Scope(ownerID)).
		Where("invoice_id = ? AND status = ?", invoiceID, billing.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
