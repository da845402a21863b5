package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washdesk/backend/internal/domain/shared"
)

// PaymentStatus represents the state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
)

// Payment records money received against an invoice. Only completed
// payments count toward the invoice's paid amount.
type Payment struct {
	shared.OwnerAggregateRoot
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null;default:'cash'"`
	Status    PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	Reference string          `gorm:"type:varchar(100)"`
	PaidAt    *time.Time      `gorm:""`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a pending payment against an invoice
func NewPayment(ownerID, invoiceID uuid.UUID, amount decimal.Decimal, method PaymentMethod) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Payment requires an invoice")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	return &Payment{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		InvoiceID:          invoiceID,
		Amount:             amount,
		Method:             method,
		Status:             PaymentStatusPending,
	}, nil
}

// Complete marks the payment as received
func (p *Payment) Complete(reference string) error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending payments can be completed")
	}

	now := time.Now()
	p.Status = PaymentStatusCompleted
	p.Reference = reference
	p.PaidAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Fail marks the payment as failed
func (p *Payment) Fail() error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending payments can fail")
	}

	p.Status = PaymentStatusFailed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Refund reverses a completed payment
func (p *Payment) Refund() error {
	if p.Status != PaymentStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Only completed payments can be refunded")
	}

	p.Status = PaymentStatusRefunded
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsCompleted reports whether the payment has been received
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}
