package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washdesk/backend/internal/domain/shared"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
)

// IsValid reports whether s is a known invoice status
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled, InvoiceStatusPartiallyPaid:
		return true
	}
	return false
}

// Invoice is the billing aggregate root. InvoiceNo is allocated at creation
// time from the owner's invoice_no sequence and is immutable afterwards;
// deleting an invoice never frees its number for reuse.
type Invoice struct {
	shared.OwnerAggregateRoot
	InvoiceNo      int64           `gorm:"not null;uniqueIndex:idx_invoice_owner_no,priority:2"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	JobCardID      *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Status         InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft';index"`
	Notes          string          `gorm:"type:text"`
	Items          []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one billed line on an invoice
type InvoiceItem struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID   *uuid.UUID      `gorm:"type:uuid"`
	Description string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewInvoice creates a draft invoice without a number. The number is assigned
// by the repository inside the insert transaction; see sequence.Allocator.
func NewInvoice(ownerID, customerID uuid.UUID) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Invoice requires a customer")
	}

	inv := &Invoice{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		CustomerID:         customerID,
		Subtotal:           decimal.Zero,
		TaxAmount:          decimal.Zero,
		DiscountAmount:     decimal.Zero,
		TotalAmount:        decimal.Zero,
		PaidAmount:         decimal.Zero,
		Status:             InvoiceStatusDraft,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// DisplayNo returns the zero-padded number shown on printed invoices,
// e.g. 7 -> "00007".
func (i *Invoice) DisplayNo() string {
	return fmt.Sprintf("%05d", i.InvoiceNo)
}

// AddItem appends a billed line and recomputes the totals
func (i *Invoice) AddItem(serviceID *uuid.UUID, description string, quantity, unitPrice decimal.Decimal) error {
	if description == "" {
		return shared.NewDomainError("INVALID_ITEM", "Item description cannot be empty")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}

	item := InvoiceItem{
		BaseEntity:  shared.NewBaseEntity(),
		InvoiceID:   i.ID,
		ServiceID:   serviceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
	}
	i.Items = append(i.Items, item)
	i.recalculate()

	return nil
}

// SetAdjustments sets tax and discount and recomputes the total
func (i *Invoice) SetAdjustments(tax, discount decimal.Decimal) error {
	if tax.IsNegative() || discount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Tax and discount cannot be negative")
	}

	i.TaxAmount = tax
	i.DiscountAmount = discount
	i.recalculate()

	return nil
}

// AttachJobCard links the invoice to the job card it bills
func (i *Invoice) AttachJobCard(jobCardID uuid.UUID) {
	i.JobCardID = &jobCardID
}

// ApplyPayment adds a completed payment amount and moves the invoice to
// paid or partially_paid accordingly.
func (i *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled invoice")
	}

	i.PaidAmount = i.PaidAmount.Add(amount)
	if i.PaidAmount.GreaterThanOrEqual(i.TotalAmount) {
		i.Status = InvoiceStatusPaid
	} else {
		i.Status = InvoiceStatusPartiallyPaid
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceUpdatedEvent(i))

	return nil
}

// BalanceAmount returns the outstanding amount on the invoice
func (i *Invoice) BalanceAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// MarkSent moves a draft invoice to sent
func (i *Invoice) MarkSent() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be sent")
	}

	i.Status = InvoiceStatusSent
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceUpdatedEvent(i))

	return nil
}

// MarkOverdue flags an unpaid invoice past its due date
func (i *Invoice) MarkOverdue() error {
	if i.Status != InvoiceStatusSent && i.Status != InvoiceStatusPartiallyPaid {
		return shared.NewDomainError("INVALID_STATE", "Only outstanding invoices can become overdue")
	}

	i.Status = InvoiceStatusOverdue
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceUpdatedEvent(i))

	return nil
}

// Cancel voids the invoice. Paid invoices cannot be cancelled.
func (i *Invoice) Cancel() error {
	if i.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be cancelled")
	}
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already cancelled")
	}

	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceUpdatedEvent(i))

	return nil
}

// SetNotes sets free-form notes on the invoice
func (i *Invoice) SetNotes(notes string) {
	i.Notes = notes
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// MarkDeleted records the deletion event before the row is removed
func (i *Invoice) MarkDeleted() {
	i.AddDomainEvent(NewInvoiceDeletedEvent(i))
}

func (i *Invoice) recalculate() {
	subtotal := decimal.Zero
	for _, item := range i.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	i.Subtotal = subtotal
	i.TotalAmount = subtotal.Add(i.TaxAmount).Sub(i.DiscountAmount)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}
