// Package sequence defines per-owner document numbering.
//
// Every invoice and job card carries a number that is unique and strictly
// increasing within its owner account, starting at 1. Numbers are handed out
// by an Allocator inside the same transaction that inserts the document, so a
// committed document always holds a committed number and a rolled-back
// creation never burns one.
package sequence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind identifies which per-owner counter a number is drawn from.
type Kind string

const (
	// KindInvoice numbers invoices.
	KindInvoice Kind = "invoice_no"
	// KindJobCard numbers job cards.
	KindJobCard Kind = "job_no"
)

// IsValid reports whether k is a known sequence kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindInvoice, KindJobCard:
		return true
	}
	return false
}

// Counter is the persisted high-water mark for one (owner, kind) pair.
// A missing row means no number has been allocated yet.
type Counter struct {
	OwnerID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind         Kind      `gorm:"type:varchar(32);primaryKey"`
	CurrentValue int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Counter) TableName() string {
	return "sequence_counters"
}

// Allocator hands out document numbers.
//
// AllocateNext must be called on the transaction that inserts the numbered
// document. It serializes concurrent allocations for the same (owner, kind)
// on the counter row's write lock; allocations for different owners never
// contend. The first allocation for a pair returns 1.
type Allocator interface {
	// AllocateNext returns the next number for (ownerID, kind). The returned
	// number is only durable once tx commits; on rollback it is reused by
	// the next allocation, keeping committed numbering gapless.
	AllocateNext(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, kind Kind) (int64, error)

	// Peek returns the highest number allocated so far for (ownerID, kind),
	// or 0 when none has been. Read-only; never blocks on writers.
	Peek(ctx context.Context, ownerID uuid.UUID, kind Kind) (int64, error)
}
