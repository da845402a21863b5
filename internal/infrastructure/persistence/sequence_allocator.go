package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/sequence"
)

// PostgreSQL error codes classified into the sequence error taxonomy
const (
	pgCodeLockNotAvailable = "55P03"
	pgCodeUniqueViolation  = "23505"
)

// allocateSQL atomically increments the counter for one (owner, kind) and
// returns the new value. The first allocation inserts the row with value 1.
// The ON CONFLICT update takes the row's write lock, which is what
// serializes concurrent allocations for the same pair. Valid on both
// PostgreSQL and SQLite.
const allocateSQL = `
INSERT INTO sequence_counters (owner_id, kind, current_value, created_at, updated_at)
VALUES (?, ?, 1, ?, ?)
ON CONFLICT (owner_id, kind)
DO UPDATE SET current_value = sequence_counters.current_value + 1, updated_at = excluded.updated_at
RETURNING current_value`

// GormSequenceAllocator implements sequence.Allocator on a dedicated
// counter table.
type GormSequenceAllocator struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormSequenceAllocator creates a new GormSequenceAllocator. The db
// handle is only used by Peek; AllocateNext always runs on the caller's
// transaction.
func NewGormSequenceAllocator(db *gorm.DB, logger *zap.Logger) *GormSequenceAllocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormSequenceAllocator{db: db, logger: logger}
}

// AllocateNext returns the next number for (ownerID, kind) on the given
// transaction. Concurrent callers for the same pair queue on the counter
// row; each sees a distinct, strictly increasing value.
func (a *GormSequenceAllocator) AllocateNext(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, kind sequence.Kind) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, sequence.ErrOwnerRequired
	}
	if !kind.IsValid() {
		return 0, fmt.Errorf("%w: %q", sequence.ErrInvalidKind, kind)
	}
	if tx == nil {
		return 0, fmt.Errorf("sequence: allocation requires a transaction")
	}

	now := time.Now()
	var next int64
	if err := tx.WithContext(ctx).Raw(allocateSQL, ownerID, kind, now, now).Scan(&next).Error; err != nil {
		classified := classifyAllocationError(err)
		a.logger.Warn("sequence allocation failed",
			zap.String("owner_id", ownerID.String()),
			zap.String("kind", string(kind)),
			zap.Bool("retryable", sequence.IsRetryable(classified)),
			zap.Error(err),
		)
		return 0, classified
	}

	return next, nil
}

// Peek returns the highest number allocated so far, or 0 when the
// counter row does not exist yet.
func (a *GormSequenceAllocator) Peek(ctx context.Context, ownerID uuid.UUID, kind sequence.Kind) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, sequence.ErrOwnerRequired
	}
	if !kind.IsValid() {
		return 0, fmt.Errorf("%w: %q", sequence.ErrInvalidKind, kind)
	}

	var counter sequence.Counter
	err := a.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ?", ownerID, kind).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return counter.CurrentValue, nil
}

// classifyAllocationError maps driver errors onto the sequence error
// taxonomy so callers can decide whether to retry.
func classifyAllocationError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", sequence.ErrLockTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeLockNotAvailable:
			return fmt.Errorf("%w: %v", sequence.ErrLockTimeout, err)
		case pgCodeUniqueViolation:
			return fmt.Errorf("%w: %v", sequence.ErrUniquenessViolation, err)
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", sequence.ErrUniquenessViolation, err)
	}

	return err
}

// translateNumberConflict maps a duplicate-key failure on a numbered
// document insert onto sequence.ErrUniquenessViolation. Used by the
// invoice and job card repositories as a backstop behind the
// (owner_id, number) unique index.
func translateNumberConflict(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", sequence.ErrUniquenessViolation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation {
		return fmt.Errorf("%w: %v", sequence.ErrUniquenessViolation, err)
	}

	return err
}

// Ensure GormSequenceAllocator implements the Allocator interface
var _ sequence.Allocator = (*GormSequenceAllocator)(nil)
