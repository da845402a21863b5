package workshop

import (
	"context"

	"github.com/google/uuid"
	"github.com/washdesk/backend/internal/domain/shared"
)

// JobCardRepository defines the interface for job card persistence.
// Every method takes the owner ID explicitly.
type JobCardRepository interface {
	// Create inserts the card and assigns its JobNo from the owner's job_no
	// sequence, both inside one transaction. On a retryable numbering
	// conflict the card is not persisted and sequence.IsRetryable(err) is true.
	Create(ctx context.Context, card *JobCard) error

	// FindByID finds a job card by ID within an owner account
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*JobCard, error)

	// FindByJobNo finds a job card by its number within an owner account
	FindByJobNo(ctx context.Context, ownerID uuid.UUID, jobNo int64) (*JobCard, error)

	// FindAll finds all job cards for an owner matching the filter
	FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]JobCard, error)

	// FindByStatus finds job cards in a given state for an owner
	FindByStatus(ctx context.Context, ownerID uuid.UUID, status JobCardStatus, filter shared.Filter) ([]JobCard, error)

	// CountOpen counts job cards not yet delivered or cancelled for an owner
	CountOpen(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// Update persists changes to an existing card. JobNo is never updated.
	Update(ctx context.Context, card *JobCard) error

	// Delete removes a job card within an owner account. The card's number
	// is never reallocated.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
