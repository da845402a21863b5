package partner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/washdesk/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence.
// Every method takes the owner ID explicitly; there is no unscoped read path.
type CustomerRepository interface {
	// FindByID finds a customer by ID within an owner account
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Customer, error)

	// FindByPhone finds a customer by phone number within an owner account
	FindByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (*Customer, error)

	// FindAll finds all customers for an owner matching the filter
	FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// ExistsByPhone checks whether a customer with the phone exists for the owner
	ExistsByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (bool, error)

	// CountCreatedBetween counts customers created in [from, to) for the owner
	CountCreatedBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int64, error)

	// Save persists a customer (insert or update)
	Save(ctx context.Context, customer *Customer) error

	// Delete removes a customer within an owner account
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// Count counts customers for an owner matching the filter
	Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
}
