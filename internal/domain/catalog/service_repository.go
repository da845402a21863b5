package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/washdesk/backend/internal/domain/shared"
)

// ServiceRepository defines the interface for catalog persistence.
// Every method takes the owner ID explicitly.
type ServiceRepository interface {
	// FindByID finds a service by ID within an owner account
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Service, error)

	// FindAll finds all services for an owner matching the filter
	FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Service, error)

	// FindActive finds all active services for an owner
	FindActive(ctx context.Context, ownerID uuid.UUID) ([]Service, error)

	// ExistsForOwner reports whether the owner has any services at all.
	// Used to make the default-catalog seeding idempotent.
	ExistsForOwner(ctx context.Context, ownerID uuid.UUID) (bool, error)

	// Save persists a service (insert or update)
	Save(ctx context.Context, service *Service) error

	// SaveBatch persists multiple services in one operation
	SaveBatch(ctx context.Context, services []*Service) error

	// Delete removes a service within an owner account
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
