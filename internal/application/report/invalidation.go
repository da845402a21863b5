package report

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/washdesk/backend/internal/domain/shared"
	"github.com/washdesk/backend/internal/infrastructure/cache"
)

// Invalidator drops every cached dashboard aggregate for one owner.
// Other owners' entries are untouched, deleting absent keys is a no-op,
// and a failing cache backend is logged but never fails the caller, so
// the mutation that triggered the invalidation always goes through.
type Invalidator struct {
	store  cache.Store
	logger *zap.Logger
}

// NewInvalidator creates a new Invalidator
func NewInvalidator(store cache.Store, logger *zap.Logger) *Invalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invalidator{
		store:  store,
		logger: logger,
	}
}

// Invalidate removes the owner's dashboard entries from the cache
func (i *Invalidator) Invalidate(ctx context.Context, ownerID uuid.UUID) {
	if ownerID == uuid.Nil {
		return
	}
	if err := i.store.Delete(ctx, cache.OwnerKeys(ownerID)...); err != nil {
		i.logger.Warn("dashboard cache invalidation failed",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}
}

// DashboardInvalidationHandler subscribes to every domain event and drops
// the emitting owner's dashboard cache. The bus dispatches synchronously,
// so by the time a mutation returns the stale entries are already gone.
type DashboardInvalidationHandler struct {
	invalidator *Invalidator
}

// NewDashboardInvalidationHandler creates a new DashboardInvalidationHandler
func NewDashboardInvalidationHandler(invalidator *Invalidator) *DashboardInvalidationHandler {
	return &DashboardInvalidationHandler{invalidator: invalidator}
}

// EventTypes returns nil so the handler receives all events
func (h *DashboardInvalidationHandler) EventTypes() []string {
	return nil
}

// Handle drops the dashboard cache of the owner the event belongs to
func (h *DashboardInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.invalidator.Invalidate(ctx, event.OwnerID())
	return nil
}

var _ shared.EventHandler = (*DashboardInvalidationHandler)(nil)
