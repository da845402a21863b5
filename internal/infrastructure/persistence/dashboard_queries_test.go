package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/billing"
)

// seedInvoice creates a paid invoice for the owner with the given amounts
func seedInvoice(t *testing.T, db *gorm.DB, ownerID uuid.UUID, total, paid int64) *billing.Invoice {
	t.Helper()
	allocator := NewGormSequenceAllocator(db, zap.NewNop())
	repo := NewGormInvoiceRepository(db, allocator)

	inv, err := billing.NewInvoice(ownerID, uuid.New())
	require.NoError(t, err)
	require.NoError(t, inv.AddItem(nil, "Wash", decimal.NewFromInt(1), decimal.NewFromInt(total)))
	inv.ClearDomainEvents()
	require.NoError(t, repo.Create(context.Background(), inv))

	if paid > 0 {
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(paid)))
		inv.ClearDomainEvents()
		require.NoError(t, repo.Update(context.Background(), inv))
	}
	return inv
}

func TestGormDashboardQueries(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	queries := NewGormDashboardQueries(db)
	ownerID := uuid.New()
	otherOwner := uuid.New()

	seedInvoice(t, db, ownerID, 100, 100)
	seedInvoice(t, db, ownerID, 200, 50)
	seedInvoice(t, db, otherOwner, 999, 999)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	t.Run("revenue sums paid amounts for one owner", func(t *testing.T) {
		revenue, err := queries.RevenueBetween(ctx, ownerID, from, to)
		require.NoError(t, err)
		assert.True(t, revenue.Equal(decimal.NewFromInt(150)), "got %s", revenue)
	})

	t.Run("outstanding sums unpaid balances", func(t *testing.T) {
		outstanding, err := queries.OutstandingBetween(ctx, ownerID, from, to)
		require.NoError(t, err)
		assert.True(t, outstanding.Equal(decimal.NewFromInt(150)), "got %s", outstanding)
	})

	t.Run("counts invoices in window", func(t *testing.T) {
		count, err := queries.CountInvoicesBetween(ctx, ownerID, from, to)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("empty window reads zero", func(t *testing.T) {
		past := time.Now().Add(-48 * time.Hour)
		revenue, err := queries.RevenueBetween(ctx, ownerID, past, past.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, revenue.IsZero())

		count, err := queries.CountInvoicesBetween(ctx, ownerID, past, past.Add(time.Hour))
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("counts by status on a day", func(t *testing.T) {
		count, err := queries.CountInvoicesByStatusOn(ctx, ownerID, billing.InvoiceStatusPaid, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("daily revenue groups by day", func(t *testing.T) {
		daily, err := queries.DailyRevenue(ctx, ownerID, from, to)
		require.NoError(t, err)
		require.Len(t, daily, 1)

		today := time.Now().Format("2006-01-02")
		revenue, ok := daily[today]
		require.True(t, ok, "expected a bucket for %s, got %v", today, daily)
		assert.True(t, revenue.Equal(decimal.NewFromInt(150)))
	})

	t.Run("average invoice value on a day", func(t *testing.T) {
		avg, err := queries.AverageInvoiceValueOn(ctx, ownerID, time.Now())
		require.NoError(t, err)
		assert.True(t, avg.Equal(decimal.NewFromInt(75)), "got %s", avg)
	})

	t.Run("owner isolation holds across every query", func(t *testing.T) {
		revenue, err := queries.RevenueBetween(ctx, otherOwner, from, to)
		require.NoError(t, err)
		assert.True(t, revenue.Equal(decimal.NewFromInt(999)))

		count, err := queries.CountInvoicesBetween(ctx, otherOwner, from, to)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
