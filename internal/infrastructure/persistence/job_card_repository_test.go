package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/washdesk/backend/internal/domain/shared"
	"github.com/washdesk/backend/internal/domain/workshop"
)

func newJobCardRepo(t *testing.T) (*GormJobCardRepository, *GormSequenceAllocator) {
	t.Helper()
	db := setupTestDB(t)
	allocator := NewGormSequenceAllocator(db, zap.NewNop())
	return NewGormJobCardRepository(db, allocator), allocator
}

func mustJobCard(t *testing.T, ownerID uuid.UUID, item string) *workshop.JobCard {
	t.Helper()
	card, err := workshop.NewJobCard(ownerID, uuid.New(), item)
	require.NoError(t, err)
	card.ClearDomainEvents()
	return card
}

func TestGormJobCardRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns sequential job numbers per owner", func(t *testing.T) {
		repo, _ := newJobCardRepo(t)
		ownerID := uuid.New()

		for i := 1; i <= 3; i++ {
			card := mustJobCard(t, ownerID, "Washing Machine")
			require.NoError(t, repo.Create(ctx, card))
			assert.Equal(t, int64(i), card.JobNo)
		}
	})

	t.Run("numbering is independent per owner", func(t *testing.T) {
		repo, _ := newJobCardRepo(t)
		ownerA := uuid.New()
		ownerB := uuid.New()

		cardA := mustJobCard(t, ownerA, "Microwave")
		require.NoError(t, repo.Create(ctx, cardA))
		assert.Equal(t, int64(1), cardA.JobNo)

		cardB := mustJobCard(t, ownerB, "Mixer Grinder")
		require.NoError(t, repo.Create(ctx, cardB))
		assert.Equal(t, int64(1), cardB.JobNo)
	})

	t.Run("deleted card's number is not reallocated", func(t *testing.T) {
		repo, _ := newJobCardRepo(t)
		ownerID := uuid.New()

		first := mustJobCard(t, ownerID, "Fan")
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Delete(ctx, ownerID, first.ID))

		second := mustJobCard(t, ownerID, "Cooler")
		require.NoError(t, repo.Create(ctx, second))
		assert.Equal(t, int64(2), second.JobNo)
	})
}

func TestGormJobCardRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo, _ := newJobCardRepo(t)
	ownerID := uuid.New()

	card := mustJobCard(t, ownerID, "Washing Machine")
	card.Problem = "Drum not spinning"
	require.NoError(t, repo.Create(ctx, card))

	t.Run("by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, ownerID, card.ID)
		require.NoError(t, err)
		assert.Equal(t, card.JobNo, found.JobNo)
	})

	t.Run("by job number", func(t *testing.T) {
		found, err := repo.FindByJobNo(ctx, ownerID, card.JobNo)
		require.NoError(t, err)
		assert.Equal(t, card.ID, found.ID)
	})

	t.Run("cross-owner lookup misses", func(t *testing.T) {
		_, err := repo.FindByJobNo(ctx, uuid.New(), card.JobNo)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("by status", func(t *testing.T) {
		cards, err := repo.FindByStatus(ctx, ownerID, workshop.JobCardStatusReceived, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, cards, 1)

		cards, err = repo.FindByStatus(ctx, ownerID, workshop.JobCardStatusDelivered, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, cards)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := repo.FindByStatus(ctx, ownerID, workshop.JobCardStatus("lost"), shared.DefaultFilter())
		require.Error(t, err)
	})
}

func TestGormJobCardRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo, _ := newJobCardRepo(t)
	ownerID := uuid.New()

	card := mustJobCard(t, ownerID, "Washing Machine")
	require.NoError(t, repo.Create(ctx, card))
	originalNo := card.JobNo

	require.NoError(t, card.ChangeStatus(workshop.JobCardStatusInProgress))
	card.ClearDomainEvents()
	require.NoError(t, repo.Update(ctx, card))

	found, err := repo.FindByID(ctx, ownerID, card.ID)
	require.NoError(t, err)
	assert.Equal(t, workshop.JobCardStatusInProgress, found.Status)
	assert.Equal(t, originalNo, found.JobNo, "job number is immutable")
}

func TestGormJobCardRepository_CountOpen(t *testing.T) {
	ctx := context.Background()
	repo, _ := newJobCardRepo(t)
	ownerID := uuid.New()

	open := mustJobCard(t, ownerID, "Fan")
	require.NoError(t, repo.Create(ctx, open))

	closed := mustJobCard(t, ownerID, "Cooler")
	require.NoError(t, repo.Create(ctx, closed))
	require.NoError(t, closed.ChangeStatus(workshop.JobCardStatusInProgress))
	require.NoError(t, closed.ChangeStatus(workshop.JobCardStatusReady))
	require.NoError(t, closed.ChangeStatus(workshop.JobCardStatusDelivered))
	closed.ClearDomainEvents()
	require.NoError(t, repo.Update(ctx, closed))

	count, err := repo.CountOpen(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
