package persistence

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/sequence"
)

func TestGormSequenceAllocator_AllocateNext(t *testing.T) {
	ctx := context.Background()

	t.Run("first allocation returns 1", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())
		ownerID := uuid.New()

		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := allocator.AllocateNext(ctx, tx, ownerID, sequence.KindInvoice)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("allocations are strictly increasing", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())
		ownerID := uuid.New()

		var last int64
		for i := 1; i <= 5; i++ {
			err := db.Transaction(func(tx *gorm.DB) error {
				n, err := allocator.AllocateNext(ctx, tx, ownerID, sequence.KindJobCard)
				require.NoError(t, err)
				assert.Greater(t, n, last)
				last = n
				return nil
			})
			require.NoError(t, err)
		}
		assert.Equal(t, int64(5), last)
	})

	t.Run("owners have independent counters", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())
		ownerA := uuid.New()
		ownerB := uuid.New()

		err := db.Transaction(func(tx *gorm.DB) error {
			for i := 1; i <= 3; i++ {
				n, err := allocator.AllocateNext(ctx, tx, ownerA, sequence.KindInvoice)
				require.NoError(t, err)
				assert.Equal(t, int64(i), n)
			}
			n, err := allocator.AllocateNext(ctx, tx, ownerB, sequence.KindInvoice)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n, "a new owner starts at 1 regardless of other owners")
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("kinds have independent counters", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())
		ownerID := uuid.New()

		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := allocator.AllocateNext(ctx, tx, ownerID, sequence.KindInvoice)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			n, err = allocator.AllocateNext(ctx, tx, ownerID, sequence.KindJobCard)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("rolled back allocation is reused", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())
		ownerID := uuid.New()

		tx := db.Begin()
		require.NoError(t, tx.Error)
		n, err := allocator.AllocateNext(ctx, tx, ownerID, sequence.KindInvoice)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		require.NoError(t, tx.Rollback().Error)

		err = db.Transaction(func(tx *gorm.DB) error {
			n, err := allocator.AllocateNext(ctx, tx, ownerID, sequence.KindInvoice)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n, "committed numbering stays gapless after rollback")
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("rejects zero owner", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())

		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := allocator.AllocateNext(ctx, tx, uuid.Nil, sequence.KindInvoice)
			assert.ErrorIs(t, err, sequence.ErrOwnerRequired)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())

		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := allocator.AllocateNext(ctx, tx, uuid.New(), sequence.Kind("receipt_no"))
			assert.ErrorIs(t, err, sequence.ErrInvalidKind)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("rejects nil transaction", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())

		_, err := allocator.AllocateNext(ctx, nil, uuid.New(), sequence.KindInvoice)
		require.Error(t, err)
	})
}

func TestGormSequenceAllocator_ConcurrentAllocations(t *testing.T) {
	ctx := context.Background()

	t.Run("N concurrent creators receive exactly 1..N", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())
		ownerID := uuid.New()

		const n = 20
		results := make(chan int64, n)
		errs := make(chan error, n)

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := db.Transaction(func(tx *gorm.DB) error {
					num, err := allocator.AllocateNext(ctx, tx, ownerID, sequence.KindInvoice)
					if err != nil {
						return err
					}
					results <- num
					return nil
				})
				if err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(results)
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		numbers := make([]int64, 0, n)
		for num := range results {
			numbers = append(numbers, num)
		}
		require.Len(t, numbers, n)

		sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
		for i, num := range numbers {
			assert.Equal(t, int64(i+1), num, "numbers must form exactly {1..N} with no gaps or duplicates")
		}
	})

	t.Run("interleaved owners keep dense independent sequences", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())
		ownerA := uuid.New()
		ownerB := uuid.New()

		const perOwner = 10
		type alloc struct {
			owner uuid.UUID
			num   int64
		}
		results := make(chan alloc, 2*perOwner)

		var wg sync.WaitGroup
		for _, ownerID := range []uuid.UUID{ownerA, ownerB} {
			for i := 0; i < perOwner; i++ {
				wg.Add(1)
				go func(ownerID uuid.UUID) {
					defer wg.Done()
					_ = db.Transaction(func(tx *gorm.DB) error {
						num, err := allocator.AllocateNext(ctx, tx, ownerID, sequence.KindJobCard)
						if err != nil {
							return err
						}
						results <- alloc{owner: ownerID, num: num}
						return nil
					})
				}(ownerID)
			}
		}
		wg.Wait()
		close(results)

		byOwner := make(map[uuid.UUID][]int64)
		for a := range results {
			byOwner[a.owner] = append(byOwner[a.owner], a.num)
		}

		for ownerID, numbers := range byOwner {
			require.Len(t, numbers, perOwner, "owner %s", ownerID)
			sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
			for i, num := range numbers {
				assert.Equal(t, int64(i+1), num)
			}
		}
	})
}

func TestGormSequenceAllocator_Peek(t *testing.T) {
	ctx := context.Background()

	t.Run("returns 0 before any allocation", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())

		n, err := allocator.Peek(ctx, uuid.New(), sequence.KindInvoice)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("returns high-water mark after allocations", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())
		ownerID := uuid.New()

		err := db.Transaction(func(tx *gorm.DB) error {
			for i := 0; i < 3; i++ {
				if _, err := allocator.AllocateNext(ctx, tx, ownerID, sequence.KindInvoice); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)

		n, err := allocator.Peek(ctx, ownerID, sequence.KindInvoice)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("rejects zero owner", func(t *testing.T) {
		db := setupTestDB(t)
		allocator := NewGormSequenceAllocator(db, zap.NewNop())

		_, err := allocator.Peek(ctx, uuid.Nil, sequence.KindInvoice)
		assert.ErrorIs(t, err, sequence.ErrOwnerRequired)
	})
}
