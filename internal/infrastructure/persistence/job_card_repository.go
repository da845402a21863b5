package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/sequence"
	"github.com/washdesk/backend/internal/domain/shared"
	"github.com/washdesk/backend/internal/domain/workshop"
	"github.com/washdesk/backend/internal/infrastructure/persistence/owner"
)

// GormJobCardRepository implements JobCardRepository using GORM
type GormJobCardRepository struct {
	db        *gorm.DB
	allocator sequence.Allocator
}

// NewGormJobCardRepository creates a new GormJobCardRepository
func NewGormJobCardRepository(db *gorm.DB, allocator sequence.Allocator) *GormJobCardRepository {
	return &GormJobCardRepository{db: db, allocator: allocator}
}

// Create inserts the card and assigns its JobNo from the owner's job_no
// sequence, both inside one transaction. A rollback releases the number
// back to the counter.
func (r *GormJobCardRepository) Create(ctx context.Context, card *workshop.JobCard) error {
	if err := owner.Require(card.OwnerID); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		jobNo, err := r.allocator.AllocateNext(ctx, tx, card.OwnerID, sequence.KindJobCard)
		if err != nil {
			return err
		}
		card.JobNo = jobNo

		if err := tx.Create(card).Error; err != nil {
			return translateNumberConflict(err)
		}
		return nil
	})
}

// FindByID finds a job card by ID within an owner account
func (r *GormJobCardRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*workshop.JobCard, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var card workshop.JobCard
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindByJobNo finds a job card by its number within an owner account
func (r *GormJobCardRepository) FindByJobNo(ctx context.Context, ownerID uuid.UUID, jobNo int64) (*workshop.JobCard, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var card workshop.JobCard
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("job_no = ?", jobNo).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindAll finds all job cards for an owner matching the filter
func (r *GormJobCardRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]workshop.JobCard, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var cards []workshop.JobCard
	query := r.applyFilter(r.db.WithContext(ctx).
		Model(&workshop.JobCard{}).
		Scopes(owner.Scope(ownerID)), filter)

	if err := query.Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// FindByStatus finds job cards in a given state for an owner
func (r *GormJobCardRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status workshop.JobCardStatus, filter shared.Filter) ([]workshop.JobCard, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown job card status")
	}
	var cards []workshop.JobCard
	query := r.applyFilter(r.db.WithContext(ctx).
		Model(&workshop.JobCard{}).
		Scopes(owner.Scope(ownerID)).
		Where("status = ?", status), filter)

	if err := query.Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// CountOpen counts job cards not yet delivered or cancelled for an owner
func (r *GormJobCardRepository) CountOpen(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if err := owner.Require(ownerID); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&workshop.JobCard{}).
		Scopes(owner.Scope(ownerID)).
		Where("status NOT IN ?", []workshop.JobCardStatus{
			workshop.JobCardStatusDelivered,
			workshop.JobCardStatusCancelled,
		}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update persists changes to an existing card. JobNo is never updated.
func (r *GormJobCardRepository) Update(ctx context.Context, card *workshop.JobCard) error {
	if err := owner.Require(card.OwnerID); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&workshop.JobCard{}).
		Scopes(owner.Scope(card.OwnerID)).
		Where("id = ?", card.ID).
		Select("customer_id", "item", "problem", "status", "estimated_cost",
			"delivery_date", "notes", "version", "updated_at").
		Updates(card)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a job card within an owner account. The card's number
// is never reallocated.
func (r *GormJobCardRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := owner.Require(ownerID); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Delete(&workshop.JobCard{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormJobCardRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(item) LIKE ? OR LOWER(problem) LIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	}
	return query
}

// Ensure GormJobCardRepository implements JobCardRepository
var _ workshop.JobCardRepository = (*GormJobCardRepository)(nil)
