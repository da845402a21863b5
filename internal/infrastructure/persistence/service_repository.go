package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/catalog"
	"github.com/washdesk/backend/internal/domain/shared"
	"github.com/washdesk/backend/internal/infrastructure/persistence/owner"
)

// GormServiceRepository implements ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a service by ID within an owner account
func (r *GormServiceRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*catalog.Service, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var service catalog.Service
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

// FindAll finds all services for an owner matching the filter
func (r *GormServiceRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Service, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var services []catalog.Service
	query := r.db.WithContext(ctx).
		Model(&catalog.Service{}).
		Scopes(owner.Scope(ownerID))

	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
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

	if err := query.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// FindActive finds all active services for an owner
func (r *GormServiceRepository) FindActive(ctx context.Context, ownerID uuid.UUID) ([]catalog.Service, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var services []catalog.Service
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// ExistsForOwner reports whether the owner has any services at all
func (r *GormServiceRepository) ExistsForOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	if err := owner.Require(ownerID); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Service{}).
		Scopes(owner.Scope(ownerID)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a service (insert or update)
func (r *GormServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	if err := owner.Require(service.OwnerID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(service).Error
}

// SaveBatch persists multiple services in one operation
func (r *GormServiceRepository) SaveBatch(ctx context.Context, services []*catalog.Service) error {
	if len(services) == 0 {
		return nil
	}
	for _, service := range services {
		if err := owner.Require(service.OwnerID); err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Create(services).Error
}

// Delete removes a service within an owner account
func (r *GormServiceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := owner.Require(ownerID); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Delete(&catalog.Service{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormServiceRepository implements ServiceRepository
var _ catalog.ServiceRepository = (*GormServiceRepository)(nil)
