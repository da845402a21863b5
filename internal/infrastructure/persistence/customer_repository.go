package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/partner"
	"github.com/washdesk/backend/internal/domain/shared"
	"github.com/washdesk/backend/internal/infrastructure/persistence/owner"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID within an owner account
func (r *GormCustomerRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*partner.Customer, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByPhone finds a customer by phone number within an owner account
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (*partner.Customer, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("phone = ?", phone).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds all customers for an owner matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}
	var customers []partner.Customer
	query := r.applyFilter(r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Scopes(owner.Scope(ownerID)), filter)

	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// ExistsByPhone checks whether a customer with the phone exists for the owner
func (r *GormCustomerRepository) ExistsByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (bool, error) {
	if err := owner.Require(ownerID); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Scopes(owner.Scope(ownerID)).
		Where("phone = ?", phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountCreatedBetween counts customers created in [from, to) for the owner
func (r *GormCustomerRepository) CountCreatedBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int64, error) {
	if err := owner.Require(ownerID); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Scopes(owner.Scope(ownerID)).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a customer (insert or update)
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	if err := owner.Require(customer.OwnerID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes a customer within an owner account
func (r *GormCustomerRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := owner.Require(ownerID); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Delete(&partner.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts customers for an owner matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	if err := owner.Require(ownerID); err != nil {
		return 0, err
	}
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Scopes(owner.Scope(ownerID)), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
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

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCustomerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ?", searchPattern, "%"+filter.Search+"%")
	}

	return query
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
