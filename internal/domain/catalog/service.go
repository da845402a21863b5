package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washdesk/backend/internal/domain/shared"
)

// Service represents a priced catalog entry (e.g. "Shirt Wash") that
// invoice lines are billed against.
type Service struct {
	shared.OwnerAggregateRoot
	Name   string          `gorm:"type:varchar(200);not null;index:idx_service_owner_name,priority:2"`
	Price  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Active bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Service) TableName() string {
	return "services"
}

// NewService creates a new catalog service
func NewService(ownerID uuid.UUID, name string, price decimal.Decimal) (*Service, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Service price cannot be negative")
	}

	return &Service{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		Name:               name,
		Price:              price,
		Active:             true,
	}, nil
}

// Update updates the service's name and price
func (s *Service) Update(name string, price decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Service price cannot be negative")
	}

	s.Name = name
	s.Price = price
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate hides the service from new invoices without deleting history
func (s *Service) Deactivate() error {
	if !s.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Service is already inactive")
	}

	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Activate re-enables a deactivated service
func (s *Service) Activate() error {
	if s.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Service is already active")
	}

	s.Active = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// DefaultService describes one entry of the starter catalog seeded for
// a fresh owner account.
type DefaultService struct {
	Name  string
	Price decimal.Decimal
}

// DefaultCatalog returns the starter catalog for new accounts.
func DefaultCatalog() []DefaultService {
	return []DefaultService{
		{Name: "Shirt Wash", Price: decimal.NewFromInt(45)},
		{Name: "T-Shirt Wash", Price: decimal.NewFromInt(40)},
		{Name: "Pants Wash", Price: decimal.NewFromInt(55)},
		{Name: "Saree Wash", Price: decimal.NewFromInt(110)},
		{Name: "Shirt Iron", Price: decimal.NewFromInt(18)},
		{Name: "Shirt Dry Clean", Price: decimal.NewFromInt(140)},
	}
}
