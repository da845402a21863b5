package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/washdesk/backend/internal/domain/partner"
	"github.com/washdesk/backend/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, eventPublisher shared.EventPublisher) *CustomerService {
	return &CustomerService{
		customerRepo:   customerRepo,
		eventPublisher: eventPublisher,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	// Check if phone already exists (if provided)
	if req.Phone != "" {
		exists, err := s.customerRepo.ExistsByPhone(ctx, ownerID, req.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
		}
	}

	customer, err := partner.NewCustomer(ownerID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Address != "" {
		if err := customer.SetContact(req.Email, req.Address); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, ownerID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, ownerID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByPhone retrieves a customer by phone number
func (s *CustomerService) GetByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByPhone(ctx, ownerID, phone)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a list of customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, ownerID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}

	customers, err := s.customerRepo.FindAll(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update updates a customer
func (s *CustomerService) Update(ctx context.Context, ownerID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, ownerID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Phone != nil {
		name := customer.Name
		phone := customer.Phone

		if req.Name != nil {
			name = *req.Name
		}
		if req.Phone != nil {
			// Check for duplicate phone
			if *req.Phone != "" && *req.Phone != customer.Phone {
				exists, err := s.customerRepo.ExistsByPhone(ctx, ownerID, *req.Phone)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
				}
			}
			phone = *req.Phone
		}

		if err := customer.Update(name, phone); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Address != nil {
		email := customer.Email
		address := customer.Address

		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}

		if err := customer.SetContact(email, address); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer
func (s *CustomerService) Delete(ctx context.Context, ownerID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, ownerID, customerID)
	if err != nil {
		return err
	}

	if err := s.customerRepo.Delete(ctx, ownerID, customerID); err != nil {
		return err
	}

	customer.MarkDeleted()
	s.publishDomainEvents(ctx, customer)

	return nil
}

// publishDomainEvents publishes the customer's pending events.
// Errors are logged by the event bus, not propagated.
func (s *CustomerService) publishDomainEvents(ctx context.Context, customer *partner.Customer) {
	if s.eventPublisher == nil {
		return
	}
	events := customer.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	customer.ClearDomainEvents()
}
