package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/washdesk/backend/internal/domain/catalog"
	"github.com/washdesk/backend/internal/domain/shared"
)

// ServiceCatalogService manages the per-owner price list
type ServiceCatalogService struct {
	serviceRepo catalog.ServiceRepository
}

// NewServiceCatalogService creates a new ServiceCatalogService
func NewServiceCatalogService(serviceRepo catalog.ServiceRepository) *ServiceCatalogService {
	return &ServiceCatalogService{
		serviceRepo: serviceRepo,
	}
}

// Create adds a new service to the owner's catalog
func (s *ServiceCatalogService) Create(ctx context.Context, ownerID uuid.UUID, req CreateServiceRequest) (*ServiceResponse, error) {
	service, err := catalog.NewService(ownerID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}

	response := ToServiceResponse(service)
	return &response, nil
}

// SeedDefaults installs the starter catalog for a fresh owner account.
// It is idempotent: an owner that already has any services is left alone,
// so calling it on every login is safe.
func (s *ServiceCatalogService) SeedDefaults(ctx context.Context, ownerID uuid.UUID) error {
	exists, err := s.serviceRepo.ExistsForOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	defaults := catalog.DefaultCatalog()
	services := make([]*catalog.Service, 0, len(defaults))
	for _, d := range defaults {
		service, err := catalog.NewService(ownerID, d.Name, d.Price)
		if err != nil {
			return err
		}
		services = append(services, service)
	}

	return s.serviceRepo.SaveBatch(ctx, services)
}

// GetByID retrieves a service by ID
func (s *ServiceCatalogService) GetByID(ctx context.Context, ownerID, serviceID uuid.UUID) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, ownerID, serviceID)
	if err != nil {
		return nil, err
	}

	response := ToServiceResponse(service)
	return &response, nil
}

// List retrieves all services in the owner's catalog
func (s *ServiceCatalogService) List(ctx context.Context, ownerID uuid.UUID) ([]ServiceResponse, error) {
	services, err := s.serviceRepo.FindAll(ctx, ownerID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	return ToServiceResponses(services), nil
}

// ListActive retrieves the services currently offered, for pickers and
// invoice line entry
func (s *ServiceCatalogService) ListActive(ctx context.Context, ownerID uuid.UUID) ([]ServiceResponse, error) {
	services, err := s.serviceRepo.FindActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return ToServiceResponses(services), nil
}

// Update updates a service's name and price
func (s *ServiceCatalogService) Update(ctx context.Context, ownerID, serviceID uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, ownerID, serviceID)
	if err != nil {
		return nil, err
	}

	name := service.Name
	price := service.Price
	if req.Name != nil {
		name = *req.Name
	}
	if req.Price != nil {
		price = *req.Price
	}

	if err := service.Update(name, price); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}

	response := ToServiceResponse(service)
	return &response, nil
}

// Deactivate takes a service off the active price list without losing the
// history of invoices that reference it
func (s *ServiceCatalogService) Deactivate(ctx context.Context, ownerID, serviceID uuid.UUID) error {
	return s.setActive(ctx, ownerID, serviceID, false)
}

// Activate puts a previously deactivated service back on the price list
func (s *ServiceCatalogService) Activate(ctx context.Context, ownerID, serviceID uuid.UUID) error {
	return s.setActive(ctx, ownerID, serviceID, true)
}

func (s *ServiceCatalogService) setActive(ctx context.Context, ownerID, serviceID uuid.UUID, active bool) error {
	service, err := s.serviceRepo.FindByID(ctx, ownerID, serviceID)
	if err != nil {
		return err
	}

	if active {
		err = service.Activate()
	} else {
		err = service.Deactivate()
	}
	if err != nil {
		return err
	}

	return s.serviceRepo.Save(ctx, service)
}

// Delete removes a service from the catalog
func (s *ServiceCatalogService) Delete(ctx context.Context, ownerID, serviceID uuid.UUID) error {
	return s.serviceRepo.Delete(ctx, ownerID, serviceID)
}
