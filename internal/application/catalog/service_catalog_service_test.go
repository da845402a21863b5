package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/washdesk/backend/internal/domain/catalog"
	"github.com/washdesk/backend/internal/domain/shared"
)

// MockServiceRepository is a mock implementation of ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*catalog.Service, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Service, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindActive(ctx context.Context, ownerID uuid.UUID) ([]catalog.Service, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) ExistsForOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) SaveBatch(ctx context.Context, services []*catalog.Service) error {
	args := m.Called(ctx, services)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func TestServiceCatalogService_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("seeds the starter catalog for a fresh account", func(t *testing.T) {
		repo := new(MockServiceRepository)
		service := NewServiceCatalogService(repo)

		var seeded []*catalog.Service
		repo.On("ExistsForOwner", ctx, ownerID).Return(false, nil)
		repo.On("SaveBatch", ctx, mock.MatchedBy(func(services []*catalog.Service) bool {
			seeded = services
			return len(services) == 6
		})).Return(nil)

		err := service.SeedDefaults(ctx, ownerID)

		assert.NoError(t, err)
		assert.Len(t, seeded, 6)
		assert.Equal(t, "Shirt Wash", seeded[0].Name)
		assert.True(t, seeded[0].Price.Equal(decimal.NewFromInt(45)))
		assert.Equal(t, "Shirt Dry Clean", seeded[5].Name)
		assert.True(t, seeded[5].Price.Equal(decimal.NewFromInt(140)))
		for _, svc := range seeded {
			assert.Equal(t, ownerID, svc.OwnerID)
			assert.True(t, svc.Active)
		}
	})

	t.Run("is a no-op when the owner already has services", func(t *testing.T) {
		repo := new(MockServiceRepository)
		service := NewServiceCatalogService(repo)

		repo.On("ExistsForOwner", ctx, ownerID).Return(true, nil)

		err := service.SeedDefaults(ctx, ownerID)

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("propagates the existence check failure", func(t *testing.T) {
		repo := new(MockServiceRepository)
		service := NewServiceCatalogService(repo)

		repo.On("ExistsForOwner", ctx, ownerID).Return(false, errors.New("db down"))

		err := service.SeedDefaults(ctx, ownerID)

		assert.Error(t, err)
		repo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})
}

func TestServiceCatalogService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("creates an active service", func(t *testing.T) {
		repo := new(MockServiceRepository)
		service := NewServiceCatalogService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Service")).Return(nil)

		resp, err := service.Create(ctx, ownerID, CreateServiceRequest{
			Name:  "Blanket Wash",
			Price: decimal.NewFromInt(250),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Blanket Wash", resp.Name)
		assert.True(t, resp.Active)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		repo := new(MockServiceRepository)
		service := NewServiceCatalogService(repo)

		resp, err := service.Create(ctx, ownerID, CreateServiceRequest{
			Name:  "Blanket Wash",
			Price: decimal.NewFromInt(-1),
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestServiceCatalogService_Deactivate(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	repo := new(MockServiceRepository)
	catalogService := NewServiceCatalogService(repo)

	svc, err := catalog.NewService(ownerID, "Shirt Wash", decimal.NewFromInt(45))
	assert.NoError(t, err)

	repo.On("FindByID", ctx, ownerID, svc.ID).Return(svc, nil)
	repo.On("Save", ctx, svc).Return(nil)

	err = catalogService.Deactivate(ctx, ownerID, svc.ID)

	assert.NoError(t, err)
	assert.False(t, svc.Active)
}

func TestServiceCatalogService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	repo := new(MockServiceRepository)
	catalogService := NewServiceCatalogService(repo)

	svc, err := catalog.NewService(ownerID, "Shirt Wash", decimal.NewFromInt(45))
	assert.NoError(t, err)

	repo.On("FindByID", ctx, ownerID, svc.ID).Return(svc, nil)
	repo.On("Save", ctx, svc).Return(nil)

	newPrice := decimal.NewFromInt(50)
	resp, err := catalogService.Update(ctx, ownerID, svc.ID, UpdateServiceRequest{Price: &newPrice})

	assert.NoError(t, err)
	assert.Equal(t, "Shirt Wash", resp.Name)
	assert.True(t, resp.Price.Equal(newPrice))
}
