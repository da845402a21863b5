package partner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/washdesk/backend/internal/domain/partner"
	"github.com/washdesk/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, ownerID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (bool, error) {
	args := m.Called(ctx, ownerID, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) CountCreatedBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
	published []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	m.published = append(m.published, events...)
	return args.Error(0)
}

func (m *MockEventPublisher) eventTypes() []string {
	types := make([]string, len(m.published))
	for i, e := range m.published {
		types[i] = e.EventType()
	}
	return types
}

// =============================================================================
// Tests
// =============================================================================

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("creates customer and publishes created event", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		publisher := new(MockEventPublisher)
		service := NewCustomerService(repo, publisher)

		repo.On("ExistsByPhone", ctx, ownerID, "01711112222").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Create(ctx, ownerID, CreateCustomerRequest{
			Name:  "Asha Begum",
			Phone: "01711112222",
			Notes: "prefers morning pickup",
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, "Asha Begum", resp.Name)
		assert.Equal(t, ownerID, resp.OwnerID)
		assert.Contains(t, publisher.eventTypes(), partner.EventTypeCustomerCreated)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		publisher := new(MockEventPublisher)
		service := NewCustomerService(repo, publisher)

		repo.On("ExistsByPhone", ctx, ownerID, "01711112222").Return(true, nil)

		resp, err := service.Create(ctx, ownerID, CreateCustomerRequest{
			Name:  "Asha Begum",
			Phone: "01711112222",
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("skips dedup check when phone is empty", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		publisher := new(MockEventPublisher)
		service := NewCustomerService(repo, publisher)

		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Create(ctx, ownerID, CreateCustomerRequest{Name: "Walk-in"})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		repo.AssertNotCalled(t, "ExistsByPhone", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("propagates save failure without publishing", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		publisher := new(MockEventPublisher)
		service := NewCustomerService(repo, publisher)

		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(errors.New("db down"))

		resp, err := service.Create(ctx, ownerID, CreateCustomerRequest{Name: "Walk-in"})

		assert.Error(t, err)
		assert.Nil(t, resp)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	newCustomer := func() *partner.Customer {
		c, err := partner.NewCustomer(ownerID, "Asha Begum", "01711112222")
		if err != nil {
			t.Fatal(err)
		}
		c.ClearDomainEvents()
		return c
	}

	t.Run("updates name and publishes updated event", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		publisher := new(MockEventPublisher)
		service := NewCustomerService(repo, publisher)
		customer := newCustomer()

		repo.On("FindByID", ctx, ownerID, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		newName := "Asha Khatun"
		resp, err := service.Update(ctx, ownerID, customer.ID, UpdateCustomerRequest{Name: &newName})

		assert.NoError(t, err)
		assert.Equal(t, "Asha Khatun", resp.Name)
		assert.Contains(t, publisher.eventTypes(), partner.EventTypeCustomerUpdated)
	})

	t.Run("rejects changing to a phone already in use", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		publisher := new(MockEventPublisher)
		service := NewCustomerService(repo, publisher)
		customer := newCustomer()

		repo.On("FindByID", ctx, ownerID, customer.ID).Return(customer, nil)
		repo.On("ExistsByPhone", ctx, ownerID, "01733334444").Return(true, nil)

		newPhone := "01733334444"
		resp, err := service.Update(ctx, ownerID, customer.ID, UpdateCustomerRequest{Phone: &newPhone})

		assert.Error(t, err)
		assert.Nil(t, resp)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		publisher := new(MockEventPublisher)
		service := NewCustomerService(repo, publisher)
		missing := uuid.New()

		repo.On("FindByID", ctx, ownerID, missing).Return(nil, shared.ErrNotFound)

		resp, err := service.Update(ctx, ownerID, missing, UpdateCustomerRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, resp)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("deletes and publishes deleted event", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		publisher := new(MockEventPublisher)
		service := NewCustomerService(repo, publisher)

		customer, err := partner.NewCustomer(ownerID, "Asha Begum", "")
		assert.NoError(t, err)
		customer.ClearDomainEvents()

		repo.On("FindByID", ctx, ownerID, customer.ID).Return(customer, nil)
		repo.On("Delete", ctx, ownerID, customer.ID).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		err = service.Delete(ctx, ownerID, customer.ID)

		assert.NoError(t, err)
		assert.Contains(t, publisher.eventTypes(), partner.EventTypeCustomerDeleted)
		repo.AssertExpectations(t)
	})

	t.Run("repository failure suppresses the event", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		publisher := new(MockEventPublisher)
		service := NewCustomerService(repo, publisher)

		customer, err := partner.NewCustomer(ownerID, "Asha Begum", "")
		assert.NoError(t, err)
		customer.ClearDomainEvents()

		repo.On("FindByID", ctx, ownerID, customer.ID).Return(customer, nil)
		repo.On("Delete", ctx, ownerID, customer.ID).Return(shared.ErrNotFound)

		err = service.Delete(ctx, ownerID, customer.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	repo := new(MockCustomerRepository)
	publisher := new(MockEventPublisher)
	service := NewCustomerService(repo, publisher)

	c1, _ := partner.NewCustomer(ownerID, "Asha Begum", "01711112222")
	c2, _ := partner.NewCustomer(ownerID, "Rahim Uddin", "01733334444")

	repo.On("FindAll", ctx, ownerID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "created_at" && f.OrderDir == "desc"
	})).Return([]partner.Customer{*c1, *c2}, nil)
	repo.On("Count", ctx, ownerID, mock.Anything).Return(int64(2), nil)

	responses, total, err := service.List(ctx, ownerID, CustomerListFilter{})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, responses, 2)
	assert.Equal(t, "Asha Begum", responses[0].Name)
}
