package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/washdesk/backend/internal/domain/shared"
)

func TestNewCustomer(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates customer with valid fields", func(t *testing.T) {
		customer, err := NewCustomer(ownerID, "Ravi Kumar", "+91 98450 12345")
		require.NoError(t, err)

		assert.Equal(t, ownerID, customer.OwnerID)
		assert.Equal(t, "Ravi Kumar", customer.Name)
		assert.Equal(t, "+91 98450 12345", customer.Phone)
		assert.NotEqual(t, uuid.Nil, customer.ID)
		assert.Equal(t, 1, customer.Version)

		events := customer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCustomerCreated, events[0].EventType())
		assert.Equal(t, ownerID, events[0].OwnerID())
	})

	t.Run("allows empty phone", func(t *testing.T) {
		customer, err := NewCustomer(ownerID, "Walk-in", "")
		require.NoError(t, err)
		assert.Empty(t, customer.Phone)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer(ownerID, "", "12345")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		_, err := NewCustomer(ownerID, "Ravi", "not-a-phone!")
		require.Error(t, err)
	})
}

func TestCustomerUpdate(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "Ravi Kumar", "98450 12345")
	require.NoError(t, err)
	customer.ClearDomainEvents()

	err = customer.Update("Ravi K", "98450 99999")
	require.NoError(t, err)

	assert.Equal(t, "Ravi K", customer.Name)
	assert.Equal(t, "98450 99999", customer.Phone)
	assert.Equal(t, 2, customer.Version)

	events := customer.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCustomerUpdated, events[0].EventType())
}

func TestCustomerSetContact(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "Ravi Kumar", "")
	require.NoError(t, err)

	t.Run("accepts valid email", func(t *testing.T) {
		require.NoError(t, customer.SetContact("ravi@example.com", "12 MG Road"))
		assert.Equal(t, "ravi@example.com", customer.Email)
		assert.Equal(t, "12 MG Road", customer.Address)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		err := customer.SetContact("not-an-email", "")
		require.Error(t, err)
	})
}

func TestCustomerMarkDeleted(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "Ravi Kumar", "")
	require.NoError(t, err)
	customer.ClearDomainEvents()

	customer.MarkDeleted()

	events := customer.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCustomerDeleted, events[0].EventType())
}
