package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), uuid.New())
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("creates draft invoice without a number", func(t *testing.T) {
		inv := newTestInvoice(t)

		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.Zero(t, inv.InvoiceNo)
		assert.True(t, inv.TotalAmount.IsZero())

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())
	})

	t.Run("rejects missing customer", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), uuid.Nil)
		require.Error(t, err)
	})
}

func TestInvoiceDisplayNo(t *testing.T) {
	inv := newTestInvoice(t)
	inv.InvoiceNo = 7
	assert.Equal(t, "00007", inv.DisplayNo())

	inv.InvoiceNo = 123456
	assert.Equal(t, "123456", inv.DisplayNo())
}

func TestInvoiceAddItem(t *testing.T) {
	inv := newTestInvoice(t)

	require.NoError(t, inv.AddItem(nil, "Shirt Wash", decimal.NewFromInt(3), decimal.NewFromInt(45)))
	require.NoError(t, inv.AddItem(nil, "Shirt Iron", decimal.NewFromInt(2), decimal.NewFromInt(18)))

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(171)), "3*45 + 2*18 = 171, got %s", inv.Subtotal)
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(171)))

	require.Error(t, inv.AddItem(nil, "", decimal.NewFromInt(1), decimal.NewFromInt(10)))
	require.Error(t, inv.AddItem(nil, "Wash", decimal.Zero, decimal.NewFromInt(10)))
	require.Error(t, inv.AddItem(nil, "Wash", decimal.NewFromInt(1), decimal.NewFromInt(-10)))
}

func TestInvoiceSetAdjustments(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.AddItem(nil, "Saree Wash", decimal.NewFromInt(1), decimal.NewFromInt(110)))

	require.NoError(t, inv.SetAdjustments(decimal.NewFromInt(11), decimal.NewFromInt(21)))
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(100)), "110 + 11 - 21 = 100, got %s", inv.TotalAmount)

	require.Error(t, inv.SetAdjustments(decimal.NewFromInt(-1), decimal.Zero))
}

func TestInvoiceApplyPayment(t *testing.T) {
	t.Run("partial then full payment", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.AddItem(nil, "Pants Wash", decimal.NewFromInt(2), decimal.NewFromInt(55)))

		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(50)))
		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
		assert.True(t, inv.BalanceAmount().Equal(decimal.NewFromInt(60)))

		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(60)))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.BalanceAmount().IsZero())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.Error(t, inv.ApplyPayment(decimal.Zero))
		require.Error(t, inv.ApplyPayment(decimal.NewFromInt(-5)))
	})

	t.Run("rejects payments on cancelled invoices", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.Cancel())
		require.Error(t, inv.ApplyPayment(decimal.NewFromInt(10)))
	})
}

func TestInvoiceStatusTransitions(t *testing.T) {
	t.Run("draft to sent to overdue", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.MarkSent())
		require.NoError(t, inv.MarkOverdue())
		assert.Equal(t, InvoiceStatusOverdue, inv.Status)
	})

	t.Run("only drafts can be sent", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.MarkSent())
		require.Error(t, inv.MarkSent())
	})

	t.Run("paid invoices cannot be cancelled", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.AddItem(nil, "Wash", decimal.NewFromInt(1), decimal.NewFromInt(40)))
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(40)))
		require.Error(t, inv.Cancel())
	})
}

func TestPaymentLifecycle(t *testing.T) {
	t.Run("complete and refund", func(t *testing.T) {
		p, err := NewPayment(uuid.New(), uuid.New(), decimal.NewFromInt(100), PaymentMethodCash)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPending, p.Status)
		assert.False(t, p.IsCompleted())

		require.NoError(t, p.Complete("rcpt-42"))
		assert.True(t, p.IsCompleted())
		require.NotNil(t, p.PaidAt)

		require.NoError(t, p.Refund())
		assert.Equal(t, PaymentStatusRefunded, p.Status)
	})

	t.Run("failed payments cannot be completed", func(t *testing.T) {
		p, err := NewPayment(uuid.New(), uuid.New(), decimal.NewFromInt(100), PaymentMethodUPI)
		require.NoError(t, err)
		require.NoError(t, p.Fail())
		require.Error(t, p.Complete(""))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), uuid.New(), decimal.Zero, PaymentMethodCash)
		require.Error(t, err)
	})
}
