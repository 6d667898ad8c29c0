package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusCreated, OrderStatusPaid, true},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusAwaitingPickup, OrderStatusReceived, true},
		{OrderStatusShipped, OrderStatusPaid, false},
		{OrderStatusPaid, OrderStatusPaid, false},
		{OrderStatusAssembling, OrderStatusCancelled, true},
		{OrderStatusCreated, OrderStatusFailed, true},
		{OrderStatusPaid, OrderStatusFailed, false},
		{OrderStatusReceived, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPaid, false},
		{OrderStatusFailed, OrderStatusCreated, false},
		{OrderStatus("lost"), OrderStatusPaid, false},
		{OrderStatusCreated, OrderStatus("lost"), false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusConfirmed))
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusCancelled))
	assert.False(t, PaymentStatusConfirmed.CanTransitionTo(PaymentStatusCancelled))
	assert.False(t, PaymentStatusCancelled.CanTransitionTo(PaymentStatusConfirmed))
	assert.False(t, PaymentStatusPending.CanTransitionTo(PaymentStatusPending))
}

func TestSubtotals(t *testing.T) {
	item := OrderItem{UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2}
	line := CartLine{UnitPrice: decimal.RequireFromString("5.50"), Quantity: 3}

	assert.True(t, decimal.RequireFromString("20").Equal(item.Subtotal()))
	assert.True(t, decimal.RequireFromString("16.50").Equal(line.Subtotal()))
}

func TestNewPaginatedResponse(t *testing.T) {
	page := NewPaginatedResponse([]int{1, 2}, 25, 2, 12)

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 0, NewPaginatedResponse(nil, 0, 1, 0).TotalPages)
}
