package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusAssigned))
	assert.True(t, CanTransition(OrderStatusAssigned, OrderStatusOutForDelivery))
	assert.True(t, CanTransition(OrderStatusOutForDelivery, OrderStatusDelivered))

	assert.False(t, CanTransition(OrderStatusPending, OrderStatusDelivered))
	assert.False(t, CanTransition(OrderStatusAssigned, OrderStatusDelivered))
	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusAssigned, OrderStatusAssigned))

	assert.Empty(t, OrderTransitions[OrderStatusDelivered])

	assert.False(t, DriverSettableStatuses[OrderStatusAssigned])
	assert.True(t, ValidOrderStatus(OrderStatusOutForDelivery))
	assert.False(t, ValidOrderStatus("cancelled"))
}

func TestParsePaymentMethod(t *testing.T) {
	for in, want := range map[string]string{
		"cash":     PaymentMethodCash,
		"upi":      PaymentMethodUPI,
		"gateway":  PaymentMethodGateway,
		"razorpay": PaymentMethodGateway,
	} {
		got, ok := ParsePaymentMethod(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParsePaymentMethod("cheque")
	assert.False(t, ok)
	_, ok = ParsePaymentMethod("")
	assert.False(t, ok)
}

func TestRooms(t *testing.T) {
	assert.Equal(t, "admin", RoomFor(RoleAdmin, "3"))
	assert.Equal(t, "vendor:3", RoomFor(RoleVendor, "3"))
	assert.Equal(t, "driver:12", Principal{ID: 12, Role: RoleDriver}.Room())
	assert.Equal(t, "admin", Principal{ID: 1, Role: RoleAdmin}.Room())
}
