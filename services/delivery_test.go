package services

import (
	"testing"
	"time"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryTracker_CreateOnAssignmentIsAnUpsert(t *testing.T) {
	f := newFixture(t)
	order := f.placeOrder(t, 1)
	other := f.user(t, "Driver Two", "driver2@example.com", models.RoleDriver)
	tracker := NewDeliveryTracker()

	first, err := tracker.CreateOnAssignment(f.db, order.ID, f.driver.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAssigned, first.Status)

	second, err := tracker.CreateOnAssignment(f.db, order.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, other.ID, second.DriverID)

	var count int64
	require.NoError(t, f.db.Model(&models.Delivery{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeliveryTracker_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	order := f.placeOrder(t, 1)
	tracker := NewDeliveryTracker()

	_, err := tracker.UpdateStatus(f.db, order.ID, models.OrderStatusOutForDelivery, nil)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = tracker.CreateOnAssignment(f.db, order.ID, f.driver.ID)
	require.NoError(t, err)

	d, err := tracker.UpdateStatus(f.db, order.ID, models.OrderStatusOutForDelivery, nil)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusOutForDelivery, d.Status)
	assert.Nil(t, d.DeliveredAt)

	at := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	d, err = tracker.UpdateStatus(f.db, order.ID, models.OrderStatusDelivered, &at)
	require.NoError(t, err)
	require.NotNil(t, d.DeliveredAt)
	assert.True(t, at.Equal(*d.DeliveredAt))

	later := at.Add(time.Hour)
	d, err = tracker.UpdateStatus(f.db, order.ID, models.OrderStatusDelivered, &later)
	require.NoError(t, err)
	assert.True(t, at.Equal(*d.DeliveredAt), "first delivery time is kept")

	var count int64
	require.NoError(t, f.db.Model(&models.Delivery{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
