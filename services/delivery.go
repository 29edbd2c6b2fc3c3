package services

import (
	"time"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeliveryTracker keeps the Delivery row of an order in step with the order.
// It only runs inside the caller's transaction.
type DeliveryTracker struct{}

func NewDeliveryTracker() *DeliveryTracker {
	return &DeliveryTracker{}
}

// CreateOnAssignment records the driver's delivery. There is one delivery per
// order; assigning again updates the existing row.
func (t *DeliveryTracker) CreateOnAssignment(tx *gorm.DB, orderID, driverID uint) (*models.Delivery, error) {
	delivery := models.Delivery{
		OrderID:  orderID,
		DriverID: driverID,
		Status:   models.OrderStatusAssigned,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"driver_id", "status", "updated_at"}),
	}).Create(&delivery).Error
	if err != nil {
		return nil, storeError(err, "")
	}

	// the upsert does not report the id of an existing row
	if err := tx.Where("order_id = ?", orderID).First(&delivery).Error; err != nil {
		return nil, storeError(err, "Delivery not found")
	}
	return &delivery, nil
}

// UpdateStatus mirrors an order status onto its delivery. deliveredAt is only
// written if the delivery has none yet.
func (t *DeliveryTracker) UpdateStatus(tx *gorm.DB, orderID uint, status string, deliveredAt *time.Time) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := tx.Where("order_id = ?", orderID).First(&delivery).Error; err != nil {
		return nil, storeError(err, "Delivery not found")
	}

	updates := map[string]interface{}{"status": status}
	if deliveredAt != nil && delivery.DeliveredAt == nil {
		updates["delivered_at"] = *deliveredAt
	}
	if err := tx.Model(&delivery).Updates(updates).Error; err != nil {
		return nil, storeError(err, "Delivery not found")
	}
	if err := tx.First(&delivery, delivery.ID).Error; err != nil {
		return nil, storeError(err, "Delivery not found")
	}

	utils.LogDebug("Delivery %d for order %d now %s", delivery.ID, orderID, delivery.Status)
	return &delivery, nil
}
