package models

import (
	"time"
)

// Delivery mirrors the shipping side of an order once a driver is assigned
type Delivery struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderID     uint       `gorm:"uniqueIndex;not null" json:"order_id"`
	DriverID    uint       `gorm:"index;not null" json:"driver_id"`
	Status      string     `gorm:"not null" json:"status"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
