package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending        = "pending"
	OrderStatusAssigned       = "assigned"
	OrderStatusOutForDelivery = "out-for-delivery"
	OrderStatusDelivered      = "delivered"
)

// OrderTransitions lists the legal next states of every order status.
// A state with no entry is terminal.
var OrderTransitions = map[string][]string{
	OrderStatusPending:        {OrderStatusAssigned},
	OrderStatusAssigned:       {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

// DriverSettableStatuses are the statuses a driver may move an order into
var DriverSettableStatuses = map[string]bool{
	OrderStatusOutForDelivery: true,
	OrderStatusDelivered:      true,
}

// ValidOrderStatus reports whether status is a known order status
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusAssigned, OrderStatusOutForDelivery, OrderStatusDelivered:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to string) bool {
	for _, next := range OrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	VendorID      uint         `gorm:"index;not null" json:"vendor_id"`
	Vendor        *User        `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	DriverID      *uint        `gorm:"index" json:"driver_id"`
	Driver        *User        `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	CatalogItemID uint         `gorm:"index;not null" json:"coconut_id"`
	CatalogItem   *CatalogItem `gorm:"foreignKey:CatalogItemID" json:"coconut,omitempty"`
	Quantity      int          `gorm:"not null" json:"quantity"`
	Rate          float64      `gorm:"not null" json:"rate"`
	TotalPrice    float64      `gorm:"not null" json:"total_price"`
	Status        string       `gorm:"index;not null" json:"status"`
	PaymentMethod string       `gorm:"not null" json:"payment_method"`

	// mirrors of the order's Payment, kept in step by the ledger
	PaymentStatus string  `gorm:"not null" json:"payment_status"`
	AmountPaid    float64 `gorm:"not null" json:"amount_paid"`
	AmountDue     float64 `gorm:"not null" json:"amount_due"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
