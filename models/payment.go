package models

import (
	"time"
)

// Payment status constants
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Payment methods
const (
	PaymentMethodCash    = "cash"
	PaymentMethodUPI     = "upi"
	PaymentMethodGateway = "gateway"
)

// ParsePaymentMethod normalises a client supplied payment method.
// "razorpay" is accepted as the older name of the gateway method.
func ParsePaymentMethod(method string) (string, bool) {
	switch method {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodGateway:
		return method, true
	case "razorpay":
		return PaymentMethodGateway, true
	}
	return "", false
}

// ValidPaymentStatus reports whether status is a known payment status
func ValidPaymentStatus(status string) bool {
	return status == PaymentStatusPending || status == PaymentStatusCompleted
}

// Payment is the ledger row of an order. One per order.
type Payment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	VendorID         uint      `gorm:"index;not null" json:"vendor_id"`
	Vendor           *User     `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	OrderID          uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	Order            *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	AmountPaid       float64   `gorm:"not null" json:"amount_paid"`
	AmountDue        float64   `gorm:"not null" json:"amount_due"`
	PaymentMethod    string    `gorm:"not null" json:"payment_method"`
	Status           string    `gorm:"index;not null" json:"status"`
	GatewayOrderID   string    `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string    `json:"gateway_payment_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Payment event kinds
const (
	PaymentEventOpened     = "opened"
	PaymentEventApplied    = "applied"
	PaymentEventSettlement = "admin-settlement"
	PaymentEventCheckout   = "checkout"
)

// PaymentEvent is an append-only record of every amount that moved a payment.
// GatewayPaymentID is unique so a gateway payment can only be applied once.
// Checkout events record every gateway order issued for the payment.
type PaymentEvent struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	PaymentID        uint      `gorm:"index;not null" json:"payment_id"`
	OrderID          uint      `gorm:"index;not null" json:"order_id"`
	VendorID         uint      `gorm:"index;not null" json:"vendor_id"`
	Kind             string    `gorm:"not null" json:"kind"`
	Amount           float64   `gorm:"not null" json:"amount"`
	Method           string    `json:"method"`
	GatewayOrderID   string    `gorm:"index" json:"gateway_order_id,omitempty"`
	GatewayPaymentID *string   `gorm:"uniqueIndex" json:"gateway_payment_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
