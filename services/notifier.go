package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
)

// Event names pushed to real-time clients
const (
	EventOrderPlaced           = "order-placed"
	EventDeliveryAssigned      = "delivery-assigned"
	EventDeliveryStatusUpdated = "delivery-status-updated"
	EventPaymentCompleted      = "payment-completed"
)

// Notifier delivers an event to every connection joined to room.
// Implementations must not block and must not report delivery failures.
type Notifier interface {
	Publish(room, event string, payload interface{})
}

// NopNotifier drops every event
type NopNotifier struct{}

func (NopNotifier) Publish(string, string, interface{}) {}

// Mailer sends transactional email
type Mailer interface {
	SendDeliveryReceipt(to, name string, order models.Order, deliveredAt time.Time) error
}

type OrderPlacedEvent struct {
	OrderID    uint    `json:"order_id"`
	VendorID   uint    `json:"vendor_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Coconut    string  `json:"coconut"`
	Message    string  `json:"message"`
}

type DeliveryAssignedEvent struct {
	OrderID uint   `json:"order_id"`
	Message string `json:"message"`
}

type DeliveryStatusEvent struct {
	OrderID     uint       `json:"order_id"`
	Status      string     `json:"status"`
	DriverID    uint       `json:"driver_id"`
	VendorID    uint       `json:"vendor_id,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at"`
	Message     string     `json:"message"`
}

type PaymentCompletedEvent struct {
	OrderID    uint    `json:"order_id"`
	PaymentID  uint    `json:"payment_id"`
	AmountPaid float64 `json:"amount_paid"`
	AmountDue  float64 `json:"amount_due"`
	Message    string  `json:"message"`
}

// Fanout turns committed lifecycle and ledger transitions into room events.
// Every call is best effort: a failing bus or mailer is logged and ignored.
type Fanout struct {
	bus    Notifier
	mailer Mailer
}

func NewFanout(bus Notifier, mailer Mailer) *Fanout {
	return &Fanout{bus: bus, mailer: mailer}
}

func (f *Fanout) publish(room, event string, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogError("Notification %s to %s dropped: %v", event, room, r)
		}
	}()
	f.bus.Publish(room, event, payload)
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// OrderPlaced tells every admin about a new order
func (f *Fanout) OrderPlaced(order models.Order, item models.CatalogItem) {
	f.publish(models.RoleAdmin, EventOrderPlaced, OrderPlacedEvent{
		OrderID:    order.ID,
		VendorID:   order.VendorID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Coconut:    item.Descriptor(),
		Message:    "A new order has been placed.",
	})
}

// DeliveryAssigned tells the driver about the order handed to them
func (f *Fanout) DeliveryAssigned(order models.Order) {
	if order.DriverID == nil {
		return
	}
	f.publish(models.RoomFor(models.RoleDriver, idString(*order.DriverID)), EventDeliveryAssigned, DeliveryAssignedEvent{
		OrderID: order.ID,
		Message: "A new delivery has been assigned to you.",
	})
}

// DeliveryStatusUpdated tells the admins and the order's vendor about a
// driver update. A receipt is mailed to the vendor once the order is delivered.
func (f *Fanout) DeliveryStatusUpdated(order models.Order, deliveredAt *time.Time, vendor *models.User) {
	var driverID uint
	if order.DriverID != nil {
		driverID = *order.DriverID
	}

	f.publish(models.RoleAdmin, EventDeliveryStatusUpdated, DeliveryStatusEvent{
		OrderID:     order.ID,
		Status:      order.Status,
		DriverID:    driverID,
		VendorID:    order.VendorID,
		DeliveredAt: deliveredAt,
		Message:     fmt.Sprintf("Order %d updated to %s", order.ID, order.Status),
	})
	f.publish(models.RoomFor(models.RoleVendor, idString(order.VendorID)), EventDeliveryStatusUpdated, DeliveryStatusEvent{
		OrderID:     order.ID,
		Status:      order.Status,
		DriverID:    driverID,
		DeliveredAt: deliveredAt,
		Message:     fmt.Sprintf("Your order %d is now %s", order.ID, order.Status),
	})

	if f.mailer != nil && vendor != nil && deliveredAt != nil && vendor.Email != "" {
		go func(to, name string, order models.Order, at time.Time) {
			if err := f.mailer.SendDeliveryReceipt(to, name, order, at); err != nil {
				utils.LogError("Failed to mail receipt for order %d: %v", order.ID, err)
			}
		}(vendor.Email, vendor.Name, order, *deliveredAt)
	}
}

// PaymentCompleted tells the admins and the vendor that an order is fully paid
func (f *Fanout) PaymentCompleted(p models.Payment) {
	event := PaymentCompletedEvent{
		OrderID:    p.OrderID,
		PaymentID:  p.ID,
		AmountPaid: p.AmountPaid,
		AmountDue:  p.AmountDue,
		Message:    fmt.Sprintf("Payment for order %d completed", p.OrderID),
	}
	f.publish(models.RoleAdmin, EventPaymentCompleted, event)
	f.publish(models.RoomFor(models.RoleVendor, idString(p.VendorID)), EventPaymentCompleted, event)
}
