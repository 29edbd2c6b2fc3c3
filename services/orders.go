package services

import (
	"context"
	"strings"
	"time"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// OrderService drives orders through pending, assigned, out-for-delivery and
// delivered. Every transition is a single transaction covering the order,
// its payment, its delivery and the vendor balance.
type OrderService struct {
	db         *gorm.DB
	catalog    *CatalogService
	ledger     *LedgerService
	deliveries *DeliveryTracker
	fanout     *Fanout
	now        func() time.Time
}

func NewOrderService(db *gorm.DB, catalog *CatalogService, ledger *LedgerService, deliveries *DeliveryTracker, fanout *Fanout, now func() time.Time) *OrderService {
	return &OrderService{
		db:         db,
		catalog:    catalog,
		ledger:     ledger,
		deliveries: deliveries,
		fanout:     fanout,
		now:        now,
	}
}

// PlaceOrderInput is a vendor's order request
type PlaceOrderInput struct {
	CatalogItemID uint   `json:"coconut_id" binding:"required"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
}

// PlaceOrder creates a pending order at the item's current rate, opens its
// payment and charges the vendor's balance.
func (s *OrderService) PlaceOrder(ctx context.Context, vendorID uint, in PlaceOrderInput) (*models.Order, error) {
	if in.Quantity <= 0 {
		return nil, utils.InvalidInputError("Quantity must be greater than 0")
	}
	method, ok := models.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(in.PaymentMethod)))
	if !ok {
		return nil, utils.InvalidInputError("Invalid payment method")
	}

	var order models.Order
	var item *models.CatalogItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.catalog.orderable(tx, in.CatalogItemID)
		if err != nil {
			return err
		}

		total := utils.RoundMoney(item.Rate * float64(in.Quantity))
		order = models.Order{
			VendorID:      vendorID,
			CatalogItemID: item.ID,
			Quantity:      in.Quantity,
			Rate:          item.Rate,
			TotalPrice:    total,
			Status:        models.OrderStatusPending,
			PaymentMethod: method,
			PaymentStatus: models.PaymentStatusPending,
			AmountPaid:    0,
			AmountDue:     total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return storeError(err, "")
		}

		_, err = s.ledger.openPayment(tx, &order)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Order %d placed by vendor %d: %d x %s = %.2f", order.ID, vendorID, order.Quantity, item.Descriptor(), order.TotalPrice)
	order.CatalogItem = item
	s.fanout.OrderPlaced(order, *item)
	return &order, nil
}

// AssignDelivery hands a pending order to a driver
func (s *OrderService) AssignDelivery(ctx context.Context, caller models.Principal, orderID, driverID uint) (*models.Order, *models.Delivery, error) {
	if caller.Role != models.RoleAdmin {
		return nil, nil, utils.ForbiddenError("Only admins can assign deliveries")
	}

	var order models.Order
	var delivery *models.Delivery
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return storeError(err, "Order not found")
		}
		if !models.CanTransition(order.Status, models.OrderStatusAssigned) {
			return utils.InvalidTransitionError(order.Status, models.OrderStatusAssigned)
		}

		var driver models.User
		if err := tx.Where("id = ? AND role = ?", driverID, models.RoleDriver).First(&driver).Error; err != nil {
			return storeError(err, "Driver not found")
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(map[string]interface{}{
				"driver_id": driverID,
				"status":    models.OrderStatusAssigned,
			})
		if res.Error != nil {
			return storeError(res.Error, "Order not found")
		}
		if res.RowsAffected == 0 {
			return utils.InvalidTransitionError(order.Status, models.OrderStatusAssigned)
		}

		var err error
		if delivery, err = s.deliveries.CreateOnAssignment(tx, order.ID, driverID); err != nil {
			return err
		}
		return storeError(tx.First(&order, order.ID).Error, "Order not found")
	})
	if err != nil {
		return nil, nil, err
	}

	utils.LogInfo("Order %d assigned to driver %d", order.ID, driverID)
	s.fanout.DeliveryAssigned(order)
	return &order, delivery, nil
}

// UpdateStatus lets the assigned driver move an order one step forward
func (s *OrderService) UpdateStatus(ctx context.Context, caller models.Principal, orderID uint, newStatus string) (*models.Order, *models.Delivery, error) {
	newStatus = strings.TrimSpace(newStatus)
	if !models.ValidOrderStatus(newStatus) {
		return nil, nil, utils.InvalidInputError("Invalid status value")
	}

	var order models.Order
	var delivery *models.Delivery
	var vendor *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return storeError(err, "Order not found")
		}
		if caller.Role != models.RoleDriver || order.DriverID == nil || *order.DriverID != caller.ID {
			return utils.ForbiddenError("Order is not assigned to you")
		}
		from := order.Status
		if !models.DriverSettableStatuses[newStatus] || !models.CanTransition(from, newStatus) {
			return utils.InvalidTransitionError(from, newStatus)
		}

		var deliveredAt *time.Time
		if newStatus == models.OrderStatusDelivered {
			now := s.now()
			deliveredAt = &now
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ? AND driver_id = ?", order.ID, from, caller.ID).
			Update("status", newStatus)
		if res.Error != nil {
			return storeError(res.Error, "Order not found")
		}
		if res.RowsAffected == 0 {
			return utils.InvalidTransitionError(from, newStatus)
		}

		var err error
		if delivery, err = s.deliveries.UpdateStatus(tx, order.ID, newStatus, deliveredAt); err != nil {
			return err
		}

		var v models.User
		if err := tx.Unscoped().First(&v, order.VendorID).Error; err == nil {
			vendor = &v
		}
		return storeError(tx.First(&order, order.ID).Error, "Order not found")
	})
	if err != nil {
		return nil, nil, err
	}

	utils.LogInfo("Order %d moved to %s by driver %d", order.ID, order.Status, caller.ID)
	s.fanout.DeliveryStatusUpdated(order, delivery.DeliveredAt, vendor)
	return &order, delivery, nil
}

func withItem(db *gorm.DB) *gorm.DB {
	// orders keep pointing at items removed from the catalog
	return db.Preload("CatalogItem", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

// ListAll returns every order with its vendor, driver and item
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := withItem(s.db.WithContext(ctx)).
		Preload("Vendor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Driver", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	return orders, nil
}

// Get returns one order with its vendor and item
func (s *OrderService) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := withItem(s.db.WithContext(ctx)).
		Preload("Vendor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&order, orderID).Error
	if err != nil {
		return nil, storeError(err, "Order not found")
	}
	return &order, nil
}

// VendorOrderView is an order with the state of its payment merged in
type VendorOrderView struct {
	models.Order
	PaymentID uint `json:"payment_id,omitempty"`
}

// ListForVendor returns the vendor's orders, newest first, each carrying the
// current status of its payment.
func (s *OrderService) ListForVendor(ctx context.Context, vendorID uint) ([]VendorOrderView, error) {
	var orders []models.Order
	var payments map[uint]models.Payment

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := withItem(s.db.WithContext(gctx)).
			Where("vendor_id = ?", vendorID).
			Order("created_at DESC").
			Find(&orders).Error
		return storeError(err, "")
	})
	g.Go(func() error {
		var err error
		payments, err = s.ledger.PaymentsForVendor(gctx, vendorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := make([]VendorOrderView, 0, len(orders))
	for _, o := range orders {
		view := VendorOrderView{Order: o}
		if p, ok := payments[o.ID]; ok {
			view.PaymentID = p.ID
			view.PaymentStatus = p.Status
			view.AmountPaid = p.AmountPaid
			view.AmountDue = p.AmountDue
		}
		views = append(views, view)
	}
	return views, nil
}

// ListForDriver returns the driver's open orders, or the delivered ones when
// history is set
func (s *OrderService) ListForDriver(ctx context.Context, driverID uint, history bool) ([]models.Order, error) {
	q := withItem(s.db.WithContext(ctx)).
		Preload("Vendor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("driver_id = ?", driverID)
	if history {
		q = q.Where("status = ?", models.OrderStatusDelivered)
	} else {
		q = q.Where("status <> ?", models.OrderStatusDelivered)
	}

	var orders []models.Order
	if err := q.Order("updated_at DESC").Find(&orders).Error; err != nil {
		return nil, storeError(err, "")
	}
	return orders, nil
}
