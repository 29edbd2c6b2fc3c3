package services

import (
	"context"
	"strings"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"gorm.io/gorm"
)

// dueTolerance absorbs float rounding: a due below half a paisa is settled
const dueTolerance = 0.005

// LedgerService owns payments and the vendors' running balance
type LedgerService struct {
	db      *gorm.DB
	gateway PaymentGateway
	fanout  *Fanout
}

func NewLedgerService(db *gorm.DB, gateway PaymentGateway, fanout *Fanout) *LedgerService {
	return &LedgerService{db: db, gateway: gateway, fanout: fanout}
}

// application is one amount moving a payment
type application struct {
	orderID          uint
	vendorID         uint
	amount           float64
	method           string
	gatewayOrderID   string
	gatewayPaymentID string
}

// openPayment creates the payment of a freshly placed order and charges the
// order total to the vendor's balance. It runs in the order's transaction.
func (l *LedgerService) openPayment(tx *gorm.DB, order *models.Order) (*models.Payment, error) {
	payment := models.Payment{
		VendorID:      order.VendorID,
		OrderID:       order.ID,
		AmountPaid:    0,
		AmountDue:     order.TotalPrice,
		PaymentMethod: order.PaymentMethod,
		Status:        models.PaymentStatusPending,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, storeError(err, "")
	}
	if err := l.adjustBalance(tx, order.VendorID, order.TotalPrice); err != nil {
		return nil, err
	}
	if err := l.recordEvent(tx, &payment, models.PaymentEventOpened, order.TotalPrice, order.PaymentMethod, ""); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (l *LedgerService) adjustBalance(tx *gorm.DB, vendorID uint, delta float64) error {
	// vendors are soft deleted; their open balances still settle
	res := tx.Unscoped().Model(&models.User{}).
		Where("id = ?", vendorID).
		UpdateColumn("balance_due", gorm.Expr("balance_due + ?", delta))
	if res.Error != nil {
		return storeError(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("Vendor not found")
	}
	return nil
}

func (l *LedgerService) recordEvent(tx *gorm.DB, p *models.Payment, kind string, amount float64, method, gatewayPaymentID string) error {
	event := models.PaymentEvent{
		PaymentID: p.ID,
		OrderID:   p.OrderID,
		VendorID:  p.VendorID,
		Kind:      kind,
		Amount:    amount,
		Method:    method,
	}
	if gatewayPaymentID != "" {
		event.GatewayPaymentID = &gatewayPaymentID
	}
	if err := tx.Create(&event).Error; err != nil {
		return storeError(err, "")
	}
	return nil
}

// mirrorOnOrder copies the payment state onto its order
func (l *LedgerService) mirrorOnOrder(tx *gorm.DB, p *models.Payment) error {
	err := tx.Model(&models.Order{}).
		Where("id = ?", p.OrderID).
		Updates(map[string]interface{}{
			"payment_status": p.Status,
			"amount_paid":    p.AmountPaid,
			"amount_due":     p.AmountDue,
		}).Error
	return storeError(err, "Order not found")
}

// ApplyPayment records a vendor payment against an order. The amount is
// added to amount_paid in a single conditional update; amount_due never goes
// below zero and the payment completes once nothing is due. Overpayment is
// accepted and still reduces the vendor balance by the full amount.
func (l *LedgerService) ApplyPayment(ctx context.Context, vendorID, orderID uint, amount float64, method string) (*models.Payment, error) {
	if method != "" {
		m, ok := models.ParsePaymentMethod(method)
		if !ok {
			return nil, utils.InvalidInputError("Invalid payment method")
		}
		method = m
	}
	return l.apply(ctx, application{
		orderID:  orderID,
		vendorID: vendorID,
		amount:   amount,
		method:   method,
	})
}

func (l *LedgerService) apply(ctx context.Context, a application) (*models.Payment, error) {
	if a.amount <= 0 {
		return nil, utils.InvalidAmountError("Invalid payment amount")
	}
	a.amount = utils.RoundMoney(a.amount)

	var payment models.Payment
	var completedNow bool
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var before models.Payment
		if err := tx.Where("order_id = ? AND vendor_id = ?", a.orderID, a.vendorID).First(&before).Error; err != nil {
			return storeError(err, "Payment record not found")
		}

		updates := map[string]interface{}{
			"amount_paid": gorm.Expr("amount_paid + ?", a.amount),
			"amount_due":  gorm.Expr("CASE WHEN amount_due - ? > ? THEN amount_due - ? ELSE 0 END", a.amount, dueTolerance, a.amount),
		}
		if a.method != "" {
			updates["payment_method"] = a.method
		}
		if a.gatewayOrderID != "" {
			updates["gateway_order_id"] = a.gatewayOrderID
		}
		if a.gatewayPaymentID != "" {
			updates["gateway_payment_id"] = a.gatewayPaymentID
		}

		if err := tx.Model(&models.Payment{}).Where("id = ?", before.ID).Updates(updates).Error; err != nil {
			return storeError(err, "Payment record not found")
		}
		// only the update that flips pending to completed announces it
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ? AND amount_due <= ?", before.ID, models.PaymentStatusPending, dueTolerance).
			Update("status", models.PaymentStatusCompleted)
		if res.Error != nil {
			return storeError(res.Error, "Payment record not found")
		}
		completedNow = res.RowsAffected > 0
		if err := tx.First(&payment, before.ID).Error; err != nil {
			return storeError(err, "Payment record not found")
		}

		if err := l.adjustBalance(tx, a.vendorID, -a.amount); err != nil {
			return err
		}
		if err := l.recordEvent(tx, &payment, models.PaymentEventApplied, a.amount, payment.PaymentMethod, a.gatewayPaymentID); err != nil {
			return err
		}
		if err := l.mirrorOnOrder(tx, &payment); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Payment of %.2f applied to order %d (due %.2f, status %s)", a.amount, a.orderID, payment.AmountDue, payment.Status)
	if completedNow {
		l.fanout.PaymentCompleted(payment)
	}
	return &payment, nil
}

// AdminSetStatus is the administrator override of a payment's status.
// Completing with an override adds it to what was already paid; completing
// without one settles whatever is still due. A fully settled payment cannot
// be moved back to pending.
func (l *LedgerService) AdminSetStatus(ctx context.Context, paymentID uint, status string, amountPaidOverride *float64) (*models.Payment, error) {
	if !models.ValidPaymentStatus(status) {
		return nil, utils.InvalidInputError("Invalid status value")
	}
	if amountPaidOverride != nil && *amountPaidOverride < 0 {
		return nil, utils.InvalidAmountError("Amount paid cannot be negative")
	}

	var payment models.Payment
	var completedNow bool
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var before models.Payment
		if err := tx.First(&before, paymentID).Error; err != nil {
			return storeError(err, "Payment not found")
		}

		if status == models.PaymentStatusPending {
			if before.AmountDue <= dueTolerance {
				return utils.InvalidInputError("A fully settled payment cannot be reopened")
			}
			payment = before
			return nil
		}

		settled := before.AmountDue
		if amountPaidOverride != nil && *amountPaidOverride > 0 {
			settled = utils.RoundMoney(*amountPaidOverride)
		}

		// compare-and-swap on the due amount read above
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND amount_due = ?", before.ID, before.AmountDue).
			Updates(map[string]interface{}{
				"amount_paid": gorm.Expr("amount_paid + ?", settled),
				"amount_due":  0,
				"status":      models.PaymentStatusCompleted,
			})
		if res.Error != nil {
			return storeError(res.Error, "Payment not found")
		}
		if res.RowsAffected == 0 {
			return utils.ConflictError("Payment changed concurrently, retry", nil)
		}
		if err := tx.First(&payment, before.ID).Error; err != nil {
			return storeError(err, "Payment not found")
		}

		if settled > 0 {
			if err := l.adjustBalance(tx, before.VendorID, -settled); err != nil {
				return err
			}
			if err := l.recordEvent(tx, &payment, models.PaymentEventSettlement, settled, payment.PaymentMethod, ""); err != nil {
				return err
			}
		}
		if err := l.mirrorOnOrder(tx, &payment); err != nil {
			return err
		}

		completedNow = before.Status != models.PaymentStatusCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Payment %d set to %s by admin", paymentID, payment.Status)
	if completedNow {
		l.fanout.PaymentCompleted(payment)
	}
	return &payment, nil
}

// CheckoutSession is what a client needs to open the gateway checkout
type CheckoutSession struct {
	GatewayOrderID string  `json:"gateway_order_id"`
	OrderID        uint    `json:"order_id"`
	Amount         float64 `json:"amount"`
	AmountMinor    int64   `json:"amount_minor"`
	Currency       string  `json:"currency"`
	Key            string  `json:"key"`
}

// CreateCheckout opens a gateway order for amount on the vendor's order.
// A zero amount means "whatever is still due".
func (l *LedgerService) CreateCheckout(ctx context.Context, vendorID, orderID uint, amount float64) (*CheckoutSession, error) {
	if amount < 0 {
		return nil, utils.InvalidAmountError("Invalid amount")
	}
	if l.gateway == nil {
		return nil, utils.UnexpectedError("Payment gateway is not configured", nil)
	}

	var payment models.Payment
	if err := l.db.WithContext(ctx).Where("order_id = ? AND vendor_id = ?", orderID, vendorID).First(&payment).Error; err != nil {
		return nil, storeError(err, "Payment record not found")
	}
	if amount == 0 {
		amount = payment.AmountDue
	}
	if amount <= 0 {
		return nil, utils.InvalidAmountError("Nothing is due on this order")
	}
	amount = utils.RoundMoney(amount)

	minor := int64(amount*utils.MinorUnitsPerMajor + 0.5)
	gwOrder, err := l.gateway.CreateOrder(ctx, minor, "order_rcptid_"+idString(orderID), map[string]interface{}{
		"order_id":  idString(orderID),
		"vendor_id": idString(vendorID),
	})
	if err != nil {
		return nil, utils.UnexpectedError("Error creating checkout session", err)
	}

	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).Update("gateway_order_id", gwOrder.ID).Error; err != nil {
			return storeError(err, "Payment record not found")
		}
		event := models.PaymentEvent{
			PaymentID:      payment.ID,
			OrderID:        payment.OrderID,
			VendorID:       payment.VendorID,
			Kind:           models.PaymentEventCheckout,
			Amount:         amount,
			Method:         models.PaymentMethodGateway,
			GatewayOrderID: gwOrder.ID,
		}
		return storeError(tx.Create(&event).Error, "")
	})
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Gateway order %s created for order %d (%d minor units)", gwOrder.ID, orderID, minor)

	return &CheckoutSession{
		GatewayOrderID: gwOrder.ID,
		OrderID:        orderID,
		Amount:         amount,
		AmountMinor:    minor,
		Currency:       gwOrder.Currency,
		Key:            l.gateway.KeyID(),
	}, nil
}

// GatewayVerification is the client's proof that a gateway payment happened
type GatewayVerification struct {
	OrderID          uint   `json:"order_id" binding:"required"`
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// VerifyGatewayPayment checks the gateway signature, fetches the paid amount
// from the gateway and applies it. Nothing is written before the signature
// is verified, and a gateway payment that was already applied is not
// applied again.
func (l *LedgerService) VerifyGatewayPayment(ctx context.Context, vendorID uint, v GatewayVerification) (*models.Payment, error) {
	if l.gateway == nil {
		return nil, utils.UnexpectedError("Payment gateway is not configured", nil)
	}
	if strings.TrimSpace(v.GatewayOrderID) == "" || strings.TrimSpace(v.GatewayPaymentID) == "" {
		return nil, utils.InvalidInputError("Gateway order and payment ids are required")
	}
	if !l.gateway.VerifySignature(v.GatewayOrderID, v.GatewayPaymentID, v.Signature) {
		utils.LogError("Payment verification failed for order %d, vendor %d", v.OrderID, vendorID)
		return nil, utils.InvalidSignatureError()
	}

	db := l.db.WithContext(ctx)
	var payment models.Payment
	if err := db.Where("order_id = ? AND vendor_id = ?", v.OrderID, vendorID).First(&payment).Error; err != nil {
		return nil, storeError(err, "Payment record not found")
	}
	// any checkout issued for this payment may be completed, not only the latest
	var issued int64
	err := db.Model(&models.PaymentEvent{}).
		Where("payment_id = ? AND kind = ? AND gateway_order_id = ?", payment.ID, models.PaymentEventCheckout, v.GatewayOrderID).
		Count(&issued).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	if issued == 0 {
		return nil, utils.InvalidInputError("Gateway order does not belong to this order")
	}

	var applied int64
	if err := db.Model(&models.PaymentEvent{}).Where("gateway_payment_id = ?", v.GatewayPaymentID).Count(&applied).Error; err != nil {
		return nil, storeError(err, "")
	}
	if applied > 0 {
		utils.LogInfo("Gateway payment %s already applied, skipping", v.GatewayPaymentID)
		return &payment, nil
	}

	gwPayment, err := l.gateway.FetchPayment(ctx, v.GatewayPaymentID)
	if err != nil {
		return nil, utils.UnexpectedError("Failed to fetch payment from gateway", err)
	}
	if gwPayment.OrderID != "" && gwPayment.OrderID != v.GatewayOrderID {
		return nil, utils.InvalidInputError("Gateway payment does not belong to this gateway order")
	}
	if gwPayment.Status != GatewayPaymentCaptured {
		utils.LogError("Gateway payment %s is %q, not captured", v.GatewayPaymentID, gwPayment.Status)
		return nil, utils.InvalidInputError("Gateway payment is not captured")
	}

	amount := float64(gwPayment.AmountMinor) / utils.MinorUnitsPerMajor
	updated, err := l.apply(ctx, application{
		orderID:          v.OrderID,
		vendorID:         vendorID,
		amount:           amount,
		method:           models.PaymentMethodGateway,
		gatewayOrderID:   v.GatewayOrderID,
		gatewayPaymentID: v.GatewayPaymentID,
	})
	if utils.IsKind(err, utils.KindConflict) {
		// a concurrent verification of the same gateway payment won
		if err := db.First(&payment, payment.ID).Error; err != nil {
			return nil, storeError(err, "Payment record not found")
		}
		return &payment, nil
	}
	return updated, err
}

// ListPayments returns every payment with its vendor and order
func (l *LedgerService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := l.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Order").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	return payments, nil
}

// PaymentsForVendor returns the vendor's payments keyed by order id
func (l *LedgerService) PaymentsForVendor(ctx context.Context, vendorID uint) (map[uint]models.Payment, error) {
	var payments []models.Payment
	if err := l.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Find(&payments).Error; err != nil {
		return nil, storeError(err, "")
	}
	byOrder := make(map[uint]models.Payment, len(payments))
	for _, p := range payments {
		byOrder[p.OrderID] = p
	}
	return byOrder, nil
}

// Events returns the ledger trail of a payment, oldest first
func (l *LedgerService) Events(ctx context.Context, paymentID uint) ([]models.PaymentEvent, error) {
	var events []models.PaymentEvent
	if err := l.db.WithContext(ctx).Where("payment_id = ?", paymentID).Order("id ASC").Find(&events).Error; err != nil {
		return nil, storeError(err, "")
	}
	return events, nil
}
