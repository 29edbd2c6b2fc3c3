// Package services holds the order, payment and delivery rules shared by
// every HTTP and real-time entry point.
package services

import (
	"errors"
	"time"

	"github.com/Govind-619/CocoMart/utils"
	"gorm.io/gorm"
)

// Services bundles every service the HTTP layer needs
type Services struct {
	Catalog    *CatalogService
	Ledger     *LedgerService
	Orders     *OrderService
	Deliveries *DeliveryTracker
	Users      *UserService
	Identity   *IdentityService
	Reports    *ReportService
}

// Options configures New
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Gateway   PaymentGateway
	Notifier  Notifier
	Mailer    Mailer
	Clock     func() time.Time
}

// New wires the services against one record store
func New(db *gorm.DB, opts Options) *Services {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}

	fanout := NewFanout(opts.Notifier, opts.Mailer)
	catalog := NewCatalogService(db)
	deliveries := NewDeliveryTracker()
	ledger := NewLedgerService(db, opts.Gateway, fanout)
	orders := NewOrderService(db, catalog, ledger, deliveries, fanout, opts.Clock)

	return &Services{
		Catalog:    catalog,
		Ledger:     ledger,
		Orders:     orders,
		Deliveries: deliveries,
		Users:      NewUserService(db),
		Identity:   NewIdentityService(db, opts.JWTSecret, opts.TokenTTL),
		Reports:    NewReportService(db),
	}
}

// storeError converts a record store error into an AppError. AppErrors
// raised inside a transaction pass through untouched.
func storeError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if appErr := utils.GetAppError(err); appErr != nil {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFoundError(notFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ConflictError("Record already exists", err)
	}
	return utils.UnexpectedError("Record store failure", err)
}
