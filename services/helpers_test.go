package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Govind-619/CocoMart/config"
	"github.com/Govind-619/CocoMart/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testGatewaySecret = "gateway-secret"

type published struct {
	Room    string
	Event   string
	Payload interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []published
}

func (n *recordingNotifier) Publish(room, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, published{Room: room, Event: event, Payload: payload})
}

func (n *recordingNotifier) named(event string) []published {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []published
	for _, e := range n.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

type panickingNotifier struct{}

func (panickingNotifier) Publish(string, string, interface{}) { panic("bus down") }

type receipt struct {
	To          string
	OrderID     uint
	DeliveredAt time.Time
}

type fakeMailer struct {
	sent chan receipt
	err  error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan receipt, 8)}
}

func (m *fakeMailer) SendDeliveryReceipt(to, name string, order models.Order, deliveredAt time.Time) error {
	m.sent <- receipt{To: to, OrderID: order.ID, DeliveredAt: deliveredAt}
	return m.err
}

type fakeGateway struct {
	mu         sync.Mutex
	secret     string
	orders     int
	payments   map[string]*GatewayPayment
	fetchCalls int
	createErr  error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{secret: testGatewaySecret, payments: make(map[string]*GatewayPayment)}
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountMinor int64, _ string, _ map[string]interface{}) (*GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.orders++
	return &GatewayOrder{ID: fmt.Sprintf("order_test_%d", g.orders), AmountMinor: amountMinor, Currency: "INR"}, nil
}

func (g *fakeGateway) FetchPayment(_ context.Context, id string) (*GatewayPayment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchCalls++
	p, ok := g.payments[id]
	if !ok {
		return nil, errors.New("payment not found on gateway")
	}
	cp := *p
	return &cp, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return verifySignature(g.secret, orderID, paymentID, signature)
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

// capture registers a gateway payment and returns its valid signature
func (g *fakeGateway) capture(gatewayOrderID, paymentID string, amountMinor int64) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.payments[paymentID] = &GatewayPayment{ID: paymentID, OrderID: gatewayOrderID, AmountMinor: amountMinor, Status: GatewayPaymentCaptured}
	return Signature(g.secret, gatewayOrderID, paymentID)
}

type fixture struct {
	db      *gorm.DB
	svc     *Services
	bus     *recordingNotifier
	mailer  *fakeMailer
	gateway *fakeGateway
	now     time.Time
	vendor  models.User
	driver  models.User
	admin   models.User
	coconut models.CatalogItem
	ctx     context.Context
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:      newTestDB(t),
		bus:     &recordingNotifier{},
		mailer:  newFakeMailer(),
		gateway: newFakeGateway(),
		now:     time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		ctx:     context.Background(),
	}
	f.svc = New(f.db, Options{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		Gateway:   f.gateway,
		Notifier:  f.bus,
		Mailer:    f.mailer,
		Clock:     func() time.Time { return f.now },
	})

	f.vendor = f.user(t, "Vendor One", "vendor@example.com", models.RoleVendor)
	f.driver = f.user(t, "Driver One", "driver@example.com", models.RoleDriver)
	f.admin = f.user(t, "Admin One", "admin@example.com", models.RoleAdmin)

	f.coconut = models.CatalogItem{Variety: "Tender", Size: "Large", Rate: 10, Available: true}
	require.NoError(t, f.db.Create(&f.coconut).Error)
	return f
}

func (f *fixture) user(t *testing.T, name, email, role string) models.User {
	t.Helper()
	u := models.User{Name: name, Email: email, Role: role, Password: "x"}
	require.NoError(t, f.db.Create(&u).Error)
	return u
}

func (f *fixture) placeOrder(t *testing.T, quantity int) *models.Order {
	t.Helper()
	order, err := f.svc.Orders.PlaceOrder(f.ctx, f.vendor.ID, PlaceOrderInput{
		CatalogItemID: f.coconut.ID,
		Quantity:      quantity,
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) payment(t *testing.T, orderID uint) models.Payment {
	t.Helper()
	var p models.Payment
	require.NoError(t, f.db.Where("order_id = ?", orderID).First(&p).Error)
	return p
}

func (f *fixture) order(t *testing.T, orderID uint) models.Order {
	t.Helper()
	var o models.Order
	require.NoError(t, f.db.First(&o, orderID).Error)
	return o
}

func (f *fixture) balance(t *testing.T, userID uint) float64 {
	t.Helper()
	var u models.User
	require.NoError(t, f.db.First(&u, userID).Error)
	return u.BalanceDue
}

func (f *fixture) adminPrincipal() models.Principal {
	return f.admin.Principal()
}

func (f *fixture) driverPrincipal() models.Principal {
	return f.driver.Principal()
}
