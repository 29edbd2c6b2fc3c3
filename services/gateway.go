package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayOrder is an order created on the payment gateway
type GatewayOrder struct {
	ID          string `json:"id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
}

// GatewayPaymentCaptured is the only gateway payment status that moves money
const GatewayPaymentCaptured = "captured"

// GatewayPayment is the gateway's authoritative view of a payment
type GatewayPayment struct {
	ID          string
	OrderID     string
	AmountMinor int64
	Status      string
}

// PaymentGateway is the external payment processor
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, receipt string, notes map[string]interface{}) (*GatewayOrder, error)
	FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
	KeyID() string
}

// Signature computes the hex HMAC-SHA256 of "orderID|paymentID"
func Signature(secret, gatewayOrderID, gatewayPaymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// verifySignature compares in constant time
func verifySignature(secret, gatewayOrderID, gatewayPaymentID, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := Signature(secret, gatewayOrderID, gatewayPaymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// RazorpayGateway talks to Razorpay
type RazorpayGateway struct {
	client   *razorpay.Client
	keyID    string
	secret   string
	currency string
}

func NewRazorpayGateway(keyID, secret, currency string) *RazorpayGateway {
	return &RazorpayGateway{
		client:   razorpay.NewClient(keyID, secret),
		keyID:    keyID,
		secret:   secret,
		currency: currency,
	}
}

func (g *RazorpayGateway) KeyID() string { return g.keyID }

func (g *RazorpayGateway) CreateOrder(_ context.Context, amountMinor int64, receipt string, notes map[string]interface{}) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        g.currency,
		"receipt":         receipt,
		"payment_capture": 1,
		"notes":           notes,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: response without id")
	}
	return &GatewayOrder{
		ID:          id,
		AmountMinor: toMinor(body["amount"]),
		Currency:    g.currency,
	}, nil
}

func (g *RazorpayGateway) FetchPayment(_ context.Context, paymentID string) (*GatewayPayment, error) {
	body, err := g.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay payment fetch: %w", err)
	}

	p := &GatewayPayment{ID: paymentID, AmountMinor: toMinor(body["amount"])}
	p.OrderID, _ = body["order_id"].(string)
	p.Status, _ = body["status"].(string)
	return p, nil
}

func (g *RazorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return verifySignature(g.secret, gatewayOrderID, gatewayPaymentID, signature)
}

// toMinor reads a JSON number decoded into interface{}
func toMinor(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	}
	return 0
}
