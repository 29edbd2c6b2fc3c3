package services

import (
	"fmt"
	"time"

	"github.com/Govind-619/CocoMart/models"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends email through an SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer returns nil when no host is configured, which disables mail
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	if host == "" {
		return nil
	}
	if from == "" {
		from = username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendDeliveryReceipt(to, name string, order models.Order, deliveredAt time.Time) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order #%d delivered", order.ID))

	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your order <strong>#%d</strong> was delivered on %s.</p>
		<p>Quantity: %d &times; %.2f = <strong>%.2f</strong></p>
		<p>Paid: %.2f &middot; Due: %.2f</p>
	`, name, order.ID, deliveredAt.Format("2006-01-02 15:04"),
		order.Quantity, order.Rate, order.TotalPrice, order.AmountPaid, order.AmountDue)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
