// Package notify sends email notifications to the stock manager.
package notify

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"labstock/config"
	"labstock/internal/logger"
	"labstock/inventory"
)

// Mailer sends notification emails over SMTP. A Mailer with no
// configured host or recipient is disabled and silently drops messages.
type Mailer struct {
	host      string
	port      int
	user      string
	password  string
	recipient string
	log       logger.Logger

	// send is swapped out in tests.
	send func(m *gomail.Message) error
}

func NewMailer(cfg config.Config, log logger.Logger) *Mailer {
	m := &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		user:      cfg.SMTPUser,
		password:  cfg.SMTPPassword,
		recipient: cfg.NotifyRecipient,
		log:       log,
	}
	m.send = func(msg *gomail.Message) error {
		dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
		return dialer.DialAndSend(msg)
	}
	return m
}

// Enabled reports whether the mailer has enough configuration to send.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.recipient != ""
}

// Send delivers a notification email. Disabled mailers return nil.
func (m *Mailer) Send(subject, body string) error {
	if !m.Enabled() {
		m.log.Debug("Notify", "mailer disabled, dropping notification",
			map[string]interface{}{"subject": subject})
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", m.recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	m.log.Info("Notify", "notification email sent",
		map[string]interface{}{"to": m.recipient, "subject": subject})
	return nil
}

// LowStock notifies the stock manager that an item needs restocking.
func (m *Mailer) LowStock(item inventory.Item) error {
	subject := fmt.Sprintf("Stock Notification: %s is %s", item.PartNum, item.Status)
	body := fmt.Sprintf(
		"Part %s (%s) is %s.\n\nB750 stock: %d (minimum %d)\nB757 stock: %d (minimum %d)\nTotal: %d\n",
		item.PartNum, item.Description, item.Status,
		item.StockB750, item.Minimum,
		item.StockB757, item.MinimumSallie,
		item.Total,
	)
	return m.Send(subject, body)
}
