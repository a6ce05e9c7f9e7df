package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"

	"labstock/config"
	"labstock/internal/logger"
	"labstock/inventory"
)

func TestMailerDisabled(t *testing.T) {
	m := NewMailer(config.Config{}, logger.Nop{})
	assert.False(t, m.Enabled())

	sent := false
	m.send = func(*gomail.Message) error {
		sent = true
		return nil
	}

	require.NoError(t, m.Send("subject", "body"))
	assert.False(t, sent, "disabled mailer must not dial")
}

func TestMailerLowStock(t *testing.T) {
	cfg := config.Config{
		SMTPHost:        "smtp.example.com",
		SMTPPort:        465,
		SMTPUser:        "stockroom@example.com",
		NotifyRecipient: "manager@example.com",
	}
	m := NewMailer(cfg, logger.Nop{})
	require.True(t, m.Enabled())

	var captured *gomail.Message
	m.send = func(msg *gomail.Message) error {
		captured = msg
		return nil
	}

	item := inventory.Item{PartNum: "CAP-0042", Description: "100uF", StockB750: 0, Minimum: 3}
	item.Recompute()
	require.NoError(t, m.LowStock(item))

	require.NotNil(t, captured)
	assert.Equal(t, []string{"manager@example.com"}, captured.GetHeader("To"))
	assert.Contains(t, captured.GetHeader("Subject")[0], "CAP-0042")
}
