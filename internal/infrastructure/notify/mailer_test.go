package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mbsolutions/storefront/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	messages []*gomail.Message
	err      error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, m...)
	return nil
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		order.Customer{
			Name:    "Juan Pérez",
			Email:   "juan@example.com",
			Phone:   "8888-8888",
			Address: "San José",
			Notes:   "Entregar por la tarde",
		},
		[]order.Line{{ProductID: 100, Name: "Mouse inalámbrico", Price: decimal.NewFromInt(8500), Quantity: 2}},
		decimal.NewFromInt(17000),
		time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestMailer_NotifyNewOrder(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewMailerWithSender(sender, "tienda@mbsolutionscr.com", "ventas@mbsolutionscr.com", zap.NewNop())

	o := testOrder(t)
	require.NoError(t, mailer.NotifyNewOrder(context.Background(), o))
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, []string{"tienda@mbsolutionscr.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"ventas@mbsolutionscr.com"}, msg.GetHeader("To"))
	assert.Contains(t, msg.GetHeader("Subject")[0], "Juan Pérez")

	// the wire body is quoted-printable, so only ASCII substrings are stable
	var body bytes.Buffer
	_, err := msg.WriteTo(&body)
	require.NoError(t, err)
	raw := body.String()
	assert.Contains(t, raw, "Nuevo pedido")
	assert.Contains(t, raw, "Mouse inal")
	assert.Contains(t, raw, "Entregar por la tarde")
}

func TestMailer_NotifyNewOrderSendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	mailer := NewMailerWithSender(sender, "tienda@mbsolutionscr.com", "ventas@mbsolutionscr.com", zap.NewNop())

	err := mailer.NotifyNewOrder(context.Background(), testOrder(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send order mail")
}

func TestNoopNotifier(t *testing.T) {
	assert.NoError(t, NoopNotifier{}.NotifyNewOrder(context.Background(), testOrder(t)))
}
