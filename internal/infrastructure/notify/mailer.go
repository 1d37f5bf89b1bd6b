// Package notify implements the outbound order notification port. Delivery
// is strictly best-effort: a failure is logged and the order stays accepted.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/mbsolutions/storefront/internal/domain/order"
	"github.com/mbsolutions/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var orderMailTemplate = template.Must(template.New("order").Parse(`
<h2>Nuevo pedido #{{.ID}}</h2>
<p><strong>Cliente:</strong> {{.Customer.Name}} ({{.Customer.Email}})</p>
{{if .Customer.Phone}}<p><strong>Teléfono:</strong> {{.Customer.Phone}}</p>{{end}}
<p><strong>Dirección:</strong> {{.Customer.Address}}</p>
{{if .Customer.Notes}}<p><strong>Notas:</strong> {{.Customer.Notes}}</p>{{end}}
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Producto</th><th>Precio</th><th>Cantidad</th></tr>
  {{range .Lines}}
  <tr><td>{{.Name}}</td><td>₡{{.Price}}</td><td>{{.Quantity}}</td></tr>
  {{end}}
</table>
<p><strong>Total: ₡{{.Total}}</strong></p>
<p>Fecha: {{.Date.Format "2006-01-02 15:04"}}</p>
`))

// MailSender abstracts gomail's dialer so tests can capture messages
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends an HTML order summary to the fixed sales address
type Mailer struct {
	sender MailSender
	from   string
	to     string
	logger *zap.Logger
}

// NewMailer creates a mailer from SMTP configuration
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		to:     cfg.SalesTo,
		logger: logger,
	}
}

// NewMailerWithSender creates a mailer with a custom transport
func NewMailerWithSender(sender MailSender, from, to string, logger *zap.Logger) *Mailer {
	return &Mailer{sender: sender, from: from, to: to, logger: logger}
}

// NotifyNewOrder renders and sends the order summary email
func (m *Mailer) NotifyNewOrder(ctx context.Context, o *order.Order) error {
	var body bytes.Buffer
	if err := orderMailTemplate.Execute(&body, o); err != nil {
		return fmt.Errorf("render order mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("Nuevo pedido #%d - %s", o.ID, o.Customer.Name))
	msg.SetBody("text/html", body.String())

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send order mail: %w", err)
	}
	m.logger.Info("order notification sent",
		zap.Int64("order_id", o.ID), zap.String("to", m.to))
	return nil
}

// NoopNotifier is used when no mail transport is configured
type NoopNotifier struct{}

// NotifyNewOrder does nothing
func (NoopNotifier) NotifyNewOrder(ctx context.Context, o *order.Order) error {
	return nil
}
