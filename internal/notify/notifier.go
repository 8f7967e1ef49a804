package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/ruolez/EggsReserve/internal/domain"
)

type EmailSettingsRepository interface {
	Get(ctx context.Context) (*domain.EmailSettings, error)
}

// MailSender abstracts the SMTP dial-and-send so tests can capture messages
// without a mail server.
type MailSender interface {
	Send(settings *domain.EmailSettings, msg *gomail.Message) error
}

type SMTPSender struct{}

func (SMTPSender) Send(settings *domain.EmailSettings, msg *gomail.Message) error {
	dialer := gomail.NewDialer(settings.SMTPHost, settings.SMTPPort, settings.SMTPUser, settings.SMTPPassword)
	return dialer.DialAndSend(msg)
}

// EmailNotifier sends the admin a mail for each new order. It is strictly
// best-effort: settings are re-read on every send so admin edits take effect
// immediately, unconfigured settings skip silently, and any failure is the
// caller's to log, never to propagate into the order result.
type EmailNotifier struct {
	settings EmailSettingsRepository
	sender   MailSender
	logger   *zap.Logger
}

func NewEmailNotifier(settings EmailSettingsRepository, sender MailSender, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		settings: settings,
		sender:   sender,
		logger:   logger,
	}
}

func (n *EmailNotifier) NotifyOrderCreated(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) error {
	settings, err := n.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("fetching email settings: %w", err)
	}

	if !settings.Configured() {
		n.logger.Info("order notification skipped: email settings not configured",
			zap.String("orderNumber", order.OrderNumber))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", settings.SMTPUser)
	msg.SetHeader("To", settings.NotificationEmail)
	msg.SetHeader("Subject", fmt.Sprintf("New Order: #%s", order.OrderNumber))
	msg.SetBody("text/html", orderNotificationBody(order, detail))

	if err := n.sender.Send(settings, msg); err != nil {
		return fmt.Errorf("sending order notification: %w", err)
	}

	n.logger.Info("order notification sent",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("recipient", settings.NotificationEmail))

	return nil
}

func orderNotificationBody(order *domain.Order, detail *domain.OrderDetail) string {
	return fmt.Sprintf(`<h1>New Order Received</h1>
<p><strong>Order #:</strong> %s</p>
<p><strong>Date:</strong> %s</p>
<p><strong>Customer:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<h2>Order Details</h2>
<table border="1" cellpadding="5" style="border-collapse: collapse;">
<tr><th>Product</th><th>Quantity</th><th>Price</th><th>Total</th></tr>
<tr><td>%s</td><td>%d</td><td>$%s</td><td>$%s</td></tr>
</table>
<p><strong>Total Amount:</strong> $%s</p>`,
		order.OrderNumber,
		order.CreatedAt.Format("2006-01-02 15:04:05"),
		order.CustomerName,
		order.Email,
		order.Phone,
		detail.Product,
		detail.Qty,
		detail.Sale.StringFixed(2),
		order.Total.StringFixed(2),
		order.Total.StringFixed(2),
	)
}
