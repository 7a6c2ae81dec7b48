package notify

import (
	"context"
	"fmt"
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/interfaces"
)

// Ensure EmailNotifier implements interfaces.Notifier
var _ interfaces.Notifier = (*EmailNotifier)(nil)

// EmailNotifier delivers daily picks over SMTP. Port 465 is dialed with
// implicit SSL, which gomail handles when SSL is set on the dialer.
type EmailNotifier struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

// NewEmailNotifier builds the notifier. Returns nil when credentials or the
// recipient are missing; the pipeline then skips email delivery with a log
// line instead of failing the run.
func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	if cfg.User == "" || cfg.Password == "" || cfg.Recipient == "" {
		slog.Info("Email credentials/recipient missing; email delivery disabled")
		return nil
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.User, cfg.Password)
	dialer.SSL = cfg.SMTPPort == 465

	return &EmailNotifier{cfg: cfg, dialer: dialer}
}

// SendPick sends one plain-text email to the configured recipient.
func (n *EmailNotifier) SendPick(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.cfg.User)
	msg.SetHeader("To", n.cfg.Recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("Email sent", "to", n.cfg.Recipient, "subject", subject)
	return nil
}
