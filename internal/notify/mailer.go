// Package notify delivers assignment emails over SMTP.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPConfig carries the connection settings for an SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Sender   string
}

// SMTPMailer sends plain text mail through a single SMTP relay.
type SMTPMailer struct {
	config SMTPConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
	logger *slog.Logger
}

// NewSMTPMailer constructs a mailer for the given relay settings.
func NewSMTPMailer(config SMTPConfig, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{config: config, send: smtp.SendMail, logger: logger}
}

// Send delivers one message to one recipient.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m == nil {
		return fmt.Errorf("SMTPMailer is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	recipient := strings.TrimSpace(to)
	if recipient == "" {
		return fmt.Errorf("recipient address is empty")
	}

	var msg strings.Builder
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.config.Sender, m.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n\r\n", subject)
	msg.WriteString(body)

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	addr := m.config.Host + ":" + m.config.Port
	if err := m.send(addr, auth, m.config.From, []string{recipient}, []byte(msg.String())); err != nil {
		m.logger.ErrorContext(ctx, "failed to send mail", "to", recipient, "error", err)
		return err
	}

	m.logger.DebugContext(ctx, "mail sent", "to", recipient, "subject", subject)
	return nil
}

// DisabledMailer rejects every send. It stands in for SMTPMailer when no relay
// is configured so notification requests fail loudly instead of silently.
type DisabledMailer struct{}

// Send always returns an error.
func (DisabledMailer) Send(ctx context.Context, to, subject, body string) error {
	return fmt.Errorf("mail delivery is not configured")
}
