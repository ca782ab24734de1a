package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"

	"workdesk/internal/platform/config"
)

// Mailer sends plain-text mail. The noop implementation is used whenever SMTP
// is not configured so callers never need to nil-check.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

func New(cfg config.Config) Mailer {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopMailer{}
	}
	return &smtpMailer{
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		host:     cfg.SMTPHost,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		useTLS:   cfg.SMTPUseTLS,
	}
}

type noopMailer struct{}

func (noopMailer) Send(_ context.Context, _, to, subject, _ string) error {
	slog.Debug("email disabled, dropping message", "to", to, "subject", subject)
	return nil
}

type smtpMailer struct {
	addr     string
	host     string
	username string
	password string
	useTLS   bool
}

// Send speaks the SMTP session explicitly instead of using smtp.SendMail so
// the STARTTLS upgrade is mandatory when SMTP_USE_TLS is on: a relay that
// cannot negotiate TLS fails the send rather than silently delivering
// credentials and mail in the clear.
func (m *smtpMailer) Send(_ context.Context, from, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", from, to, subject, body)

	client, err := smtp.Dial(m.addr)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", m.addr, err)
	}
	defer client.Close()

	if m.useTLS {
		if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("starttls with %s: %w", m.host, err)
		}
	}
	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from %s: %w", from, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to %s: %w", to, err)
	}
	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		wc.Close()
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return client.Quit()
}
