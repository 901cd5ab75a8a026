// Package email delivers rendered email templates over SMTP.
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/go-mail/mail"

	"rentora/internal/domain/notifications/emailtemplate"
	"rentora/pkg/logger"
)

// Compile-time check that SMTPSender implements emailtemplate.Mailer interface.
var _ emailtemplate.Mailer = (*SMTPSender)(nil)

// TLS modes.
const (
	TLSModeAuto = "auto" // STARTTLS when the server offers it
	TLSModeSSL  = "ssl"  // implicit TLS, usually port 465
	TLSModeNone = "none"
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	TLSMode  string
}

// SMTPSender implements emailtemplate.Mailer.
type SMTPSender struct {
	cfg    Config
	dialer *mail.Dialer
}

// NewSMTPSender creates a sender for cfg.
func NewSMTPSender(cfg Config) *SMTPSender {
	if cfg.TLSMode == "" {
		cfg.TLSMode = TLSModeAuto
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	switch cfg.TLSMode {
	case TLSModeSSL:
		d.SSL = true
	case TLSModeNone:
		d.StartTLSPolicy = mail.NoStartTLS
	}

	return &SMTPSender{cfg: cfg, dialer: d}
}

// buildMessage turns msg into a MIME message. The configured From wins over an empty sender.
func (s *SMTPSender) buildMessage(msg emailtemplate.Message) *mail.Message {
	from := msg.Sender
	if from == "" {
		from = s.cfg.From
	}

	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.Receiver)
	m.SetHeader("Subject", msg.Subject)

	if looksLikeHTML(msg.Body) {
		m.SetBody("text/html", msg.Body)
	} else {
		m.SetBody("text/plain", msg.Body)
	}
	return m
}

// Send implements emailtemplate.Mailer.
func (s *SMTPSender) Send(ctx context.Context, msg emailtemplate.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Debug(ctx, "sending email",
		"host", s.cfg.Host,
		"port", s.cfg.Port,
		"to", msg.Receiver,
		"tls_mode", s.cfg.TLSMode,
	)

	if err := s.dialer.DialAndSend(s.buildMessage(msg)); err != nil {
		logger.Error(ctx, "smtp send failed", "to", msg.Receiver, "error", err)
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func looksLikeHTML(body string) bool {
	b := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(b, "<!doctype html") || strings.HasPrefix(b, "<html")
}
