package email

import (
	"fmt"
	"time"

	mail "github.com/go-mail/mail/v2"
	"github.com/rs/zerolog"
)

// Config holds configuration for the SMTP server
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// Mailer defines the interface for outbound email
type Mailer interface {
	Send(toEmail, toName, subject, htmlBody string) error
}

// SMTPMailer implements Mailer over SMTP
type SMTPMailer struct {
	config Config
	dialer *mail.Dialer
	logger zerolog.Logger
}

// NewMailer creates a new SMTPMailer
func NewMailer(config Config, logger zerolog.Logger) *SMTPMailer {
	dialer := mail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dialer.Timeout = 10 * time.Second

	return &SMTPMailer{
		config: config,
		dialer: dialer,
		logger: logger,
	}
}

// Send delivers a single HTML email. When SMTP credentials are not
// configured the message is logged instead, so development environments
// work without a mail server.
func (m *SMTPMailer) Send(toEmail, toName, subject, htmlBody string) error {
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.config.FromEmail, m.config.FromName)
	msg.SetAddressHeader("To", toEmail, toName)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
