package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/assistitk12/assistitk12/internal/application/notification"
	"github.com/assistitk12/assistitk12/internal/domain/organization"
)

var ErrEmailServiceNotConfigured = errors.New("email service is not configured")

var _ notification.Mailer = (*SMTPMailer)(nil)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// SSL dials with implicit TLS. Otherwise gomail upgrades with STARTTLS
	// whenever the server offers it; RequireTLS verifies the certificate.
	SSL        bool
	RequireTLS bool
}

// ConfigFromOrganization builds the dialer settings from the stored mail
// settings and the decrypted password.
func ConfigFromOrganization(m organization.MailSettings, password string) SMTPConfig {
	return SMTPConfig{
		Host:       m.Server,
		Port:       m.Port,
		Username:   m.Username,
		Password:   password,
		From:       m.DefaultSender,
		SSL:        m.UseSSL,
		RequireTLS: m.UseTLS,
	}
}

type SMTPMailer struct {
	config SMTPConfig
	send   func(m ...*gomail.Message) error
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dialer.SSL = config.SSL
	if config.SSL || config.RequireTLS {
		dialer.TLSConfig = &tls.Config{ServerName: config.Host, MinVersion: tls.VersionTLS12}
	} else {
		dialer.TLSConfig = &tls.Config{ServerName: config.Host, InsecureSkipVerify: true} //nolint:gosec // opportunistic STARTTLS only
	}

	return &SMTPMailer{config: config, send: dialer.DialAndSend}
}

// Send delivers a plain-text message. gomail has no context support, so the
// dial runs in the background and ctx only bounds how long Send waits.
func (s *SMTPMailer) Send(ctx context.Context, msg notification.Message) error {
	if msg.Empty() {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	done := make(chan error, 1)
	go func() { done <- s.send(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send email: %w", ctx.Err())
	}
}
