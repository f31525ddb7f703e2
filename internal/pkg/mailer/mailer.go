// Package mailer is the fire-and-forget email transport. Delivery carries no
// guarantee and is never on the critical path of a lifecycle operation.
package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer sends a single plain-text email
type Mailer interface {
	Send(to, subject, body string) error
}

// Config holds SMTP settings
type Config struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// SMTPMailer sends mail through a plain SMTP relay
type SMTPMailer struct {
	cfg     Config
	enabled bool
}

// New creates a new SMTP mailer. With no host configured the mailer is
// disabled and Send becomes a no-op.
func New(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		cfg:     cfg,
		enabled: cfg.Host != "",
	}
}

// IsEnabled checks if mail delivery is configured
func (m *SMTPMailer) IsEnabled() bool {
	return m.enabled
}

// Send delivers a plain-text email to a single recipient
func (m *SMTPMailer) Send(to, subject, body string) error {
	if !m.enabled {
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	addr := m.cfg.Host + ":" + m.cfg.Port

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}
