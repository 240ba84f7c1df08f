// Package mailer sends plain-text e-mail over SMTP.
package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Message is a plain-text e-mail.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Dialer delivers prepared messages.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer renders and sends messages.
type Mailer struct {
	from   string
	dialer Dialer
}

// New creates a Mailer that talks to the configured SMTP server.
func New(cfg Config) *Mailer {
	return NewWithDialer(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password))
}

// NewWithDialer creates a Mailer around an existing dialer.
func NewWithDialer(from string, dialer Dialer) *Mailer {
	return &Mailer{from: from, dialer: dialer}
}

// Build renders msg into a gomail message.
func (m *Mailer) Build(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	return gm
}

// Send delivers msg. gomail has no cancellation, so ctx is only checked up front.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("message has no recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(m.Build(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}
