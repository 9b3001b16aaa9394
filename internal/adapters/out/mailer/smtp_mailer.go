// Package mailer sends rendered notification emails over SMTP.
package mailer

import (
	"context"
	"fmt"

	"fulfillment/internal/core/ports"

	"github.com/wneessen/go-mail"
)

var _ ports.Mailer = &SMTPMailer{}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer authenticates only when a username is configured and upgrades
// to TLS when the server offers it.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, email ports.Email) error {
	msg, err := NewMessage(m.from, email)
	if err != nil {
		return err
	}
	if err = m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send %q to %s: %w", email.Subject, email.To, err)
	}
	return nil
}

// NewMessage builds the HTML message for email.
func NewMessage(from string, email ports.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", email.To, err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	return msg, nil
}
