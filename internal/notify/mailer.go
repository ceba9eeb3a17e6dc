// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

/*
Package notify delivers transactional email to users.

Currently the only message is the account confirmation mail sent after
signup. Delivery goes through SMTP via the go-mail library; when no SMTP
host is configured the [LogSender] fallback writes confirmation links to
the structured log instead, which keeps local development working without
a mail server.
*/
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Sender abstracts confirmation delivery so the auth service can be tested
// without a live SMTP connection.
type Sender interface {
	SendConfirmation(ctx context.Context, username, address, token string) error
}

// # SMTP Delivery

// Mailer sends confirmation mail over SMTP.
type Mailer struct {
	client  *mail.Client
	from    string
	baseURL string
}

// NewMailer builds the SMTP client.
//
// # Parameters
//   - host, port: SMTP server address.
//   - username, password: SMTP credentials (plain auth).
//   - from: The From address on outgoing mail.
//   - baseURL: The externally reachable API root, used to build confirmation links.
func NewMailer(host string, port int, username, password, from, baseURL string) (*Mailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: failed to create smtp client: %w", err)
	}

	return &Mailer{client: client, from: from, baseURL: baseURL}, nil
}

// SendConfirmation delivers the confirmation link for a freshly registered account.
func (m *Mailer) SendConfirmation(ctx context.Context, username, address, token string) error {
	message := mail.NewMsg()
	if err := message.From(m.from); err != nil {
		return fmt.Errorf("notify: invalid from address: %w", err)
	}
	if err := message.To(address); err != nil {
		return fmt.Errorf("notify: invalid recipient address %q: %w", address, err)
	}

	link := fmt.Sprintf("%s/api/v1/auth/confirm/%s", m.baseURL, token)

	message.Subject("Confirm your email")
	message.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nPlease confirm your email address by opening the link below:\n\n%s\n\nIf you did not sign up, you can ignore this message.\n",
		username, link,
	))

	if err := m.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("notify: failed to send confirmation to %q: %w", address, err)
	}

	return nil
}

// # Development Fallback

// LogSender writes confirmation links to the log instead of sending mail.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender returns a Sender that only logs.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendConfirmation logs the confirmation token instead of delivering it.
func (s *LogSender) SendConfirmation(ctx context.Context, username, address, token string) error {
	s.logger.InfoContext(ctx, "confirmation_mail_skipped",
		slog.String("username", username),
		slog.String("address", address),
		slog.String("token", token),
	)
	return nil
}
