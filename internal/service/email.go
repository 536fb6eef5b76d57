package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/templui/vidshare/internal/metrics"
)

// Mailer delivers account notices out of band.
type Mailer interface {
	SendPasswordResetEmail(ctx context.Context, email, token, name string) error
	SendWelcomeEmail(ctx context.Context, email, name string) error
	SendAccountDeletedEmail(ctx context.Context, email, name string) error
}

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
	resetTTL  string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, resetTTL time.Duration, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
		resetTTL:  formatTTL(resetTTL),
	}
}

// ResetURL is the link delivered to the account owner.
func (s *EmailService) ResetURL(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", s.appURL, url.QueryEscape(token))
}

func (s *EmailService) SendPasswordResetEmail(ctx context.Context, email, token, name string) error {
	resetURL := s.ResetURL(token)
	subject, body := passwordResetEmailTemplate(name, resetURL, s.resetTTL, s.appName)
	return s.send(ctx, "password_reset", email, subject, body, "url", resetURL)
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	subject, body := welcomeEmailTemplate(name, s.appURL, s.appName)
	return s.send(ctx, "welcome", email, subject, body)
}

func (s *EmailService) SendAccountDeletedEmail(ctx context.Context, email, name string) error {
	subject, body := accountDeletedEmailTemplate(name, s.appName)
	return s.send(ctx, "account_deleted", email, subject, body)
}

func (s *EmailService) send(ctx context.Context, kind, to, subject, body string, devAttrs ...any) error {
	if s.isDev {
		attrs := append([]any{"type", kind, "to", to, "subject", subject}, devAttrs...)
		slog.Info("email sent (dev mode)", attrs...)
		return nil
	}

	if s.client == nil {
		metrics.EmailDeliveryFailures.WithLabelValues(kind).Inc()
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		metrics.EmailDeliveryFailures.WithLabelValues(kind).Inc()
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

// formatTTL renders whole minutes or hours for email copy, e.g. "10 minutes".
func formatTTL(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
