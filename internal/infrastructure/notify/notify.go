// Package notify delivers run summaries over Slack or SMTP email.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/config"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

const subjectPrefix = "[SEO_LEAD] "

// New selects the notifier for the configured method. Unknown or "none"
// yields a no-op notifier so callers never need a nil check.
func New(cfg config.NotificationConfig, logger *slog.Logger) ports.Notifier {
	switch strings.ToLower(cfg.Method) {
	case "slack":
		return NewSlackNotifier(cfg.Slack, logger)
	case "email":
		return NewEmailNotifier(cfg.SMTP, logger)
	default:
		return NopNotifier{}
	}
}

// NopNotifier drops every message.
type NopNotifier struct{}

// Send discards the message.
func (NopNotifier) Send(context.Context, string, string) error { return nil }

// SlackNotifier posts summaries to an incoming webhook.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.Notifier = (*SlackNotifier)(nil)

// NewSlackNotifier builds a webhook notifier.
func NewSlackNotifier(cfg config.SlackConfig, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Send posts the summary as a header block plus body section.
func (n *SlackNotifier) Send(ctx context.Context, subject, body string) error {
	if n.webhookURL == "" {
		return fmt.Errorf("slack webhook not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"blocks": []map[string]any{
			{
				"type": "header",
				"text": map[string]any{"type": "plain_text", "text": subjectPrefix + subject},
			},
			{
				"type": "section",
				"text": map[string]any{"type": "mrkdwn", "text": body},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	if n.logger != nil {
		n.logger.Debug("slack notification sent", "subject", subject)
	}
	return nil
}

// EmailNotifier sends summaries through an SMTP relay.
type EmailNotifier struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

var _ ports.Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier builds an SMTP notifier.
func NewEmailNotifier(cfg config.SMTPConfig, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, logger: logger, send: smtp.SendMail}
}

// Send mails the summary to the configured recipient.
func (n *EmailNotifier) Send(ctx context.Context, subject, body string) error {
	if n.cfg.User == "" || n.cfg.Password == "" || n.cfg.To == "" {
		return fmt.Errorf("smtp notifier misconfigured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s%s\r\n\r\n%s",
		n.cfg.User, n.cfg.To, subjectPrefix, subject, body)

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	if err := n.send(addr, auth, n.cfg.User, []string{n.cfg.To}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	if n.logger != nil {
		n.logger.Debug("email notification sent", "to", n.cfg.To, "subject", subject)
	}
	return nil
}
