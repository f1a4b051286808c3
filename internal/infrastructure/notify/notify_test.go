package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"github.com/ceddto100/SEO-LEAD/internal/config"
)

func TestNewSelectsByMethod(t *testing.T) {
	t.Parallel()

	if _, ok := New(config.NotificationConfig{Method: "slack"}, nil).(*SlackNotifier); !ok {
		t.Fatal("expected slack notifier")
	}
	if _, ok := New(config.NotificationConfig{Method: "email"}, nil).(*EmailNotifier); !ok {
		t.Fatal("expected email notifier")
	}
	if _, ok := New(config.NotificationConfig{Method: "none"}, nil).(NopNotifier); !ok {
		t.Fatal("expected nop notifier")
	}
	if _, ok := New(config.NotificationConfig{Method: "carrier-pigeon"}, nil).(NopNotifier); !ok {
		t.Fatal("unknown method must fall back to nop")
	}
}

func TestSlackSendPostsBlocks(t *testing.T) {
	t.Parallel()

	var payload struct {
		Blocks []struct {
			Type string `json:"type"`
			Text struct {
				Text string `json:"text"`
			} `json:"text"`
		} `json:"blocks"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	n := NewSlackNotifier(config.SlackConfig{WebhookURL: srv.URL}, nil)
	if err := n.Send(context.Background(), "Daily run", "5 articles written"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(payload.Blocks) != 2 {
		t.Fatalf("expected header + section blocks, got %d", len(payload.Blocks))
	}
	if payload.Blocks[0].Text.Text != "[SEO_LEAD] Daily run" {
		t.Fatalf("expected prefixed subject, got %q", payload.Blocks[0].Text.Text)
	}
	if payload.Blocks[1].Text.Text != "5 articles written" {
		t.Fatalf("unexpected body %q", payload.Blocks[1].Text.Text)
	}
}

func TestSlackSendRequiresWebhook(t *testing.T) {
	t.Parallel()

	n := NewSlackNotifier(config.SlackConfig{}, nil)
	if err := n.Send(context.Background(), "s", "b"); err == nil {
		t.Fatal("expected webhook error")
	}
}

func TestEmailSendFormatsMessage(t *testing.T) {
	t.Parallel()

	n := NewEmailNotifier(config.SMTPConfig{
		Host: "smtp.example.com", Port: 587,
		User: "bot@example.com", Password: "pw", To: "ops@example.com",
	}, nil)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string
	n.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}

	if err := n.Send(context.Background(), "Weekly report", "traffic up"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("unexpected addr %q", gotAddr)
	}
	if gotFrom != "bot@example.com" || len(gotTo) != 1 || gotTo[0] != "ops@example.com" {
		t.Fatalf("unexpected envelope: from=%q to=%v", gotFrom, gotTo)
	}
	if !strings.Contains(gotMsg, "Subject: [SEO_LEAD] Weekly report") {
		t.Fatalf("expected prefixed subject header in %q", gotMsg)
	}
	if !strings.Contains(gotMsg, "\r\n\r\ntraffic up") {
		t.Fatalf("expected body after blank line in %q", gotMsg)
	}
}

func TestEmailSendMisconfigured(t *testing.T) {
	t.Parallel()

	n := NewEmailNotifier(config.SMTPConfig{}, nil)
	if err := n.Send(context.Background(), "s", "b"); err == nil {
		t.Fatal("expected misconfiguration error")
	}
}
