// Package openai implements the chat-completion transport and the
// LLM-backed pipeline assistants.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/config"
	"github.com/ceddto100/SEO-LEAD/internal/metrics"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// Client talks to an OpenAI-compatible chat-completion API.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	maxTokens  int
	retries    int
	httpClient *http.Client
	usage      *UsageTracker
	logger     *slog.Logger
	sleep      func(time.Duration)
}

var _ ports.ChatClient = (*Client)(nil)

// NewClient builds a client from configuration. The usage tracker may be
// shared with other components that report session cost.
func NewClient(cfg config.OpenAIConfig, usage *UsageTracker, logger *slog.Logger) *Client {
	if usage == nil {
		usage = NewUsageTracker(logger)
	}
	return &Client{
		endpoint:  cfg.Endpoint,
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		maxTokens: cfg.MaxTokens,
		retries:   cfg.Retries,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		usage:  usage,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// Usage exposes the session usage tracker.
func (c *Client) Usage() *UsageTracker {
	return c.usage
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Ask sends a chat completion request and returns the assistant's text.
// Retries transient failures with exponential backoff (2^attempt seconds).
func (c *Client) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("openai client misconfigured")
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries+1; attempt++ {
		c.debug("openai request", "model", c.model, "attempt", attempt)

		text, err := c.complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			countRequest("ok")
			return text, nil
		}

		countRequest("error")
		lastErr = err
		c.warn("openai error", "attempt", attempt, "max_attempts", c.retries+1, "error", err)
		if attempt > c.retries {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.sleep(time.Duration(math.Pow(2, float64(attempt))) * time.Second)
	}

	return "", fmt.Errorf("chat completion after %d attempts: %w", c.retries+1, lastErr)
}

// AskJSON is Ask for JSON responses: strips markdown code fences and
// decodes into v. A parse failure surfaces as a descriptive error, never
// as silently empty data.
func (c *Client) AskJSON(ctx context.Context, systemPrompt, userPrompt string, v any) error {
	raw, err := c.Ask(ctx, systemPrompt, userPrompt)
	if err != nil {
		return err
	}
	return DecodeJSON(raw, v)
}

// DecodeJSON parses a model response as JSON, tolerating ```json fences.
func DecodeJSON(raw string, v any) error {
	cleaned := StripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		preview := raw
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return fmt.Errorf("model returned invalid JSON: %w (response starts %q)", err, preview)
	}
	return nil
}

// StripFences removes markdown code-fence lines (```json ... ```) that
// models wrap around JSON payloads.
func StripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	lines := strings.Split(cleaned, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}

	c.usage.Track(parsed.Usage.PromptTokens, parsed.Usage.CompletionTokens)
	countTokens(parsed.Usage.PromptTokens, parsed.Usage.CompletionTokens)

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func countRequest(status string) {
	if metrics.LLMRequestsTotal != nil {
		metrics.LLMRequestsTotal.WithLabelValues(status).Inc()
	}
}

func countTokens(prompt, completion int) {
	if metrics.LLMTokensTotal != nil {
		metrics.LLMTokensTotal.WithLabelValues("prompt").Add(float64(prompt))
		metrics.LLMTokensTotal.WithLabelValues("completion").Add(float64(completion))
	}
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
