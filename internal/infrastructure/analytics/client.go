// Package analytics pulls traffic, search and funnel data from the
// reporting service.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/config"
	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// Client fetches reporting data over HTTP with bearer auth.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.AnalyticsProvider = (*Client)(nil)

// NewClient builds an analytics client from configuration.
func NewClient(cfg config.AnalyticsConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// PullAnalytics fetches the traffic snapshot.
func (c *Client) PullAnalytics(ctx context.Context) (domain.AnalyticsSnapshot, error) {
	var snapshot domain.AnalyticsSnapshot
	if err := c.get(ctx, "/analytics", &snapshot); err != nil {
		return domain.AnalyticsSnapshot{}, fmt.Errorf("pull analytics: %w", err)
	}
	return snapshot, nil
}

// PullSearchConsole fetches keyword ranking rows.
func (c *Client) PullSearchConsole(ctx context.Context) ([]domain.KeywordRanking, error) {
	var rankings []domain.KeywordRanking
	if err := c.get(ctx, "/search-console", &rankings); err != nil {
		return nil, fmt.Errorf("pull search console: %w", err)
	}
	return rankings, nil
}

// PullLeadStats fetches lead-capture totals for the window.
func (c *Client) PullLeadStats(ctx context.Context) (domain.LeadStats, error) {
	var stats domain.LeadStats
	if err := c.get(ctx, "/leads", &stats); err != nil {
		return domain.LeadStats{}, fmt.Errorf("pull lead stats: %w", err)
	}
	return stats, nil
}

// PullEmailStats fetches sequence performance.
func (c *Client) PullEmailStats(ctx context.Context) (domain.EmailStats, error) {
	var stats domain.EmailStats
	if err := c.get(ctx, "/email", &stats); err != nil {
		return domain.EmailStats{}, fmt.Errorf("pull email stats: %w", err)
	}
	return stats, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.endpoint == "" {
		return fmt.Errorf("analytics endpoint not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("analytics error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.debug("analytics data fetched", "path", path)
	return nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
