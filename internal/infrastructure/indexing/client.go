// Package indexing submits published URLs for search-engine indexing.
package indexing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/config"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// Client posts URL_UPDATED notifications to the indexing API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.Indexer = (*Client)(nil)

// NewClient builds an indexing submitter.
func NewClient(cfg config.IndexingConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// SubmitURL notifies the search engine that a URL was published or updated.
func (c *Client) SubmitURL(ctx context.Context, url string) error {
	if c.endpoint == "" {
		return fmt.Errorf("indexing endpoint not configured")
	}

	body, err := json.Marshal(map[string]string{
		"url":  url,
		"type": "URL_UPDATED",
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("indexing error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	if c.logger != nil {
		c.logger.Debug("url submitted for indexing", "url", url)
	}
	return nil
}
