// Package dataforseo pulls keyword volume, competition and CPC data from
// the DataForSEO Google Ads endpoints.
package dataforseo

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
	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

const (
	searchVolumePath = "/v3/keywords_data/google_ads/search_volume/live"
	suggestionsPath  = "/v3/keywords_data/google_ads/keywords_for_keywords/live"
)

// Client calls the keyword-data API with basic auth.
type Client struct {
	endpoint     string
	login        string
	password     string
	locationCode int
	languageCode string
	httpClient   *http.Client
	logger       *slog.Logger
}

var _ ports.KeywordProvider = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.DataForSEOConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		login:        cfg.Login,
		password:     cfg.Password,
		locationCode: cfg.LocationCode,
		languageCode: cfg.LanguageCode,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type taskPayload struct {
	Keywords     []string `json:"keywords"`
	LocationCode int      `json:"location_code"`
	LanguageCode string   `json:"language_code"`
}

type liveResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Tasks         []struct {
		StatusCode int `json:"status_code"`
		Result     []struct {
			Keyword      string  `json:"keyword"`
			SearchVolume int     `json:"search_volume"`
			Competition  float64 `json:"competition"`
			CPC          float64 `json:"cpc"`
		} `json:"result"`
	} `json:"tasks"`
}

// ExpandKeywords fetches exact volume/competition/CPC data for the seeds.
func (c *Client) ExpandKeywords(ctx context.Context, seeds []string) ([]domain.KeywordMetric, error) {
	metrics, err := c.live(ctx, searchVolumePath, seeds)
	if err != nil {
		return nil, fmt.Errorf("search volume: %w", err)
	}
	return metrics, nil
}

// KeywordSuggestions fetches related-keyword ideas with their metrics.
func (c *Client) KeywordSuggestions(ctx context.Context, seeds []string) ([]domain.KeywordMetric, error) {
	metrics, err := c.live(ctx, suggestionsPath, seeds)
	if err != nil {
		return nil, fmt.Errorf("keyword suggestions: %w", err)
	}
	return metrics, nil
}

func (c *Client) live(ctx context.Context, path string, seeds []string) ([]domain.KeywordMetric, error) {
	if c.login == "" || c.password == "" {
		return nil, fmt.Errorf("dataforseo credentials missing")
	}
	if len(seeds) == 0 {
		return nil, nil
	}

	// The API takes an array of task payloads.
	body, err := json.Marshal([]taskPayload{{
		Keywords:     seeds,
		LocationCode: c.locationCode,
		LanguageCode: c.languageCode,
	}})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(c.login, c.password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("dataforseo error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed liveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.StatusCode != 0 && parsed.StatusCode != 20000 {
		return nil, fmt.Errorf("dataforseo status %d: %s", parsed.StatusCode, parsed.StatusMessage)
	}

	var metrics []domain.KeywordMetric
	for _, task := range parsed.Tasks {
		for _, r := range task.Result {
			metrics = append(metrics, domain.KeywordMetric{
				Keyword:          r.Keyword,
				SearchVolume:     r.SearchVolume,
				Competition:      r.Competition,
				CompetitionLevel: CompetitionLevel(r.Competition),
				CPC:              r.CPC,
			})
		}
	}

	c.debug("keyword data fetched", "path", path, "seeds", len(seeds), "results", len(metrics))
	return metrics, nil
}

// CompetitionLevel buckets the 0-1 competition index: below 0.33 is low,
// below 0.66 medium, otherwise high.
func CompetitionLevel(competition float64) string {
	switch {
	case competition < 0.33:
		return "low"
	case competition < 0.66:
		return "medium"
	default:
		return "high"
	}
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
