// Package wordpress publishes formatted articles through the WP REST API.
package wordpress

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

const postsPath = "/wp-json/wp/v2/posts"

// Publisher creates posts on a WordPress site.
type Publisher struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher builds a publisher from configuration.
func NewPublisher(cfg config.WordPressConfig, logger *slog.Logger) *Publisher {
	return &Publisher{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type postPayload struct {
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Slug    string         `json:"slug"`
	Status  string         `json:"status"`
	Excerpt string         `json:"excerpt"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Publish creates the post as published content with its SEO meta fields.
func (p *Publisher) Publish(ctx context.Context, article domain.Article) (domain.PublishedPost, error) {
	if p.baseURL == "" || p.token == "" {
		return domain.PublishedPost{}, fmt.Errorf("wordpress publisher misconfigured")
	}

	payload := postPayload{
		Title:   article.Title,
		Content: article.HTML,
		Slug:    article.Meta.Slug,
		Status:  "publish",
		Excerpt: article.Meta.MetaDescription,
		Meta: map[string]any{
			"_yoast_wpseo_title":    article.Meta.MetaTitle,
			"_yoast_wpseo_metadesc": article.Meta.MetaDescription,
			"_yoast_wpseo_focuskw":  article.Meta.FocusKeyword,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.PublishedPost{}, fmt.Errorf("marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+postsPath, bytes.NewReader(body))
	if err != nil {
		return domain.PublishedPost{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.PublishedPost{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.PublishedPost{}, fmt.Errorf("wordpress error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var post domain.PublishedPost
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return domain.PublishedPost{}, fmt.Errorf("decode response: %w", err)
	}

	if p.logger != nil {
		p.logger.Info("post published", "id", post.ID, "slug", post.Slug, "link", post.Link)
	}
	return post, nil
}
