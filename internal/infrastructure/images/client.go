// Package images generates featured images through an image-generation API.
package images

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

// Client calls the generations endpoint and returns the hosted image URL.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	size       string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.ImageGenerator = (*Client)(nil)

// NewClient builds an image generator from configuration.
func NewClient(cfg config.ImagesConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		size:     cfg.Size,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

type generationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type generationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImage produces one image for the prompt. An empty size falls back
// to the configured default.
func (c *Client) GenerateImage(ctx context.Context, prompt, size string) (string, error) {
	if c.apiKey == "" || c.endpoint == "" {
		return "", fmt.Errorf("image generator misconfigured")
	}
	if size == "" {
		size = c.size
	}

	body, err := json.Marshal(generationRequest{
		Model:  c.model,
		Prompt: prompt,
		N:      1,
		Size:   size,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generation payload: %w", err)
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
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("image generation error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var parsed generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", fmt.Errorf("response contains no image")
	}

	if c.logger != nil {
		c.logger.Debug("image generated", "size", size)
	}
	return parsed.Data[0].URL, nil
}
