// Package sheets implements the spreadsheet-backed pipeline store over the
// Google Sheets values API.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/config"
	"github.com/ceddto100/SEO-LEAD/internal/metrics"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// RateLimiter enforces a minimum interval between consecutive calls. An
// explicit instance shared by one client, not process-global state.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	sleep    func(time.Duration)
}

// NewRateLimiter builds a limiter with the given floor between calls.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval, sleep: time.Sleep}
}

// Wait blocks until at least the configured interval has passed since the
// previous call.
func (r *RateLimiter) Wait() {
	if r == nil || r.interval <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if elapsed := now.Sub(r.last); elapsed < r.interval {
		r.sleep(r.interval - elapsed)
		now = now.Add(r.interval - elapsed)
	}
	r.last = now
}

// Client reads and writes spreadsheet tabs through the values API.
type Client struct {
	endpoint   string
	sheetID    string
	token      string
	httpClient *http.Client
	limiter    *RateLimiter
	logger     *slog.Logger
}

var _ ports.SheetStore = (*Client)(nil)

// NewClient builds a store for the configured spreadsheet.
func NewClient(cfg config.SheetsConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		sheetID:  cfg.SheetID,
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: NewRateLimiter(cfg.MinInterval()),
		logger:  logger,
	}
}

type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

// ReadTable fetches a whole tab and keys each data row by the header row.
func (c *Client) ReadTable(ctx context.Context, tab string) (ports.SheetTable, error) {
	var parsed valueRange
	if err := c.call(ctx, http.MethodGet, c.valuesURL(tab), nil, &parsed); err != nil {
		return ports.SheetTable{}, fmt.Errorf("read %s: %w", tab, err)
	}
	c.count("read")

	if len(parsed.Values) == 0 {
		return ports.SheetTable{}, nil
	}

	table := ports.SheetTable{Headers: parsed.Values[0]}
	for i, raw := range parsed.Values[1:] {
		values := make(map[string]string, len(table.Headers))
		for j, header := range table.Headers {
			if j < len(raw) {
				values[header] = raw[j]
			}
		}
		// Sheet rows are 1-indexed and row 1 is the header.
		table.Rows = append(table.Rows, ports.SheetRow{Number: i + 2, Values: values})
	}
	return table, nil
}

// AppendRows appends rows to a tab, writing the header row first when the
// tab is empty. Returns the number of data rows appended.
func (c *Client) AppendRows(ctx context.Context, tab string, headers []string, rows []map[string]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	existing, err := c.ReadTable(ctx, tab)
	if err != nil {
		return 0, err
	}

	var values [][]string
	if len(existing.Headers) == 0 {
		values = append(values, headers)
	}
	for _, row := range rows {
		line := make([]string, len(headers))
		for i, header := range headers {
			line[i] = row[header]
		}
		values = append(values, line)
	}

	appendURL := c.valuesURL(tab) + ":append?valueInputOption=USER_ENTERED"
	if err := c.call(ctx, http.MethodPost, appendURL, valueRange{Values: values}, nil); err != nil {
		return 0, fmt.Errorf("append to %s: %w", tab, err)
	}
	c.count("append")

	c.debug("rows appended", "tab", tab, "rows", len(rows))
	return len(rows), nil
}

// UpdateCell writes a single cell, addressed by 1-indexed row and column.
func (c *Client) UpdateCell(ctx context.Context, tab string, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell %d,%d", row, col)
	}

	cell := fmt.Sprintf("%s!%s%d", tab, columnLetter(col), row)
	updateURL := fmt.Sprintf("%s/%s/values/%s?valueInputOption=USER_ENTERED",
		c.endpoint, c.sheetID, url.PathEscape(cell))

	if err := c.call(ctx, http.MethodPut, updateURL, valueRange{Values: [][]string{{value}}}, nil); err != nil {
		return fmt.Errorf("update %s: %w", cell, err)
	}
	c.count("update")
	return nil
}

// HasRow reports whether any row has keyValue in keyColumn, compared
// case-insensitively.
func (c *Client) HasRow(ctx context.Context, tab, keyColumn, keyValue string) (bool, error) {
	table, err := c.ReadTable(ctx, tab)
	if err != nil {
		return false, err
	}

	want := strings.ToLower(strings.TrimSpace(keyValue))
	for _, row := range table.Rows {
		if strings.ToLower(strings.TrimSpace(row.Values[keyColumn])) == want {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) valuesURL(tab string) string {
	return fmt.Sprintf("%s/%s/values/%s", c.endpoint, c.sheetID, url.PathEscape(tab))
}

func (c *Client) call(ctx context.Context, method, callURL string, payload, out any) error {
	if c.sheetID == "" || c.token == "" {
		return fmt.Errorf("sheets store misconfigured")
	}

	c.limiter.Wait()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, callURL, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sheets error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// columnLetter converts a 1-indexed column number to A1 letters.
func columnLetter(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}

func (c *Client) count(operation string) {
	if metrics.SheetCallsTotal != nil {
		metrics.SheetCallsTotal.WithLabelValues(operation).Inc()
	}
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
