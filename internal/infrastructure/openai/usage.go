package openai

import (
	"log/slog"
	"sync"
)

// Approximate pricing per 1M tokens.
const (
	costPer1MInput  = 2.50
	costPer1MOutput = 10.00

	// Session spend above this logs a cost alert.
	dailySpendAlertUSD = 5.00
)

// UsageStats is a snapshot of cumulative token/cost figures.
type UsageStats struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
}

// UsageTracker accumulates token counts and estimated cost for a session.
// An explicit instance, passed to whoever needs it, instead of process
// globals.
type UsageTracker struct {
	mu               sync.Mutex
	promptTokens     int
	completionTokens int
	costUSD          float64
	alerted          bool
	logger           *slog.Logger
}

// NewUsageTracker builds an empty tracker.
func NewUsageTracker(logger *slog.Logger) *UsageTracker {
	return &UsageTracker{logger: logger}
}

// Track records one completion's token usage and logs a cost alert the
// first time estimated session spend crosses the threshold.
func (u *UsageTracker) Track(promptTokens, completionTokens int) {
	if u == nil {
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.promptTokens += promptTokens
	u.completionTokens += completionTokens
	cost := (float64(promptTokens)*costPer1MInput + float64(completionTokens)*costPer1MOutput) / 1_000_000
	u.costUSD += cost

	if u.logger != nil {
		u.logger.Info("token usage",
			"prompt_tokens", promptTokens,
			"completion_tokens", completionTokens,
			"session_tokens", u.promptTokens+u.completionTokens,
			"session_cost_usd", u.costUSD,
		)
		if u.costUSD >= dailySpendAlertUSD && !u.alerted {
			u.alerted = true
			u.logger.Warn("cost alert: estimated session spend exceeds threshold",
				"spend_usd", u.costUSD,
				"threshold_usd", dailySpendAlertUSD,
			)
		}
	}
}

// Stats returns the cumulative session figures.
func (u *UsageTracker) Stats() UsageStats {
	if u == nil {
		return UsageStats{}
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	return UsageStats{
		PromptTokens:     u.promptTokens,
		CompletionTokens: u.completionTokens,
		TotalTokens:      u.promptTokens + u.completionTokens,
		EstimatedCostUSD: u.costUSD,
	}
}
