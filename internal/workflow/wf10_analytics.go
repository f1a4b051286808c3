package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// AnalyticsDeps wires the analytics workflow.
type AnalyticsDeps struct {
	Provider ports.AnalyticsProvider
	Analyst  ports.PerformanceAnalyst
	Sheets   ports.SheetStore
	Notifier ports.Notifier
	Logger   *slog.Logger

	// Mode selects the run depth: daily appends metrics only; weekly and
	// monthly additionally generate a report and notify.
	Mode string
	Now  func() time.Time
}

// Analytics pulls traffic, search and funnel data into the metric tabs.
type Analytics struct {
	deps AnalyticsDeps
}

// NewAnalytics constructs wf10.
func NewAnalytics(deps AnalyticsDeps) *Analytics {
	return &Analytics{deps: deps}
}

func (w *Analytics) ID() string   { return "wf10" }
func (w *Analytics) Name() string { return "analytics" }

// Run appends the day's metrics; weekly/monthly mode adds a report.
func (w *Analytics) Run(ctx context.Context) (Summary, error) {
	snapshot, err := w.deps.Provider.PullAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("pull analytics: %w", err)
	}
	rankings, err := w.deps.Provider.PullSearchConsole(ctx)
	if err != nil {
		return nil, fmt.Errorf("pull search console: %w", err)
	}

	date := today(w.deps.Now)

	organic := 0
	for _, source := range snapshot.Sources {
		if source.Medium == "organic" {
			organic = source.Sessions
		}
	}
	metricsRow := map[string]string{
		"Date":             date,
		"Sessions":         itoa(snapshot.Sessions),
		"Users":            itoa(snapshot.Users),
		"Bounce Rate":      ftoa(snapshot.BounceRate),
		"Conversions":      itoa(snapshot.Conversions),
		"Organic Sessions": itoa(organic),
	}
	if _, err := w.deps.Sheets.AppendRows(ctx, TabDailyMetrics, headersDailyMetrics, []map[string]string{metricsRow}); err != nil {
		return nil, fmt.Errorf("write daily metrics: %w", err)
	}

	rankingRows := make([]map[string]string, 0, len(rankings))
	for _, r := range rankings {
		rankingRows = append(rankingRows, map[string]string{
			"Date":        date,
			"Keyword":     r.Keyword,
			"Impressions": itoa(r.Impressions),
			"Clicks":      itoa(r.Clicks),
			"CTR":         ftoa(r.CTR),
			"Position":    ftoa(r.Position),
			"Page":        r.Page,
		})
	}
	if _, err := w.deps.Sheets.AppendRows(ctx, TabKeywordRankings, headersRankings, rankingRows); err != nil {
		return nil, fmt.Errorf("write rankings: %w", err)
	}

	summary := Summary{
		"sessions": snapshot.Sessions,
		"rankings": len(rankings),
		"mode":     w.mode(),
	}

	if w.mode() != "daily" {
		if err := w.report(ctx, summary, snapshot, rankings); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func (w *Analytics) mode() string {
	switch w.deps.Mode {
	case "weekly", "monthly":
		return w.deps.Mode
	default:
		return "daily"
	}
}

func (w *Analytics) report(ctx context.Context, summary Summary, snapshot domain.AnalyticsSnapshot, rankings []domain.KeywordRanking) error {
	leadStats, err := w.deps.Provider.PullLeadStats(ctx)
	if err != nil {
		return fmt.Errorf("pull lead stats: %w", err)
	}
	emailStats, err := w.deps.Provider.PullEmailStats(ctx)
	if err != nil {
		return fmt.Errorf("pull email stats: %w", err)
	}

	report, err := w.deps.Analyst.GenerateReport(ctx, snapshot, rankings, leadStats, emailStats)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	summary["highlights"] = report.Highlights
	summary["concerns"] = report.Concerns

	if w.deps.Notifier != nil {
		var b strings.Builder
		fmt.Fprintf(&b, "%s performance report\n\nHighlights:\n", w.mode())
		for _, h := range report.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
		if len(report.Concerns) > 0 {
			b.WriteString("\nConcerns:\n")
			for _, c := range report.Concerns {
				fmt.Fprintf(&b, "- %s\n", c)
			}
		}
		if len(report.Recommendations) > 0 {
			b.WriteString("\nRecommendations:\n")
			for _, r := range report.Recommendations {
				fmt.Fprintf(&b, "- %s\n", r)
			}
		}
		if err := w.deps.Notifier.Send(ctx, "Performance report", b.String()); err != nil && w.deps.Logger != nil {
			w.deps.Logger.Warn("notification failed", "error", err)
		}
	}
	return nil
}
