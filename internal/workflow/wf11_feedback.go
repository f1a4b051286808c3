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

// FeedbackDeps wires the feedback-loop workflow.
type FeedbackDeps struct {
	Analyst ports.PerformanceAnalyst
	Sheets  ports.SheetStore
	Logger  *slog.Logger

	Now func() time.Time
}

// Feedback turns performance data into new pipeline work: refresh
// candidates re-enter the calendar, new keyword targets enter the queue,
// and underperformer fixes land in the optimization log.
type Feedback struct {
	deps FeedbackDeps
}

// NewFeedback constructs wf11.
func NewFeedback(deps FeedbackDeps) *Feedback {
	return &Feedback{deps: deps}
}

func (w *Feedback) ID() string   { return "wf11" }
func (w *Feedback) Name() string { return "feedback loop" }

// Run analyzes ranking data and feeds the results back into the pipeline.
func (w *Feedback) Run(ctx context.Context) (Summary, error) {
	pages, err := w.collectPages(ctx)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return Summary{"refreshes": 0, "new_targets": 0, "fixes": 0}, nil
	}

	analysis, err := w.deps.Analyst.AnalyzePerformance(ctx, pages)
	if err != nil {
		return nil, fmt.Errorf("analyze performance: %w", err)
	}

	date := today(w.deps.Now)

	refreshes, err := w.queueRefreshes(ctx, analysis.RefreshCandidates, date)
	if err != nil {
		return nil, err
	}
	targets, err := w.queueTargets(ctx, analysis.KeywordAdjustments.NewTargets, date)
	if err != nil {
		return nil, err
	}
	fixes, err := w.logFixes(ctx, analysis.UnderperformerFixes, date)
	if err != nil {
		return nil, err
	}

	if w.deps.Logger != nil {
		w.deps.Logger.Info("feedback loop done", "refreshes", refreshes, "new_targets", targets, "fixes", fixes)
	}
	return Summary{"refreshes": refreshes, "new_targets": targets, "fixes": fixes}, nil
}

// collectPages builds the analysis input from the most recent ranking rows.
func (w *Feedback) collectPages(ctx context.Context) ([]domain.PagePerformance, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabKeywordRankings)
	if err != nil {
		return nil, fmt.Errorf("read rankings: %w", err)
	}

	// Keep the latest row per page.
	latest := map[string]domain.PagePerformance{}
	var order []string
	for _, row := range table.Rows {
		page := row.Values["Page"]
		if page == "" {
			continue
		}
		if _, seen := latest[page]; !seen {
			order = append(order, page)
		}
		latest[page] = domain.PagePerformance{
			URL:      page,
			Keyword:  row.Values["Keyword"],
			Sessions: atoi(row.Values["Clicks"]),
		}
	}

	pages := make([]domain.PagePerformance, 0, len(order))
	for _, page := range order {
		pages = append(pages, latest[page])
	}
	return pages, nil
}

// queueRefreshes re-enters declining pages into the calendar at top priority.
func (w *Feedback) queueRefreshes(ctx context.Context, candidates []domain.PagePerformance, date string) (int, error) {
	rows := make([]map[string]string, 0, len(candidates))
	for _, page := range candidates {
		rows = append(rows, map[string]string{
			"Publish Date":     date,
			"Title":            fmt.Sprintf("Refresh: %s", page.Keyword),
			"Keyword":          page.Keyword,
			"Type":             "content refresh",
			"Word Count":       "0",
			"Priority":         "1",
			"Pillar/Cluster":   domain.Cluster,
			"Slug":             strings.TrimPrefix(page.URL, "/blog/"),
			"Meta Description": "",
			"Internal Links":   "",
			"Status":           string(domain.StatusPlanned),
		})
	}
	n, err := w.deps.Sheets.AppendRows(ctx, TabContentCalendar, headersContentCalendar, rows)
	if err != nil {
		return 0, fmt.Errorf("queue refreshes: %w", err)
	}
	return n, nil
}

// queueTargets enters fresh keyword targets into the content queue.
func (w *Feedback) queueTargets(ctx context.Context, targets []string, date string) (int, error) {
	var rows []map[string]string
	for _, keyword := range targets {
		exists, err := w.deps.Sheets.HasRow(ctx, TabContentQueue, "Keyword", keyword)
		if err != nil {
			return 0, fmt.Errorf("target dedup: %w", err)
		}
		if exists {
			continue
		}
		rows = append(rows, map[string]string{
			"Keyword":           keyword,
			"Volume":            "0",
			"Intent":            "",
			"Opportunity Score": "0",
			"Status":            string(domain.StatusNew),
			"Source":            "feedback-loop",
			"Date":              date,
		})
	}
	n, err := w.deps.Sheets.AppendRows(ctx, TabContentQueue, headersContentQueue, rows)
	if err != nil {
		return 0, fmt.Errorf("queue targets: %w", err)
	}
	return n, nil
}

func (w *Feedback) logFixes(ctx context.Context, fixes []domain.UnderperformerFix, date string) (int, error) {
	rows := make([]map[string]string, 0, len(fixes))
	for _, fix := range fixes {
		rows = append(rows, map[string]string{
			"Date":    date,
			"URL":     fix.URL,
			"Issues":  strings.Join(fix.Issues, "; "),
			"Actions": strings.Join(fix.Actions, "; "),
		})
	}
	n, err := w.deps.Sheets.AppendRows(ctx, TabOptimizationLog, headersOptimization, rows)
	if err != nil {
		return 0, fmt.Errorf("write optimization log: %w", err)
	}
	return n, nil
}
