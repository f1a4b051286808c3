package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/calendar"
	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// ContentStrategyDeps wires the content-strategy workflow.
type ContentStrategyDeps struct {
	Planner  ports.ContentPlanner
	Outliner ports.OutlineGenerator
	Sheets   ports.SheetStore
	Notifier ports.Notifier
	Logger   *slog.Logger

	Niche string
	Now   func() time.Time
}

// ContentStrategy plans queued keywords into a publishing calendar with
// outlines and a topical cluster map.
type ContentStrategy struct {
	deps ContentStrategyDeps
}

// NewContentStrategy constructs wf02.
func NewContentStrategy(deps ContentStrategyDeps) *ContentStrategy {
	return &ContentStrategy{deps: deps}
}

func (w *ContentStrategy) ID() string   { return "wf02" }
func (w *ContentStrategy) Name() string { return "content strategy" }

// Run plans all "new" queue rows and flips them to "planned".
func (w *ContentStrategy) Run(ctx context.Context) (Summary, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabContentQueue)
	if err != nil {
		return nil, fmt.Errorf("read content queue: %w", err)
	}

	var queued []domain.QueueRow
	var queuedRowNumbers []int
	for _, row := range table.Rows {
		if row.Values["Status"] != string(domain.StatusNew) {
			continue
		}
		queued = append(queued, domain.QueueRow{
			Keyword:          row.Values["Keyword"],
			Volume:           atoi(row.Values["Volume"]),
			Intent:           row.Values["Intent"],
			OpportunityScore: atof(row.Values["Opportunity Score"]),
		})
		queuedRowNumbers = append(queuedRowNumbers, row.Number)
	}
	if len(queued) == 0 {
		return Summary{"planned": 0}, nil
	}

	plan, err := w.deps.Planner.PlanContent(ctx, w.deps.Niche, queued)
	if err != nil {
		return nil, fmt.Errorf("plan content: %w", err)
	}

	entries := calendar.Build(plan.Items, clock(w.deps.Now)(), calendar.DefaultPublishWeekdays)

	date := today(w.deps.Now)
	calendarRows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		calendarRows = append(calendarRows, map[string]string{
			"Publish Date":     entry.PublishDate.Format(dateLayout),
			"Title":            entry.Title,
			"Keyword":          entry.Keyword,
			"Type":             entry.Type,
			"Word Count":       itoa(entry.WordCount),
			"Priority":         itoa(entry.Priority),
			"Pillar/Cluster":   entry.PillarOrCluster,
			"Slug":             entry.Slug,
			"Meta Description": entry.MetaDescription,
			"Internal Links":   strings.Join(entry.InternalLinks, ", "),
			"Status":           string(entry.Status),
		})
	}
	if _, err := w.deps.Sheets.AppendRows(ctx, TabContentCalendar, headersContentCalendar, calendarRows); err != nil {
		return nil, fmt.Errorf("write calendar: %w", err)
	}

	outlines, err := w.writeOutlines(ctx, plan.Items, date)
	if err != nil {
		return nil, err
	}

	if err := w.writeClusterMap(ctx, plan.ClusterMap); err != nil {
		return nil, err
	}

	// Flip processed queue rows forward only after all writes succeeded.
	statusCol := table.Col("Status")
	for _, rowNumber := range queuedRowNumbers {
		if err := w.deps.Sheets.UpdateCell(ctx, TabContentQueue, rowNumber, statusCol, string(domain.StatusPlanned)); err != nil {
			return nil, fmt.Errorf("flip queue row %d: %w", rowNumber, err)
		}
	}

	summary := Summary{
		"planned":  len(entries),
		"outlines": outlines,
		"pillars":  len(plan.ClusterMap),
	}

	if w.deps.Notifier != nil {
		body := fmt.Sprintf("Planned %d articles with %d outlines across %d pillar clusters.",
			len(entries), outlines, len(plan.ClusterMap))
		if err := w.deps.Notifier.Send(ctx, "Content strategy finished", body); err != nil {
			w.warn("notification failed", "error", err)
		}
	}
	return summary, nil
}

func (w *ContentStrategy) writeOutlines(ctx context.Context, items []domain.ContentPlanItem, date string) (int, error) {
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		outline, err := w.deps.Outliner.GenerateOutline(ctx, item)
		if err != nil {
			return 0, fmt.Errorf("outline for %q: %w", item.Keyword, err)
		}
		rows = append(rows, map[string]string{
			"Keyword": item.Keyword,
			"Title":   item.Title,
			"Outline": outline,
			"Date":    date,
		})
	}
	n, err := w.deps.Sheets.AppendRows(ctx, TabBlogOutlines, headersBlogOutlines, rows)
	if err != nil {
		return 0, fmt.Errorf("write outlines: %w", err)
	}
	return n, nil
}

func (w *ContentStrategy) writeClusterMap(ctx context.Context, clusterMap map[string][]string) error {
	var rows []map[string]string
	for pillar, supporting := range clusterMap {
		rows = append(rows, map[string]string{
			"Pillar":     pillar,
			"Supporting": strings.Join(supporting, ", "),
		})
	}
	if _, err := w.deps.Sheets.AppendRows(ctx, TabClusterMap, headersClusterMap, rows); err != nil {
		return fmt.Errorf("write cluster map: %w", err)
	}
	return nil
}

func (w *ContentStrategy) warn(msg string, args ...any) {
	if w.deps.Logger != nil {
		w.deps.Logger.Warn(msg, args...)
	}
}
