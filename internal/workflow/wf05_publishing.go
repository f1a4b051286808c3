package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// PublishingDeps wires the publishing workflow.
type PublishingDeps struct {
	Publisher ports.Publisher
	Indexer   ports.Indexer
	Sheets    ports.SheetStore
	Notifier  ports.Notifier
	Logger    *slog.Logger

	Now func() time.Time
}

// Publishing pushes human-approved queue rows to the CMS and submits
// published URLs for indexing.
type Publishing struct {
	deps PublishingDeps
}

// NewPublishing constructs wf05.
func NewPublishing(deps PublishingDeps) *Publishing {
	return &Publishing{deps: deps}
}

func (w *Publishing) ID() string   { return "wf05" }
func (w *Publishing) Name() string { return "publishing" }

// Run publishes every "approved" queue row. "ready" rows are left for human
// review; incomplete rows are skipped with a warning.
func (w *Publishing) Run(ctx context.Context) (Summary, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabPublishQueue)
	if err != nil {
		return nil, fmt.Errorf("read publish queue: %w", err)
	}

	statusCol := table.Col("Status")
	published := 0
	var warnings []string

	for _, row := range table.Rows {
		if row.Values["Status"] != string(domain.StatusApproved) {
			continue
		}

		if problems := validateRow(row.Values); len(problems) > 0 {
			for _, p := range problems {
				warnings = append(warnings, fmt.Sprintf("row %d: %s", row.Number, p))
				w.warn("skipping incomplete article", "row", row.Number, "problem", p)
			}
			continue
		}

		article := domain.Article{
			Title:   row.Values["Title"],
			Keyword: row.Values["Keyword"],
			HTML:    row.Values["HTML"],
			Meta: domain.SEOMeta{
				MetaTitle:       row.Values["Meta Title"],
				MetaDescription: row.Values["Meta Description"],
				Slug:            row.Values["Slug"],
				FocusKeyword:    row.Values["Keyword"],
			},
			PublishDate: row.Values["Publish Date"],
			SEOScore:    atoi(row.Values["SEO Score"]),
		}

		post, err := w.deps.Publisher.Publish(ctx, article)
		if err != nil {
			return nil, fmt.Errorf("publish %q: %w", article.Title, err)
		}

		// Indexing is best-effort: a failed submission never blocks the run.
		if w.deps.Indexer != nil {
			if err := w.deps.Indexer.SubmitURL(ctx, post.Link); err != nil {
				warnings = append(warnings, fmt.Sprintf("indexing %s: %v", post.Link, err))
				w.warn("indexing submission failed", "url", post.Link, "error", err)
			}
		}

		record := map[string]string{
			"Title":        article.Title,
			"Keyword":      article.Keyword,
			"Slug":         post.Slug,
			"URL":          post.Link,
			"Post ID":      itoa(post.ID),
			"Publish Date": today(w.deps.Now),
		}
		if _, err := w.deps.Sheets.AppendRows(ctx, TabPublishedArticles, headersPublished, []map[string]string{record}); err != nil {
			return nil, fmt.Errorf("record published %q: %w", article.Title, err)
		}

		if err := w.deps.Sheets.UpdateCell(ctx, TabPublishQueue, row.Number, statusCol, string(domain.StatusPublished)); err != nil {
			return nil, fmt.Errorf("flip queue row %d: %w", row.Number, err)
		}
		published++
	}

	summary := Summary{"published": published, "warnings": warnings}

	if w.deps.Notifier != nil && published > 0 {
		body := fmt.Sprintf("Published %d articles (%d warnings).", published, len(warnings))
		if err := w.deps.Notifier.Send(ctx, "Publishing finished", body); err != nil {
			w.warn("notification failed", "error", err)
		}
	}
	return summary, nil
}

// validateRow checks the fields the CMS requires before publishing.
func validateRow(values map[string]string) []string {
	var problems []string
	for _, field := range []string{"Title", "Slug", "Meta Title", "Meta Description"} {
		if values[field] == "" {
			problems = append(problems, fmt.Sprintf("missing %s", field))
		}
	}
	return problems
}

func (w *Publishing) warn(msg string, args ...any) {
	if w.deps.Logger != nil {
		w.deps.Logger.Warn(msg, args...)
	}
}
