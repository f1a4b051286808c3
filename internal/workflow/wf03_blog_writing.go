package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
	"github.com/ceddto100/SEO-LEAD/internal/seo"
)

// BlogWritingDeps wires the blog-writing workflow.
type BlogWritingDeps struct {
	Writer   ports.ArticleWriter
	Auditor  ports.SEOAuditor
	Meta     ports.MetaGenerator
	Sheets   ports.SheetStore
	Repo     ports.RunRepository
	Notifier ports.Notifier
	Logger   *slog.Logger

	Limit int
	Now   func() time.Time
}

// BlogWriting drafts planned calendar entries through the write-audit-rewrite
// gate and stages them in the publish queue.
type BlogWriting struct {
	deps BlogWritingDeps
}

// NewBlogWriting constructs wf03.
func NewBlogWriting(deps BlogWritingDeps) *BlogWriting {
	return &BlogWriting{deps: deps}
}

func (w *BlogWriting) ID() string   { return "wf03" }
func (w *BlogWriting) Name() string { return "blog writing" }

// Run writes up to Limit planned articles in priority order.
func (w *BlogWriting) Run(ctx context.Context) (Summary, error) {
	calendarTable, err := w.deps.Sheets.ReadTable(ctx, TabContentCalendar)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}

	var planned []ports.SheetRow
	for _, row := range calendarTable.Rows {
		if row.Values["Status"] == string(domain.StatusPlanned) {
			planned = append(planned, row)
		}
	}
	sort.SliceStable(planned, func(i, j int) bool {
		return atoi(planned[i].Values["Priority"]) < atoi(planned[j].Values["Priority"])
	})
	if w.deps.Limit > 0 && len(planned) > w.deps.Limit {
		planned = planned[:w.deps.Limit]
	}
	if len(planned) == 0 {
		return Summary{"written": 0}, nil
	}

	keywords := make([]string, 0, len(planned))
	for _, row := range planned {
		keywords = append(keywords, row.Values["Keyword"])
	}
	written := map[string]bool{}
	if w.deps.Repo != nil {
		written, err = w.deps.Repo.AlreadyWritten(ctx, keywords)
		if err != nil {
			return nil, fmt.Errorf("load written keywords: %w", err)
		}
	}

	outlines, err := w.loadOutlines(ctx)
	if err != nil {
		return nil, err
	}
	publishedSlugs, err := w.loadPublishedSlugs(ctx)
	if err != nil {
		return nil, err
	}

	statusCol := calendarTable.Col("Status")
	count := 0
	rewrites := 0
	skipped := 0

	for _, row := range planned {
		keyword := row.Values["Keyword"]
		if written[keyword] {
			w.debug("article already written", "keyword", keyword)
			skipped++
			continue
		}

		meta, err := w.deps.Meta.GenerateMeta(ctx, row.Values["Title"], keyword, row.Values["Publish Date"])
		if err != nil {
			return nil, fmt.Errorf("meta for %q: %w", keyword, err)
		}

		req := ports.ArticleRequest{
			Title:       row.Values["Title"],
			Keyword:     keyword,
			WordCount:   atoi(row.Values["Word Count"]),
			ContentType: row.Values["Type"],
			OutlineText: outlines[keyword],
		}
		result, err := seo.RunGate(ctx, w.deps.Writer, w.deps.Auditor, req, meta)
		if err != nil {
			return nil, fmt.Errorf("gate for %q: %w", keyword, err)
		}
		rewrites += result.Rewrites

		html, resolved := seo.ResolveInternalLinks(result.HTML, publishedSlugs)
		w.debug("internal links resolved", "keyword", keyword, "links", resolved)

		queueRow := map[string]string{
			"Title":            req.Title,
			"Keyword":          keyword,
			"Slug":             meta.Slug,
			"Meta Title":       meta.MetaTitle,
			"Meta Description": meta.MetaDescription,
			"HTML":             html,
			"Publish Date":     row.Values["Publish Date"],
			"SEO Score":        itoa(result.Audit.OverallScore),
			"Rewrites":         itoa(result.Rewrites),
			"Status":           string(domain.StatusReady),
		}
		if _, err := w.deps.Sheets.AppendRows(ctx, TabPublishQueue, headersPublishQueue, []map[string]string{queueRow}); err != nil {
			return nil, fmt.Errorf("stage %q: %w", keyword, err)
		}

		if err := w.deps.Sheets.UpdateCell(ctx, TabContentCalendar, row.Number, statusCol, string(domain.StatusWritten)); err != nil {
			return nil, fmt.Errorf("flip calendar row %d: %w", row.Number, err)
		}

		if w.deps.Repo != nil {
			if err := w.deps.Repo.MarkWritten(ctx, keyword, meta.Slug, result.Audit.OverallScore); err != nil {
				return nil, fmt.Errorf("mark written %q: %w", keyword, err)
			}
		}

		count++
	}

	summary := Summary{
		"written":  count,
		"rewrites": rewrites,
		"skipped":  skipped,
	}

	if w.deps.Notifier != nil {
		body := fmt.Sprintf("Wrote %d articles (%d rewrites, %d skipped as duplicates).", count, rewrites, skipped)
		if err := w.deps.Notifier.Send(ctx, "Blog writing finished", body); err != nil {
			w.warn("notification failed", "error", err)
		}
	}
	return summary, nil
}

func (w *BlogWriting) loadOutlines(ctx context.Context) (map[string]string, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabBlogOutlines)
	if err != nil {
		return nil, fmt.Errorf("read outlines: %w", err)
	}
	outlines := make(map[string]string, len(table.Rows))
	for _, row := range table.Rows {
		outlines[row.Values["Keyword"]] = row.Values["Outline"]
	}
	return outlines, nil
}

func (w *BlogWriting) loadPublishedSlugs(ctx context.Context) ([]string, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabPublishedArticles)
	if err != nil {
		return nil, fmt.Errorf("read published articles: %w", err)
	}
	slugs := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		if slug := row.Values["Slug"]; slug != "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}

func (w *BlogWriting) debug(msg string, args ...any) {
	if w.deps.Logger != nil {
		w.deps.Logger.Debug(msg, args...)
	}
}

func (w *BlogWriting) warn(msg string, args ...any) {
	if w.deps.Logger != nil {
		w.deps.Logger.Warn(msg, args...)
	}
}
