package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// SocialDeps wires the social-repurposing workflow.
type SocialDeps struct {
	Generator ports.SocialGenerator
	Sheets    ports.SheetStore
	Logger    *slog.Logger

	Now func() time.Time
}

// Social repurposes published articles into platform posts.
type Social struct {
	deps SocialDeps
}

// NewSocial constructs wf06.
func NewSocial(deps SocialDeps) *Social {
	return &Social{deps: deps}
}

func (w *Social) ID() string   { return "wf06" }
func (w *Social) Name() string { return "social repurposing" }

// Run generates posts for published articles that have none yet.
func (w *Social) Run(ctx context.Context) (Summary, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabPublishedArticles)
	if err != nil {
		return nil, fmt.Errorf("read published articles: %w", err)
	}

	date := today(w.deps.Now)
	articles := 0
	posts := 0

	for _, row := range table.Rows {
		url := row.Values["URL"]
		if url == "" {
			continue
		}

		exists, err := w.deps.Sheets.HasRow(ctx, TabSocialPosts, "URL", url)
		if err != nil {
			return nil, fmt.Errorf("social dedup: %w", err)
		}
		if exists {
			continue
		}

		generated, err := w.deps.Generator.GenerateSocialPosts(ctx, row.Values["Title"], url, row.Values["Keyword"])
		if err != nil {
			return nil, fmt.Errorf("social posts for %q: %w", row.Values["Title"], err)
		}

		rows := make([]map[string]string, 0, len(generated))
		for _, post := range generated {
			rows = append(rows, map[string]string{
				"Title":    row.Values["Title"],
				"URL":      url,
				"Platform": post.Platform,
				"Text":     post.Text,
				"Hashtags": post.Hashtags,
				"Date":     date,
			})
		}
		n, err := w.deps.Sheets.AppendRows(ctx, TabSocialPosts, headersSocialPosts, rows)
		if err != nil {
			return nil, fmt.Errorf("write social posts: %w", err)
		}
		posts += n
		articles++
	}

	if w.deps.Logger != nil {
		w.deps.Logger.Info("social repurposing done", "articles", articles, "posts", posts)
	}
	return Summary{"articles": articles, "posts": posts}, nil
}
