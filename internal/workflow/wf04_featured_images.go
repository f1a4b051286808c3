package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// FeaturedImagesDeps wires the featured-image workflow.
type FeaturedImagesDeps struct {
	Prompter  ports.ImagePrompter
	Generator ports.ImageGenerator
	Sheets    ports.SheetStore
	Logger    *slog.Logger

	ImageSize string
	Now       func() time.Time
}

// FeaturedImages generates one featured image per staged article.
type FeaturedImages struct {
	deps FeaturedImagesDeps
}

// NewFeaturedImages constructs wf04.
func NewFeaturedImages(deps FeaturedImagesDeps) *FeaturedImages {
	return &FeaturedImages{deps: deps}
}

func (w *FeaturedImages) ID() string   { return "wf04" }
func (w *FeaturedImages) Name() string { return "featured images" }

// Run generates images for publish-queue rows that don't have one yet.
func (w *FeaturedImages) Run(ctx context.Context) (Summary, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabPublishQueue)
	if err != nil {
		return nil, fmt.Errorf("read publish queue: %w", err)
	}

	date := today(w.deps.Now)
	generated := 0
	skipped := 0

	for _, row := range table.Rows {
		if row.Values["Status"] != string(domain.StatusReady) {
			continue
		}
		keyword := row.Values["Keyword"]

		exists, err := w.deps.Sheets.HasRow(ctx, TabImageLibrary, "Keyword", keyword)
		if err != nil {
			return nil, fmt.Errorf("image dedup: %w", err)
		}
		if exists {
			skipped++
			continue
		}

		prompt, err := w.deps.Prompter.GenerateImagePrompt(ctx, row.Values["Title"], keyword)
		if err != nil {
			return nil, fmt.Errorf("image prompt for %q: %w", keyword, err)
		}

		imageURL, err := w.deps.Generator.GenerateImage(ctx, prompt, w.deps.ImageSize)
		if err != nil {
			return nil, fmt.Errorf("generate image for %q: %w", keyword, err)
		}

		record := map[string]string{
			"Keyword":   keyword,
			"Title":     row.Values["Title"],
			"Prompt":    prompt,
			"Image URL": imageURL,
			"Date":      date,
		}
		if _, err := w.deps.Sheets.AppendRows(ctx, TabImageLibrary, headersImageLibrary, []map[string]string{record}); err != nil {
			return nil, fmt.Errorf("record image for %q: %w", keyword, err)
		}
		generated++
	}

	if w.deps.Logger != nil {
		w.deps.Logger.Info("featured images done", "generated", generated, "skipped", skipped)
	}
	return Summary{"generated": generated, "skipped": skipped}, nil
}
