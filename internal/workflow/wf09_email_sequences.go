package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

const newsletterArticleWindow = 5

// EmailSequencesDeps wires the email-sequence workflow.
type EmailSequencesDeps struct {
	Emails ports.EmailWriter
	Sheets ports.SheetStore
	Logger *slog.Logger

	Now func() time.Time
}

// EmailSequences advances subscribers through the nurture sequence and
// drafts the newsletter from recently published articles.
type EmailSequences struct {
	deps EmailSequencesDeps
}

// NewEmailSequences constructs wf09.
func NewEmailSequences(deps EmailSequencesDeps) *EmailSequences {
	return &EmailSequences{deps: deps}
}

func (w *EmailSequences) ID() string   { return "wf09" }
func (w *EmailSequences) Name() string { return "email sequences" }

// Run generates one nurture email per active subscriber and one newsletter.
func (w *EmailSequences) Run(ctx context.Context) (Summary, error) {
	nurtured, err := w.nurture(ctx)
	if err != nil {
		return nil, err
	}

	newsletter, err := w.newsletter(ctx)
	if err != nil {
		return nil, err
	}

	if w.deps.Logger != nil {
		w.deps.Logger.Info("email sequences done", "nurtured", nurtured, "newsletter", newsletter)
	}
	return Summary{"nurtured": nurtured, "newsletter": newsletter}, nil
}

func (w *EmailSequences) nurture(ctx context.Context) (int, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabEmailSubscribers)
	if err != nil {
		return 0, fmt.Errorf("read subscribers: %w", err)
	}

	stepCol := table.Col("Step")
	nurtured := 0

	for _, row := range table.Rows {
		if row.Values["Status"] != "active" {
			continue
		}
		step := atoi(row.Values["Step"]) + 1

		subscriber := map[string]string{
			"name":  row.Values["Name"],
			"email": row.Values["Email"],
		}
		if _, err := w.deps.Emails.GenerateNurture(ctx, subscriber, step); err != nil {
			return 0, fmt.Errorf("nurture for %s: %w", row.Values["Email"], err)
		}

		if err := w.deps.Sheets.UpdateCell(ctx, TabEmailSubscribers, row.Number, stepCol, itoa(step)); err != nil {
			return 0, fmt.Errorf("advance subscriber %s: %w", row.Values["Email"], err)
		}
		nurtured++
	}
	return nurtured, nil
}

func (w *EmailSequences) newsletter(ctx context.Context) (int, error) {
	published, err := w.deps.Sheets.ReadTable(ctx, TabPublishedArticles)
	if err != nil {
		return 0, fmt.Errorf("read published articles: %w", err)
	}
	if len(published.Rows) == 0 {
		return 0, nil
	}

	// Newest articles sit at the bottom of the tab.
	rows := published.Rows
	if len(rows) > newsletterArticleWindow {
		rows = rows[len(rows)-newsletterArticleWindow:]
	}
	articles := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, map[string]string{
			"title": row.Values["Title"],
			"url":   row.Values["URL"],
		})
	}

	issue, err := w.deps.Emails.GenerateNewsletter(ctx, articles)
	if err != nil {
		return 0, fmt.Errorf("generate newsletter: %w", err)
	}

	subscribers, err := w.deps.Sheets.ReadTable(ctx, TabEmailSubscribers)
	if err != nil {
		return 0, fmt.Errorf("read subscribers: %w", err)
	}
	recipients := 0
	for _, row := range subscribers.Rows {
		if row.Values["Status"] == "active" {
			recipients++
		}
	}

	record := map[string]string{
		"Date":       today(w.deps.Now),
		"Campaign":   "newsletter",
		"Subject":    issue.Subject,
		"Recipients": itoa(recipients),
	}
	if _, err := w.deps.Sheets.AppendRows(ctx, TabEmailPerformance, headersEmailPerf, []map[string]string{record}); err != nil {
		return 0, fmt.Errorf("record newsletter: %w", err)
	}
	return 1, nil
}
