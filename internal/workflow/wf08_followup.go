package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/leads"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// FollowUpDeps wires the CRM follow-up workflow.
type FollowUpDeps struct {
	Emails ports.EmailWriter
	Sheets ports.SheetStore
	Logger *slog.Logger

	Now func() time.Time
}

// FollowUp drafts the full cadence of personalized emails for actionable
// leads. Hot leads get touches on day 0/1/3/7, warm 1/3/7/14, cool 3/7/14/30.
type FollowUp struct {
	deps FollowUpDeps
}

// NewFollowUp constructs wf08.
func NewFollowUp(deps FollowUpDeps) *FollowUp {
	return &FollowUp{deps: deps}
}

func (w *FollowUp) ID() string   { return "wf08" }
func (w *FollowUp) Name() string { return "crm follow-up" }

// Run generates cadence emails for leads not yet in the tracker.
func (w *FollowUp) Run(ctx context.Context) (Summary, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabMasterLeadList)
	if err != nil {
		return nil, fmt.Errorf("read lead list: %w", err)
	}

	date := today(w.deps.Now)
	sequenced := 0
	emails := 0

	for _, row := range table.Rows {
		if row.Values["Status"] != string(domain.StatusNew) {
			continue
		}
		email := row.Values["Email"]

		exists, err := w.deps.Sheets.HasRow(ctx, TabFollowUpTracker, "Email", email)
		if err != nil {
			return nil, fmt.Errorf("tracker dedup: %w", err)
		}
		if exists {
			continue
		}

		tier := domain.Tier(row.Values["Tier"])
		cadence := leads.Cadence(tier)

		lead := map[string]string{
			"name":        row.Values["Name"],
			"email":       email,
			"company":     row.Values["Company"],
			"lead_magnet": row.Values["Lead Magnet"],
			"tier":        string(tier),
		}

		rows := make([]map[string]string, 0, len(cadence))
		for i, step := range cadence {
			message, err := w.deps.Emails.GenerateFollowUp(ctx, lead, i+1, len(cadence))
			if err != nil {
				return nil, fmt.Errorf("follow-up %d for %s: %w", i+1, email, err)
			}
			rows = append(rows, map[string]string{
				"Email":    email,
				"Name":     row.Values["Name"],
				"Tier":     string(tier),
				"Step":     itoa(i + 1),
				"Send Day": itoa(step.Day),
				"Type":     step.Type,
				"Subject":  message.Subject,
				"Body":     message.Body,
				"Date":     date,
			})
		}

		n, err := w.deps.Sheets.AppendRows(ctx, TabFollowUpTracker, headersFollowUp, rows)
		if err != nil {
			return nil, fmt.Errorf("write tracker for %s: %w", email, err)
		}
		emails += n
		sequenced++
	}

	if w.deps.Logger != nil {
		w.deps.Logger.Info("follow-up sequences drafted", "leads", sequenced, "emails", emails)
	}
	return Summary{"leads": sequenced, "emails": emails}, nil
}
