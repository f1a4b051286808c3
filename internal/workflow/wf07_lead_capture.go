package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/leads"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// LeadCaptureDeps wires the lead-capture workflow.
type LeadCaptureDeps struct {
	Scorer   ports.LeadScorer
	Sheets   ports.SheetStore
	Notifier ports.Notifier
	Logger   *slog.Logger

	Now func() time.Time
}

// LeadCapture validates, scores and routes incoming leads.
type LeadCapture struct {
	deps LeadCaptureDeps
}

// NewLeadCapture constructs wf07.
func NewLeadCapture(deps LeadCaptureDeps) *LeadCapture {
	return &LeadCapture{deps: deps}
}

func (w *LeadCapture) ID() string   { return "wf07" }
func (w *LeadCapture) Name() string { return "lead capture" }

// Run processes every incoming lead. Invalid leads never reach the scorer;
// their rejection reasons are recorded instead.
func (w *LeadCapture) Run(ctx context.Context) (Summary, error) {
	table, err := w.deps.Sheets.ReadTable(ctx, TabIncomingLeads)
	if err != nil {
		return nil, fmt.Errorf("read incoming leads: %w", err)
	}

	date := today(w.deps.Now)
	accepted := 0
	rejected := 0
	hot := 0

	for _, row := range table.Rows {
		lead := domain.Lead{
			Name:       row.Values["Name"],
			Email:      row.Values["Email"],
			Company:    row.Values["Company"],
			Source:     row.Values["Source"],
			LeadMagnet: row.Values["Lead Magnet"],
			Phone:      row.Values["Phone"],
		}

		if issues := leads.Validate(lead); len(issues) > 0 {
			record := map[string]string{
				"Name":   lead.Name,
				"Email":  lead.Email,
				"Issues": strings.Join(issues, "; "),
				"Date":   date,
			}
			if _, err := w.deps.Sheets.AppendRows(ctx, TabRejectedLeads, headersRejectedLeads, []map[string]string{record}); err != nil {
				return nil, fmt.Errorf("record rejected lead: %w", err)
			}
			w.debug("lead rejected", "email", lead.Email, "issues", strings.Join(issues, "; "))
			rejected++
			continue
		}

		exists, err := w.deps.Sheets.HasRow(ctx, TabMasterLeadList, "Email", lead.Email)
		if err != nil {
			return nil, fmt.Errorf("lead dedup: %w", err)
		}
		if exists {
			w.debug("lead already captured", "email", lead.Email)
			continue
		}

		score, err := w.deps.Scorer.ScoreLead(ctx, lead)
		if err != nil {
			return nil, fmt.Errorf("score lead %s: %w", lead.Email, err)
		}

		tier := leads.TierFor(score.Score)
		if tier == domain.TierHot {
			hot++
		}

		record := map[string]string{
			"Name":        lead.Name,
			"Email":       lead.Email,
			"Company":     lead.Company,
			"Source":      lead.Source,
			"Lead Magnet": lead.LeadMagnet,
			"Phone":       lead.Phone,
			"Score":       itoa(score.Score),
			"Tier":        string(tier),
			"Status":      string(leads.RouteStatus(tier)),
			"Reasoning":   score.Reasoning,
			"Date":        date,
		}
		if _, err := w.deps.Sheets.AppendRows(ctx, TabMasterLeadList, headersMasterLeadList, []map[string]string{record}); err != nil {
			return nil, fmt.Errorf("record lead %s: %w", lead.Email, err)
		}
		accepted++
	}

	summary := Summary{"accepted": accepted, "rejected": rejected, "hot": hot}

	if w.deps.Notifier != nil && accepted > 0 {
		body := fmt.Sprintf("Captured %d leads (%d hot, %d rejected).", accepted, hot, rejected)
		if err := w.deps.Notifier.Send(ctx, "Lead capture finished", body); err != nil {
			w.warn("notification failed", "error", err)
		}
	}
	return summary, nil
}

func (w *LeadCapture) debug(msg string, args ...any) {
	if w.deps.Logger != nil {
		w.deps.Logger.Debug(msg, args...)
	}
}

func (w *LeadCapture) warn(msg string, args ...any) {
	if w.deps.Logger != nil {
		w.deps.Logger.Warn(msg, args...)
	}
}
