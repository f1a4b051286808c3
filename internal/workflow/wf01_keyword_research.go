package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
	"github.com/ceddto100/SEO-LEAD/internal/queue"
)

const gapAnalysisTopN = 3

// KeywordResearchDeps wires the keyword-research workflow.
type KeywordResearchDeps struct {
	Provider  ports.KeywordProvider
	Clusterer ports.KeywordClusterer
	Analyst   ports.CompetitorAnalyst
	Sheets    ports.SheetStore
	Notifier  ports.Notifier
	Logger    *slog.Logger

	Niche     string
	Seeds     []string
	MinVolume int
	TopN      int
	Now       func() time.Time
}

// KeywordResearch expands seed keywords, clusters them by intent, analyzes
// competitor gaps and feeds the content queue.
type KeywordResearch struct {
	deps KeywordResearchDeps
}

// NewKeywordResearch constructs wf01.
func NewKeywordResearch(deps KeywordResearchDeps) *KeywordResearch {
	return &KeywordResearch{deps: deps}
}

func (w *KeywordResearch) ID() string   { return "wf01" }
func (w *KeywordResearch) Name() string { return "keyword research" }

// Run executes the full research flow and returns a summary.
func (w *KeywordResearch) Run(ctx context.Context) (Summary, error) {
	niche, seeds, err := w.inputs(ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := w.deps.Provider.ExpandKeywords(ctx, seeds)
	if err != nil {
		return nil, fmt.Errorf("expand keywords: %w", err)
	}
	suggestions, err := w.deps.Provider.KeywordSuggestions(ctx, seeds)
	if err != nil {
		return nil, fmt.Errorf("keyword suggestions: %w", err)
	}
	metrics = append(metrics, suggestions...)

	result, err := w.deps.Clusterer.ClusterKeywords(ctx, niche, metrics)
	if err != nil {
		return nil, fmt.Errorf("cluster keywords: %w", err)
	}

	flattened := flattenClusters(result)
	date := today(w.deps.Now)

	researchRows := make([]map[string]string, 0, len(flattened))
	for _, row := range flattened {
		researchRows = append(researchRows, map[string]string{
			"Keyword":           row.Keyword,
			"Search Volume":     itoa(row.Volume),
			"Competition":       row.Competition,
			"CPC":               ftoa(row.CPC),
			"Opportunity Score": ftoa(row.OpportunityScore),
			"Intent":            row.Intent,
			"Source":            row.Source,
			"Date":              date,
		})
	}
	if _, err := w.deps.Sheets.AppendRows(ctx, TabKeywordResearch, headersKeywordResearch, researchRows); err != nil {
		return nil, fmt.Errorf("write keyword research: %w", err)
	}

	gaps, err := w.analyzeGaps(ctx, flattened, date)
	if err != nil {
		return nil, err
	}

	queued, err := w.fillQueue(ctx, flattened, date)
	if err != nil {
		return nil, err
	}

	summary := Summary{
		"niche":          niche,
		"seeds":          len(seeds),
		"keywords_found": len(flattened),
		"content_gaps":   gaps,
		"queued":         queued,
	}

	w.notify(ctx, summary)
	return summary, nil
}

func (w *KeywordResearch) inputs(ctx context.Context) (string, []string, error) {
	niche := w.deps.Niche
	seeds := w.deps.Seeds
	if len(seeds) > 0 {
		return niche, seeds, nil
	}

	// Fall back to the NicheInputs tab when no seeds were passed.
	table, err := w.deps.Sheets.ReadTable(ctx, TabNicheInputs)
	if err != nil {
		return "", nil, fmt.Errorf("read niche inputs: %w", err)
	}
	if len(table.Rows) == 0 {
		return "", nil, fmt.Errorf("no seed keywords: pass --keywords or fill the %s tab", TabNicheInputs)
	}

	row := table.Rows[0].Values
	if niche == "" {
		niche = row["Niche"]
	}
	for _, kw := range strings.Split(row["Keywords"], ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			seeds = append(seeds, kw)
		}
	}
	if len(seeds) == 0 {
		return "", nil, fmt.Errorf("no seed keywords: pass --keywords or fill the %s tab", TabNicheInputs)
	}
	return niche, seeds, nil
}

// flatRow is a clustered keyword with its cluster intent attached.
type flatRow struct {
	Keyword          string
	Volume           int
	Competition      string
	CPC              float64
	OpportunityScore float64
	Intent           string
	Source           string
}

// flattenClusters merges all clusters into one list sorted by opportunity
// score descending. Downstream consumers rely on this order.
func flattenClusters(result domain.ClusteringResult) []flatRow {
	var rows []flatRow
	for _, cluster := range result.Clusters {
		for _, kw := range cluster.Keywords {
			rows = append(rows, flatRow{
				Keyword:          kw.Keyword,
				Volume:           kw.SearchVolume,
				Competition:      kw.Competition,
				CPC:              kw.CPC,
				OpportunityScore: kw.OpportunityScore,
				Intent:           cluster.Intent,
				Source:           kw.Source,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].OpportunityScore > rows[j].OpportunityScore
	})
	return rows
}

func (w *KeywordResearch) analyzeGaps(ctx context.Context, flattened []flatRow, date string) (int, error) {
	top := make([]string, 0, gapAnalysisTopN)
	for _, row := range flattened {
		if len(top) == gapAnalysisTopN {
			break
		}
		top = append(top, row.Keyword)
	}
	if len(top) == 0 {
		return 0, nil
	}

	gaps, err := w.deps.Analyst.AnalyzeCompetitors(ctx, top)
	if err != nil {
		return 0, fmt.Errorf("analyze competitors: %w", err)
	}

	rows := make([]map[string]string, 0, len(gaps))
	for _, gap := range gaps {
		rows = append(rows, map[string]string{
			"Keyword":        gap.Keyword,
			"Competitor":     gap.Competitor,
			"Gap":            gap.Gap,
			"Opportunity":    gap.Opportunity,
			"Suggested Type": gap.SuggestedType,
			"Date":           date,
		})
	}
	if _, err := w.deps.Sheets.AppendRows(ctx, TabContentGaps, headersContentGaps, rows); err != nil {
		return 0, fmt.Errorf("write content gaps: %w", err)
	}
	return len(gaps), nil
}

func (w *KeywordResearch) fillQueue(ctx context.Context, flattened []flatRow, date string) (int, error) {
	candidates := make([]domain.QueueRow, 0, len(flattened))
	for _, row := range flattened {
		candidates = append(candidates, domain.QueueRow{
			Keyword:          row.Keyword,
			Volume:           row.Volume,
			Intent:           row.Intent,
			OpportunityScore: row.OpportunityScore,
		})
	}

	selected := queue.Filter(candidates, w.deps.MinVolume, w.deps.TopN)

	var rows []map[string]string
	for _, row := range selected {
		exists, err := w.deps.Sheets.HasRow(ctx, TabContentQueue, "Keyword", row.Keyword)
		if err != nil {
			return 0, fmt.Errorf("queue dedup: %w", err)
		}
		if exists {
			w.debug("keyword already queued", "keyword", row.Keyword)
			continue
		}
		rows = append(rows, map[string]string{
			"Keyword":           row.Keyword,
			"Volume":            itoa(row.Volume),
			"Intent":            row.Intent,
			"Opportunity Score": ftoa(row.OpportunityScore),
			"Status":            string(domain.StatusNew),
			"Source":            "keyword-research",
			"Date":              date,
		})
	}

	n, err := w.deps.Sheets.AppendRows(ctx, TabContentQueue, headersContentQueue, rows)
	if err != nil {
		return 0, fmt.Errorf("write content queue: %w", err)
	}
	return n, nil
}

func (w *KeywordResearch) notify(ctx context.Context, summary Summary) {
	if w.deps.Notifier == nil {
		return
	}
	body := fmt.Sprintf("Found %d keywords, queued %d, logged %d content gaps.",
		summary["keywords_found"], summary["queued"], summary["content_gaps"])
	if err := w.deps.Notifier.Send(ctx, "Keyword research finished", body); err != nil {
		w.warn("notification failed", "error", err)
	}
}

func (w *KeywordResearch) debug(msg string, args ...any) {
	if w.deps.Logger != nil {
		w.deps.Logger.Debug(msg, args...)
	}
}

func (w *KeywordResearch) warn(msg string, args ...any) {
	if w.deps.Logger != nil {
		w.deps.Logger.Warn(msg, args...)
	}
}
