// Package mock provides deterministic adapters for dry runs. Every adapter
// is pure: identical inputs always produce identical outputs, so pipeline
// rules can be exercised end to end without credentials or network access.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/leads"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// metricTuple fixes the volume/competition/CPC assigned to a keyword by
// its position in the request.
type metricTuple struct {
	volume      int
	competition float64
	cpc         float64
}

var metricTuples = []metricTuple{
	{2400, 0.34, 4.50},
	{8100, 0.67, 3.20},
	{1900, 0.22, 5.10},
	{5600, 0.55, 2.80},
	{3300, 0.41, 3.90},
	{720, 0.18, 6.20},
}

var suggestionSuffixes = []string{"for small business", "pricing", "alternatives", "tutorial"}

// KeywordProvider assigns fixed metric tuples by request position.
type KeywordProvider struct{}

var _ ports.KeywordProvider = KeywordProvider{}

// ExpandKeywords assigns the tuple at position modulo table length.
func (KeywordProvider) ExpandKeywords(_ context.Context, seeds []string) ([]domain.KeywordMetric, error) {
	metrics := make([]domain.KeywordMetric, 0, len(seeds))
	for i, seed := range seeds {
		metrics = append(metrics, metricFor(seed, i))
	}
	return metrics, nil
}

// KeywordSuggestions derives suffix variations of each seed, metrics
// assigned by overall position.
func (KeywordProvider) KeywordSuggestions(_ context.Context, seeds []string) ([]domain.KeywordMetric, error) {
	var metrics []domain.KeywordMetric
	pos := 0
	for _, seed := range seeds {
		for _, suffix := range suggestionSuffixes {
			metrics = append(metrics, metricFor(seed+" "+suffix, pos))
			pos++
		}
	}
	return metrics, nil
}

func metricFor(keyword string, position int) domain.KeywordMetric {
	tuple := metricTuples[position%len(metricTuples)]
	return domain.KeywordMetric{
		Keyword:          keyword,
		SearchVolume:     tuple.volume,
		Competition:      tuple.competition,
		CompetitionLevel: competitionLevel(tuple.competition),
		CPC:              tuple.cpc,
	}
}

func competitionLevel(competition float64) string {
	switch {
	case competition < 0.33:
		return "low"
	case competition < 0.66:
		return "medium"
	default:
		return "high"
	}
}

// Assistant is the dry-run stand-in for every LLM-backed operation.
type Assistant struct{}

var (
	_ ports.KeywordClusterer   = Assistant{}
	_ ports.CompetitorAnalyst  = Assistant{}
	_ ports.ContentPlanner     = Assistant{}
	_ ports.OutlineGenerator   = Assistant{}
	_ ports.ArticleWriter      = Assistant{}
	_ ports.MetaGenerator      = Assistant{}
	_ ports.SEOAuditor         = Assistant{}
	_ ports.LeadScorer         = Assistant{}
	_ ports.SocialGenerator    = Assistant{}
	_ ports.EmailWriter        = Assistant{}
	_ ports.PerformanceAnalyst = Assistant{}
	_ ports.ImagePrompter      = Assistant{}
)

// ClusterKeywords buckets every keyword as informational, scoring
// opportunity from the fixed volume/competition figures.
func (Assistant) ClusterKeywords(_ context.Context, _ string, data []domain.KeywordMetric) (domain.ClusteringResult, error) {
	cluster := domain.KeywordCluster{Intent: "informational"}
	var tops []domain.TopOpportunity
	for _, m := range data {
		// Higher volume and lower competition push the score toward 10.
		score := float64(min(m.SearchVolume, 10000))/1000*(1-m.Competition) + 1
		if score > 10 {
			score = 10
		}
		cluster.Keywords = append(cluster.Keywords, domain.ClusteredKeyword{
			Keyword:          m.Keyword,
			SearchVolume:     m.SearchVolume,
			Competition:      m.CompetitionLevel,
			CPC:              m.CPC,
			OpportunityScore: score,
			Source:           "original",
		})
		tops = append(tops, domain.TopOpportunity{Keyword: m.Keyword, OpportunityScore: score, Intent: "informational"})
	}
	return domain.ClusteringResult{
		Clusters:         []domain.KeywordCluster{cluster},
		TotalKeywords:    len(data),
		TopOpportunities: tops,
	}, nil
}

// AnalyzeCompetitors fabricates one thin-content gap per keyword.
func (Assistant) AnalyzeCompetitors(_ context.Context, keywords []string) ([]domain.ContentGap, error) {
	gaps := make([]domain.ContentGap, 0, len(keywords))
	for _, kw := range keywords {
		gaps = append(gaps, domain.ContentGap{
			Keyword:       kw,
			Competitor:    "competitor.example.com",
			Gap:           "top results are thin listicles without practical steps",
			Opportunity:   "in-depth guide with worked examples",
			SuggestedType: "ultimate guide",
		})
	}
	return gaps, nil
}

// PlanContent plans a 2000-word blog post per queued keyword; the first
// item becomes the pillar.
func (Assistant) PlanContent(_ context.Context, _ string, queued []domain.QueueRow) (domain.ContentPlan, error) {
	plan := domain.ContentPlan{ClusterMap: map[string][]string{}}
	var pillarSlug string
	for i, row := range queued {
		kind := domain.Cluster
		if i == 0 {
			kind = domain.Pillar
		}
		slug := strings.ReplaceAll(strings.ToLower(row.Keyword), " ", "-")
		item := domain.ContentPlanItem{
			Keyword:         row.Keyword,
			Title:           fmt.Sprintf("The Complete Guide to %s", row.Keyword),
			ContentType:     "blog post",
			WordCount:       2000,
			MetaDescription: fmt.Sprintf("Everything you need to know about %s, with practical steps.", row.Keyword),
			PillarOrCluster: kind,
			Priority:        i%5 + 1,
		}
		plan.Items = append(plan.Items, item)
		if kind == domain.Pillar {
			pillarSlug = slug
			plan.ClusterMap[slug] = []string{}
		} else if pillarSlug != "" {
			item.InternalLinks = []string{pillarSlug}
			plan.Items[len(plan.Items)-1] = item
			plan.ClusterMap[pillarSlug] = append(plan.ClusterMap[pillarSlug], slug)
		}
	}
	return plan, nil
}

// GenerateOutline emits a fixed outline skeleton for the item.
func (Assistant) GenerateOutline(_ context.Context, item domain.ContentPlanItem) (string, error) {
	return fmt.Sprintf(`## Introduction
### Why %[1]s matters
## What is %[1]s
## How to get started with %[1]s
### Step-by-step walkthrough
## Common mistakes
## FAQ
## Conclusion`, item.Keyword), nil
}

// WriteArticle renders a deterministic HTML article containing the
// keyword, link and image placeholders, and an FAQ section.
func (Assistant) WriteArticle(_ context.Context, req ports.ArticleRequest) (string, error) {
	title := req.Title
	if title == "" {
		title = req.Keyword
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", title)
	fmt.Fprintf(&b, "<p>This guide covers %s from the ground up, with practical steps you can apply today.</p>\n", req.Keyword)
	b.WriteString("[IMAGE: editorial illustration of the topic]\n")
	fmt.Fprintf(&b, "<h2>What is %s</h2>\n<p>A plain-language definition with context. See also [INTERNAL_LINK: our getting started guide -> getting-started].</p>\n", req.Keyword)
	fmt.Fprintf(&b, "<h2>How to use %s</h2>\n<p>Concrete steps, worked through in order.</p>\n", req.Keyword)
	b.WriteString("<h2>FAQ</h2>\n<h3>Is it worth it?</h3>\n<p>For most teams, yes.</p>\n")
	b.WriteString("<h2>Conclusion</h2>\n<p>Start small and iterate. Ready to go further? Book a demo.</p>\n")
	return b.String(), nil
}

// GenerateMeta derives metadata directly from the inputs.
func (Assistant) GenerateMeta(_ context.Context, title, keyword, _ string) (domain.SEOMeta, error) {
	slug := strings.ReplaceAll(strings.ToLower(keyword), " ", "-")
	desc := fmt.Sprintf("Learn %s with this practical guide. Start today.", keyword)
	return domain.SEOMeta{
		MetaTitle:          title,
		MetaDescription:    desc,
		Slug:               slug,
		FocusKeyword:       keyword,
		SecondaryKeywords:  []string{keyword + " guide", "best " + keyword},
		SchemaMarkup:       map[string]any{"@context": "https://schema.org", "@type": "Article"},
		OGTitle:            title,
		OGDescription:      desc,
		TwitterTitle:       title,
		TwitterDescription: desc,
	}, nil
}

// mockAuditScore always passes the publish gate.
const mockAuditScore = 82

// AuditSEO returns a fixed passing audit.
func (Assistant) AuditSEO(_ context.Context, _ string, _ domain.SEOMeta, _ int) (domain.SEOAuditResult, error) {
	return domain.SEOAuditResult{
		OverallScore: mockAuditScore,
		Checks: []domain.AuditCheck{
			{Factor: "keyword density", Score: 8, Pass: true},
			{Factor: "faq section", Score: 10, Pass: true},
			{Factor: "meta title length", Score: 8, Pass: true},
		},
		Recommendations: []string{"add one more internal link"},
	}, nil
}

const (
	mockBusinessLeadScore = 72
	mockFreeLeadScore     = 35
)

var freeEmailDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
}

// ScoreLead scores business-domain emails 72 and free-provider emails 35.
func (Assistant) ScoreLead(_ context.Context, lead domain.Lead) (domain.LeadScore, error) {
	score := mockBusinessLeadScore
	reasoning := "business email domain suggests purchase intent"
	if at := strings.LastIndex(lead.Email, "@"); at >= 0 && freeEmailDomains[strings.ToLower(lead.Email[at+1:])] {
		score = mockFreeLeadScore
		reasoning = "free email provider, no company signal"
	}
	tier := leads.TierFor(score)
	return domain.LeadScore{
		Score:             score,
		Tier:              tier,
		Reasoning:         reasoning,
		RecommendedAction: "enroll in nurture sequence",
		Segment:           "content download",
	}, nil
}

// GenerateSocialPosts emits one fixed post per platform.
func (Assistant) GenerateSocialPosts(_ context.Context, title, url, _ string) ([]domain.SocialPost, error) {
	return []domain.SocialPost{
		{Platform: "linkedin", Text: fmt.Sprintf("New on the blog: %s. %s", title, url), Hashtags: "#marketing #seo"},
		{Platform: "twitter", Text: fmt.Sprintf("%s %s", title, url), Hashtags: "#seo"},
		{Platform: "facebook", Text: fmt.Sprintf("We just published %s. Read it here: %s", title, url), Hashtags: "#marketing"},
	}, nil
}

// GenerateFollowUp produces a deterministic cadence email.
func (Assistant) GenerateFollowUp(_ context.Context, lead map[string]string, step, total int) (domain.FollowUpEmail, error) {
	return domain.FollowUpEmail{
		Subject: fmt.Sprintf("Quick question, %s", lead["name"]),
		Body:    fmt.Sprintf("Following up (%d of %d) on the %s you downloaded. Worth a quick chat?", step, total, lead["lead_magnet"]),
		CTAType: "reply",
	}, nil
}

// GenerateNurture produces a deterministic nurture email.
func (Assistant) GenerateNurture(_ context.Context, subscriber map[string]string, step int) (domain.FollowUpEmail, error) {
	return domain.FollowUpEmail{
		Subject: fmt.Sprintf("One idea for this week (#%d)", step),
		Body:    fmt.Sprintf("Hi %s, here is one practical idea you can try this week.", subscriber["name"]),
		CTAType: "read",
	}, nil
}

// GenerateNewsletter digests article titles into a fixed-format issue.
func (Assistant) GenerateNewsletter(_ context.Context, articles []map[string]string) (domain.FollowUpEmail, error) {
	var b strings.Builder
	b.WriteString("This week on the blog:\n")
	for _, a := range articles {
		fmt.Fprintf(&b, "- %s: %s\n", a["title"], a["url"])
	}
	return domain.FollowUpEmail{
		Subject: "This week's articles",
		Body:    b.String(),
		CTAType: "read",
	}, nil
}

// AnalyzePerformance flags every declining page for refresh.
func (Assistant) AnalyzePerformance(_ context.Context, pages []domain.PagePerformance) (domain.PerformanceAnalysis, error) {
	analysis := domain.PerformanceAnalysis{
		KeywordAdjustments:   domain.KeywordAdjustments{NewTargets: []string{"long tail opportunity"}},
		TopPerformerInsights: map[string]string{"pattern": "how-to guides with FAQ sections outperform"},
	}
	for _, page := range pages {
		if page.Decline != "" {
			page.Actions = []string{"refresh statistics", "add FAQ section"}
			analysis.RefreshCandidates = append(analysis.RefreshCandidates, page)
		}
	}
	return analysis, nil
}

// GenerateReport summarizes the raw figures verbatim.
func (Assistant) GenerateReport(_ context.Context, analytics domain.AnalyticsSnapshot, rankings []domain.KeywordRanking, leadStats domain.LeadStats, email domain.EmailStats) (domain.PerformanceReport, error) {
	return domain.PerformanceReport{
		Highlights: []string{
			fmt.Sprintf("%d sessions, %d conversions", analytics.Sessions, analytics.Conversions),
			fmt.Sprintf("%d tracked keywords, %d new leads", len(rankings), leadStats.NewLeads),
		},
		Concerns:        []string{fmt.Sprintf("email open rate at %.1f%%", email.OpenRate*100)},
		Recommendations: []string{"double down on top-performing cluster"},
	}, nil
}

// GenerateImagePrompt derives a fixed editorial prompt.
func (Assistant) GenerateImagePrompt(_ context.Context, title, _ string) (string, error) {
	return fmt.Sprintf("Clean modern editorial illustration for an article titled %q, flat colors, no text", title), nil
}

// SheetStore is an in-memory spreadsheet for dry runs and tests.
type SheetStore struct {
	mu   sync.Mutex
	tabs map[string]*memTab
}

type memTab struct {
	headers []string
	rows    [][]string
}

var _ ports.SheetStore = (*SheetStore)(nil)

// NewSheetStore builds an empty in-memory store.
func NewSheetStore() *SheetStore {
	return &SheetStore{tabs: map[string]*memTab{}}
}

// Seed replaces a tab's contents, for test setup.
func (s *SheetStore) Seed(tab string, headers []string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs[tab] = &memTab{headers: headers, rows: rows}
}

// ReadTable returns the tab keyed by header.
func (s *SheetStore) ReadTable(_ context.Context, tab string) (ports.SheetTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tabs[tab]
	if !ok {
		return ports.SheetTable{}, nil
	}

	table := ports.SheetTable{Headers: append([]string(nil), t.headers...)}
	for i, raw := range t.rows {
		values := make(map[string]string, len(t.headers))
		for j, header := range t.headers {
			if j < len(raw) {
				values[header] = raw[j]
			}
		}
		table.Rows = append(table.Rows, ports.SheetRow{Number: i + 2, Values: values})
	}
	return table, nil
}

// AppendRows appends data rows, creating the tab with headers if needed.
func (s *SheetStore) AppendRows(_ context.Context, tab string, headers []string, rows []map[string]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tabs[tab]
	if !ok {
		t = &memTab{headers: append([]string(nil), headers...)}
		s.tabs[tab] = t
	}
	for _, row := range rows {
		line := make([]string, len(t.headers))
		for i, header := range t.headers {
			line[i] = row[header]
		}
		t.rows = append(t.rows, line)
	}
	return len(rows), nil
}

// UpdateCell writes one cell addressed by 1-indexed sheet coordinates.
func (s *SheetStore) UpdateCell(_ context.Context, tab string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tabs[tab]
	if !ok {
		return fmt.Errorf("unknown tab %s", tab)
	}
	idx := row - 2 // row 1 is the header
	if idx < 0 || idx >= len(t.rows) || col < 1 || col > len(t.headers) {
		return fmt.Errorf("cell %d,%d out of range in %s", row, col, tab)
	}
	line := t.rows[idx]
	for len(line) < col {
		line = append(line, "")
	}
	line[col-1] = value
	t.rows[idx] = line
	return nil
}

// HasRow matches keyValue in keyColumn case-insensitively.
func (s *SheetStore) HasRow(ctx context.Context, tab, keyColumn, keyValue string) (bool, error) {
	table, err := s.ReadTable(ctx, tab)
	if err != nil {
		return false, err
	}
	want := strings.ToLower(strings.TrimSpace(keyValue))
	for _, row := range table.Rows {
		if strings.ToLower(strings.TrimSpace(row.Values[keyColumn])) == want {
			return true, nil
		}
	}
	return false, nil
}

// RunRepository is an in-memory run store.
type RunRepository struct {
	mu      sync.Mutex
	written map[string]bool
	runs    []string
}

var _ ports.RunRepository = (*RunRepository)(nil)

// NewRunRepository builds an empty repository.
func NewRunRepository() *RunRepository {
	return &RunRepository{written: map[string]bool{}}
}

// AlreadyWritten reports previously marked keywords.
func (r *RunRepository) AlreadyWritten(_ context.Context, keywords []string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := map[string]bool{}
	for _, kw := range keywords {
		if r.written[kw] {
			result[kw] = true
		}
	}
	return result, nil
}

// MarkWritten records the keyword.
func (r *RunRepository) MarkWritten(_ context.Context, keyword, _ string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.written[keyword] = true
	return nil
}

// SaveRun records the workflow name.
func (r *RunRepository) SaveRun(_ context.Context, workflow string, _ map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, workflow)
	return nil
}

// Runs lists saved run names, for assertions.
func (r *RunRepository) Runs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.runs...)
}

// Publisher fabricates a published post without any CMS.
type Publisher struct {
	baseURL string
	mu      sync.Mutex
	nextID  int
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher builds a publisher rooted at baseURL.
func NewPublisher(baseURL string) *Publisher {
	return &Publisher{baseURL: strings.TrimRight(baseURL, "/"), nextID: 1000}
}

// Publish returns a deterministic post for the article slug.
func (p *Publisher) Publish(_ context.Context, article domain.Article) (domain.PublishedPost, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	return domain.PublishedPost{
		ID:     p.nextID,
		Link:   fmt.Sprintf("%s/blog/%s", p.baseURL, article.Meta.Slug),
		Slug:   article.Meta.Slug,
		Status: "publish",
	}, nil
}

// Indexer accepts every submission.
type Indexer struct{}

var _ ports.Indexer = Indexer{}

// SubmitURL is a no-op.
func (Indexer) SubmitURL(context.Context, string) error { return nil }

// ImageGenerator returns a placeholder image URL.
type ImageGenerator struct{}

var _ ports.ImageGenerator = ImageGenerator{}

// GenerateImage returns a fixed placeholder URL for the prompt.
func (ImageGenerator) GenerateImage(_ context.Context, _, size string) (string, error) {
	if size == "" {
		size = "1792x1024"
	}
	return "https://placehold.example/" + size + ".png", nil
}

// Notifier logs messages instead of delivering them.
type Notifier struct {
	Logger *slog.Logger
}

var _ ports.Notifier = Notifier{}

// Send logs the subject and body.
func (n Notifier) Send(_ context.Context, subject, body string) error {
	if n.Logger != nil {
		n.Logger.Info("notification (dry run)", "subject", subject, "body", body)
	}
	return nil
}

// AnalyticsProvider serves a fixed reporting dataset.
type AnalyticsProvider struct{}

var _ ports.AnalyticsProvider = AnalyticsProvider{}

// PullAnalytics returns the fixed traffic snapshot.
func (AnalyticsProvider) PullAnalytics(context.Context) (domain.AnalyticsSnapshot, error) {
	return domain.AnalyticsSnapshot{
		Sessions:    4200,
		Users:       3100,
		BounceRate:  0.47,
		Conversions: 38,
		Sources: []domain.TrafficSource{
			{Medium: "organic", Sessions: 2900},
			{Medium: "direct", Sessions: 800},
			{Medium: "referral", Sessions: 500},
		},
	}, nil
}

// PullSearchConsole returns fixed ranking rows.
func (AnalyticsProvider) PullSearchConsole(context.Context) ([]domain.KeywordRanking, error) {
	return []domain.KeywordRanking{
		{Keyword: "crm software", Impressions: 12000, Clicks: 480, CTR: 0.04, Position: 6.2, Page: "/blog/crm-software"},
		{Keyword: "email marketing", Impressions: 9000, Clicks: 270, CTR: 0.03, Position: 8.9, Page: "/blog/email-marketing"},
	}, nil
}

// PullLeadStats returns fixed lead totals.
func (AnalyticsProvider) PullLeadStats(context.Context) (domain.LeadStats, error) {
	return domain.LeadStats{NewLeads: 24, AvgScore: 58.5}, nil
}

// PullEmailStats returns fixed sequence figures.
func (AnalyticsProvider) PullEmailStats(context.Context) (domain.EmailStats, error) {
	return domain.EmailStats{Sent: 480, OpenRate: 0.41, ClickRate: 0.07}, nil
}
