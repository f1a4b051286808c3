package ports

import (
	"context"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
)

// ChatClient is the low-level LLM chat-completion transport.
type ChatClient interface {
	// Ask returns the assistant's plain-text response.
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// AskJSON asks for a JSON response and decodes it into v, stripping
	// markdown code fences before parsing.
	AskJSON(ctx context.Context, systemPrompt, userPrompt string, v any) error
}

// KeywordProvider pulls volume/competition/CPC data for keywords.
type KeywordProvider interface {
	ExpandKeywords(ctx context.Context, seeds []string) ([]domain.KeywordMetric, error)
	KeywordSuggestions(ctx context.Context, seeds []string) ([]domain.KeywordMetric, error)
}

// KeywordClusterer groups keywords by intent and scores opportunity.
type KeywordClusterer interface {
	ClusterKeywords(ctx context.Context, niche string, data []domain.KeywordMetric) (domain.ClusteringResult, error)
}

// CompetitorAnalyst finds content gaps for high-opportunity keywords.
type CompetitorAnalyst interface {
	AnalyzeCompetitors(ctx context.Context, keywords []string) ([]domain.ContentGap, error)
}

// ContentPlanner turns queued keywords into a content plan and cluster map.
type ContentPlanner interface {
	PlanContent(ctx context.Context, niche string, queued []domain.QueueRow) (domain.ContentPlan, error)
}

// OutlineGenerator drafts an article outline for a plan item.
type OutlineGenerator interface {
	GenerateOutline(ctx context.Context, item domain.ContentPlanItem) (string, error)
}

// ArticleRequest carries everything the writer needs for one article.
type ArticleRequest struct {
	Title         string
	Keyword       string
	WordCount     int
	ContentType   string
	OutlineText   string
	AuditFeedback string
}

// ArticleWriter produces full HTML articles from outlines.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, req ArticleRequest) (string, error)
}

// MetaGenerator produces the SEO metadata bundle for an article.
type MetaGenerator interface {
	GenerateMeta(ctx context.Context, title, keyword, publishDate string) (domain.SEOMeta, error)
}

// SEOAuditor scores an article against the quality checklist.
type SEOAuditor interface {
	AuditSEO(ctx context.Context, articleHTML string, meta domain.SEOMeta, targetWordCount int) (domain.SEOAuditResult, error)
}

// LeadScorer scores a validated lead 0-100.
type LeadScorer interface {
	ScoreLead(ctx context.Context, lead domain.Lead) (domain.LeadScore, error)
}

// SocialGenerator repurposes a published article into social posts.
type SocialGenerator interface {
	GenerateSocialPosts(ctx context.Context, title, url, keyword string) ([]domain.SocialPost, error)
}

// EmailWriter generates follow-up and nurture emails.
type EmailWriter interface {
	GenerateFollowUp(ctx context.Context, lead map[string]string, step, total int) (domain.FollowUpEmail, error)
	GenerateNurture(ctx context.Context, subscriber map[string]string, step int) (domain.FollowUpEmail, error)
	GenerateNewsletter(ctx context.Context, articles []map[string]string) (domain.FollowUpEmail, error)
}

// PerformanceAnalyst reviews site performance and proposes actions.
type PerformanceAnalyst interface {
	AnalyzePerformance(ctx context.Context, pages []domain.PagePerformance) (domain.PerformanceAnalysis, error)
	GenerateReport(ctx context.Context, analytics domain.AnalyticsSnapshot, rankings []domain.KeywordRanking, leads domain.LeadStats, email domain.EmailStats) (domain.PerformanceReport, error)
}

// ImagePrompter writes an image-generation prompt for an article.
type ImagePrompter interface {
	GenerateImagePrompt(ctx context.Context, title, keyword string) (string, error)
}

// SheetTable is one tab read in full: header row plus data rows.
type SheetTable struct {
	Headers []string
	Rows    []SheetRow
}

// SheetRow is a data row keyed by header, with its 1-indexed sheet row number.
type SheetRow struct {
	Number int
	Values map[string]string
}

// Col returns the 1-indexed column number of a header, or 0 if absent.
func (t SheetTable) Col(header string) int {
	for i, h := range t.Headers {
		if h == header {
			return i + 1
		}
	}
	return 0
}

// SheetStore is the spreadsheet acting as the pipeline's database.
// Tabs are typed tables with a fixed header row; rows are append-only
// except for targeted single-cell status updates.
type SheetStore interface {
	ReadTable(ctx context.Context, tab string) (SheetTable, error)
	AppendRows(ctx context.Context, tab string, headers []string, rows []map[string]string) (int, error)
	UpdateCell(ctx context.Context, tab string, row, col int, value string) error
	HasRow(ctx context.Context, tab, keyColumn, keyValue string) (bool, error)
}

// RunRepository persists run history and written-keyword dedup state.
type RunRepository interface {
	AlreadyWritten(ctx context.Context, keywords []string) (map[string]bool, error)
	MarkWritten(ctx context.Context, keyword, slug string, seoScore int) error
	SaveRun(ctx context.Context, workflow string, summary map[string]any) error
}

// Publisher pushes a formatted article to the CMS.
type Publisher interface {
	Publish(ctx context.Context, article domain.Article) (domain.PublishedPost, error)
}

// Indexer submits a published URL for search-engine indexing.
type Indexer interface {
	SubmitURL(ctx context.Context, url string) error
}

// ImageGenerator creates a featured image and returns its URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, size string) (string, error)
}

// Notifier delivers run summaries to the configured channel.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// AnalyticsProvider pulls traffic and search data from opaque services.
type AnalyticsProvider interface {
	PullAnalytics(ctx context.Context) (domain.AnalyticsSnapshot, error)
	PullSearchConsole(ctx context.Context) ([]domain.KeywordRanking, error)
	PullLeadStats(ctx context.Context) (domain.LeadStats, error)
	PullEmailStats(ctx context.Context) (domain.EmailStats, error)
}
