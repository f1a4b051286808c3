package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
	"github.com/ceddto100/SEO-LEAD/internal/seo"
)

// Assistant implements the LLM-backed pipeline operations on top of a
// ChatClient.
type Assistant struct {
	chat   ports.ChatClient
	logger *slog.Logger
}

var (
	_ ports.KeywordClusterer   = (*Assistant)(nil)
	_ ports.CompetitorAnalyst  = (*Assistant)(nil)
	_ ports.ContentPlanner     = (*Assistant)(nil)
	_ ports.OutlineGenerator   = (*Assistant)(nil)
	_ ports.ArticleWriter      = (*Assistant)(nil)
	_ ports.MetaGenerator      = (*Assistant)(nil)
	_ ports.SEOAuditor         = (*Assistant)(nil)
	_ ports.LeadScorer         = (*Assistant)(nil)
	_ ports.SocialGenerator    = (*Assistant)(nil)
	_ ports.EmailWriter        = (*Assistant)(nil)
	_ ports.PerformanceAnalyst = (*Assistant)(nil)
	_ ports.ImagePrompter      = (*Assistant)(nil)
)

// NewAssistant wires the assistant to a chat transport.
func NewAssistant(chat ports.ChatClient, logger *slog.Logger) *Assistant {
	return &Assistant{chat: chat, logger: logger}
}

const clusteringSystemPrompt = `You are an expert SEO keyword strategist. You analyze keyword data and produce structured, actionable keyword clustering reports. Always return valid JSON with no commentary outside the JSON object. Cluster keywords by search intent (informational, transactional, navigational), generate 30 additional long-tail variations, and score each keyword 1-10 on opportunity (high volume + low competition = high score). Return: {"clusters":[{"intent":"...","keywords":[{"keyword":"...","search_volume":0,"competition":"low","cpc":0,"opportunity_score":0,"source":"original"}]}],"total_keywords":0,"top_opportunities":[{"keyword":"...","opportunity_score":0,"intent":"..."}]}`

// ClusterKeywords sends keyword data for expansion, clustering and scoring.
func (a *Assistant) ClusterKeywords(ctx context.Context, niche string, data []domain.KeywordMetric) (domain.ClusteringResult, error) {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return domain.ClusteringResult{}, fmt.Errorf("marshal keyword data: %w", err)
	}

	user := fmt.Sprintf("Niche: %s\n\nKeyword data:\n%s", niche, payload)

	var result domain.ClusteringResult
	if err := a.chat.AskJSON(ctx, clusteringSystemPrompt, user, &result); err != nil {
		return domain.ClusteringResult{}, fmt.Errorf("cluster keywords: %w", err)
	}

	if len(result.Clusters) == 0 {
		a.warn("clustering response missing clusters", "niche", niche)
	}
	return result, nil
}

const competitorSystemPrompt = `You are a competitive content analyst. For each keyword, identify the weaknesses of the top-ranking content and the gap a new article could exploit. Return ONLY valid JSON: {"gaps":[{"keyword":"...","competitor":"...","gap":"...","opportunity":"...","suggested_type":"..."}]}`

// AnalyzeCompetitors requests content-gap analysis for the given keywords.
func (a *Assistant) AnalyzeCompetitors(ctx context.Context, keywords []string) ([]domain.ContentGap, error) {
	var result struct {
		Gaps []domain.ContentGap `json:"gaps"`
	}
	user := "Keywords:\n- " + strings.Join(keywords, "\n- ")
	if err := a.chat.AskJSON(ctx, competitorSystemPrompt, user, &result); err != nil {
		return nil, fmt.Errorf("analyze competitors: %w", err)
	}
	return result.Gaps, nil
}

const strategySystemPrompt = `You are a content strategist for a digital business blog. For each prioritised keyword decide: content type (blog post | ultimate guide | listicle | comparison | case study | how-to tutorial), target word count (thin=1200, medium=2000, competitive=3000+), an SEO-optimised title, a meta description under 155 chars, pillar or cluster classification, internal link target slugs, and publishing priority 1 (urgent) to 5. Also produce a topical cluster map of pillar to supporting slugs. Return ONLY valid JSON: {"content_plan":[{"keyword":"...","content_type":"...","word_count":2000,"title":"...","meta_description":"...","pillar_or_cluster":"pillar","internal_links":["slug"],"priority":1}],"cluster_map":{"pillar-slug":["supporting-slug"]}}`

// PlanContent turns queued keywords into a content plan plus cluster map.
func (a *Assistant) PlanContent(ctx context.Context, niche string, queued []domain.QueueRow) (domain.ContentPlan, error) {
	summary := make([]map[string]any, 0, len(queued))
	for _, row := range queued {
		summary = append(summary, map[string]any{
			"keyword":           row.Keyword,
			"volume":            row.Volume,
			"intent":            row.Intent,
			"opportunity_score": row.OpportunityScore,
		})
	}
	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return domain.ContentPlan{}, fmt.Errorf("marshal queued keywords: %w", err)
	}

	user := fmt.Sprintf("Niche: %s\n\nPrioritised keywords to plan content for:\n%s", niche, payload)

	var plan domain.ContentPlan
	if err := a.chat.AskJSON(ctx, strategySystemPrompt, user, &plan); err != nil {
		return domain.ContentPlan{}, fmt.Errorf("plan content: %w", err)
	}
	return plan, nil
}

const outlineSystemPrompt = `You are a senior content editor. Draft a detailed markdown outline (## and ### headings) for the article described. Include an introduction hook, main sections with subsections, an FAQ section, and a conclusion with CTA. Return the outline as plain markdown, no JSON.`

// GenerateOutline drafts an outline for one plan item.
func (a *Assistant) GenerateOutline(ctx context.Context, item domain.ContentPlanItem) (string, error) {
	user := fmt.Sprintf("Title: %s\nKeyword: %s\nContent type: %s\nTarget word count: %d",
		item.Title, item.Keyword, item.ContentType, item.WordCount)

	outline, err := a.chat.Ask(ctx, outlineSystemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("generate outline: %w", err)
	}
	return outline, nil
}

const writerSystemPrompt = `You are an expert blog writer producing publication-ready HTML articles. Follow the provided outline. Use <h1> for the title, <h2>/<h3> for sections, short paragraphs, lists and tables where useful. Include [INTERNAL_LINK: anchor text -> slug] placeholders for internal links and [IMAGE: description] placeholders. Include an FAQ section and clear CTAs. Write naturally for humans; include the primary keyword in the H1 and early paragraphs without stuffing.`

// WriteArticle produces the full HTML article, optionally incorporating
// audit feedback from a failed SEO review.
func (a *Assistant) WriteArticle(ctx context.Context, req ports.ArticleRequest) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\nPrimary keyword: %s\nContent type: %s\nTarget word count: %d\n",
		req.Title, req.Keyword, req.ContentType, req.WordCount)
	if req.OutlineText != "" {
		fmt.Fprintf(&b, "\nOutline:\n%s\n", req.OutlineText)
	}
	if req.AuditFeedback != "" {
		fmt.Fprintf(&b, "\nThe previous draft failed an SEO audit. Fix these problems:\n%s\n", req.AuditFeedback)
	}

	html, err := a.chat.Ask(ctx, writerSystemPrompt, b.String())
	if err != nil {
		return "", fmt.Errorf("write article: %w", err)
	}
	return html, nil
}

const metaSystemPrompt = `You are an SEO metadata specialist. Generate complete SEO metadata for the given article. Return ONLY valid JSON: {"meta_title":"max 60 chars with primary keyword","meta_description":"max 155 chars with keyword and CTA","slug":"keyword-optimized-slug","focus_keyword":"...","secondary_keywords":["..."],"schema_markup":{"@context":"https://schema.org","@type":"Article"},"og_title":"...","og_description":"...","twitter_title":"...","twitter_description":"..."}`

// GenerateMeta produces the metadata bundle for an article.
func (a *Assistant) GenerateMeta(ctx context.Context, title, keyword, publishDate string) (domain.SEOMeta, error) {
	user := fmt.Sprintf("Title: %s\nPrimary Keyword: %s\nPublish Date: %s", title, keyword, publishDate)

	var meta domain.SEOMeta
	if err := a.chat.AskJSON(ctx, metaSystemPrompt, user, &meta); err != nil {
		return domain.SEOMeta{}, fmt.Errorf("generate meta: %w", err)
	}
	if meta.Slug == "" {
		meta.Slug = strings.ReplaceAll(strings.ToLower(keyword), " ", "-")
	}
	return meta, nil
}

const auditSystemPrompt = `You are an SEO auditor. Review this article for SEO quality. Score each factor 1-10: keyword density (1-2%), FAQ section present, CTA placements, meta title length (50-60 chars), meta description length (120-155 chars), readability (short paragraphs, lists), image placeholders. Return ONLY valid JSON: {"overall_score":85,"checks":[{"factor":"...","score":10,"pass":true,"note":"..."}],"issues":["..."],"recommendations":["..."]}`

// AuditSEO combines the model's judgment audit with deterministic on-page
// checks extracted from the article HTML.
func (a *Assistant) AuditSEO(ctx context.Context, articleHTML string, meta domain.SEOMeta, targetWordCount int) (domain.SEOAuditResult, error) {
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return domain.SEOAuditResult{}, fmt.Errorf("marshal meta: %w", err)
	}

	truncated := articleHTML
	if len(truncated) > 6000 {
		truncated = truncated[:6000]
	}
	user := fmt.Sprintf("ARTICLE HTML:\n%s\n\nMETA DATA:\n%s\n\nTARGET WORD COUNT: %d",
		truncated, metaJSON, targetWordCount)

	var audit domain.SEOAuditResult
	if err := a.chat.AskJSON(ctx, auditSystemPrompt, user, &audit); err != nil {
		return domain.SEOAuditResult{}, fmt.Errorf("audit seo: %w", err)
	}

	facts, err := seo.InspectHTML(articleHTML, meta.FocusKeyword)
	if err != nil {
		a.warn("on-page inspection failed", "error", err)
		return audit, nil
	}
	audit.Checks = append(audit.Checks, seo.OnPageChecks(facts, targetWordCount)...)
	for _, check := range audit.Checks {
		if !check.Pass && check.Note != "" {
			audit.Issues = append(audit.Issues, fmt.Sprintf("%s: %s", check.Factor, check.Note))
		}
	}

	return audit, nil
}

const leadScoringSystemPrompt = `Score this lead from 1-100 based on likelihood to convert. Criteria: business email domain (+20 vs free email), company size SMB/Enterprise (+15), high-intent source page like pricing/demo (+25), high-value lead magnet (+10), industry match (+15), phone number present (+5). Tiers: 80-100=hot, 50-79=warm, 20-49=cool, 0-19=low. Return ONLY valid JSON: {"score":72,"tier":"warm","reasoning":"...","recommended_action":"...","segment":"..."}`

// ScoreLead scores a validated lead.
func (a *Assistant) ScoreLead(ctx context.Context, lead domain.Lead) (domain.LeadScore, error) {
	user := fmt.Sprintf("Lead Data:\n- name: %s\n- email: %s\n- company: %s\n- source: %s\n- lead_magnet: %s\n- phone: %s",
		lead.Name, lead.Email, lead.Company, lead.Source, lead.LeadMagnet, lead.Phone)

	var score domain.LeadScore
	if err := a.chat.AskJSON(ctx, leadScoringSystemPrompt, user, &score); err != nil {
		return domain.LeadScore{}, fmt.Errorf("score lead: %w", err)
	}
	return score, nil
}

const socialSystemPrompt = `You repurpose blog articles into social media posts. Produce one post each for linkedin, twitter and facebook: platform-appropriate length and voice, a hook, the article link, and 2-3 hashtags. Return ONLY valid JSON: {"posts":[{"platform":"linkedin","text":"...","hashtags":"#a #b"}]}`

// GenerateSocialPosts repurposes a published article.
func (a *Assistant) GenerateSocialPosts(ctx context.Context, title, url, keyword string) ([]domain.SocialPost, error) {
	var result struct {
		Posts []domain.SocialPost `json:"posts"`
	}
	user := fmt.Sprintf("Article: %s\nURL: %s\nKeyword: %s", title, url, keyword)
	if err := a.chat.AskJSON(ctx, socialSystemPrompt, user, &result); err != nil {
		return nil, fmt.Errorf("generate social posts: %w", err)
	}
	return result.Posts, nil
}

const followUpSystemPrompt = `You are a sales development rep writing a follow-up email. Keep it under 150 words, personalize to their company, reference what they downloaded, provide genuine value, one clear CTA, no pushy sales language, short curiosity-driven subject line. Return ONLY valid JSON: {"subject":"...","body":"...","cta_type":"reply","cta_link":""}`

// GenerateFollowUp writes one cadence email for a lead.
func (a *Assistant) GenerateFollowUp(ctx context.Context, lead map[string]string, step, total int) (domain.FollowUpEmail, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Follow-up %d of %d.\nLead:\n", step, total)
	writeFields(&b, lead)

	var email domain.FollowUpEmail
	if err := a.chat.AskJSON(ctx, followUpSystemPrompt, b.String(), &email); err != nil {
		return domain.FollowUpEmail{}, fmt.Errorf("generate follow-up: %w", err)
	}
	return email, nil
}

const nurtureSystemPrompt = `You write nurture emails for an email marketing sequence. Educational tone, one useful idea per email, soft CTA. Return ONLY valid JSON: {"subject":"...","body":"...","cta_type":"read","cta_link":""}`

// GenerateNurture writes one nurture-sequence email for a subscriber.
func (a *Assistant) GenerateNurture(ctx context.Context, subscriber map[string]string, step int) (domain.FollowUpEmail, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Nurture sequence step %d.\nSubscriber:\n", step)
	writeFields(&b, subscriber)

	var email domain.FollowUpEmail
	if err := a.chat.AskJSON(ctx, nurtureSystemPrompt, b.String(), &email); err != nil {
		return domain.FollowUpEmail{}, fmt.Errorf("generate nurture email: %w", err)
	}
	return email, nil
}

const newsletterSystemPrompt = `You write a weekly newsletter digesting recently published articles. Short intro, one line per article with its link, friendly sign-off. Return ONLY valid JSON: {"subject":"...","body":"...","cta_type":"read","cta_link":""}`

// GenerateNewsletter digests recent articles into a newsletter.
func (a *Assistant) GenerateNewsletter(ctx context.Context, articles []map[string]string) (domain.FollowUpEmail, error) {
	payload, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return domain.FollowUpEmail{}, fmt.Errorf("marshal articles: %w", err)
	}

	var email domain.FollowUpEmail
	if err := a.chat.AskJSON(ctx, newsletterSystemPrompt, "Recent articles:\n"+string(payload), &email); err != nil {
		return domain.FollowUpEmail{}, fmt.Errorf("generate newsletter: %w", err)
	}
	return email, nil
}

const performanceSystemPrompt = `You are an SEO performance analyst. Review page performance data and return: pages worth refreshing (traffic decline), underperformer fixes, new keyword targets, and top-performer insights. Return ONLY valid JSON: {"refresh_candidates":[{"url":"...","keyword":"...","sessions":0,"decline":"...","actions":["..."]}],"underperformer_fixes":[{"url":"...","issues":["..."],"actions":["..."]}],"keyword_adjustments":{"new_targets":["..."]},"top_performer_insights":{"pattern":"..."}}`

// AnalyzePerformance reviews page data for the feedback loop.
func (a *Assistant) AnalyzePerformance(ctx context.Context, pages []domain.PagePerformance) (domain.PerformanceAnalysis, error) {
	payload, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return domain.PerformanceAnalysis{}, fmt.Errorf("marshal pages: %w", err)
	}

	var analysis domain.PerformanceAnalysis
	if err := a.chat.AskJSON(ctx, performanceSystemPrompt, "Page performance:\n"+string(payload), &analysis); err != nil {
		return domain.PerformanceAnalysis{}, fmt.Errorf("analyze performance: %w", err)
	}
	return analysis, nil
}

const reportSystemPrompt = `You are a marketing analyst writing a periodic performance report. Summarize highlights, concerns and concrete recommendations from the data. Return ONLY valid JSON: {"highlights":["..."],"concerns":["..."],"recommendations":["..."]}`

// GenerateReport builds the weekly/monthly analytics report.
func (a *Assistant) GenerateReport(ctx context.Context, analytics domain.AnalyticsSnapshot, rankings []domain.KeywordRanking, leadStats domain.LeadStats, email domain.EmailStats) (domain.PerformanceReport, error) {
	payload, err := json.MarshalIndent(map[string]any{
		"analytics": analytics,
		"rankings":  rankings,
		"leads":     leadStats,
		"email":     email,
	}, "", "  ")
	if err != nil {
		return domain.PerformanceReport{}, fmt.Errorf("marshal report data: %w", err)
	}

	var report domain.PerformanceReport
	if err := a.chat.AskJSON(ctx, reportSystemPrompt, string(payload), &report); err != nil {
		return domain.PerformanceReport{}, fmt.Errorf("generate report: %w", err)
	}
	return report, nil
}

const imagePromptSystemPrompt = `You write prompts for an AI image generator producing featured blog images. Describe a clean, modern, editorial illustration matching the article topic. No text in the image. Return the prompt as plain text.`

// GenerateImagePrompt writes the image-generation prompt for an article.
func (a *Assistant) GenerateImagePrompt(ctx context.Context, title, keyword string) (string, error) {
	user := fmt.Sprintf("Article title: %s\nKeyword: %s", title, keyword)
	prompt, err := a.chat.Ask(ctx, imagePromptSystemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("generate image prompt: %w", err)
	}
	return prompt, nil
}

func writeFields(b *strings.Builder, fields map[string]string) {
	for k, v := range fields {
		fmt.Fprintf(b, "- %s: %s\n", k, v)
	}
}

func (a *Assistant) warn(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}
