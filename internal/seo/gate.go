// Package seo holds the rewrite-or-accept gate and on-page audit checks.
package seo

import (
	"context"
	"fmt"
	"strings"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// ScoreThreshold is the minimum audit score to pass; below it the article
// is rewritten.
const ScoreThreshold = 70

// MaxRewrites bounds audit-triggered rewrites per article. A cost/quality
// tradeoff: the final article is accepted even if the last attempt still
// fails the gate.
const MaxRewrites = 1

// NeedsRewrite reports whether the audit score falls below the threshold.
func NeedsRewrite(audit domain.SEOAuditResult) bool {
	return audit.OverallScore < ScoreThreshold
}

// GateResult is the outcome of the bounded write-audit-rewrite loop.
type GateResult struct {
	HTML     string
	Audit    domain.SEOAuditResult
	Rewrites int
}

// RunGate writes an article, audits it, and rewrites at most MaxRewrites
// times while the audit fails. The last attempt is accepted regardless.
func RunGate(
	ctx context.Context,
	writer ports.ArticleWriter,
	auditor ports.SEOAuditor,
	req ports.ArticleRequest,
	meta domain.SEOMeta,
) (GateResult, error) {
	html, err := writer.WriteArticle(ctx, req)
	if err != nil {
		return GateResult{}, fmt.Errorf("write article: %w", err)
	}

	audit, err := auditor.AuditSEO(ctx, html, meta, req.WordCount)
	if err != nil {
		return GateResult{}, fmt.Errorf("audit article: %w", err)
	}

	rewrites := 0
	for NeedsRewrite(audit) && rewrites < MaxRewrites {
		rewrites++
		req.AuditFeedback = FormatFeedback(audit)

		html, err = writer.WriteArticle(ctx, req)
		if err != nil {
			return GateResult{}, fmt.Errorf("rewrite article: %w", err)
		}

		audit, err = auditor.AuditSEO(ctx, html, meta, req.WordCount)
		if err != nil {
			return GateResult{}, fmt.Errorf("re-audit article: %w", err)
		}
	}

	return GateResult{HTML: html, Audit: audit, Rewrites: rewrites}, nil
}

// FormatFeedback converts audit results into feedback for the rewrite prompt.
func FormatFeedback(audit domain.SEOAuditResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SEO Score: %d/100\n", audit.OverallScore)

	if len(audit.Issues) > 0 {
		b.WriteString("\nISSUES TO FIX:\n")
		for _, issue := range audit.Issues {
			fmt.Fprintf(&b, "  - %s\n", issue)
		}
	}

	if len(audit.Recommendations) > 0 {
		b.WriteString("\nRECOMMENDATIONS:\n")
		for _, rec := range audit.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}
	}

	var failed []domain.AuditCheck
	for _, check := range audit.Checks {
		if !check.Pass {
			failed = append(failed, check)
		}
	}
	if len(failed) > 0 {
		b.WriteString("\nFAILED CHECKS:\n")
		for _, check := range failed {
			fmt.Fprintf(&b, "  - %s: %s\n", check.Factor, check.Note)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
