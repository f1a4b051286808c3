package seo

import (
	"strings"
	"testing"
)

const sampleArticle = `
<h1>The Complete Guide to Lead Generation</h1>
<p>Lead generation is the lifeblood of any growing business. This guide
covers the strategies that matter in 2026.</p>
<h2>Why It Matters</h2>
<p>See [INTERNAL_LINK: our CRM guide -> best-crm-software] for tooling.</p>
<h2>Strategies</h2>
<h3>Content Marketing</h3>
<img src="placeholder.png" alt="funnel diagram">
<p>More detail here.</p>
`

func TestInspectHTML(t *testing.T) {
	t.Parallel()

	facts, err := InspectHTML(sampleArticle, "lead generation")
	if err != nil {
		t.Fatalf("InspectHTML error: %v", err)
	}

	if !facts.KeywordInH1 {
		t.Fatalf("keyword should be detected in H1: %q", facts.H1)
	}
	if !facts.KeywordInFirst {
		t.Fatalf("keyword should be detected in first 100 words")
	}
	if facts.H2Count != 2 || facts.H3Count != 1 {
		t.Fatalf("unexpected heading counts: %d H2, %d H3", facts.H2Count, facts.H3Count)
	}
	if facts.InternalLinks != 1 {
		t.Fatalf("expected 1 link placeholder, got %d", facts.InternalLinks)
	}
	if facts.Images != 1 {
		t.Fatalf("expected 1 image, got %d", facts.Images)
	}
	if facts.WordCount == 0 {
		t.Fatalf("word count should be non-zero")
	}
}

func TestOnPageChecks(t *testing.T) {
	t.Parallel()

	facts, err := InspectHTML(sampleArticle, "lead generation")
	if err != nil {
		t.Fatalf("InspectHTML error: %v", err)
	}

	checks := OnPageChecks(facts, 40)
	if len(checks) != 5 {
		t.Fatalf("expected 5 checks, got %d", len(checks))
	}
	for _, check := range checks {
		if check.Factor == "Keyword in H1" && !check.Pass {
			t.Fatalf("H1 check should pass")
		}
		if check.Factor == "Internal link placeholders" && !check.Pass {
			t.Fatalf("link placeholder check should pass")
		}
	}

	// Unreachable word target fails the word-count check.
	checks = OnPageChecks(facts, 5000)
	for _, check := range checks {
		if check.Factor == "Word count" && check.Pass {
			t.Fatalf("word count check should fail against target 5000")
		}
	}
}

func TestResolveInternalLinks(t *testing.T) {
	t.Parallel()

	html := `<p>Read [INTERNAL_LINK: the CRM guide -> best-crm-software] and
[INTERNAL_LINK: SEO tips -> seo-best-practices] today.</p>`

	resolved, count := ResolveInternalLinks(html, nil)
	if count != 2 {
		t.Fatalf("expected 2 resolved links, got %d", count)
	}
	if !strings.Contains(resolved, `<a href="/blog/best-crm-software">the CRM guide</a>`) {
		t.Fatalf("missing resolved CRM link:\n%s", resolved)
	}
	if strings.Contains(resolved, "[INTERNAL_LINK:") {
		t.Fatalf("placeholders remain:\n%s", resolved)
	}
}

func TestResolveInternalLinksOnlyPublishedSlugs(t *testing.T) {
	t.Parallel()

	html := `[INTERNAL_LINK: published -> seo-best-practices] [INTERNAL_LINK: pending -> not-yet-live]`

	resolved, count := ResolveInternalLinks(html, []string{"seo-best-practices"})
	if count != 1 {
		t.Fatalf("expected 1 resolved link, got %d", count)
	}
	if !strings.Contains(resolved, `<a href="/blog/seo-best-practices">published</a>`) {
		t.Fatalf("published slug not resolved:\n%s", resolved)
	}
	if !strings.Contains(resolved, "[INTERNAL_LINK: pending -> not-yet-live]") {
		t.Fatalf("unpublished slug placeholder must be kept:\n%s", resolved)
	}
}

func TestResolveInternalLinksNoPlaceholders(t *testing.T) {
	t.Parallel()

	html := "<p>No links here.</p>"
	resolved, count := ResolveInternalLinks(html, nil)
	if count != 0 || resolved != html {
		t.Fatalf("expected passthrough, got count=%d html=%q", count, resolved)
	}
}
