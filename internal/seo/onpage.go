package seo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
)

// PageFacts summarizes the measurable on-page structure of an article.
type PageFacts struct {
	H1             string
	KeywordInH1    bool
	KeywordInFirst bool // keyword appears in the first 100 words
	H2Count        int
	H3Count        int
	InternalLinks  int // [INTERNAL_LINK: ...] placeholders
	Images         int
	WordCount      int
}

// InspectHTML parses article HTML and extracts the on-page facts the audit
// checks against.
func InspectHTML(articleHTML, keyword string) (PageFacts, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(articleHTML))
	if err != nil {
		return PageFacts{}, fmt.Errorf("parse article html: %w", err)
	}

	kw := strings.ToLower(keyword)
	text := strings.Join(strings.Fields(doc.Text()), " ")
	words := strings.Fields(text)

	facts := PageFacts{
		H1:        strings.TrimSpace(doc.Find("h1").First().Text()),
		H2Count:   doc.Find("h2").Length(),
		H3Count:   doc.Find("h3").Length(),
		Images:    doc.Find("img").Length(),
		WordCount: len(words),
	}

	facts.KeywordInH1 = kw != "" && strings.Contains(strings.ToLower(facts.H1), kw)

	first := words
	if len(first) > 100 {
		first = first[:100]
	}
	facts.KeywordInFirst = kw != "" && strings.Contains(strings.ToLower(strings.Join(first, " ")), kw)

	facts.InternalLinks = strings.Count(articleHTML, "[INTERNAL_LINK:")

	return facts, nil
}

// OnPageChecks scores the local, deterministic audit factors from page facts.
// These complement the model's judgment-based checks.
func OnPageChecks(facts PageFacts, targetWordCount int) []domain.AuditCheck {
	checks := make([]domain.AuditCheck, 0, 5)

	checks = append(checks, boolCheck("Keyword in H1", facts.KeywordInH1, facts.H1))
	checks = append(checks, boolCheck("Keyword in first 100 words", facts.KeywordInFirst, ""))

	headingsOK := facts.H2Count >= 2
	checks = append(checks, domain.AuditCheck{
		Factor: "H2/H3 structure",
		Score:  scoreFor(headingsOK),
		Pass:   headingsOK,
		Note:   fmt.Sprintf("%d H2, %d H3", facts.H2Count, facts.H3Count),
	})

	linksOK := facts.InternalLinks > 0
	checks = append(checks, domain.AuditCheck{
		Factor: "Internal link placeholders",
		Score:  scoreFor(linksOK),
		Pass:   linksOK,
		Note:   fmt.Sprintf("%d placeholders", facts.InternalLinks),
	})

	// Within 40% of target counts as close enough for a draft.
	wordsOK := targetWordCount == 0 || facts.WordCount*10 >= targetWordCount*6
	checks = append(checks, domain.AuditCheck{
		Factor: "Word count",
		Score:  scoreFor(wordsOK),
		Pass:   wordsOK,
		Note:   fmt.Sprintf("%d words (target %d)", facts.WordCount, targetWordCount),
	})

	return checks
}

func boolCheck(factor string, pass bool, note string) domain.AuditCheck {
	return domain.AuditCheck{Factor: factor, Score: scoreFor(pass), Pass: pass, Note: note}
}

func scoreFor(pass bool) int {
	if pass {
		return 10
	}
	return 3
}

var linkPattern = regexp.MustCompile(`(?i)\[INTERNAL_LINK:\s*(.+?)\s*->\s*(.+?)\s*\]`)

const blogBaseURL = "/blog/"

// ResolveInternalLinks replaces [INTERNAL_LINK: anchor text -> slug]
// placeholders with anchor tags. When publishedSlugs is non-empty, only
// placeholders pointing at a published slug are resolved; the rest keep
// their placeholder for a later pass. Returns the rewritten HTML and the
// number of links resolved.
func ResolveInternalLinks(articleHTML string, publishedSlugs []string) (string, int) {
	matches := linkPattern.FindAllStringSubmatchIndex(articleHTML, -1)
	if len(matches) == 0 {
		return articleHTML, 0
	}

	published := make(map[string]bool, len(publishedSlugs))
	for _, slug := range publishedSlugs {
		published[strings.ToLower(slug)] = true
	}

	var b strings.Builder
	count := 0
	prev := 0
	for _, m := range matches {
		anchor := strings.TrimSpace(articleHTML[m[2]:m[3]])
		slug := strings.ToLower(strings.TrimSpace(articleHTML[m[4]:m[5]]))

		if len(published) > 0 && !published[slug] {
			continue
		}

		b.WriteString(articleHTML[prev:m[0]])
		fmt.Fprintf(&b, `<a href="%s%s">%s</a>`, blogBaseURL, slug, anchor)
		prev = m[1]
		count++
	}
	b.WriteString(articleHTML[prev:])

	return b.String(), count
}
