package mock

import (
	"context"
	"reflect"
	"testing"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
)

func TestExpandKeywordsIsRepeatable(t *testing.T) {
	t.Parallel()

	provider := KeywordProvider{}
	seeds := []string{"crm", "email marketing"}

	first, err := provider.ExpandKeywords(context.Background(), seeds)
	if err != nil {
		t.Fatalf("ExpandKeywords: %v", err)
	}
	second, err := provider.ExpandKeywords(context.Background(), seeds)
	if err != nil {
		t.Fatalf("ExpandKeywords: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical seeds must produce identical metrics")
	}

	// Metrics come from the fixed tuple table by position.
	if first[0].SearchVolume != 2400 || first[0].CPC != 4.50 {
		t.Fatalf("unexpected first tuple: %+v", first[0])
	}
	if first[1].SearchVolume != 8100 || first[1].CompetitionLevel != "high" {
		t.Fatalf("unexpected second tuple: %+v", first[1])
	}
}

func TestExpandKeywordsWrapsTupleTable(t *testing.T) {
	t.Parallel()

	seeds := make([]string, len(metricTuples)+1)
	for i := range seeds {
		seeds[i] = "kw"
	}

	got, err := KeywordProvider{}.ExpandKeywords(context.Background(), seeds)
	if err != nil {
		t.Fatalf("ExpandKeywords: %v", err)
	}
	last := got[len(got)-1]
	if last.SearchVolume != metricTuples[0].volume {
		t.Fatalf("position beyond table must wrap to first tuple, got %+v", last)
	}
}

func TestKeywordSuggestionsDeriveSuffixVariations(t *testing.T) {
	t.Parallel()

	got, err := KeywordProvider{}.KeywordSuggestions(context.Background(), []string{"crm"})
	if err != nil {
		t.Fatalf("KeywordSuggestions: %v", err)
	}
	if len(got) != len(suggestionSuffixes) {
		t.Fatalf("expected %d suggestions, got %d", len(suggestionSuffixes), len(got))
	}
	if got[0].Keyword != "crm for small business" {
		t.Fatalf("unexpected first suggestion %q", got[0].Keyword)
	}
}

func TestAuditAlwaysPassesGate(t *testing.T) {
	t.Parallel()

	audit, err := Assistant{}.AuditSEO(context.Background(), "<h1>x</h1>", domain.SEOMeta{}, 2000)
	if err != nil {
		t.Fatalf("AuditSEO: %v", err)
	}
	if audit.OverallScore != 82 {
		t.Fatalf("expected fixed score 82, got %d", audit.OverallScore)
	}
}

func TestScoreLeadSplitsByEmailDomain(t *testing.T) {
	t.Parallel()

	business, err := Assistant{}.ScoreLead(context.Background(), domain.Lead{Email: "ada@acme.io"})
	if err != nil {
		t.Fatalf("ScoreLead: %v", err)
	}
	if business.Score != 72 || business.Tier != domain.TierWarm {
		t.Fatalf("expected 72/warm for business email, got %+v", business)
	}

	free, err := Assistant{}.ScoreLead(context.Background(), domain.Lead{Email: "ada@gmail.com"})
	if err != nil {
		t.Fatalf("ScoreLead: %v", err)
	}
	if free.Score != 35 || free.Tier != domain.TierCool {
		t.Fatalf("expected 35/cool for free email, got %+v", free)
	}
}

func TestSheetStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewSheetStore()

	n, err := store.AppendRows(ctx, "Leads",
		[]string{"Name", "Email", "Status"},
		[]map[string]string{
			{"Name": "Ada", "Email": "ada@acme.io", "Status": "new"},
			{"Name": "Bob", "Email": "bob@gmail.com", "Status": "passive"},
		},
	)
	if err != nil || n != 2 {
		t.Fatalf("AppendRows: n=%d err=%v", n, err)
	}

	table, err := store.ReadTable(ctx, "Leads")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Rows) != 2 || table.Rows[0].Number != 2 {
		t.Fatalf("unexpected table: %+v", table)
	}

	// Update Bob's status cell (sheet row 3, Status column).
	if err := store.UpdateCell(ctx, "Leads", 3, table.Col("Status"), "new"); err != nil {
		t.Fatalf("UpdateCell: %v", err)
	}
	table, _ = store.ReadTable(ctx, "Leads")
	if table.Rows[1].Values["Status"] != "new" {
		t.Fatalf("expected updated status, got %q", table.Rows[1].Values["Status"])
	}

	found, err := store.HasRow(ctx, "Leads", "Email", "ADA@ACME.IO")
	if err != nil || !found {
		t.Fatalf("expected case-insensitive dedup hit, found=%v err=%v", found, err)
	}
}

func TestSheetStoreUpdateCellBounds(t *testing.T) {
	t.Parallel()

	store := NewSheetStore()
	store.Seed("Tab", []string{"A"}, [][]string{{"x"}})

	if err := store.UpdateCell(context.Background(), "Tab", 1, 1, "v"); err == nil {
		t.Fatal("row 1 is the header and must be rejected")
	}
	if err := store.UpdateCell(context.Background(), "Missing", 2, 1, "v"); err == nil {
		t.Fatal("unknown tab must error")
	}
}

func TestRunRepositoryDedup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRunRepository()

	if err := repo.MarkWritten(ctx, "crm software", "crm-software", 82); err != nil {
		t.Fatalf("MarkWritten: %v", err)
	}

	written, err := repo.AlreadyWritten(ctx, []string{"crm software", "email tips"})
	if err != nil {
		t.Fatalf("AlreadyWritten: %v", err)
	}
	if !written["crm software"] || written["email tips"] {
		t.Fatalf("unexpected dedup map: %v", written)
	}
}

func TestPublisherBuildsBlogLink(t *testing.T) {
	t.Parallel()

	p := NewPublisher("https://example.com/")
	post, err := p.Publish(context.Background(), domain.Article{
		Meta: domain.SEOMeta{Slug: "crm-software"},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if post.Link != "https://example.com/blog/crm-software" {
		t.Fatalf("unexpected link %q", post.Link)
	}
	if post.Status != "publish" || post.ID == 0 {
		t.Fatalf("unexpected post %+v", post)
	}
}
