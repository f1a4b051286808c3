package workflow_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/mock"
	"github.com/ceddto100/SEO-LEAD/internal/workflow"
)

func fixedNow() time.Time {
	// A Monday, so the calendar starts on a valid publish day.
	return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
}

func TestRegistryResolvesByID(t *testing.T) {
	t.Parallel()

	reg := workflow.NewRegistry()
	reg.Register(workflow.NewKeywordResearch(workflow.KeywordResearchDeps{}))
	reg.Register(workflow.NewPublishing(workflow.PublishingDeps{}))

	w, err := reg.Resolve("wf01")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.Name() != "keyword research" {
		t.Fatalf("unexpected workflow %q", w.Name())
	}

	if _, err := reg.Resolve("wf99"); !errors.Is(err, workflow.ErrUnknownWorkflow) {
		t.Fatalf("expected ErrUnknownWorkflow, got %v", err)
	}

	ids := reg.IDs()
	if len(ids) != 2 || ids[0] != "wf01" || ids[1] != "wf05" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestKeywordResearchFillsQueue(t *testing.T) {
	t.Parallel()

	store := mock.NewSheetStore()
	wf := workflow.NewKeywordResearch(workflow.KeywordResearchDeps{
		Provider:  mock.KeywordProvider{},
		Clusterer: mock.Assistant{},
		Analyst:   mock.Assistant{},
		Sheets:    store,
		Niche:     "digital marketing",
		Seeds:     []string{"crm", "email marketing"},
		MinVolume: 100,
		TopN:      5,
		Now:       fixedNow,
	})

	summary, err := wf.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary["keywords_found"].(int) != 10 { // 2 seeds + 4 suggestions each
		t.Fatalf("expected 10 keywords, got %v", summary["keywords_found"])
	}
	if summary["queued"].(int) != 5 {
		t.Fatalf("expected 5 queued, got %v", summary["queued"])
	}
	if summary["content_gaps"].(int) != 3 {
		t.Fatalf("expected 3 gaps, got %v", summary["content_gaps"])
	}

	queue, err := store.ReadTable(context.Background(), workflow.TabContentQueue)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(queue.Rows) != 5 {
		t.Fatalf("expected 5 queue rows, got %d", len(queue.Rows))
	}
	for _, row := range queue.Rows {
		if row.Values["Status"] != "new" {
			t.Fatalf("expected status new, got %q", row.Values["Status"])
		}
		if row.Values["Source"] != "keyword-research" {
			t.Fatalf("unexpected source %q", row.Values["Source"])
		}
	}

	// A second run must not duplicate queue rows.
	if _, err := wf.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	queue, _ = store.ReadTable(context.Background(), workflow.TabContentQueue)
	if len(queue.Rows) != 5 {
		t.Fatalf("second run duplicated queue rows: %d", len(queue.Rows))
	}
}

func TestKeywordResearchReadsNicheInputsTab(t *testing.T) {
	t.Parallel()

	store := mock.NewSheetStore()
	store.Seed(workflow.TabNicheInputs,
		[]string{"Niche", "Keywords"},
		[][]string{{"saas", "crm, helpdesk"}},
	)

	wf := workflow.NewKeywordResearch(workflow.KeywordResearchDeps{
		Provider:  mock.KeywordProvider{},
		Clusterer: mock.Assistant{},
		Analyst:   mock.Assistant{},
		Sheets:    store,
		MinVolume: 100,
		TopN:      10,
		Now:       fixedNow,
	})

	summary, err := wf.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary["niche"] != "saas" || summary["seeds"].(int) != 2 {
		t.Fatalf("expected tab fallback inputs, got %v", summary)
	}
}

func TestKeywordResearchRequiresSeeds(t *testing.T) {
	t.Parallel()

	wf := workflow.NewKeywordResearch(workflow.KeywordResearchDeps{
		Provider:  mock.KeywordProvider{},
		Clusterer: mock.Assistant{},
		Analyst:   mock.Assistant{},
		Sheets:    mock.NewSheetStore(),
		Now:       fixedNow,
	})
	if _, err := wf.Run(context.Background()); err == nil {
		t.Fatal("expected missing-seed error")
	}
}

func TestContentStrategyPlansAndFlipsQueue(t *testing.T) {
	t.Parallel()

	store := mock.NewSheetStore()
	store.Seed(workflow.TabContentQueue,
		[]string{"Keyword", "Volume", "Intent", "Opportunity Score", "Status", "Source", "Date"},
		[][]string{
			{"crm software", "2400", "informational", "8.5", "new", "keyword-research", "2026-03-01"},
			{"email tips", "1900", "informational", "7.2", "new", "keyword-research", "2026-03-01"},
			{"already planned", "900", "informational", "6.0", "planned", "keyword-research", "2026-02-20"},
		},
	)

	wf := workflow.NewContentStrategy(workflow.ContentStrategyDeps{
		Planner:  mock.Assistant{},
		Outliner: mock.Assistant{},
		Sheets:   store,
		Niche:    "saas",
		Now:      fixedNow,
	})

	summary, err := wf.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary["planned"].(int) != 2 {
		t.Fatalf("expected 2 planned, got %v", summary["planned"])
	}

	ctx := context.Background()
	cal, _ := store.ReadTable(ctx, workflow.TabContentCalendar)
	if len(cal.Rows) != 2 {
		t.Fatalf("expected 2 calendar rows, got %d", len(cal.Rows))
	}
	for _, row := range cal.Rows {
		if row.Values["Status"] != "planned" {
			t.Fatalf("expected planned status, got %q", row.Values["Status"])
		}
		if row.Values["Publish Date"] == "" || row.Values["Slug"] == "" {
			t.Fatalf("incomplete calendar row %v", row.Values)
		}
	}

	queue, _ := store.ReadTable(ctx, workflow.TabContentQueue)
	if queue.Rows[0].Values["Status"] != "planned" || queue.Rows[1].Values["Status"] != "planned" {
		t.Fatal("processed queue rows must flip to planned")
	}
	if queue.Rows[2].Values["Status"] != "planned" {
		t.Fatal("untouched row must keep its status")
	}

	outlines, _ := store.ReadTable(ctx, workflow.TabBlogOutlines)
	if len(outlines.Rows) != 2 {
		t.Fatalf("expected 2 outlines, got %d", len(outlines.Rows))
	}
}

func TestBlogWritingStagesReadyArticles(t *testing.T) {
	t.Parallel()

	store := mock.NewSheetStore()
	store.Seed(workflow.TabContentCalendar,
		[]string{"Publish Date", "Title", "Keyword", "Type", "Word Count", "Priority", "Pillar/Cluster", "Slug", "Meta Description", "Internal Links", "Status"},
		[][]string{
			{"2026-03-02", "Guide A", "crm software", "blog post", "2000", "2", "pillar", "crm-software", "", "", "planned"},
			{"2026-03-04", "Guide B", "email tips", "blog post", "2000", "1", "cluster", "email-tips", "", "", "planned"},
			{"2026-03-06", "Guide C", "cold outreach", "blog post", "2000", "3", "cluster", "cold-outreach", "", "", "written"},
		},
	)
	repo := mock.NewRunRepository()

	wf := workflow.NewBlogWriting(workflow.BlogWritingDeps{
		Writer:  mock.Assistant{},
		Auditor: mock.Assistant{},
		Meta:    mock.Assistant{},
		Sheets:  store,
		Repo:    repo,
		Limit:   10,
		Now:     fixedNow,
	})

	summary, err := wf.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary["written"].(int) != 2 {
		t.Fatalf("expected 2 written, got %v", summary["written"])
	}

	ctx := context.Background()
	pq, _ := store.ReadTable(ctx, workflow.TabPublishQueue)
	if len(pq.Rows) != 2 {
		t.Fatalf("expected 2 staged rows, got %d", len(pq.Rows))
	}
	// Priority 1 item writes first.
	if pq.Rows[0].Values["Keyword"] != "email tips" {
		t.Fatalf("expected priority order, got %q first", pq.Rows[0].Values["Keyword"])
	}
	for _, row := range pq.Rows {
		if row.Values["Status"] != "ready" {
			t.Fatalf("expected ready status, got %q", row.Values["Status"])
		}
		if row.Values["SEO Score"] != "82" {
			t.Fatalf("expected audit score 82, got %q", row.Values["SEO Score"])
		}
	}

	cal, _ := store.ReadTable(ctx, workflow.TabContentCalendar)
	if cal.Rows[0].Values["Status"] != "written" || cal.Rows[1].Values["Status"] != "written" {
		t.Fatal("calendar rows must flip to written")
	}

	// Second run skips everything: calendar rows flipped and repo deduped.
	summary, err = wf.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if summary["written"].(int) != 0 {
		t.Fatalf("expected 0 written on rerun, got %v", summary["written"])
	}
}

func TestPublishingOnlyTakesApprovedRows(t *testing.T) {
	t.Parallel()

	store := mock.NewSheetStore()
	store.Seed(workflow.TabPublishQueue,
		[]string{"Title", "Keyword", "Slug", "Meta Title", "Meta Description", "HTML", "Publish Date", "SEO Score", "Rewrites", "Status"},
		[][]string{
			{"Guide A", "crm software", "crm-software", "Guide A | Blog", "Meta A", "<h1>A</h1>", "2026-03-02", "82", "0", "approved"},
			{"Guide B", "email tips", "email-tips", "Guide B | Blog", "Meta B", "<h1>B</h1>", "2026-03-04", "82", "0", "ready"},
			{"", "broken", "", "", "", "<h1>C</h1>", "2026-03-06", "82", "0", "approved"},
		},
	)

	wf := workflow.NewPublishing(workflow.PublishingDeps{
		Publisher: mock.NewPublisher("https://example.com"),
		Indexer:   mock.Indexer{},
		Sheets:    store,
		Now:       fixedNow,
	})

	summary, err := wf.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary["published"].(int) != 1 {
		t.Fatalf("expected 1 published, got %v", summary["published"])
	}
	warnings := summary["warnings"].([]string)
	if len(warnings) == 0 {
		t.Fatal("incomplete approved row must produce warnings")
	}

	ctx := context.Background()
	pq, _ := store.ReadTable(ctx, workflow.TabPublishQueue)
	if pq.Rows[0].Values["Status"] != "published" {
		t.Fatalf("approved row must flip to published, got %q", pq.Rows[0].Values["Status"])
	}
	if pq.Rows[1].Values["Status"] != "ready" {
		t.Fatal("ready row must stay untouched for human review")
	}
	if pq.Rows[2].Values["Status"] != "approved" {
		t.Fatal("incomplete row must keep its status after being skipped")
	}

	published, _ := store.ReadTable(ctx, workflow.TabPublishedArticles)
	if len(published.Rows) != 1 {
		t.Fatalf("expected 1 published record, got %d", len(published.Rows))
	}
	if published.Rows[0].Values["URL"] != "https://example.com/blog/crm-software" {
		t.Fatalf("unexpected published URL %q", published.Rows[0].Values["URL"])
	}
}

func TestLeadCaptureRejectsDisposableWithoutScoring(t *testing.T) {
	t.Parallel()

	store := mock.NewSheetStore()
	store.Seed(workflow.TabIncomingLeads,
		[]string{"Name", "Email", "Company", "Source", "Lead Magnet", "Phone"},
		[][]string{
			{"Ada", "ada@acme.io", "Acme", "pricing", "checklist", ""},
			{"Bob", "bob@mailinator.com", "", "blog", "ebook", ""},
			{"Eve", "eve@gmail.com", "", "blog", "ebook", ""},
		},
	)

	wf := workflow.NewLeadCapture(workflow.LeadCaptureDeps{
		Scorer: mock.Assistant{},
		Sheets: store,
		Now:    fixedNow,
	})

	summary, err := wf.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary["accepted"].(int) != 2 || summary["rejected"].(int) != 1 {
		t.Fatalf("unexpected summary %v", summary)
	}

	ctx := context.Background()
	rejectedTab, _ := store.ReadTable(ctx, workflow.TabRejectedLeads)
	if len(rejectedTab.Rows) != 1 {
		t.Fatalf("expected 1 rejected record, got %d", len(rejectedTab.Rows))
	}
	if issues := rejectedTab.Rows[0].Values["Issues"]; !strings.Contains(issues, "mailinator.com") {
		t.Fatalf("rejection must cite the disposable domain, got %q", issues)
	}

	master, _ := store.ReadTable(ctx, workflow.TabMasterLeadList)
	if len(master.Rows) != 2 {
		t.Fatalf("expected 2 accepted leads, got %d", len(master.Rows))
	}
	// Business email scores warm (72) and routes to "new"; free email
	// scores cool (35) and routes to "passive".
	if master.Rows[0].Values["Tier"] != "warm" || master.Rows[0].Values["Status"] != "new" {
		t.Fatalf("unexpected business lead routing: %v", master.Rows[0].Values)
	}
	if master.Rows[1].Values["Tier"] != "cool" || master.Rows[1].Values["Status"] != "passive" {
		t.Fatalf("unexpected free-email lead routing: %v", master.Rows[1].Values)
	}
}

func TestFollowUpBuildsTierCadence(t *testing.T) {
	t.Parallel()

	store := mock.NewSheetStore()
	store.Seed(workflow.TabMasterLeadList,
		[]string{"Name", "Email", "Company", "Source", "Lead Magnet", "Phone", "Score", "Tier", "Status", "Reasoning", "Date"},
		[][]string{
			{"Ada", "ada@acme.io", "Acme", "pricing", "checklist", "", "85", "hot", "new", "", "2026-03-01"},
			{"Bob", "bob@corp.io", "Corp", "blog", "ebook", "", "35", "cool", "passive", "", "2026-03-01"},
		},
	)

	wf := workflow.NewFollowUp(workflow.FollowUpDeps{
		Emails: mock.Assistant{},
		Sheets: store,
		Now:    fixedNow,
	})

	summary, err := wf.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary["leads"].(int) != 1 {
		t.Fatalf("only status-new leads get sequences, got %v", summary["leads"])
	}

	tracker, _ := store.ReadTable(context.Background(), workflow.TabFollowUpTracker)
	if len(tracker.Rows) != 4 {
		t.Fatalf("hot cadence has 4 touches, got %d", len(tracker.Rows))
	}
	wantDays := []string{"0", "1", "3", "7"}
	for i, row := range tracker.Rows {
		if row.Values["Send Day"] != wantDays[i] {
			t.Fatalf("touch %d: expected day %s, got %s", i, wantDays[i], row.Values["Send Day"])
		}
	}
}
