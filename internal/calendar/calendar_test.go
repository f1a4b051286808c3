package calendar

import (
	"testing"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
)

// Monday 2026-03-02.
var monday = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func item(keyword string, priority int, pillarOrCluster string) domain.ContentPlanItem {
	return domain.ContentPlanItem{
		Keyword:         keyword,
		Title:           "About " + keyword,
		ContentType:     "blog post",
		WordCount:       2000,
		Priority:        priority,
		PillarOrCluster: pillarOrCluster,
	}
}

func TestBuildFollowsCadenceWithoutPillars(t *testing.T) {
	t.Parallel()

	items := []domain.ContentPlanItem{
		item("alpha", 1, domain.Cluster),
		item("bravo", 2, domain.Cluster),
		item("charlie", 3, domain.Cluster),
		item("delta", 4, domain.Cluster),
	}

	entries := Build(items, monday, nil)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	// Mon, Wed, Fri, then next Mon.
	want := []string{"2026-03-02", "2026-03-04", "2026-03-06", "2026-03-09"}
	for i, entry := range entries {
		if got := entry.PublishDate.Format("2006-01-02"); got != want[i] {
			t.Fatalf("entry %d: expected date %s, got %s", i, want[i], got)
		}
		if entry.Status != domain.StatusPlanned {
			t.Fatalf("entry %d: expected status planned, got %s", i, entry.Status)
		}
	}
}

func TestBuildSortsByPriorityThenKeyword(t *testing.T) {
	t.Parallel()

	items := []domain.ContentPlanItem{
		item("zulu", 2, domain.Cluster),
		item("alpha", 2, domain.Cluster),
		item("omega", 1, domain.Cluster),
	}

	entries := Build(items, monday, nil)

	order := []string{"omega", "alpha", "zulu"}
	for i, entry := range entries {
		if entry.Keyword != order[i] {
			t.Fatalf("position %d: expected %s, got %s", i, order[i], entry.Keyword)
		}
	}
}

func TestBuildSpacesPillarsSevenDaysApart(t *testing.T) {
	t.Parallel()

	items := []domain.ContentPlanItem{
		item("first pillar", 1, domain.Pillar),
		item("second pillar", 2, domain.Pillar),
	}

	entries := Build(items, monday, nil)
	gap := entries[1].PublishDate.Sub(entries[0].PublishDate)
	if gap < 7*24*time.Hour {
		t.Fatalf("pillar gap %v is under 7 days", gap)
	}
	if got := entries[1].PublishDate.Format("2006-01-02"); got != "2026-03-09" {
		t.Fatalf("expected second pillar on 2026-03-09, got %s", got)
	}
}

func TestBuildPillarSpacingSkipsCadenceSlots(t *testing.T) {
	t.Parallel()

	// Cluster articles between the pillars keep filling the cadence; the
	// second pillar still jumps past unused slots to honor the 7-day rule.
	items := []domain.ContentPlanItem{
		item("pillar one", 1, domain.Pillar),
		item("cluster a", 2, domain.Cluster),
		item("pillar two", 3, domain.Pillar),
	}

	entries := Build(items, monday, nil)

	if got := entries[0].PublishDate.Format("2006-01-02"); got != "2026-03-02" {
		t.Fatalf("first pillar: got %s", got)
	}
	if got := entries[1].PublishDate.Format("2006-01-02"); got != "2026-03-04" {
		t.Fatalf("cluster: got %s", got)
	}
	// Friday 03-06 is skipped: the next pillar must wait until 03-09.
	if got := entries[2].PublishDate.Format("2006-01-02"); got != "2026-03-09" {
		t.Fatalf("second pillar: got %s", got)
	}
}

func TestNextPublishDay(t *testing.T) {
	t.Parallel()

	saturday := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	next := NextPublishDay(saturday, DefaultPublishWeekdays)
	if next.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %s", next.Weekday())
	}

	// Already a valid day: returned unchanged.
	if got := NextPublishDay(monday, DefaultPublishWeekdays); !got.Equal(monday) {
		t.Fatalf("expected %v unchanged, got %v", monday, got)
	}

	// Defensive fallback with an empty cadence.
	if got := NextPublishDay(saturday, []time.Weekday{}); !got.Equal(saturday) {
		t.Fatalf("expected fallback to input date, got %v", got)
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Lead Generation Strategies": "lead-generation-strategies",
		"beginner's guide":           "beginners-guide",
		"CRM":                        "crm",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildDefaultsEmptyFields(t *testing.T) {
	t.Parallel()

	entries := Build([]domain.ContentPlanItem{{Keyword: "solo keyword"}}, monday, nil)
	entry := entries[0]

	if entry.Title != "solo keyword" {
		t.Fatalf("expected keyword as title fallback, got %q", entry.Title)
	}
	if entry.Type != "blog post" || entry.WordCount != 2000 || entry.Priority != 5 {
		t.Fatalf("unexpected defaults: %+v", entry)
	}
	if entry.PillarOrCluster != domain.Cluster {
		t.Fatalf("expected cluster default, got %s", entry.PillarOrCluster)
	}
	if entry.Slug != "solo-keyword" {
		t.Fatalf("unexpected slug: %s", entry.Slug)
	}
}
