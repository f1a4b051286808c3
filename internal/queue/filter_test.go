package queue

import (
	"testing"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
)

func TestFilterDropsLowVolumeAndTruncates(t *testing.T) {
	t.Parallel()

	// Pre-sorted by opportunity score descending.
	rows := []domain.QueueRow{
		{Keyword: "a", Volume: 50, OpportunityScore: 9},
		{Keyword: "b", Volume: 150, OpportunityScore: 8},
		{Keyword: "c", Volume: 300, OpportunityScore: 7},
	}

	got := Filter(rows, 100, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Keyword != "b" || got[1].Keyword != "c" {
		t.Fatalf("expected [b c] in pre-sorted order, got [%s %s]", got[0].Keyword, got[1].Keyword)
	}
}

func TestFilterFewerSurvivorsThanN(t *testing.T) {
	t.Parallel()

	rows := []domain.QueueRow{
		{Keyword: "a", Volume: 500},
		{Keyword: "b", Volume: 20},
	}

	got := Filter(rows, 100, 10)
	if len(got) != 1 || got[0].Keyword != "a" {
		t.Fatalf("expected single survivor a, got %v", got)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	t.Parallel()

	rows := []domain.QueueRow{
		{Keyword: "third", Volume: 100, OpportunityScore: 3},
		{Keyword: "first", Volume: 100, OpportunityScore: 9},
		{Keyword: "second", Volume: 100, OpportunityScore: 5},
	}

	// Filter must not re-sort: order in equals order out.
	got := Filter(rows, 100, 3)
	for i, want := range []string{"third", "first", "second"} {
		if got[i].Keyword != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].Keyword)
		}
	}
}

func TestFilterZeroOrNegativeNKeepsAllSurvivors(t *testing.T) {
	t.Parallel()

	rows := []domain.QueueRow{
		{Keyword: "a", Volume: 500},
		{Keyword: "b", Volume: 20},
		{Keyword: "c", Volume: 300},
	}

	for _, topN := range []int{0, -1} {
		got := Filter(rows, 100, topN)
		if len(got) != 2 {
			t.Fatalf("topN=%d: expected all 2 survivors, got %d", topN, len(got))
		}
	}
}

func TestFilterEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Filter(nil, 100, 5); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}
