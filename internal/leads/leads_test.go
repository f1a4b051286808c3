package leads

import (
	"strings"
	"testing"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
)

func TestTierForBreakpoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		want  domain.Tier
	}{
		{0, domain.TierLow},
		{19, domain.TierLow},
		{20, domain.TierCool},
		{49, domain.TierCool},
		{50, domain.TierWarm},
		{79, domain.TierWarm},
		{80, domain.TierHot},
		{100, domain.TierHot},
	}
	for _, tc := range cases {
		if got := TierFor(tc.score); got != tc.want {
			t.Fatalf("TierFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestTierForMonotonic(t *testing.T) {
	t.Parallel()

	rank := map[domain.Tier]int{
		domain.TierLow:  0,
		domain.TierCool: 1,
		domain.TierWarm: 2,
		domain.TierHot:  3,
	}
	prev := rank[TierFor(0)]
	for score := 1; score <= 100; score++ {
		cur := rank[TierFor(score)]
		if cur < prev {
			t.Fatalf("tier regressed at score %d", score)
		}
		prev = cur
	}
}

func TestRouteStatus(t *testing.T) {
	t.Parallel()

	if RouteStatus(domain.TierHot) != domain.StatusNew {
		t.Fatalf("hot leads must route to new")
	}
	if RouteStatus(domain.TierWarm) != domain.StatusNew {
		t.Fatalf("warm leads must route to new")
	}
	if RouteStatus(domain.TierCool) != domain.StatusPassive {
		t.Fatalf("cool leads must route to passive")
	}
	if RouteStatus(domain.TierLow) != domain.StatusPassive {
		t.Fatalf("low leads must route to passive")
	}
}

func TestValidateRejectsDisposableDomain(t *testing.T) {
	t.Parallel()

	lead := domain.Lead{Name: "Bad Lead", Email: "x@mailinator.com"}
	issues := Validate(lead)
	if len(issues) == 0 {
		t.Fatalf("expected rejection for disposable domain")
	}
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "mailinator.com") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected issue citing mailinator.com, got %v", issues)
	}
}

func TestValidateAcceptsCleanLead(t *testing.T) {
	t.Parallel()

	lead := domain.Lead{Name: "Jamie Doe", Email: "jamie@example.com", Company: "Acme"}
	if issues := Validate(lead); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidateCollectsAllIssues(t *testing.T) {
	t.Parallel()

	issues := Validate(domain.Lead{Email: "not-an-email"})
	if len(issues) != 2 {
		t.Fatalf("expected bad email + missing name, got %v", issues)
	}
}

func TestCadencePerTier(t *testing.T) {
	t.Parallel()

	hot := Cadence(domain.TierHot)
	if len(hot) != 4 || hot[0].Day != 0 || hot[3].Day != 7 {
		t.Fatalf("unexpected hot cadence: %v", hot)
	}

	warm := Cadence(domain.TierWarm)
	if warm[0].Day != 1 || warm[3].Day != 14 {
		t.Fatalf("unexpected warm cadence: %v", warm)
	}

	// Unknown tier falls back to cool.
	fallback := Cadence(domain.Tier("mystery"))
	cool := Cadence(domain.TierCool)
	if len(fallback) != len(cool) || fallback[0].Day != 3 || fallback[3].Day != 30 {
		t.Fatalf("unexpected fallback cadence: %v", fallback)
	}
}
