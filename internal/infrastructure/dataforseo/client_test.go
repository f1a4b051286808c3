package dataforseo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ceddto100/SEO-LEAD/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.DataForSEOConfig{
		Endpoint:     srv.URL,
		Login:        "login",
		Password:     "secret",
		LocationCode: 2840,
		LanguageCode: "en",
	}, nil)
}

func TestExpandKeywordsParsesResults(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != searchVolumePath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		login, pass, ok := r.BasicAuth()
		if !ok || login != "login" || pass != "secret" {
			t.Errorf("missing or wrong basic auth")
		}

		var payload []taskPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if len(payload) != 1 || payload[0].LocationCode != 2840 || payload[0].LanguageCode != "en" {
			t.Errorf("unexpected task payload: %+v", payload)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status_code": 20000,
			"tasks": []map[string]any{{
				"status_code": 20000,
				"result": []map[string]any{
					{"keyword": "crm software", "search_volume": 2400, "competition": 0.34, "cpc": 4.50},
					{"keyword": "free crm", "search_volume": 8100, "competition": 0.67, "cpc": 3.20},
				},
			}},
		})
	})

	got, err := c.ExpandKeywords(context.Background(), []string{"crm software", "free crm"})
	if err != nil {
		t.Fatalf("ExpandKeywords: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(got))
	}
	if got[0].Keyword != "crm software" || got[0].SearchVolume != 2400 {
		t.Fatalf("unexpected first metric: %+v", got[0])
	}
	if got[0].CompetitionLevel != "medium" || got[1].CompetitionLevel != "high" {
		t.Fatalf("unexpected competition levels: %s / %s", got[0].CompetitionLevel, got[1].CompetitionLevel)
	}
}

func TestLiveRejectsAPIError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status_code":    40100,
			"status_message": "authentication failed",
		})
	})

	if _, err := c.ExpandKeywords(context.Background(), []string{"crm"}); err == nil {
		t.Fatal("expected API status error")
	}
}

func TestLiveRequiresCredentials(t *testing.T) {
	t.Parallel()

	c := NewClient(config.DataForSEOConfig{Endpoint: "http://localhost"}, nil)
	if _, err := c.ExpandKeywords(context.Background(), []string{"crm"}); err == nil {
		t.Fatal("expected credentials error")
	}
}

func TestLiveEmptySeeds(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty seeds")
	})

	got, err := c.KeywordSuggestions(context.Background(), nil)
	if err != nil {
		t.Fatalf("KeywordSuggestions: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no metrics, got %v", got)
	}
}

func TestCompetitionLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0.0, "low"},
		{0.32, "low"},
		{0.33, "medium"},
		{0.65, "medium"},
		{0.66, "high"},
		{1.0, "high"},
	}
	for _, tc := range cases {
		if got := CompetitionLevel(tc.in); got != tc.want {
			t.Fatalf("CompetitionLevel(%v): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
