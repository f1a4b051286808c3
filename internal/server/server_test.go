package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ceddto100/SEO-LEAD/internal/metrics"
	"github.com/ceddto100/SEO-LEAD/internal/workflow"
)

func TestMain(m *testing.M) {
	metrics.Init()
	os.Exit(m.Run())
}

type stubRunner struct {
	summary workflow.Summary
	err     error
	lastID  string
}

func (s *stubRunner) RunWorkflow(_ context.Context, id string) (workflow.Summary, error) {
	s.lastID = id
	return s.summary, s.err
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(&stubRunner{}, nil, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		DryRun  bool   `json:"dry_run"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" || body.Service != "seo-lead" || !body.DryRun {
		t.Fatalf("unexpected health payload %+v", body)
	}
}

func TestRunDispatchesWorkflow(t *testing.T) {
	runner := &stubRunner{summary: workflow.Summary{"queued": 5}}
	srv := New(runner, nil, false)

	req := httptest.NewRequest(http.MethodPost, "/run/wf01", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if runner.lastID != "wf01" {
		t.Fatalf("expected wf01 dispatched, got %q", runner.lastID)
	}

	var body struct {
		Workflow string `json:"workflow"`
		Status   string `json:"status"`
	}
	json.NewDecoder(rec.Body).Decode(&body)
	if body.Workflow != "wf01" || body.Status != "completed" {
		t.Fatalf("unexpected payload %+v", body)
	}
}

func TestRunUnknownWorkflow(t *testing.T) {
	runner := &stubRunner{err: fmt.Errorf("%w: wf99", workflow.ErrUnknownWorkflow)}
	srv := New(runner, nil, false)

	req := httptest.NewRequest(http.MethodPost, "/run/wf99", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] == "" {
		t.Fatal("expected error message in body")
	}
}

func TestRunWorkflowFailure(t *testing.T) {
	runner := &stubRunner{err: fmt.Errorf("sheet unavailable")}
	srv := New(runner, nil, false)

	req := httptest.NewRequest(http.MethodPost, "/run/wf03", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] == "" || body["detail"] == "" {
		t.Fatalf("expected error and detail, got %v", body)
	}
}

func TestRunRequiresPost(t *testing.T) {
	srv := New(&stubRunner{}, nil, false)

	req := httptest.NewRequest(http.MethodGet, "/run/wf01", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Fatal("GET on /run must not dispatch")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := New(&stubRunner{}, nil, false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
}
