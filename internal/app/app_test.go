package app

import (
	"context"
	"testing"

	"github.com/ceddto100/SEO-LEAD/internal/config"
	"github.com/ceddto100/SEO-LEAD/internal/logging"
)

func newDryRunApp(t *testing.T, opts Options) *Application {
	t.Helper()

	cfg := config.Load()
	cfg.DryRun = true

	a, err := New(cfg, logging.New("error", "text"), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestDryRunAppRegistersAllWorkflows(t *testing.T) {
	a := newDryRunApp(t, Options{})

	ids := a.WorkflowIDs()
	if len(ids) != 11 {
		t.Fatalf("expected 11 workflows, got %d: %v", len(ids), ids)
	}
	if ids[0] != "wf01" || ids[10] != "wf11" {
		t.Fatalf("unexpected id range: %v", ids)
	}
	if !a.DryRun() {
		t.Fatal("expected dry-run app")
	}
}

func TestDryRunPipelineEndToEnd(t *testing.T) {
	a := newDryRunApp(t, Options{
		Niche: "digital marketing",
		Seeds: []string{"crm", "email marketing"},
		Limit: 3,
	})
	ctx := context.Background()

	// wf01 fills the queue, wf02 plans it, wf03 writes articles.
	for _, id := range []string{"wf01", "wf02", "wf03"} {
		summary, err := a.RunWorkflow(ctx, id)
		if err != nil {
			t.Fatalf("RunWorkflow(%s): %v", id, err)
		}
		if summary == nil {
			t.Fatalf("RunWorkflow(%s): nil summary", id)
		}
	}
}

func TestRunWorkflowUnknownID(t *testing.T) {
	a := newDryRunApp(t, Options{})

	if _, err := a.RunWorkflow(context.Background(), "wf99"); err == nil {
		t.Fatal("expected unknown-workflow error")
	}
}
