// Package workflow implements the eleven automation workflows and the
// registry that dispatches them by id.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownWorkflow is returned when an id has no registered workflow.
var ErrUnknownWorkflow = errors.New("unknown workflow")

// Summary is the result payload of one workflow run.
type Summary map[string]any

// Workflow is a single automation flow executed synchronously.
type Workflow interface {
	ID() string
	Name() string
	Run(ctx context.Context) (Summary, error)
}

// Registry maps workflow ids to their implementations.
type Registry struct {
	workflows map[string]Workflow
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{workflows: map[string]Workflow{}}
}

// Register adds or replaces a workflow implementation.
func (r *Registry) Register(w Workflow) {
	if r.workflows == nil {
		r.workflows = map[string]Workflow{}
	}
	r.workflows[w.ID()] = w
}

// Resolve returns a workflow by id.
func (r *Registry) Resolve(id string) (Workflow, error) {
	if w, ok := r.workflows[id]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownWorkflow, id)
}

// IDs lists registered workflow ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.workflows))
	for id := range r.workflows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
