package dependency

import (
	"context"

	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
	"github.com/specialistvlad/cpmgrid/internal/model"
)

// Builder turns a WorkCatalog into a Graph using a Strategy.
type Builder struct {
	Strategy Strategy
}

// NewBuilder returns a Builder using s, or HierarchyStrategy when s is nil.
func NewBuilder(s Strategy) *Builder {
	if s == nil {
		s = HierarchyStrategy{}
	}
	return &Builder{Strategy: s}
}

// Build infers the dependency graph of cat with the default strategy.
func Build(ctx context.Context, cat *model.WorkCatalog) *Graph {
	return NewBuilder(nil).Build(ctx, cat)
}

// Build infers the dependency graph of cat. It never fails: an empty catalog
// yields an empty graph with a single warning.
func (b *Builder) Build(ctx context.Context, cat *model.WorkCatalog) *Graph {
	strategy := b.Strategy
	if strategy == nil {
		strategy = HierarchyStrategy{}
	}
	ctx, logger := ctxlog.With(ctx, "strategy", strategy.Name())

	if cat.IsEmpty() {
		logger.Debug("Catalog is empty, nothing to link.")
		return &Graph{
			Tasks:    []ScheduledTask{},
			Edges:    []Edge{},
			Warnings: []string{"catalog is empty"},
		}
	}

	tasks, warnings := assignIDs(ctx, cat.Tasks)

	edges, inferWarnings := strategy.Infer(ctx, tasks)
	warnings = append(warnings, inferWarnings...)

	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
	}
	for _, e := range edges {
		if i, ok := index[e.SuccessorID]; ok {
			tasks[i].Predecessors = append(tasks[i].Predecessors, e.PredecessorID)
		}
	}

	if edges == nil {
		edges = []Edge{}
	}
	if warnings == nil {
		warnings = []string{}
	}

	logger.Debug("Dependency graph built.", "tasks", len(tasks), "edges", len(edges), "warnings", len(warnings))
	return &Graph{Tasks: tasks, Edges: edges, Warnings: warnings}
}
