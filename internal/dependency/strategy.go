package dependency

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
)

// Strategy infers precedence edges between tasks that already carry unique
// IDs. Implementations must not modify tasks and must be safe for
// concurrent use.
type Strategy interface {
	// Name identifies the strategy in logs and on the command line.
	Name() string
	// Infer returns the edges in creation order plus any warnings.
	Infer(ctx context.Context, tasks []ScheduledTask) ([]Edge, []string)
}

// Strategy names accepted by StrategyByName.
const (
	StrategyHierarchy = "hierarchy"
	StrategyExplicit  = "explicit"
)

// StrategyByName returns the strategy registered under name.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyHierarchy:
		return HierarchyStrategy{}, nil
	case StrategyExplicit:
		return ExplicitStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown dependency strategy %q (want %q or %q)", name, StrategyHierarchy, StrategyExplicit)
	}
}

// HierarchyStrategy links each task to the last task seen one level up (its
// parent) and to the last task seen at its own level (its previous sibling
// or cousin). It is a heuristic, not a precedence import.
type HierarchyStrategy struct{}

// Name implements Strategy.
func (HierarchyStrategy) Name() string { return StrategyHierarchy }

// Infer implements Strategy.
func (HierarchyStrategy) Infer(ctx context.Context, tasks []ScheduledTask) ([]Edge, []string) {
	logger := ctxlog.FromContext(ctx)

	var edges []Edge
	lastByLevel := make(map[int]string)

	for _, t := range tasks {
		level := t.Task.Level

		parent, hasParent := "", false
		if level > 0 {
			parent, hasParent = lastByLevel[level-1]
		}
		if hasParent {
			edges = append(edges, Edge{
				PredecessorID: parent,
				SuccessorID:   t.ID,
				Relation:      FinishToStart,
				Rationale:     RationaleParent,
			})
			logger.Debug("Linked task to parent.", "from", parent, "to", t.ID)
		}

		if prev, ok := lastByLevel[level]; ok && (!hasParent || prev != parent) {
			edges = append(edges, Edge{
				PredecessorID: prev,
				SuccessorID:   t.ID,
				Relation:      FinishToStart,
				Rationale:     RationaleSequence,
			})
			logger.Debug("Linked task to same-level predecessor.", "from", prev, "to", t.ID)
		}

		lastByLevel[level] = t.ID
		for l := range lastByLevel {
			if l > level {
				delete(lastByLevel, l)
			}
		}
	}

	return edges, nil
}
