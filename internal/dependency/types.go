package dependency

import (
	"github.com/specialistvlad/cpmgrid/internal/model"
)

// Relation is the kind of precedence between two tasks.
type Relation string

// FinishToStart means the successor may start once the predecessor finishes.
const FinishToStart Relation = "Finish-to-Start"

// Rationales attached to inferred edges.
const (
	RationaleParent   = "hierarchical parent"
	RationaleSequence = "same-level sequence"
	RationaleExplicit = "explicit precedence"
)

// ScheduledTask is a work task with its graph identity.
type ScheduledTask struct {
	ID           string
	Task         model.WorkTask
	Predecessors []string
}

// Edge is a directed precedence between two scheduled tasks.
type Edge struct {
	PredecessorID string
	SuccessorID   string
	Relation      Relation
	Rationale     string
}

// Graph is the output of a Builder: tasks in catalog order, edges in
// creation order and any data-quality warnings.
type Graph struct {
	Tasks    []ScheduledTask
	Edges    []Edge
	Warnings []string
}
