package cpm

import (
	"errors"

	"github.com/specialistvlad/cpmgrid/internal/dag"
	"github.com/specialistvlad/cpmgrid/internal/model"
)

const (
	// DefaultDuration is used for tasks without a usable duration.
	DefaultDuration = 1.0
	// MinDuration is the smallest duration a task can have.
	MinDuration = 0.1
	// CriticalTolerance is the slack below which a task is critical.
	CriticalTolerance = 1e-6
)

// ErrCycle is returned by Build when the dependencies are not acyclic.
var ErrCycle = errors.New("cpm: dependency graph is not acyclic")

// Node holds the schedule of one task.
type Node struct {
	TaskID      string
	Task        model.WorkTask
	Duration    float64
	EarlyStart  float64
	EarlyFinish float64
	LateStart   float64
	LateFinish  float64
	Slack       float64
	Critical    bool
}

// Result is the outcome of a CPM run.
type Result struct {
	// Graph is the validated task graph.
	Graph *dag.Graph
	// ByID maps task IDs to their schedule.
	ByID map[string]*Node
	// Order lists task IDs in original task order.
	Order []string
	// TopologicalOrder lists task IDs so that every edge points forward.
	TopologicalOrder []string
	// CriticalPath is the set of critical task IDs, in task order.
	CriticalPath []string
	// ProjectDuration is the largest early finish, 0 for an empty graph.
	ProjectDuration float64
	// Warnings carries the data-quality notices of the input graph.
	Warnings []string
}

// Node returns the schedule of the task with the given ID.
func (r *Result) Node(id string) (*Node, bool) {
	n, ok := r.ByID[id]
	return n, ok
}

// Nodes returns every node in original task order.
func (r *Result) Nodes() []*Node {
	out := make([]*Node, 0, len(r.Order))
	for _, id := range r.Order {
		out = append(out, r.ByID[id])
	}
	return out
}

// Predecessors returns the IDs the given task depends on.
func (r *Result) Predecessors(id string) []string {
	deps, err := r.Graph.Dependencies(id)
	if err != nil {
		return nil
	}
	return deps
}

// IsEmpty reports whether the result holds no tasks.
func (r *Result) IsEmpty() bool {
	return r == nil || len(r.Order) == 0
}
