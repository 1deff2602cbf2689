package cpm

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
	"github.com/specialistvlad/cpmgrid/internal/dag"
	"github.com/specialistvlad/cpmgrid/internal/dependency"
)

// Build schedules the tasks of g. The only error it returns wraps ErrCycle.
// Edges naming an unknown task are skipped and logged.
func Build(ctx context.Context, g *dependency.Graph) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	res := &Result{
		Graph:            dag.New(),
		ByID:             make(map[string]*Node),
		Order:            []string{},
		TopologicalOrder: []string{},
		CriticalPath:     []string{},
	}
	if g == nil {
		return res, nil
	}
	res.Warnings = append([]string(nil), g.Warnings...)

	for _, st := range g.Tasks {
		if res.Graph.Has(st.ID) {
			logger.Warn("Duplicate task ID, keeping the first.", "task_id", st.ID)
			continue
		}
		res.Graph.AddNode(st.ID)
		res.ByID[st.ID] = &Node{
			TaskID:   st.ID,
			Task:     st.Task,
			Duration: ResolveDuration(st.Task.DurationDays),
		}
	}
	res.Order = res.Graph.Nodes()

	for _, e := range g.Edges {
		err := res.Graph.AddEdge(e.PredecessorID, e.SuccessorID)
		switch {
		case err == nil:
		case errors.Is(err, dag.ErrSelfEdge):
			return nil, fmt.Errorf("%w: task '%s' depends on itself", ErrCycle, e.SuccessorID)
		case errors.Is(err, dag.ErrNodeNotFound):
			logger.Warn("Skipping edge with unknown endpoint.", "from", e.PredecessorID, "to", e.SuccessorID, "error", err)
		default:
			return nil, fmt.Errorf("failed to add edge %s -> %s: %w", e.PredecessorID, e.SuccessorID, err)
		}
	}

	order, err := res.Graph.TopologicalOrder()
	if err != nil {
		if cycleErr := res.Graph.DetectCycles(); cycleErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrCycle, cycleErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrCycle, err)
	}
	res.TopologicalOrder = order

	forwardPass(res)
	backwardPass(res)

	for _, id := range res.Order {
		n := res.ByID[id]
		n.Slack = math.Max(0, n.LateStart-n.EarlyStart)
		n.Critical = math.Abs(n.Slack) < CriticalTolerance
		if n.Critical {
			res.CriticalPath = append(res.CriticalPath, id)
		}
	}

	logger.Debug("CPM schedule computed.",
		"tasks", res.Graph.Len(),
		"edges", res.Graph.EdgeCount(),
		"project_duration", res.ProjectDuration,
		"critical", len(res.CriticalPath),
	)
	return res, nil
}

func forwardPass(res *Result) {
	for _, id := range res.TopologicalOrder {
		n := res.ByID[id]
		n.EarlyStart = 0
		for _, pred := range res.Predecessors(id) {
			n.EarlyStart = math.Max(n.EarlyStart, res.ByID[pred].EarlyFinish)
		}
		n.EarlyFinish = n.EarlyStart + n.Duration
		res.ProjectDuration = math.Max(res.ProjectDuration, n.EarlyFinish)
	}
}

func backwardPass(res *Result) {
	for i := len(res.TopologicalOrder) - 1; i >= 0; i-- {
		id := res.TopologicalOrder[i]
		n := res.ByID[id]

		succs, _ := res.Graph.Dependents(id)
		n.LateFinish = res.ProjectDuration
		for _, succ := range succs {
			n.LateFinish = math.Min(n.LateFinish, res.ByID[succ].LateStart)
		}
		n.LateStart = n.LateFinish - n.Duration
	}
}
