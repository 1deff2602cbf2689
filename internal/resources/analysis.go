package resources

import (
	"context"
	"sort"

	"github.com/specialistvlad/cpmgrid/internal/cpm"
	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
)

// GroupSummary is the planned load of one resource group.
type GroupSummary struct {
	Group        string   `json:"group" yaml:"group"`
	PlannedHours float64  `json:"planned_hours" yaml:"planned_hours"`
	Tasks        []string `json:"tasks" yaml:"tasks"`
}

// Analysis aggregates resource records over a schedule.
type Analysis struct {
	Groups        []GroupSummary `json:"groups" yaml:"groups"`
	CriticalTasks []string       `json:"critical_tasks" yaml:"critical_tasks"`
}

// Group returns the summary of the named group.
func (a *Analysis) Group(name string) (GroupSummary, bool) {
	for _, g := range a.Groups {
		if g.Group == name {
			return g, true
		}
	}
	return GroupSummary{}, false
}

// Analyze sums planned hours per resource group over every scheduled task.
// A task is listed once per record, so it may repeat within a group.
func Analyze(ctx context.Context, res *cpm.Result) *Analysis {
	logger := ctxlog.FromContext(ctx)

	analysis := &Analysis{
		Groups:        []GroupSummary{},
		CriticalTasks: []string{},
	}
	if res.IsEmpty() {
		return analysis
	}

	byGroup := make(map[string]*GroupSummary)
	for _, n := range res.Nodes() {
		for _, rec := range Records(n.Task) {
			key := rec.Key()
			summary, ok := byGroup[key]
			if !ok {
				summary = &GroupSummary{Group: key, Tasks: []string{}}
				byGroup[key] = summary
			}
			summary.PlannedHours += rec.Hours()
			summary.Tasks = append(summary.Tasks, n.TaskID)
		}
		if n.Critical {
			analysis.CriticalTasks = append(analysis.CriticalTasks, n.TaskID)
		}
	}

	for _, summary := range byGroup {
		analysis.Groups = append(analysis.Groups, *summary)
	}
	sort.Slice(analysis.Groups, func(i, j int) bool {
		return analysis.Groups[i].Group < analysis.Groups[j].Group
	})

	logger.Debug("Resource load aggregated.", "groups", len(analysis.Groups), "critical_tasks", len(analysis.CriticalTasks))
	return analysis
}
