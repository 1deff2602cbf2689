package leveling

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/cpmgrid/internal/cpm"
	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
	"github.com/specialistvlad/cpmgrid/internal/resources"
)

// HeuristicShift returns the delay Level applies to a task.
func HeuristicShift(critical bool, slack float64) float64 {
	if critical || slack <= 0 {
		return 0
	}
	return math.Min(slack/2, MaxShift)
}

// Level delays every non-critical task by HeuristicShift and computes the
// resulting labor profile.
func Level(ctx context.Context, res *cpm.Result, opts ...Option) *Result {
	logger := ctxlog.FromContext(ctx)
	o := newOptions(opts)

	base := Prepare(res, o.laborGroups)
	shifts := make(map[string]float64, len(base))
	for _, t := range base {
		if s := HeuristicShift(t.Critical, t.Slack); s > 0 {
			shifts[t.TaskID] = s
		}
	}

	tasks := Apply(base, shifts)
	result := &Result{Tasks: tasks, Profile: BuildProfile(tasks), Warnings: ProfileWarnings(tasks)}
	for _, w := range result.Warnings {
		logger.Debug("Task left out of labor profile.", "reason", w)
	}

	logger.Debug("Leveling heuristic applied.", "tasks", len(tasks), "shifted", len(shifts), "peak_load", result.PeakLoad())
	return result
}

// Prepare returns the unshifted tasks of res with their labor hours resolved.
func Prepare(res *cpm.Result, laborGroups []string) []Task {
	if res.IsEmpty() {
		return []Task{}
	}
	nodes := res.Nodes()
	tasks := make([]Task, 0, len(nodes))
	for _, n := range nodes {
		tasks = append(tasks, Task{
			TaskID:         n.TaskID,
			Name:           n.Task.Name,
			Task:           n.Task,
			Duration:       n.Duration,
			Slack:          n.Slack,
			Critical:       n.Critical,
			NewEarlyStart:  n.EarlyStart,
			NewEarlyFinish: n.EarlyFinish,
			LaborHours:     resources.LaborHours(n.Task, laborGroups),
		})
	}
	return tasks
}

// Apply returns a copy of base with each task delayed by its entry in
// shifts. Shifts are clamped to [0, slack] and critical tasks never move.
func Apply(base []Task, shifts map[string]float64) []Task {
	tasks := make([]Task, len(base))
	for i, t := range base {
		shift := 0.0
		if !t.Critical {
			shift = math.Min(math.Max(shifts[t.TaskID], 0), t.Slack)
		}
		// base tasks are unshifted, so NewEarlyStart is the CPM early start.
		t.Shift = shift
		t.NewEarlyStart += shift
		t.NewEarlyFinish += shift
		tasks[i] = t
	}
	return tasks
}

// BuildProfile sums the hourly labor load of tasks per whole day offset.
func BuildProfile(tasks []Task) Profile {
	profile := make(Profile)
	for _, t := range tasks {
		addLoad(profile, t)
	}
	return profile
}

// ProfileWarnings describes every labor task BuildProfile leaves out because
// its span cannot be bucketed.
func ProfileWarnings(tasks []Task) []string {
	warnings := []string{}
	for _, t := range tasks {
		if t.LaborHours > 0 && t.NewEarlyFinish > t.NewEarlyStart && !Profiled(t) {
			warnings = append(warnings, fmt.Sprintf(
				"task %q spanning days %g to %g does not fit the labor profile (at most %d days per task); its labor hours are not profiled",
				t.TaskID, t.NewEarlyStart, t.NewEarlyFinish, MaxProfileDays))
		}
	}
	return warnings
}

// Profiled reports whether BuildProfile adds any load for t.
func Profiled(t Task) bool {
	if t.LaborHours <= 0 || !(t.NewEarlyFinish > t.NewEarlyStart) {
		return false
	}
	_, _, ok := profileSpan(t)
	return ok
}

// profileSpan returns the first bucket of t and the number of buckets it
// touches when stepping one day at a time from its start.
func profileSpan(t Task) (first, n int, ok bool) {
	start, finish := t.NewEarlyStart, t.NewEarlyFinish
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(finish) || math.IsInf(finish, 0) {
		return 0, 0, false
	}
	lo := math.Floor(start)
	span := math.Ceil(finish - start)
	if math.Abs(lo) > math.MaxInt32 || span > MaxProfileDays {
		return 0, 0, false
	}
	return int(lo), int(span), true
}

func addLoad(profile Profile, t Task) {
	duration := t.NewEarlyFinish - t.NewEarlyStart
	if !(duration > 0) || t.LaborHours <= 0 {
		return
	}
	first, n, ok := profileSpan(t)
	if !ok {
		return
	}
	hourly := t.LaborHours / duration
	for k := 0; k < n; k++ {
		profile[first+k] += hourly
	}
}
