// Package analyzer flattens a CPM schedule into a report-friendly structure.
// It adds no scheduling logic of its own.
package analyzer

import (
	"context"
	"fmt"

	"github.com/specialistvlad/cpmgrid/internal/cpm"
	"github.com/specialistvlad/cpmgrid/internal/dependency"
)

// TaskReport is the flattened schedule of one task.
type TaskReport struct {
	ID           string   `json:"id" yaml:"id"`
	Code         string   `json:"code,omitempty" yaml:"code,omitempty"`
	Name         string   `json:"name" yaml:"name"`
	Level        int      `json:"level" yaml:"level"`
	ParentCode   string   `json:"parent_code,omitempty" yaml:"parent_code,omitempty"`
	Duration     float64  `json:"duration" yaml:"duration"`
	EarlyStart   float64  `json:"early_start" yaml:"early_start"`
	EarlyFinish  float64  `json:"early_finish" yaml:"early_finish"`
	LateStart    float64  `json:"late_start" yaml:"late_start"`
	LateFinish   float64  `json:"late_finish" yaml:"late_finish"`
	Slack        float64  `json:"slack" yaml:"slack"`
	Critical     bool     `json:"critical" yaml:"critical"`
	Predecessors []string `json:"predecessors" yaml:"predecessors"`
}

// SlackSummary aggregates slack over all tasks.
type SlackSummary struct {
	TotalSlack     float64 `json:"total_slack" yaml:"total_slack"`
	CriticalTasks  int     `json:"critical_tasks" yaml:"critical_tasks"`
	TasksWithSlack int     `json:"tasks_with_slack" yaml:"tasks_with_slack"`
	TotalTasks     int     `json:"total_tasks" yaml:"total_tasks"`
}

// Report is the serialisable view of a cpm.Result.
type Report struct {
	ProjectDuration float64      `json:"project_duration" yaml:"project_duration"`
	CriticalPath    []string     `json:"critical_path" yaml:"critical_path"`
	Tasks           []TaskReport `json:"tasks" yaml:"tasks"`
	SlackSummary    SlackSummary `json:"slack_summary" yaml:"slack_summary"`
	Warnings        []string     `json:"warnings" yaml:"warnings"`
}

// Analyze schedules g and returns its report. Errors come from cpm.Build.
func Analyze(ctx context.Context, g *dependency.Graph) (*Report, error) {
	res, err := cpm.Build(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("failed to compute schedule: %w", err)
	}
	return FromResult(res), nil
}

// FromResult flattens an existing schedule.
func FromResult(res *cpm.Result) *Report {
	report := &Report{
		CriticalPath: []string{},
		Tasks:        []TaskReport{},
		Warnings:     []string{},
	}
	if res == nil {
		return report
	}

	report.ProjectDuration = res.ProjectDuration
	report.CriticalPath = append(report.CriticalPath, res.CriticalPath...)
	report.Warnings = append(report.Warnings, res.Warnings...)

	for _, n := range res.Nodes() {
		preds := res.Predecessors(n.TaskID)
		if preds == nil {
			preds = []string{}
		}
		report.Tasks = append(report.Tasks, TaskReport{
			ID:           n.TaskID,
			Code:         n.Task.Code,
			Name:         n.Task.Name,
			Level:        n.Task.Level,
			ParentCode:   n.Task.ParentCode,
			Duration:     n.Duration,
			EarlyStart:   n.EarlyStart,
			EarlyFinish:  n.EarlyFinish,
			LateStart:    n.LateStart,
			LateFinish:   n.LateFinish,
			Slack:        n.Slack,
			Critical:     n.Critical,
			Predecessors: preds,
		})

		report.SlackSummary.TotalTasks++
		report.SlackSummary.TotalSlack += n.Slack
		if n.Critical {
			report.SlackSummary.CriticalTasks++
		} else {
			report.SlackSummary.TasksWithSlack++
		}
	}

	return report
}
