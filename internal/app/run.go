package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/cpmgrid/internal/analyzer"
	"github.com/specialistvlad/cpmgrid/internal/catalog"
	"github.com/specialistvlad/cpmgrid/internal/cpm"
	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
	"github.com/specialistvlad/cpmgrid/internal/dependency"
	"github.com/specialistvlad/cpmgrid/internal/model"
	"github.com/specialistvlad/cpmgrid/internal/optimizer"
	"github.com/specialistvlad/cpmgrid/internal/report"
	"github.com/specialistvlad/cpmgrid/internal/resources"
)

// Run schedules the configured project and writes the report document.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	doc, err := a.Schedule(ctx)
	if err != nil {
		return err
	}

	if err := report.Encode(a.outW, doc, a.config.OutputFormat); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// Schedule loads the project and runs the whole pipeline, returning the
// report document without writing it.
func (a *App) Schedule(ctx context.Context) (*report.Document, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	project, err := model.LoadProjectRecursively(ctx, a.config.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	cfg := a.config.withSettings(project.Settings)

	strategy, err := dependency.StrategyByName(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	cat := catalog.Build(ctx, project.Rows)
	a.logger.Debug("Work catalog built.", "tasks", cat.Totals.Count, "with_duration", cat.Totals.WithDuration)

	graph := dependency.NewBuilder(strategy).Build(ctx, cat)
	a.logger.Debug("Dependency graph built.", "tasks", len(graph.Tasks), "edges", len(graph.Edges))

	result, err := cpm.Build(ctx, graph)
	if err != nil {
		return nil, fmt.Errorf("schedule validation failed: %w", err)
	}

	optimized, err := optimizer.Optimize(ctx, result,
		optimizer.WithMaxIterations(cfg.MaxIterations),
		optimizer.WithParallel(cfg.Parallel),
		optimizer.WithLaborGroups(cfg.LaborGroups...),
	)
	if err != nil {
		return nil, fmt.Errorf("resource optimization failed: %w", err)
	}

	var warnings []string
	warnings = append(warnings, project.Warnings...)
	warnings = append(warnings, cat.Warnings...)
	warnings = append(warnings, graph.Warnings...)
	warnings = append(warnings, optimized.Warnings...)
	for _, w := range warnings {
		a.logger.Warn("Data quality notice.", "notice", w)
	}
	if warnings == nil {
		warnings = []string{}
	}

	doc := &report.Document{
		Project: report.Project{
			Name:     project.Name,
			BaseDate: project.BaseDate,
			Files:    project.Files,
			Strategy: strategy.Name(),
		},
		Schedule:    analyzer.FromResult(result),
		Resources:   resources.Analyze(ctx, result),
		Leveling:    optimized,
		DataQuality: warnings,
	}
	if doc.Project.Files == nil {
		doc.Project.Files = []string{}
	}

	a.logger.Info("Schedule computed.",
		"tasks", len(result.Order),
		"project_duration", result.ProjectDuration,
		"critical_tasks", len(result.CriticalPath),
		"peak_load", optimized.Peak,
		"baseline_peak_load", optimized.BaselinePeak,
	)
	return doc, nil
}
