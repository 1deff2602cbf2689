// Package catalog turns ordered estimate rows into a hierarchical WorkCatalog.
//
// Rows arrive flat, each with a hierarchy level. The builder walks them once,
// keeping a stack of "current ancestor at each level", and resolves every
// row's parent code and ancestor path from that stack.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
	"github.com/specialistvlad/cpmgrid/internal/model"
)

// frame is one entry of the ancestor stack.
type frame struct {
	level int
	code  string
	name  string
}

// Build converts rows into a WorkCatalog. Rows with an empty name are skipped
// and negative levels are treated as 0; both produce a warning. An empty input
// yields an empty catalog, not an error.
func Build(ctx context.Context, rows []model.Row) *model.WorkCatalog {
	logger := ctxlog.FromContext(ctx)

	cat := &model.WorkCatalog{
		Tasks: make([]model.WorkTask, 0, len(rows)),
	}

	var stack []frame
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			cat.Warnings = append(cat.Warnings, fmt.Sprintf("row %d%s: empty name, skipped", i+1, location(row)))
			continue
		}

		level := row.Level
		if level < 0 {
			cat.Warnings = append(cat.Warnings, fmt.Sprintf("row %d%s: negative level %d treated as 0", i+1, location(row), level))
			level = 0
		}

		// Frames at this level or deeper can no longer be ancestors.
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}

		task := model.WorkTask{
			Code:         strings.TrimSpace(row.Code),
			Name:         name,
			Quantity:     row.Quantity,
			Unit:         row.Unit,
			DurationDays: row.DurationDays,
			StartDate:    row.StartDate,
			FinishDate:   row.FinishDate,
			Level:        level,
			GroupPath:    make([]string, 0, len(stack)),
			DependsOn:    row.DependsOn,
			Metadata:     row.Metadata,
			Source:       row.Source,
		}
		if len(stack) > 0 {
			task.ParentCode = stack[len(stack)-1].code
		}
		for _, f := range stack {
			task.GroupPath = append(task.GroupPath, f.name)
		}

		stack = append(stack, frame{level: level, code: task.Code, name: name})
		cat.Tasks = append(cat.Tasks, task)

		cat.Totals.Count++
		if task.Quantity != nil {
			cat.Totals.SumQuantity += *task.Quantity
		}
		if task.DurationDays != nil {
			cat.Totals.WithDuration++
		}
	}

	logger.Debug("Work catalog built.", "tasks", cat.Totals.Count, "warnings", len(cat.Warnings))
	return cat
}

func location(row model.Row) string {
	if row.Source == nil {
		return ""
	}
	return " (" + row.Source.String() + ")"
}
