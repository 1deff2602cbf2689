package dependency

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
	"github.com/specialistvlad/cpmgrid/internal/model"
)

// assignIDs gives every task a unique ID. The candidate is the trimmed code,
// or T#### (1-based position) when the code is empty. A taken candidate gets
// the first free _1, _2, ... suffix and a warning.
func assignIDs(ctx context.Context, tasks []model.WorkTask) ([]ScheduledTask, []string) {
	logger := ctxlog.FromContext(ctx)

	scheduled := make([]ScheduledTask, 0, len(tasks))
	taken := make(map[string]struct{}, len(tasks))
	var warnings []string

	for i, task := range tasks {
		candidate := strings.TrimSpace(task.Code)
		if candidate == "" {
			candidate = fmt.Sprintf("T%04d", i+1)
		}

		id := candidate
		if _, exists := taken[id]; exists {
			for n := 1; ; n++ {
				id = fmt.Sprintf("%s_%d", candidate, n)
				if _, exists := taken[id]; !exists {
					break
				}
			}
			msg := fmt.Sprintf("task %d (%s): id %q already used, assigned %q", i+1, task.Name, candidate, id)
			warnings = append(warnings, msg)
			logger.Debug("Task ID collision resolved.", "candidate", candidate, "task_id", id)
		}
		taken[id] = struct{}{}

		scheduled = append(scheduled, ScheduledTask{
			ID:           id,
			Task:         task,
			Predecessors: []string{},
		})
	}

	return scheduled, warnings
}
