package dependency

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
)

// ExplicitStrategy builds edges from each task's DependsOn list. A reference
// is matched against task codes first (the first task carrying a code wins)
// and then against assigned IDs. Unknown and self references are reported
// as warnings; repeated references are collapsed.
type ExplicitStrategy struct{}

// Name implements Strategy.
func (ExplicitStrategy) Name() string { return StrategyExplicit }

// Infer implements Strategy.
func (ExplicitStrategy) Infer(ctx context.Context, tasks []ScheduledTask) ([]Edge, []string) {
	logger := ctxlog.FromContext(ctx)

	byCode := make(map[string]string, len(tasks))
	byID := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = struct{}{}
		code := strings.TrimSpace(t.Task.Code)
		if code == "" {
			continue
		}
		if _, exists := byCode[code]; !exists {
			byCode[code] = t.ID
		}
	}

	resolve := func(ref string) (string, bool) {
		if id, ok := byCode[ref]; ok {
			return id, true
		}
		if _, ok := byID[ref]; ok {
			return ref, true
		}
		return "", false
	}

	var edges []Edge
	var warnings []string
	for _, t := range tasks {
		seen := make(map[string]struct{}, len(t.Task.DependsOn))
		for _, raw := range t.Task.DependsOn {
			ref := strings.TrimSpace(raw)
			if ref == "" {
				continue
			}

			predID, ok := resolve(ref)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("task %s: unknown dependency %q ignored", t.ID, ref))
				continue
			}
			if predID == t.ID {
				warnings = append(warnings, fmt.Sprintf("task %s: depends on itself, ignored", t.ID))
				continue
			}
			if _, dup := seen[predID]; dup {
				continue
			}
			seen[predID] = struct{}{}

			edges = append(edges, Edge{
				PredecessorID: predID,
				SuccessorID:   t.ID,
				Relation:      FinishToStart,
				Rationale:     RationaleExplicit,
			})
			logger.Debug("Linked task to explicit dependency.", "from", predID, "to", t.ID)
		}
	}

	return edges, warnings
}
