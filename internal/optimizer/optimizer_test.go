package optimizer

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/cpmgrid/internal/cpm"
	"github.com/specialistvlad/cpmgrid/internal/dependency"
	"github.com/specialistvlad/cpmgrid/internal/leveling"
	"github.com/specialistvlad/cpmgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func days(v float64) *float64 { return &v }

func laborTask(code string, level int, duration, hours float64) model.WorkTask {
	return model.WorkTask{
		Code:         code,
		Name:         "work " + code,
		Level:        level,
		DurationDays: days(duration),
		Metadata: map[string]any{
			"resources": []any{map[string]any{"group": "labor", "hours_total": hours}},
		},
	}
}

// independent schedules tasks without any edges.
func independent(t *testing.T, tasks ...model.WorkTask) *cpm.Result {
	t.Helper()
	g := &dependency.Graph{}
	for _, wt := range tasks {
		g.Tasks = append(g.Tasks, dependency.ScheduledTask{ID: wt.Code, Task: wt})
	}
	res, err := cpm.Build(context.Background(), g)
	require.NoError(t, err)
	return res
}

// outline schedules a generated estimate outline with the hierarchy strategy.
func outline(t *testing.T, n int) *cpm.Result {
	t.Helper()
	cat := &model.WorkCatalog{}
	for i := 0; i < n; i++ {
		cat.Tasks = append(cat.Tasks, laborTask(fmt.Sprintf("%d", i), (i*3)%4, float64(i%5)+0.5, float64((i*7)%11)*3))
	}
	res, err := cpm.Build(context.Background(), dependency.Build(context.Background(), cat))
	require.NoError(t, err)
	return res
}

func TestCandidates(t *testing.T) {
	testCases := []struct {
		slack float64
		want  []float64
	}{
		{slack: 0.5, want: []float64{0, 0.5}},
		{slack: 1, want: []float64{0, 1}},
		{slack: 3, want: []float64{0, 1, 2, 3}},
		{slack: 10, want: []float64{0, 2.5, 5, 7.5, 10}},
		{slack: 0x1p70, want: []float64{0, 0x1p68, 0x1p69, 3 * 0x1p68, 0x1p70}},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.slack), func(t *testing.T) {
			got := Candidates(tc.slack)
			require.Len(t, got, len(tc.want))
			for i := range tc.want {
				assert.InDelta(t, tc.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestOptimize_SpreadsCollidingTasks(t *testing.T) {
	res := independent(t,
		laborTask("Long", 0, 4, 0),
		laborTask("X", 0, 1, 10),
		laborTask("Y", 0, 1, 10),
	)

	baseline := leveling.Level(context.Background(), res)
	assert.InDelta(t, 20.0, baseline.PeakLoad(), 1e-9)

	result, err := Optimize(context.Background(), res)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, result.Peak, 1e-9)
	assert.InDelta(t, 20.0, result.BaselinePeak, 1e-9)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, map[string]float64{"X": 0, "Y": 1.5}, shiftsOf(result))
	assert.InDelta(t, result.Peak, result.PeakLoad(), 1e-9)
}

func shiftsOf(r *Result) map[string]float64 {
	out := make(map[string]float64)
	for _, lt := range r.Tasks {
		if !lt.Critical {
			out[lt.TaskID] = lt.Shift
		}
	}
	return out
}

func TestOptimize_NeverWorseThanLeveling(t *testing.T) {
	for _, n := range []int{1, 7, 25, 60} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			res := outline(t, n)
			baseline := leveling.Level(context.Background(), res)

			result, err := Optimize(context.Background(), res, WithMaxIterations(5))
			require.NoError(t, err)
			assert.LessOrEqual(t, result.Peak, baseline.PeakLoad()+1e-9)
			assert.LessOrEqual(t, result.Iterations, 5)

			for _, lt := range result.Tasks {
				node, ok := res.Node(lt.TaskID)
				require.True(t, ok)
				if node.Critical {
					assert.Zero(t, lt.Shift, lt.TaskID)
				}
				assert.GreaterOrEqual(t, lt.Shift, 0.0)
				assert.LessOrEqual(t, lt.Shift, node.Slack+1e-9)
			}
		})
	}
}

func TestOptimize_ParallelMatchesSequential(t *testing.T) {
	res := outline(t, 40)

	sequential, err := Optimize(context.Background(), res)
	require.NoError(t, err)
	parallel, err := Optimize(context.Background(), res, WithParallel(true))
	require.NoError(t, err)

	if diff := cmp.Diff(sequential, parallel); diff != "" {
		t.Errorf("parallel result differs (-sequential +parallel):\n%s", diff)
	}
}

func TestOptimize_ZeroIterationsKeepsBaseline(t *testing.T) {
	res := independent(t,
		laborTask("Long", 0, 4, 0),
		laborTask("X", 0, 1, 10),
		laborTask("Y", 0, 1, 10),
	)
	result, err := Optimize(context.Background(), res, WithMaxIterations(0))
	require.NoError(t, err)

	assert.Zero(t, result.Iterations)
	assert.InDelta(t, result.BaselinePeak, result.Peak, 1e-9)
	assert.Equal(t, map[string]float64{"X": 1.5, "Y": 1.5}, shiftsOf(result))
}

func TestOptimize_NoMovableTasks(t *testing.T) {
	res := independent(t, laborTask("A", 0, 2, 4))
	result, err := Optimize(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
	assert.InDelta(t, 2.0, result.Peak, 1e-9)
}

func TestOptimize_ReportsUnprofiledTasks(t *testing.T) {
	res := independent(t, laborTask("Huge", 0, 1e17, 100), laborTask("Small", 0, 1, 5))

	got, err := Optimize(context.Background(), res)
	require.NoError(t, err)
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], `"Huge"`)
	assert.InDelta(t, 5.0, got.Peak, 1e-9)
}

func TestOptimize_Empty(t *testing.T) {
	result, err := Optimize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Tasks)
	assert.Zero(t, result.Peak)
}

func TestOptimize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Optimize(ctx, outline(t, 10))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Optimize(ctx, outline(t, 10), WithParallel(true))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptions(t *testing.T) {
	o := newOptions([]Option{WithMaxIterations(-1), WithLaborGroups()})
	assert.Equal(t, DefaultMaxIterations, o.maxIterations)
	assert.NotEmpty(t, o.laborGroups)

	o = newOptions([]Option{WithMaxIterations(9), WithLaborGroups("crew"), WithParallel(true)})
	assert.Equal(t, 9, o.maxIterations)
	assert.Equal(t, []string{"crew"}, o.laborGroups)
	assert.True(t, o.parallel)
}
