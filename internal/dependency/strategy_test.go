package dependency

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/cpmgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyByName(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: StrategyHierarchy},
		{input: "hierarchy", want: StrategyHierarchy},
		{input: " Explicit ", want: StrategyExplicit},
		{input: "random", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			s, err := StrategyByName(tc.input)
			if tc.wantErr {
				assert.ErrorContains(t, err, "unknown dependency strategy")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.Name())
		})
	}
}

func TestExplicitStrategy(t *testing.T) {
	withDeps := func(code, name string, deps ...string) model.WorkTask {
		wt := task(code, name, 0)
		wt.DependsOn = deps
		return wt
	}

	b := NewBuilder(ExplicitStrategy{})
	g := b.Build(context.Background(), newCatalog(
		withDeps("1", "site"),
		withDeps("2", "foundation", "1", " 1 ", "1"),
		withDeps("", "frame", "2", "1"),
		withDeps("4", "roof", "T0003", "missing", "4"),
	))

	want := []Edge{
		{PredecessorID: "1", SuccessorID: "2", Relation: FinishToStart, Rationale: RationaleExplicit},
		{PredecessorID: "2", SuccessorID: "T0003", Relation: FinishToStart, Rationale: RationaleExplicit},
		{PredecessorID: "1", SuccessorID: "T0003", Relation: FinishToStart, Rationale: RationaleExplicit},
		{PredecessorID: "T0003", SuccessorID: "4", Relation: FinishToStart, Rationale: RationaleExplicit},
	}
	if diff := cmp.Diff(want, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"2", "1"}, g.Tasks[2].Predecessors)

	require.Len(t, g.Warnings, 2)
	assert.Contains(t, g.Warnings[0], `unknown dependency "missing"`)
	assert.Contains(t, g.Warnings[1], "depends on itself")
}

func TestExplicitStrategy_DuplicateCodesResolveToFirst(t *testing.T) {
	second := task("A", "second", 0)
	third := task("B", "third", 0)
	third.DependsOn = []string{"A", "A_1"}

	g := NewBuilder(ExplicitStrategy{}).Build(context.Background(), newCatalog(task("A", "first", 0), second, third))

	require.Len(t, g.Tasks, 3)
	assert.Equal(t, []string{"A", "A_1"}, g.Tasks[2].Predecessors)
}

func TestNewBuilder_DefaultsToHierarchy(t *testing.T) {
	assert.Equal(t, StrategyHierarchy, NewBuilder(nil).Strategy.Name())
	g := (&Builder{}).Build(context.Background(), newCatalog(task("a", "a", 0), task("b", "b", 0)))
	require.Len(t, g.Edges, 1)
	assert.Equal(t, RationaleSequence, g.Edges[0].Rationale)
}
