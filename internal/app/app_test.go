package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/cpmgrid/internal/cpm"
	"github.com/specialistvlad/cpmgrid/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const warehouseHCL = `
project "Warehouse" {
  base_date = "2026-03-02"
}

settings {
  max_iterations = 4
}

item {
  code          = "1"
  name          = "Earthworks"
  level         = 0
  duration_days = 2
  resources     = [{ group = "labor", hours_total = 32 }]
}

item {
  code          = "1.1"
  name          = "Excavation"
  level         = 1
  duration_days = 3
  resources     = [{ group = "Labor", hours_total = 48 }, { type = "machine", planned_hours = 24 }]
}

item {
  code          = "1.2"
  name          = "Backfill"
  level         = 1
  duration_days = 1
}

item {
  code  = "1.2"
  name  = "Compaction"
  level = 1
}
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.hcl"), []byte(content), 0644))
	return dir
}

func newTestConfig(t *testing.T, path string, mutate ...func(*Config)) *Config {
	t.Helper()
	raw := Config{ProjectPath: path, Strategy: "hierarchy"}
	for _, m := range mutate {
		m(&raw)
	}
	cfg, err := NewConfig(raw)
	require.NoError(t, err)
	return cfg
}

func TestSchedule_Pipeline(t *testing.T) {
	a, _, logs := SetupAppTest(t, newTestConfig(t, writeProject(t, warehouseHCL)))

	doc, err := a.Schedule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Warehouse", doc.Project.Name)
	assert.Equal(t, "2026-03-02", doc.Project.BaseDate)
	assert.Equal(t, "hierarchy", doc.Project.Strategy)

	// 1 -> 1.1 -> 1.2 -> 1.2_1
	assert.InDelta(t, 7.0, doc.Schedule.ProjectDuration, 1e-9)
	assert.Equal(t, []string{"1", "1.1", "1.2", "1.2_1"}, doc.Schedule.CriticalPath)

	require.Len(t, doc.DataQuality, 1)
	assert.Contains(t, doc.DataQuality[0], `"1.2_1"`)

	labor, ok := doc.Resources.Group("labor")
	require.True(t, ok)
	assert.InDelta(t, 80.0, labor.PlannedHours, 1e-9)

	assert.InDelta(t, 16.0, doc.Leveling.Peak, 1e-9)
	assert.Contains(t, logs.String(), "Schedule computed.")
}

func TestRun_WritesReport(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		a, out, _ := SetupAppTest(t, newTestConfig(t, writeProject(t, warehouseHCL)))
		require.NoError(t, a.Run(context.Background()))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out.String()), &decoded))
		assert.Contains(t, decoded, "schedule")
		assert.Contains(t, decoded, "data_quality")
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := newTestConfig(t, writeProject(t, warehouseHCL), func(c *Config) { c.OutputFormat = report.FormatYAML })
		a, out, _ := SetupAppTest(t, cfg)
		require.NoError(t, a.Run(context.Background()))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out.String()), &decoded))
		assert.Contains(t, decoded, "leveling")
	})
}

func TestSchedule_SettingsRespectExplicitFlags(t *testing.T) {
	path := writeProject(t, warehouseHCL)

	a, _, _ := SetupAppTest(t, newTestConfig(t, path))
	doc, err := a.Schedule(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, doc.Leveling.Iterations, 4)

	a, _, _ = SetupAppTest(t, newTestConfig(t, path, func(c *Config) {
		c.MaxIterations = 0
		c.MaxIterationsSet = true
	}))
	doc, err = a.Schedule(context.Background())
	require.NoError(t, err)
	assert.Zero(t, doc.Leveling.Iterations)
}

func TestSchedule_ExplicitStrategyCycle(t *testing.T) {
	path := writeProject(t, `
item {
  code       = "A"
  name       = "first"
  level      = 0
  depends_on = ["B"]
}

item {
  code       = "B"
  name       = "second"
  level      = 0
  depends_on = ["A"]
}
`)
	a, _, _ := SetupAppTest(t, newTestConfig(t, path, func(c *Config) { c.Strategy = "explicit" }))

	_, err := a.Schedule(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, cpm.ErrCycle)
	assert.ErrorContains(t, err, "schedule validation failed")
}

func TestSchedule_EmptyProject(t *testing.T) {
	a, _, _ := SetupAppTest(t, newTestConfig(t, t.TempDir()))

	doc, err := a.Schedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog is empty"}, doc.DataQuality)
	assert.Zero(t, doc.Schedule.ProjectDuration)
	assert.Equal(t, []string{}, doc.Project.Files)
}

func TestSchedule_MissingPath(t *testing.T) {
	a, _, _ := SetupAppTest(t, newTestConfig(t, filepath.Join(t.TempDir(), "missing")))
	_, err := a.Schedule(context.Background())
	assert.ErrorContains(t, err, "failed to load project")
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "missing path", cfg: Config{}, wantErr: "ProjectPath"},
		{name: "bad format", cfg: Config{ProjectPath: "x", OutputFormat: "xml"}, wantErr: "unsupported output format"},
		{name: "bad strategy", cfg: Config{ProjectPath: "x", Strategy: "magic"}, wantErr: "unknown dependency strategy"},
		{name: "negative iterations", cfg: Config{ProjectPath: "x", MaxIterations: -1}, wantErr: "must not be negative"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}

	cfg, err := NewConfig(Config{ProjectPath: "x"})
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, cfg.OutputFormat)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.NotEmpty(t, cfg.LaborGroups)
}
