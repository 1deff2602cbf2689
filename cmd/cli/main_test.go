package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/cpmgrid/internal/cli"
	"github.com/specialistvlad/cpmgrid/internal/cpm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHCL(t *testing.T, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0600), "failed to set up test file")
	return filePath
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	filePath := writeHCL(t, `
item {
  code          = "A"
  name          = "Foundation"
  level         = 0
  duration_days = 2
}

item {
  code          = "B"
  name          = "Walls"
  level         = 1
  duration_days = 3
}
`)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{"-log-level", "warn", filePath})

	// --- Assert ---
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded), "stdout must hold only the report")
	schedule := decoded["schedule"].(map[string]any)
	assert.InDelta(t, 5.0, schedule["project_duration"], 1e-9)
}

func TestRun_InvalidProject(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A syntax error surfaces as a load failure, not a panic.
	filePath := writeHCL(t, `
		item {
			name = "broken"
		// Missing closing brace here
	`)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{filePath})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load project")
	assert.Contains(t, err.Error(), "failed to parse")
	assert.Empty(t, out.String())
}

func TestRun_Cycle(t *testing.T) {
	t.Parallel()

	filePath := writeHCL(t, `
item {
  code       = "A"
  name       = "a"
  level      = 0
  depends_on = ["A"]
}
`)
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-strategy", "explicit", filePath})
	// A self reference is dropped with a warning, so this schedules fine.
	require.NoError(t, err)

	filePath = writeHCL(t, `
item {
  code       = "A"
  name       = "a"
  level      = 0
  depends_on = ["B"]
}

item {
  code       = "B"
  name       = "b"
  level      = 0
  depends_on = ["A"]
}
`)
	err = run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-strategy", "explicit", filePath})
	assert.ErrorIs(t, err, cpm.ErrCycle)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text to be printed to the error stream")
	require.Empty(t, out.String())
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
