package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("# test"), 0644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.hcl"))
	writeFile(t, filepath.Join(root, "a.hcl"))
	writeFile(t, filepath.Join(root, "nested", "c.hcl"))
	writeFile(t, filepath.Join(root, "notes.txt"))

	t.Run("directory is walked and sorted", func(t *testing.T) {
		files, err := FindFilesByExtension(root, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.hcl"),
			filepath.Join(root, "b.hcl"),
			filepath.Join(root, "nested", "c.hcl"),
		}, files)
	})

	t.Run("single matching file", func(t *testing.T) {
		files, err := FindFilesByExtension(filepath.Join(root, "a.hcl"), ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a.hcl")}, files)
	})

	t.Run("single file with other extension", func(t *testing.T) {
		files, err := FindFilesByExtension(filepath.Join(root, "notes.txt"), ".hcl")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(root, "missing"), ".hcl")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty extension", func(t *testing.T) {
		_, err := FindFilesByExtension(root, "")
		assert.ErrorIs(t, err, ErrEmptyExtension)
	})
}
