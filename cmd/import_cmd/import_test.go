package import_cmd

import (
	"archivuelo/filter"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	target := t.TempDir()
	env, err := parseFlags([]string{
		"--exclude-before", "2024-01-01",
		target,
		"--exclude-after", "2024-06-30 23:59",
		"--overwrite", "--copy-workers", "3", "-L", "error",
	})
	require.NoError(t, err)
	assert.Equal(t, target, env.Options.TargetDir)
	assert.True(t, env.Options.Overwrite)
	assert.False(t, env.Options.ForceAll)
	assert.Len(t, env.Options.Filters, 2)
	assert.Equal(t, 3, env.copyWorkers)
	assert.Equal(t, 0, env.verifyWorkers)
}

func TestParseFlagsRelativeTarget(t *testing.T) {
	env, err := parseFlags([]string{"-L", "error", "backup"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(env.Options.TargetDir))
	assert.Equal(t, "backup", filepath.Base(env.Options.TargetDir))
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := parseFlags([]string{"-L", "error"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-L", "error", "a", "b"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-L", "error", "--exclude-after", "June", "backup"})
	assert.ErrorIs(t, err, filter.ErrInvalidFilterValue)
}

func TestPick(t *testing.T) {
	assert.Equal(t, 4, pick(0, 4))
	assert.Equal(t, 8, pick(8, 4))
}
