package config

import (
	"os"
	"path/filepath"
	"testing"

	"archivuelo/checksum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir string, name string, content string) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParse(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("FileDoesNotExist", func(t *testing.T) {
		err := Parse(filepath.Join(tempDir, "non-existent.json"))
		assert.Error(t, err)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		err := Parse(writeConfig(t, tempDir, "invalid.json", "invalid json"))
		assert.Error(t, err)
	})

	t.Run("InvalidData", func(t *testing.T) {
		for name, content := range map[string]string{
			"kind.json":    `{"device": {"kind": "bluetooth"}}`,
			"hash.json":    `{"import": {"hash_type": "md5"}}`,
			"workers.json": `{"import": {"copy_workers": -1}}`,
			"unknown.json": `{"archive_format": "targz"}`,
			"read.json":    `{"device": {"max_read_size": 0}}`,
		} {
			err := Parse(writeConfig(t, tempDir, name, content))
			assert.Error(t, err, name)
		}
	})

	t.Run("PartialConfigKeepsDefaults", func(t *testing.T) {
		p := writeConfig(t, tempDir, "partial.json", `{
			"device": {"root": "/mnt/iphone"},
			"import": {"copy_workers": 8, "hash_type": "xxh64"}
		}`)
		require.NoError(t, Parse(p))
		cfg := Get()
		assert.Equal(t, "/mnt/iphone", cfg.Device.Root)
		assert.Equal(t, DEVICE_LOCAL, cfg.Device.Kind)
		assert.Equal(t, "/DCIM", cfg.Device.MediaPath)
		assert.Equal(t, 8, cfg.Import.CopyWorkers)
		assert.Equal(t, 2, cfg.Import.VerifyWorkers)
		assert.Equal(t, HashType(checksum.HASH_XXH64), cfg.Import.HashType)
		assert.Equal(t, p, GetConfigPath())
	})
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "default.json", DumpDefaultConfig())
	require.NoError(t, Parse(p))
	assert.Equal(t, defaultConfig(), *Get())
}

func TestGetDefaultConfigDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CONFIG_HOME", "")

	configDir, err := GetDefaultConfigDir()
	assert.NoError(t, err)

	expectedDir := filepath.Join(tempHome, ".config", "archivuelo")
	assert.Equal(t, expectedDir, configDir)
	info, err := os.Stat(configDir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetDefaultConfigPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CONFIG_HOME", "")

	configPath, err := GetDefaultConfigPath()
	assert.NoError(t, err)

	expectedPath := filepath.Join(tempHome, ".config", "archivuelo", "config.json")
	assert.Equal(t, expectedPath, configPath)
	info, err := os.Stat(configPath)
	assert.NoError(t, err)
	assert.False(t, info.IsDir())

	// an edited config is not overwritten
	require.NoError(t, os.WriteFile(configPath, []byte(`{"db_path": "/tmp/x.db"}`), 0o644))
	_, err = GetDefaultConfigPath()
	require.NoError(t, err)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
}

func TestLoadExpandsHome(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	writeConfig(t, tempHome, "mine.json", `{"device": {"media_path": "/Pictures"}}`)

	cfg, err := Load("~/mine.json")
	require.NoError(t, err)
	assert.Equal(t, "/Pictures", cfg.Device.MediaPath)
}
