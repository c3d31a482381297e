package cmd_env

import (
	"archivuelo/config"
	"archivuelo/remote"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestConfirm(t *testing.T) {
	cases := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
		"maybe": false,
	}
	for in, want := range cases {
		got, err := confirm(strings.NewReader(in), "Proceed?", false)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%q", in)
	}
	got, err := confirm(strings.NewReader(""), "Proceed?", true)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	device := filepath.Join(dir, "device")
	require.NoError(t, os.MkdirAll(filepath.Join(device, "DCIM"), 0o755))
	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"db_path": "`+filepath.Join(dir, "test.db")+`"}`), 0o644))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"-c", cfgPath, "-d", device, "-L", "error", "--color", "never"}))
	require.NoError(t, flags.Apply())

	env, err := Open(ctx, flags, true)
	require.NoError(t, err)
	defer env.Close(ctx)
	assert.NotNil(t, env.Repo)
	assert.Contains(t, env.Device.Describe(), device)

	n, err := env.Repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestOpenDeviceMissing(t *testing.T) {
	cfg := &config.Config{Device: config.Device{Kind: config.DEVICE_LOCAL, MaxReadSize: 1024}}
	_, err := OpenDevice(cfg, "")
	assert.ErrorIs(t, err, remote.ErrConnectionLost)

	_, err = OpenDevice(cfg, filepath.Join(t.TempDir(), "unplugged"))
	assert.ErrorIs(t, err, remote.ErrConnectionLost)
}

func TestApplyRejectsUnknownLevel(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"-L", "chatty"}))
	assert.Error(t, flags.Apply())
}
