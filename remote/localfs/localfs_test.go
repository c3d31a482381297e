package localfs

import (
	"archivuelo/remote"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDevice(t *testing.T) string {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "DCIM", "101APPLE"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "DCIM", "100APPLE"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "DCIM", "100APPLE", "IMG_0002.JPG"), []byte("0123456789"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "DCIM", "100APPLE", "IMG_0001.JPG"), []byte("abc"), 0o644))
	return root
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, err := New(setupDevice(t), 0)
	require.NoError(t, err)
	assert.Equal(t, remote.DefaultMaxReadSize, svc.MaxReadSize())

	dirs, files, err := svc.List(ctx, "/DCIM")
	require.NoError(t, err)
	assert.Equal(t, []string{"100APPLE", "101APPLE"}, dirs)
	assert.Empty(t, files)

	dirs, files, err = svc.List(ctx, "DCIM/100APPLE")
	require.NoError(t, err)
	assert.Empty(t, dirs)
	assert.Equal(t, []string{"IMG_0001.JPG", "IMG_0002.JPG"}, files)

	_, _, err = svc.List(ctx, "/nope")
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestStatAndRead(t *testing.T) {
	ctx := context.Background()
	svc, err := New(setupDevice(t), 4)
	require.NoError(t, err)

	info, err := svc.Stat(ctx, "/DCIM/100APPLE/IMG_0002.JPG")
	require.NoError(t, err)
	assert.Equal(t, int64(10), info.Size)
	assert.False(t, info.IsDir)
	assert.False(t, info.Mtime.IsZero())
	assert.False(t, info.Birthtime.IsZero())

	data, err := svc.Read(ctx, "/DCIM/100APPLE/IMG_0002.JPG", 8, 4)
	require.NoError(t, err)
	assert.Equal(t, "89", string(data))

	data, err = svc.Read(ctx, "/DCIM/100APPLE/IMG_0002.JPG", 10, 4)
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = svc.Read(ctx, "/DCIM/100APPLE/IMG_0002.JPG", 0, 5)
	assert.Error(t, err)

	_, err = svc.Stat(ctx, "/DCIM/missing.jpg")
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestConnectionLost(t *testing.T) {
	ctx := context.Background()
	root := setupDevice(t)
	svc, err := New(root, 0)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(root))
	_, _, err = svc.List(ctx, "/DCIM")
	assert.ErrorIs(t, err, remote.ErrConnectionLost)
	_, err = svc.Read(ctx, "/DCIM/100APPLE/IMG_0001.JPG", 0, 3)
	assert.ErrorIs(t, err, remote.ErrConnectionLost)
	assert.True(t, remote.IsFatal(err))

	_, err = New(root, 0)
	assert.ErrorIs(t, err, remote.ErrConnectionLost)
}

func TestPathsStayInsideRoot(t *testing.T) {
	root := setupDevice(t)
	svc, err := New(root, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "DCIM"), svc.localPath("/../../DCIM"))
}

func TestNewRejectsUnreadableRoot(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := setupDevice(t)
	require.NoError(t, os.Chmod(root, 0o300))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	_, err := New(root, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, remote.ErrConnectionLost)
	assert.Contains(t, err.Error(), "not readable")
}
