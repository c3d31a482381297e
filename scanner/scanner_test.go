package scanner

import (
	"archivuelo/database"
	"archivuelo/database/model"
	"archivuelo/database/repository"
	"archivuelo/remote"
	"archivuelo/remote/memfs"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) repository.MediaFileRepository {
	db, err := database.NewDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Init(context.Background()))
	t.Cleanup(func() { db.Close(context.Background()) })
	return repository.NewMediaFileRepository(db)
}

func setupDevice() *memfs.Service {
	born := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	svc := memfs.New(0)
	svc.AddFile("/DCIM/101APPLE/IMG_0003.JPG", []byte("three"), born, born)
	svc.AddFile("/DCIM/100APPLE/IMG_0002.JPG", []byte("two"), born, born)
	svc.AddFile("/DCIM/100APPLE/IMG_0001.JPG", []byte("one"), born, born)
	svc.AddFile("/DCIM/top.MOV", []byte("movie"), born, born)
	svc.AddFile("/Other/ignored.txt", []byte("x"), born, born)
	return svc
}

func collect(t *testing.T, s *Scanner) ([]model.MediaFile, Stats) {
	var got []model.MediaFile
	stats, err := s.Scan(context.Background(), func(f model.MediaFile) error {
		got = append(got, f)
		return nil
	})
	require.NoError(t, err)
	return got, stats
}

func TestScanOrderAndCreate(t *testing.T) {
	repo := setupRepo(t)
	s := New(setupDevice(), repo, "DCIM")
	assert.Equal(t, "/DCIM", s.Root())

	got, stats := collect(t, s)
	paths := make([]string, len(got))
	for i, f := range got {
		paths[i] = f.FilepathSrc
		assert.True(t, f.Id > 0)
	}
	assert.Equal(t, []string{
		"/DCIM/top.MOV",
		"/DCIM/100APPLE/IMG_0001.JPG",
		"/DCIM/100APPLE/IMG_0002.JPG",
		"/DCIM/101APPLE/IMG_0003.JPG",
	}, paths)
	assert.Equal(t, int64(4), stats.Scanned)
	assert.Equal(t, int64(4), stats.Untracked)
	assert.Equal(t, int64(0), stats.Tracked)
	assert.Equal(t, int64(5), got[0].Size)
	assert.Equal(t, "top.MOV", got[0].Filename)
}

func TestScanIsIdempotent(t *testing.T) {
	repo := setupRepo(t)
	svc := setupDevice()
	s := New(svc, repo, "/DCIM")

	first, _ := collect(t, s)
	statsAfterFirst := svc.StatCalls()

	second, stats := collect(t, s)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(4), stats.Tracked)
	assert.Equal(t, int64(0), stats.Untracked)
	// tracked files are not stat'ed again
	assert.Equal(t, statsAfterFirst, svc.StatCalls())

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestScanWithoutEmit(t *testing.T) {
	repo := setupRepo(t)
	stats, err := New(setupDevice(), repo, "/DCIM").Scan(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Scanned)
	assert.Contains(t, stats.String(), "4 new")
}

func TestScanSkipsBrokenPaths(t *testing.T) {
	repo := setupRepo(t)
	svc := new(remote.MockFileService)
	svc.On("List", mock.Anything, "/DCIM").Return([]string{"broken"}, []string{"a.jpg", "b.jpg"}, nil)
	svc.On("List", mock.Anything, "/DCIM/broken").Return(nil, nil, errors.New("permission denied"))
	svc.On("Stat", mock.Anything, "/DCIM/a.jpg").Return(nil, remote.ErrNotFound)
	svc.On("Stat", mock.Anything, "/DCIM/b.jpg").Return(&remote.FileInfo{Path: "/DCIM/b.jpg", Size: 3}, nil)

	got, stats := collect(t, New(svc, repo, "/DCIM"))
	require.Len(t, got, 1)
	assert.Equal(t, "/DCIM/b.jpg", got[0].FilepathSrc)
	assert.Equal(t, int64(2), stats.Skipped)
	svc.AssertExpectations(t)
}

func TestScanSortsUnorderedListings(t *testing.T) {
	repo := setupRepo(t)
	svc := new(remote.MockFileService)
	svc.On("List", mock.Anything, "/DCIM").Return([]string{"b", "a"}, []string{"c.jpg", "a.jpg", "b.jpg"}, nil)
	svc.On("List", mock.Anything, "/DCIM/a").Return(nil, []string{"z.jpg", "y.jpg"}, nil)
	svc.On("List", mock.Anything, "/DCIM/b").Return(nil, []string{"x.jpg"}, nil)
	svc.On("Stat", mock.Anything, mock.AnythingOfType("string")).Return(&remote.FileInfo{Size: 1}, nil)

	got, _ := collect(t, New(svc, repo, "/DCIM"))
	var paths []string
	for _, f := range got {
		paths = append(paths, f.FilepathSrc)
	}
	assert.Equal(t, []string{
		"/DCIM/a.jpg", "/DCIM/b.jpg", "/DCIM/c.jpg",
		"/DCIM/a/y.jpg", "/DCIM/a/z.jpg",
		"/DCIM/b/x.jpg",
	}, paths)
}

func TestScanAbortsOnConnectionLoss(t *testing.T) {
	repo := setupRepo(t)
	svc := setupDevice()
	s := New(svc, repo, "/DCIM")

	emitted := 0
	_, err := s.Scan(context.Background(), func(f model.MediaFile) error {
		emitted++
		svc.Disconnect()
		return nil
	})
	assert.ErrorIs(t, err, remote.ErrConnectionLost)
	assert.Equal(t, 1, emitted)
}

func TestScanStopsOnEmitError(t *testing.T) {
	repo := setupRepo(t)
	stop := errors.New("stop")
	_, err := New(setupDevice(), repo, "/DCIM").Scan(context.Background(), func(f model.MediaFile) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)
}

func TestScanCancelled(t *testing.T) {
	repo := setupRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(setupDevice(), repo, "/DCIM").Scan(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
