// Package memfs is an in-memory device tree.
package memfs

import (
	"archivuelo/remote"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type file struct {
	data      []byte
	birthtime time.Time
	mtime     time.Time
}

type Service struct {
	mu          sync.RWMutex
	files       map[string]*file
	maxReadSize int64
	// reads of failPath fail once offset reaches failAt
	failPath  string
	failAt    int64
	failErr   error
	connected atomic.Bool
	statCalls atomic.Int64
	readCalls atomic.Int64
}

func New(maxReadSize int64) *Service {
	if maxReadSize <= 0 {
		maxReadSize = remote.DefaultMaxReadSize
	}
	s := &Service{files: map[string]*file{}, maxReadSize: maxReadSize}
	s.connected.Store(true)
	return s
}

// AddFile places data at p, creating the parent directories implicitly.
func (s *Service) AddFile(p string, data []byte, birthtime time.Time, mtime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[remote.Clean(p)] = &file{data: data, birthtime: birthtime, mtime: mtime}
}

func (s *Service) RemoveFile(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, remote.Clean(p))
}

// FailReads makes reads of p starting at or beyond offset return err.
func (s *Service) FailReads(p string, offset int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPath = remote.Clean(p)
	s.failAt = offset
	s.failErr = err
}

func (s *Service) Disconnect() {
	s.connected.Store(false)
}

func (s *Service) StatCalls() int64 {
	return s.statCalls.Load()
}

func (s *Service) ReadCalls() int64 {
	return s.readCalls.Load()
}

func (s *Service) Describe() string {
	return "memory"
}

func (s *Service) MaxReadSize() int64 {
	return s.maxReadSize
}

func (s *Service) Close() error {
	return nil
}

func (s *Service) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.connected.Load() {
		return remote.ErrConnectionLost
	}
	return nil
}

func (s *Service) isDir(dir string) bool {
	if dir == "/" {
		return true
	}
	prefix := dir + "/"
	for p := range s.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (s *Service) List(ctx context.Context, dir string) ([]string, []string, error) {
	if err := s.check(ctx); err != nil {
		return nil, nil, err
	}
	dir = remote.Clean(dir)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isDir(dir) {
		return nil, nil, fmt.Errorf("%w: %s", remote.ErrNotFound, dir)
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	dirSet := map[string]bool{}
	var files []string
	for p := range s.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			dirSet[rest[:i]] = true
		} else {
			files = append(files, rest)
		}
	}
	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}

func (s *Service) Stat(ctx context.Context, p string) (*remote.FileInfo, error) {
	s.statCalls.Add(1)
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	p = remote.Clean(p)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.files[p]; ok {
		return &remote.FileInfo{
			Path:      p,
			Size:      int64(len(f.data)),
			Birthtime: f.birthtime,
			Mtime:     f.mtime,
		}, nil
	}
	if s.isDir(p) {
		return &remote.FileInfo{Path: p, IsDir: true}, nil
	}
	return nil, fmt.Errorf("%w: %s", remote.ErrNotFound, p)
}

func (s *Service) Read(ctx context.Context, p string, offset int64, length int64) ([]byte, error) {
	s.readCalls.Add(1)
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if length > s.maxReadSize {
		return nil, fmt.Errorf("read of %d bytes exceeds max read size %d", length, s.maxReadSize)
	}
	p = remote.Clean(p)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil && p == s.failPath && offset >= s.failAt {
		return nil, s.failErr
	}
	f, ok := s.files[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", remote.ErrNotFound, p)
	}
	if offset >= int64(len(f.data)) {
		return []byte{}, nil
	}
	end := min(offset+length, int64(len(f.data)))
	out := make([]byte, end-offset)
	copy(out, f.data[offset:end])
	return out, nil
}

var _ remote.FileService = (*Service)(nil)
