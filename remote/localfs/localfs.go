// Package localfs serves a device that is mounted into the local file
// system, such as an SD card or a phone exposed through a FUSE mount.
package localfs

import (
	"archivuelo/file_io"
	L "archivuelo/logger"
	"archivuelo/remote"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

type Service struct {
	root        string
	maxReadSize int64
}

// New opens the device mounted at root. A missing root means the device is
// not connected.
func New(root string, maxReadSize int64) (*Service, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("could not resolve device root %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", remote.ErrConnectionLost, absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("device root %s is not a directory", absRoot)
	}
	if ok, err := file_io.IsReadable(absRoot); !ok {
		return nil, fmt.Errorf("device root %s is not readable: %w", absRoot, err)
	}
	if maxReadSize <= 0 {
		maxReadSize = remote.DefaultMaxReadSize
	}
	L.Debugf("localfs: connected to %s", absRoot)
	return &Service{root: absRoot, maxReadSize: maxReadSize}, nil
}

func (s *Service) Describe() string {
	return "local:" + s.root
}

func (s *Service) MaxReadSize() int64 {
	return s.maxReadSize
}

func (s *Service) Close() error {
	return nil
}

func (s *Service) localPath(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(remote.Clean(p)))
}

// mapErr turns os errors into remote errors, checking whether the device
// itself went away.
func (s *Service) mapErr(p string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if _, statErr := os.Stat(s.root); statErr != nil {
		return fmt.Errorf("%w: %s", remote.ErrConnectionLost, s.root)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", remote.ErrNotFound, p)
	}
	return fmt.Errorf("%s: %w", p, err)
}

func (s *Service) List(ctx context.Context, dir string) ([]string, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	entries, err := os.ReadDir(s.localPath(dir))
	if err != nil {
		return nil, nil, s.mapErr(dir, err)
	}
	var dirs, files []string
	for _, e := range entries {
		switch {
		case e.IsDir():
			dirs = append(dirs, e.Name())
		case e.Type().IsRegular():
			files = append(files, e.Name())
		case e.Type()&fs.ModeSymlink != 0:
			// follow links the way a media browser would
			info, err := os.Stat(filepath.Join(s.localPath(dir), e.Name()))
			if err != nil {
				L.Debugf("localfs: skipping dangling link %s", e.Name())
				continue
			}
			if info.IsDir() {
				dirs = append(dirs, e.Name())
			} else if info.Mode().IsRegular() {
				files = append(files, e.Name())
			}
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}

func (s *Service) Stat(ctx context.Context, p string) (*remote.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	local := s.localPath(p)
	info, err := os.Stat(local)
	if err != nil {
		return nil, s.mapErr(p, err)
	}
	return &remote.FileInfo{
		Path:      remote.Clean(p),
		Size:      info.Size(),
		Birthtime: birthtime(local, info),
		Mtime:     info.ModTime(),
		IsDir:     info.IsDir(),
	}, nil
}

func (s *Service) Read(ctx context.Context, p string, offset int64, length int64) ([]byte, error) {
	if length > s.maxReadSize {
		return nil, fmt.Errorf("read of %d bytes exceeds max read size %d", length, s.maxReadSize)
	}
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("invalid read range offset=%d length=%d", offset, length)
	}
	buf := make([]byte, length)
	n, err := file_io.ReadFromOffset(ctx, s.localPath(p), offset, buf)
	if err != nil {
		return nil, s.mapErr(p, err)
	}
	return buf[:n], nil
}
