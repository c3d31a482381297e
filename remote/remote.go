// Package remote describes the device side of an import: a read-only file
// tree that can be listed, stat'ed and read in bounded chunks.
package remote

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"
)

// DefaultMaxReadSize is the largest single read issued against a device.
const DefaultMaxReadSize int64 = 4 * 1024 * 1024

var (
	ErrNotFound       = errors.New("remote: no such file or directory")
	ErrConnectionLost = errors.New("remote: connection to device lost")
)

type FileInfo struct {
	Path      string
	Size      int64
	Birthtime time.Time
	Mtime     time.Time
	IsDir     bool
}

type FileService interface {
	// List returns the sub directory names and file names directly under dir,
	// in no particular order.
	List(ctx context.Context, dir string) (dirs []string, files []string, err error)
	Stat(ctx context.Context, p string) (*FileInfo, error)
	// Read returns at most length bytes starting at offset. length must not
	// exceed MaxReadSize. A read at or past the end of the file returns no
	// bytes and no error.
	Read(ctx context.Context, p string, offset int64, length int64) ([]byte, error)
	MaxReadSize() int64
	// Describe is a human readable name of the device, used in logs
	Describe() string
	Close() error
}

// Join joins remote path segments, remote paths always use forward slashes.
func Join(elem ...string) string {
	return path.Join(elem...)
}

// Clean normalizes p into an absolute slash separated path.
func Clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean("/" + p)
}

// IsFatal reports whether err should abort a whole run rather than a
// single file.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConnectionLost) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
