package importer

import (
	"archivuelo/checksum"
	"archivuelo/database/model"
	"archivuelo/database/repository"
	L "archivuelo/logger"
	"archivuelo/remote"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// PartialSuffix marks a destination that is still being written.
const PartialSuffix = ".part"

var (
	ErrRemoteIO = errors.New("device read failed")
	ErrLocalIO  = errors.New("local write failed")
)

// CopyError carries the side that failed (ErrRemoteIO or ErrLocalIO) and
// the underlying cause. errors.Is matches both.
type CopyError struct {
	Path string
	Kind error
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *CopyError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

type Copier struct {
	svc      remote.FileService
	repo     repository.MediaFileRepository
	hashType string
	// called after every chunk written, with the chunk length
	OnBytes func(n int64)
}

func NewCopier(svc remote.FileService, repo repository.MediaFileRepository, hashType string) *Copier {
	if hashType == "" {
		hashType = checksum.DefaultHashType
	}
	return &Copier{svc: svc, repo: repo, hashType: hashType}
}

// Destination mirrors the remote directory layout of f under targetDir.
func Destination(f model.MediaFile, targetDir string) string {
	parent := path.Dir(remote.Clean(f.FilepathSrc))
	parent = strings.TrimPrefix(parent, "/")
	parent = strings.TrimPrefix(parent, "./")
	name := f.Filename
	if name == "" {
		name = path.Base(f.FilepathSrc)
	}
	return filepath.Join(targetDir, filepath.FromSlash(parent), name)
}

// Copy transfers f and reports whether it succeeded, along with the record
// as it is stored afterwards. Failures are logged and leave the record as
// it was.
func (c *Copier) Copy(ctx context.Context, f model.MediaFile, targetDir string) (bool, model.MediaFile) {
	updated, err := c.CopyFile(ctx, f, targetDir)
	if err != nil {
		L.Errorf("Failed to import %s: %v", f.FilepathSrc, err)
		return false, f
	}
	return true, *updated
}

// CopyFile streams f from the device into targetDir while hashing it, then
// records destination and digest in one update.
func (c *Copier) CopyFile(ctx context.Context, f model.MediaFile, targetDir string) (*model.MediaFile, error) {
	dst := Destination(f, targetDir)
	digest, err := checksum.New(c.hashType)
	if err != nil {
		return nil, err
	}

	info, err := c.svc.Stat(ctx, f.FilepathSrc)
	if err != nil {
		return nil, &CopyError{Path: f.FilepathSrc, Kind: ErrRemoteIO, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, &CopyError{Path: dst, Kind: ErrLocalIO, Err: err}
	}
	// an earlier copy at dst stays intact until the new one is complete
	part := dst + PartialSuffix
	out, err := os.OpenFile(part, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, &CopyError{Path: part, Kind: ErrLocalIO, Err: err}
	}

	err = c.transfer(ctx, f.FilepathSrc, info.Size, out, digest)
	closeErr := out.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, &CopyError{Path: part, Kind: ErrLocalIO, Err: closeErr}
	}

	if !info.Mtime.IsZero() {
		// zero atime leaves the access time alone
		if err := os.Chtimes(part, time.Time{}, info.Mtime); err != nil {
			L.Warnf("Could not set modification time of %s: %v", dst, err)
		}
	}
	if err := os.Rename(part, dst); err != nil {
		return nil, &CopyError{Path: dst, Kind: ErrLocalIO, Err: err}
	}

	updated, err := c.repo.MarkImported(ctx, f.Id, dst, digest.Type(), digest.HexDigest(), time.Now())
	if err != nil {
		return nil, fmt.Errorf("could not record import of %s: %w", f.FilepathSrc, err)
	}
	L.Debugf("Copied %s -> %s (%s %s)", f.FilepathSrc, dst, digest.Type(), digest.HexDigest())
	return updated, nil
}

func (c *Copier) transfer(ctx context.Context, src string, size int64, out *os.File, digest checksum.Digest) error {
	maxRead := c.svc.MaxReadSize()
	if maxRead <= 0 {
		maxRead = remote.DefaultMaxReadSize
	}
	var offset int64
	for offset < size {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := c.svc.Read(ctx, src, offset, min(maxRead, size-offset))
		if err != nil {
			return &CopyError{Path: src, Kind: ErrRemoteIO, Err: err}
		}
		if len(data) == 0 {
			return &CopyError{
				Path: src,
				Kind: ErrRemoteIO,
				Err:  fmt.Errorf("short read at offset %d of %d", offset, size),
			}
		}
		if _, err := out.Write(data); err != nil {
			return &CopyError{Path: out.Name(), Kind: ErrLocalIO, Err: err}
		}
		digest.Write(data)
		offset += int64(len(data))
		if c.OnBytes != nil {
			c.OnBytes(int64(len(data)))
		}
	}
	return nil
}
