// Package scanner walks a device and keeps the record store in step with it.
package scanner

import (
	"archivuelo/database"
	"archivuelo/database/model"
	"archivuelo/database/repository"
	L "archivuelo/logger"
	"archivuelo/remote"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

type Stats struct {
	Scanned   int64
	Tracked   int64
	Untracked int64
	Skipped   int64
	StartedAt time.Time
	Duration  time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned %d files (%d already tracked, %d new, %d skipped) in %s",
		s.Scanned, s.Tracked, s.Untracked, s.Skipped, s.Duration.Round(time.Millisecond))
}

// EmitFunc receives every scanned record. Returning an error stops the scan.
type EmitFunc func(f model.MediaFile) error

type Scanner struct {
	svc  remote.FileService
	repo repository.MediaFileRepository
	root string
}

func New(svc remote.FileService, repo repository.MediaFileRepository, root string) *Scanner {
	return &Scanner{svc: svc, repo: repo, root: remote.Clean(root)}
}

func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the tree under the root depth first. Files already in the
// store are emitted as stored, without touching the device. New files are
// stat'ed and created first. A nil emit only refreshes the store.
func (s *Scanner) Scan(ctx context.Context, emit EmitFunc) (Stats, error) {
	stats := Stats{StartedAt: time.Now()}
	L.Debugf("Scanning %s under %s", s.svc.Describe(), s.root)
	err := s.walk(ctx, s.root, emit, &stats)
	stats.Duration = time.Since(stats.StartedAt)
	if err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *Scanner) walk(ctx context.Context, dir string, emit EmitFunc, stats *Stats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dirs, files, err := s.svc.List(ctx, dir)
	if err != nil {
		if remote.IsFatal(err) {
			return err
		}
		L.Warnf("Could not list %s: %v", dir, err)
		stats.Skipped++
		return nil
	}
	// services may list in any order, emit order must not depend on it
	slices.Sort(files)
	slices.Sort(dirs)

	for _, name := range files {
		p := remote.Join(dir, name)
		f, err := s.record(ctx, p, name, stats)
		if err != nil {
			if remote.IsFatal(err) {
				return err
			}
			L.Warnf("Skipping %s: %v", p, err)
			stats.Skipped++
			continue
		}
		stats.Scanned++
		if emit != nil {
			if err := emit(*f); err != nil {
				return err
			}
		}
	}

	for _, name := range dirs {
		if err := s.walk(ctx, remote.Join(dir, name), emit, stats); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) record(ctx context.Context, p string, name string, stats *Stats) (*model.MediaFile, error) {
	existing, err := s.repo.FindByPath(ctx, p)
	if err == nil {
		stats.Tracked++
		return existing, nil
	}
	if !errors.Is(err, database.ErrDoesNotExist) {
		return nil, err
	}

	info, err := s.svc.Stat(ctx, p)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, model.MediaFile{
		Filename:      name,
		FilepathSrc:   p,
		Size:          info.Size,
		TimeBirthtime: info.Birthtime,
		TimeMtime:     info.Mtime,
	})
	if err != nil {
		return nil, err
	}
	L.Debugf("Tracking new file %s", p)
	stats.Untracked++
	return created, nil
}
