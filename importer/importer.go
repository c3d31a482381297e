// Package importer moves media files from a device into a local directory
// in two stages: copy (with an inline digest) and verify.
package importer

import (
	"archivuelo/database/model"
	"archivuelo/database/repository"
	"archivuelo/file_io"
	"archivuelo/filter"
	L "archivuelo/logger"
	"archivuelo/remote"
	"archivuelo/scanner"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Phase int32

const (
	PHASE_IDLE Phase = iota
	PHASE_COLLECTING
	PHASE_COPYING
	PHASE_VERIFYING
	PHASE_DRAINED
)

func (p Phase) String() string {
	switch p {
	case PHASE_IDLE:
		return "IDLE"
	case PHASE_COLLECTING:
		return "COLLECTING"
	case PHASE_COPYING:
		return "COPYING"
	case PHASE_VERIFYING:
		return "VERIFYING"
	case PHASE_DRAINED:
		return "DRAINED"
	default:
		return "UNKNOWN"
	}
}

const (
	DefaultCopyWorkers   = 4
	DefaultVerifyWorkers = 2
	DefaultQueueSize     = 64
)

var ErrInvalidOptions = errors.New("invalid import options")

type Options struct {
	TargetDir string
	// take pending records from the store instead of scanning the device
	UseCache      bool
	ForceAll      bool
	Overwrite     bool
	Filters       filter.Set
	CopyWorkers   int
	VerifyWorkers int
	QueueSize     int
	DryRun        bool
}

func (o *Options) normalize() error {
	if strings.TrimSpace(o.TargetDir) == "" {
		return fmt.Errorf("%w: target directory is required", ErrInvalidOptions)
	}
	if o.CopyWorkers <= 0 {
		o.CopyWorkers = DefaultCopyWorkers
	}
	if o.VerifyWorkers <= 0 {
		o.VerifyWorkers = DefaultVerifyWorkers
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	return nil
}

type Report struct {
	RunId           string
	DryRun          bool
	Scanned         int64
	Filtered        int64
	AlreadyImported int64
	SkippedExisting int64
	Queued          int64
	QueuedBytes     int64
	Copied          int64
	CopiedBytes     int64
	CopyFailed      int64
	Verified        int64
	VerifyFailed    int64
	StartedAt       time.Time
	Duration        time.Duration
}

func (r *Report) String() string {
	var sb strings.Builder
	if r.DryRun {
		sb.WriteString(fmt.Sprintf("Dry run %s\n", r.RunId))
		sb.WriteString(fmt.Sprintf("Files to import: %d (%s)\n", r.Queued, humanize.Bytes(uint64(r.QueuedBytes))))
	} else {
		sb.WriteString(fmt.Sprintf("Import %s\n", r.RunId))
		sb.WriteString(fmt.Sprintf("Copied: %d/%d (%s), failed: %d\n",
			r.Copied, r.Queued, humanize.Bytes(uint64(r.CopiedBytes)), r.CopyFailed))
		sb.WriteString(fmt.Sprintf("Verified: %d, failed: %d\n", r.Verified, r.VerifyFailed))
	}
	sb.WriteString(fmt.Sprintf("Scanned: %d, filtered: %d, already imported: %d, existing at target: %d\n",
		r.Scanned, r.Filtered, r.AlreadyImported, r.SkippedExisting))
	sb.WriteString(fmt.Sprintf("Took: %s", L.HumanReadableTime(r.Duration.Milliseconds())))
	return sb.String()
}

// counters shared by the stages of one run
type counters struct {
	scanned         atomic.Int64
	filtered        atomic.Int64
	alreadyImported atomic.Int64
	skippedExisting atomic.Int64
	queued          atomic.Int64
	queuedBytes     atomic.Int64
	copied          atomic.Int64
	copiedBytes     atomic.Int64
	copyFailed      atomic.Int64
	verified        atomic.Int64
	verifyFailed    atomic.Int64
}

func (c *counters) fill(r *Report) {
	r.Scanned = c.scanned.Load()
	r.Filtered = c.filtered.Load()
	r.AlreadyImported = c.alreadyImported.Load()
	r.SkippedExisting = c.skippedExisting.Load()
	r.Queued = c.queued.Load()
	r.QueuedBytes = c.queuedBytes.Load()
	r.Copied = c.copied.Load()
	r.CopiedBytes = c.copiedBytes.Load()
	r.CopyFailed = c.copyFailed.Load()
	r.Verified = c.verified.Load()
	r.VerifyFailed = c.verifyFailed.Load()
}

type Importer struct {
	repo     repository.MediaFileRepository
	scanner  *scanner.Scanner
	copier   *Copier
	verifier *Verifier
	phase    atomic.Int32
	// progress footer refresh rate, zero disables it
	ProgressInterval time.Duration
}

func New(svc remote.FileService, repo repository.MediaFileRepository, sc *scanner.Scanner, hashType string) *Importer {
	return &Importer{
		repo:             repo,
		scanner:          sc,
		copier:           NewCopier(svc, repo, hashType),
		verifier:         NewVerifier(repo),
		ProgressInterval: 250 * time.Millisecond,
	}
}

func (im *Importer) Phase() Phase {
	return Phase(im.phase.Load())
}

func (im *Importer) setPhase(p Phase) {
	im.phase.Store(int32(p))
	L.Debugf("Import phase: %s", p)
}

// Run performs one import. Records flow from the source through admission
// into a bounded copy queue, and from successful copies into a bounded
// verify queue. Run returns once every verify worker is done. A lost
// device connection stops admission and is returned as the error.
func (im *Importer) Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	report := &Report{RunId: uuid.NewString(), DryRun: opts.DryRun, StartedAt: time.Now()}
	cnt := &counters{}
	L.Debugf("Import %s into %s, filters: %s", report.RunId, opts.TargetDir, opts.Filters)

	if !opts.DryRun {
		if err := file_io.EnsureDir(opts.TargetDir); err != nil {
			return nil, fmt.Errorf("could not prepare target directory %s: %w", opts.TargetDir, err)
		}
	}

	copyQueue := make(chan model.MediaFile, opts.QueueSize)
	verifyQueue := make(chan model.MediaFile, opts.QueueSize)

	stopProgress := im.startProgress(cnt)
	defer stopProgress()

	copier := *im.copier
	copier.OnBytes = func(n int64) { cnt.copiedBytes.Add(n) }

	im.setPhase(PHASE_COLLECTING)
	copyGroup, copyCtx := errgroup.WithContext(ctx)

	copyGroup.Go(func() error {
		defer close(copyQueue)
		err := im.collect(copyCtx, opts, cnt, func(f model.MediaFile) error {
			if opts.DryRun {
				return nil
			}
			select {
			case copyQueue <- f:
				return nil
			case <-copyCtx.Done():
				return copyCtx.Err()
			}
		})
		if im.Phase() == PHASE_COLLECTING {
			im.setPhase(PHASE_COPYING)
		}
		return err
	})

	for i := 0; i < opts.CopyWorkers; i++ {
		copyGroup.Go(func() error {
			for f := range copyQueue {
				if copyCtx.Err() != nil {
					// drain without copying once the run is cancelled
					continue
				}
				updated, err := copier.CopyFile(copyCtx, f, opts.TargetDir)
				if err != nil {
					cnt.copyFailed.Add(1)
					if remote.IsFatal(err) {
						return err
					}
					L.Errorf("Failed to import %s: %v", f.FilepathSrc, err)
					continue
				}
				cnt.copied.Add(1)
				L.Infof("Imported %s", f.FilepathSrc)
				verifyQueue <- *updated
			}
			return nil
		})
	}

	// verify workers outlive a cancelled copy stage so that finished copies
	// are still checked
	var verifyWg sync.WaitGroup
	verifyWg.Add(opts.VerifyWorkers)
	for i := 0; i < opts.VerifyWorkers; i++ {
		go func() {
			defer verifyWg.Done()
			for f := range verifyQueue {
				if im.verifier.Verify(context.WithoutCancel(ctx), f) {
					cnt.verified.Add(1)
				} else {
					cnt.verifyFailed.Add(1)
				}
			}
		}()
	}

	runErr := copyGroup.Wait()
	im.setPhase(PHASE_VERIFYING)
	close(verifyQueue)
	verifyWg.Wait()
	im.setPhase(PHASE_DRAINED)

	cnt.fill(report)
	report.Duration = time.Since(report.StartedAt)
	if runErr != nil {
		return report, runErr
	}
	return report, nil
}

// collect feeds every admitted record of the run's source to enqueue.
func (im *Importer) collect(ctx context.Context, opts Options, cnt *counters, enqueue func(model.MediaFile) error) error {
	emit := func(f model.MediaFile) error {
		cnt.scanned.Add(1)
		if !im.admit(f, opts, cnt) {
			return nil
		}
		cnt.queued.Add(1)
		cnt.queuedBytes.Add(f.Size)
		return enqueue(f)
	}

	if opts.UseCache {
		pending, err := im.repo.QueryPending(ctx, opts.ForceAll)
		if err != nil {
			return fmt.Errorf("could not load pending files: %w", err)
		}
		L.Infof("Loaded %d files from the cache", len(pending))
		for _, f := range pending {
			if err := emit(f); err != nil {
				return err
			}
		}
		return nil
	}

	if im.scanner == nil {
		return fmt.Errorf("%w: no scanner configured", ErrInvalidOptions)
	}
	stats, err := im.scanner.Scan(ctx, emit)
	if err != nil {
		return err
	}
	L.Debugf("Scan finished: %s", stats)
	return nil
}

func (im *Importer) admit(f model.MediaFile, opts Options, cnt *counters) bool {
	if res := opts.Filters.Admit(f); !res.Admitted {
		L.Debugf("Skipping %s: %s", f.FilepathSrc, res)
		cnt.filtered.Add(1)
		return false
	}
	if f.IsImported() && !opts.ForceAll {
		cnt.alreadyImported.Add(1)
		return false
	}
	dst := Destination(f, opts.TargetDir)
	exists, err := file_io.Exists(dst)
	if err != nil {
		L.Warnf("Skipping %s: %v", f.FilepathSrc, err)
		cnt.skippedExisting.Add(1)
		return false
	}
	if exists && !opts.Overwrite {
		L.Debugf("Skipping %s: %s already exists", f.FilepathSrc, dst)
		cnt.skippedExisting.Add(1)
		return false
	}
	return true
}

func (im *Importer) startProgress(cnt *counters) func() {
	if im.ProgressInterval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(im.ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				L.Footer(L.INFO, "")
				return
			case <-ticker.C:
				L.Footer(L.INFO, progressLine(im.Phase(), cnt))
			}
		}
	}()
	return func() {
		close(done)
		<-stopped
	}
}

func progressLine(phase Phase, cnt *counters) string {
	queuedBytes := cnt.queuedBytes.Load()
	copiedBytes := cnt.copiedBytes.Load()
	pct := 100.0
	if queuedBytes > 0 {
		pct = min(100.0, float64(copiedBytes)*100.0/float64(queuedBytes))
	}
	return fmt.Sprintf("%-10s %s %6.2f%% %d/%d files %s/%s verified %d",
		phase,
		L.ProgressBar(pct),
		pct,
		cnt.copied.Load(),
		cnt.queued.Load(),
		L.HumanReadableBytes(uint64(copiedBytes), 1),
		L.HumanReadableBytes(uint64(queuedBytes), 1),
		cnt.verified.Load(),
	)
}
