package importer

import (
	"archivuelo/checksum"
	"archivuelo/database/model"
	"archivuelo/database/repository"
	"archivuelo/file_io"
	L "archivuelo/logger"
	"context"
	"errors"
	"fmt"
	"time"
)

const VerificationChunkSize = 8192

var (
	ErrMissingHash        = errors.New("no digest recorded")
	ErrDestinationMissing = errors.New("destination file missing")
)

type HashMismatchError struct {
	Expected string
	Actual   string
	Size     int64
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("digest mismatch: expected %s, got %s over %d bytes", e.Expected, e.Actual, e.Size)
}

type Verifier struct {
	repo repository.MediaFileRepository
}

func NewVerifier(repo repository.MediaFileRepository) *Verifier {
	return &Verifier{repo: repo}
}

// Check re-reads the destination of f and compares its digest with the
// one recorded at import. Anything that prevents a comparison is a failure.
func (v *Verifier) Check(f model.MediaFile) error {
	if !f.HasHash() {
		return ErrMissingHash
	}
	if !checksum.IsSupported(f.HashType) {
		return fmt.Errorf("%w: %q", checksum.ErrUnrecognizedAlgorithm, f.HashType)
	}
	exists, err := file_io.Exists(f.FilepathDst)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrDestinationMissing, f.FilepathDst)
	}
	actual, size, err := checksum.File(f.FilepathDst, f.HashType, VerificationChunkSize)
	if err != nil {
		return err
	}
	if actual != f.HashValue {
		return &HashMismatchError{Expected: f.HashValue, Actual: actual, Size: size}
	}
	return nil
}

// Verify checks f and stores the outcome on its record.
func (v *Verifier) Verify(ctx context.Context, f model.MediaFile) bool {
	err := v.Check(f)
	ok := err == nil
	if ok {
		L.Debugf("Verified %s", f.FilepathDst)
	} else {
		L.Errorf("Verification failed for %s: %v", f.FilepathSrc, err)
	}
	if err := v.repo.MarkVerified(ctx, f.Id, ok, time.Now()); err != nil {
		L.Errorf("Could not record verification of %s: %v", f.FilepathSrc, err)
	}
	return ok
}
