package model

import (
	L "archivuelo/logger"
	"fmt"
	"time"
)

const CREATE_MEDIA_FILES_TABLE = `CREATE TABLE IF NOT EXISTS media_files (
				id INTEGER PRIMARY KEY AUTOINCREMENT,

				filename TEXT NOT NULL,
				filepath_src TEXT NOT NULL UNIQUE,
				filepath_dst TEXT,
				size INTEGER NOT NULL DEFAULT 0,

				hash_type TEXT,
				hash_value TEXT,

				status_imported INTEGER DEFAULT 0,
				status_verified INTEGER DEFAULT 0,

				time_birthtime TEXT,
				time_mtime TEXT,
				time_imported TEXT,
				time_verified TEXT
);`

const CREATE_MEDIA_FILES_INDEXES = `CREATE INDEX IF NOT EXISTS media_files_status_imported
				ON media_files(status_imported);`

// MediaFile tracks the import lifecycle of one file on the device.
// Values are passed between pipeline stages by copy; the repository is the
// only place a row changes.
type MediaFile struct {
	Id          int64
	Filename    string
	FilepathSrc string
	FilepathDst string
	Size        int64

	HashType  string
	HashValue string

	// nil means never attempted
	StatusImported *bool
	StatusVerified *bool

	TimeBirthtime time.Time
	TimeMtime     time.Time
	TimeImported  time.Time
	TimeVerified  time.Time
}

func (m MediaFile) IsImported() bool {
	return m.StatusImported != nil && *m.StatusImported
}

func (m MediaFile) IsVerified() bool {
	return m.StatusVerified != nil && *m.StatusVerified
}

func (m MediaFile) HasHash() bool {
	return m.HashValue != ""
}

func (m *MediaFile) String() string {
	return fmt.Sprintf("[MediaFile]\n  Id: %d\n  Src: %s\n  Dst: %s\n  Size: %s\n  Hash: %s (%s)\n  Imported: %s\n  Verified: %s\n",
		m.Id,
		m.FilepathSrc,
		m.FilepathDst,
		L.HumanReadableBytes(uint64(max(m.Size, 0)), 2),
		m.HashValue,
		m.HashType,
		StatusString(m.StatusImported),
		StatusString(m.StatusVerified),
	)
}

func StatusString(b *bool) string {
	switch {
	case b == nil:
		return "UNKNOWN"
	case *b:
		return "YES"
	default:
		return "NO"
	}
}

func Bool(b bool) *bool {
	return &b
}

// MediaFileSummary is an aggregate view over all tracked files.
type MediaFileSummary struct {
	Total          int64
	Imported       int64
	Verified       int64
	VerifyFailed   int64
	Pending        int64
	TotalSize      int64
	ImportedSize   int64
	LastImportedAt time.Time
}

// ListStatus selects a subset of tracked files for listings.
type ListStatus string

const (
	LIST_ALL           ListStatus = "all"
	LIST_PENDING       ListStatus = "pending"
	LIST_IMPORTED      ListStatus = "imported"
	LIST_VERIFY_FAILED ListStatus = "verify_failed"
)
