package repository

import (
	"archivuelo/database"
	"archivuelo/database/model"
	L "archivuelo/logger"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type MediaFileRepository interface {
	FindByPath(
		ctx context.Context,
		filepathSrc string,
	) (*model.MediaFile, error)

	GetById(
		ctx context.Context,
		id int64,
	) (*model.MediaFile, error)

	// Create inserts a new row for f.FilepathSrc. If the path is already
	// tracked the existing row is returned unchanged.
	Create(
		ctx context.Context,
		f model.MediaFile,
	) (*model.MediaFile, error)

	// MarkImported records a successful copy. Destination, digest, import
	// flag and import time are written by one statement.
	MarkImported(
		ctx context.Context,
		id int64,
		filepathDst string,
		hashType string,
		hashValue string,
		importedAt time.Time,
	) (*model.MediaFile, error)

	MarkVerified(
		ctx context.Context,
		id int64,
		verified bool,
		verifiedAt time.Time,
	) error

	QueryPending(
		ctx context.Context,
		includeAll bool,
	) ([]model.MediaFile, error)

	List(
		ctx context.Context,
		status model.ListStatus,
	) ([]model.MediaFile, error)

	ResetAllImportedFlags(ctx context.Context) (int64, error)
	DropAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	Summary(ctx context.Context) (*model.MediaFileSummary, error)
}

type mediaFileRepository struct {
	db *database.DB
}

func NewMediaFileRepository(db *database.DB) MediaFileRepository {
	return mediaFileRepository{db: db}
}

const selectMediaFile = `SELECT
		id,
		filename,
		filepath_src,
		filepath_dst,
		size,
		hash_type,
		hash_value,
		status_imported,
		status_verified,
		time_birthtime,
		time_mtime,
		time_imported,
		time_verified
	FROM media_files`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMediaFile(row rowScanner) (*model.MediaFile, error) {
	var f model.MediaFile
	var filepathDst, hashType, hashValue sql.NullString
	var statusImported, statusVerified sql.NullBool
	var birthtime, mtime, importedAt, verifiedAt sql.NullString
	err := row.Scan(
		&f.Id,
		&f.Filename,
		&f.FilepathSrc,
		&filepathDst,
		&f.Size,
		&hashType,
		&hashValue,
		&statusImported,
		&statusVerified,
		&birthtime,
		&mtime,
		&importedAt,
		&verifiedAt,
	)
	if err != nil {
		return nil, err
	}
	f.FilepathDst = filepathDst.String
	f.HashType = hashType.String
	f.HashValue = hashValue.String
	f.StatusImported = database.FromNullBool(statusImported)
	f.StatusVerified = database.FromNullBool(statusVerified)
	f.TimeBirthtime = database.FromNullTimeStr(birthtime)
	f.TimeMtime = database.FromNullTimeStr(mtime)
	f.TimeImported = database.FromNullTimeStr(importedAt)
	f.TimeVerified = database.FromNullTimeStr(verifiedAt)
	return &f, nil
}

func (r mediaFileRepository) queryMany(ctx context.Context, q string, args ...any) ([]model.MediaFile, error) {
	rows, err := r.db.D.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var files []model.MediaFile
	for rows.Next() {
		f, err := scanMediaFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

func (r mediaFileRepository) FindByPath(ctx context.Context, filepathSrc string) (*model.MediaFile, error) {
	row := r.db.D.QueryRowContext(ctx, selectMediaFile+` WHERE filepath_src=?`, filepathSrc)
	f, err := scanMediaFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrDoesNotExist
		}
		return nil, fmt.Errorf("could not find media file for path %s: %w", filepathSrc, err)
	}
	return f, nil
}

func (r mediaFileRepository) GetById(ctx context.Context, id int64) (*model.MediaFile, error) {
	row := r.db.D.QueryRowContext(ctx, selectMediaFile+` WHERE id=?`, id)
	f, err := scanMediaFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrDoesNotExist
		}
		return nil, fmt.Errorf("could not find media file for id %d: %w", id, err)
	}
	return f, nil
}

func (r mediaFileRepository) Create(ctx context.Context, f model.MediaFile) (*model.MediaFile, error) {
	if f.FilepathSrc == "" {
		return nil, fmt.Errorf("could not create media file: empty source path")
	}
	result, err := r.db.D.ExecContext(ctx,
		`INSERT INTO media_files (
		filename,
		filepath_src,
		filepath_dst,
		size,
		hash_type,
		hash_value,
		status_imported,
		status_verified,
		time_birthtime,
		time_mtime
	) VALUES (?,?,?,?,?,?,?,?,?,?)
	 ON CONFLICT(filepath_src) DO NOTHING`,
		f.Filename,
		f.FilepathSrc,
		database.NullStr(f.FilepathDst),
		f.Size,
		database.NullStr(f.HashType),
		database.NullStr(f.HashValue),
		database.NullBool(f.StatusImported),
		database.NullBool(f.StatusVerified),
		database.NullTimeStr(f.TimeBirthtime),
		database.NullTimeStr(f.TimeMtime),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create media file for path %s: %w", f.FilepathSrc, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		L.Debugf("db: %s is already tracked", f.FilepathSrc)
		return r.FindByPath(ctx, f.FilepathSrc)
	}
	lastInsertId, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetById(ctx, lastInsertId)
}

func (r mediaFileRepository) MarkImported(
	ctx context.Context,
	id int64,
	filepathDst string,
	hashType string,
	hashValue string,
	importedAt time.Time,
) (*model.MediaFile, error) {
	if hashType == "" || hashValue == "" {
		return nil, fmt.Errorf("could not mark media file %d as imported: missing digest", id)
	}
	// a fresh copy invalidates any earlier verification
	q := `UPDATE media_files SET
				filepath_dst=?,
				hash_type=?,
				hash_value=?,
				status_imported=1,
				time_imported=?,
				status_verified=NULL,
				time_verified=NULL
				WHERE id=?`
	res, err := r.db.D.ExecContext(ctx, q, filepathDst, hashType, hashValue, database.ToTimeStr(importedAt), id)
	if err != nil {
		return nil, fmt.Errorf("could not mark media file %d as imported: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected != 1 {
		return nil, fmt.Errorf("could not mark media file %d as imported: %w", id, database.ErrDoesNotExist)
	}
	return r.GetById(ctx, id)
}

func (r mediaFileRepository) MarkVerified(ctx context.Context, id int64, verified bool, verifiedAt time.Time) error {
	// only imported files carry a verification outcome
	q := `UPDATE media_files SET
				status_verified=?,
				time_verified=?
				WHERE id=? AND status_imported=1`
	res, err := r.db.D.ExecContext(ctx, q, verified, database.ToTimeStr(verifiedAt), id)
	if err != nil {
		return fmt.Errorf("could not update verification for media file %d: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected != 1 {
		return fmt.Errorf("could not update verification for media file %d: not imported or %w", id, database.ErrDoesNotExist)
	}
	return nil
}

func (r mediaFileRepository) QueryPending(ctx context.Context, includeAll bool) ([]model.MediaFile, error) {
	q := selectMediaFile + ` WHERE status_imported IS NULL OR status_imported=0 ORDER BY filepath_src ASC`
	if includeAll {
		q = selectMediaFile + ` ORDER BY filepath_src ASC`
	}
	files, err := r.queryMany(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("could not query pending media files: %w", err)
	}
	if len(files) == 0 {
		L.Debug("db: no files pending")
	}
	return files, nil
}

func (r mediaFileRepository) List(ctx context.Context, status model.ListStatus) ([]model.MediaFile, error) {
	var where string
	switch status {
	case model.LIST_ALL, "":
		where = ""
	case model.LIST_PENDING:
		where = ` WHERE status_imported IS NULL OR status_imported=0`
	case model.LIST_IMPORTED:
		where = ` WHERE status_imported=1`
	case model.LIST_VERIFY_FAILED:
		where = ` WHERE status_imported=1 AND status_verified=0 AND time_verified IS NOT NULL`
	default:
		return nil, fmt.Errorf("unknown list status: %s", status)
	}
	return r.queryMany(ctx, selectMediaFile+where+` ORDER BY filepath_src ASC`)
}

func (r mediaFileRepository) ResetAllImportedFlags(ctx context.Context) (int64, error) {
	res, err := r.db.D.ExecContext(ctx, `UPDATE media_files SET status_imported=0`)
	if err != nil {
		return -1, fmt.Errorf("could not reset import status: %w", err)
	}
	return res.RowsAffected()
}

func (r mediaFileRepository) DropAll(ctx context.Context) error {
	_, err := r.db.D.ExecContext(ctx, `DROP TABLE IF EXISTS media_files`)
	if err != nil {
		return fmt.Errorf("could not drop media files: %w", err)
	}
	return r.db.Init(ctx)
}

func (r mediaFileRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.D.QueryRowContext(ctx, `SELECT COUNT(*) FROM media_files`).Scan(&n)
	return n, err
}

func (r mediaFileRepository) Summary(ctx context.Context) (*model.MediaFileSummary, error) {
	row := r.db.D.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status_imported=1 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status_verified=1 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status_imported=1 AND status_verified=0 AND time_verified IS NOT NULL THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(size), 0),
		COALESCE(SUM(CASE WHEN status_imported=1 THEN size ELSE 0 END), 0),
		MAX(time_imported)
	FROM media_files`)
	var s model.MediaFileSummary
	var lastImported sql.NullString
	err := row.Scan(&s.Total, &s.Imported, &s.Verified, &s.VerifyFailed, &s.TotalSize, &s.ImportedSize, &lastImported)
	if err != nil {
		return nil, fmt.Errorf("could not summarize media files: %w", err)
	}
	s.Pending = s.Total - s.Imported
	s.LastImportedAt = database.FromNullTimeStr(lastImported)
	return &s, nil
}
