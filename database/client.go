package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"archivuelo/database/model"
	L "archivuelo/logger"

	_ "modernc.org/sqlite"
)

const DateTimeFormat = "2006-01-02T15:04:05.000000Z07:00"

const dbFileName = "archivuelo.db"

var ErrDoesNotExist = errors.New("does not exist")

type DB struct {
	D             *sql.DB
	connectionUri string
}

func NewDB(dbPath string) (*DB, error) {
	d, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// every record update is a single statement on a single connection,
	// readers never observe a half written row. ":memory:" also needs this
	// since each pooled connection would otherwise get its own database.
	d.SetMaxOpenConns(1)
	return &DB{
		D:             d,
		connectionUri: dbPath,
	}, nil
}

func (d *DB) createTables(ctx context.Context) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
		model.CREATE_MEDIA_FILES_TABLE,
		model.CREATE_MEDIA_FILES_INDEXES,
	}
	for _, s := range stmts {
		if _, err := d.D.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("db: could not initialize schema: %w", err)
		}
	}
	L.Debugf("db: schema ready at %s", d.connectionUri)
	return nil
}

func (d *DB) Init(ctx context.Context) error {
	return d.createTables(ctx)
}

func (d *DB) Close(ctx context.Context) error {
	return d.D.Close()
}

// GetDBFilePath returns the default database location inside the user's
// config directory, creating the directory if needed.
func GetDBFilePath(ctx context.Context) (string, error) {
	configDir, configDirError := os.UserConfigDir()
	homeDir, homeDirError := os.UserHomeDir()
	if configDirError != nil && homeDirError != nil {
		return "", fmt.Errorf("db: cannot find config dir: Config: %w, Home: %w", configDirError, homeDirError)
	}
	dir := configDir
	if configDirError != nil {
		dir = homeDir
	}
	dir, err := filepath.Abs(filepath.Join(dir, "archivuelo"))
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func ToTimeStr(t time.Time) string {
	return t.Local().Format(DateTimeFormat)
}

func FromTimeStr(ts string) time.Time {
	t, err := time.Parse(DateTimeFormat, ts)
	if err != nil {
		L.Error(fmt.Errorf("couldnt parse time for %s: %w", ts, err))
		return time.Time{}
	}
	return t
}

// NullTimeStr maps the zero time to NULL.
func NullTimeStr(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: ToTimeStr(t), Valid: true}
}

func FromNullTimeStr(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	return FromTimeStr(ns.String)
}

// NullStr maps the empty string to NULL.
func NullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func NullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func FromNullBool(nb sql.NullBool) *bool {
	if !nb.Valid {
		return nil
	}
	b := nb.Bool
	return &b
}
