package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	_ "modernc.org/sqlite"
)

func TestNewDB(t *testing.T) {
	t.Run("InvalidPath", func(t *testing.T) {
		tempDir, err := os.MkdirTemp("", "test-db")
		assert.NoError(t, err)
		defer os.RemoveAll(tempDir)

		db, err := NewDB(tempDir)
		assert.NoError(t, err) // NewDB doesn't return an error for a directory

		err = db.D.Ping()
		assert.Error(t, err)
	})

	t.Run("ValidPath", func(t *testing.T) {
		db, err := NewDB(":memory:")
		assert.NoError(t, err)
		assert.NotNil(t, db)
		defer db.Close(context.Background())

		err = db.D.Ping()
		assert.NoError(t, err)
	})
}

func TestDB_createTables(t *testing.T) {
	db, err := NewDB(":memory:")
	assert.NoError(t, err)
	defer db.Close(context.Background())

	t.Run("Success", func(t *testing.T) {
		err := db.createTables(context.Background())
		assert.NoError(t, err)

		rows, err := db.D.Query("SELECT name FROM sqlite_master WHERE type='table'")
		assert.NoError(t, err)
		defer rows.Close()

		var tables []string
		for rows.Next() {
			var name string
			assert.NoError(t, rows.Scan(&name))
			tables = append(tables, name)
		}

		assert.Contains(t, tables, "media_files")
	})

	t.Run("Idempotent", func(t *testing.T) {
		assert.NoError(t, db.Init(context.Background()))
		assert.NoError(t, db.Init(context.Background()))
	})
}

func TestGetDBFilePath(t *testing.T) {
	tempHome, err := os.MkdirTemp("", "test-home")
	assert.NoError(t, err)
	defer os.RemoveAll(tempHome)

	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CONFIG_HOME", "")

	dbPath, err := GetDBFilePath(context.Background())
	assert.NoError(t, err)

	expectedPath := filepath.Join(tempHome, ".config", "archivuelo", "archivuelo.db")
	assert.Equal(t, expectedPath, dbPath)
}

func TestTimeStrRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Microsecond)
	assert.True(t, now.Equal(FromTimeStr(ToTimeStr(now))))

	assert.False(t, NullTimeStr(time.Time{}).Valid)
	assert.True(t, FromNullTimeStr(NullTimeStr(time.Time{})).IsZero())
	assert.True(t, now.Equal(FromNullTimeStr(NullTimeStr(now))))
}

func TestNullBool(t *testing.T) {
	assert.Nil(t, FromNullBool(NullBool(nil)))
	yes := true
	got := FromNullBool(NullBool(&yes))
	if assert.NotNil(t, got) {
		assert.True(t, *got)
	}
}
