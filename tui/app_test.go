package tui

import (
	"archivuelo/database"
	"archivuelo/database/model"
	"archivuelo/database/repository"
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupApp(t *testing.T) (*modelTui, repository.MediaFileRepository) {
	ctx := context.Background()
	db, err := database.NewDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Init(ctx))
	t.Cleanup(func() { db.Close(ctx) })
	repo := repository.NewMediaFileRepository(db)
	for i := 0; i < 3; i++ {
		f, err := repo.Create(ctx, model.MediaFile{
			Filename:    fmt.Sprintf("IMG_%d.JPG", i),
			FilepathSrc: fmt.Sprintf("/DCIM/IMG_%d.JPG", i),
			Size:        100,
		})
		require.NoError(t, err)
		if i == 0 {
			_, err = repo.MarkImported(ctx, f.Id, "/backup/IMG_0.JPG", "xxh3_64", "0123456789abcdef", time.Now())
			require.NoError(t, err)
		}
	}
	return NewApp(ctx, repo), repo
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestFetchAndNavigate(t *testing.T) {
	app, _ := setupApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app.Update(app.fetchSummary())
	app.Update(app.fetchFiles())

	require.NotNil(t, app.summary)
	assert.Equal(t, int64(3), app.entries[0].Count)
	assert.Len(t, app.files, 3)

	// move to "Pending"
	_, cmd := app.Update(key("down"))
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, model.LIST_PENDING, app.selectedStatus())
	assert.Len(t, app.files, 2)

	// stale answer for "All" is ignored
	app.Update(filesMsg{status: model.LIST_ALL, files: make([]model.MediaFile, 3)})
	assert.Len(t, app.files, 2)

	app.Update(key("tab"))
	assert.Equal(t, focusContent, app.focus)
	app.Update(key("down"))
	assert.Equal(t, 1, app.contentCursor)
	app.Update(key("down"))
	assert.Equal(t, 1, app.contentCursor)
	require.NotNil(t, app.selectedFile())
	assert.Equal(t, "/DCIM/IMG_2.JPG", app.selectedFile().FilepathSrc)

	view := app.View()
	assert.Contains(t, view, "Pending")
	assert.Contains(t, view, "/DCIM/IMG_2.JPG")

	app.Update(key("f"))
	assert.Equal(t, tabFiles, app.activeTab)
	assert.Contains(t, app.View(), "IMG_1.JPG")

	_, cmd = app.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewBeforeResize(t *testing.T) {
	app, _ := setupApp(t)
	assert.Equal(t, "Initializing...", app.View())
}
