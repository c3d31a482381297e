package tui

import (
	"archivuelo/database/model"
	"archivuelo/database/repository"
	L "archivuelo/logger"
	"archivuelo/tui/components"
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusContent
)

type tabId int

const (
	tabStatus tabId = iota
	tabFiles
)

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

type summaryMsg struct {
	summary *model.MediaFileSummary
}

type filesMsg struct {
	status model.ListStatus
	files  []model.MediaFile
}

type modelTui struct {
	ctx           context.Context
	repo          repository.MediaFileRepository
	summary       *model.MediaFileSummary
	entries       []components.StatusEntry
	files         []model.MediaFile
	sidebarCursor int
	contentCursor int
	contentOffset int
	focus         focusArea
	activeTab     tabId
	width         int
	height        int
}

func NewApp(ctx context.Context, repo repository.MediaFileRepository) *modelTui {
	return &modelTui{
		ctx:       ctx,
		repo:      repo,
		entries:   components.StatusEntries(nil),
		focus:     focusSidebar,
		activeTab: tabStatus,
	}
}

func (m *modelTui) Init() tea.Cmd {
	return tea.Batch(m.fetchSummary, m.fetchFiles, tick())
}

func (m *modelTui) selectedStatus() model.ListStatus {
	return m.entries[m.sidebarCursor].Status
}

// the file under the cursor, when the file list has focus
func (m *modelTui) selectedFile() *model.MediaFile {
	if m.focus != focusContent || m.contentCursor >= len(m.files) {
		return nil
	}
	return &m.files[m.contentCursor]
}

func (m *modelTui) fetchSummary() tea.Msg {
	s, err := m.repo.Summary(m.ctx)
	if err != nil {
		L.Errorf("tui: failed to fetch summary: %v", err)
		return summaryMsg{summary: &model.MediaFileSummary{}}
	}
	return summaryMsg{summary: s}
}

func (m *modelTui) fetchFiles() tea.Msg {
	status := m.selectedStatus()
	files, err := m.repo.List(m.ctx, status)
	if err != nil {
		L.Errorf("tui: failed to fetch %s files: %v", status, err)
		return filesMsg{status: status}
	}
	return filesMsg{status: status, files: files}
}

func (m *modelTui) moveSidebar(delta int) tea.Cmd {
	next := m.sidebarCursor + delta
	if next < 0 || next >= len(m.entries) {
		return nil
	}
	m.sidebarCursor = next
	m.contentCursor = 0
	m.contentOffset = 0
	return m.fetchFiles
}

func (m *modelTui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.fetchSummary, m.fetchFiles, tick())

	case summaryMsg:
		m.summary = msg.summary
		m.entries = components.StatusEntries(msg.summary)

	case filesMsg:
		// drop answers for a sidebar entry that is no longer selected
		if msg.status != m.selectedStatus() {
			return m, nil
		}
		m.files = msg.files
		if m.contentCursor >= len(m.files) {
			m.contentCursor = max(len(m.files)-1, 0)
		}
		m.contentOffset = min(m.contentOffset, m.contentCursor)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "1":
			m.focus = focusSidebar

		case "2":
			m.focus = focusContent

		case "tab":
			if m.focus == focusSidebar {
				m.focus = focusContent
			} else {
				m.focus = focusSidebar
			}

		case "3", "s", "S":
			if m.focus == focusContent {
				m.activeTab = tabStatus
			}

		case "4", "f", "F":
			if m.focus == focusContent {
				m.activeTab = tabFiles
				return m, m.fetchFiles
			}

		case "r":
			return m, tea.Batch(m.fetchSummary, m.fetchFiles)

		case "up", "k":
			if m.focus == focusSidebar {
				return m, m.moveSidebar(-1)
			}
			if m.contentCursor > 0 {
				m.contentCursor--
				if m.contentCursor < m.contentOffset {
					m.contentOffset = m.contentCursor
				}
			}

		case "down", "j":
			if m.focus == focusSidebar {
				return m, m.moveSidebar(1)
			}
			if m.contentCursor < len(m.files)-1 {
				m.contentCursor++
				maxVisible := components.FilesViewCapacity(m.height)
				if m.contentCursor >= m.contentOffset+maxVisible {
					m.contentOffset = m.contentCursor - maxVisible + 1
				}
			}
		}
	}

	return m, nil
}
