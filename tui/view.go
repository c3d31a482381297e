package tui

import (
	"archivuelo/tui/components"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *modelTui) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sidebarWidth := 30
	// account for both panels' borders (2+2)
	contentWidth := m.width - sidebarWidth - 4
	// account for borders (2 lines) and footer (1 line)
	mainHeight := m.height - 3

	sidebarContent := components.RenderStatusList(
		m.entries,
		m.sidebarCursor,
		m.focus == focusSidebar,
		sidebarWidth,
	)

	sidebarTitle := "[1] Files"
	sidebarBorderStyle := boxStyle
	sidebarTitleStyle := panelTitleStyle
	if m.focus == focusSidebar {
		sidebarBorderStyle = activeBoxStyle
		sidebarTitleStyle = activePanelTitleStyle
	}
	sidebarBox := renderBoxWithTitle(sidebarTitle, sidebarContent, sidebarWidth, mainHeight, sidebarBorderStyle, sidebarTitleStyle, true)

	var cb strings.Builder

	statusLabel := "Status"
	filesLabel := "List"
	var statusTab, filesTab string

	if m.focus == focusContent {
		statusLabel = "[3] Status"
		filesLabel = "[4] List"
		if m.activeTab == tabStatus {
			statusTab = activeTabStyle.Render(statusLabel)
			filesTab = tabStyle.Foreground(components.ColorGrey).Render(filesLabel)
		} else {
			statusTab = tabStyle.Foreground(components.ColorGrey).Render(statusLabel)
			filesTab = activeTabStyle.Render(filesLabel)
		}
	} else {
		statusTab = tabStyle.Foreground(components.ColorGrey).Render(statusLabel)
		filesTab = tabStyle.Foreground(components.ColorGrey).Render(filesLabel)
	}
	cb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, statusTab, filesTab) + "\n")

	if m.activeTab == tabStatus {
		cb.WriteString(components.RenderStatusView(m.summary, m.selectedFile(), contentWidth))
	} else {
		cb.WriteString(components.RenderFilesView(
			m.files,
			m.contentCursor,
			m.contentOffset,
			m.focus == focusContent,
			contentWidth,
			m.height,
		))
	}

	cb.WriteString("\n" + components.RenderStatusBar(m.summary))

	contentTitle := "[2] " + m.entries[m.sidebarCursor].Label
	contentBorderStyle := boxStyle
	contentTitleStyle := panelTitleStyle
	if m.focus == focusContent {
		contentBorderStyle = activeBoxStyle
		contentTitleStyle = activePanelTitleStyle
	}
	contentBox := renderBoxWithTitle(contentTitle, cb.String(), contentWidth, mainHeight, contentBorderStyle, contentTitleStyle, true)

	footer := components.HelpStyle.Width(m.width).Align(lipgloss.Center).Render("1:Files | 2:Content | Tab:Toggle | 3/s:Status | 4/f:List | j/k/arrow keys:Navigate | r:Reload | q:Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, contentBox),
		footer,
	)
}
