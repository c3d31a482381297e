package components

import (
	"archivuelo/database/model"
	"fmt"
	"strings"
)

// StatusEntry is one selectable subset of tracked files in the sidebar.
type StatusEntry struct {
	Status model.ListStatus
	Label  string
	Count  int64
}

// StatusEntries derives the sidebar entries from a store summary.
func StatusEntries(s *model.MediaFileSummary) []StatusEntry {
	if s == nil {
		s = &model.MediaFileSummary{}
	}
	return []StatusEntry{
		{Status: model.LIST_ALL, Label: "All", Count: s.Total},
		{Status: model.LIST_PENDING, Label: "Pending", Count: s.Pending},
		{Status: model.LIST_IMPORTED, Label: "Imported", Count: s.Imported},
		{Status: model.LIST_VERIFY_FAILED, Label: "Verify failed", Count: s.VerifyFailed},
	}
}

func RenderStatusList(
	entries []StatusEntry,
	sidebarCursor int,
	focusOnSidebar bool,
	width int,
) string {
	var sb strings.Builder

	// align with tabs on the content side (1 line to match tab position)
	sb.WriteString("\n")

	for i, e := range entries {
		msg := fmt.Sprintf("%s\n• %d files", e.Label, e.Count)

		style := sidebarItemStyle
		if e.Status == model.LIST_VERIFY_FAILED && e.Count > 0 {
			style = sidebarItemStyle.Foreground(ColorRed)
		}

		if i == sidebarCursor {
			if focusOnSidebar {
				style = selectedItemStyle
			} else {
				style = sidebarItemStyle.Background(ColorGrey)
			}
		}

		// width accounts for borders (2) only, padding is handled by box style
		sb.WriteString(style.Width(width-2).Render(msg) + "\n")
	}

	return sb.String()
}
