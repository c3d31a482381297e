package components

import (
	"archivuelo/database/model"
	"fmt"
	"strings"

	L "archivuelo/logger"

	"github.com/charmbracelet/lipgloss"
)

// renders the tracked files of the selected subset
func RenderFilesView(
	files []model.MediaFile,
	contentCursor int,
	contentOffset int,
	focusOnContent bool,
	width int,
	height int,
) string {
	if len(files) == 0 {
		return "\n\n  " + YellowStyle.Render("No files here. Run 'archivuelo scan' to track a device.")
	}

	var sb strings.Builder

	maxVisible := FilesViewCapacity(height)

	sizeWidth := 10
	statusWidth := 10
	createdWidth := 17
	nameWidth := max(width-sizeWidth-statusWidth*2-createdWidth-5, 10)

	headerStyle := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	headerLine := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Width(nameWidth).Render("PATH"),
		headerStyle.Width(sizeWidth).Render("SIZE"),
		headerStyle.Width(createdWidth).Render("CREATED AT"),
		headerStyle.Width(statusWidth).Render("IMPORTED"),
		headerStyle.Width(statusWidth).Render("VERIFIED"),
	)
	sb.WriteString(headerLine + "\n")

	end := contentOffset + maxVisible
	for i := contentOffset; i < len(files) && i < end; i++ {
		f := files[i]

		created := ""
		if !f.TimeBirthtime.IsZero() {
			created = f.TimeBirthtime.Format("2006-01-02 15:04")
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(nameWidth).Render(L.TruncateString(f.FilepathSrc, nameWidth-1, L.TRUNC_LEFT)),
			lipgloss.NewStyle().Width(sizeWidth).Render(L.HumanReadableBytes(uint64(f.Size), 1)),
			lipgloss.NewStyle().Width(createdWidth).Render(created),
			statusCell(f.StatusImported, statusWidth),
			statusCell(f.StatusVerified, statusWidth),
		)

		if i == contentCursor && focusOnContent {
			sb.WriteString(selectedItemStyle.Width(width - 2).Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	if len(files) > end {
		sb.WriteString(DimStyle.Render(fmt.Sprintf("... %d more files", len(files)-end)))
	}

	return sb.String()
}

// FilesViewCapacity is how many rows fit for a terminal of the given height.
func FilesViewCapacity(height int) int {
	return max(height-12, 1)
}

func statusCell(b *bool, width int) string {
	style := lipgloss.NewStyle().Width(width)
	switch {
	case b == nil:
		style = style.Foreground(ColorGrey)
	case *b:
		style = style.Foreground(ColorGreen)
	default:
		style = style.Foreground(ColorRed)
	}
	return style.Render(model.StatusString(b))
}
