package components

import (
	"archivuelo/database/model"
	"fmt"
	"strings"
	"time"

	L "archivuelo/logger"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

type Row struct {
	label string
	value string
}

// renders the store summary and the file under the cursor, if any
func RenderStatusView(
	summary *model.MediaFileSummary,
	selected *model.MediaFile,
	width int,
) string {
	if summary == nil {
		return "Loading..."
	}

	labelWidth := 24
	valueWidth := max(width-labelWidth-6, 10)

	buildSection := func(title string, rows []Row) string {
		labelStyle := lipgloss.NewStyle().Width(labelWidth).Foreground(ColorGrey)
		valueStyle := lipgloss.NewStyle().Width(valueWidth).Foreground(ColorGreen)

		tableContent := ""
		for _, row := range rows {
			line := lipgloss.JoinHorizontal(lipgloss.Top,
				labelStyle.Render(row.label),
				valueStyle.Render(row.value),
			)
			tableContent += line + "\n"
		}

		tableContent = strings.TrimSuffix(tableContent, "\n")

		table := tableTitleStyle.Render(title) + "\n" + tableStyle.Render(tableContent)
		return table
	}

	var sb strings.Builder

	lastImport := "never"
	if !summary.LastImportedAt.IsZero() {
		lastImport = humanize.Time(summary.LastImportedAt)
	}
	summaryRows := []Row{
		{"Tracked:", fmt.Sprintf("%d (%s)", summary.Total, L.HumanReadableBytes(uint64(summary.TotalSize), 2))},
		{"Imported:", fmt.Sprintf("%d (%s)", summary.Imported, L.HumanReadableBytes(uint64(summary.ImportedSize), 2))},
		{"Pending:", fmt.Sprintf("%d", summary.Pending)},
		{"Verified:", fmt.Sprintf("%d", summary.Verified)},
		{"Verify failed:", fmt.Sprintf("%d", summary.VerifyFailed)},
		{"Last import:", lastImport},
	}
	sb.WriteString(buildSection("DATABASE", summaryRows))

	if selected != nil {
		f := selected
		fileRows := []Row{
			{"Source:", f.FilepathSrc},
			{"Size:", L.HumanReadableBytes(uint64(f.Size), 2)},
			{"Created:", formatTime(f.TimeBirthtime)},
			{"Modified:", formatTime(f.TimeMtime)},
			{"Imported:", model.StatusString(f.StatusImported) + " " + formatTime(f.TimeImported)},
			{"Verified:", model.StatusString(f.StatusVerified) + " " + formatTime(f.TimeVerified)},
		}
		if f.FilepathDst != "" {
			fileRows = append(fileRows, Row{label: "Destination:", value: f.FilepathDst})
		}
		if f.HasHash() {
			fileRows = append(fileRows, Row{label: "Digest:", value: f.HashType + ":" + f.HashValue})
		}
		sb.WriteString("\n" + buildSection("SELECTED FILE", fileRows))
	}

	return sb.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
