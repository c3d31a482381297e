package components

import (
	"archivuelo/database/model"
	"fmt"
	"strings"

	L "archivuelo/logger"
)

// shows how much of everything tracked is imported
func RenderStatusBar(
	summary *model.MediaFileSummary,
) string {
	if summary == nil {
		return ""
	}
	var sb strings.Builder

	switch {
	case summary.Total == 0:
		sb.WriteString(DimStyle.Render("Status | NOTHING TRACKED"))

	case summary.Pending == 0 && summary.VerifyFailed == 0:
		sb.WriteString(GreenStyle.Render(fmt.Sprintf("Status | ✓  ALL %d FILES IMPORTED", summary.Total)))

	default:
		pct := float64(summary.Imported) * 100.0 / float64(summary.Total)
		sb.WriteString(fmt.Sprintf("Status | IMPORTED %s %3.2f%%", L.ProgressBar(pct), pct))
		if summary.VerifyFailed > 0 {
			sb.WriteString(RedStyle.Render(fmt.Sprintf("  ✗ %d failed verification", summary.VerifyFailed)))
		}
	}

	return sb.String()
}
