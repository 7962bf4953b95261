package tui

import (
	"github.com/charmbracelet/lipgloss"

	"alert-dashboard/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1F3A5F")).
			Padding(0, 1)

	labelStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A0A0A0"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#2A2A40"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#606060"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5FAFFF")).
			Padding(1, 2)

	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FF5F5F")).
			Padding(0, 1)
)

// Keyed by the class names from models so styling follows the same mapping
// the badge and tier functions define.
var statusStyles = map[string]lipgloss.Style{
	"status-new":      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFFF")),
	"status-reviewed": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D7AF5F")),
	"status-fraud":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F")),
	"status-false":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD75F")),
}

var riskStyles = map[string]lipgloss.Style{
	models.RiskCritical.Class(): lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000")),
	models.RiskHigh.Class():     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8700")),
	models.RiskMedium.Class():   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
	models.RiskLow.Class():      lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
}

func statusStyle(s models.Status) lipgloss.Style {
	if st, ok := statusStyles[s.Class()]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

func riskStyle(t models.RiskTier) lipgloss.Style {
	if st, ok := riskStyles[t.Class()]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// StatusBadge renders the status label in its badge colour. Unknown
// statuses render as their raw text without styling.
func StatusBadge(s models.Status) string {
	return statusStyle(s).Render(s.Label())
}
