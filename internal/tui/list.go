package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"alert-dashboard/internal/models"
)

const emptyListText = "No alerts found"

type column struct {
	title string
	width int
}

var listColumns = []column{
	{"Alert ID", 10},
	{"Transaction ID", 22},
	{"Risk Score", 12},
	{"Status", 18},
	{"Created At", 24},
	{"Reviewed By", 18},
}

// listHeaderLines is the number of lines the table prints above its first row.
const listHeaderLines = 2

// RenderAlertList renders one row per alert in input order, with the row at
// cursor highlighted. An empty slice renders the empty state instead of a table.
func RenderAlertList(alerts []models.Alert, cursor int) string {
	if len(alerts) == 0 {
		return mutedStyle.Render(emptyListText)
	}

	var b strings.Builder
	titles := make([]string, len(listColumns))
	total := 0
	for i, c := range listColumns {
		titles[i] = headerStyle.Width(c.width).Render(truncate(c.title, c.width-1))
		total += c.width
	}
	b.WriteString("  " + strings.Join(titles, ""))
	b.WriteString("\n")
	b.WriteString("  " + mutedStyle.Render(strings.Repeat("─", total)))

	for i, a := range alerts {
		b.WriteString("\n")
		row := renderRow(a)
		if i == cursor {
			b.WriteString("> " + cursorStyle.Render(row))
		} else {
			b.WriteString("  " + row)
		}
	}
	return b.String()
}

func renderRow(a models.Alert) string {
	reviewer := "-"
	if a.ReviewedBy != nil {
		reviewer = *a.ReviewedBy
	}
	cells := []string{
		plainCell(strconv.FormatInt(a.ID, 10), listColumns[0].width),
		plainCell(a.TransactionID, listColumns[1].width),
		styledCell(riskStyle(a.RiskTier()), formatScore(a.RiskScore), listColumns[2].width),
		styledCell(statusStyle(a.Status), a.Status.Label(), listColumns[3].width),
		plainCell(formatListDate(a.CreatedAt), listColumns[4].width),
		plainCell(reviewer, listColumns[5].width),
	}
	return strings.Join(cells, "")
}

func plainCell(s string, width int) string {
	return styledCell(lipgloss.NewStyle(), s, width)
}

func styledCell(style lipgloss.Style, s string, width int) string {
	return style.Width(width).Render(truncate(s, width-1))
}

// truncate shortens s to at most n cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// formatListDate renders e.g. "Jan 15, 2024, 10:30 AM"; missing dates render "-".
func formatListDate(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("Jan 2, 2006, 03:04 PM")
}

// formatDetailDate renders e.g. "1/15/2024, 10:30:00 AM".
func formatDetailDate(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("1/2/2006, 3:04:05 PM")
}
