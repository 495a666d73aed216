package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mediaunmasked/media-unmasked/internal/score"
)

type breakdownColumn struct {
	Title string
	Width int
}

var breakdownColumns = []breakdownColumn{
	{Title: "Analysis", Width: 26},
	{Title: "Raw", Width: 6},
	{Title: "Quality", Width: 8},
	{Title: "Weight", Width: 7},
	{Title: "Points", Width: 7},
	{Title: "Band", Width: 22},
}

// breakdownRows formats one row per lens
func breakdownRows(lines []score.Line) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{
			line.Lens.Title(),
			fmt.Sprintf("%.0f", line.Raw),
			fmt.Sprintf("%.0f%%", line.Quality),
			fmt.Sprintf("×%.2f", line.Weight),
			fmt.Sprintf("%.1f", line.Contribution),
			line.Band.Label,
		})
	}
	return rows
}

func renderCell(value string, colWidth int) string {
	style := lipgloss.NewStyle().Width(colWidth).MaxWidth(colWidth).Inline(true)
	return lipgloss.NewStyle().Padding(0, 1).Render(style.Render(Truncate(value, colWidth)))
}

// breakdownView renders the score breakdown modal: how each sub-analysis
// contributes to the composite
func (m *Model) breakdownView() string {
	lines := score.Breakdown(m.scores)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.styles.theme.Subtle)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(m.styles.theme.Primary))

	headerCells := make([]string, 0, len(breakdownColumns))
	for _, col := range breakdownColumns {
		headerCells = append(headerCells, headerStyle.Render(renderCell(col.Title, col.Width)))
	}
	rendered := []string{lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)}

	for i, row := range breakdownRows(lines) {
		cells := make([]string, 0, len(row))
		for ci, value := range row {
			cell := renderCell(value, breakdownColumns[ci].Width)
			if ci == len(row)-1 {
				cell = m.styles.Tone(lines[i].Tone).Render(cell)
			}
			cells = append(cells, cell)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if lines[i].Lens == m.lens {
			row = m.styles.Selected.Render(row)
		}
		rendered = append(rendered, row)
	}

	composite := m.scores.Composite()
	total := fmt.Sprintf("Media Unmasked Score: %s  %s",
		m.styles.Tone(score.ToneFor(composite)).Render(fmt.Sprintf("%.0f%%", composite)),
		m.styles.Normal.Render(score.Rating(composite)),
	)
	if reported, ok := score.ReportedFor(m.response.MediaScore); ok {
		total += "\n" + m.styles.Help.Render("Service reported: "+reported.String())
	}
	note := m.styles.Help.Render("Manipulation and bias count as 100 minus their raw score.")

	return m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Score Breakdown"),
		"",
		strings.Join(rendered, "\n"),
		"",
		total,
		note,
		"",
		m.renderHelpLine([]helpEntry{{"b/esc", "close"}}),
	))
}

// Truncate shortens s to maxLen display cells
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > maxLen {
		return runewidth.Truncate(s, maxLen, "…")
	}
	return s
}
