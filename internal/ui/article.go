package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mediaunmasked/media-unmasked/internal/highlight"
)

// refreshArticle re-renders the article for the current lens and width
func (m *Model) refreshArticle() {
	if m.response == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.renderArticle(m.viewport.Width))
}

func (m *Model) renderArticle(width int) string {
	text := highlight.Clean(m.response.Content)
	if strings.TrimSpace(text) == "" {
		return m.styles.Help.Render("No article text was returned for this URL.")
	}

	spans := highlight.Annotate(text, m.lens, highlight.SourcesFor(m.response, m.lens))

	var b strings.Builder
	for _, seg := range highlight.Segments(text, spans) {
		switch {
		case !seg.Highlighted():
			b.WriteString(seg.Text)
		case seg.Depth > 1:
			b.WriteString(renderLines(m.styles.MarkStrong, seg.Text))
		default:
			b.WriteString(renderLines(m.styles.Mark, seg.Text))
		}
	}

	if width <= 0 {
		return b.String()
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// renderLines styles each line separately so multi-line segments are not
// padded into a block
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
