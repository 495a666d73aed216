package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mediaunmasked/media-unmasked/internal/score"
)

func (m *Model) View() string {
	var content string
	centered := true

	switch m.state {
	case StateInput:
		content = m.inputView()
	case StateAnalyzing:
		content = m.analyzingView()
	case StateResult:
		content = m.resultView()
		centered = false
	case StateBreakdown:
		return m.overlay(m.resultView(), m.breakdownView())
	case StateAdvisory:
		return m.overlay(m.place(m.inputView()), m.advisoryView())
	case StateError:
		content = m.errorView()
	default:
		return "Unknown state"
	}

	if centered {
		content = m.place(content)
	}
	return m.fitHeight(content)
}

func (m *Model) place(content string) string {
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// fitHeight pads output to exactly m.height lines so the alternate screen
// buffer repaints cleanly
func (m *Model) fitHeight(content string) string {
	if m.height <= 0 {
		return content
	}
	rendered := strings.Split(content, "\n")
	for len(rendered) < m.height {
		rendered = append(rendered, "")
	}
	return strings.Join(rendered[:m.height], "\n")
}

// overlay stamps popup over the middle of background
func (m *Model) overlay(background, popup string) string {
	if m.height <= 0 {
		return background + "\n" + popup
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < m.height {
		bgLines = append(bgLines, "")
	}
	bgLines = bgLines[:m.height]

	popupLines := strings.Split(popup, "\n")

	w := max(m.width-1, 1)
	startY := (m.height - len(popupLines)) / 2
	for i, pLine := range popupLines {
		row := startY + i
		if row >= 0 && row < m.height {
			bgLines[row] = lipgloss.PlaceHorizontal(w, lipgloss.Center, pLine)
		}
	}
	return strings.Join(bgLines, "\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m *Model) inputView() string {
	title := m.styles.Title.Render("  Media Unmasked")
	subtitle := m.styles.Help.Render("  Analyze news articles for bias, manipulation and evidence-based reporting")

	aiLine := fmt.Sprintf("  🤖  %s", m.styles.Normal.Render("AI analysis: "+onOff(m.useAI)))
	validateLine := fmt.Sprintf("  🛡   %s", m.styles.Normal.Render("Source check: "+onOff(m.cfg.ValidateSources)))
	themeLine := fmt.Sprintf("  🎨  %s", m.styles.Normal.Render("Theme: "+GetThemeNames()[m.themeIndex]))

	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		title,
		subtitle,
		"",
		"  "+m.input.View(),
		"",
		aiLine,
		validateLine,
		themeLine,
		"",
	)

	if m.statusMessage != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.styles.Error.Render("  ⚠  "+m.statusMessage), "")
	}

	help := m.renderHelpLine([]helpEntry{
		{"enter", "analyze"},
		{"tab", "example"},
		{"ctrl+a", "ai"},
		{"ctrl+t", "theme"},
		{"ctrl+c", "quit"},
	})

	return lipgloss.JoinVertical(lipgloss.Center, "", m.styles.Card.Render(content), "", help)
}

func (m *Model) analyzingView() string {
	stepText := analysisSteps[min(m.step, len(analysisSteps)-1)]
	status := fmt.Sprintf("%s %s", m.spinner.View(), m.styles.Normal.Render(stepText))
	counter := m.styles.Help.Render(fmt.Sprintf("step %d/%d", m.step+1, len(analysisSteps)))

	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Title.Render("Analyzing Article"),
			m.styles.Help.Render(Truncate(m.articleURL, 60)),
			"",
			status,
			"",
			m.progress.View(),
			counter,
		),
	)

	help := m.renderHelpLine([]helpEntry{{"esc", "cancel"}})
	return lipgloss.JoinVertical(lipgloss.Center, "", content, "", help)
}

func (m *Model) errorView() string {
	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Error.Render("✗ Error"),
			"",
			m.styles.Normal.Render(m.errMessage),
		),
	)

	help := m.renderHelpLine([]helpEntry{{"any key", "try again"}})
	return lipgloss.JoinVertical(lipgloss.Center, "", content, "", help)
}

func (m *Model) advisoryView() string {
	body := lipgloss.NewStyle().Width(48)
	return m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render("Unrecognized News Source"),
		"",
		m.styles.Highlight.Render(m.advisoryDomain),
		"",
		body.Render(m.styles.Normal.Render("We currently support major news outlets like BBC, NYTimes, Reuters, and many more trusted sources.")),
		"",
		body.Render(m.styles.Help.Render("Think this source should be added? Let us know via our Contact page!")),
		"",
		m.renderHelpLine([]helpEntry{{"enter/esc", "close"}, {"c", "contact us"}}),
	))
}

func (m *Model) resultView() string {
	parts := []string{m.resultHeader(), m.scoreCards(), m.viewport.View()}

	if m.statusMessage != "" {
		parts = append(parts, m.styles.Help.Render("  "+m.statusMessage))
	}

	parts = append(parts, m.resultFooter())
	content := m.fitHeight(strings.Join(parts, "\n"))

	if m.showHelp {
		return m.overlay(content, m.renderFullHelp())
	}
	return content
}

func (m *Model) resultHeader() string {
	headline := m.articleURL
	if m.response != nil && strings.TrimSpace(m.response.Headline) != "" {
		headline = m.response.Headline
	}

	left := m.styles.HelpKey.Render("Media Unmasked")
	right := m.styles.HelpDesc.Render("no score")
	if m.response.HasMediaScore() {
		composite := m.scores.Composite()
		right = m.styles.Tone(score.ToneFor(composite)).Render(fmt.Sprintf("%.0f%%", composite)) +
			" " + m.styles.Normal.Render(score.Rating(composite))
		if reported, ok := score.ReportedFor(m.response.MediaScore); ok {
			right += m.styles.HelpDesc.Render("  service " + reported.String())
		}
	}

	gap := ""
	if m.width > 0 {
		if n := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4; n > 0 {
			gap = strings.Repeat(" ", n)
		}
	}

	maxWidth := max(m.width-4, 20)
	title := m.styles.Highlight.Render(Truncate(headline, maxWidth))
	return m.styles.HeaderBar.Width(max(m.width-1, 0)).Render(left + gap + right + "\n" + title)
}

// scoreCards renders one card per sub-analysis; the selected lens is framed
// in the primary color
func (m *Model) scoreCards() string {
	if !m.response.HasMediaScore() {
		return m.styles.Help.Render("  The service returned no media score for this article.")
	}

	cardWidth := 24
	if m.width > 0 {
		cardWidth = max((m.width-10)/4, 18)
	}

	cards := make([]string, 0, len(score.Lenses))
	for i, line := range score.Breakdown(m.scores) {
		border := lipgloss.Color(m.styles.theme.Subtle)
		if line.Lens == m.lens {
			border = lipgloss.Color(m.styles.theme.Primary)
		}
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(cardWidth)

		title := m.styles.HelpKey.Render(fmt.Sprintf("%d ", i+1)) +
			m.styles.Normal.Render(Truncate(line.Lens.Title(), cardWidth-4))
		tone := m.styles.Tone(line.Tone)
		cards = append(cards, style.Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			tone.Render(fmt.Sprintf("%.0f%%", line.Quality)),
			tone.Render(Truncate(line.Band.Label, cardWidth-2)),
		)))
	}

	if m.width > 0 && 4*(cardWidth+2) > m.width {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3]),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) resultFooter() string {
	lensName := "none"
	if m.lens != score.LensNone {
		lensName = m.lens.String()
	}
	scroll := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)

	line1 := m.renderHelpLine([]helpEntry{
		{"1-4", "highlight"},
		{"0", "clear"},
		{"j/k", "scroll"},
		{"lens", lensName},
		{"", scroll},
	})
	line2 := m.renderHelpLine([]helpEntry{
		{"b", "breakdown"},
		{"c", "copy"},
		{"o", "open"},
		{"n", "new"},
		{"?", "help"},
		{"ctrl+c", "quit"},
	})
	return m.styles.FooterBar.Width(max(m.width-1, 0)).Render(line1 + "\n" + line2)
}

// resizeViewport gives the article all rows not taken by the result chrome
func (m *Model) resizeViewport() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.viewport.Width = max(m.width-2, 20)
	if m.response == nil {
		return
	}

	chrome := lipgloss.Height(m.resultHeader()) + lipgloss.Height(m.scoreCards()) + lipgloss.Height(m.resultFooter()) + 1
	m.viewport.Height = max(m.height-chrome, 3)
	m.refreshArticle()
}

// Help rendering

type helpEntry struct {
	key  string
	desc string
}

func (m *Model) renderHelpLine(entries []helpEntry) string {
	var parts []string
	sep := m.styles.HelpSep.Render(" · ")
	for _, e := range entries {
		if e.key == "" {
			parts = append(parts, m.styles.HelpDesc.Render(e.desc))
			continue
		}
		parts = append(parts, m.styles.HelpKey.Render(e.key)+" "+m.styles.HelpDesc.Render(e.desc))
	}
	return strings.Join(parts, sep)
}

func (m *Model) renderFullHelp() string {
	sections := []struct {
		title   string
		entries []helpEntry
	}{
		{"Highlighting", []helpEntry{
			{"1", "headline vs content"},
			{"2", "evidence-based reporting"},
			{"3", "manipulation"},
			{"4", "bias"},
			{"0", "clear highlighting"},
		}},
		{"Article", []helpEntry{
			{"j / ↓", "scroll down"},
			{"k / ↑", "scroll up"},
			{"pgup/pgdn", "page"},
			{"ctrl+u/d", "half page"},
		}},
		{"Operations", []helpEntry{
			{"b", "score breakdown"},
			{"c", "copy summary to clipboard"},
			{"o", "open article in browser"},
			{"n / esc", "analyze another article"},
		}},
		{"General", []helpEntry{
			{"?", "toggle this help"},
			{"ctrl+c", "quit"},
		}},
	}

	var lines []string
	for _, sec := range sections {
		lines = append(lines, m.styles.HelpKey.Render("  "+sec.title))
		for _, e := range sec.entries {
			lines = append(lines, fmt.Sprintf("    %s  %s",
				m.styles.HelpKey.Render(fmt.Sprintf("%-12s", e.key)),
				m.styles.HelpDesc.Render(e.desc),
			))
		}
	}

	lines = append(lines, "", m.renderHelpLine([]helpEntry{{"any key", "close"}}))
	return m.styles.Card.Render(strings.Join(lines, "\n"))
}
