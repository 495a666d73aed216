package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mediaunmasked/media-unmasked/internal/score"
)

// Styles holds all the UI styles
type Styles struct {
	theme Theme

	Title     lipgloss.Style
	Normal    lipgloss.Style
	Help      lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	HelpSep  lipgloss.Style

	Card      lipgloss.Style
	Border    lipgloss.Style
	HeaderBar lipgloss.Style
	FooterBar lipgloss.Style

	Good lipgloss.Style
	Fair lipgloss.Style
	Poor lipgloss.Style

	// Mark styles highlighted article text; MarkStrong is used where
	// highlights overlap
	Mark       lipgloss.Style
	MarkStrong lipgloss.Style
}

// NewStyles builds the style set for a theme
func NewStyles(theme Theme) Styles {
	return Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Foreground)),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true),

		Highlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Secondary)),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Primary)).
			Foreground(lipgloss.Color(theme.Background)).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Poor)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Good)),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)),

		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),

		HelpSep: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Primary)).
			Padding(1, 3),

		Border: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(theme.Subtle)).
			Padding(1, 2),

		HeaderBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color(theme.Subtle)).
			Padding(0, 1),

		FooterBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color(theme.Subtle)).
			Padding(0, 1),

		Good: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Good)),
		Fair: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Fair)),
		Poor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Poor)),

		Mark: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Mark)).
			Foreground(lipgloss.Color("#000000")),
		MarkStrong: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Poor)).
			Foreground(lipgloss.Color("#000000")).
			Bold(true),
	}
}

// DefaultStyles returns the default style set
func DefaultStyles() Styles {
	return NewStyles(Themes["default"])
}

// Tone returns the style for a score tone
func (s Styles) Tone(t score.Tone) lipgloss.Style {
	switch t {
	case score.ToneGood:
		return s.Good
	case score.ToneFair:
		return s.Fair
	default:
		return s.Poor
	}
}
