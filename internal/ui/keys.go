package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application
type KeyMap struct {
	Submit     key.Binding
	Examples   key.Binding
	ToggleAI   key.Binding
	CycleTheme key.Binding
	Back       key.Binding
	Quit       key.Binding
	Help       key.Binding

	Lens1     key.Binding
	Lens2     key.Binding
	Lens3     key.Binding
	Lens4     key.Binding
	ClearLens key.Binding
	Breakdown key.Binding
	Copy      key.Binding
	Open      key.Binding
	New       key.Binding
	Contact   key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "analyze"),
		),
		Examples: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "example url"),
		),
		ToggleAI: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "toggle ai"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Lens1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "headline"),
		),
		Lens2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "evidence"),
		),
		Lens3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "manipulation"),
		),
		Lens4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "bias"),
		),
		ClearLens: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "no highlight"),
		),
		Breakdown: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "breakdown"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy summary"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open article"),
		),
		New: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "new analysis"),
		),
		Contact: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "contact us"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdn", "page down"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
	}
}

// Keys returns the keys as a slice for matching
func (k KeyMap) Keys() []key.Binding {
	return []key.Binding{
		k.Submit, k.Examples, k.ToggleAI, k.CycleTheme, k.Back, k.Quit, k.Help,
		k.Lens1, k.Lens2, k.Lens3, k.Lens4, k.ClearLens, k.Breakdown, k.Copy,
		k.Open, k.New, k.Contact, k.Up, k.Down, k.PageUp, k.PageDown,
		k.HalfUp, k.HalfDown,
	}
}
