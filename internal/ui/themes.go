package ui

import "sort"

// Theme is a named palette. Good, Fair and Poor color score tones; Mark
// backs highlighted article text.
type Theme struct {
	Name       string
	Primary    string
	Secondary  string
	Background string
	Foreground string
	Subtle     string
	Good       string
	Fair       string
	Poor       string
	Mark       string
}

// Themes lists the built-in palettes by name
var Themes = map[string]Theme{
	"default": {
		Name:       "default",
		Primary:    "#7D56F4",
		Secondary:  "#04B575",
		Background: "#1A1A1A",
		Foreground: "#FAFAFA",
		Subtle:     "#737373",
		Good:       "#04B575",
		Fair:       "#E5C07B",
		Poor:       "#FF5F56",
		Mark:       "#FDE68A",
	},
	"catppuccin": {
		Name:       "catppuccin",
		Primary:    "#CBA6F7",
		Secondary:  "#89B4FA",
		Background: "#1E1E2E",
		Foreground: "#CDD6F4",
		Subtle:     "#6C7086",
		Good:       "#A6E3A1",
		Fair:       "#F9E2AF",
		Poor:       "#F38BA8",
		Mark:       "#F9E2AF",
	},
	"dracula": {
		Name:       "dracula",
		Primary:    "#BD93F9",
		Secondary:  "#8BE9FD",
		Background: "#282A36",
		Foreground: "#F8F8F2",
		Subtle:     "#6272A4",
		Good:       "#50FA7B",
		Fair:       "#F1FA8C",
		Poor:       "#FF5555",
		Mark:       "#F1FA8C",
	},
	"nord": {
		Name:       "nord",
		Primary:    "#88C0D0",
		Secondary:  "#81A1C1",
		Background: "#2E3440",
		Foreground: "#ECEFF4",
		Subtle:     "#4C566A",
		Good:       "#A3BE8C",
		Fair:       "#EBCB8B",
		Poor:       "#BF616A",
		Mark:       "#EBCB8B",
	},
	"gruvbox": {
		Name:       "gruvbox",
		Primary:    "#FE8019",
		Secondary:  "#83A598",
		Background: "#282828",
		Foreground: "#EBDBB2",
		Subtle:     "#928374",
		Good:       "#B8BB26",
		Fair:       "#FABD2F",
		Poor:       "#FB4934",
		Mark:       "#FABD2F",
	},
}

// GetThemeNames returns the theme names with "default" first
func GetThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		if name != "default" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{"default"}, names...)
}

// themeIndex finds a theme by name, falling back to default
func themeIndex(name string) int {
	for i, n := range GetThemeNames() {
		if n == name {
			return i
		}
	}
	return 0
}
