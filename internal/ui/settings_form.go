package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mediaunmasked/media-unmasked/internal/config"
)

// SettingsForm edits the preferences stored in the config file using Huh
type SettingsForm struct {
	form   *huh.Form
	cfg    *config.Config
	result *SettingsResult
}

// SettingsResult contains the edited values
type SettingsResult struct {
	Environment     string
	UseAI           bool
	ValidateSources bool
	Timeout         string
	Theme           string
}

// NewSettingsForm creates a settings form prefilled from cfg
func NewSettingsForm(cfg *config.Config) *SettingsForm {
	result := &SettingsResult{
		Environment:     cfg.Environment,
		UseAI:           cfg.UseAI,
		ValidateSources: cfg.ValidateSources,
		Timeout:         strconv.Itoa(cfg.RequestTimeout),
		Theme:           GetThemeNames()[themeIndex(cfg.Theme)],
	}

	themeOptions := make([]huh.Option[string], 0, len(Themes))
	for _, name := range GetThemeNames() {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Analysis service").
				Options(
					huh.NewOption("Production 🌐", config.EnvProduction),
					huh.NewOption("Development 🛠", config.EnvDevelopment),
				).
				Value(&result.Environment),

			huh.NewConfirm().
				Title("Use AI analysis?").
				Value(&result.UseAI),

			huh.NewConfirm().
				Title("Only analyze recognized news sources?").
				Value(&result.ValidateSources),

			huh.NewInput().
				Title("Request timeout (seconds)").
				Placeholder("120").
				Validate(validateTimeout).
				Value(&result.Timeout),

			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&result.Theme),
		),
	)

	return &SettingsForm{
		form:   form,
		cfg:    cfg,
		result: result,
	}
}

func validateTimeout(s string) error {
	secs, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number of seconds")
	}
	if secs < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

// Run executes the form and returns the result
func (sf *SettingsForm) Run() (*SettingsResult, error) {
	err := sf.form.Run()
	if err != nil {
		return nil, err
	}
	return sf.result, nil
}

// ApplyResult copies the edited values onto the config
func (sf *SettingsForm) ApplyResult() error {
	if sf.cfg == nil || sf.result == nil {
		return nil
	}
	if err := validateTimeout(sf.result.Timeout); err != nil {
		return err
	}
	secs, _ := strconv.Atoi(strings.TrimSpace(sf.result.Timeout))

	sf.cfg.Environment = sf.result.Environment
	sf.cfg.UseAI = sf.result.UseAI
	sf.cfg.ValidateSources = sf.result.ValidateSources
	sf.cfg.RequestTimeout = secs
	sf.cfg.Theme = sf.result.Theme
	return nil
}
