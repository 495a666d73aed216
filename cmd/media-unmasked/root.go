package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mediaunmasked/media-unmasked/internal/analysis"
	"github.com/mediaunmasked/media-unmasked/internal/config"
	"github.com/mediaunmasked/media-unmasked/internal/ui"
)

var (
	debug       bool
	environment string
	cfg         *config.Config
	logger      *slog.Logger
	cliVersion  = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "media-unmasked [url]",
	Short: "Analyze news articles for bias and manipulation",
	Long: `media-unmasked sends a news article URL to the Media Unmasked analysis
service and shows how the article scores on headline accuracy, evidence-based
reporting, manipulative language and bias.

Without a subcommand it opens the interactive terminal UI. Passing a URL starts
the analysis right away.

Example usage:
  media-unmasked                                  # Open the terminal UI
  media-unmasked https://www.bbc.com/news/...     # Open the UI and analyze a URL
  media-unmasked analyze https://apnews.com/...   # Print a report
  media-unmasked analyze --json https://...       # Print the raw analysis
  media-unmasked configure                        # Edit saved preferences`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runTUI,
}

func execute() error {
	return rootCmd.Execute()
}

func setVersion(v string) {
	cliVersion = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging (to a file while the UI is open)")
	rootCmd.PersistentFlags().StringVar(&environment, "env", "", "analysis service environment: production or development")
}

// initConfig loads the config file and environment, then applies flags
func initConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if environment != "" {
		cfg.Environment = environment
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if debug {
		cfg.Debug = true
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	logger.Debug("configuration loaded",
		"path", config.Path(),
		"environment", cfg.Environment,
		"base_url", cfg.BaseURL(),
		"validate_sources", cfg.ValidateSources,
	)
	return nil
}

func newClient(l *slog.Logger) (*analysis.Client, error) {
	return analysis.NewClient(cfg.BaseURL(),
		analysis.WithTimeout(cfg.Timeout()),
		analysis.WithLogger(l),
	)
}

// tuiLogger writes to a log file when debugging, since stderr belongs to
// the terminal UI. The returned closer is never nil.
func tuiLogger() (*slog.Logger, io.Closer, error) {
	if !cfg.Debug {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}

	dir, err := config.EnsureConfigDir()
	if err != nil {
		return nil, nil, err
	}
	f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "media-unmasked")
	if err != nil {
		return nil, nil, fmt.Errorf("opening debug log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	l, closer, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := newClient(l)
	if err != nil {
		return err
	}

	m := ui.NewModel(cfg, client, ui.WithLogger(l))
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if len(args) == 1 {
		go p.Send(ui.SubmitURLMsg{URL: args[0]})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
