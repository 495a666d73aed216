package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mediaunmasked/media-unmasked/internal/config"
	"github.com/mediaunmasked/media-unmasked/internal/report"
	"github.com/mediaunmasked/media-unmasked/internal/ui"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Edit saved preferences",
	Long: `Edit the preferences stored in the config file: the analysis service
environment, AI analysis, the news source check, the request timeout and the
color theme.

Environment variables (MEDIA_UNMASKED_*) still override saved values.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().Bool("path", false, "print the config file location and exit")
	configureCmd.Flags().Bool("init", false, "write a commented example config if none exists")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	showPath, _ := cmd.Flags().GetBool("path")
	initOnly, _ := cmd.Flags().GetBool("init")

	if showPath {
		fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		return nil
	}

	p := report.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), report.ResolveColors(true))

	if initOnly {
		if err := config.SaveExampleConfig(); err != nil {
			return fmt.Errorf("writing example config: %w", err)
		}
		p.Success("Config ready at %s", config.Path())
		return nil
	}

	form := ui.NewSettingsForm(cfg)
	if _, err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			p.Warning("Configuration unchanged")
			return nil
		}
		return err
	}
	if err := form.ApplyResult(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	p.Success("Saved %s", config.Path())
	return nil
}
