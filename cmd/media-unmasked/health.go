package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mediaunmasked/media-unmasked/internal/report"
)

const healthTimeout = 10 * time.Second

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the analysis service is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		noColor, _ := cmd.Flags().GetBool("no-color")
		p := report.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), report.ResolveColors(!noColor))

		client, err := newClient(logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
		defer cancel()

		if err := client.Health(ctx); err != nil {
			p.Error("%s is not healthy", client.BaseURL())
			return err
		}
		p.Success("%s is up (%s)", client.BaseURL(), cfg.Environment)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().Bool("no-color", false, "disable colored output")
}
