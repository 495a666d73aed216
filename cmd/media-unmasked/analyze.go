package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mediaunmasked/media-unmasked/internal/analysis"
	"github.com/mediaunmasked/media-unmasked/internal/report"
	"github.com/mediaunmasked/media-unmasked/internal/score"
	"github.com/mediaunmasked/media-unmasked/internal/source"
	"github.com/mediaunmasked/media-unmasked/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze one article and print the report",
	Long: `Analyze one article and print its Media Unmasked Score, the per-analysis
breakdown and the flagged phrases.

With --lens the article text is printed with the phrases behind that analysis
highlighted. Lenses: headline, evidence, manipulation, bias.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Bool("json", false, "print the raw analysis as JSON")
	analyzeCmd.Flags().Bool("ai", false, "ask the service for AI analysis (default from config)")
	analyzeCmd.Flags().Bool("no-validate", false, "skip the recognized news source check")
	analyzeCmd.Flags().String("lens", "", "highlight the article for one analysis")
	analyzeCmd.Flags().Bool("article", false, "print the article text")
	analyzeCmd.Flags().Bool("no-color", false, "disable colored output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noValidate, _ := cmd.Flags().GetBool("no-validate")
	lensName, _ := cmd.Flags().GetString("lens")
	showArticle, _ := cmd.Flags().GetBool("article")
	noColor, _ := cmd.Flags().GetBool("no-color")

	useAI := cfg.UseAI
	if cmd.Flags().Changed("ai") {
		useAI, _ = cmd.Flags().GetBool("ai")
	}

	lens, err := score.ParseLens(lensName)
	if err != nil {
		return err
	}

	articleURL := source.Normalize(args[0])
	if articleURL == "" {
		return errors.New("please enter a news article URL")
	}

	if cfg.ValidateSources && !noValidate {
		checker := source.NewChecker(cfg.ExtraDomains...)
		if err := checker.Check(articleURL); err != nil {
			return fmt.Errorf("%w; use --no-validate to analyze it anyway, or ask for it to be added at %s", err, ui.ContactURL)
		}
	}

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	p := report.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), report.ResolveColors(!noColor))
	if !jsonOutput {
		p.Info("Analyzing %s", articleURL)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	resp, err := client.Analyze(ctx, articleURL, useAI)
	if err != nil {
		if ctx.Err() != nil {
			return errors.New("analysis cancelled")
		}
		logger.Debug("analysis failed", "url", articleURL, "error", err)
		return errors.New(analysis.Message(err))
	}

	if jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), resp)
	}

	return report.Write(p, articleURL, resp, report.Options{
		Lens:        lens,
		ShowArticle: showArticle,
	})
}
