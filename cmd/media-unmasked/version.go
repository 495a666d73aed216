package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"
)

var (
	commit    = "unknown"
	buildTime = "unknown"
)

type versionInfo struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Built       string `json:"built"`
	GoVersion   string `json:"goVersion"`
	Platform    string `json:"platform"`
	Environment string `json:"environment"`
	Service     string `json:"service"`
}

// currentVersion fills commit and build time from the embedded VCS stamp
// when they were not set with ldflags
func currentVersion() versionInfo {
	info := versionInfo{
		Version:   cliVersion,
		Commit:    commit,
		Built:     buildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := rdebug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "unknown":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.Built == "unknown":
				info.Built = s.Value
			}
		}
	}
	if cfg != nil {
		info.Environment = cfg.Environment
		info.Service = cfg.BaseURL()
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and analysis service information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, _ := cmd.Flags().GetBool("short")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		w := cmd.OutOrStdout()

		if short {
			fmt.Fprintln(w, cliVersion)
			return nil
		}

		info := currentVersion()
		if jsonOutput {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Fprintf(w, "media-unmasked %s (%s, built %s)\n", info.Version, info.Commit, info.Built)
		fmt.Fprintf(w, "  %s on %s\n", info.GoVersion, info.Platform)
		if info.Service != "" {
			fmt.Fprintf(w, "  service: %s (%s)\n", info.Service, info.Environment)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("short", false, "print version string only")
	versionCmd.Flags().Bool("json", false, "output as JSON")
}
