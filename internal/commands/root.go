package commands

import (
	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tallybook",
		Short:   "Double-entry bookkeeping engine",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newToolsCommand())
	rootCmd.AddCommand(newChartCommand())

	return rootCmd
}

// seedFromFlags resolves the chart seed: an explicit --chart file wins,
// then the TALLYBOOK_CHART path, then the built-in chart.
func seedFromFlags(chartPath, cfgChartPath string) (string, bool) {
	if chartPath != "" {
		return chartPath, true
	}
	if cfgChartPath != "" {
		return cfgChartPath, true
	}
	return "", false
}
