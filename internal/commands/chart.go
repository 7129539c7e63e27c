package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/ledger"
)

func newChartCommand() *cobra.Command {
	var writePath string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print or export the built-in chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := ledger.DefaultChart()
			if writePath != "" {
				if err := config.SaveChart(writePath, seed); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d accounts to %s\n", len(seed), writePath)
				return nil
			}
			for _, a := range seed {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-25s %-10s %s\n", a.Code, a.Name, a.Type, a.Category)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&writePath, "write", "", "write the chart to a YAML file instead of printing")

	return cmd
}
