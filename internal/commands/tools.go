package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/toolcall"
)

func newToolsCommand() *cobra.Command {
	var chartPath string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Run the JSON-RPC tool-call server on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			// Responses own stdout; logs go to stderr.
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			seed := ledger.DefaultChart()
			if path, ok := seedFromFlags(chartPath, cfg.ChartPath); ok {
				seed, err = config.LoadChart(path)
				if err != nil {
					return err
				}
			}

			book, err := ledger.New(seed)
			if err != nil {
				return fmt.Errorf("seeding ledger: %w", err)
			}

			var in io.Reader = cmd.InOrStdin()
			var out io.Writer = cmd.OutOrStdout()
			return toolcall.NewServer(book, logger, in, out).Run()
		},
	}

	cmd.Flags().StringVar(&chartPath, "chart", "", "YAML chart-of-accounts seed file")

	return cmd
}
