package commands

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/server"
)

func newServeCommand() *cobra.Command {
	var addr string
	var chartPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API and web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if addr != "" {
				cfg.Addr = addr
			}

			logger := server.NewLogger(cfg.LogFormat)

			seed := ledger.DefaultChart()
			if path, ok := seedFromFlags(chartPath, cfg.ChartPath); ok {
				seed, err = config.LoadChart(path)
				if err != nil {
					return err
				}
				logger.Info("loaded chart of accounts", slog.String("path", path), slog.Int("accounts", len(seed)))
			}

			book, err := ledger.New(seed)
			if err != nil {
				return fmt.Errorf("seeding ledger: %w", err)
			}

			srv := &http.Server{
				Addr:         cfg.Addr,
				Handler:      server.New(cfg, logger, book).Router(),
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
			}
			logger.Info("listening", slog.String("addr", cfg.Addr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides TALLYBOOK_ADDR)")
	cmd.Flags().StringVar(&chartPath, "chart", "", "YAML chart-of-accounts seed file")

	return cmd
}
