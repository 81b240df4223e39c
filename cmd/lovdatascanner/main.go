package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"LovdataScanner/internal/app"
	"LovdataScanner/internal/config"
	"LovdataScanner/internal/logging"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "lovdatascanner",
		Short:   "Lovdata legal-force scanner and ledger sync",
		Long:    "Downloads the Lovdata public-data packages, classifies each law's\nlegal-force status and reconciles the result into the ledger spreadsheet.",
		Version: version,
	}
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one scrape run (or keep running with --watch)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}

			if watch {
				return application.Watch(ctx)
			}

			summary, err := application.RunOnce(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("laws kept:        %d\n", summary.LawsKept)
			fmt.Printf("rows written:     %d\n", summary.RowsWritten)
			fmt.Printf("ambiguous marked: %d\n", summary.AmbiguousMarked)
			fmt.Printf("stale marked:     %d\n", summary.StaleMarked)
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep running on the configured schedule")
	return cmd
}
