package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopdir/internal"
	"shopdir/internal/config"
	"shopdir/internal/feed"
	"shopdir/internal/logging"
	"shopdir/internal/storage"
)

type app struct {
	cfg    config.Config
	logger *zap.Logger
}

var (
	state    app
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "shopdir",
	Short:         "Taungoo business directory: feed loading, search, cart and receipts",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		state = app{cfg: cfg, logger: logger}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if state.logger != nil {
			_ = state.logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")

	rootCmd.AddCommand(
		feedLoadCmd,
		feedImportCmd,
		feedExportCmd,
		feedHistoryCmd,
		directorySummaryCmd,
		searchCmd,
		cartAddCmd,
		cartUpdateCmd,
		cartRemoveCmd,
		cartShowCmd,
		cartClearCmd,
		orderCheckoutCmd,
		orderShowCmd,
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openDB() (*storage.DB, error) {
	return storage.Open(state.cfg.DBPath)
}

// currentDirectory returns the last stored snapshot, loading the feed once
// when nothing has been stored yet.
func currentDirectory(ctx context.Context, db *storage.DB) ([]internal.Business, error) {
	businesses, err := db.ListBusinesses()
	if err != nil {
		return nil, err
	}
	if len(businesses) > 0 {
		return businesses, nil
	}

	loader, err := feed.NewLoader(ctx, state.cfg, state.logger)
	if err != nil {
		return nil, err
	}
	res := loader.LoadDetailed(ctx)
	if err := storeLoad(db, res); err != nil {
		return nil, err
	}
	return res.Businesses, nil
}

func storeLoad(db *storage.DB, res feed.LoadResult) error {
	if err := db.ReplaceBusinesses(res.Businesses); err != nil {
		return err
	}
	return db.InsertFeedLoad(res.Record())
}

func requireFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
