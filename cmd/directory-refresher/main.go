package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shopdir/internal/config"
	"shopdir/internal/feed"
	"shopdir/internal/logging"
	"shopdir/internal/observability"
	"shopdir/internal/refresher"
	"shopdir/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	logger, err := logging.New(cfg.LogLevel)
	must(err)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	loader, err := feed.NewLoader(ctx, cfg, logger)
	must(err)

	var mirror refresher.Mirror
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		pg, err := storage.OpenMirror(ctx, cfg.DatabaseURL)
		must(err)
		defer pg.Close()
		mirror = pg
	}

	if cfg.MetricsPort != "" {
		srv, err := observability.Start(cfg.MetricsPort, logger)
		must(err)
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("directory refresher started",
		zap.Int("interval_sec", cfg.RefreshIntervalSec),
		zap.Bool("mirror", mirror != nil),
		zap.Bool("auto_export", cfg.RefreshAutoExport),
	)

	svc := refresher.NewService(loader, db, mirror, cfg, logger)
	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
