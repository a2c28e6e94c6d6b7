package refresher

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shopdir/internal"
	"shopdir/internal/config"
	"shopdir/internal/feed"
	"shopdir/internal/logging"
	"shopdir/internal/pipeline"
)

const lastLoadKey = "last_feed_load_at"

type Loader interface {
	LoadDetailed(ctx context.Context) feed.LoadResult
}

type Store interface {
	ReplaceBusinesses(businesses []internal.Business) error
	InsertFeedLoad(load internal.FeedLoad) error
	SetMetadata(key, value string) error
}

type Mirror interface {
	ReplaceBusinesses(ctx context.Context, businesses []internal.Business) error
}

type Service struct {
	loader Loader
	db     Store
	mirror Mirror
	cfg    config.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a refresher. mirror may be nil when no Postgres is
// configured.
func NewService(loader Loader, db Store, mirror Mirror, cfg config.Config, logger *zap.Logger) *Service {
	return &Service{
		loader: loader,
		db:     db,
		mirror: mirror,
		cfg:    cfg,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.RefreshIntervalSec) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	for {
		if err := s.RunCycle(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("refresh cycle failed", zap.Error(err))
		}

		t := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// RunCycle performs one load and publishes the result everywhere it is
// configured to go.
func (s *Service) RunCycle(ctx context.Context) error {
	res := s.loader.LoadDetailed(ctx)
	// A cancelled load carries the sample directory; it must not replace the
	// stored snapshot.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.db.ReplaceBusinesses(res.Businesses); err != nil {
		return err
	}
	if err := s.db.InsertFeedLoad(res.Record()); err != nil {
		return err
	}
	if err := s.db.SetMetadata(lastLoadKey, s.now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.mirror != nil {
		g.Go(func() error {
			return s.mirror.ReplaceBusinesses(gctx, res.Businesses)
		})
	}
	if s.cfg.RefreshAutoExport {
		g.Go(func() error {
			return pipeline.ExportBusinessesToXLSX(res.Businesses, s.exportPath())
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info("refresh cycle done",
		zap.String("trace_id", res.TraceID),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("records", len(res.Businesses)),
		zap.Bool("mirrored", s.mirror != nil),
	)
	return nil
}

func (s *Service) exportPath() string {
	return filepath.Join(s.cfg.OutputDir, "directory.xlsx")
}
