package feed

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"shopdir/internal"
	"shopdir/internal/config"
	"shopdir/internal/logging"
	"shopdir/internal/observability"
	"shopdir/internal/pipeline"
)

const sampleSourceName = "sample"

type LoadResult struct {
	TraceID    string
	Businesses []internal.Business
	Source     string
	Outcome    internal.FeedOutcome
	Reason     string
	Duration   time.Duration
}

// Record converts the result into the row persisted for load history.
func (r LoadResult) Record() internal.FeedLoad {
	return internal.FeedLoad{
		TraceID:    r.TraceID,
		Source:     r.Source,
		Outcome:    r.Outcome,
		Reason:     r.Reason,
		Records:    len(r.Businesses),
		DurationMs: r.Duration.Milliseconds(),
	}
}

// Loader makes one best-effort attempt per call and never fails: any problem
// with the source yields the sample directory.
type Loader struct {
	source      Source
	normalizer  *pipeline.Normalizer
	logger      *zap.Logger
	sampleDelay time.Duration
}

// NewLoader picks the source from configuration. A missing sheet id means no
// remote source.
func NewLoader(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Loader, error) {
	normalizer, err := NewNormalizer(cfg)
	if err != nil {
		return nil, err
	}

	var source Source
	if strings.TrimSpace(cfg.FeedSheetID) != "" {
		switch cfg.FeedSource {
		case "", "csv":
			source = NewCSVExportSource(cfg.FeedURL(), time.Duration(cfg.FeedTimeoutMs)*time.Millisecond)
		case "sheets":
			sheetsSource, err := NewSheetsSource(ctx, cfg)
			if err != nil {
				return nil, err
			}
			source = sheetsSource
		default:
			return nil, fmt.Errorf("unsupported feed source: %s", cfg.FeedSource)
		}
	}

	loader := NewLoaderWithSource(source, normalizer, logger)
	loader.sampleDelay = time.Duration(cfg.FeedSampleDelayMs) * time.Millisecond
	return loader, nil
}

func NewLoaderWithSource(source Source, normalizer *pipeline.Normalizer, logger *zap.Logger) *Loader {
	if normalizer == nil {
		normalizer = pipeline.NewNormalizer(pipeline.NormalizerOptions{DefaultRating: 4.5, DefaultReviews: 10})
	}
	return &Loader{source: source, normalizer: normalizer, logger: logging.OrNop(logger)}
}

// NewNormalizer builds the row normalizer configured for the feed.
func NewNormalizer(cfg config.Config) (*pipeline.Normalizer, error) {
	opts := pipeline.NormalizerOptions{
		DefaultRating:  cfg.FeedDefaultRating,
		DefaultReviews: cfg.FeedDefaultReviews,
		StableIDs:      cfg.FeedStableIDs,
	}
	if strings.TrimSpace(cfg.CategoryRulesPath) != "" {
		rules, err := pipeline.LoadCategoryRules(cfg.CategoryRulesPath)
		if err != nil {
			return nil, err
		}
		opts.Categories = &rules
	}
	return pipeline.NewNormalizer(opts), nil
}

func (l *Loader) Load(ctx context.Context) []internal.Business {
	return l.LoadDetailed(ctx).Businesses
}

func (l *Loader) LoadDetailed(ctx context.Context) LoadResult {
	started := time.Now()
	res := l.load(ctx)
	res.TraceID = newTraceID()
	res.Duration = time.Since(started)

	observability.FeedLoadsTotal.WithLabelValues(string(res.Outcome)).Inc()
	observability.FeedRecords.Set(float64(len(res.Businesses)))

	fields := []zap.Field{
		zap.String("trace_id", res.TraceID),
		zap.String("source", res.Source),
		zap.Int("records", len(res.Businesses)),
		zap.Duration("duration", res.Duration),
	}
	if res.Reason != "" {
		l.logger.Warn("feed load fell back to sample directory", append(fields, zap.String("reason", res.Reason))...)
	} else {
		l.logger.Info("feed loaded", fields...)
	}
	return res
}

func (l *Loader) load(ctx context.Context) LoadResult {
	if l.source == nil {
		l.waitSampleDelay(ctx)
		return LoadResult{Businesses: SampleBusinesses(), Source: sampleSourceName, Outcome: internal.FeedSample}
	}

	rows, err := l.source.Rows(ctx)
	if err == nil && len(rows) == 0 {
		err = ErrEmptyFeed
	}
	if err != nil {
		return LoadResult{
			Businesses: SampleBusinesses(),
			Source:     l.source.Name(),
			Outcome:    internal.FeedSample,
			Reason:     err.Error(),
		}
	}

	return LoadResult{
		Businesses: l.normalizer.NormalizeRows(rows),
		Source:     l.source.Name(),
		Outcome:    internal.FeedLive,
	}
}

func (l *Loader) waitSampleDelay(ctx context.Context) {
	if l.sampleDelay <= 0 {
		return
	}
	t := time.NewTimer(l.sampleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func newTraceID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
