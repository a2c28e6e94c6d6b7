package refresher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"shopdir/internal"
	"shopdir/internal/config"
	"shopdir/internal/feed"
	"shopdir/internal/storage"
)

type stubLoader struct {
	mu    sync.Mutex
	calls int
}

func (l *stubLoader) LoadDetailed(context.Context) feed.LoadResult {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	return feed.LoadResult{
		TraceID:    "trace",
		Businesses: feed.SampleBusinesses(),
		Source:     "sample",
		Outcome:    internal.FeedSample,
	}
}

func (l *stubLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

type memStore struct {
	mu         sync.Mutex
	businesses []internal.Business
	loads      []internal.FeedLoad
	meta       map[string]string
	failWith   error
}

func (m *memStore) ReplaceBusinesses(b []internal.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.businesses = b
	return nil
}

func (m *memStore) InsertFeedLoad(l internal.FeedLoad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = append(m.loads, l)
	return nil
}

func (m *memStore) SetMetadata(k, v string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.meta == nil {
		m.meta = map[string]string{}
	}
	m.meta[k] = v
	return nil
}

type memMirror struct {
	mu    sync.Mutex
	count int
	err   error
}

func (m *memMirror) ReplaceBusinesses(_ context.Context, b []internal.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count = len(b)
	return m.err
}

func TestRunCycleWithSQLite(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "shopdir.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mirror := &memMirror{}
	cfg := config.Config{OutputDir: dir, RefreshAutoExport: true}
	svc := NewService(&stubLoader{}, db, mirror, cfg, zaptest.NewLogger(t))
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }

	if err := svc.RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}

	stored, err := db.ListBusinesses()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != len(feed.SampleBusinesses()) {
		t.Fatalf("stored=%d", len(stored))
	}
	loads, err := db.ListFeedLoads(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(loads) != 1 || loads[0].Outcome != internal.FeedSample || loads[0].TraceID != "trace" {
		t.Fatalf("loads=%+v", loads)
	}
	last, err := db.GetMetadata(lastLoadKey)
	if err != nil || last == nil || *last != "2026-03-01T08:00:00Z" {
		t.Fatalf("last=%v err=%v", last, err)
	}
	if mirror.count != len(stored) {
		t.Fatalf("mirrored=%d", mirror.count)
	}
	if _, err := os.Stat(filepath.Join(dir, "directory.xlsx")); err != nil {
		t.Fatalf("export missing: %v", err)
	}
}

func TestRunCycleErrors(t *testing.T) {
	store := &memStore{failWith: errors.New("disk full")}
	svc := NewService(&stubLoader{}, store, nil, config.Config{}, nil)
	if err := svc.RunCycle(context.Background()); err == nil {
		t.Fatal("expected store error")
	}

	mirrorErr := errors.New("pg down")
	svc = NewService(&stubLoader{}, &memStore{}, &memMirror{err: mirrorErr}, config.Config{}, nil)
	if err := svc.RunCycle(context.Background()); !errors.Is(err, mirrorErr) {
		t.Fatalf("err=%v", err)
	}
}

type blockingSource struct {
	started chan struct{}
}

func (blockingSource) Name() string { return "blocking" }

func (s blockingSource) Rows(ctx context.Context) ([]internal.RawRow, error) {
	close(s.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRunCycleCancelledKeepsSnapshot(t *testing.T) {
	live := []internal.Business{{ID: "live-1", Name: "Shwe Taung Tea House", Category: internal.CategoryRestaurant}}
	store := &memStore{businesses: live}
	mirror := &memMirror{}
	dir := t.TempDir()

	src := blockingSource{started: make(chan struct{})}
	loader := feed.NewLoaderWithSource(src, nil, zaptest.NewLogger(t))
	svc := NewService(loader, store, mirror, config.Config{OutputDir: dir, RefreshAutoExport: true}, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-src.started
		cancel()
	}()

	if err := svc.RunCycle(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.businesses) != 1 || store.businesses[0].ID != "live-1" {
		t.Fatalf("snapshot replaced: %+v", store.businesses)
	}
	if len(store.loads) != 0 || len(store.meta) != 0 {
		t.Fatalf("loads=%d meta=%v", len(store.loads), store.meta)
	}
	if mirror.count != 0 {
		t.Fatalf("mirrored=%d", mirror.count)
	}
	if _, err := os.Stat(filepath.Join(dir, "directory.xlsx")); !os.IsNotExist(err) {
		t.Fatalf("export written: %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	loader := &stubLoader{}
	store := &memStore{}
	svc := NewService(loader, store, nil, config.Config{RefreshIntervalSec: 3600}, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for loader.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("first cycle never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.loads) != 1 || store.meta[lastLoadKey] == "" {
		t.Fatalf("loads=%d meta=%v", len(store.loads), store.meta)
	}
}
