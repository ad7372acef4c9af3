package loader

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/trackboard/trackboard/internal/cache"
	"github.com/trackboard/trackboard/internal/storage"
	ltime "github.com/trackboard/trackboard/pkg/time"
	"github.com/trackboard/trackboard/pkg/workpool"
)

// Loader is the query surface over the blocking storage backend. Every
// storage call runs on a fixed-size worker pool so storage latency never
// stalls the caller count beyond the pool bound, and structural metadata
// (projects, runs, configs, metric names) is served from a TTL cache.
// Raw metric values and system logs always hit storage fresh: they are the
// thing the operator is actively watching.
//
// A storage failure propagates to the caller unretried; per-run tolerance is
// the call site's responsibility.
type Loader struct {
	cfg   *Config
	store storage.Store
	pool  *workpool.Pool

	// The cache itself is unsynchronized; mu confines it.
	mu    sync.Mutex
	cache *cache.Cache[any]
}

func NewLoader(ctx context.Context, cfg *Config, store storage.Store, watch ltime.Watch) (*Loader, error) {
	poolCfg, err := workpool.NewConfig(cfg.MaxWorkers, cfg.QueueSize)
	if err != nil {
		return nil, err
	}
	pool := workpool.NewPool(ctx, poolCfg)
	pool.Start()

	return &Loader{
		cfg:   cfg,
		store: store,
		pool:  pool,
		cache: cache.New[any](cfg.CacheTTL, watch),
	}, nil
}

func (l *Loader) Projects(ctx context.Context) ([]string, error) {
	return cached(ctx, l, "projects", func(ctx context.Context) ([]string, error) {
		return l.store.ListProjects(ctx)
	})
}

func (l *Loader) Runs(ctx context.Context, project string) ([]string, error) {
	return cached(ctx, l, "runs:"+project, func(ctx context.Context) ([]string, error) {
		return l.store.ListRuns(ctx, project)
	})
}

func (l *Loader) AllRunConfigs(ctx context.Context, project string) (map[string]storage.RunConfig, error) {
	return cached(ctx, l, "run_configs:"+project, func(ctx context.Context) (map[string]storage.RunConfig, error) {
		return l.store.AllRunConfigs(ctx, project)
	})
}

func (l *Loader) MetricNames(ctx context.Context, project string, run string) ([]string, error) {
	return cached(ctx, l, "metrics:"+project+":"+run, func(ctx context.Context) ([]string, error) {
		return l.store.MetricNames(ctx, project, run)
	})
}

// MetricValues is never cached.
func (l *Loader) MetricValues(ctx context.Context, project string, run string, metric string) ([]storage.Sample, error) {
	return fresh(ctx, l, func(ctx context.Context) ([]storage.Sample, error) {
		return l.store.MetricValues(ctx, project, run, metric)
	})
}

// SystemLogs is never cached.
func (l *Loader) SystemLogs(ctx context.Context, project string, run string) ([]storage.SystemRecord, error) {
	return fresh(ctx, l, func(ctx context.Context) ([]storage.SystemRecord, error) {
		return l.store.SystemLogs(ctx, project, run)
	})
}

// InvalidateCache drops cached entries whose key contains pattern, or
// everything when pattern is empty. This is the mechanism behind a manual
// refresh.
func (l *Loader) InvalidateCache(pattern string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if pattern == "" {
		l.cache.Clear()
		return
	}
	l.cache.InvalidatePattern(pattern)
}

// Shutdown releases the worker pool. In-flight work may be abandoned, which
// is safe: every operation is read-only and idempotent.
func (l *Loader) Shutdown() error {
	l.pool.Finish()
	return nil
}

// cached serves key from the cache when fresh, otherwise fetches through the
// pool and stores the result.
func cached[T any](ctx context.Context, l *Loader, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	if raw, ok := l.cache.Get(key); ok {
		l.mu.Unlock()
		return raw.(T), nil
	}
	l.mu.Unlock()

	value, err := fresh(ctx, l, fetch)
	if err != nil {
		return value, err
	}

	l.mu.Lock()
	l.cache.Set(key, value)
	l.mu.Unlock()
	log.Debugf("cached %s", key)
	return value, nil
}

// fresh runs fetch on the worker pool and waits for it.
func fresh[T any](ctx context.Context, l *Loader, fetch func(ctx context.Context) (T, error)) (T, error) {
	return workpool.Run(l.pool, ctx, fetch).Wait(ctx)
}
