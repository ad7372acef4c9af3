package loader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackboard/trackboard/internal/storage"
	ltime "github.com/trackboard/trackboard/pkg/time"
)

func newTestLoader(t *testing.T) (*Loader, *storage.StoreMock, *ltime.TestingWatch) {
	mock := storage.NewStoreMock()
	mock.Projects = []string{"alpha", "beta"}
	mock.RunsByProject["alpha"] = []string{"run-1", "run-2"}
	mock.Metrics["alpha"] = map[string][]string{
		"run-1": {"train/loss"},
	}
	mock.Values["alpha"] = map[string][]storage.Sample{
		"run-1:train/loss": {{Step: 0, Value: 2.0, Timestamp: 1.0}},
	}

	watch := &ltime.TestingWatch{Current: time.Unix(1_700_000_000, 0)}
	l, err := NewLoader(context.Background(), &Config{
		MaxWorkers: 4,
		QueueSize:  16,
		CacheTTL:   30 * time.Second,
	}, mock, watch)
	require.Nil(t, err)
	t.Cleanup(func() { _ = l.Shutdown() })
	return l, mock, watch
}

func TestProjectsServedFromCache(t *testing.T) {
	l, mock, _ := newTestLoader(t)

	for i := 0; i < 3; i++ {
		projects, err := l.Projects(context.Background())
		assert.Nil(t, err)
		assert.Equal(t, []string{"alpha", "beta"}, projects)
	}

	assert.Equal(t, 1, mock.CallCount("projects"))
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	l, mock, watch := newTestLoader(t)

	_, err := l.Runs(context.Background(), "alpha")
	assert.Nil(t, err)
	watch.Advance(30 * time.Second)
	_, err = l.Runs(context.Background(), "alpha")
	assert.Nil(t, err)

	assert.Equal(t, 2, mock.CallCount("runs:alpha"))
}

func TestMetricNamesCachedPerRun(t *testing.T) {
	l, mock, _ := newTestLoader(t)

	for i := 0; i < 2; i++ {
		names, err := l.MetricNames(context.Background(), "alpha", "run-1")
		assert.Nil(t, err)
		assert.Equal(t, []string{"train/loss"}, names)
	}

	assert.Equal(t, 1, mock.CallCount("metrics:alpha:run-1"))
}

func TestMetricValuesNeverCached(t *testing.T) {
	l, mock, _ := newTestLoader(t)

	for i := 0; i < 3; i++ {
		samples, err := l.MetricValues(context.Background(), "alpha", "run-1", "train/loss")
		assert.Nil(t, err)
		assert.Len(t, samples, 1)
	}

	assert.Equal(t, 3, mock.CallCount("values:alpha:run-1:train/loss"))
}

func TestSystemLogsNeverCached(t *testing.T) {
	l, mock, _ := newTestLoader(t)

	for i := 0; i < 2; i++ {
		_, err := l.SystemLogs(context.Background(), "alpha", "run-1")
		assert.Nil(t, err)
	}

	assert.Equal(t, 2, mock.CallCount("system_logs:alpha:run-1"))
}

func TestInvalidateCachePattern(t *testing.T) {
	l, mock, _ := newTestLoader(t)

	_, _ = l.Projects(context.Background())
	_, _ = l.Runs(context.Background(), "alpha")

	l.InvalidateCache("alpha")

	_, _ = l.Projects(context.Background())
	_, _ = l.Runs(context.Background(), "alpha")

	// Only the project-scoped entry was dropped.
	assert.Equal(t, 1, mock.CallCount("projects"))
	assert.Equal(t, 2, mock.CallCount("runs:alpha"))
}

func TestInvalidateCacheFullClear(t *testing.T) {
	l, mock, _ := newTestLoader(t)

	_, _ = l.Projects(context.Background())
	_, _ = l.Runs(context.Background(), "alpha")

	l.InvalidateCache("")

	_, _ = l.Projects(context.Background())
	_, _ = l.Runs(context.Background(), "alpha")

	assert.Equal(t, 2, mock.CallCount("projects"))
	assert.Equal(t, 2, mock.CallCount("runs:alpha"))
}

func TestStorageErrorPropagatesUnretried(t *testing.T) {
	l, mock, _ := newTestLoader(t)
	mock.FailRuns["run-9"] = struct{}{}

	_, err := l.MetricNames(context.Background(), "alpha", "run-9")
	assert.NotNil(t, err)
	assert.Equal(t, 1, mock.CallCount("metrics:alpha:run-9"))

	// The failure was not cached either.
	_, err = l.MetricNames(context.Background(), "alpha", "run-9")
	assert.NotNil(t, err)
	assert.Equal(t, 2, mock.CallCount("metrics:alpha:run-9"))
}

func TestEmptyBackendIsNotAnError(t *testing.T) {
	mock := storage.NewStoreMock()
	watch := &ltime.TestingWatch{Current: time.Unix(1_700_000_000, 0)}
	l, err := NewLoader(context.Background(), &Config{
		MaxWorkers: 1,
		QueueSize:  4,
		CacheTTL:   time.Minute,
	}, mock, watch)
	require.Nil(t, err)
	defer l.Shutdown()

	projects, err := l.Projects(context.Background())
	assert.Nil(t, err)
	assert.Empty(t, projects)
}
