package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// StoreMock serves canned data and counts calls per operation, keyed the
// same way the loader keys its cache. Call counting is synchronized since
// fetches run on worker goroutines.
type StoreMock struct {
	Projects      []string
	RunsByProject map[string][]string
	Configs       map[string]map[string]RunConfig
	Metrics       map[string]map[string][]string         // project -> run -> metric names
	Values        map[string]map[string][]Sample         // project -> run+":"+metric -> samples
	Logs          map[string]map[string][]SystemRecord   // project -> run -> records
	FailRuns      map[string]struct{}                    // runs whose fetches fail

	mu    sync.Mutex
	calls map[string]int
}

var _ Store = &StoreMock{}

func NewStoreMock() *StoreMock {
	return &StoreMock{
		RunsByProject: make(map[string][]string),
		Configs:       make(map[string]map[string]RunConfig),
		Metrics:       make(map[string]map[string][]string),
		Values:        make(map[string]map[string][]Sample),
		Logs:          make(map[string]map[string][]SystemRecord),
		FailRuns:      make(map[string]struct{}),
		calls:         make(map[string]int),
	}
}

func (m *StoreMock) record(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[key]++
}

// CallCount reports how many times the operation identified by key was
// invoked, e.g. "runs:demo" or "values:demo:run-1:train/loss".
func (m *StoreMock) CallCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[key]
}

func (m *StoreMock) ListProjects(_ context.Context) ([]string, error) {
	m.record("projects")
	projects := append([]string(nil), m.Projects...)
	sort.Strings(projects)
	return projects, nil
}

func (m *StoreMock) ListRuns(_ context.Context, project string) ([]string, error) {
	m.record("runs:" + project)
	runs := append([]string(nil), m.RunsByProject[project]...)
	sort.Strings(runs)
	return runs, nil
}

func (m *StoreMock) AllRunConfigs(_ context.Context, project string) (map[string]RunConfig, error) {
	m.record("run_configs:" + project)
	if configs, ok := m.Configs[project]; ok {
		return configs, nil
	}
	return map[string]RunConfig{}, nil
}

func (m *StoreMock) MetricNames(_ context.Context, project string, run string) ([]string, error) {
	m.record("metrics:" + project + ":" + run)
	if _, fail := m.FailRuns[run]; fail {
		return nil, fmt.Errorf("run %s is unavailable", run)
	}
	names := append([]string(nil), m.Metrics[project][run]...)
	sort.Strings(names)
	return names, nil
}

func (m *StoreMock) MetricValues(_ context.Context, project string, run string, metric string) ([]Sample, error) {
	m.record("values:" + project + ":" + run + ":" + metric)
	if _, fail := m.FailRuns[run]; fail {
		return nil, fmt.Errorf("run %s is unavailable", run)
	}
	return m.Values[project][run+":"+metric], nil
}

func (m *StoreMock) SystemLogs(_ context.Context, project string, run string) ([]SystemRecord, error) {
	m.record("system_logs:" + project + ":" + run)
	if _, fail := m.FailRuns[run]; fail {
		return nil, fmt.Errorf("run %s is unavailable", run)
	}
	return m.Logs[project][run], nil
}
