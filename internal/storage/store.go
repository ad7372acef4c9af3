package storage

import (
	"context"
)

// Store is the narrow read API over the external metrics store. Calls are
// blocking and potentially slow; the loader is responsible for keeping them
// off the interactive path.
//
// A missing backend is not an error: listing operations return empty results
// when there is nothing to list.
type Store interface {
	ListProjects(ctx context.Context) ([]string, error)
	ListRuns(ctx context.Context, project string) ([]string, error)
	AllRunConfigs(ctx context.Context, project string) (map[string]RunConfig, error)
	MetricNames(ctx context.Context, project string, run string) ([]string, error)
	MetricValues(ctx context.Context, project string, run string, metric string) ([]Sample, error)
	SystemLogs(ctx context.Context, project string, run string) ([]SystemRecord, error)
}
