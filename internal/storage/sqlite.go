package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/avast/retry-go"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLite reads trackio-style project databases: one <project>.db file per
// project under the data dir. The tracker owns the schema and keeps writing
// while we read, so every query runs read-only and transient busy errors are
// retried a few times before giving up.
type SQLite struct {
	cfg *Config

	mu    sync.Mutex
	conns map[string]*sqlx.DB
}

var _ Store = &SQLite{}

func NewSQLite(cfg *Config) *SQLite {
	return &SQLite{
		cfg:   cfg,
		conns: make(map[string]*sqlx.DB),
	}
}

// Database file stems reserved by the tracker, never projects.
var reservedStems = map[string]struct{}{
	"_global": {},
	"_cache":  {},
}

func (s *SQLite) ListProjects(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.cfg.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read data dir %s", s.cfg.DataDir)
	}

	projects := make([]string, 0)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".db") {
			continue
		}
		stem := strings.TrimSuffix(name, ".db")
		if _, reserved := reservedStems[stem]; reserved {
			continue
		}
		projects = append(projects, stem)
	}
	sort.Strings(projects)
	return projects, nil
}

func (s *SQLite) ListRuns(ctx context.Context, project string) ([]string, error) {
	db, err := s.db(project)
	if err != nil || db == nil {
		return []string{}, err
	}

	seen := make(map[string]struct{})
	for _, query := range []string{
		`SELECT DISTINCT run_name FROM metrics`,
		`SELECT DISTINCT run_name FROM configs`,
	} {
		var names []string
		if err := s.selectRetry(ctx, db, &names, query); err != nil {
			return nil, err
		}
		for _, name := range names {
			seen[name] = struct{}{}
		}
	}

	runs := make([]string, 0, len(seen))
	for name := range seen {
		runs = append(runs, name)
	}
	sort.Strings(runs)
	return runs, nil
}

func (s *SQLite) AllRunConfigs(ctx context.Context, project string) (map[string]RunConfig, error) {
	db, err := s.db(project)
	if err != nil || db == nil {
		return map[string]RunConfig{}, err
	}

	var rows []struct {
		RunName string `db:"run_name"`
		Config  string `db:"config"`
	}
	if err := s.selectRetry(ctx, db, &rows, `SELECT run_name, config FROM configs`); err != nil {
		return nil, err
	}

	configs := make(map[string]RunConfig, len(rows))
	for _, row := range rows {
		var cfg RunConfig
		if err := json.Unmarshal([]byte(row.Config), &cfg); err != nil {
			log.Debugf("skipping malformed config for run %s in project %s: %s", row.RunName, project, err)
			continue
		}
		configs[row.RunName] = cfg
	}
	return configs, nil
}

func (s *SQLite) MetricNames(ctx context.Context, project string, run string) ([]string, error) {
	db, err := s.db(project)
	if err != nil || db == nil {
		return []string{}, err
	}

	var payloads []string
	query := `SELECT metrics FROM metrics WHERE run_name = ?`
	if err := s.selectRetry(ctx, db, &payloads, query, run); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, payload := range payloads {
		var values map[string]any
		if err := json.Unmarshal([]byte(payload), &values); err != nil {
			log.Debugf("skipping malformed metrics row for run %s in project %s: %s", run, project, err)
			continue
		}
		for name := range values {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *SQLite) MetricValues(ctx context.Context, project string, run string, metric string) ([]Sample, error) {
	db, err := s.db(project)
	if err != nil || db == nil {
		return []Sample{}, err
	}

	var rows []struct {
		Step      int    `db:"step"`
		Timestamp string `db:"timestamp"`
		Metrics   string `db:"metrics"`
	}
	query := `SELECT step, timestamp, metrics FROM metrics WHERE run_name = ? ORDER BY step, id`
	if err := s.selectRetry(ctx, db, &rows, query, run); err != nil {
		return nil, err
	}

	samples := make([]Sample, 0)
	for _, row := range rows {
		var values map[string]any
		if err := json.Unmarshal([]byte(row.Metrics), &values); err != nil {
			log.Debugf("skipping malformed metrics row for run %s in project %s: %s", run, project, err)
			continue
		}
		value, ok := values[metric]
		if !ok {
			continue
		}
		samples = append(samples, Sample{
			Step:      row.Step,
			Value:     value,
			Timestamp: row.Timestamp,
		})
	}
	return samples, nil
}

func (s *SQLite) SystemLogs(ctx context.Context, project string, run string) ([]SystemRecord, error) {
	db, err := s.db(project)
	if err != nil || db == nil {
		return []SystemRecord{}, err
	}

	var rows []struct {
		Timestamp string `db:"timestamp"`
		Logs      string `db:"logs"`
	}
	query := `SELECT timestamp, logs FROM system_logs WHERE run_name = ? ORDER BY id`
	if err := s.selectRetry(ctx, db, &rows, query, run); err != nil {
		return nil, err
	}

	records := make([]SystemRecord, 0, len(rows))
	for _, row := range rows {
		var record SystemRecord
		if err := json.Unmarshal([]byte(row.Logs), &record); err != nil {
			log.Debugf("skipping malformed system log for run %s in project %s: %s", run, project, err)
			continue
		}
		if _, ok := record["timestamp"]; !ok {
			record["timestamp"] = row.Timestamp
		}
		records = append(records, record)
	}
	return records, nil
}

// Close closes every open project connection.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for project, db := range s.conns {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.conns, project)
	}
	return firstErr
}

// db returns the lazily-opened read-only connection for project, or nil when
// the project database does not exist.
func (s *SQLite) db(project string) (*sqlx.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if db, ok := s.conns[project]; ok {
		return db, nil
	}

	path := filepath.Join(s.cfg.DataDir, project+".db")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to stat project database %s", path)
	}

	db, err := sqlx.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open project database %s", path)
	}
	s.conns[project] = db
	return db, nil
}

func (s *SQLite) selectRetry(ctx context.Context, db *sqlx.DB, dest interface{}, query string, args ...interface{}) error {
	err := retry.Do(
		func() error {
			return db.SelectContext(ctx, dest, query, args...)
		},
		retry.Context(ctx),
		retry.Attempts(s.cfg.RetryAttempts),
		retry.Delay(s.cfg.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isBusy),
	)
	if err != nil && isMissingTable(err) {
		// The tracker creates tables on first write; an absent table is an
		// empty result, not a failure.
		return nil
	}
	return errors.WithStack(err)
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func isMissingTable(err error) bool {
	return strings.Contains(err.Error(), "no such table")
}
