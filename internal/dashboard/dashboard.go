package dashboard

import (
	"context"
	"sort"

	"github.com/trackboard/trackboard/internal/colors"
	"github.com/trackboard/trackboard/internal/loader"
	"github.com/trackboard/trackboard/internal/metrics"
	"github.com/trackboard/trackboard/internal/state"
	"github.com/trackboard/trackboard/internal/storage"
	ltime "github.com/trackboard/trackboard/pkg/time"
)

// operation identifies a logical load whose results supersede each other.
type operation int

const (
	opProjects operation = iota
	opRuns
	opMetrics
	opSystem
	operationCount
)

// result is a completed background load. apply runs on the loop goroutine,
// and only when the operation's generation still matches: a newer load for
// the same operation discards this one.
type result struct {
	op    operation
	gen   uint64
	apply func(d *Dashboard)
}

// Dashboard is the coordination loop behind the UI. One goroutine (Run) owns
// all browse state, the color assigner and the view assembly; UI intents
// enter through channels and background loads come back as results tagged
// with a per-operation generation counter. Superseded loads are not
// interrupted, merely discarded, which is safe because every load is
// read-only and idempotent.
type Dashboard struct {
	cfg      *Config
	loader   *loader.Loader
	assigner *colors.Assigner
	ticker   ltime.Ticker

	intents chan func(d *Dashboard)
	results chan result
	views   chan View
	done    chan struct{}

	// Everything below is owned by the Run goroutine.
	ctx         context.Context
	sel         *state.Selection
	chartCfg    state.ChartConfig
	projects    []string
	runs        []string
	configs     map[string]storage.RunConfig
	rawMetrics  map[string]map[string][]storage.Sample
	rawSystem   map[string][]storage.SystemRecord
	failedRuns  []string
	autoRefresh bool
	gens        [operationCount]uint64
}

func NewDashboard(cfg *Config, l *loader.Loader, assigner *colors.Assigner, ticker ltime.Ticker) *Dashboard {
	return &Dashboard{
		cfg:      cfg,
		loader:   l,
		assigner: assigner,
		ticker:   ticker,
		intents:  make(chan func(d *Dashboard), 16),
		results:  make(chan result, 16),
		views:    make(chan View, 1),
		done:     make(chan struct{}),
		sel:      state.NewSelection(),
		chartCfg: state.DefaultChartConfig(),
	}
}

// Views delivers renderable snapshots, latest wins. A slow consumer only
// ever misses intermediate frames.
func (d *Dashboard) Views() <-chan View {
	return d.views
}

// Run owns the loop until ctx is cancelled.
func (d *Dashboard) Run(ctx context.Context) {
	defer close(d.done)
	defer d.ticker.Close()

	d.ctx = ctx
	d.loadProjects()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-d.intents:
			fn(d)
		case res := <-d.results:
			if d.gens[res.op] == res.gen {
				res.apply(d)
			}
		case <-d.ticker.Channel():
			if d.autoRefresh && d.sel.Project != "" {
				d.loadRuns(false)
			}
		}
	}
}

// post hands an intent to the loop, giving up once the loop is gone.
func (d *Dashboard) post(fn func(d *Dashboard)) {
	select {
	case d.intents <- fn:
	case <-d.done:
	}
}

func (d *Dashboard) SelectProject(project string) {
	d.post(func(d *Dashboard) { d.handleSelectProject(project) })
}

func (d *Dashboard) SetRuns(runs []string) {
	d.post(func(d *Dashboard) {
		d.sel.SetRuns(runs)
		d.loadData()
	})
}

func (d *Dashboard) ToggleRun(run string) {
	d.post(func(d *Dashboard) {
		d.sel.ToggleRun(run)
		d.loadData()
	})
}

// SetRunFilter narrows the run list shown in the view; the selection itself
// is untouched.
func (d *Dashboard) SetRunFilter(text string) {
	d.post(func(d *Dashboard) {
		d.sel.RunFilter = text
		d.publish()
	})
}

func (d *Dashboard) SetMetricFilter(text string) {
	d.post(func(d *Dashboard) {
		d.sel.MetricFilter = text
		d.publish()
	})
}

func (d *Dashboard) SetChartConfig(cfg state.ChartConfig) {
	d.post(func(d *Dashboard) {
		// Config changes re-derive series from the raw samples already
		// fetched; they never refetch and never touch the cache.
		d.chartCfg = cfg.WithSmoothing(cfg.Smoothing)
		d.publish()
	})
}

// Refresh drops cached metadata matching pattern (all of it when empty) and
// reloads the current project.
func (d *Dashboard) Refresh(pattern string) {
	d.post(func(d *Dashboard) {
		d.loader.InvalidateCache(pattern)
		d.loadProjects()
		if d.sel.Project != "" {
			d.loadRuns(false)
		}
	})
}

func (d *Dashboard) SetAutoRefresh(enabled bool) {
	d.post(func(d *Dashboard) { d.autoRefresh = enabled })
}

func (d *Dashboard) handleSelectProject(project string) {
	d.sel.SetProject(project)
	d.runs = nil
	d.configs = nil
	d.rawMetrics = nil
	d.rawSystem = nil
	d.failedRuns = nil
	d.publish()
	d.loadRuns(true)
}

// nextGen invalidates every pending result for op and tags the next one.
func (d *Dashboard) nextGen(op operation) uint64 {
	d.gens[op]++
	return d.gens[op]
}

// publish rebuilds the view from loop state and offers it to the consumer,
// dropping the previous undelivered frame if any.
func (d *Dashboard) publish() {
	view := d.buildView()
	for {
		select {
		case d.views <- view:
			return
		default:
		}
		select {
		case <-d.views:
		default:
		}
	}
}

func (d *Dashboard) buildView() View {
	selected := d.sel.SelectedRuns()
	sort.Strings(selected)

	visible := d.visibleMetrics()

	view := View{
		Projects:     append([]string(nil), d.projects...),
		Project:      d.sel.Project,
		Runs:         append([]string(nil), metrics.Filter(d.runs, d.sel.RunFilter)...),
		Selected:     selected,
		RunConfigs:   d.configs,
		Config:       d.chartCfg,
		Groups:       buildPanels(visible, d.assigner, d.chartCfg, d.cfg.MaxPoints),
		SystemGroups: buildSystemPanels(d.rawSystem, d.assigner, d.chartCfg, d.cfg.MaxPoints),
		FailedRuns:   append([]string(nil), d.failedRuns...),
	}
	return view
}

// visibleMetrics applies the metric filter to the raw fetch.
func (d *Dashboard) visibleMetrics() map[string]map[string][]storage.Sample {
	if d.sel.MetricFilter == "" || len(d.rawMetrics) == 0 {
		return d.rawMetrics
	}

	names := make([]string, 0, len(d.rawMetrics))
	for name := range d.rawMetrics {
		names = append(names, name)
	}

	visible := make(map[string]map[string][]storage.Sample)
	for _, name := range metrics.Filter(names, d.sel.MetricFilter) {
		visible[name] = d.rawMetrics[name]
	}
	return visible
}
