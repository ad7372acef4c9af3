package dashboard

import (
	"context"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/trackboard/trackboard/internal/storage"
)

// send posts a completed load back to the loop unless it already shut down.
func (d *Dashboard) send(res result) {
	select {
	case d.results <- res:
	case <-d.ctx.Done():
	}
}

func (d *Dashboard) loadProjects() {
	gen := d.nextGen(opProjects)
	ctx := d.ctx

	go func() {
		projects, err := d.loader.Projects(ctx)
		if err != nil {
			log.Printf("failed to load projects: %s", err)
			projects = []string{}
		}

		d.send(result{op: opProjects, gen: gen, apply: func(d *Dashboard) {
			d.projects = projects
			if d.sel.Project == "" && len(projects) > 0 {
				d.handleSelectProject(projects[0])
				return
			}
			d.publish()
		}})
	}()
}

// loadRuns lists the current project's runs. selectAll is true only on the
// project-switch path: there the fresh runs become the selection. Refresh
// paths keep the user's selection, dropping runs that vanished.
func (d *Dashboard) loadRuns(selectAll bool) {
	gen := d.nextGen(opRuns)
	ctx := d.ctx
	project := d.sel.Project

	go func() {
		runs, err := d.loader.Runs(ctx, project)
		if err != nil {
			log.Printf("failed to load runs for project %s: %s", project, err)
			runs = []string{}
		}
		configs, err := d.loader.AllRunConfigs(ctx, project)
		if err != nil {
			log.Printf("failed to load run configs for project %s: %s", project, err)
			configs = map[string]storage.RunConfig{}
		}

		d.send(result{op: opRuns, gen: gen, apply: func(d *Dashboard) {
			d.runs = runs
			d.configs = configs
			if selectAll {
				// Select every run by default, matching the web dashboard.
				d.sel.SetRuns(runs)
			} else {
				d.sel.RetainRuns(runs)
			}
			d.loadData()
		}})
	}()
}

// loadData refreshes metric panels and system panels for the current
// selection. Each fan-out isolates per-run failures: a failing run is logged
// and omitted, its siblings are unaffected.
func (d *Dashboard) loadData() {
	project := d.sel.Project
	runs := d.sel.SelectedRuns()
	sort.Strings(runs)

	d.loadMetricData(project, runs)
	d.loadSystemData(project, runs)
}

func (d *Dashboard) loadMetricData(project string, runs []string) {
	gen := d.nextGen(opMetrics)
	ctx := d.ctx

	go func() {
		samplesByMetric, failed := d.fetchMetricData(ctx, project, runs)

		d.send(result{op: opMetrics, gen: gen, apply: func(d *Dashboard) {
			d.rawMetrics = samplesByMetric
			d.failedRuns = failed
			d.publish()
		}})
	}()
}

func (d *Dashboard) loadSystemData(project string, runs []string) {
	gen := d.nextGen(opSystem)
	ctx := d.ctx

	go func() {
		recordsByRun := d.fetchSystemData(ctx, project, runs)

		d.send(result{op: opSystem, gen: gen, apply: func(d *Dashboard) {
			d.rawSystem = recordsByRun
			d.publish()
		}})
	}()
}

// fetchMetricData collects the union of metric names across runs, then the
// samples per metric and run.
func (d *Dashboard) fetchMetricData(ctx context.Context, project string,
	runs []string) (map[string]map[string][]storage.Sample, []string) {
	var mu sync.Mutex
	namesByRun := make(map[string][]string)
	runErrs := make(map[string]error)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(d.cfg.AggregateConcurrency)
	for _, run := range runs {
		run := run
		group.Go(func() error {
			names, err := d.loader.MetricNames(groupCtx, project, run)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				runErrs[run] = err
				return nil
			}
			namesByRun[run] = names
			return nil
		})
	}
	_ = group.Wait()

	union := make(map[string]struct{})
	for _, names := range namesByRun {
		for _, name := range names {
			union[name] = struct{}{}
		}
	}

	samplesByMetric := make(map[string]map[string][]storage.Sample)
	group, groupCtx = errgroup.WithContext(ctx)
	group.SetLimit(d.cfg.AggregateConcurrency)
	for name := range union {
		name := name
		for run := range namesByRun {
			run := run
			group.Go(func() error {
				samples, err := d.loader.MetricValues(groupCtx, project, run, name)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					runErrs[run] = err
					return nil
				}
				if len(samples) == 0 {
					return nil
				}
				if samplesByMetric[name] == nil {
					samplesByMetric[name] = make(map[string][]storage.Sample)
				}
				samplesByMetric[name][run] = samples
				return nil
			})
		}
	}
	_ = group.Wait()

	return samplesByMetric, reportRunErrors(project, runErrs)
}

// fetchSystemData collects system logs per run.
func (d *Dashboard) fetchSystemData(ctx context.Context, project string,
	runs []string) map[string][]storage.SystemRecord {
	var mu sync.Mutex
	recordsByRun := make(map[string][]storage.SystemRecord)
	runErrs := make(map[string]error)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(d.cfg.AggregateConcurrency)
	for _, run := range runs {
		run := run
		group.Go(func() error {
			records, err := d.loader.SystemLogs(groupCtx, project, run)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				runErrs[run] = err
				return nil
			}
			if len(records) > 0 {
				recordsByRun[run] = records
			}
			return nil
		})
	}
	_ = group.Wait()

	reportRunErrors(project, runErrs)
	return recordsByRun
}

// reportRunErrors logs all per-run failures as one aggregate and returns the
// sorted list of failed runs.
func reportRunErrors(project string, runErrs map[string]error) []string {
	if len(runErrs) == 0 {
		return nil
	}

	var merr *multierror.Error
	failed := make([]string, 0, len(runErrs))
	for run, err := range runErrs {
		failed = append(failed, run)
		merr = multierror.Append(merr, errors.Wrapf(err, "run %s", run))
	}
	sort.Strings(failed)
	log.Printf("skipping %d runs in project %s: %s", len(failed), project, merr)
	return failed
}
