package dashboard

import (
	"sort"

	"github.com/trackboard/trackboard/internal/colors"
	"github.com/trackboard/trackboard/internal/metrics"
	"github.com/trackboard/trackboard/internal/state"
	"github.com/trackboard/trackboard/internal/storage"
	"github.com/trackboard/trackboard/internal/transform"
)

// Series is one run's plot-ready line for a metric.
type Series struct {
	Run   string
	Color string
	X     []float64
	Y     []float64
}

// Panel is one metric chart with a line per contributing run.
type Panel struct {
	Metric string
	Series []Series
}

// PanelGroup is a titled section of panels, e.g. "train" or "CPU".
type PanelGroup struct {
	Name   string
	Panels []Panel
}

// View is the renderable snapshot handed to the UI layer. It is rebuilt
// whole on every applied change; the UI never mutates it.
type View struct {
	Projects   []string
	Project    string
	Runs       []string
	Selected   []string
	RunConfigs map[string]storage.RunConfig
	Config     state.ChartConfig

	Groups       []PanelGroup
	SystemGroups []PanelGroup

	// FailedRuns lists runs omitted from the last aggregate because their
	// fetch failed. Sibling runs are unaffected.
	FailedRuns []string
}

// buildPanels converts raw per-metric, per-run samples into sorted panel
// groups, applying the whole transform pipeline: series extraction with
// non-numeric filtering, smoothing, then decimation.
func buildPanels(samplesByMetric map[string]map[string][]storage.Sample, assigner *colors.Assigner,
	cfg state.ChartConfig, maxPoints int) []PanelGroup {
	names := make([]string, 0, len(samplesByMetric))
	for name := range samplesByMetric {
		names = append(names, name)
	}

	grouped := metrics.Group(names)
	groupNames := make([]string, 0, len(grouped))
	for name := range grouped {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	panelGroups := make([]PanelGroup, 0, len(groupNames))
	for _, groupName := range groupNames {
		group := PanelGroup{Name: groupName}
		for _, metric := range grouped[groupName] {
			panel := buildPanel(metric, samplesByMetric[metric], assigner, cfg, maxPoints)
			if len(panel.Series) > 0 {
				group.Panels = append(group.Panels, panel)
			}
		}
		if len(group.Panels) > 0 {
			panelGroups = append(panelGroups, group)
		}
	}
	return panelGroups
}

func buildPanel(metric string, samplesByRun map[string][]storage.Sample, assigner *colors.Assigner,
	cfg state.ChartConfig, maxPoints int) Panel {
	runs := make([]string, 0, len(samplesByRun))
	for run := range samplesByRun {
		runs = append(runs, run)
	}
	sort.Strings(runs)

	panel := Panel{Metric: metric}
	for _, run := range runs {
		x, y := transform.ExtractSeries(samplesByRun[run], cfg.XAxis)
		if len(x) == 0 {
			// All samples were non-numeric: no line, not an error.
			continue
		}
		y = transform.Smooth(y, cfg.Smoothing)
		x, y = transform.Downsample(x, y, maxPoints)
		panel.Series = append(panel.Series, Series{
			Run:   run,
			Color: assigner.Color(run),
			X:     x,
			Y:     y,
		})
	}
	return panel
}

// buildSystemPanels reshapes raw system records into the same panel form:
// one metric per record key, grouped by resource category.
func buildSystemPanels(recordsByRun map[string][]storage.SystemRecord, assigner *colors.Assigner,
	cfg state.ChartConfig, maxPoints int) []PanelGroup {
	samplesByMetric := make(map[string]map[string][]storage.Sample)
	for run, records := range recordsByRun {
		for _, record := range records {
			for key, value := range record {
				if metrics.IsSystemBookkeepingKey(key) {
					continue
				}
				step := 0
				if raw, ok := record["step"]; ok {
					if f, numeric := transform.NumericValue(raw); numeric {
						step = int(f)
					}
				}
				sample := storage.Sample{
					Step:      step,
					Value:     value,
					Timestamp: record["timestamp"],
				}
				if samplesByMetric[key] == nil {
					samplesByMetric[key] = make(map[string][]storage.Sample)
				}
				samplesByMetric[key][run] = append(samplesByMetric[key][run], sample)
			}
		}
	}

	keys := make([]string, 0, len(samplesByMetric))
	for key := range samplesByMetric {
		keys = append(keys, key)
	}

	grouped := metrics.GroupSystem(keys)
	groupNames := make([]string, 0, len(grouped))
	for name := range grouped {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	panelGroups := make([]PanelGroup, 0, len(groupNames))
	for _, groupName := range groupNames {
		group := PanelGroup{Name: groupName}
		for _, key := range grouped[groupName] {
			panel := buildPanel(key, samplesByMetric[key], assigner, cfg, maxPoints)
			if len(panel.Series) > 0 {
				group.Panels = append(group.Panels, panel)
			}
		}
		if len(group.Panels) > 0 {
			panelGroups = append(panelGroups, group)
		}
	}
	return panelGroups
}
