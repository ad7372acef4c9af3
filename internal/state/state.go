package state

import (
	"github.com/trackboard/trackboard/internal/transform"
)

// MaxSmoothing is the top of the smoothing scale exposed to the UI.
const MaxSmoothing = 20.0

// ChartConfig parameterizes the transform pipeline. It is a value type:
// consumers receive copies, never shared references.
type ChartConfig struct {
	XAxis     transform.XAxis
	Smoothing float64
	LogScaleX bool
	LogScaleY bool
}

func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		XAxis:     transform.XAxisStep,
		Smoothing: 0,
	}
}

// WithSmoothing returns a copy with the smoothing level clamped to
// [0, MaxSmoothing].
func (c ChartConfig) WithSmoothing(smoothing float64) ChartConfig {
	if smoothing < 0 {
		smoothing = 0
	}
	if smoothing > MaxSmoothing {
		smoothing = MaxSmoothing
	}
	c.Smoothing = smoothing
	return c
}

// Selection is the current browse position: project, chosen runs, and filter
// texts. It is owned by the dashboard goroutine and mutated only by intent
// handlers.
type Selection struct {
	Project      string
	runs         map[string]struct{}
	RunFilter    string
	MetricFilter string
}

func NewSelection() *Selection {
	return &Selection{
		runs: make(map[string]struct{}),
	}
}

// SetProject switches the current project. Any change of project drops the
// selected runs and both filters, so no selection ever leaks across
// projects, run-id collisions included. Re-selecting the current project is
// a no-op.
func (s *Selection) SetProject(project string) {
	if s.Project == project {
		return
	}
	s.Project = project
	s.ClearRuns()
	s.RunFilter = ""
	s.MetricFilter = ""
}

func (s *Selection) ToggleRun(runID string) {
	if _, ok := s.runs[runID]; ok {
		delete(s.runs, runID)
		return
	}
	s.runs[runID] = struct{}{}
}

// SetRuns replaces the selected run set.
func (s *Selection) SetRuns(runIDs []string) {
	s.runs = make(map[string]struct{}, len(runIDs))
	for _, id := range runIDs {
		s.runs[id] = struct{}{}
	}
}

// RetainRuns intersects the selection with runIDs, dropping selected runs
// that no longer exist. Runs the user deselected stay deselected.
func (s *Selection) RetainRuns(runIDs []string) {
	keep := make(map[string]struct{}, len(runIDs))
	for _, id := range runIDs {
		keep[id] = struct{}{}
	}
	for id := range s.runs {
		if _, ok := keep[id]; !ok {
			delete(s.runs, id)
		}
	}
}

func (s *Selection) ClearRuns() {
	s.runs = make(map[string]struct{})
}

func (s *Selection) IsSelected(runID string) bool {
	_, ok := s.runs[runID]
	return ok
}

// SelectedRuns returns the selected run ids in arbitrary order; callers
// needing a stable order sort the copy themselves.
func (s *Selection) SelectedRuns() []string {
	runs := make([]string, 0, len(s.runs))
	for id := range s.runs {
		runs = append(runs, id)
	}
	return runs
}
