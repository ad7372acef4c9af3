package colors

// DefaultPalette is the terminal color cycle for run lines.
var DefaultPalette = []string{
	"blue",
	"red",
	"green",
	"yellow",
	"magenta",
	"cyan",
	"bright_blue",
	"bright_red",
	"bright_green",
	"bright_yellow",
	"bright_magenta",
	"bright_cyan",
}

// Assigner hands out palette entries to runs in first-seen order. An
// assignment never changes for the lifetime of the assigner; once the palette
// is exhausted it cycles. For a fixed first-seen order the mapping is fully
// reproducible.
type Assigner struct {
	palette []string
	byRun   map[string]string
	next    int
}

func NewAssigner(palette []string) *Assigner {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Assigner{
		palette: palette,
		byRun:   make(map[string]string),
	}
}

// Color returns the color assigned to runID, assigning the next palette
// entry on first sight.
func (a *Assigner) Color(runID string) string {
	if color, ok := a.byRun[runID]; ok {
		return color
	}
	color := a.palette[a.next%len(a.palette)]
	a.byRun[runID] = color
	a.next++
	return color
}

// All returns a copy of every assignment made so far.
func (a *Assigner) All() map[string]string {
	out := make(map[string]string, len(a.byRun))
	for run, color := range a.byRun {
		out[run] = color
	}
	return out
}

// Reset forgets all assignments and restarts the cycle.
func (a *Assigner) Reset() {
	a.byRun = make(map[string]string)
	a.next = 0
}
