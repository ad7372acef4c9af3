package storage

// Sample is one recorded metric observation. Value is a float64 for numeric
// observations; embedded payloads such as tables land here as decoded JSON
// and are filtered out by the transform layer, never by storage. Timestamp
// is either a float64 of epoch seconds or an ISO-8601 string.
type Sample struct {
	Step      int `json:"step"`
	Value     any `json:"value"`
	Timestamp any `json:"timestamp"`
}

// SystemRecord is a sample-like system-resource log entry: metric-named keys
// (cpu_percent, memory_used, ...) next to step/timestamp bookkeeping keys.
type SystemRecord map[string]any

// RunConfig is the scalar-valued configuration a run was started with.
type RunConfig map[string]any
