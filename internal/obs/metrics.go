package obs

import "sync"

// Label is a key/value pair attached to measurements.
type Label struct {
	Key   string
	Value string
}

// Meter is a very small interface for emitting counters/histograms.
// Implementations may no-op or bridge to a metrics system.
type Meter interface {
	Counter(name string, value float64, labels ...Label)
	Histogram(name string, value float64, labels ...Label)
}

// NopMeter is a Meter that discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(name string, value float64, labels ...Label)   {}
func (NopMeter) Histogram(name string, value float64, labels ...Label) {}

// MemMeter keeps running totals in memory, keyed by name and labels.
// It is safe for concurrent use.
type MemMeter struct {
	mu       sync.Mutex
	counters map[string]float64
	samples  map[string][]float64
}

func (m *MemMeter) Counter(name string, value float64, labels ...Label) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]float64)
	}
	m.counters[seriesKey(name, labels)] += value
}

func (m *MemMeter) Histogram(name string, value float64, labels ...Label) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.samples == nil {
		m.samples = make(map[string][]float64)
	}
	k := seriesKey(name, labels)
	m.samples[k] = append(m.samples[k], value)
}

// Count returns the current total of a counter series.
func (m *MemMeter) Count(name string, labels ...Label) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[seriesKey(name, labels)]
}

// Samples returns a copy of the observed histogram values.
func (m *MemMeter) Samples(name string, labels ...Label) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.samples[seriesKey(name, labels)]...)
}

func seriesKey(name string, labels []Label) string {
	k := name
	for _, l := range labels {
		k += "," + l.Key + "=" + l.Value
	}
	return k
}
