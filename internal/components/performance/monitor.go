package performance

import (
	"sort"
	"sync"
	"time"
)

// maxSamples bounds the recent-sample window of each metric.
const maxSamples = 100

// Monitor tracks how long named engine phases take.
type Monitor struct {
	metrics map[string]*Metric
	mutex   sync.RWMutex
}

// Metric aggregates the durations recorded under one name.
type Metric struct {
	Name      string
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
	LastTime  time.Duration
	Samples   []time.Duration
}

// NewMonitor creates an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		metrics: make(map[string]*Metric),
	}
}

// StartTimer starts timing name; call the returned func to stop.
func (m *Monitor) StartTimer(name string) func() {
	start := time.Now()
	return func() {
		m.Record(name, time.Since(start))
	}
}

// Record adds one duration to the named metric.
func (m *Monitor) Record(name string, d time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	metric, exists := m.metrics[name]
	if !exists {
		metric = &Metric{
			Name:    name,
			MinTime: d,
			MaxTime: d,
			Samples: make([]time.Duration, 0, maxSamples),
		}
		m.metrics[name] = metric
	}

	metric.Count++
	metric.TotalTime += d
	metric.LastTime = d
	metric.MinTime = min(metric.MinTime, d)
	metric.MaxTime = max(metric.MaxTime, d)

	if len(metric.Samples) >= maxSamples {
		metric.Samples = metric.Samples[1:]
	}
	metric.Samples = append(metric.Samples, d)
}

// Metric returns a copy of the named metric, or nil if nothing was recorded.
func (m *Monitor) Metric(name string) *Metric {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	metric, exists := m.metrics[name]
	if !exists {
		return nil
	}
	return metric.clone()
}

// Metrics returns copies of all metrics sorted by name.
func (m *Monitor) Metrics() []*Metric {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make([]*Metric, 0, len(m.metrics))
	for _, metric := range m.metrics {
		result = append(result, metric.clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Reset forgets every metric.
func (m *Monitor) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.metrics = make(map[string]*Metric)
}

func (metric *Metric) clone() *Metric {
	c := *metric
	c.Samples = append([]time.Duration(nil), metric.Samples...)
	return &c
}

// AverageTime returns the mean of every recorded duration.
func (metric *Metric) AverageTime() time.Duration {
	if metric.Count == 0 {
		return 0
	}
	return metric.TotalTime / time.Duration(metric.Count)
}

// RecentAverageTime returns the mean of the last n samples.
func (metric *Metric) RecentAverageTime(n int) time.Duration {
	if len(metric.Samples) == 0 || n <= 0 {
		return 0
	}
	start := max(0, len(metric.Samples)-n)

	var total time.Duration
	for _, d := range metric.Samples[start:] {
		total += d
	}
	return total / time.Duration(len(metric.Samples)-start)
}
