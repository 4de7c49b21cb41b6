package perf

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// Entry is a single request timing record stored in the ring buffer.
type Entry struct {
	Path       string // method + path, e.g. "GET /members"
	StatusCode int
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer for timing entries.
// Writes are non-blocking; when full, oldest entries are overwritten.
// Aggregation happens only on read (Snapshot).
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	pos     int
	count   int64 // total entries ever written (atomic for stats)
}

// NewCollector creates a collector with the given ring buffer capacity.
// PRE: size > 0 (non-positive falls back to DefaultRingSize)
// POST: Returns a ready-to-use collector with pre-allocated storage
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Record appends an entry to the ring buffer.
// POST: Entry stored; if buffer full, oldest entry overwritten
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % c.size
	c.mu.Unlock()
	atomic.AddInt64(&c.count, 1)
}

// TotalRecorded returns the total number of entries ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.count)
}

// PathStat aggregates timings for one route.
type PathStat struct {
	Path  string  `json:"path"`
	Count int     `json:"count"`
	AvgMs float64 `json:"avg_ms"`
	MaxMs float64 `json:"max_ms"`
}

// Snapshot holds aggregated performance data computed on read.
type Snapshot struct {
	TotalRequests int64      `json:"total_requests"`
	RequestP50Ms  float64    `json:"request_p50_ms"`
	RequestP95Ms  float64    `json:"request_p95_ms"`
	RequestP99Ms  float64    `json:"request_p99_ms"`
	SlowestPaths  []PathStat `json:"slowest_paths"`
}

// Snapshot aggregates the buffered entries: overall latency percentiles and
// the slowest routes by average duration.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	durations := make([]float64, 0, c.size)
	byPath := make(map[string]*PathStat)
	for _, e := range c.entries {
		if e.Timestamp.IsZero() {
			continue
		}
		durations = append(durations, e.DurationMs)
		stat, ok := byPath[e.Path]
		if !ok {
			stat = &PathStat{Path: e.Path}
			byPath[e.Path] = stat
		}
		stat.Count++
		stat.AvgMs += e.DurationMs // running sum; divided below
		if e.DurationMs > stat.MaxMs {
			stat.MaxMs = e.DurationMs
		}
	}
	c.mu.Unlock()

	snap := Snapshot{TotalRequests: c.TotalRecorded()}
	if len(durations) == 0 {
		return snap
	}

	sort.Float64s(durations)
	snap.RequestP50Ms = percentile(durations, 0.50)
	snap.RequestP95Ms = percentile(durations, 0.95)
	snap.RequestP99Ms = percentile(durations, 0.99)

	for _, stat := range byPath {
		stat.AvgMs /= float64(stat.Count)
		snap.SlowestPaths = append(snap.SlowestPaths, *stat)
	}
	sort.Slice(snap.SlowestPaths, func(i, j int) bool {
		return snap.SlowestPaths[i].AvgMs > snap.SlowestPaths[j].AvgMs
	})
	if len(snap.SlowestPaths) > 10 {
		snap.SlowestPaths = snap.SlowestPaths[:10]
	}
	return snap
}

// percentile reads the p-th percentile from an ascending-sorted slice.
// PRE: sorted is non-empty and ascending
func percentile(sorted []float64, p float64) float64 {
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
