package ingest

import (
	"sync"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
)

// MetricsCache is a single-slot, process-wide store of the most recently
// computed live metrics. Every Set overwrites the previous value; no
// history is kept. Staleness is inferred by callers from UpdatedAt.
type MetricsCache struct {
	mu     sync.RWMutex
	value  domain.ProcessedMetrics
	filled bool
}

// NewMetricsCache returns an empty cache.
func NewMetricsCache() *MetricsCache {
	return &MetricsCache{}
}

// Set unconditionally overwrites the slot and stamps it with at.
func (c *MetricsCache) Set(sleepScore, stressScore int, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = domain.ProcessedMetrics{
		SleepScore:  sleepScore,
		StressScore: stressScore,
		UpdatedAt:   at.UnixMilli(),
	}
	c.filled = true
}

// Get returns the latest metrics. The second return value is false
// until the first Set.
func (c *MetricsCache) Get() (domain.ProcessedMetrics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.filled
}
