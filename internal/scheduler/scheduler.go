// Package scheduler keeps a rolling window of upcoming mood segments
// populated. It prunes expired segments before every decision, asks an
// injected generator for more when the queue runs low, and guarantees
// at most one generation call is in flight at a time.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"go.uber.org/zap"
)

const (
	// DefaultSegmentDuration is how long one mood segment plays.
	DefaultSegmentDuration = 10 * time.Minute
	// DefaultMinSegments is the queue depth at or below which
	// regeneration kicks in.
	DefaultMinSegments = 3
	// DefaultSegmentCount is how many segments one generation yields.
	DefaultSegmentCount = 10
)

// GenerateFunc produces the next batch of mood segments starting at
// nextStart. A failed generation must leave no partial state behind.
type GenerateFunc func(ctx context.Context, nextStart time.Time, count int) ([]domain.ScheduledMoodSegment, error)

// Scheduler holds the ordered queue of future mood segments.
type Scheduler struct {
	generate        GenerateFunc
	logger          *zap.Logger
	now             func() time.Time
	segmentDuration time.Duration
	minSegments     int
	segmentCount    int

	mu         sync.Mutex
	segments   []domain.ScheduledMoodSegment
	generating bool
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithNow injects a fake time source for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithSegmentDuration overrides the per-segment play window.
func WithSegmentDuration(d time.Duration) Option {
	return func(s *Scheduler) { s.segmentDuration = d }
}

// WithQueuePolicy overrides the regeneration threshold and batch size.
func WithQueuePolicy(minSegments, segmentCount int) Option {
	return func(s *Scheduler) {
		s.minSegments = minSegments
		s.segmentCount = segmentCount
	}
}

// NewScheduler creates an empty scheduler driven by generate.
func NewScheduler(generate GenerateFunc, logger *zap.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		generate:        generate,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
		segmentDuration: DefaultSegmentDuration,
		minSegments:     DefaultMinSegments,
		segmentCount:    DefaultSegmentCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scheduled prunes expired segments and returns the remainder sorted
// by timestamp.
func (s *Scheduler) Scheduled() []domain.ScheduledMoodSegment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()

	out := make([]domain.ScheduledMoodSegment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Current returns the segment whose window contains now, if any.
func (s *Scheduler) Current() (domain.ScheduledMoodSegment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()

	now := s.now()
	for _, seg := range s.segments {
		if !seg.Timestamp.After(now) && now.Before(seg.Timestamp.Add(s.segmentDuration)) {
			return seg, true
		}
	}
	return domain.ScheduledMoodSegment{}, false
}

// ShouldRegenerate reports whether the remaining queue has shrunk to
// the threshold and no generation is already running.
func (s *Scheduler) ShouldRegenerate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	return len(s.segments) <= s.minSegments && !s.generating
}

// Append merges new segments into the queue, deduplicating by id and
// re-sorting by timestamp.
func (s *Scheduler) Append(segments []domain.ScheduledMoodSegment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeLocked(segments)
}

// Regenerate runs one generation cycle. At most one call may be in
// flight: concurrent callers get domain.ErrGenerationInFlight and must
// wait for the running call to settle. A generation failure leaves the
// queue untouched.
func (s *Scheduler) Regenerate(ctx context.Context) error {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return domain.ErrGenerationInFlight
	}
	s.generating = true
	s.pruneLocked()

	nextStart := s.now()
	if len(s.segments) > 0 {
		nextStart = s.segments[len(s.segments)-1].Timestamp.Add(s.segmentDuration)
	}
	count := s.segmentCount
	s.mu.Unlock()

	segments, err := s.generate(ctx, nextStart, count)

	s.mu.Lock()
	s.generating = false
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("mood segment generation failed", zap.Error(err))
		return err
	}
	s.mergeLocked(segments)
	queued := len(s.segments)
	s.mu.Unlock()

	s.logger.Info("mood segments generated",
		zap.Int("generated", len(segments)),
		zap.Int("queued", queued),
		zap.Time("next_start", nextStart),
	)
	return nil
}

// Run drives the scheduler on a fixed tick until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler loop stopped")
			return
		case <-ticker.C:
			if !s.ShouldRegenerate() {
				continue
			}
			// Regenerate logs its own failures; the queue is unchanged
			// on error and the next tick retries.
			_ = s.Regenerate(ctx)
		}
	}
}

// pruneLocked drops segments whose window has fully passed and keeps
// the queue sorted. Callers must hold mu.
func (s *Scheduler) pruneLocked() {
	now := s.now()
	kept := s.segments[:0]
	for _, seg := range s.segments {
		if seg.Timestamp.Add(s.segmentDuration).After(now) {
			kept = append(kept, seg)
		}
	}
	s.segments = kept
	sort.Slice(s.segments, func(i, j int) bool {
		return s.segments[i].Timestamp.Before(s.segments[j].Timestamp)
	})
}

// mergeLocked adds segments, deduplicating by id. Callers must hold mu.
func (s *Scheduler) mergeLocked(segments []domain.ScheduledMoodSegment) {
	seen := make(map[string]bool, len(s.segments))
	for _, seg := range s.segments {
		seen[seg.ID] = true
	}
	for _, seg := range segments {
		if seg.ID == "" || seen[seg.ID] {
			continue
		}
		seen[seg.ID] = true
		s.segments = append(s.segments, seg)
	}
	sort.Slice(s.segments, func(i, j int) bool {
		return s.segments[i].Timestamp.Before(s.segments[j].Timestamp)
	})
}
