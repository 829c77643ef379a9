package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testStart = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// segmentsFrom builds count segments spaced by the default duration.
func segmentsFrom(start time.Time, count int) []domain.ScheduledMoodSegment {
	segs := make([]domain.ScheduledMoodSegment, 0, count)
	for i := 0; i < count; i++ {
		segs = append(segs, domain.ScheduledMoodSegment{
			ID:        uuid.NewString(),
			Timestamp: start.Add(time.Duration(i) * DefaultSegmentDuration),
			MoodName:  fmt.Sprintf("mood-%d", i),
		})
	}
	return segs
}

func stubGenerator(err error) GenerateFunc {
	return func(_ context.Context, nextStart time.Time, count int) ([]domain.ScheduledMoodSegment, error) {
		if err != nil {
			return nil, err
		}
		return segmentsFrom(nextStart, count), nil
	}
}

func newTestScheduler(gen GenerateFunc, now *time.Time) *Scheduler {
	return NewScheduler(gen, zap.NewNop(), WithNow(func() time.Time { return *now }))
}

func TestScheduler_RegeneratePopulatesEmptyQueue(t *testing.T) {
	now := testStart
	s := newTestScheduler(stubGenerator(nil), &now)

	if !s.ShouldRegenerate() {
		t.Fatal("ShouldRegenerate() = false for an empty queue")
	}
	if err := s.Regenerate(context.Background()); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}

	scheduled := s.Scheduled()
	if len(scheduled) != DefaultSegmentCount {
		t.Fatalf("Scheduled() length = %d, want %d", len(scheduled), DefaultSegmentCount)
	}
	// Empty queue: first segment starts at now.
	if !scheduled[0].Timestamp.Equal(now) {
		t.Errorf("first segment at %v, want %v", scheduled[0].Timestamp, now)
	}
	if s.ShouldRegenerate() {
		t.Error("ShouldRegenerate() = true right after the queue was filled")
	}
}

func TestScheduler_NextStartFollowsLastSegment(t *testing.T) {
	now := testStart
	var gotNextStart time.Time
	gen := func(_ context.Context, nextStart time.Time, count int) ([]domain.ScheduledMoodSegment, error) {
		gotNextStart = nextStart
		return segmentsFrom(nextStart, count), nil
	}
	s := newTestScheduler(gen, &now)

	last := testStart.Add(30 * time.Minute)
	s.Append([]domain.ScheduledMoodSegment{
		{ID: "a", Timestamp: testStart.Add(10 * time.Minute)},
		{ID: "b", Timestamp: last},
	})

	if err := s.Regenerate(context.Background()); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	want := last.Add(DefaultSegmentDuration)
	if !gotNextStart.Equal(want) {
		t.Errorf("generator nextStart = %v, want %v", gotNextStart, want)
	}
}

func TestScheduler_PruneDropsExpiredSegments(t *testing.T) {
	now := testStart
	s := newTestScheduler(stubGenerator(nil), &now)

	s.Append(segmentsFrom(testStart, 10))
	if got := len(s.Scheduled()); got != 10 {
		t.Fatalf("Scheduled() length = %d, want 10", got)
	}

	// Advance past the first seven windows: 7 expired, 3 remain.
	now = testStart.Add(7 * DefaultSegmentDuration)
	if got := len(s.Scheduled()); got != 3 {
		t.Fatalf("Scheduled() length = %d after expiry, want 3", got)
	}
	if !s.ShouldRegenerate() {
		t.Error("ShouldRegenerate() = false at the threshold")
	}
}

func TestScheduler_Current(t *testing.T) {
	now := testStart
	s := newTestScheduler(stubGenerator(nil), &now)
	s.Append(segmentsFrom(testStart, 3))

	now = testStart.Add(15 * time.Minute) // inside the second window
	current, ok := s.Current()
	if !ok {
		t.Fatal("Current() found nothing")
	}
	if current.MoodName != "mood-1" {
		t.Errorf("Current() = %s, want mood-1", current.MoodName)
	}

	now = testStart.Add(45 * time.Minute) // past every window
	if _, ok := s.Current(); ok {
		t.Error("Current() found a segment after all windows passed")
	}
}

func TestScheduler_AppendDeduplicatesByID(t *testing.T) {
	now := testStart
	s := newTestScheduler(stubGenerator(nil), &now)

	seg := domain.ScheduledMoodSegment{ID: "dup", Timestamp: testStart.Add(time.Hour)}
	s.Append([]domain.ScheduledMoodSegment{seg})
	s.Append([]domain.ScheduledMoodSegment{seg, {ID: "other", Timestamp: testStart.Add(30 * time.Minute)}})

	scheduled := s.Scheduled()
	if len(scheduled) != 2 {
		t.Fatalf("Scheduled() length = %d, want 2", len(scheduled))
	}
	// Sorted by timestamp.
	if scheduled[0].ID != "other" || scheduled[1].ID != "dup" {
		t.Errorf("Scheduled() order = %s, %s", scheduled[0].ID, scheduled[1].ID)
	}
}

func TestScheduler_SingleFlightGuard(t *testing.T) {
	now := testStart
	started := make(chan struct{})
	release := make(chan struct{})
	gen := func(_ context.Context, nextStart time.Time, count int) ([]domain.ScheduledMoodSegment, error) {
		close(started)
		<-release
		return segmentsFrom(nextStart, count), nil
	}
	s := newTestScheduler(gen, &now)

	done := make(chan error, 1)
	go func() { done <- s.Regenerate(context.Background()) }()
	<-started

	if s.ShouldRegenerate() {
		t.Error("ShouldRegenerate() = true while a generation is in flight")
	}
	if err := s.Regenerate(context.Background()); !errors.Is(err, domain.ErrGenerationInFlight) {
		t.Errorf("concurrent Regenerate() error = %v, want ErrGenerationInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if len(s.Scheduled()) != DefaultSegmentCount {
		t.Errorf("queue not populated after the in-flight call settled")
	}
}

func TestScheduler_RunRetriesAfterGenerationFailure(t *testing.T) {
	now := testStart
	calls := make(chan int, 2)
	attempts := 0
	gen := func(_ context.Context, nextStart time.Time, count int) ([]domain.ScheduledMoodSegment, error) {
		attempts++
		calls <- attempts
		if attempts == 1 {
			return nil, errors.New("generator down")
		}
		return segmentsFrom(nextStart, count), nil
	}
	s := newTestScheduler(gen, &now)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	// First tick fails, a later tick fills the queue.
	for i := 1; i <= 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatalf("generation attempt %d never ran", i)
		}
	}
	cancel()
	<-done

	if len(s.Scheduled()) != DefaultSegmentCount {
		t.Errorf("queue not populated after the loop recovered from a failure")
	}
}

func TestScheduler_GenerationFailureLeavesQueueUntouched(t *testing.T) {
	now := testStart
	s := newTestScheduler(stubGenerator(errors.New("generator down")), &now)
	s.Append(segmentsFrom(testStart.Add(time.Hour), 2))

	if err := s.Regenerate(context.Background()); err == nil {
		t.Fatal("Regenerate() error = nil, want generation failure")
	}
	if got := len(s.Scheduled()); got != 2 {
		t.Errorf("Scheduled() length = %d after failed generation, want 2", got)
	}
	// Guard is cleared: a later attempt may run.
	if !s.ShouldRegenerate() {
		t.Error("ShouldRegenerate() = false after a failed generation settled")
	}
}
