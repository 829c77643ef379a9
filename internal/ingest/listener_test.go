package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"go.uber.org/zap"
)

// fakeClock runs timers on demand instead of waiting.
type fakeClock struct {
	now     time.Time
	pending []*fakeTimer
	delays  []time.Duration
}

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	timer := &fakeTimer{fn: f}
	c.pending = append(c.pending, timer)
	c.delays = append(c.delays, d)
	return timer
}

// fire runs every pending timer that has not been stopped.
func (c *fakeClock) fire() {
	due := c.pending
	c.pending = nil
	for _, timer := range due {
		if !timer.stopped {
			timer.fn()
		}
	}
}

// fakeSource hands control of sample and error delivery to the test.
type fakeSource struct {
	subscribes  int
	failNext    int
	failErr     error
	errDuring   error
	onSample    SampleHandler
	onError     ErrorHandler
	closedCount int
}

type fakeSubscription struct{ source *fakeSource }

func (s *fakeSubscription) Close() { s.source.closedCount++ }

func (s *fakeSource) Subscribe(ctx context.Context, onSample SampleHandler, onError ErrorHandler) (Subscription, error) {
	s.subscribes++
	if s.failNext > 0 {
		s.failNext--
		return nil, s.failErr
	}
	if s.errDuring != nil {
		err := s.errDuring
		s.errDuring = nil
		onError(err)
	}
	s.onSample = onSample
	s.onError = onError
	return &fakeSubscription{source: s}, nil
}

func transientErr() error {
	return &SourceError{Kind: ErrorKindUnavailable}
}

func newTestListener(source *fakeSource, clock *fakeClock) (*Listener, *MetricsCache) {
	cache := NewMetricsCache()
	l := NewListener(source, cache, nil, zap.NewNop(), WithClock(clock))
	return l, cache
}

func TestListener_StartIsIdempotent(t *testing.T) {
	source := &fakeSource{}
	clock := newFakeClock()
	l, _ := newTestListener(source, clock)

	l.Start(context.Background())
	l.Start(context.Background())

	if source.subscribes != 1 {
		t.Errorf("Subscribe called %d times, want 1", source.subscribes)
	}
	if got := l.State(); got != StateLive {
		t.Errorf("State() = %v, want LIVE", got)
	}
}

func TestListener_ScoresAndCachesSamples(t *testing.T) {
	source := &fakeSource{}
	clock := newFakeClock()
	l, cache := newTestListener(source, clock)

	l.Start(context.Background())
	source.onSample(domain.PeriodicSample{
		HeartRateAvg:       55,
		HRVSDNN:            60,
		MovementCount:      2,
		RespiratoryRateAvg: 16,
	})

	got, ok := cache.Get()
	if !ok {
		t.Fatal("cache empty after sample delivery")
	}
	if got.SleepScore != 80 || got.StressScore != 24 {
		t.Errorf("cached metrics = %+v, want sleep 80 stress 24", got)
	}
	if got.UpdatedAt != clock.Now().UnixMilli() {
		t.Errorf("UpdatedAt = %d, want clock time", got.UpdatedAt)
	}
}

func TestListener_TransientFailuresBackOffThenStop(t *testing.T) {
	source := &fakeSource{}
	clock := newFakeClock()
	l, _ := newTestListener(source, clock)

	l.Start(context.Background())

	// Five consecutive transient failures: four scheduled reconnects,
	// then terminal stop.
	for i := 0; i < 4; i++ {
		source.onError(transientErr())
		if got := l.State(); got != StateReconnecting {
			t.Fatalf("after failure %d: State() = %v, want RECONNECTING", i+1, got)
		}
		clock.fire()
		if got := l.State(); got != StateLive {
			t.Fatalf("after reconnect %d: State() = %v, want LIVE", i+1, got)
		}
	}
	source.onError(transientErr())

	if got := l.State(); got != StateStopped {
		t.Fatalf("after 5th failure: State() = %v, want STOPPED", got)
	}
	if source.subscribes != 5 {
		t.Errorf("Subscribe called %d times, want 5", source.subscribes)
	}

	wantDelays := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}
	if len(clock.delays) != len(wantDelays) {
		t.Fatalf("scheduled %d reconnects, want %d", len(clock.delays), len(wantDelays))
	}
	for i, want := range wantDelays {
		if clock.delays[i] != want {
			t.Errorf("reconnect delay %d = %v, want %v", i+1, clock.delays[i], want)
		}
	}

	// Terminal: no further reconnects fire.
	clock.fire()
	if source.subscribes != 5 {
		t.Errorf("reconnect issued after terminal stop")
	}
}

func TestListener_SuccessfulDeliveryResetsAttempts(t *testing.T) {
	source := &fakeSource{}
	clock := newFakeClock()
	l, _ := newTestListener(source, clock)

	l.Start(context.Background())

	for i := 0; i < 3; i++ {
		source.onError(transientErr())
		clock.fire()
	}
	// A delivered sample resets the counter, buying five fresh failures.
	source.onSample(domain.PeriodicSample{HeartRateAvg: 60})

	for i := 0; i < 4; i++ {
		source.onError(transientErr())
		if got := l.State(); got != StateReconnecting {
			t.Fatalf("after post-reset failure %d: State() = %v, want RECONNECTING", i+1, got)
		}
		clock.fire()
	}
	source.onError(transientErr())
	if got := l.State(); got != StateStopped {
		t.Errorf("State() = %v, want STOPPED", got)
	}
}

func TestListener_PermanentFailureStopsImmediately(t *testing.T) {
	source := &fakeSource{}
	clock := newFakeClock()
	l, _ := newTestListener(source, clock)

	l.Start(context.Background())
	source.onError(&SourceError{Kind: ErrorKindPermissionDenied})

	if got := l.State(); got != StateStopped {
		t.Errorf("State() = %v, want STOPPED", got)
	}
	if len(clock.delays) != 0 {
		t.Errorf("reconnect scheduled for a permanent failure")
	}
}

func TestListener_BackoffDelayCapped(t *testing.T) {
	p := DefaultBackoff()
	if got := p.Delay(1); got != time.Second {
		t.Errorf("Delay(1) = %v, want 1s", got)
	}
	if got := p.Delay(10); got != 30*time.Second {
		t.Errorf("Delay(10) = %v, want 30s cap", got)
	}
}

func TestListener_StopCancelsPendingReconnect(t *testing.T) {
	source := &fakeSource{}
	clock := newFakeClock()
	l, _ := newTestListener(source, clock)

	l.Start(context.Background())
	source.onError(transientErr())
	if got := l.State(); got != StateReconnecting {
		t.Fatalf("State() = %v, want RECONNECTING", got)
	}

	l.Stop()
	clock.fire()

	if got := l.State(); got != StateStopped {
		t.Errorf("State() = %v, want STOPPED", got)
	}
	if source.subscribes != 1 {
		t.Errorf("reconnect fired after Stop()")
	}
}

func TestListener_SubscribeFailureSchedulesReconnect(t *testing.T) {
	source := &fakeSource{failNext: 1, failErr: transientErr()}
	clock := newFakeClock()
	l, _ := newTestListener(source, clock)

	l.Start(context.Background())
	if got := l.State(); got != StateReconnecting {
		t.Fatalf("State() = %v, want RECONNECTING", got)
	}

	clock.fire()
	if got := l.State(); got != StateLive {
		t.Errorf("State() = %v, want LIVE after retry", got)
	}
	if source.subscribes != 2 {
		t.Errorf("Subscribe called %d times, want 2", source.subscribes)
	}
}

func TestListener_ErrorDuringSubscribeKeepsReconnecting(t *testing.T) {
	source := &fakeSource{errDuring: transientErr()}
	clock := newFakeClock()
	l, _ := newTestListener(source, clock)

	// The error lands while Subscribe is still executing, so the
	// reconnect is already scheduled by the time the handle comes back.
	// The stale handle must be released, not promoted to live.
	l.Start(context.Background())

	if got := l.State(); got != StateReconnecting {
		t.Fatalf("State() = %v, want RECONNECTING", got)
	}
	if source.closedCount != 1 {
		t.Errorf("stale subscription closed %d times, want 1", source.closedCount)
	}

	clock.fire()

	if source.subscribes != 2 {
		t.Errorf("Subscribe called %d times, want 2", source.subscribes)
	}
	if got := l.State(); got != StateLive {
		t.Errorf("State() = %v, want LIVE after reconnect", got)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"internal", &SourceError{Kind: ErrorKindInternal}, true},
		{"unavailable", &SourceError{Kind: ErrorKindUnavailable}, true},
		{"deadline", &SourceError{Kind: ErrorKindDeadlineExceeded}, true},
		{"transport reset", &SourceError{Kind: ErrorKindTransportReset}, true},
		{"permission denied", &SourceError{Kind: ErrorKindPermissionDenied}, false},
		{"unknown kind", &SourceError{Kind: "weird"}, false},
		{"plain error", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}
