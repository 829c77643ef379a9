package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/scoring"
	"go.uber.org/zap"
)

// State is the lifecycle phase of the listener.
type State string

const (
	StateStopped      State = "STOPPED"
	StateSubscribing  State = "SUBSCRIBING"
	StateLive         State = "LIVE"
	StateReconnecting State = "RECONNECTING"
)

// BackoffPolicy controls reconnect scheduling after transient failures.
type BackoffPolicy struct {
	Base        time.Duration
	Max         time.Duration
	MaxAttempts int
}

// DefaultBackoff is the production reconnect policy: 1s doubling up to
// 30s, terminal after five consecutive failures.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{Base: time.Second, Max: 30 * time.Second, MaxAttempts: 5}
}

// Delay returns the wait before reconnect attempt n (1-based).
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := p.Base << (attempt - 1)
	if d > p.Max || d <= 0 {
		return p.Max
	}
	return d
}

// SampleStore persists each scored sample. Implementations must be safe
// for calls from the source's delivery goroutine.
type SampleStore interface {
	Store(ctx context.Context, sample domain.PeriodicSample, sleepScore, stressScore int) error
}

// Listener owns the process's single subscription to the real-time
// sample source. Each delivered sample is scored and written into the
// metrics cache; transient subscription failures are retried with a
// capped exponential backoff, at most one pending reconnect timer at a
// time.
type Listener struct {
	source  SampleSource
	cache   *MetricsCache
	store   SampleStore
	logger  *zap.Logger
	clock   Clock
	backoff BackoffPolicy

	mu      sync.Mutex
	state   State
	attempt int
	sub     Subscription
	timer   Timer
}

// ListenerOption customizes a Listener.
type ListenerOption func(*Listener)

// WithClock injects a fake clock for tests.
func WithClock(c Clock) ListenerOption {
	return func(l *Listener) { l.clock = c }
}

// WithBackoff overrides the reconnect policy.
func WithBackoff(p BackoffPolicy) ListenerOption {
	return func(l *Listener) { l.backoff = p }
}

// NewListener creates a stopped listener. store may be nil when sample
// persistence is disabled.
func NewListener(source SampleSource, cache *MetricsCache, store SampleStore, logger *zap.Logger, opts ...ListenerOption) *Listener {
	l := &Listener{
		source:  source,
		cache:   cache,
		store:   store,
		logger:  logger,
		clock:   RealClock(),
		backoff: DefaultBackoff(),
		state:   StateStopped,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current lifecycle phase.
func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Start subscribes to the sample source. Starting an already live or
// subscribing listener is a no-op: only one subscription exists per
// process.
func (l *Listener) Start(ctx context.Context) {
	l.mu.Lock()
	if l.state == StateLive || l.state == StateSubscribing {
		l.mu.Unlock()
		l.logger.Debug("listener already running, ignoring start", zap.String("state", string(l.state)))
		return
	}
	l.state = StateSubscribing
	l.attempt = 0
	l.mu.Unlock()

	l.subscribe(ctx)
}

// Stop tears the listener down. Always safe to call: it cancels any
// pending reconnect timer and releases the subscription handle.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if l.sub != nil {
		l.sub.Close()
		l.sub = nil
	}
	l.state = StateStopped
	l.logger.Info("listener stopped")
}

func (l *Listener) subscribe(ctx context.Context) {
	sub, err := l.source.Subscribe(ctx,
		func(sample domain.PeriodicSample) { l.handleSample(ctx, sample) },
		func(err error) { l.handleError(ctx, err) },
	)
	if err != nil {
		l.handleError(ctx, err)
		return
	}

	l.mu.Lock()
	if l.state != StateSubscribing {
		// Stop, or an error delivered while Subscribe was still in
		// flight, raced this call. Release the fresh handle; a
		// scheduled reconnect owns any recovery.
		state := l.state
		l.mu.Unlock()
		sub.Close()
		l.logger.Debug("discarding subscription after state change", zap.String("state", string(state)))
		return
	}
	l.sub = sub
	l.state = StateLive
	l.mu.Unlock()

	l.logger.Info("listener live")
}

// handleSample scores one delivered sample and publishes the result.
// A successful delivery resets the reconnect attempt counter.
func (l *Listener) handleSample(ctx context.Context, sample domain.PeriodicSample) {
	sleepScore := scoring.SleepScore(sample)
	stressScore := scoring.StressScore(sample)

	now := l.clock.Now()
	l.cache.Set(sleepScore, stressScore, now)

	l.mu.Lock()
	l.attempt = 0
	l.mu.Unlock()

	if l.store != nil {
		if err := l.store.Store(ctx, sample, sleepScore, stressScore); err != nil {
			l.logger.Warn("failed to persist sample", zap.Error(err))
		}
	}

	l.logger.Debug("sample processed",
		zap.Int("sleep_score", sleepScore),
		zap.Int("stress_score", stressScore),
		zap.Bool("is_fallback", sample.IsFallback),
	)
}

func (l *Listener) handleError(ctx context.Context, err error) {
	l.mu.Lock()
	if l.state == StateStopped {
		l.mu.Unlock()
		return
	}

	if l.sub != nil {
		l.sub.Close()
		l.sub = nil
	}

	if !IsTransient(err) {
		l.state = StateStopped
		l.mu.Unlock()
		l.logger.Error("permanent sample source failure, listener stopped", zap.Error(err))
		return
	}

	l.attempt++
	if l.attempt >= l.backoff.MaxAttempts {
		l.state = StateStopped
		attempt := l.attempt
		l.mu.Unlock()
		l.logger.Error("reconnect attempts exhausted, listener stopped",
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return
	}

	delay := l.backoff.Delay(l.attempt)
	l.state = StateReconnecting
	if l.timer != nil {
		// One pending timer at a time.
		l.timer.Stop()
	}
	l.timer = l.clock.AfterFunc(delay, func() { l.resubscribe(ctx) })
	attempt := l.attempt
	l.mu.Unlock()

	l.logger.Warn("transient sample source failure, reconnect scheduled",
		zap.Int("attempt", attempt),
		zap.Duration("delay", delay),
		zap.Error(err),
	)
}

func (l *Listener) resubscribe(ctx context.Context) {
	l.mu.Lock()
	if l.state != StateReconnecting {
		l.mu.Unlock()
		return
	}
	l.state = StateSubscribing
	l.timer = nil
	l.mu.Unlock()

	l.subscribe(ctx)
}
