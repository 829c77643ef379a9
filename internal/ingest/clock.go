package ingest

import "time"

// Timer is a cancelable pending callback.
type Timer interface {
	// Stop cancels the timer; reports whether it was still pending.
	Stop() bool
}

// Clock abstracts wall time and timer scheduling so reconnect timing
// can be tested without real delays.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock returns the wall clock.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now().UTC() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
