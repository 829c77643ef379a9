package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/driftwell/moodstream/internal/domain"
)

// ErrorKind is the stable classification string carried by sample
// source failures. The reconnect logic keys off these values.
type ErrorKind string

const (
	ErrorKindInternal         ErrorKind = "internal"
	ErrorKindUnavailable      ErrorKind = "unavailable"
	ErrorKindDeadlineExceeded ErrorKind = "deadline-exceeded"
	ErrorKindTransportReset   ErrorKind = "transport-reset"
	ErrorKindPermissionDenied ErrorKind = "permission-denied"
)

// SourceError wraps a subscription failure with its error kind.
type SourceError struct {
	Kind ErrorKind
	Err  error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sample source error (%s)", e.Kind)
	}
	return fmt.Sprintf("sample source error (%s): %v", e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// IsTransient reports whether a subscription failure is worth a
// reconnect attempt. Unknown kinds and plain errors are treated as
// permanent.
func IsTransient(err error) bool {
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		return false
	}
	switch srcErr.Kind {
	case ErrorKindInternal, ErrorKindUnavailable, ErrorKindDeadlineExceeded, ErrorKindTransportReset:
		return true
	default:
		return false
	}
}

// SampleHandler receives each newly observed sample.
type SampleHandler func(sample domain.PeriodicSample)

// ErrorHandler receives asynchronous subscription failures.
type ErrorHandler func(err error)

// Subscription is a live handle on the sample stream.
type Subscription interface {
	// Close releases the subscription. Safe to call more than once.
	Close()
}

// SampleSource is the push-based real-time stream the listener
// subscribes to.
type SampleSource interface {
	Subscribe(ctx context.Context, onSample SampleHandler, onError ErrorHandler) (Subscription, error)
}
