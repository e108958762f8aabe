// Package throttle gates request admission per time window.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrLimitExceeded   = errors.New("connection limit reached for the current window")
	ErrLimiterClosed   = errors.New("rate limiter closed")
	ErrInvalidLimit    = errors.New("limit must be greater than zero")
	ErrInvalidPeriod   = errors.New("period must be greater than zero")
	ErrUnknownStrategy = errors.New("unknown limit strategy")
)

// Strategy names.
const (
	StrategyWindow = "window"
	StrategyBucket = "bucket"
)

// Limiter admits callers.
type Limiter interface {
	// Acquire returns once the caller is admitted. It fails with
	// ErrLimitExceeded in reject mode, ErrLimiterClosed after Close, or the
	// context's error.
	Acquire(ctx context.Context) error
	// Stats reports the current window.
	Stats() Stats
	// Close fails every queued caller and any later Acquire.
	Close()
}

// Options configures a Limiter.
type Options struct {
	// Limit is the number of admissions per Period.
	Limit int
	// Period is the window length.
	Period time.Duration
	// RejectOnExceed fails over-limit callers instead of queuing them.
	RejectOnExceed bool
}

// Stats is a point-in-time view of a limiter.
type Stats struct {
	Limit       int
	Admitted    int
	Waiting     int
	WindowStart time.Time
}

func (o Options) validate() error {
	if o.Limit <= 0 {
		return ErrInvalidLimit
	}

	if o.Period <= 0 {
		return ErrInvalidPeriod
	}

	return nil
}

// New builds a limiter for the named strategy. An empty strategy selects
// the fixed window.
func New(strategy string, opts Options) (Limiter, error) {
	err := opts.validate()
	if err != nil {
		return nil, err
	}

	switch strategy {
	case "", StrategyWindow:
		return NewWindow(opts), nil
	case StrategyBucket:
		return NewBucket(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}
