package throttle

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Bucket is a token bucket holding Limit tokens, refilled evenly over Period.
type Bucket struct {
	limiter *rate.Limiter
	limit   int
	reject  bool
	start   time.Time

	admitted atomic.Int64
	waiting  atomic.Int64

	life context.Context //nolint:containedctx
	stop context.CancelFunc
}

// NewBucket creates a token-bucket limiter. Options must be valid.
func NewBucket(opts Options) *Bucket {
	life, stop := context.WithCancel(context.Background())

	return &Bucket{
		limiter: rate.NewLimiter(rate.Every(opts.Period/time.Duration(opts.Limit)), opts.Limit),
		limit:   opts.Limit,
		reject:  opts.RejectOnExceed,
		start:   time.Now(),
		life:    life,
		stop:    stop,
	}
}

// Acquire implements Limiter.
func (b *Bucket) Acquire(ctx context.Context) error {
	if b.life.Err() != nil {
		return ErrLimiterClosed
	}

	if b.reject {
		if !b.limiter.Allow() {
			return ErrLimitExceeded
		}

		b.admitted.Add(1)

		return nil
	}

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopAfter := context.AfterFunc(b.life, cancel)
	defer stopAfter()

	b.waiting.Add(1)
	err := b.limiter.Wait(waitCtx)
	b.waiting.Add(-1)

	if err != nil {
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case b.life.Err() != nil:
			return ErrLimiterClosed
		case errors.Is(err, context.Canceled):
			return ErrLimiterClosed
		default:
			return fmt.Errorf("waiting for admission: %w", err)
		}
	}

	b.admitted.Add(1)

	return nil
}

// Stats implements Limiter. Admitted counts every admission since creation.
func (b *Bucket) Stats() Stats {
	return Stats{
		Limit:       b.limit,
		Admitted:    int(b.admitted.Load()),
		Waiting:     int(b.waiting.Load()),
		WindowStart: b.start,
	}
}

// Close implements Limiter.
func (b *Bucket) Close() {
	b.stop()
}
