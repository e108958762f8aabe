package throttle

import (
	"context"
	"sync"
	"time"
)

type waiter struct {
	ready chan error
}

// Window admits up to Limit callers per fixed window of Period. Callers over
// the limit wait in a FIFO queue; a timer at each window boundary resets the
// count and admits queued callers in order. New arrivals never overtake the
// queue.
type Window struct {
	limit  int
	period time.Duration
	reject bool

	mu     sync.Mutex
	count  int
	start  time.Time
	queue  []*waiter
	timer  *time.Timer
	closed bool
}

// NewWindow creates a fixed-window limiter. Options must be valid.
func NewWindow(opts Options) *Window {
	return &Window{
		limit:  opts.Limit,
		period: opts.Period,
		reject: opts.RejectOnExceed,
		start:  time.Now(),
	}
}

// Acquire implements Limiter.
func (w *Window) Acquire(ctx context.Context) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	w.mu.Lock()

	if w.closed {
		w.mu.Unlock()

		return ErrLimiterClosed
	}

	if len(w.queue) == 0 {
		now := time.Now()
		if now.Sub(w.start) >= w.period {
			w.start = now
			w.count = 0
		}

		if w.count < w.limit {
			w.count++
			w.mu.Unlock()

			return nil
		}
	}

	if w.reject {
		w.mu.Unlock()

		return ErrLimitExceeded
	}

	wt := &waiter{ready: make(chan error, 1)}
	w.queue = append(w.queue, wt)
	w.scheduleLocked()
	w.mu.Unlock()

	select {
	case err := <-wt.ready:
		return err
	case <-ctx.Done():
		w.mu.Lock()
		w.removeLocked(wt)
		w.mu.Unlock()

		return ctx.Err()
	}
}

// Stats implements Limiter.
func (w *Window) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Stats{
		Limit:       w.limit,
		Admitted:    w.count,
		Waiting:     len(w.queue),
		WindowStart: w.start,
	}
}

// Close implements Limiter.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	for _, wt := range w.queue {
		wt.ready <- ErrLimiterClosed
	}

	w.queue = nil
}

// scheduleLocked arms the rollover timer for the current window boundary.
func (w *Window) scheduleLocked() {
	if w.timer != nil {
		return
	}

	delay := time.Until(w.start.Add(w.period))
	if delay < 0 {
		delay = 0
	}

	w.timer = time.AfterFunc(delay, w.rollover)
}

func (w *Window) rollover() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.timer = nil

	if w.closed {
		return
	}

	w.start = time.Now()
	w.count = 0

	for w.count < w.limit && len(w.queue) > 0 {
		wt := w.queue[0]
		w.queue[0] = nil
		w.queue = w.queue[1:]
		w.count++
		wt.ready <- nil
	}

	if len(w.queue) > 0 {
		w.scheduleLocked()
	}
}

// removeLocked drops wt from the queue. If wt was admitted in the meantime
// its slot stays spent for the current window.
func (w *Window) removeLocked(wt *waiter) {
	for i, queued := range w.queue {
		if queued == wt {
			w.queue = append(w.queue[:i], w.queue[i+1:]...)

			return
		}
	}
}
