package usecase

import (
	"sync"
	"time"
)

// DefaultDebounceInterval is the quiet period before a price change commits
const DefaultDebounceInterval = 300 * time.Millisecond

// Debouncer coalesces rapid inputs: each Push resets the quiet timer, and only
// the last value pushed before the timer fires is committed, once.
type Debouncer[T any] struct {
	mu      sync.Mutex
	quiet   time.Duration
	commit  func(T)
	timer   *time.Timer
	pending T
	armed   bool
	gen     uint64
}

// NewDebouncer creates a debouncer that calls commit after quiet has elapsed
// without a new Push
func NewDebouncer[T any](quiet time.Duration, commit func(T)) *Debouncer[T] {
	if quiet <= 0 {
		quiet = DefaultDebounceInterval
	}
	return &Debouncer[T]{quiet: quiet, commit: commit}
}

// Push records v as the pending value and restarts the quiet interval
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

// Flush commits the pending value immediately, if any
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	v := d.take()
	d.mu.Unlock()

	d.commit(v)
}

// Stop discards the pending value without committing it
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.take()
}

// fire runs on the timer goroutine; a stale generation means a newer Push,
// Flush or Stop already superseded this timer.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.armed {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	d.commit(v)
}

// take clears the pending state; callers hold mu
func (d *Debouncer[T]) take() T {
	var zero T
	v := d.pending
	d.pending = zero
	d.armed = false
	d.gen++
	d.timer = nil
	return v
}
