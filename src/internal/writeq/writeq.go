// Package writeq provides a debounced write-coalescing queue: callers
// push successive snapshots of some state, and only the most recent
// snapshot is written once the stream has been quiet for a while. Rapid
// successive changes therefore cost one write, not one write each.
package writeq

import (
	"sync"
	"time"
)

// DefaultQuiet is the debounce window applied when no override is given.
const DefaultQuiet = 250 * time.Millisecond

// Queue coalesces pushed values and hands the newest one to the write
// function after each quiet period. Close flushes any pending value
// before returning.
type Queue[T any] struct {
	write   func(T) error
	quiet   time.Duration
	onError func(error)

	mu      sync.Mutex
	latest  T
	dirty   bool
	closed  bool
	lastErr error

	kick chan struct{}
	done chan struct{}
}

// Option configures a Queue.
type Option[T any] func(*Queue[T])

// WithQuiet overrides the debounce window.
func WithQuiet[T any](d time.Duration) Option[T] {
	return func(q *Queue[T]) {
		q.quiet = d
	}
}

// WithErrorHandler installs a callback invoked when a write fails.
// Without one, failures are still reported from Close.
func WithErrorHandler[T any](fn func(error)) Option[T] {
	return func(q *Queue[T]) {
		q.onError = fn
	}
}

// New starts a queue writing through fn.
func New[T any](fn func(T) error, opts ...Option[T]) *Queue[T] {
	q := &Queue[T]{
		write: fn,
		quiet: DefaultQuiet,
		kick:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	go q.run()
	return q
}

// Push records v as the newest state and restarts the quiet period.
// Pushes after Close are dropped.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.latest = v
	q.dirty = true
	// A full buffer means the worker already owes us a timer reset.
	select {
	case q.kick <- struct{}{}:
	default:
	}
}

// Close flushes the pending value, stops the worker, and returns the
// last write error, if any. Safe to call more than once.
func (q *Queue[T]) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return q.takeErr()
	}
	q.closed = true
	q.mu.Unlock()

	close(q.kick)
	<-q.done
	return q.takeErr()
}

func (q *Queue[T]) takeErr() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lastErr
}

func (q *Queue[T]) run() {
	timer := time.NewTimer(q.quiet)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case _, ok := <-q.kick:
			if !ok {
				q.flush()
				close(q.done)
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(q.quiet)
		case <-timer.C:
			q.flush()
		}
	}
}

func (q *Queue[T]) flush() {
	q.mu.Lock()
	if !q.dirty {
		q.mu.Unlock()
		return
	}
	v := q.latest
	q.dirty = false
	q.mu.Unlock()

	if err := q.write(v); err != nil {
		q.mu.Lock()
		q.lastErr = err
		q.mu.Unlock()
		if q.onError != nil {
			q.onError(err)
		}
	}
}
