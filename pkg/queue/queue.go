// Package queue provides the bounded hand-off queue connecting the
// units of a pipeline.
//
// Enqueue never blocks: when the queue is full, the newest value is
// dropped and counted. Dequeue comes in a zero-wait form for polling
// consumers and a suspending form for consumers that park until a value
// arrives.
//
// The producer closes the queue when there's no more input; consumers
// still get every pending value before ErrClosed.
package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned by Dequeue once the queue is closed and empty.
var ErrClosed = errors.New("queue closed")

// DefaultCapacity is the number of pending values a queue holds.
const DefaultCapacity = 5

// Stats are the counters of a queue.
type Stats struct {
	// Sent counts values accepted by the queue.
	Sent uint64
	// Dropped counts values rejected because the queue was full.
	Dropped uint64
	// Received counts values taken out of the queue.
	Received uint64
}

// Queue is a fixed-capacity FIFO.
type Queue[T any] struct {
	name string
	ch   chan T

	sent     uint64
	dropped  uint64
	received uint64

	closed    int32
	closeOnce sync.Once
}

// New creates a Queue. A non-positive capacity uses DefaultCapacity.
func New[T any](name string, capacity int) *Queue[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue[T]{name: name, ch: make(chan T, capacity)}
}

// Name implements Named.
func (q *Queue[T]) Name() string {
	return q.name
}

// Cap returns the capacity.
func (q *Queue[T]) Cap() int {
	return cap(q.ch)
}

// Len returns the number of pending values.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}

// TryEnqueue appends v without waiting. It returns false and leaves
// the queue unchanged if the queue is full.
func (q *Queue[T]) TryEnqueue(v T) bool {
	select {
	case q.ch <- v:
		atomic.AddUint64(&q.sent, 1)
		return true
	default:
		atomic.AddUint64(&q.dropped, 1)
		return false
	}
}

// TryDequeue takes the oldest value without waiting.
func (q *Queue[T]) TryDequeue() (v T, ok bool) {
	select {
	case v, ok = <-q.ch:
		if ok {
			atomic.AddUint64(&q.received, 1)
		}
		return v, ok
	default:
		return v, false
	}
}

// Dequeue suspends until a value is available or ctx is done.
// It returns ErrClosed when the queue is closed and empty.
func (q *Queue[T]) Dequeue(ctx context.Context) (v T, err error) {
	v, _, err = q.DequeueUntil(ctx, nil)
	return
}

// DequeueUntil is Dequeue which also returns, with ok false, when tick
// fires. A nil tick never fires.
func (q *Queue[T]) DequeueUntil(ctx context.Context, tick <-chan time.Time) (v T, ok bool, err error) {
	select {
	case v, ok = <-q.ch:
		if !ok {
			return v, false, ErrClosed
		}
		atomic.AddUint64(&q.received, 1)
		return v, true, nil
	case <-tick:
		return v, false, nil
	case <-ctx.Done():
		return v, false, ctx.Err()
	}
}

// Close is called by the producer when nothing more will be enqueued.
// TryEnqueue must not be called afterwards.
func (q *Queue[T]) Close() {
	q.closeOnce.Do(func() {
		atomic.StoreInt32(&q.closed, 1)
		close(q.ch)
	})
}

// Drained tells the queue is closed and every value has been taken.
func (q *Queue[T]) Drained() bool {
	return atomic.LoadInt32(&q.closed) != 0 && len(q.ch) == 0
}

// Stats returns a snapshot of the counters.
func (q *Queue[T]) Stats() Stats {
	return Stats{
		Sent:     atomic.LoadUint64(&q.sent),
		Dropped:  atomic.LoadUint64(&q.dropped),
		Received: atomic.LoadUint64(&q.received),
	}
}
