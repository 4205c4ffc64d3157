package gamestate

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Unsubscriber removes a subscription. Calling it more than once is a no-op.
type Unsubscriber func()

// Readable exposes read-only reactive state
type Readable[T any] interface {
	Get() T
	Subscribe(fn func(T)) Unsubscriber
}

// subscriber is a registered callback handle
type subscriber[T any] struct {
	fn     func(T)
	active atomic.Bool
}

// notification is one pending delivery round
type notification[T any] struct {
	subs  []*subscriber[T]
	value T
}

// Writable is an in-memory observable value.
//
// Every Set or Update notifies each active subscriber exactly once, in
// registration order, with the value written. Notifications run outside the
// internal lock, so a subscriber may write back to the same Writable; such
// nested writes are queued and delivered after the current round completes.
//
// A Writable is safe for concurrent use. Rounds are delivered one at a time
// in write order by whichever goroutine started delivering. A write that
// arrives while another goroutine is delivering is queued behind the current
// round and returns without waiting for its subscribers to run.
type Writable[T any] struct {
	mu        sync.Mutex
	value     T
	subs      []*subscriber[T]
	queue     []notification[T]
	notifying bool
}

// NewWritable creates a Writable holding initial
func NewWritable[T any](initial T) *Writable[T] {
	return &Writable[T]{value: initial}
}

// Get returns the current value
func (w *Writable[T]) Get() T {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value
}

// Set replaces the value and notifies subscribers
func (w *Writable[T]) Set(value T) {
	w.mu.Lock()
	w.value = value
	w.enqueueLocked(value)
	w.drainLocked()
}

// Update replaces the value with fn(current) and notifies subscribers.
// fn runs under the Writable's lock and must not call back into it.
func (w *Writable[T]) Update(fn func(T) T) {
	w.mu.Lock()
	w.value = fn(w.value)
	w.enqueueLocked(w.value)
	w.drainLocked()
}

// Subscribe registers fn and invokes it immediately with the current value.
// fn is then invoked after every write until the returned Unsubscriber runs.
func (w *Writable[T]) Subscribe(fn func(T)) Unsubscriber {
	sub := &subscriber[T]{fn: fn}
	sub.active.Store(true)

	w.mu.Lock()
	w.subs = append(w.subs, sub)
	current := w.value
	w.mu.Unlock()

	fn(current)

	return func() {
		if !sub.active.CompareAndSwap(true, false) {
			return
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		w.subs = slices.DeleteFunc(w.subs, func(s *subscriber[T]) bool { return s == sub })
	}
}

// SubscriberCount returns the number of active subscriptions
func (w *Writable[T]) SubscriberCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

func (w *Writable[T]) enqueueLocked(value T) {
	if len(w.subs) == 0 {
		return
	}
	w.queue = append(w.queue, notification[T]{
		subs:  slices.Clone(w.subs),
		value: value,
	})
}

// drainLocked delivers queued notifications. It is entered with w.mu held and
// returns with it released. Only one caller drains at a time; writes made
// while a drain is running, from a subscriber or another goroutine, are
// delivered by that drain before it returns.
func (w *Writable[T]) drainLocked() {
	if w.notifying {
		w.mu.Unlock()
		return
	}
	w.notifying = true

	finished := false
	defer func() {
		if finished {
			return
		}
		// A subscriber panicked. The rest of its round is dropped, but rounds
		// queued behind it still go out before the panic continues.
		w.mu.Lock()
		w.notifying = false
		w.drainLocked()
	}()

	for len(w.queue) > 0 {
		next := w.queue[0]
		w.queue[0] = notification[T]{}
		w.queue = w.queue[1:]
		w.mu.Unlock()

		for _, sub := range next.subs {
			if sub.active.Load() {
				sub.fn(next.value)
			}
		}

		w.mu.Lock()
	}

	w.queue = nil
	w.notifying = false
	finished = true
	w.mu.Unlock()
}
