// Package oneshot is a single-use, single-slot channel between one producer
// and one consumer.
//
// The sender never blocks: the slot is buffered. The receiver blocks until
// either a value arrives or the sender is closed. Closing a sender that never
// sent is how a failed producer tells its consumer there is nothing to wait
// for, so a producer should always `defer tx.Close()`.
package oneshot

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Sentinel errors.
var (
	ErrClosed   = errors.New("oneshot: channel closed without a value")
	ErrSent     = errors.New("oneshot: value already sent")
	ErrReceived = errors.New("oneshot: value already received")
)

// Sender is the producing half.
type Sender[T any] struct {
	mu     sync.Mutex
	ch     chan T
	sent   bool
	closed bool
}

// Receiver is the consuming half.
type Receiver[T any] struct {
	ch       <-chan T
	received atomic.Bool
}

// New returns the two halves of a fresh channel.
func New[T any]() (*Sender[T], *Receiver[T]) {
	ch := make(chan T, 1)
	return &Sender[T]{ch: ch}, &Receiver[T]{ch: ch}
}

// Send places v in the slot and returns without waiting for the receiver.
func (s *Sender[T]) Send(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.sent:
		return ErrSent
	case s.closed:
		return ErrClosed
	}
	s.ch <- v // capacity 1, never blocks
	s.sent = true
	s.closed = true
	close(s.ch)
	return nil
}

// Close releases the receiver. It is safe to call more than once and after
// Send; a value already sent stays receivable.
func (s *Sender[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// Recv blocks until the value arrives. It returns ErrClosed with the zero
// value if the sender was closed without sending.
func (r *Receiver[T]) Recv() (T, error) {
	var zero T
	if !r.received.CompareAndSwap(false, true) {
		return zero, ErrReceived
	}
	v, ok := <-r.ch
	if !ok {
		return zero, ErrClosed
	}
	return v, nil
}
