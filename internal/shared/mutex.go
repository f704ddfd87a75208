// Package shared guards a single value with a mutex that is poisoned when a
// holder panics.
//
// A *Mutex is the shared handle: every goroutine that needs the value gets
// the same pointer, and the value is only reachable through Do and Load while
// the lock is held. Once a holder panics the value may be half-updated, so
// every later acquisition fails with ErrPoisoned instead of exposing it.
package shared

import (
	"errors"
	"sync"
)

// ErrPoisoned is returned by every acquisition after a holder panicked.
var ErrPoisoned = errors.New("shared: lock poisoned by a panicking holder")

// Mutex is a value of type T guarded by a sync.Mutex.
type Mutex[T any] struct {
	mu       sync.Mutex
	v        T
	poisoned bool
}

// New returns a Mutex holding v.
func New[T any](v T) *Mutex[T] {
	return &Mutex[T]{v: v}
}

// Do acquires the lock, blocking until it is available, calls fn with the
// guarded value and releases the lock. If fn panics the mutex is poisoned
// before the lock is released and the panic keeps unwinding.
func (m *Mutex[T]) Do(fn func(v *T)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.poisoned {
		return ErrPoisoned
	}

	ok := false
	defer func() {
		if !ok {
			m.poisoned = true
		}
	}()
	fn(&m.v)
	ok = true
	return nil
}

// Load returns a copy of the guarded value.
func (m *Mutex[T]) Load() (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.poisoned {
		var zero T
		return zero, ErrPoisoned
	}
	return m.v, nil
}

// Poisoned reports whether a holder has panicked.
func (m *Mutex[T]) Poisoned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.poisoned
}
