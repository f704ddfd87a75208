// Package task starts workers on their own goroutines and hands back a join
// handle. A handle can be awaited exactly once; a worker that panics is
// reported as a *PanicError from Join instead of crashing the program.
package task

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Sentinel errors returned by Join.
var (
	ErrJoined = errors.New("task already joined")
)

// State is the lifecycle of a spawned worker.
type State int32

const (
	Running State = iota
	Finished
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// PanicError reports a worker that terminated abnormally.
type PanicError struct {
	Name  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %s panicked: %v", e.Name, e.Value)
}

// Unwrap exposes the panic value when the worker panicked with an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Handle is the join side of a spawned worker.
type Handle struct {
	name   string
	g      errgroup.Group // exactly one goroutine
	done   chan struct{}
	state  atomic.Int32
	joined atomic.Bool
}

// Spawn runs fn on a new goroutine and returns immediately.
func Spawn(name string, fn func() error) *Handle {
	h := &Handle{name: name, done: make(chan struct{})}
	h.g.Go(func() (err error) {
		defer close(h.done)
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Name: name, Value: r, Stack: debug.Stack()}
			}
			if err != nil {
				h.state.Store(int32(Failed))
			} else {
				h.state.Store(int32(Finished))
			}
		}()
		return fn()
	})
	return h
}

// Name returns the name the worker was spawned with.
func (h *Handle) Name() string { return h.name }

// State reports where the worker is in its lifecycle.
func (h *Handle) State() State { return State(h.state.Load()) }

// Done is closed once the worker has returned or panicked.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Join blocks until the worker finishes and returns its error. Only the first
// call waits; later calls return ErrJoined.
func (h *Handle) Join() error {
	if !h.joined.CompareAndSwap(false, true) {
		return ErrJoined
	}
	return h.g.Wait()
}

// JoinAll joins every handle in order and returns once all of them have
// finished. Failures are collected, each prefixed with the worker's name.
func JoinAll(handles ...*Handle) error {
	var errs []error
	for _, h := range handles {
		if err := h.Join(); err != nil {
			errs = append(errs, fmt.Errorf("join %s: %w", h.name, err))
		}
	}
	return errors.Join(errs...)
}
