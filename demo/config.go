// Package demo runs three small concurrency demonstrations: a worker joined
// by its initiator, a one-shot message handed from a worker to the
// initiator, and a fan-out of workers incrementing a lock-guarded counter.
//
// Every demonstration returns its failure instead of handling it; callers are
// expected to treat any error as fatal.
package demo

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// DefaultMessage is the value sent through the channel in MessagePassing.
const DefaultMessage = "I was created in the child thread, will be sent to main thread"

// Config holds the demonstration constants. The zero value is valid and
// reproduces the defaults listed on each field.
type Config struct {
	// Iterations is the loop count of both loops in WorkerJoin. Defaults to 4.
	Iterations int

	// WorkerPause is the sleep after each worker print in WorkerJoin.
	// Defaults to 2ms.
	WorkerPause time.Duration

	// MainPause is the sleep after each initiator print in WorkerJoin.
	// Defaults to 1ms.
	MainPause time.Duration

	// Workers is the fan-out of SharedState. Defaults to 16.
	Workers int

	// Message builds the value sent in MessagePassing. It runs on the
	// producing goroutine. Defaults to returning DefaultMessage.
	Message func() string

	// Out receives the demonstration output. Writes from concurrent
	// goroutines are serialized line by line. Defaults to os.Stdout.
	Out io.Writer

	// Logger is used for diagnostics. If nil, log.Default() is used.
	Logger *log.Logger

	// Trace, if set, observes every phase of every SharedState worker. It
	// is called from the workers' goroutines and must be safe for
	// concurrent use. HoldingLock and Released are reported with the lock
	// held.
	Trace func(worker int, p Phase)
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Iterations <= 0 {
		out.Iterations = 4
	}
	if out.WorkerPause <= 0 {
		out.WorkerPause = 2 * time.Millisecond
	}
	if out.MainPause <= 0 {
		out.MainPause = time.Millisecond
	}
	if out.Workers <= 0 {
		out.Workers = 16
	}
	if out.Message == nil {
		out.Message = func() string { return DefaultMessage }
	}
	if out.Out == nil {
		out.Out = os.Stdout
	}
	out.Out = &lineWriter{w: out.Out}
	if out.Logger == nil {
		out.Logger = log.Default()
	}
	return out
}

func (c *Config) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(c.Out, format, args...)
	return err
}

func (c *Config) trace(worker int, p Phase) {
	if c.Trace != nil {
		c.Trace(worker, p)
	}
}

// lineWriter lets several goroutines print to one writer without
// interleaving inside a line.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
