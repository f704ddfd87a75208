package demo

import (
	"errors"
	"fmt"
	"time"

	"github.com/marcodamonte/concurrency/threads/internal/task"
)

// WorkerJoin spawns one worker that prints and sleeps cfg.Iterations times
// while the calling goroutine runs its own, faster loop. It returns only
// after the worker has been joined.
//
// The two loops interleave freely; the only ordering guarantee is that every
// worker line has been written by the time WorkerJoin returns.
func WorkerJoin(cfg Config) error {
	cfg = cfg.withDefaults()

	worker := task.Spawn("secondary", func() error {
		for i := 1; i <= cfg.Iterations; i++ {
			if err := cfg.printf("Secondary Thread Prints %d\n", i); err != nil {
				return err
			}
			time.Sleep(cfg.WorkerPause)
		}
		return nil
	})

	var mainErr error
	for i := 1; i <= cfg.Iterations; i++ {
		if err := cfg.printf("Main Thread Prints %d\n", i); err != nil {
			mainErr = fmt.Errorf("print: %w", err)
			break
		}
		time.Sleep(cfg.MainPause)
	}

	// Join even when the main loop failed so the worker never outlives us.
	if err := worker.Join(); err != nil {
		return errors.Join(mainErr, fmt.Errorf("join worker: %w", err))
	}
	if mainErr != nil {
		return mainErr
	}

	cfg.Logger.Printf("[join] worker %s %s", worker.Name(), worker.State())
	return nil
}
