package demo

import (
	"fmt"

	"github.com/marcodamonte/concurrency/threads/internal/shared"
	"github.com/marcodamonte/concurrency/threads/internal/task"
)

// Phase is a step in the life of a SharedState worker.
type Phase int

const (
	Spawned Phase = iota
	WaitingForLock
	HoldingLock
	Released
	Finished
	Failed
)

func (p Phase) String() string {
	switch p {
	case Spawned:
		return "spawned"
	case WaitingForLock:
		return "waiting-for-lock"
	case HoldingLock:
		return "holding-lock"
	case Released:
		return "released"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// SharedState spawns cfg.Workers workers that each add 1 to a counter behind
// a shared.Mutex, joins all of them, and only then reads and prints the
// counter. The returned count always equals cfg.Workers.
//
// A worker that panics while holding the lock poisons the counter; the
// failure is returned and the counter is never read.
func SharedState(cfg Config) (int, error) {
	cfg = cfg.withDefaults()

	counter := shared.New(0)
	handles := make([]*task.Handle, 0, cfg.Workers)

	for i := 0; i < cfg.Workers; i++ {
		id := i
		cfg.trace(id, Spawned)
		handles = append(handles, task.Spawn(fmt.Sprintf("worker-%d", id), func() error {
			ok := false
			defer func() {
				if !ok {
					cfg.trace(id, Failed)
				}
			}()

			cfg.trace(id, WaitingForLock)
			err := counter.Do(func(v *int) {
				cfg.trace(id, HoldingLock)
				*v++
				cfg.trace(id, Released)
			})
			if err != nil {
				return fmt.Errorf("lock counter: %w", err)
			}

			ok = true
			cfg.trace(id, Finished)
			return nil
		}))
	}

	if err := task.JoinAll(handles...); err != nil {
		return 0, err
	}
	cfg.Logger.Printf("[shared] %d workers joined", len(handles))

	n, err := counter.Load()
	if err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}
	if err := cfg.printf("Result: %d\n", n); err != nil {
		return 0, fmt.Errorf("print: %w", err)
	}
	return n, nil
}
