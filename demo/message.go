package demo

import (
	"errors"
	"fmt"

	"github.com/marcodamonte/concurrency/threads/internal/oneshot"
	"github.com/marcodamonte/concurrency/threads/internal/task"
)

// MessagePassing spawns a producer that sends one message over a one-shot
// channel, receives it on the calling goroutine and prints it.
//
// The producer does not wait for the receive. If it fails before sending, its
// deferred Close wakes the receiver, which then reports oneshot.ErrClosed
// instead of blocking forever.
func MessagePassing(cfg Config) (string, error) {
	cfg = cfg.withDefaults()

	tx, rx := oneshot.New[string]()
	producer := task.Spawn("producer", func() error {
		defer tx.Close()
		return tx.Send(cfg.Message())
	})

	msg, recvErr := rx.Recv()

	var joinErr error
	if err := producer.Join(); err != nil {
		joinErr = fmt.Errorf("join producer: %w", err)
	}
	if recvErr != nil {
		return "", errors.Join(fmt.Errorf("receive message: %w", recvErr), joinErr)
	}
	if joinErr != nil {
		return "", joinErr
	}

	cfg.Logger.Printf("[message] received %d bytes", len(msg))
	if err := cfg.printf("I have received this message from the child thread: %s\n", msg); err != nil {
		return "", fmt.Errorf("print: %w", err)
	}
	return msg, nil
}
