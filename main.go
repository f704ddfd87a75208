package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/marcodamonte/concurrency/threads/demo"
)

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)

	if err := run(demo.Config{Out: os.Stdout, Logger: logger}); err != nil {
		logger.Fatalf("fatal: %v", err)
	}
}

// run executes the demonstrations in order and stops at the first failure.
func run(cfg demo.Config) error {
	section(cfg.Out, "Worker and join")
	if err := demo.WorkerJoin(cfg); err != nil {
		return fmt.Errorf("worker and join: %w", err)
	}

	section(cfg.Out, "Message passing")
	if _, err := demo.MessagePassing(cfg); err != nil {
		return fmt.Errorf("message passing: %w", err)
	}

	section(cfg.Out, "Shared state")
	if _, err := demo.SharedState(cfg); err != nil {
		return fmt.Errorf("shared state: %w", err)
	}
	return nil
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n━━━ %s ━━━\n", title)
}
