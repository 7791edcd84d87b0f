// Package supervise keeps long-running background tasks alive for the lifetime
// of the process.
package supervise

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
)

// Task is a long-running unit of work. It should only return once ctx is done.
type Task func(ctx context.Context) error

// Run runs task until ctx is cancelled. A panic is recovered and reported to
// Sentry, and a task that returns early is logged; in both cases the task is
// started again after backoff.
func Run(ctx context.Context, log *slog.Logger, name string, task Task, backoff time.Duration) {
	for {
		err := runOnce(ctx, task)
		if ctx.Err() != nil {
			log.Debug("Background task stopped", "task", name)
			return
		}

		log.Error("background task exited, restarting", "task", name, "error", err, "backoff", backoff)

		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}

// PanicError is returned by runOnce when the task panicked.
type PanicError struct {
	Value any
	Stack []byte
}

// Error ...
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// runOnce runs task a single time, converting a panic into a *PanicError.
func runOnce(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	err = task(ctx)
	if err == nil {
		err = errors.New("task returned without error")
	}
	return err
}
