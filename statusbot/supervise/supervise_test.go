package supervise

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_RestartsAfterPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs int
	task := func(ctx context.Context) error {
		runs++
		if runs == 1 {
			panic("boom")
		}
		cancel()
		<-ctx.Done()
		return ctx.Err()
	}

	done := make(chan struct{})
	go func() {
		Run(ctx, testLogger(), "test", task, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("supervisor did not return")
	}
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
}

func TestRun_RestartsAfterEarlyReturn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs int
	task := func(ctx context.Context) error {
		runs++
		if runs < 3 {
			return errors.New("listen failed")
		}
		cancel()
		return ctx.Err()
	}

	Run(ctx, testLogger(), "test", task, time.Millisecond)
	if runs != 3 {
		t.Fatalf("expected 3 runs, got %d", runs)
	}
}

func TestRun_ReturnsWhenCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	task := func(context.Context) error {
		cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		Run(ctx, testLogger(), "test", task, time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("supervisor did not return")
	}
}

func TestRunOnce_PanicError(t *testing.T) {
	err := runOnce(context.Background(), func(context.Context) error { panic("boom") })

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
	if pe.Value != "boom" || len(pe.Stack) == 0 {
		t.Fatalf("unexpected panic error %+v", pe)
	}
}
