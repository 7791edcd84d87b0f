// Package poll drives the poll-and-publish cycle: fetch the server status,
// publish it as presence, record liveness, sleep, repeat.
package poll

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smell-of-curry/statusbot/statusbot/gamedig"
	"github.com/smell-of-curry/statusbot/statusbot/liveness"
)

// Fetcher retrieves the status of a game server.
type Fetcher interface {
	Fetch(ctx context.Context, game, host string, port int) (gamedig.Status, error)
}

// Publisher sets the visible presence text. It must be safe to call from the poll goroutine.
type Publisher interface {
	SetPresence(label string) error
}

// Recorder records the minute at which a cycle completed.
type Recorder interface {
	RecordSuccessAt(minute int64)
}

// Config is the minimal runtime config the loop needs.
type Config struct {
	Game     string
	Host     string
	Port     int
	Interval time.Duration
}

// CycleResult describes one completed cycle.
type CycleResult struct {
	Presentation Presentation
	Label        string
	FetchErr     error
	PublishErr   error
	Minute       int64
}

// Option ...
type Option func(*Loop)

// WithClock overrides the clock used to stamp recorded cycles.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) {
		l.now = now
	}
}

// WithSleep overrides how the loop waits between cycles.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(l *Loop) {
		l.sleep = sleep
	}
}

// Loop runs poll cycles at a fixed interval until its context is cancelled.
type Loop struct {
	log  *slog.Logger
	conf Config

	fetcher   Fetcher
	publisher Publisher
	recorder  Recorder

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a loop with immutable config.
func New(log *slog.Logger, conf Config, fetcher Fetcher, publisher Publisher, recorder Recorder, opts ...Option) (*Loop, error) {
	if conf.Interval <= 0 {
		return nil, errors.New("poll: interval must be > 0")
	}
	if fetcher == nil || publisher == nil || recorder == nil {
		return nil, errors.New("poll: fetcher, publisher and recorder are required")
	}

	l := &Loop{
		log:       log,
		conf:      conf,
		fetcher:   fetcher,
		publisher: publisher,
		recorder:  recorder,
		now:       time.Now,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Run performs a cycle, sleeps for the interval and repeats. Fetch and publish
// failures never stop the loop; it only returns once ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.Cycle(ctx)

		if err := l.sleep(ctx, l.conf.Interval); err != nil {
			return err
		}
	}
}

// Cycle performs exactly one Polling, Publishing and Recording pass.
// Recording happens regardless of whether the fetch or publish succeeded: a
// cycle that could not find the server still proves the monitor is alive.
func (l *Loop) Cycle(ctx context.Context) CycleResult {
	var res CycleResult

	st, err := l.fetcher.Fetch(ctx, l.conf.Game, l.conf.Host, l.conf.Port)
	if err != nil {
		res.FetchErr = err
		res.Presentation = Unknown
		l.log.Error("cant get new stats",
			"host", l.conf.Host,
			"port", l.conf.Port,
			"temporary", gamedig.ErrorIsTemporary(err),
			"error", err)
	} else {
		res.Presentation = Known(st)
	}

	res.Label = Label(res.Presentation)
	if err = l.publisher.SetPresence(res.Label); err != nil {
		res.PublishErr = err
		l.log.Error("failed to set presence", "label", res.Label, "error", err)
	} else {
		l.log.Debug("Updated presence", "label", res.Label)
	}

	res.Minute = liveness.Minute(l.now())
	l.recorder.RecordSuccessAt(res.Minute)

	return res
}

// sleepContext waits for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
