package statusbot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/smell-of-curry/statusbot/statusbot/gamedig"
	"github.com/smell-of-curry/statusbot/statusbot/internal"
	"github.com/smell-of-curry/statusbot/statusbot/liveness"
	"github.com/smell-of-curry/statusbot/statusbot/locale"
	"github.com/smell-of-curry/statusbot/statusbot/poll"
	"github.com/smell-of-curry/statusbot/statusbot/supervise"
	"golang.org/x/text/language"
)

// Session is the chat session the bot publishes presence through.
type Session interface {
	poll.Publisher
	Ready() <-chan struct{}
	Close() error
}

// Bot owns the poll loop and the liveness probe, and the tracker they share.
type Bot struct {
	log  *slog.Logger
	conf Config

	session Session
	tracker *liveness.Tracker
	loop    *poll.Loop
	probe   *liveness.Server

	restartBackoff time.Duration
}

// NewBot wires the status provider, the poll loop and the liveness probe
// around the given session. Nothing runs until Start is called.
func NewBot(log *slog.Logger, conf Config, session Session) (*Bot, error) {
	if conf.Bot.LocalePath != "" {
		if err := locale.Register(language.English, conf.Bot.LocalePath); err != nil {
			log.Warn("failed to load locale overrides, using built-in labels", "error", err)
		}
	}

	tracker := liveness.NewTracker()
	service := gamedig.NewService(log, conf.Monitor.ProviderURL, conf.Monitor.RequestTimeout.Std())

	loop, err := poll.New(log, poll.Config{
		Game:     conf.Server.Game,
		Host:     conf.Server.Host,
		Port:     conf.Server.Port,
		Interval: time.Duration(conf.Monitor.PollIntervalSeconds) * time.Second,
	}, service, session, tracker)
	if err != nil {
		return nil, err
	}

	probe := liveness.NewProbe(tracker, conf.Monitor.StaleThresholdMinutes, time.Now)

	return &Bot{
		log:  log,
		conf: conf,

		session: session,
		tracker: tracker,
		loop:    loop,
		probe:   liveness.NewServer(log, conf.Monitor.ProbeAddress, probe),

		restartBackoff: internal.RestartBackoff,
	}, nil
}

// Start waits for the session to become ready, then runs the poll loop and
// the liveness probe until ctx is cancelled. Both tasks are restarted if
// they crash. Start blocks until both have stopped.
func (b *Bot) Start(ctx context.Context) error {
	select {
	case <-b.session.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	b.log.Info(fmt.Sprintf("Started monitoring server %s:%d", b.conf.Server.Host, b.conf.Server.Port),
		"game", b.conf.Server.Game,
		"interval", time.Duration(b.conf.Monitor.PollIntervalSeconds)*time.Second)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		supervise.Run(ctx, b.log, "liveness-probe", b.probe.Run, b.restartBackoff)
	}()
	go func() {
		defer wg.Done()
		supervise.Run(ctx, b.log, "poll-loop", b.loop.Run, b.restartBackoff)
	}()
	wg.Wait()

	return nil
}

// Tracker ...
func (b *Bot) Tracker() *liveness.Tracker {
	return b.tracker
}

// ProbeHandler returns the liveness probe as an http.Handler.
func (b *Bot) ProbeHandler() http.Handler {
	return b.probe.Handler()
}

// Close closes the chat session.
func (b *Bot) Close() error {
	b.log.Debug("Closing Discord Session...")
	return b.session.Close()
}
