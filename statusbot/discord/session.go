// Package discord connects the bot to Discord and publishes presence.
package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// ErrSessionClosed is returned by SetPresence after Close.
var ErrSessionClosed = errors.New("discord session closed")

// gateway is the part of *discordgo.Session the bot uses.
type gateway interface {
	UpdateGameStatus(idle int, name string) error
	Close() error
}

// Session is a Discord gateway session used as the presence publisher.
type Session struct {
	log *slog.Logger
	gw  gateway

	ready     chan struct{}
	readyOnce sync.Once
	closed    atomic.Bool
}

// Open creates a gateway session with the given bot token and connects it.
// The returned session signals Ready once Discord has accepted the login.
func Open(log *slog.Logger, token string) (*Session, error) {
	if token == "" {
		return nil, errors.New("discord: bot token is empty")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: failed to create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	s := newSession(log, dg)
	dg.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		s.onReady(r)
	})

	if err = dg.Open(); err != nil {
		return nil, fmt.Errorf("discord: failed to open session: %w", err)
	}
	return s, nil
}

// newSession ...
func newSession(log *slog.Logger, gw gateway) *Session {
	return &Session{
		log:   log,
		gw:    gw,
		ready: make(chan struct{}),
	}
}

// onReady is called for every Ready event. Reconnects fire it again, but the
// ready channel is only closed the first time.
func (s *Session) onReady(r *discordgo.Ready) {
	name := ""
	if r != nil && r.User != nil {
		name = r.User.Username
	}
	s.log.Info("Logged in", "user", name)

	s.readyOnce.Do(func() {
		close(s.ready)
	})
}

// Ready returns a channel closed once the session is ready.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// SetPresence sets the bot's "Playing <label>" activity. Calling it repeatedly
// with the same label is harmless.
func (s *Session) SetPresence(label string) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if err := s.gw.UpdateGameStatus(0, label); err != nil {
		return fmt.Errorf("discord: failed to update presence: %w", err)
	}
	return nil
}

// Close closes the gateway connection.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.gw.Close()
}
