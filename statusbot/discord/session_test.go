package discord

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
)

type fakeGateway struct {
	statuses []string
	err      error
	closes   int
}

func (f *fakeGateway) UpdateGameStatus(idle int, name string) error {
	f.statuses = append(f.statuses, name)
	return f.err
}

func (f *fakeGateway) Close() error {
	f.closes++
	return nil
}

func testSession(gw gateway) *Session {
	return newSession(slog.New(slog.NewTextHandler(io.Discard, nil)), gw)
}

func TestReady_ClosesOnce(t *testing.T) {
	s := testSession(&fakeGateway{})

	select {
	case <-s.Ready():
		t.Fatalf("ready before Ready event")
	default:
	}

	s.onReady(&discordgo.Ready{User: &discordgo.User{Username: "statusbot"}})
	s.onReady(&discordgo.Ready{})

	select {
	case <-s.Ready():
	default:
		t.Fatalf("expected ready to be closed")
	}
}

func TestSetPresence(t *testing.T) {
	gw := &fakeGateway{}
	s := testSession(gw)

	if err := s.SetPresence("2/10 - procedural"); err != nil {
		t.Fatalf("SetPresence err=%v", err)
	}
	if err := s.SetPresence("2/10 - procedural"); err != nil {
		t.Fatalf("SetPresence err=%v", err)
	}
	if len(gw.statuses) != 2 || gw.statuses[1] != "2/10 - procedural" {
		t.Fatalf("unexpected statuses %v", gw.statuses)
	}
}

func TestSetPresence_GatewayError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("no websocket connection exists")}
	if err := testSession(gw).SetPresence("x"); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestClose(t *testing.T) {
	gw := &fakeGateway{}
	s := testSession(gw)

	_ = s.Close()
	_ = s.Close()
	if gw.closes != 1 {
		t.Fatalf("expected one close, got %d", gw.closes)
	}
	if err := s.SetPresence("x"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestOpen_EmptyToken(t *testing.T) {
	if _, err := Open(slog.New(slog.NewTextHandler(io.Discard, nil)), ""); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
