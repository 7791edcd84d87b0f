package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/smell-of-curry/statusbot/statusbot"
	"github.com/smell-of-curry/statusbot/statusbot/discord"
)

// configPath ...
const configPath = "./config.toml"

// main ...
func main() {
	conf, err := statusbot.ReadConfig(slog.Default(), configPath)
	if err != nil {
		slog.Error("failed to read config", "error", err)
		os.Exit(1)
	}

	log := newLogger(conf)
	slog.SetDefault(log)

	flush, err := statusbot.InitSentry(conf.Bot.SentryDsn)
	if err != nil {
		log.Warn("crash reporting disabled", "error", err)
	}
	defer flush()

	session, err := discord.Open(log, conf.Bot.Token)
	if err != nil {
		log.Error("Client error", "error", err)
		flush()
		os.Exit(1)
	}

	bot, err := statusbot.NewBot(log, conf, session)
	if err != nil {
		_ = session.Close()
		log.Error("failed to create bot", "error", err)
		flush()
		os.Exit(1)
	}
	defer bot.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = bot.Start(ctx); err != nil {
		log.Info("Stopped before the session became ready", "error", err)
	}
}

// newLogger returns a text logger on stderr at the level named in conf.
// Unknown levels have already been replaced by ReadConfig, so info is only a fallback.
func newLogger(conf statusbot.Config) *slog.Logger {
	level, _ := statusbot.ParseLogLevel(conf.Bot.LogLevel)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
