package statusbot

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/restartfu/gophig"
	"github.com/smell-of-curry/statusbot/statusbot/internal"
	"github.com/smell-of-curry/statusbot/statusbot/util"
)

// ErrConfig is reported when the config file exists but cannot be used.
var ErrConfig = errors.New("invalid config")

// Config holds the bot configuration: the Discord login, the monitored game
// server and the monitor timings.
type Config struct {
	Bot struct {
		Token      string
		LogLevel   string // Can be "debug", "info", "warn", "error"
		SentryDsn  string
		LocalePath string // Optional directory with <lang>.lang label overrides
	}
	Server struct {
		Game string
		Host string
		Port int
	}
	Monitor struct {
		ProviderURL           string
		PollIntervalSeconds   int
		StaleThresholdMinutes int
		RequestTimeout        util.Duration
		ProbeAddress          string
	}
}

// DefaultConfig returns a config with prefilled default values.
func DefaultConfig() Config {
	c := Config{}

	c.Bot.Token = ""
	c.Bot.LogLevel = "info"
	c.Bot.SentryDsn = ""
	c.Bot.LocalePath = ""

	c.Server.Game = internal.DefaultGame
	c.Server.Host = ""
	c.Server.Port = 0

	c.Monitor.ProviderURL = internal.DefaultProviderURL
	c.Monitor.PollIntervalSeconds = internal.DefaultPollIntervalSeconds
	c.Monitor.StaleThresholdMinutes = internal.DefaultStaleThresholdMinutes
	c.Monitor.RequestTimeout = util.Duration(internal.DefaultTimeout)
	c.Monitor.ProbeAddress = internal.DefaultProbeAddress

	return c
}

// ParseLogLevel maps Bot.LogLevel onto a slog.Level, ignoring case and
// surrounding spaces. Unknown names yield info together with an error, which
// ReadConfig reports before resetting the value.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unrecognized log level: %q", level)
	}
}

// ReadConfig loads the configuration from the TOML file at path. A missing
// file yields the defaults. A malformed file is reported as a warning and
// replaced by the defaults. Either way the resolved configuration is written
// back to path, so the file always lists every key.
func ReadConfig(log *slog.Logger, path string) (Config, error) {
	g := gophig.NewGophig[Config](path, gophig.TOMLMarshaler{}, internal.ConfigPermissions)

	c, err := g.LoadConf()
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info("No config found, writing defaults", "path", path)
		c = DefaultConfig()
	case err != nil:
		log.Error("error in config", "path", path, "error", fmt.Errorf("%w: %w", ErrConfig, err))
		log.Warn("changing back to default..")
		c = DefaultConfig()
	}

	for _, problem := range c.normalize() {
		log.Warn("invalid config value replaced by default", "problem", problem)
	}

	if err = g.SaveConf(c); err != nil {
		return c, fmt.Errorf("failed to save config: %w", err)
	}
	return c, nil
}

// normalize replaces unusable values with their defaults and returns what it replaced.
func (c *Config) normalize() []string {
	def := DefaultConfig()

	var problems []string
	replace := func(ok bool, problem string, fix func()) {
		if !ok {
			problems = append(problems, problem)
			fix()
		}
	}

	replace(c.Server.Game != "", "server game is empty", func() { c.Server.Game = def.Server.Game })
	replace(c.Server.Port >= 0 && c.Server.Port <= 65535,
		fmt.Sprintf("server port %d is out of range", c.Server.Port),
		func() { c.Server.Port = def.Server.Port })
	replace(validURL(c.Monitor.ProviderURL),
		fmt.Sprintf("provider url %q is not an absolute http(s) url", c.Monitor.ProviderURL),
		func() { c.Monitor.ProviderURL = def.Monitor.ProviderURL })
	replace(c.Monitor.PollIntervalSeconds > 0,
		fmt.Sprintf("poll interval %d must be > 0", c.Monitor.PollIntervalSeconds),
		func() { c.Monitor.PollIntervalSeconds = def.Monitor.PollIntervalSeconds })
	replace(c.Monitor.StaleThresholdMinutes > 0,
		fmt.Sprintf("stale threshold %d must be > 0", c.Monitor.StaleThresholdMinutes),
		func() { c.Monitor.StaleThresholdMinutes = def.Monitor.StaleThresholdMinutes })
	replace(c.Monitor.RequestTimeout > 0,
		fmt.Sprintf("request timeout %s must be > 0", c.Monitor.RequestTimeout.Std()),
		func() { c.Monitor.RequestTimeout = def.Monitor.RequestTimeout })
	replace(c.Monitor.ProbeAddress != "", "probe address is empty", func() { c.Monitor.ProbeAddress = def.Monitor.ProbeAddress })

	if _, err := ParseLogLevel(c.Bot.LogLevel); err != nil {
		problems = append(problems, err.Error())
		c.Bot.LogLevel = def.Bot.LogLevel
	}
	return problems
}

// validURL ...
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
