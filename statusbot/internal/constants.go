package internal

import "time"

// File permission constants
const (
	// ConfigPermissions is the permission used when writing the config file
	ConfigPermissions = 0644
)

// Monitor defaults
const (
	// DefaultGame is the game identifier used when the config has none
	DefaultGame = "rust"

	// DefaultProviderURL is the base of the status provider, requests go to <base>/<game>/<host>/<port>
	DefaultProviderURL = "https://gamedig.gametools.network/game"

	// DefaultPollIntervalSeconds is the delay between two poll cycles
	DefaultPollIntervalSeconds = 60

	// DefaultStaleThresholdMinutes is the maximum poll age before the probe reports unavailable
	DefaultStaleThresholdMinutes = 5

	// DefaultProbeAddress binds the liveness probe to all interfaces
	DefaultProbeAddress = ":3030"
)

// Duration constants for commonly used timeouts
const (
	// DefaultTimeout bounds a single status provider request
	DefaultTimeout = 5 * time.Second

	// RestartBackoff is the delay before a crashed background task is restarted
	RestartBackoff = 5 * time.Second

	// ShutdownTimeout bounds the graceful shutdown of the probe server
	ShutdownTimeout = 5 * time.Second

	// SentryFlushTimeout bounds the flush of pending crash reports on exit
	SentryFlushTimeout = 2 * time.Second
)
