package util

import (
	"fmt"
	"strings"
	"time"
)

// Duration is a time.Duration that is written to and read from config files
// in its human-readable form, such as "5s" or "1m30s".
type Duration time.Duration

// UnmarshalText parses values such as Monitor.RequestTimeout = "5s" from config.toml.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: cannot parse %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText writes the duration back in the same form when the config is re-persisted.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
