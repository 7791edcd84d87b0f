// Package liveness tracks when the poll loop last completed a cycle and serves
// that age to external health checks.
package liveness

import (
	"time"

	"github.com/df-mc/atomic"
)

// Tracker holds the minute of the last completed poll cycle. It is written by
// the poll loop and read by any number of concurrent probe requests.
// The zero value is ready to use and reports "never recorded" as minute 0.
type Tracker struct {
	last atomic.Int64
}

// NewTracker ...
func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordSuccessAt overwrites the last recorded minute. Monotonicity is not enforced.
func (t *Tracker) RecordSuccessAt(minute int64) {
	t.last.Store(minute)
}

// MinutesSince returns now minus the last recorded minute. The result is
// negative if the wall clock moved backwards since the last record.
func (t *Tracker) MinutesSince(now int64) int64 {
	return now - t.last.Load()
}

// Last ...
func (t *Tracker) Last() int64 {
	return t.last.Load()
}

// Minute converts a wall-clock time into whole minutes since the Unix epoch.
func Minute(t time.Time) int64 {
	return t.Unix() / 60
}
