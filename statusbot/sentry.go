package statusbot

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/smell-of-curry/statusbot/statusbot/internal"
)

// InitSentry enables crash reporting when dsn is set. The returned function
// flushes pending events and must be called before the process exits; it is a
// no-op when reporting is disabled.
func InitSentry(dsn string) (flush func(), err error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err = sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
		return func() {}, fmt.Errorf("failed to initialise sentry: %w", err)
	}
	return func() {
		sentry.Flush(internal.SentryFlushTimeout)
	}, nil
}
