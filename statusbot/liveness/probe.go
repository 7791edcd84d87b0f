package liveness

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/smell-of-curry/statusbot/statusbot/internal"
)

// Probe answers health checks with the age, in minutes, of the last poll cycle.
type Probe struct {
	tracker   *Tracker
	threshold int64
	now       func() time.Time
}

// NewProbe creates a probe reading from tracker. A nil clock defaults to time.Now.
func NewProbe(tracker *Tracker, thresholdMinutes int, now func() time.Time) *Probe {
	if now == nil {
		now = time.Now
	}
	return &Probe{
		tracker:   tracker,
		threshold: int64(thresholdMinutes),
		now:       now,
	}
}

// Age returns the minutes elapsed since the last recorded poll cycle.
func (p *Probe) Age() int64 {
	return p.tracker.MinutesSince(Minute(p.now()))
}

// Status returns 503 if age exceeds the staleness threshold, 200 otherwise.
func (p *Probe) Status(age int64) int {
	return lo.Ternary(age > p.threshold, http.StatusServiceUnavailable, http.StatusOK)
}

// Handler returns a gin handler answering every request with the current age.
func (p *Probe) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		age := p.Age()
		c.String(p.Status(age), strconv.FormatInt(age, 10))
	}
}

// Server serves the probe on every method and path.
type Server struct {
	log    *slog.Logger
	addr   string
	router *gin.Engine
}

// NewServer sets up a gin engine with no routes, so every request falls
// through to the probe.
func NewServer(log *slog.Logger, addr string, probe *Probe) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = false
	router.NoRoute(probe.Handler())

	return &Server{
		log:    log,
		addr:   addr,
		router: router,
	}
}

// Handler ...
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, after which
// the server is shut down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: internal.DefaultTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Liveness probe listening", "address", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), internal.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("failed to shut down liveness probe", "error", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
