// Package gamedig implements a client for the gamedig status provider, which
// translates a (game, host, port) triple into the status of a game server.
package gamedig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

var (
	// ErrNetwork is returned when the provider could not be reached, timed out,
	// or answered with anything other than 200 OK.
	ErrNetwork = errors.New("network error")
	// ErrDecode is returned when the provider's response does not match the status schema.
	ErrDecode = errors.New("decode error")
)

// Service fetches server status from the provider. It never retries: the
// caller owns the retry policy.
type Service struct {
	url     string
	timeout time.Duration

	client *http.Client
	log    *slog.Logger
}

// NewService creates a new Service querying the provider at baseURL.
func NewService(log *slog.Logger, baseURL string, timeout time.Duration) *Service {
	return &Service{
		url:     strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Fetch retrieves the status of the server identified by game, host and port.
func (s *Service) Fetch(ctx context.Context, game, host string, port int) (Status, error) {
	endpoint := s.endpoint(game, host, port)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Status{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Status{}, fmt.Errorf("%w: request failed: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Status{}, fmt.Errorf("%w: unexpected status code: %d", ErrNetwork, resp.StatusCode)
	}

	var w wireStatus
	if err = json.NewDecoder(resp.Body).Decode(&w); err != nil {
		if ErrorIsTemporary(err) {
			return Status{}, fmt.Errorf("%w: reading response: %w", ErrNetwork, err)
		}
		return Status{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// Without these the label would read as an empty server rather than an unknown one.
	if w.Map == nil || w.MaxPlayers == nil || w.Players == nil {
		return Status{}, fmt.Errorf("%w: response is missing map, maxplayers or players", ErrDecode)
	}

	st := Status{
		Name:              w.Name,
		Map:               *w.Map,
		PasswordProtected: w.Password,
		Players:           *w.Players,
		MaxPlayers:        *w.MaxPlayers,
		Connect:           w.Connect,
		Ping:              w.Ping,
	}
	s.log.Debug("Fetched server status",
		"name", st.Name,
		"map", st.Map,
		"players", lo.Map(st.Players, func(p Player, _ int) string { return p.Name }),
		"maxPlayers", st.MaxPlayers,
		"ping", st.Ping)

	return st, nil
}

// endpoint returns <base>/<game>/<host>/<port> with each segment escaped.
func (s *Service) endpoint(game, host string, port int) string {
	return fmt.Sprintf("%s/%s/%s/%s",
		s.url,
		url.PathEscape(game),
		url.PathEscape(host),
		strconv.Itoa(port),
	)
}

// ErrorIsTemporary determines whether the given error is a timeout that may
// resolve itself on the next cycle.
func ErrorIsTemporary(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
