// Package lichess is a thin client for the Lichess public API endpoints
// the service needs: the top-player leaderboard and per-player rating
// histories.
//
// Conventions:
// - All calls accept a context.Context and honor its cancellation.
// - Non-success statuses are wrapped over ErrStatus; callers classify
//   with errors.Is.
package lichess

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Default client configuration constants.
const (
	defaultBaseURL   = "https://lichess.org"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "chesstrail/1.0"
)

// Player is one leaderboard entry. Only the fields the service consumes
// are decoded.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PerfHistory is one discipline block of a player's rating history.
// Points are [year, month, day, rating] with a zero-indexed month.
type PerfHistory struct {
	Name   string  `json:"name"`
	Points [][]int `json:"points"`
}

// leaderboardResponse mirrors the /api/player/top payload envelope.
type leaderboardResponse struct {
	Users []Player `json:"users"`
}

// Client calls the Lichess public API.
type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	http      *http.Client
}

// New creates a Client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	// The timeout is applied to a copy after all options have run, so
	// WithTimeout and WithHTTPClient compose in either order and a
	// caller-supplied client is never mutated.
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}

	return c
}

// TopPlayers fetches the top count players for a perf type, e.g.
// "classical", in leaderboard order.
func (c *Client) TopPlayers(ctx context.Context, count int, perf string) ([]Player, error) {
	url := fmt.Sprintf("%s/api/player/top/%d/%s", c.baseURL, count, perf)

	var resp leaderboardResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("top players: %w", err)
	}
	return resp.Users, nil
}

// RatingHistory fetches a player's full rating history across all
// disciplines.
func (c *Client) RatingHistory(ctx context.Context, username string) ([]PerfHistory, error) {
	url := fmt.Sprintf("%s/api/user/%s/rating-history", c.baseURL, username)

	var hist []PerfHistory
	if err := c.getJSON(ctx, url, &hist); err != nil {
		return nil, fmt.Errorf("rating history for %s: %w", username, err)
	}
	return hist, nil
}

// DisciplinePoints selects the raw points of the named discipline from a
// rating history, wrapping ErrNoDiscipline when the block is absent.
func DisciplinePoints(hist []PerfHistory, discipline string) ([][]int, error) {
	for _, perf := range hist {
		if perf.Name == discipline {
			return perf.Points, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", discipline, ErrNoDiscipline)
}

// getJSON performs a GET request and decodes a JSON body into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d: %w", url, resp.StatusCode, ErrStatus)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
