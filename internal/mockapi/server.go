package mockapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chesstrail/chesstrail/pkg/logger"
)

// Server serves the two upstream endpoints the exporter consumes, backed
// by generated fixtures.
type Server struct {
	players []*player
	byName  map[string]*player
	cfg     *Config
}

// NewServer generates fixtures and builds a Server.
func NewServer(cfg *Config) *Server {
	players := generatePlayers(cfg, time.Now())
	byName := make(map[string]*player, len(players))
	for _, p := range players {
		byName[p.Username] = p
	}
	return &Server{players: players, byName: byName, cfg: cfg}
}

// Handler returns the HTTP handler for the mock API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/player/top/", s.handleTop)
	mux.HandleFunc("/api/user/", s.handleRatingHistory)
	return mux
}

// handleTop serves /api/player/top/{count}/{perf}.
func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/player/top/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil || count <= 0 {
		http.Error(w, "bad count", http.StatusBadRequest)
		return
	}
	if count > len(s.players) {
		count = len(s.players)
	}

	type user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	users := make([]user, count)
	for i, p := range s.players[:count] {
		users[i] = user{ID: p.ID, Username: p.Username}
	}
	writeJSON(w, map[string]any{"users": users})
}

// handleRatingHistory serves /api/user/{username}/rating-history.
func (s *Server) handleRatingHistory(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/user/")
	username, ok := strings.CutSuffix(path, "/rating-history")
	if !ok {
		http.NotFound(w, r)
		return
	}
	p, ok := s.byName[username]
	if !ok {
		http.NotFound(w, r)
		return
	}

	type block struct {
		Name   string  `json:"name"`
		Points [][]int `json:"points"`
	}
	writeJSON(w, []block{{Name: s.cfg.Discipline, Points: p.points}})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().Error(context.Background(), "encode mock response", logger.Error(err))
	}
}

// ListenAndServe runs the mock API until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	logger.Get().Info(ctx, "mock upstream listening",
		logger.String("addr", s.cfg.Addr),
		logger.Int("players", len(s.players)))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
