// Package service orchestrates a full export run: leaderboard fetch,
// per-player series reconstruction, console reporting, and CSV export.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chesstrail/chesstrail/internal/adapters/export"
	"github.com/chesstrail/chesstrail/internal/adapters/lichess"
	"github.com/chesstrail/chesstrail/internal/adapters/report"
	"github.com/chesstrail/chesstrail/internal/domain/dedupe"
	"github.com/chesstrail/chesstrail/internal/domain/history"
	"github.com/chesstrail/chesstrail/internal/domain/model"
	"github.com/chesstrail/chesstrail/internal/domain/window"
	"github.com/chesstrail/chesstrail/pkg/logger"
	"github.com/chesstrail/chesstrail/pkg/metrics"
)

// Skip reasons recorded on the skipped-players metric.
const (
	skipReasonFetch        = "fetch"
	skipReasonNoDiscipline = "no_discipline"
	skipReasonDuplicate    = "duplicate"
)

// Fetcher abstracts the upstream ranking service so tests can fake it.
type Fetcher interface {
	// TopPlayers returns the top count players for a perf type, in
	// leaderboard order.
	TopPlayers(ctx context.Context, count int, perf string) ([]lichess.Player, error)

	// RatingHistory returns a player's full rating history across all
	// disciplines.
	RatingHistory(ctx context.Context, username string) ([]lichess.PerfHistory, error)
}

// Exporter abstracts the batch serializer.
type Exporter interface {
	Write(ctx context.Context, batch model.Batch, today model.Date) error
}

// Service runs the export pipeline. Processing is sequential: one
// blocking upstream call per player, no fan-out.
type Service struct {
	fetcher    Fetcher
	exporter   Exporter
	reporter   *report.Reporter
	topCount   int
	perfType   string
	discipline string
	clock      func() time.Time
	logger     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the upstream client.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithExporter sets the batch serializer.
func WithExporter(e Exporter) Option {
	return func(s *Service) {
		if e != nil {
			s.exporter = e
		}
	}
}

// WithReporter sets the console reporter.
func WithReporter(r *report.Reporter) Option {
	return func(s *Service) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTopCount sets the leaderboard size to fetch.
func WithTopCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.topCount = count
		}
	}
}

// WithPerfType sets the leaderboard perf segment, e.g. "classical".
func WithPerfType(perf string) Option {
	return func(s *Service) {
		if perf != "" {
			s.perfType = perf
		}
	}
}

// WithDiscipline sets the rating-history block to track, e.g. "Classical".
func WithDiscipline(discipline string) Option {
	return func(s *Service) {
		if discipline != "" {
			s.discipline = discipline
		}
	}
}

// WithClock injects the "now" source so runs are deterministic in tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fetcher:    lichess.New(),
		exporter:   export.NewCSVWriter(),
		reporter:   report.New(),
		topCount:   50,
		perfType:   "classical",
		discipline: "Classical",
		clock:      time.Now,
		logger:     nil, // resolved lazily so tests can Init first
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// TopPlayers fetches the leaderboard. A failed fetch degrades to an
// empty board: the run then simply has no players to process.
func (s *Service) TopPlayers(ctx context.Context) []lichess.Player {
	metrics.RecordLeaderboardFetch()
	start := time.Now()
	players, err := s.fetcher.TopPlayers(ctx, s.topCount, s.perfType)
	metrics.RecordFetchLatency(time.Since(start).Seconds())
	if err != nil {
		metrics.RecordFetchError("leaderboard")
		s.log().Warn(ctx, "leaderboard fetch failed; continuing with empty board",
			logger.Error(err))
		return nil
	}
	return players
}

// BuildBatch reconstructs the dense series for every player, in
// leaderboard order, anchored on the caller's today so every series and
// the eventual export header share one window. A player whose history
// cannot be fetched or has no tracked-discipline block is skipped and the
// batch continues; failure is local, never fatal. Duplicate usernames are
// dropped.
func (s *Service) BuildBatch(ctx context.Context, players []lichess.Player, today model.Date) model.Batch {
	guard := dedupe.NewSeenSet()
	batch := make(model.Batch, 0, len(players))

	for _, p := range players {
		if guard.SeenAndRecord(ctx, p.Username) {
			metrics.RecordPlayerSkipped(skipReasonDuplicate)
			s.log().Warn(ctx, "duplicate leaderboard entry skipped",
				logger.String("username", p.Username))
			continue
		}

		series, err := s.playerSeries(ctx, p.Username, today)
		if err != nil {
			// Skip-and-continue: one missing player must not abort
			// the remaining batch.
			s.log().Warn(ctx, "player skipped",
				logger.String("username", p.Username), logger.Error(err))
			continue
		}

		batch = append(batch, model.PlayerSeries{Username: p.Username, Series: series})
		metrics.RecordPlayerProcessed()
	}

	return batch
}

// playerSeries fetches one player's history and reconstructs their dense
// window series.
func (s *Service) playerSeries(ctx context.Context, username string, today model.Date) (model.Series, error) {
	metrics.RecordHistoryFetch()
	start := time.Now()
	hist, err := s.fetcher.RatingHistory(ctx, username)
	metrics.RecordFetchLatency(time.Since(start).Seconds())
	if err != nil {
		metrics.RecordFetchError("rating-history")
		metrics.RecordPlayerSkipped(skipReasonFetch)
		return nil, fmt.Errorf("rating history: %w", err)
	}

	points, err := lichess.DisciplinePoints(hist, s.discipline)
	if err != nil {
		metrics.RecordPlayerSkipped(skipReasonNoDiscipline)
		return nil, err
	}

	obs, discarded := history.Parse(points)
	if discarded > 0 {
		metrics.RecordPointsDiscarded(discarded)
		s.log().Debug(ctx, "malformed rating points discarded",
			logger.String("username", username), logger.Int("discarded", discarded))
	}

	return window.Reconstruct(obs, today), nil
}

// Run executes the three run stages: print the leaderboard usernames,
// print the top player's reconstructed window inline, and export the
// whole batch to CSV.
func (s *Service) Run(ctx context.Context) error {
	runID := uuid.NewString()
	// One clock read anchors the whole run: the series windows and the
	// export header must not drift apart when a run crosses midnight.
	today := model.DateOf(s.clock())
	log := s.log()
	log.Info(ctx, "starting export run",
		logger.String("run_id", runID),
		logger.Int("top_count", s.topCount),
		logger.String("discipline", s.discipline))

	players := s.TopPlayers(ctx)
	if len(players) == 0 {
		s.reporter.Banner("No players found.")
		log.Warn(ctx, "empty leaderboard; nothing to export", logger.String("run_id", runID))
		return nil
	}

	s.reporter.Banner(fmt.Sprintf("Top %d %s chess players:", s.topCount, s.perfType))
	usernames := make([]string, len(players))
	for i, p := range players {
		usernames[i] = p.Username
	}
	s.reporter.Usernames(usernames)

	batch := s.BuildBatch(ctx, players, today)

	if len(batch) > 0 {
		s.reporter.Banner(fmt.Sprintf(
			"Rating history for the top chess player in %s chess for the last %d calendar days:",
			s.perfType, window.Days))
		s.reporter.InlineSeries(batch[0])
	}

	if err := s.exporter.Write(ctx, batch, today); err != nil {
		return fmt.Errorf("export batch: %w", err)
	}
	metrics.RecordRowsExported(len(batch))

	log.Info(ctx, "export run complete",
		logger.String("run_id", runID),
		logger.Int("players", len(players)),
		logger.Int("rows", len(batch)))
	return nil
}

// log resolves the configured logger, falling back to the global one.
func (s *Service) log() logger.Logger {
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s.logger
}
