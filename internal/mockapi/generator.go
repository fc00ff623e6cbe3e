// Package mockapi is a small stand-in for the Lichess public API, used to
// exercise the exporter locally without network access or rate limits.
package mockapi

import (
	"fmt"
	"math/rand"
	"time"
)

// Synthetic history generation constants.
const (
	baseRating      = 2500
	ratingSpread    = 350 // top of board sits this far above the base
	ratingJitter    = 25  // max per-observation move
	historySpanDays = 120
	playChance      = 0.4 // probability a player has an observation on a day
)

// player is one synthetic board entry with its pre-generated history.
type player struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	points   [][]int // [year, month0, day, rating]
}

// generatePlayers builds a deterministic board. Ratings descend with rank
// and each player's history is sparse on purpose: day gaps are the whole
// point of forward-fill reconstruction.
func generatePlayers(cfg *Config, now time.Time) []*player {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic fixtures, not crypto

	players := make([]*player, cfg.Players)
	for rank := range players {
		// Names come off the seeded rng so the same seed always yields
		// the same board.
		name := fmt.Sprintf("player-%02d-%08x", rank+1, rng.Uint32())
		rating := baseRating + ratingSpread - rank*ratingSpread/max(cfg.Players, 1)
		players[rank] = &player{
			ID:       name,
			Username: name,
			points:   generateHistory(rng, rating, now),
		}
	}
	return players
}

// generateHistory walks backward over the span emitting observations on
// randomly chosen days, drifting the rating as it goes. Months are
// zero-indexed to match the upstream wire format.
func generateHistory(rng *rand.Rand, rating int, now time.Time) [][]int {
	var points [][]int
	for back := historySpanDays; back >= 1; back-- {
		if rng.Float64() > playChance {
			continue
		}
		rating += rng.Intn(2*ratingJitter+1) - ratingJitter
		day := now.AddDate(0, 0, -back)
		y, m, d := day.Date()
		points = append(points, []int{y, int(m) - 1, d, rating})
	}
	return points
}
