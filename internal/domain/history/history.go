// Package history parses raw rating-history points into observations.
//
// Conventions:
// - Parsing is best-effort: malformed points are discarded, never fatal.
// - The returned map owns its storage; callers may mutate it freely.
package history

import (
	"time"

	"github.com/chesstrail/chesstrail/internal/domain/model"
)

// pointArity is the expected element count of a raw point:
// [year, month, day, rating].
const pointArity = 4

// Parse converts raw rating-history points into an observation map and
// reports how many points were discarded as malformed.
//
// Each point is expected to be [year, month, day, rating] with the month
// zero-indexed, as the Lichess API emits it. A point with the wrong arity
// or components that do not form a real calendar date is discarded and
// parsing continues with the remaining points. When several points land on
// the same date, the last one in input order wins.
//
// The map may be empty if the input is empty or entirely malformed.
func Parse(points [][]int) (model.Observations, int) {
	obs := make(model.Observations, len(points))
	discarded := 0
	for _, p := range points {
		if len(p) != pointArity {
			discarded++
			continue
		}
		// Month is zero-indexed in the API payload.
		d := model.NewDate(p[0], time.Month(p[1]+1), p[2])
		if !d.Valid() {
			discarded++
			continue
		}
		obs[d] = p[3]
	}
	return obs, discarded
}
