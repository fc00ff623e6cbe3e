// Package window reconstructs a dense daily rating series from sparse,
// irregularly-sampled observations.
//
// Conventions:
// - Reconstruction is pure: "today" is always an explicit parameter, never
//   read from the wall clock inside this package.
// - The output is date-ascending and gap-free by construction.
package window

import "github.com/chesstrail/chesstrail/internal/domain/model"

// Days is the length of the reconstruction window in calendar days.
// The window covers [today-Days, today-1] inclusive.
const Days = 30

// NoRating is the rating assigned to a day with no observation on or
// before it. It is indistinguishable from a genuine zero rating; callers
// that need to tell the two apart cannot, and the export surfaces accept
// that.
const NoRating = 0

// Window returns the Days calendar dates ending the day before today,
// ascending.
func Window(today model.Date) []model.Date {
	start := today.AddDays(-Days)
	days := make([]model.Date, Days)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// Reconstruct produces a dense daily series for the window ending the day
// before today, carrying the last known rating across days with no
// observation.
//
// The first window day falls back to the most recent observation before
// the window, or NoRating when the player has no history that early.
// Every later day uses its own observation when one exists, otherwise the
// value assigned to the previous day. Observations after the window end
// never affect the result.
//
// The returned series always has exactly Days entries.
func Reconstruct(obs model.Observations, today model.Date) model.Series {
	days := Window(today)
	series := make(model.Series, 0, Days)

	var last int
	for i, day := range days {
		rating, ok := obs[day]
		switch {
		case ok:
			// An observation on a window day always wins.
		case i == 0:
			rating = priorRating(obs, day)
		default:
			rating = last
		}
		series = append(series, model.SeriesEntry{Date: day, Rating: rating})
		last = rating
	}
	return series
}

// priorRating returns the rating at the latest observation strictly before
// day, or NoRating when no such observation exists.
func priorRating(obs model.Observations, day model.Date) int {
	var (
		best  model.Date
		found bool
	)
	for d := range obs {
		if !d.Before(day) {
			continue
		}
		if !found || best.Before(d) {
			best = d
			found = true
		}
	}
	if !found {
		return NoRating
	}
	return obs[best]
}
