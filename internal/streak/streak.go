// Package streak derives streak, history and success-rate views from a
// habit's completion dates. All functions are pure; the caller supplies today.
package streak

import (
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
)

// Compute returns the current and longest streaks for the given completions.
//
// The current streak is the run of consecutive completed days ending at the
// most recent completion, provided that completion is today or yesterday;
// otherwise it is 0. The longest streak is the length of the longest run of
// consecutive completed days anywhere in the set.
func Compute(completions []models.Date, today models.Date) models.Streaks {
	if len(completions) == 0 {
		return models.Streaks{}
	}

	set := dateSet(completions)

	var latest models.Date
	for _, d := range completions {
		if latest.IsZero() || d.After(latest) {
			latest = d
		}
	}

	var current int
	if gap := today.DaysSince(latest); gap >= 0 && gap <= 1 {
		for d := latest; set[d]; d = d.AddDays(-1) {
			current++
		}
	}

	longest := 0
	for d := range set {
		if set[d.AddDays(-1)] {
			continue // not the start of a run
		}
		n := 0
		for e := d; set[e]; e = e.AddDays(1) {
			n++
		}
		if n > longest {
			longest = n
		}
	}

	return models.Streaks{Current: current, Longest: longest}
}

// History reports, for each of the last days calendar days ending at today
// inclusive, whether that day is completed. Entries are ordered oldest first.
func History(completions []models.Date, today models.Date, days int) []models.DayStatus {
	if days < 1 {
		return nil
	}
	set := dateSet(completions)
	out := make([]models.DayStatus, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDays(-i)
		out = append(out, models.DayStatus{Date: d, Done: set[d]})
	}
	return out
}

// SuccessRate returns completions within [from, today] divided by the number
// of days in that window, as a fraction in [0,1]. Backdated completions can
// push the raw ratio past 1, so the result is clamped.
func SuccessRate(completions []models.Date, from, today models.Date) float64 {
	days := today.DaysSince(from) + 1
	if days < 1 {
		return 0
	}
	count := 0
	for _, d := range completions {
		if !d.Before(from) && !d.After(today) {
			count++
		}
	}
	rate := float64(count) / float64(days)
	if rate > 1 {
		rate = 1
	}
	return rate
}

func dateSet(dates []models.Date) map[models.Date]bool {
	set := make(map[models.Date]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}
