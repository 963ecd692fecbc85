// Package streak derives consecutive-completion runs from a habit's
// completion history.
package streak

import (
	"slices"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/schedule"
	"github.com/julianstephens/elevate/internal/utils"
)

// Compute returns the current streak of h as of the given day.
//
// The walk goes backward one calendar day at a time. Days the habit is not
// due on are skipped without breaking the run, a due and completed day
// extends it, and the first due day without a completion ends it. The walk
// never goes past the habit's origin.
func Compute(h models.Habit, asOf time.Time) int {
	day := utils.DateOnly(asOf)
	origin := schedule.Origin(h)

	count := 0
	for i := 0; i < constants.StreakSafetyCapDays; i++ {
		if !origin.IsZero() && day.Before(origin) {
			break
		}
		if schedule.IsDue(h, day) {
			if !h.IsCompleted(utils.FormatDate(day)) {
				break
			}
			count++
		}
		day = day.AddDate(0, 0, -1)
	}

	return count
}

// Recompute returns a copy of h with its cached streak refreshed.
func Recompute(h models.Habit, asOf time.Time) models.Habit {
	c := h.Clone()
	c.Streak = Compute(c, asOf)
	return c
}

// Longest returns the best run of consecutive completed due days in the
// habit's history up to asOf.
func Longest(h models.Habit, asOf time.Time) int {
	end := utils.DateOnly(asOf)
	start := schedule.Origin(h)
	if first, ok := earliestCompletion(h); ok && (start.IsZero() || first.Before(start)) {
		start = first
	}
	if start.IsZero() || start.After(end) {
		return 0
	}
	if utils.DaysBetween(start, end) > constants.StreakSafetyCapDays {
		start = end.AddDate(0, 0, -constants.StreakSafetyCapDays)
	}

	best, run := 0, 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !schedule.IsDue(h, day) {
			continue
		}
		if h.IsCompleted(utils.FormatDate(day)) {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}

	return best
}

// Max returns the highest current streak across habits as of the given day,
// together with the habit holding it. ok is false when habits is empty.
func Max(habits []models.Habit, asOf time.Time) (best int, holder models.Habit, ok bool) {
	for _, h := range habits {
		s := Compute(h, asOf)
		if !ok || s > best {
			best, holder, ok = s, h, true
		}
	}
	return best, holder, ok
}

func earliestCompletion(h models.Habit) (time.Time, bool) {
	days := make([]string, 0, len(h.Completions))
	for day, done := range h.Completions {
		if done {
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return time.Time{}, false
	}
	slices.Sort(days)
	for _, day := range days {
		if t, err := utils.ParseDate(day); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
