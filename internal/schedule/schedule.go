// Package schedule decides which calendar days a habit must be tracked on.
// IsDue is the only place that rule lives; streaks, analytics, insights,
// achievements and reminders all go through it.
package schedule

import (
	"time"

	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

// IsDue determines if the habit must be tracked on the given date.
// A habit is never due before its start date.
func IsDue(h models.Habit, date time.Time) bool {
	day := utils.DateOnly(date)

	if h.StartDate != "" {
		start, err := utils.ParseDate(h.StartDate)
		if err != nil {
			return false
		}
		if day.Before(start) {
			return false
		}
	}

	switch h.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		return day.Weekday() == time.Sunday
	case models.FrequencyCustom:
		return h.HasCustomDay(day.Weekday())
	default:
		return false
	}
}

// DueHabits returns the habits that are due on the given date, in input order.
func DueHabits(habits []models.Habit, date time.Time) []models.Habit {
	due := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if IsDue(h, date) {
			due = append(due, h)
		}
	}
	return due
}

// Origin returns the first calendar day the habit can be tracked on: its
// start date, or the day it was created when no start date is set. The zero
// time is returned when neither is known.
func Origin(h models.Habit) time.Time {
	if h.StartDate != "" {
		if start, err := utils.ParseDate(h.StartDate); err == nil {
			return start
		}
	}
	if !h.CreatedAt.IsZero() {
		return utils.DateOnly(h.CreatedAt)
	}
	return time.Time{}
}
