// Package achievements decides which milestones a habit list has reached and
// keeps the persisted record of what has been unlocked.
package achievements

import (
	"slices"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/schedule"
	"github.com/julianstephens/elevate/internal/streak"
	"github.com/julianstephens/elevate/internal/utils"
)

var catalog = []models.Achievement{
	{ID: "first-habit", Title: "Getting Started", Description: "Created your first habit", Emoji: "🌱",
		Condition: models.Condition{Kind: models.ConditionHabitCount, Threshold: 1}},
	{ID: "habit-collector", Title: "Habit Collector", Description: "Created 5 different habits", Emoji: "📚",
		Condition: models.Condition{Kind: models.ConditionHabitCount, Threshold: 5}},
	{ID: "habit-master", Title: "Habit Master", Description: "Created 10 different habits", Emoji: "🏆",
		Condition: models.Condition{Kind: models.ConditionHabitCount, Threshold: 10}},
	{ID: "first-streak", Title: "Streak Starter", Description: "Achieved your first 3-day streak", Emoji: "🔥",
		Condition: models.Condition{Kind: models.ConditionMaxStreak, Threshold: 3}},
	{ID: "week-warrior", Title: "Week Warrior", Description: "Maintained a 7-day streak", Emoji: "⚡",
		Condition: models.Condition{Kind: models.ConditionMaxStreak, Threshold: 7}},
	{ID: "month-master", Title: "Month Master", Description: "Achieved a 30-day streak", Emoji: "💎",
		Condition: models.Condition{Kind: models.ConditionMaxStreak, Threshold: 30}},
	{ID: "century-club", Title: "Century Club", Description: "Reached a 100-day streak", Emoji: "👑",
		Condition: models.Condition{Kind: models.ConditionMaxStreak, Threshold: 100}},
	{ID: "perfect-day", Title: "Perfect Day", Description: "Completed all habits in a single day", Emoji: "⭐",
		Condition: models.Condition{Kind: models.ConditionPerfectDay}},
	{ID: "consistency-king", Title: "Consistency King", Description: "Completed habits for 7 consecutive days", Emoji: "👑",
		Condition: models.Condition{Kind: models.ConditionConsistencyRun, Threshold: constants.ConsistencyRunDays}},
}

// Catalog returns every achievement that can be unlocked, in display order.
func Catalog() []models.Achievement {
	return slices.Clone(catalog)
}

// Lookup finds a catalog entry by id.
func Lookup(id string) (models.Achievement, bool) {
	i := slices.IndexFunc(catalog, func(a models.Achievement) bool { return a.ID == id })
	if i < 0 {
		return models.Achievement{}, false
	}
	return catalog[i], true
}

// Satisfied reports whether the habit list meets cond on the calendar day of now.
// Streaks are computed from completions rather than read from the cached field.
func Satisfied(cond models.Condition, habits []models.Habit, now time.Time) bool {
	today := utils.DateOnly(now)

	switch cond.Kind {
	case models.ConditionHabitCount:
		return len(habits) >= cond.Threshold
	case models.ConditionMaxStreak:
		best, _, ok := streak.Max(habits, today)
		return ok && best >= cond.Threshold
	case models.ConditionPerfectDay:
		due := schedule.DueHabits(habits, today)
		return len(due) > 0 && allCompleted(due, today)
	case models.ConditionConsistencyRun:
		return consistencyRun(habits, today, cond.Threshold)
	}
	return false
}

func consistencyRun(habits []models.Habit, today time.Time, days int) bool {
	if len(habits) == 0 || days <= 0 {
		return false
	}

	sawDue := false
	for i := range days {
		day := utils.AddDays(today, -i)
		due := schedule.DueHabits(habits, day)
		if len(due) == 0 {
			continue
		}
		sawDue = true
		if !allCompleted(due, day) {
			return false
		}
	}
	return sawDue
}

func allCompleted(habits []models.Habit, day time.Time) bool {
	key := utils.FormatDate(day)
	for _, h := range habits {
		if !h.IsCompleted(key) {
			return false
		}
	}
	return true
}

// Evaluate returns the catalog entries that habits satisfy now and that are
// not already in unlocked, stamped with now. It never touches unlocked.
func Evaluate(habits []models.Habit, unlocked []models.UnlockedAchievement, now time.Time) []models.UnlockedAchievement {
	var fresh []models.UnlockedAchievement
	for _, a := range catalog {
		if isUnlocked(unlocked, a.ID) {
			continue
		}
		if !Satisfied(a.Condition, habits, now) {
			continue
		}
		fresh = append(fresh, models.UnlockedAchievement{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Emoji:       a.Emoji,
			UnlockedAt:  now,
		})
	}
	return fresh
}

func isUnlocked(unlocked []models.UnlockedAchievement, id string) bool {
	return slices.ContainsFunc(unlocked, func(u models.UnlockedAchievement) bool { return u.ID == id })
}
