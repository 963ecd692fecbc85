package models

import "time"

type ConditionKind string

const (
	ConditionHabitCount     ConditionKind = "habit_count"
	ConditionMaxStreak      ConditionKind = "max_streak"
	ConditionPerfectDay     ConditionKind = "perfect_day"
	ConditionConsistencyRun ConditionKind = "consistency_run"
)

// Condition is the serializable unlock rule of an achievement
type Condition struct {
	Kind      ConditionKind `json:"kind"`
	Threshold int           `json:"threshold,omitempty"`
}

// Achievement is a catalog entry
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Emoji       string    `json:"emoji"`
	Condition   Condition `json:"condition"`
}

// UnlockedAchievement is the persisted record of an unlock. Records are only
// ever appended.
type UnlockedAchievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Emoji       string    `json:"emoji"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}
