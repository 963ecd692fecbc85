package models

type InsightTone string

const (
	ToneSuccess InsightTone = "success"
	ToneWarning InsightTone = "warning"
	ToneInfo    InsightTone = "info"
)

type InsightKind string

const (
	InsightConsistencyChampion InsightKind = "consistency_champion"
	InsightNeedsAttention      InsightKind = "needs_attention"
	InsightStreakMaster        InsightKind = "streak_master"
	InsightPeakDay             InsightKind = "peak_day"
	InsightMorningPerson       InsightKind = "morning_person"
	InsightEveningPerson       InsightKind = "evening_person"
	InsightHabitBuilder        InsightKind = "habit_builder"
)

// Insight is a piece of read-only commentary on existing habits
type Insight struct {
	Kind        InsightKind `json:"kind"`
	Tone        InsightTone `json:"tone"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Value       string      `json:"value,omitempty"`
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Recommendation is a suggested new habit
type Recommendation struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Emoji         string     `json:"emoji"`
	Confidence    float64    `json:"confidence"`
	Reasoning     string     `json:"reasoning"`
	SuggestedTime string     `json:"suggestedTime,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
}
