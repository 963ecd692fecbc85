package insights

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

var catalog = []models.Recommendation{
	{
		ID:            "drink-water",
		Title:         "Drink 8 glasses of water",
		Description:   "Stay hydrated throughout the day for better energy and focus",
		Category:      "Health & Fitness",
		Emoji:         "💧",
		Confidence:    0.95,
		Reasoning:     "Hydration is fundamental to all other health habits",
		SuggestedTime: "08:00",
		Difficulty:    models.DifficultyEasy,
	},
	{
		ID:            "morning-walk",
		Title:         "15-minute morning walk",
		Description:   "Start your day with light exercise and fresh air",
		Category:      "Health & Fitness",
		Emoji:         "🚶",
		Confidence:    0.88,
		Reasoning:     "Morning exercise boosts energy and mood for the entire day",
		SuggestedTime: "07:00",
		Difficulty:    models.DifficultyEasy,
	},
	{
		ID:            "meditation",
		Title:         "10-minute meditation",
		Description:   "Practice mindfulness to reduce stress and improve focus",
		Category:      "Mindfulness",
		Emoji:         "🧘",
		Confidence:    0.92,
		Reasoning:     "Meditation complements physical health habits perfectly",
		SuggestedTime: "06:30",
		Difficulty:    models.DifficultyMedium,
	},
	{
		ID:            "read-book",
		Title:         "Read for 20 minutes",
		Description:   "Expand your knowledge and vocabulary daily",
		Category:      "Learning",
		Emoji:         "📚",
		Confidence:    0.85,
		Reasoning:     "Reading enhances cognitive function and reduces stress",
		SuggestedTime: "21:00",
		Difficulty:    models.DifficultyEasy,
	},
	{
		ID:            "learn-language",
		Title:         "Practice a new language",
		Description:   "Spend 15 minutes learning a foreign language",
		Category:      "Learning",
		Emoji:         "🗣️",
		Confidence:    0.78,
		Reasoning:     "Language learning improves cognitive flexibility",
		SuggestedTime: "19:00",
		Difficulty:    models.DifficultyMedium,
	},
	{
		ID:            "plan-day",
		Title:         "Plan tomorrow today",
		Description:   "Spend 10 minutes planning the next day",
		Category:      "Productivity",
		Emoji:         "📋",
		Confidence:    0.90,
		Reasoning:     "Planning ahead reduces decision fatigue and increases productivity",
		SuggestedTime: "22:00",
		Difficulty:    models.DifficultyEasy,
	},
	{
		ID:            "deep-work",
		Title:         "2-hour deep work session",
		Description:   "Focus on your most important task without distractions",
		Category:      "Productivity",
		Emoji:         "🎯",
		Confidence:    0.82,
		Reasoning:     "Deep work sessions maximize productivity and skill development",
		SuggestedTime: "09:00",
		Difficulty:    models.DifficultyHard,
	},
	{
		ID:            "journal",
		Title:         "Journal",
		Description:   "Reflect on your day and thoughts for 10 minutes",
		Category:      "Creative",
		Emoji:         "✍️",
		Confidence:    0.87,
		Reasoning:     "Journaling improves self-awareness and emotional processing",
		SuggestedTime: "22:30",
		Difficulty:    models.DifficultyEasy,
	},
	{
		ID:            "creative-practice",
		Title:         "Creative practice",
		Description:   "Spend 30 minutes on a creative hobby",
		Category:      "Creative",
		Emoji:         "🎨",
		Confidence:    0.75,
		Reasoning:     "Creative activities reduce stress and improve problem-solving",
		SuggestedTime: "18:00",
		Difficulty:    models.DifficultyMedium,
	},
}

// Candidates returns a copy of the recommendation catalog.
func Candidates() []models.Recommendation {
	return slices.Clone(catalog)
}

// Recommend suggests up to MaxRecommendations habits the user does not have
// yet. Candidates in categories the user has no habit in get a confidence
// bonus; ties keep catalog order.
func Recommend(habits []models.Habit) []models.Recommendation {
	names := make(map[string]struct{}, len(habits))
	categories := make(map[string]struct{}, len(habits))
	for _, h := range habits {
		names[strings.ToLower(h.Name)] = struct{}{}
		categories[h.Category] = struct{}{}
	}

	var recs []models.Recommendation
	for _, rec := range catalog {
		if _, exists := names[strings.ToLower(rec.Title)]; exists {
			continue
		}
		if _, covered := categories[rec.Category]; !covered {
			rec.Confidence += constants.RecommendationCategoryBonus
		}
		recs = append(recs, rec)
	}

	slices.SortStableFunc(recs, func(a, b models.Recommendation) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})

	if len(recs) > constants.MaxRecommendations {
		recs = recs[:constants.MaxRecommendations]
	}
	return recs
}

// FromRecommendation builds the input for a daily habit starting today with
// a reminder at the suggested time.
func FromRecommendation(rec models.Recommendation, today time.Time) models.HabitInput {
	reminder := rec.SuggestedTime
	if reminder == "" {
		reminder = constants.DefaultRecommendedTime
	}
	return models.HabitInput{
		Name:            rec.Title,
		Emoji:           rec.Emoji,
		Frequency:       models.FrequencyDaily,
		StartDate:       utils.FormatDate(today),
		Category:        rec.Category,
		ReminderTime:    reminder,
		ReminderEnabled: true,
	}
}
