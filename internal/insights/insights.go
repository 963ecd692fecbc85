// Package insights turns completion history into commentary on existing
// habits and suggestions for new ones. Everything here is a pure function of
// the habit list and the current date.
package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/streak"
	"github.com/julianstephens/elevate/internal/utils"
)

// EmptyMessage is shown when no rule produced an insight.
const EmptyMessage = "Keep tracking your habits to unlock personalized insights!"

// Report is the outcome of one insight pass.
type Report struct {
	Insights []models.Insight
	Empty    bool
	Message  string
}

type habitRate struct {
	habit  models.Habit
	bucket analytics.Bucket
}

// Generate evaluates the insight rules in order and keeps at most
// MaxInsights of them.
func Generate(habits []models.Habit, today time.Time) Report {
	today = utils.DateOnly(today)
	var out []models.Insight

	rates := windowRates(habits, today)

	if best, ok := bestRate(rates); ok && best.bucket.Rate() > constants.InsightChampionRate {
		out = append(out, models.Insight{
			Kind:        models.InsightConsistencyChampion,
			Tone:        models.ToneSuccess,
			Title:       "Consistency Champion",
			Description: fmt.Sprintf("%s is your most consistent habit", label(best.habit)),
			Value:       percentValue(best.bucket.Rate()),
		})
	}

	for _, r := range rates {
		if r.bucket.Rate() < constants.InsightStrugglingRate && r.bucket.Total >= constants.InsightStrugglingMinDue {
			out = append(out, models.Insight{
				Kind:        models.InsightNeedsAttention,
				Tone:        models.ToneWarning,
				Title:       "Needs Attention",
				Description: fmt.Sprintf("%s could use some focus", label(r.habit)),
				Value:       percentValue(r.bucket.Rate()),
			})
			break
		}
	}

	if best, holder, ok := streak.Max(habits, today); ok && best >= constants.InsightStreakMasterDays {
		out = append(out, models.Insight{
			Kind:        models.InsightStreakMaster,
			Tone:        models.ToneSuccess,
			Title:       "Streak Master",
			Description: fmt.Sprintf("%s has an amazing streak", label(holder)),
			Value:       fmt.Sprintf("%d days", best),
		})
	}

	if day, rate, ok := PeakDay(habits, today); ok && rate > constants.InsightPeakDayRate {
		out = append(out, models.Insight{
			Kind:        models.InsightPeakDay,
			Tone:        models.ToneInfo,
			Title:       "Peak Performance Day",
			Description: fmt.Sprintf("%s is your most productive day", day),
			Value:       percentValue(rate),
		})
	}

	morning, evening := reminderSkew(habits)
	switch {
	case morning > evening:
		out = append(out, models.Insight{
			Kind:        models.InsightMorningPerson,
			Tone:        models.ToneInfo,
			Title:       "Morning Person",
			Description: "You prefer building habits in the morning",
			Value:       fmt.Sprintf("%d morning habits", morning),
		})
	case evening > morning:
		out = append(out, models.Insight{
			Kind:        models.InsightEveningPerson,
			Tone:        models.ToneInfo,
			Title:       "Evening Person",
			Description: "You prefer building habits in the evening",
			Value:       fmt.Sprintf("%d evening habits", evening),
		})
	}

	if len(habits) >= constants.InsightRoutineHabits {
		out = append(out, models.Insight{
			Kind:        models.InsightHabitBuilder,
			Tone:        models.ToneSuccess,
			Title:       "Habit Builder",
			Description: "You're building a comprehensive routine",
			Value:       fmt.Sprintf("%d active habits", len(habits)),
		})
	}

	if len(out) > constants.MaxInsights {
		out = out[:constants.MaxInsights]
	}
	if len(out) == 0 {
		return Report{Empty: true, Message: EmptyMessage}
	}
	return Report{Insights: out}
}

// windowRates samples every habit over the window ending today.
func windowRates(habits []models.Habit, today time.Time) []habitRate {
	start := today.AddDate(0, 0, -(constants.InsightWindowDays - 1))
	rates := make([]habitRate, 0, len(habits))
	for _, h := range habits {
		rates = append(rates, habitRate{
			habit:  h,
			bucket: analytics.Span([]models.Habit{h}, start, today),
		})
	}
	return rates
}

func bestRate(rates []habitRate) (habitRate, bool) {
	if len(rates) == 0 {
		return habitRate{}, false
	}
	best := rates[0]
	for _, r := range rates[1:] {
		if r.bucket.Rate() > best.bucket.Rate() {
			best = r
		}
	}
	return best, true
}

// PeakDay finds the weekday with the best completion rate over its most
// recent occurrences on or before today. ok is false when nothing was due on
// any of them.
func PeakDay(habits []models.Habit, today time.Time) (day time.Weekday, rate float64, ok bool) {
	today = utils.DateOnly(today)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		latest := today.AddDate(0, 0, -int((today.Weekday()-wd+7)%7))
		var b analytics.Bucket
		for i := 0; i < constants.InsightPeakDayOccurrences; i++ {
			d := analytics.Day(habits, latest.AddDate(0, 0, -7*i))
			b.Completed += d.Completed
			b.Total += d.Total
		}
		if b.Total == 0 {
			continue
		}
		if !ok || b.Rate() > rate {
			day, rate, ok = wd, b.Rate(), true
		}
	}
	return day, rate, ok
}

// reminderSkew counts habits with a reminder before noon and at or after
// the evening start.
func reminderSkew(habits []models.Habit) (morning, evening int) {
	cutoff, _ := utils.ParseTimeToMinutes(constants.MorningCutoff)
	eveningStart, _ := utils.ParseTimeToMinutes(constants.EveningStart)
	for _, h := range habits {
		if h.ReminderTime == "" {
			continue
		}
		m, err := utils.ParseTimeToMinutes(h.ReminderTime)
		if err != nil {
			continue
		}
		switch {
		case m < cutoff:
			morning++
		case m >= eveningStart:
			evening++
		}
	}
	return morning, evening
}

func label(h models.Habit) string {
	if h.Emoji == "" {
		return h.Name
	}
	return h.Emoji + " " + h.Name
}

func percentValue(rate float64) string {
	return fmt.Sprintf("%d%% completion rate", int(math.Round(rate*100)))
}
