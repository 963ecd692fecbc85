// Package analytics rolls completion history up into daily, weekly and
// yearly buckets for trend charts, the progress view and the heatmap.
package analytics

import (
	"fmt"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/schedule"
	"github.com/julianstephens/elevate/internal/streak"
	"github.com/julianstephens/elevate/internal/utils"
)

// Bucket counts due habit-days and completed habit-days over [Start, End].
type Bucket struct {
	Start     time.Time
	End       time.Time
	Completed int
	Total     int
}

// Rate is the completed fraction, 0 when nothing was due.
func (b Bucket) Rate() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Completed) / float64(b.Total)
}

// Percentage is Rate scaled to 0..100.
func (b Bucket) Percentage() float64 {
	return b.Rate() * 100
}

func (b Bucket) add(o Bucket) Bucket {
	b.Completed += o.Completed
	b.Total += o.Total
	return b
}

// Filter narrows habits to a single habit id. An empty id keeps all habits.
func Filter(habits []models.Habit, habitID string) []models.Habit {
	if habitID == "" {
		return habits
	}
	for _, h := range habits {
		if h.ID == habitID {
			return []models.Habit{h}
		}
	}
	return nil
}

// Day returns the bucket for a single calendar day.
func Day(habits []models.Habit, day time.Time) Bucket {
	day = utils.DateOnly(day)
	b := Bucket{Start: day, End: day}
	key := utils.FormatDate(day)
	for _, h := range habits {
		if !schedule.IsDue(h, day) {
			continue
		}
		b.Total++
		if h.IsCompleted(key) {
			b.Completed++
		}
	}
	return b
}

// Span returns one bucket summing every day in [start, end].
func Span(habits []models.Habit, start, end time.Time) Bucket {
	start, end = utils.DateOnly(start), utils.DateOnly(end)
	total := Bucket{Start: start, End: end}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		total = total.add(Day(habits, day))
	}
	return total
}

// Daily returns one bucket per day for the window of days ending on end,
// oldest first.
func Daily(habits []models.Habit, end time.Time, days int) []Bucket {
	if days <= 0 {
		return nil
	}
	end = utils.DateOnly(end)
	series := make([]Bucket, 0, days)
	for i := days - 1; i >= 0; i-- {
		series = append(series, Day(habits, end.AddDate(0, 0, -i)))
	}
	return series
}

// Weekly returns weeks 7-day blocks ending yesterday, oldest first. Block i
// (counting back from today) spans today-(i+1)*7 through today-(i+1)*7+6.
func Weekly(habits []models.Habit, today time.Time, weeks int) []Bucket {
	if weeks <= 0 {
		return nil
	}
	today = utils.DateOnly(today)
	series := make([]Bucket, weeks)
	for i := 0; i < weeks; i++ {
		start := today.AddDate(0, 0, -(i+1)*7)
		series[weeks-1-i] = Span(habits, start, start.AddDate(0, 0, 6))
	}
	return series
}

// Range selects the trend chart window.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// Days returns the window length of the range.
func (r Range) Days() int {
	switch r {
	case RangeWeek:
		return constants.TrendWeekDays
	case RangeYear:
		return constants.TrendYearDays
	default:
		return constants.TrendMonthDays
	}
}

// ParseRange validates a range name. Empty selects the month window.
func ParseRange(s string) (Range, error) {
	switch r := Range(s); r {
	case "":
		return RangeMonth, nil
	case RangeWeek, RangeMonth, RangeYear:
		return r, nil
	default:
		return "", fmt.Errorf("invalid range %q (expected week, month or year)", s)
	}
}

// TodaySummary backs the dashboard counters.
type TodaySummary struct {
	Due         int
	Completed   int
	TotalStreak int
}

// Percentage of today's due habits that are done.
func (s TodaySummary) Percentage() float64 {
	return Bucket{Completed: s.Completed, Total: s.Due}.Percentage()
}

// Today summarizes the habits due on the given day.
func Today(habits []models.Habit, today time.Time) TodaySummary {
	b := Day(habits, today)
	s := TodaySummary{Due: b.Total, Completed: b.Completed}
	for _, h := range habits {
		s.TotalStreak += streak.Compute(h, today)
	}
	return s
}
