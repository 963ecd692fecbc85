package analytics

import (
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// TrendResult compares the two halves of a daily series.
type TrendResult struct {
	Direction  Direction
	FirstHalf  float64 // mean percentage
	SecondHalf float64
	Change     float64 // SecondHalf - FirstHalf, in percentage points
}

// Trend compares the mean percentage of series[:n/2] with series[n/2:].
// Differences within the dead zone are reported as stable.
func Trend(series []Bucket) TrendResult {
	n := len(series)
	if n < 2 {
		return TrendResult{Direction: DirectionStable}
	}

	first := meanPercentage(series[:n/2])
	second := meanPercentage(series[n/2:])
	res := TrendResult{FirstHalf: first, SecondHalf: second, Change: second - first}

	switch {
	case second > first+constants.TrendDeadZonePoints:
		res.Direction = DirectionUp
	case second < first-constants.TrendDeadZonePoints:
		res.Direction = DirectionDown
	default:
		res.Direction = DirectionStable
	}
	return res
}

func meanPercentage(series []Bucket) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, b := range series {
		sum += b.Percentage()
	}
	return sum / float64(len(series))
}

// Summary is the footer of the trend chart.
type Summary struct {
	Average     float64
	Best        float64
	PerfectDays int
}

// Summarize reports the mean and best percentage of a series and how many
// buckets were fully completed. Buckets with nothing due are not perfect.
func Summarize(series []Bucket) Summary {
	s := Summary{Average: meanPercentage(series)}
	for _, b := range series {
		s.Best = max(s.Best, b.Percentage())
		if b.Total > 0 && b.Completed == b.Total {
			s.PerfectDays++
		}
	}
	return s
}

// Cell is one day of the year heatmap.
type Cell struct {
	Bucket
	Band int
}

// Band maps a completion rate onto the five heatmap intensities.
func Band(rate float64) int {
	switch {
	case rate <= 0:
		return 0
	case rate < 0.25:
		return 1
	case rate < 0.5:
		return 2
	case rate < 0.75:
		return 3
	default:
		return 4
	}
}

// Heatmap returns one cell per day for the year ending today, oldest first.
func Heatmap(habits []models.Habit, today time.Time) []Cell {
	series := Daily(habits, utils.DateOnly(today), constants.HeatmapDays)
	cells := make([]Cell, len(series))
	for i, b := range series {
		cells[i] = Cell{Bucket: b, Band: Band(b.Rate())}
	}
	return cells
}
