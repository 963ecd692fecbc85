package constants

const (
	// Trend windows in days
	TrendWeekDays  = 7
	TrendMonthDays = 30
	TrendYearDays  = 365

	// HeatmapDays is the number of daily cells in the year overview
	HeatmapDays = 365

	// WeeklyBlocks is the number of 7-day blocks in the weekly progress view
	WeeklyBlocks = 12

	// TrendDeadZonePoints is the percentage-point band inside which a trend is stable
	TrendDeadZonePoints = 5.0

	// Insight thresholds
	InsightWindowDays         = 30
	InsightChampionRate       = 0.8
	InsightStrugglingRate     = 0.3
	InsightStrugglingMinDue   = 8
	InsightStreakMasterDays   = 7
	InsightPeakDayRate        = 0.7
	InsightPeakDayOccurrences = 4
	InsightRoutineHabits      = 5
	MaxInsights               = 6

	// Recommendation scoring
	RecommendationCategoryBonus = 0.1
	MaxRecommendations          = 3

	// ConsistencyRunDays is the window checked by the consistency achievement
	ConsistencyRunDays = 7
)

func init() {
	if InsightStrugglingRate >= InsightChampionRate {
		panic("InsightStrugglingRate must be below InsightChampionRate")
	}
}
