package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// StreakSafetyCapDays bounds the backward streak walk. Habits are bounded by
	// their start date long before this is reached.
	StreakSafetyCapDays = 3660

	// MorningCutoff and EveningStart split reminder times for the skew insight.
	MorningCutoff = "12:00"
	EveningStart  = "18:00"
)
