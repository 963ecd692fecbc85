package schedule

import (
	"testing"
	"time"

	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestIsDue_DailyEveryDayFromStart(t *testing.T) {
	h := models.Habit{Frequency: models.FrequencyDaily, StartDate: "2026-01-05"}

	start := mustDate(t, "2026-01-05")
	for i := 0; i < 60; i++ {
		day := start.AddDate(0, 0, i)
		if !IsDue(h, day) {
			t.Fatalf("daily habit should be due on %s", utils.FormatDate(day))
		}
	}

	if IsDue(h, mustDate(t, "2026-01-04")) {
		t.Error("daily habit should not be due before its start date")
	}
}

func TestIsDue_WeeklyOnlySundays(t *testing.T) {
	h := models.Habit{Frequency: models.FrequencyWeekly, StartDate: "2026-01-01"}

	// 2026-01-04 is a Sunday
	start := mustDate(t, "2026-01-04")
	for i := 0; i < 28; i++ {
		day := start.AddDate(0, 0, i)
		want := day.Weekday() == time.Sunday
		if got := IsDue(h, day); got != want {
			t.Errorf("IsDue(%s %s) = %v, want %v", utils.FormatDate(day), day.Weekday(), got, want)
		}
	}
}

func TestIsDue_CustomDays(t *testing.T) {
	h := models.Habit{
		Frequency:  models.FrequencyCustom,
		CustomDays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		StartDate:  "2026-02-04", // a Wednesday
	}

	tests := []struct {
		date string
		want bool
	}{
		{"2026-02-02", false}, // Monday, before start
		{"2026-02-04", true},  // Wednesday, start day
		{"2026-02-05", false}, // Thursday
		{"2026-02-06", true},  // Friday
		{"2026-02-07", false}, // Saturday
		{"2026-02-08", false}, // Sunday
		{"2026-02-09", true},  // Monday
	}

	for _, tt := range tests {
		if got := IsDue(h, mustDate(t, tt.date)); got != tt.want {
			t.Errorf("IsDue(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestIsDue_IgnoresTimeOfDay(t *testing.T) {
	h := models.Habit{Frequency: models.FrequencyDaily, StartDate: "2026-03-10"}

	lateOnStartDay := time.Date(2026, 3, 10, 23, 30, 0, 0, time.Local)
	if !IsDue(h, lateOnStartDay) {
		t.Error("expected habit to be due late in the evening of its start day")
	}
}

func TestIsDue_DegenerateHabits(t *testing.T) {
	day := mustDate(t, "2026-03-10")

	if IsDue(models.Habit{Frequency: "monthly"}, day) {
		t.Error("unknown frequency should never be due")
	}
	if IsDue(models.Habit{Frequency: models.FrequencyDaily, StartDate: "not-a-date"}, day) {
		t.Error("unparsable start date should never be due")
	}
	if !IsDue(models.Habit{Frequency: models.FrequencyDaily}, day) {
		t.Error("missing start date should not restrict due-ness")
	}
	if IsDue(models.Habit{Frequency: models.FrequencyCustom, StartDate: "2026-01-01"}, day) {
		t.Error("custom habit without days should never be due")
	}
}

func TestDueHabits(t *testing.T) {
	habits := []models.Habit{
		{ID: "a", Frequency: models.FrequencyDaily, StartDate: "2026-01-01"},
		{ID: "b", Frequency: models.FrequencyWeekly, StartDate: "2026-01-01"},
		{ID: "c", Frequency: models.FrequencyCustom, CustomDays: []time.Weekday{time.Tuesday}, StartDate: "2026-01-01"},
	}

	// 2026-03-10 is a Tuesday
	due := DueHabits(habits, mustDate(t, "2026-03-10"))
	if len(due) != 2 || due[0].ID != "a" || due[1].ID != "c" {
		t.Errorf("unexpected due habits: %+v", due)
	}
}

func TestOrigin(t *testing.T) {
	created := time.Date(2026, 4, 2, 15, 0, 0, 0, time.Local)

	if got := Origin(models.Habit{StartDate: "2026-03-01", CreatedAt: created}); utils.FormatDate(got) != "2026-03-01" {
		t.Errorf("expected start date to win, got %s", utils.FormatDate(got))
	}
	if got := Origin(models.Habit{CreatedAt: created}); utils.FormatDate(got) != "2026-04-02" {
		t.Errorf("expected created date fallback, got %s", utils.FormatDate(got))
	}
	if got := Origin(models.Habit{}); !got.IsZero() {
		t.Errorf("expected zero origin, got %v", got)
	}
}
