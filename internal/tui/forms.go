package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
	"github.com/julianstephens/elevate/internal/validation"
)

// HabitFormModel backs the add and edit forms.
type HabitFormModel struct {
	Name            string
	Emoji           string
	Frequency       models.Frequency
	Days            []time.Weekday
	StartDate       string
	Category        string
	ReminderEnabled bool
	ReminderTime    string
}

func newHabitFormModel(today time.Time) *HabitFormModel {
	return &HabitFormModel{
		Emoji:        constants.DefaultEmoji,
		Frequency:    models.FrequencyDaily,
		StartDate:    utils.FormatDate(today),
		Category:     constants.DefaultCategory,
		ReminderTime: constants.DefaultRecommendedTime,
	}
}

func habitFormModelFrom(h models.Habit) *HabitFormModel {
	fm := &HabitFormModel{
		Name:            h.Name,
		Emoji:           h.Emoji,
		Frequency:       h.Frequency,
		Days:            append([]time.Weekday(nil), h.CustomDays...),
		StartDate:       h.StartDate,
		Category:        h.Category,
		ReminderEnabled: h.ReminderEnabled,
		ReminderTime:    h.ReminderTime,
	}
	if fm.ReminderTime == "" {
		fm.ReminderTime = constants.DefaultRecommendedTime
	}
	return fm
}

// Input converts the form into a habit input. The reminder time is dropped
// when reminders are off.
func (fm *HabitFormModel) Input() models.HabitInput {
	in := models.HabitInput{
		Name:            strings.TrimSpace(fm.Name),
		Emoji:           fm.Emoji,
		Frequency:       fm.Frequency,
		StartDate:       strings.TrimSpace(fm.StartDate),
		Category:        fm.Category,
		ReminderEnabled: fm.ReminderEnabled,
	}
	if fm.Frequency == models.FrequencyCustom {
		in.CustomDays = fm.Days
	}
	if fm.ReminderEnabled {
		in.ReminderTime = strings.TrimSpace(fm.ReminderTime)
	}
	return in
}

func optionsOf(values []string, current string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values)+1)
	found := false
	for _, v := range values {
		opts = append(opts, huh.NewOption(v, v))
		found = found || v == current
	}
	// Imported habits may carry an emoji or category outside the presets.
	if !found && current != "" {
		opts = append(opts, huh.NewOption(current, current))
	}
	return opts
}

func weekdayOptions() []huh.Option[time.Weekday] {
	opts := make([]huh.Option[time.Weekday], 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		opts = append(opts, huh.NewOption(d.String(), d))
	}
	return opts
}

// NewHabitForm builds the add/edit form. Custom days are only asked for when
// the frequency is custom, and the reminder time only when reminders are on.
func NewHabitForm(fm *HabitFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Habit name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Emoji").
				Options(optionsOf(constants.EmojiOptions, fm.Emoji)...).
				Value(&fm.Emoji),
			huh.NewSelect[string]().
				Title("Category").
				Options(optionsOf(constants.Categories, fm.Category)...).
				Value(&fm.Category),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
					huh.NewOption("Custom days", models.FrequencyCustom),
				).
				Value(&fm.Frequency),
		),
		huh.NewGroup(
			huh.NewMultiSelect[time.Weekday]().
				Title("Days").
				Options(weekdayOptions()...).
				Value(&fm.Days).
				Validate(func(days []time.Weekday) error {
					if len(days) == 0 {
						return fmt.Errorf("pick at least one day")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return fm.Frequency != models.FrequencyCustom }),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD").
				Value(&fm.StartDate).
				Validate(func(s string) error {
					if !utils.ValidateDateFormat(strings.TrimSpace(s)) {
						return fmt.Errorf("expected YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Daily reminder").
				Value(&fm.ReminderEnabled),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Reminder time").
				Description("HH:MM, 24-hour").
				Value(&fm.ReminderTime).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
						return fmt.Errorf("expected HH:MM")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return !fm.ReminderEnabled }),
	).WithTheme(huh.ThemeDracula())
}

// validateForm runs the same checks the store applies, so the form can stay
// open with a message instead of failing after submit.
func validateForm(fm *HabitFormModel) error {
	return validation.ValidateHabitInput(fm.Input())
}
