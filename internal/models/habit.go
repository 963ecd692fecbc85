package models

import (
	"maps"
	"slices"
	"time"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Emoji           string          `json:"emoji"`
	Frequency       Frequency       `json:"frequency"`
	CustomDays      []time.Weekday  `json:"customDays,omitempty"` // 0=Sunday..6=Saturday
	StartDate       string          `json:"startDate"`            // YYYY-MM-DD format
	Category        string          `json:"category"`
	Streak          int             `json:"streak"`
	Completions     map[string]bool `json:"completions"` // YYYY-MM-DD -> true, sparse
	CreatedAt       time.Time       `json:"createdAt"`
	ReminderTime    string          `json:"reminderTime,omitempty"` // HH:MM format
	ReminderEnabled bool            `json:"reminderEnabled,omitempty"`
}

// HabitInput holds the user-editable fields of a habit
type HabitInput struct {
	Name            string
	Emoji           string
	Frequency       Frequency
	CustomDays      []time.Weekday
	StartDate       string
	Category        string
	ReminderTime    string
	ReminderEnabled bool
}

// IsCompleted reports whether the habit was marked done on the given day (YYYY-MM-DD)
func (h Habit) IsCompleted(day string) bool {
	return h.Completions[day]
}

// HasCustomDay reports whether wd is one of the habit's custom days
func (h Habit) HasCustomDay(wd time.Weekday) bool {
	return slices.Contains(h.CustomDays, wd)
}

// Clone returns a deep copy so snapshots never share completion maps
func (h Habit) Clone() Habit {
	c := h
	c.CustomDays = slices.Clone(h.CustomDays)
	c.Completions = maps.Clone(h.Completions)
	if c.Completions == nil {
		c.Completions = make(map[string]bool)
	}
	return c
}

// Apply overwrites the editable fields with the input values. Identity,
// completions and the cached streak are left alone.
func (h Habit) Apply(in HabitInput) Habit {
	c := h.Clone()
	c.Name = in.Name
	c.Emoji = in.Emoji
	c.Frequency = in.Frequency
	c.CustomDays = nil
	if in.Frequency == FrequencyCustom {
		c.CustomDays = slices.Clone(in.CustomDays)
		slices.Sort(c.CustomDays)
		c.CustomDays = slices.Compact(c.CustomDays)
	}
	c.StartDate = in.StartDate
	c.Category = in.Category
	c.ReminderTime = in.ReminderTime
	c.ReminderEnabled = in.ReminderEnabled
	return c
}

// Input returns the editable fields of the habit
func (h Habit) Input() HabitInput {
	return HabitInput{
		Name:            h.Name,
		Emoji:           h.Emoji,
		Frequency:       h.Frequency,
		CustomDays:      slices.Clone(h.CustomDays),
		StartDate:       h.StartDate,
		Category:        h.Category,
		ReminderTime:    h.ReminderTime,
		ReminderEnabled: h.ReminderEnabled,
	}
}
