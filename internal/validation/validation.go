package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	errs "github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingID         ConflictType = "missing_id"
	ConflictDuplicateID       ConflictType = "duplicate_id"
	ConflictDuplicateName     ConflictType = "duplicate_name"
	ConflictInvalidHabit      ConflictType = "invalid_habit"
	ConflictInvalidCompletion ConflictType = "invalid_completion"
)

// Conflict represents a problem detected in a stored habit list
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// ValidateHabitInput checks a create or update payload. Every problem is
// reported, joined into one error wrapping ErrInvalidHabit.
func ValidateHabitInput(in models.HabitInput) error {
	var problems []string

	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}

	switch in.Frequency {
	case models.FrequencyDaily, models.FrequencyWeekly:
	case models.FrequencyCustom:
		if len(in.CustomDays) == 0 {
			problems = append(problems, "custom frequency requires at least one day")
		}
		for _, d := range in.CustomDays {
			if d < 0 || d > 6 {
				problems = append(problems, fmt.Sprintf("invalid weekday %d (expected 0-6)", int(d)))
			}
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid frequency %q (expected daily, weekly or custom)", in.Frequency))
	}

	if in.StartDate == "" {
		problems = append(problems, "start date is required")
	} else if !utils.ValidateDateFormat(in.StartDate) {
		problems = append(problems, fmt.Sprintf("invalid start date %q (expected YYYY-MM-DD)", in.StartDate))
	}

	if in.ReminderTime != "" && !utils.ValidateTimeFormat(in.ReminderTime) {
		problems = append(problems, fmt.Sprintf("invalid reminder time %q (expected HH:MM)", in.ReminderTime))
	}
	if in.ReminderEnabled && in.ReminderTime == "" {
		problems = append(problems, "reminder enabled without a reminder time")
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", errs.ErrInvalidHabit, strings.Join(problems, "; "))
}

// Validator checks whole habit lists, as loaded from storage or an import file
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits reports structural problems across a habit list.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make(map[string]int)
	names := make(map[string][]string)
	for i, h := range habits {
		if h.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingID,
				Description: fmt.Sprintf("Habit #%d (%q) has no id", i+1, h.Name),
			})
		} else {
			ids[h.ID]++
		}
		if name := strings.ToLower(strings.TrimSpace(h.Name)); name != "" {
			names[name] = append(names[name], h.ID)
		}

		if err := ValidateHabitInput(h.Input()); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHabit,
				Description: fmt.Sprintf("Habit %q: %s", h.Name, strings.TrimPrefix(err.Error(), errs.ErrInvalidHabit.Error()+": ")),
				HabitIDs:    []string{h.ID},
			})
		}

		for day := range h.Completions {
			if !utils.ValidateDateFormat(day) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidCompletion,
					Description: fmt.Sprintf("Habit %q has a completion with an invalid date: %s", h.Name, day),
					HabitIDs:    []string{h.ID},
				})
			}
		}
	}

	dupIDs := make([]string, 0)
	for id, n := range ids {
		if n > 1 {
			dupIDs = append(dupIDs, id)
		}
	}
	sort.Strings(dupIDs)
	for _, id := range dupIDs {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateID,
			Description: fmt.Sprintf("Duplicate habit id: %s", id),
			HabitIDs:    []string{id},
		})
	}

	dupNames := make([]string, 0)
	for name, owners := range names {
		if len(owners) > 1 {
			dupNames = append(dupNames, name)
		}
	}
	sort.Strings(dupNames)
	for _, name := range dupNames {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateName,
			Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, names[name]),
			HabitIDs:    names[name],
		})
	}

	return result
}

// Structural reports whether a conflict makes a habit list unusable. Duplicate
// names and odd completion keys are tolerated.
func Structural(c Conflict) bool {
	switch c.Type {
	case ConflictMissingID, ConflictDuplicateID, ConflictInvalidHabit:
		return true
	default:
		return false
	}
}

// StructuralError returns the first structural conflict as an error, or nil.
func (vr *ValidationResult) StructuralError() error {
	for _, c := range vr.Conflicts {
		if Structural(c) {
			return errors.New(c.Description)
		}
	}
	return nil
}
