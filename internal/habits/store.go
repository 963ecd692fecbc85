// Package habits owns the canonical habit list. Every mutation builds a new
// snapshot, persists it, and only then makes it visible to readers.
package habits

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/elevate/internal/constants"
	errs "github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/notifier"
	"github.com/julianstephens/elevate/internal/schedule"
	"github.com/julianstephens/elevate/internal/storage"
	"github.com/julianstephens/elevate/internal/streak"
	"github.com/julianstephens/elevate/internal/utils"
	"github.com/julianstephens/elevate/internal/validation"
)

// ChangeFunc receives the snapshot produced by a mutation.
type ChangeFunc func(habits []models.Habit)

// Store holds the habit list. Snapshots returned from it are shared and must
// be treated as read-only.
type Store struct {
	mu       sync.RWMutex
	writeMu  sync.Mutex
	provider storage.Provider
	sink     notifier.Sink
	now      func() time.Time
	habits   []models.Habit
	onChange []ChangeFunc
}

// NewStore creates a store backed by p. sink receives user-facing notices and
// may be nil.
func NewStore(p storage.Provider, sink notifier.Sink) *Store {
	return &Store{provider: p, sink: sink, now: time.Now}
}

// SetClock replaces the clock used for creation times and streaks.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// OnChange registers fn to run after every successful mutation.
func (s *Store) OnChange(fn ChangeFunc) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Load reads the persisted habit list. Nothing stored means no habits. A
// document that cannot be decoded also yields no habits, plus a warning.
func (s *Store) Load() error {
	list, _, err := storage.LoadDocument[[]models.Habit](s.provider, constants.HabitsDocumentKey)
	if err != nil {
		if !errors.Is(err, errs.ErrMalformedDocument) {
			return err
		}
		logger.Warn("Discarding unreadable habit data", "error", err)
		s.notify(models.NotificationWarning, errs.Notice(err), "Your saved habits could not be read. Starting with an empty list.")
		list = nil
	}

	for i := range list {
		if list[i].Completions == nil {
			list[i].Completions = make(map[string]bool)
		}
	}

	s.mu.Lock()
	s.habits = list
	s.mu.Unlock()
	return nil
}

// All returns the current snapshot.
func (s *Store) All() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.habits)
}

// Len returns the number of habits.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.habits)
}

// Get returns the habit with the given id.
func (s *Store) Get(id string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.habits, id); i >= 0 {
		return s.habits[i], nil
	}
	return models.Habit{}, fmt.Errorf("%w: %s", errs.ErrHabitNotFound, id)
}

// FindByName returns the first habit whose name matches, ignoring case and
// surrounding whitespace.
func (s *Store) FindByName(name string) (models.Habit, error) {
	want := strings.TrimSpace(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.habits {
		if strings.EqualFold(strings.TrimSpace(h.Name), want) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %q", errs.ErrHabitNotFound, name)
}

// Today returns the habits due on date.
func (s *Store) Today(date time.Time) []models.Habit {
	return schedule.DueHabits(s.All(), date)
}

// Add validates in and appends a new habit with a fresh id, no completions
// and a zero streak.
func (s *Store) Add(in models.HabitInput) (models.Habit, error) {
	if err := validation.ValidateHabitInput(in); err != nil {
		return models.Habit{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to generate habit id: %w", err)
	}

	h := models.Habit{
		ID:          id.String(),
		CreatedAt:   s.now(),
		Completions: make(map[string]bool),
	}.Apply(in)

	err = s.mutate(func(cur []models.Habit) ([]models.Habit, error) {
		return append(slices.Clone(cur), h), nil
	})
	if err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit added", "id", h.ID, "name", h.Name)
	return h, nil
}

// Update replaces the editable fields of a habit. The streak is recomputed
// since a schedule change can change it.
func (s *Store) Update(id string, in models.HabitInput) (models.Habit, error) {
	if err := validation.ValidateHabitInput(in); err != nil {
		return models.Habit{}, err
	}

	var updated models.Habit
	err := s.mutate(func(cur []models.Habit) ([]models.Habit, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", errs.ErrHabitNotFound, id)
		}
		updated = streak.Recompute(cur[i].Apply(in), s.now())
		next := slices.Clone(cur)
		next[i] = updated
		return next, nil
	})
	if err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit updated", "id", id)
	return updated, nil
}

// Delete removes a habit and its history.
func (s *Store) Delete(id string) error {
	err := s.mutate(func(cur []models.Habit) ([]models.Habit, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", errs.ErrHabitNotFound, id)
		}
		return slices.Delete(slices.Clone(cur), i, i+1), nil
	})
	if err != nil {
		return err
	}
	logger.Info("Habit deleted", "id", id)
	return nil
}

// ToggleCompletion flips the completion mark for date and recomputes the
// streak as of the store clock. Clearing a mark removes the key entirely.
func (s *Store) ToggleCompletion(id string, date time.Time) (models.Habit, error) {
	key := utils.FormatDate(date)

	var toggled models.Habit
	err := s.mutate(func(cur []models.Habit) ([]models.Habit, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", errs.ErrHabitNotFound, id)
		}
		h := cur[i].Clone()
		if h.Completions[key] {
			delete(h.Completions, key)
		} else {
			h.Completions[key] = true
		}
		toggled = streak.Recompute(h, s.now())

		next := slices.Clone(cur)
		next[i] = toggled
		return next, nil
	})
	if err != nil {
		return models.Habit{}, err
	}
	logger.Debug("Habit toggled", "id", id, "date", key, "completed", toggled.Completions[key], "streak", toggled.Streak)
	return toggled, nil
}

// Replace swaps the whole list, as an import does. Streaks are recomputed.
func (s *Store) Replace(habits []models.Habit) error {
	now := s.now()
	next := make([]models.Habit, len(habits))
	for i, h := range habits {
		next[i] = streak.Recompute(h, now)
	}
	return s.mutate(func([]models.Habit) ([]models.Habit, error) {
		return next, nil
	})
}

// Clear removes every habit and the stored document.
func (s *Store) Clear() error {
	s.writeMu.Lock()
	if err := s.provider.DeleteDocument(constants.HabitsDocumentKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.writeMu.Unlock()
		return fmt.Errorf("failed to clear habits: %w", err)
	}
	s.mu.Lock()
	s.habits = nil
	s.mu.Unlock()
	hooks := slices.Clone(s.onChange)
	s.writeMu.Unlock()

	logger.Info("All habits cleared")
	for _, fn := range hooks {
		fn(nil)
	}
	return nil
}

// mutate derives the next snapshot from the current one, persists it and
// publishes it. Writers are serialized; readers never block on storage.
func (s *Store) mutate(fn func(cur []models.Habit) ([]models.Habit, error)) error {
	s.writeMu.Lock()

	s.mu.RLock()
	cur := s.habits
	s.mu.RUnlock()

	next, err := fn(cur)
	if err != nil {
		s.writeMu.Unlock()
		return err
	}
	if next == nil {
		next = []models.Habit{}
	}
	if err := storage.SaveDocument(s.provider, constants.HabitsDocumentKey, next); err != nil {
		s.writeMu.Unlock()
		return err
	}

	s.mu.Lock()
	s.habits = next
	s.mu.Unlock()
	hooks := slices.Clone(s.onChange)
	s.writeMu.Unlock()

	snapshot := slices.Clone(next)
	for _, fn := range hooks {
		fn(snapshot)
	}
	return nil
}

func (s *Store) notify(kind models.NotificationType, title, message string) {
	if s.sink == nil {
		return
	}
	s.sink.Add(models.Notification{Type: kind, Title: title, Message: message})
}

func indexOf(habits []models.Habit, id string) int {
	return slices.IndexFunc(habits, func(h models.Habit) bool { return h.ID == id })
}
