package reminder

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/notifier"
	"github.com/julianstephens/elevate/internal/utils"
)

var ErrNoNativeSender = errors.New("native alerts are not configured")

// ScheduleNative arms a one-shot native alert for the next time the clock
// reads the habit's reminder time. A pending alert for the same habit is
// replaced. Habits without an enabled reminder have any pending alert
// cancelled and return the zero time.
func (s *Scheduler) ScheduleNative(h models.Habit, now time.Time) (time.Time, error) {
	if s.cfg.Native == nil {
		return time.Time{}, ErrNoNativeSender
	}
	tag := Tag(h)
	if !h.ReminderEnabled || h.ReminderTime == "" {
		s.CancelNative(tag)
		return time.Time{}, nil
	}

	at, err := utils.NextOccurrence(h.ReminderTime, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}

	alert := nativeAlert(h)
	sender := s.cfg.Native

	s.mu.Lock()
	if prev, ok := s.timers[tag]; ok {
		prev.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(at.Sub(now), func() {
		s.mu.Lock()
		if s.timers[tag] == timer {
			delete(s.timers, tag)
		}
		s.mu.Unlock()
		if err := sender.Notify(alert); err != nil {
			logger.Warn("Native reminder failed", "tag", tag, "error", err)
		}
	})
	s.timers[tag] = timer
	s.mu.Unlock()

	logger.Debug("Native reminder armed", "tag", tag, "at", at)
	return at, nil
}

// SendNative delivers the native alert for h right away.
func (s *Scheduler) SendNative(h models.Habit) error {
	if s.cfg.Native == nil {
		return ErrNoNativeSender
	}
	return s.cfg.Native.Notify(nativeAlert(h))
}

func nativeAlert(h models.Habit) notifier.Alert {
	return notifier.Alert{
		Title:    "Habit Reminder: " + h.Name,
		Text:     reminderText(h),
		Tag:      Tag(h),
		Duration: constants.ReminderNotificationDuration,
	}
}

// ScheduleAllNative re-arms native alerts for every habit and drops alerts
// for habits that no longer exist.
func (s *Scheduler) ScheduleAllNative(habits []models.Habit, now time.Time) error {
	if s.cfg.Native == nil {
		return ErrNoNativeSender
	}

	live := make([]string, 0, len(habits))
	var errs []error
	for _, h := range habits {
		live = append(live, Tag(h))
		if _, err := s.ScheduleNative(h, now); err != nil {
			errs = append(errs, err)
		}
	}
	for _, tag := range s.PendingNative() {
		if !slices.Contains(live, tag) {
			s.CancelNative(tag)
		}
	}
	return errors.Join(errs...)
}

// CancelNative disarms the pending alert with tag, if any.
func (s *Scheduler) CancelNative(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[tag]; ok {
		t.Stop()
		delete(s.timers, tag)
	}
}

// PendingNative returns the tags of armed native alerts, sorted.
func (s *Scheduler) PendingNative() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := make([]string, 0, len(s.timers))
	for tag := range s.timers {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
