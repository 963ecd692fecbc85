// Package reminder fires habit reminders while the application is running.
//
// A Scheduler checks once per interval for habits whose reminder time matches
// the current minute and posts an in-app notification for each, at most once
// per habit per day. It can also arm one-shot native alerts through the tray.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/notifier"
	"github.com/julianstephens/elevate/internal/schedule"
	"github.com/julianstephens/elevate/internal/utils"
)

// HabitSource is the part of the habit store the scheduler needs.
type HabitSource interface {
	All() []models.Habit
	ToggleCompletion(id string, date time.Time) (models.Habit, error)
}

// AchievementChecker re-evaluates achievements against the current habits.
type AchievementChecker interface {
	Check(habits []models.Habit, now time.Time) ([]models.UnlockedAchievement, error)
}

// AlertSender delivers native alerts.
type AlertSender interface {
	Notify(a notifier.Alert) error
}

var ErrAlreadyRunning = errors.New("reminder scheduler already running")

type Config struct {
	Interval     time.Duration
	Achievements AchievementChecker
	Native       AlertSender
}

type Scheduler struct {
	habits HabitSource
	sink   notifier.Sink
	cfg    Config
	clock  func() time.Time
	mu     sync.Mutex
	fired  map[string]string // habit id -> day last reminded
	timers map[string]*time.Timer
	cancel context.CancelFunc
	doneCh chan struct{}
}

func New(habits HabitSource, sink notifier.Sink, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = constants.DefaultReminderInterval
	}
	return &Scheduler{
		habits: habits,
		sink:   sink,
		cfg:    cfg,
		clock:  time.Now,
		fired:  make(map[string]string),
		timers: make(map[string]*time.Timer),
	}
}

// SetClock replaces the time source used by the background loop.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.clock = now
}

// Start runs an immediate check and then one per interval until ctx is done
// or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.doneCh = make(chan struct{})
	done := s.doneCh
	s.mu.Unlock()

	go s.loop(ctx, done)
	logger.Debug("Reminder scheduler started", "interval", s.cfg.Interval)
	return nil
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.Tick(s.clock())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(s.clock())
		}
	}
}

// Stop cancels the loop, waits for it to exit and disarms pending native
// alerts. Calling Stop on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.doneCh
	s.cancel, s.doneCh = nil, nil
	for tag, t := range s.timers {
		t.Stop()
		delete(s.timers, tag)
	}
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logger.Debug("Reminder scheduler stopped")
}

// Tick posts reminders for now and re-runs achievement evaluation. It returns
// the ids of the habits reminded.
func (s *Scheduler) Tick(now time.Time) []string {
	habits := s.habits.All()
	clock := utils.ClockString(now)
	day := utils.FormatDate(now)

	var reminded []string
	for _, h := range habits {
		if !h.ReminderEnabled || h.ReminderTime != clock {
			continue
		}
		if !schedule.IsDue(h, now) || h.IsCompleted(day) {
			continue
		}
		if !s.markFired(h.ID, day) {
			continue
		}

		reminded = append(reminded, h.ID)
		logger.Info("Reminder fired", "habit", h.ID, "time", clock)
		if s.sink != nil {
			s.sink.Add(s.reminderNotification(h, now))
		}
	}

	if s.cfg.Achievements != nil {
		if _, err := s.cfg.Achievements.Check(habits, now); err != nil {
			logger.Warn("Achievement check failed", "error", err)
		}
	}
	return reminded
}

func (s *Scheduler) markFired(id, day string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fired[id] == day {
		return false
	}
	s.fired[id] = day
	return true
}

func (s *Scheduler) reminderNotification(h models.Habit, now time.Time) models.Notification {
	id := h.ID
	date := utils.DateOnly(now)
	return models.Notification{
		Type:     models.NotificationInfo,
		Title:    "Habit Reminder",
		Message:  reminderText(h),
		Duration: constants.ReminderNotificationDuration,
		Action: &models.NotificationAction{
			Label: "Mark Complete",
			Run: func() {
				if _, err := s.habits.ToggleCompletion(id, date); err != nil {
					logger.Warn("Failed to complete habit from reminder", "habit", id, "error", err)
				}
			},
		},
	}
}

func reminderText(h models.Habit) string {
	if h.Emoji == "" {
		return fmt.Sprintf("Time to %s", h.Name)
	}
	return fmt.Sprintf("Time to %s %s", h.Name, h.Emoji)
}

// Tag is the native alert tag for a habit.
func Tag(h models.Habit) string {
	return constants.NativeTagPrefix + h.ID
}
