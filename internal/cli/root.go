package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/elevate/internal/achievements"
	"github.com/julianstephens/elevate/internal/backup"
	"github.com/julianstephens/elevate/internal/config"
	"github.com/julianstephens/elevate/internal/habits"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/notifier"
	"github.com/julianstephens/elevate/internal/reminder"
	"github.com/julianstephens/elevate/internal/storage"
	"github.com/julianstephens/elevate/internal/utils"
)

// Context is shared by every command.
type Context struct {
	Store     storage.Provider
	Config    *config.Config
	ConfigDir string
	Center    *notifier.Center
	Native    *notifier.Notifier
	Out       io.Writer
	In        io.Reader
	Now       func() time.Time

	habits       *habits.Store
	achievements *achievements.Tracker
}

// NewContext wires a context around an unopened provider.
func NewContext(store storage.Provider, cfg *config.Config, configDir string) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Context{
		Store:     store,
		Config:    cfg,
		ConfigDir: configDir,
		Center:    notifier.NewCenter(),
		Native:    notifier.New(),
		Out:       os.Stdout,
		In:        os.Stdin,
		Now:       time.Now,
	}
}

// Open loads storage, the habit list and the unlocked achievements. Every
// habit mutation re-evaluates achievements afterwards.
func (c *Context) Open() error {
	if c.habits != nil {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		return err
	}

	c.achievements = achievements.NewTracker(c.Store, c.Center)
	if err := c.achievements.Load(); err != nil {
		return err
	}

	c.habits = habits.NewStore(c.Store, c.Center)
	c.habits.SetClock(c.Now)
	if err := c.habits.Load(); err != nil {
		return err
	}
	c.habits.OnChange(func(list []models.Habit) {
		if _, err := c.achievements.Check(list, c.Now()); err != nil {
			logger.Warn("Achievement check failed", "error", err)
		}
	})
	return nil
}

func (c *Context) Habits() *habits.Store {
	return c.habits
}

func (c *Context) Achievements() *achievements.Tracker {
	return c.achievements
}

// Backups returns a snapshot manager rooted in the config directory.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Store, backup.DefaultDir(c.ConfigDir), c.Config.Backups.Max)
}

// Reminders builds a reminder scheduler over the opened habit store. Native
// alerts are forwarded only when enabled in config and the tray app is up.
func (c *Context) Reminders() (*reminder.Scheduler, error) {
	if c.habits == nil {
		return nil, fmt.Errorf("storage is not open")
	}
	interval, err := c.Config.ReminderInterval()
	if err != nil {
		return nil, err
	}
	cfg := reminder.Config{
		Interval:     interval,
		Achievements: c.achievements,
	}
	if c.Config.Notifications.Native && c.Native != nil && c.Native.Available() {
		cfg.Native = c.Native
	}
	s := reminder.New(c.habits, c.Center, cfg)
	s.SetClock(c.Now)
	return s, nil
}

// Today is the current local calendar day.
func (c *Context) Today() time.Time {
	return utils.DateOnly(c.Now())
}

// ResolveHabit finds a habit by name, falling back to an exact id match.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	h, err := c.habits.FindByName(ref)
	if err == nil {
		return h, nil
	}
	if byID, idErr := c.habits.Get(ref); idErr == nil {
		return byID, nil
	}
	return models.Habit{}, err
}

// ParseDay parses a YYYY-MM-DD flag value. Empty means today.
func (c *Context) ParseDay(s string) (time.Time, error) {
	if s == "" {
		return c.Today(), nil
	}
	d, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// FlushNotices prints pending notifications, such as achievement unlocks
// triggered by the command, and clears them.
func (c *Context) FlushNotices() {
	for _, n := range c.Center.Active() {
		fmt.Fprintln(c.Out, RenderNotice(n))
	}
	c.Center.ClearAll()
}

// Confirm asks a yes/no question on In. Only "y" or "yes" confirm.
func (c *Context) Confirm(question string) bool {
	fmt.Fprintf(c.Out, "%s [y/N]: ", question)
	var answer string
	if _, err := fmt.Fscanln(c.In, &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
