package achievements

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	errs "github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/notifier"
	"github.com/julianstephens/elevate/internal/storage"
)

// Progress summarizes how much of the catalog has been unlocked.
type Progress struct {
	Unlocked   int
	Total      int
	Percentage int
}

// Tracker owns the unlocked list. Entries are appended once and never removed.
type Tracker struct {
	mu       sync.Mutex
	provider storage.Provider
	sink     notifier.Sink
	unlocked []models.UnlockedAchievement
}

// NewTracker creates a tracker. sink may be nil when no one is listening.
func NewTracker(p storage.Provider, sink notifier.Sink) *Tracker {
	return &Tracker{provider: p, sink: sink}
}

// Load reads the persisted unlocked list. A missing document is an empty
// list; an unreadable one is logged and treated as empty.
func (t *Tracker) Load() error {
	list, _, err := storage.LoadDocument[[]models.UnlockedAchievement](t.provider, constants.AchievementsDocumentKey)
	if err != nil {
		if !errors.Is(err, errs.ErrMalformedDocument) {
			return err
		}
		logger.Warn("Discarding unreadable achievements", "error", err)
		list = nil
	}

	t.mu.Lock()
	t.unlocked = list
	t.mu.Unlock()
	return nil
}

// Check evaluates the catalog against habits and records anything newly
// unlocked. One achievement notification is emitted per new unlock.
func (t *Tracker) Check(habits []models.Habit, now time.Time) ([]models.UnlockedAchievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fresh := Evaluate(habits, t.unlocked, now)
	if len(fresh) == 0 {
		return nil, nil
	}

	next := append(slices.Clone(t.unlocked), fresh...)
	if err := storage.SaveDocument(t.provider, constants.AchievementsDocumentKey, next); err != nil {
		return nil, fmt.Errorf("failed to save achievements: %w", err)
	}
	t.unlocked = next

	for _, u := range fresh {
		logger.Info("Achievement unlocked", "id", u.ID)
		if t.sink != nil {
			t.sink.Add(models.Notification{
				Type:     models.NotificationAchievement,
				Title:    "Achievement Unlocked!",
				Message:  fmt.Sprintf("%s %s: %s", u.Emoji, u.Title, u.Description),
				Duration: constants.AchievementNotificationDuration,
			})
		}
	}
	return fresh, nil
}

// Unlocked returns a copy of the unlocked list in unlock order.
func (t *Tracker) Unlocked() []models.UnlockedAchievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.unlocked)
}

// IsUnlocked reports whether the achievement with id has been unlocked.
func (t *Tracker) IsUnlocked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return isUnlocked(t.unlocked, id)
}

func (t *Tracker) Progress() Progress {
	t.mu.Lock()
	n := len(t.unlocked)
	t.mu.Unlock()

	total := len(catalog)
	return Progress{
		Unlocked:   n,
		Total:      total,
		Percentage: int(math.Round(float64(n) / float64(total) * 100)),
	}
}
