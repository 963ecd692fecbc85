package notifier

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
)

// Sink is the fire-and-forget side of the notification center. Core
// packages only ever add notifications; they never read them back.
type Sink interface {
	Add(n models.Notification) models.Notification
}

// Center holds the in-app notifications currently on screen and fans new
// ones out to subscribers.
type Center struct {
	mu     sync.Mutex
	active []models.Notification
	subs   []chan models.Notification
	now    func() time.Time
}

func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Add stamps n with an id, creation time and default duration, records it
// and delivers it to every subscriber. Slow subscribers miss notifications
// rather than block the caller.
func (c *Center) Add(n models.Notification) models.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = c.now()
	}
	if n.Duration == 0 {
		n.Duration = constants.DefaultNotificationDuration
	}

	c.mu.Lock()
	c.active = append(c.active, n)
	subs := slices.Clone(c.subs)
	c.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- n:
		default:
		}
	}
	return n
}

// Remove drops the notification with the given id.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = slices.DeleteFunc(c.active, func(n models.Notification) bool { return n.ID == id })
}

// ClearAll drops every notification.
func (c *Center) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = nil
}

// Active returns the notifications that have not expired or been removed,
// oldest first. Expired ones are pruned.
func (c *Center) Active() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.active = slices.DeleteFunc(c.active, func(n models.Notification) bool {
		return now.Sub(n.CreatedAt) >= n.Duration
	})
	return slices.Clone(c.active)
}

// Subscribe returns a channel receiving every notification added from now
// on. The channel is closed by Unsubscribe.
func (c *Center) Subscribe() <-chan models.Notification {
	ch := make(chan models.Notification, 16)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it.
func (c *Center) Unsubscribe(ch <-chan models.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s == ch {
			close(s)
			c.subs = slices.Delete(c.subs, i, i+1)
			return
		}
	}
}
