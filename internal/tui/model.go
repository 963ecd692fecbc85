package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/elevate/internal/achievements"
	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/habits"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/notifier"
	"github.com/julianstephens/elevate/internal/tui/components/habitlist"
	"github.com/julianstephens/elevate/internal/utils"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHabits
	StateStats
	StateInsights
	StateAchievements
	StateForm
	StateConfirmDelete
)

var tabTitles = []string{"Today", "Habits", "Stats", "Insights", "Achievements"}

const tabCount = 5

// Deps are the collaborators the UI drives. Notices is a subscription on
// Center, owned by the caller.
type Deps struct {
	Habits       *habits.Store
	Achievements *achievements.Tracker
	Center       *notifier.Center
	Notices      <-chan models.Notification
	Now          func() time.Time
}

type Model struct {
	deps          Deps
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	habitList     habitlist.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	editingID     string
	deleteID      string
	formErr       string
	statsRange    analytics.Range
	notices       []models.Notification
	quitting      bool
	width         int
	height        int
}

func NewModel(d Deps) Model {
	if d.Now == nil {
		d.Now = time.Now
	}
	m := Model{
		deps:       d,
		state:      StateToday,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		statsRange: analytics.RangeMonth,
		habitList:  habitlist.New(d.Habits.All(), utils.DateOnly(d.Now()), 0, 0),
	}
	if d.Center != nil {
		m.notices = d.Center.Active()
	}
	return m
}

// noticeMsg carries a notification published on the center.
type noticeMsg models.Notification

// tickMsg drives expiry of on-screen notifications and the day rollover.
type tickMsg time.Time

func waitForNotice(ch <-chan models.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForNotice(m.deps.Notices), tick())
}

func (m Model) today() time.Time {
	return utils.DateOnly(m.deps.Now())
}

func (m *Model) refresh() {
	m.habitList.SetHabits(m.deps.Habits.All(), m.today())
	if m.deps.Center != nil {
		m.notices = m.deps.Center.Active()
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if len(m.notices) > 0 {
		keys = append(keys, m.keys.Dismiss)
		if m.latestAction() != nil {
			keys = append(keys, m.keys.Complete)
		}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// latestAction returns the newest notification that carries an action.
func (m Model) latestAction() *models.Notification {
	for i := len(m.notices) - 1; i >= 0; i-- {
		if m.notices[i].Action != nil {
			return &m.notices[i]
		}
	}
	return nil
}
