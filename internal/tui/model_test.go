package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/elevate/internal/achievements"
	"github.com/julianstephens/elevate/internal/habits"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/notifier"
	"github.com/julianstephens/elevate/internal/storage"
	"github.com/julianstephens/elevate/internal/tui/components/habitlist"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

func setupTestModel(t *testing.T) (Model, *habits.Store, *notifier.Center) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	center := notifier.NewCenter()
	tracker := achievements.NewTracker(store, center)
	if err := tracker.Load(); err != nil {
		t.Fatal(err)
	}
	hs := habits.NewStore(store, center)
	hs.SetClock(func() time.Time { return testNow })
	if err := hs.Load(); err != nil {
		t.Fatal(err)
	}

	m := NewModel(Deps{
		Habits:       hs,
		Achievements: tracker,
		Center:       center,
		Now:          func() time.Time { return testNow },
	})
	return m, hs, center
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func addHabit(t *testing.T, hs *habits.Store, name string) models.Habit {
	t.Helper()
	h, err := hs.Add(models.HabitInput{
		Name:      name,
		Emoji:     "📚",
		Frequency: models.FrequencyDaily,
		StartDate: "2024-03-01",
		Category:  "Learning",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	return h
}

func TestTabNavigation(t *testing.T) {
	m, _, _ := setupTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateHabits {
		t.Fatalf("state = %v after tab, want StateHabits", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateAchievements {
		t.Errorf("state = %v after wrapping back, want StateAchievements", m.state)
	}
}

func TestToggleHabitMsg(t *testing.T) {
	m, hs, _ := setupTestModel(t)
	h := addHabit(t, hs, "Read")
	m.refresh()

	m = update(t, m, habitlist.ToggleHabitMsg{ID: h.ID})
	got, _ := hs.Get(h.ID)
	if !got.IsCompleted("2024-03-15") {
		t.Fatal("habit not marked for today")
	}
	if !strings.Contains(m.viewToday(), "1/1") {
		t.Errorf("today view not refreshed:\n%s", m.viewToday())
	}

	update(t, m, habitlist.ToggleHabitMsg{ID: h.ID})
	got, _ = hs.Get(h.ID)
	if got.IsCompleted("2024-03-15") {
		t.Error("second toggle should unmark")
	}
}

func TestDeleteConfirmation(t *testing.T) {
	m, hs, _ := setupTestModel(t)
	h := addHabit(t, hs, "Read")
	m.state = StateHabits

	m = update(t, m, habitlist.DeleteHabitMsg{ID: h.ID})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %v, want StateConfirmDelete", m.state)
	}
	if !strings.Contains(m.viewConfirmDelete(), "Read") {
		t.Errorf("confirm view should name the habit")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.state != StateHabits || hs.Len() != 1 {
		t.Fatalf("cancel: state=%v len=%d", m.state, hs.Len())
	}

	m = update(t, m, habitlist.DeleteHabitMsg{ID: h.ID})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if m.state != StateHabits || hs.Len() != 0 {
		t.Errorf("confirm: state=%v len=%d", m.state, hs.Len())
	}
}

func TestOpenAndCancelForm(t *testing.T) {
	m, hs, _ := setupTestModel(t)
	h := addHabit(t, hs, "Read")
	m.state = StateHabits

	m = update(t, m, habitlist.EditHabitMsg{ID: h.ID})
	if m.state != StateForm || m.editingID != h.ID {
		t.Fatalf("state=%v editingID=%q", m.state, m.editingID)
	}
	if m.habitForm.Name != "Read" || m.habitForm.Category != "Learning" {
		t.Errorf("form not prefilled: %+v", m.habitForm)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateHabits {
		t.Errorf("state = %v after esc, want StateHabits", m.state)
	}
}

func TestSubmitForm(t *testing.T) {
	m, hs, center := setupTestModel(t)

	m.habitForm = newHabitFormModel(testNow)
	m.habitForm.Name = "  Meditate  "
	if err := m.submitForm(); err != nil {
		t.Fatalf("submitForm() error = %v", err)
	}
	h, err := hs.FindByName("Meditate")
	if err != nil {
		t.Fatalf("habit not added: %v", err)
	}
	if h.StartDate != "2024-03-15" || h.Emoji == "" {
		t.Errorf("added habit = %+v", h)
	}

	m.editingID = h.ID
	m.habitForm = habitFormModelFrom(h)
	m.habitForm.Frequency = models.FrequencyCustom
	if err := m.submitForm(); err == nil {
		t.Fatal("custom frequency without days should be rejected")
	}

	m.habitForm.Days = []time.Weekday{time.Monday, time.Friday}
	if err := m.submitForm(); err != nil {
		t.Fatalf("submitForm() error = %v", err)
	}
	h, _ = hs.Get(h.ID)
	if h.Frequency != models.FrequencyCustom || len(h.CustomDays) != 2 {
		t.Errorf("updated habit = %+v", h)
	}

	var titles []string
	for _, n := range center.Active() {
		titles = append(titles, n.Title)
	}
	if !strings.Contains(strings.Join(titles, ","), "Habit added") {
		t.Errorf("notifications = %v", titles)
	}
}

func TestNotificationAction(t *testing.T) {
	m, hs, center := setupTestModel(t)
	addHabit(t, hs, "Read")
	center.ClearAll()

	ran := false
	center.Add(models.Notification{
		Type:   models.NotificationInfo,
		Title:  "Habit Reminder",
		Action: &models.NotificationAction{Label: "Mark Complete", Run: func() { ran = true }},
	})
	m = update(t, m, tickMsg(testNow))
	if len(m.notices) != 1 {
		t.Fatalf("notices = %d, want 1", len(m.notices))
	}
	if !strings.Contains(m.viewNotices(), "Mark Complete") {
		t.Errorf("notice view = %q", m.viewNotices())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if !ran {
		t.Error("action did not run")
	}
	if len(m.notices) != 0 {
		t.Errorf("notices = %d after action, want 0", len(m.notices))
	}
}

func TestStatsRangeCycle(t *testing.T) {
	m, hs, _ := setupTestModel(t)
	addHabit(t, hs, "Read")
	m.state = StateStats

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if !strings.Contains(m.viewStats(), "last 365 days") {
		t.Errorf("stats view after one cycle:\n%s", m.viewStats())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if !strings.Contains(m.viewStats(), "last 7 days") {
		t.Errorf("stats view after two cycles:\n%s", m.viewStats())
	}
}

func TestViewsRender(t *testing.T) {
	m, hs, _ := setupTestModel(t)
	addHabit(t, hs, "Read")
	m.refresh()

	for state := StateToday; state < tabCount; state++ {
		m.state = state
		if m.View() == "" {
			t.Errorf("state %v rendered nothing", state)
		}
	}
	m.state = StateAchievements
	if !strings.Contains(m.viewAchievements(), "Getting Started") {
		t.Errorf("achievements view:\n%s", m.viewAchievements())
	}
}
