package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/tui/components/habitlist"
)

var rangeCycle = []analytics.Range{analytics.RangeWeek, analytics.RangeMonth, analytics.RangeYear}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case noticeMsg:
		m.refresh()
		return m, waitForNotice(m.deps.Notices)

	case tickMsg:
		m.refresh()
		return m, tick()

	case habitlist.AddHabitMsg:
		m.editingID = ""
		m.habitForm = newHabitFormModel(m.today())
		return m.openForm("New habit")

	case habitlist.EditHabitMsg:
		h, err := m.deps.Habits.Get(msg.ID)
		if err != nil {
			return m, nil
		}
		m.editingID = h.ID
		m.habitForm = habitFormModelFrom(h)
		return m.openForm("Edit habit")

	case habitlist.ToggleHabitMsg:
		if _, err := m.deps.Habits.ToggleCompletion(msg.ID, m.today()); err != nil {
			m.warn("Could not update habit", err)
		}
		m.refresh()
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.deleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.state == StateHabits && m.habitList.Filtering() {
			var cmd tea.Cmd
			m.habitList, cmd = m.habitList.Update(msg)
			return m, cmd
		}
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
		if m.state == StateStats && msg.String() == "r" {
			m.statsRange = nextRange(m.statsRange)
			return m, nil
		}
	}

	if m.state == StateHabits {
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Dismiss) && len(m.notices) > 0:
		m.deps.Center.ClearAll()
		m.notices = nil
	case key.Matches(msg, m.keys.Complete):
		n := m.latestAction()
		if n == nil {
			return false, nil
		}
		n.Action.Run()
		m.deps.Center.Remove(n.ID)
		m.refresh()
	default:
		return false, nil
	}
	return true, nil
}

func (m Model) openForm(title string) (tea.Model, tea.Cmd) {
	m.formErr = ""
	m.form = NewHabitForm(m.habitForm, title)
	m.previousState = StateHabits
	m.state = StateForm
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			// Stay in the form so the input can be corrected.
			m.formErr = err.Error()
			m.form = NewHabitForm(m.habitForm, "Fix and resubmit")
			return m, m.form.Init()
		}
		m.refresh()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) submitForm() error {
	if err := validateForm(m.habitForm); err != nil {
		return err
	}
	in := m.habitForm.Input()
	if m.editingID == "" {
		h, err := m.deps.Habits.Add(in)
		if err != nil {
			return err
		}
		m.notify(models.NotificationSuccess, "Habit added", h.Name)
		return nil
	}
	if _, err := m.deps.Habits.Update(m.editingID, in); err != nil {
		return err
	}
	m.notify(models.NotificationSuccess, "Habit updated", in.Name)
	return nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Confirm):
		if err := m.deps.Habits.Delete(m.deleteID); err != nil {
			m.warn("Could not delete habit", err)
		}
		m.deleteID = ""
		m.refresh()
		m.state = m.previousState
	case key.Matches(km, m.keys.Cancel):
		m.deleteID = ""
		m.state = m.previousState
	}
	return m, nil
}

func (m Model) notify(kind models.NotificationType, title, message string) {
	if m.deps.Center == nil {
		return
	}
	m.deps.Center.Add(models.Notification{Type: kind, Title: title, Message: message})
}

func (m Model) warn(title string, err error) {
	logger.Warn(title, "error", err)
	m.notify(models.NotificationError, title, err.Error())
}

func nextRange(r analytics.Range) analytics.Range {
	for i, c := range rangeCycle {
		if c == r {
			return rangeCycle[(i+1)%len(rangeCycle)]
		}
	}
	return analytics.RangeMonth
}
