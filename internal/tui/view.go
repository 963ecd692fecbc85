package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/elevate/internal/achievements"
	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/insights"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/streak"
	"github.com/julianstephens/elevate/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.viewToday())
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateInsights:
		content = docStyle.Render(m.viewInsights())
	case StateAchievements:
		content = docStyle.Render(m.viewAchievements())
	case StateForm:
		content = docStyle.Render(m.viewForm())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if notices := m.viewNotices(); notices != "" {
		parts = append(parts, notices)
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	current := m.state
	if current >= tabCount {
		current = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if current == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	today := m.today()
	all := m.deps.Habits.All()
	summary := analytics.Today(all, today)

	var b strings.Builder
	b.WriteString(cli.HeadingStyle.Render(today.Format("Monday, January 2")) + "\n\n")

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(fmt.Sprintf("Done today\n%d/%d", summary.Completed, summary.Due)),
		cardStyle.Render(fmt.Sprintf("Progress\n%.0f%%", summary.Percentage())),
		cardStyle.Render(fmt.Sprintf("Streak days\n🔥 %d", summary.TotalStreak)),
		cardStyle.Render(fmt.Sprintf("Habits\n%d", len(all))),
	)
	b.WriteString(cards + "\n\n")
	b.WriteString(cli.Bar(summary.Percentage(), 40) + "\n\n")

	due := m.deps.Habits.Today(today)
	if len(due) == 0 {
		if len(all) == 0 {
			b.WriteString(cli.MutedStyle.Render("No habits yet. Switch to Habits and press 'a' to add one."))
		} else {
			b.WriteString(cli.MutedStyle.Render("Nothing is due today."))
		}
		return b.String()
	}

	day := utils.FormatDate(today)
	for _, h := range due {
		mark := "[ ]"
		if h.IsCompleted(day) {
			mark = cli.SuccessStyle.Render("[✓]")
		}
		fmt.Fprintf(&b, "%s %s  %s\n", mark, cli.HabitLabel(h), cli.MutedStyle.Render(fmt.Sprintf("🔥 %d", streak.Compute(h, today))))
	}
	return b.String()
}

func (m Model) viewStats() string {
	today := m.today()
	all := m.deps.Habits.All()

	series := analytics.Daily(all, today, m.statsRange.Days())
	summary := analytics.Summarize(series)
	trend := analytics.Trend(series)

	var b strings.Builder
	b.WriteString(cli.HeadingStyle.Render(fmt.Sprintf("Completion · last %d days", m.statsRange.Days())))
	b.WriteString(cli.MutedStyle.Render("  (r to change range)") + "\n")
	fmt.Fprintf(&b, "Average %.0f%%   Best %.0f%%   Perfect days %d   Trend %s (%+.1f pts)\n\n",
		summary.Average, summary.Best, summary.PerfectDays, trendLabel(trend.Direction), trend.Change)

	b.WriteString(cli.HeadingStyle.Render(fmt.Sprintf("Weekly · last %d weeks", constants.WeeklyBlocks)) + "\n")
	for _, w := range analytics.Weekly(all, today, constants.WeeklyBlocks) {
		fmt.Fprintf(&b, "%s  %s %3.0f%%\n", cli.MutedStyle.Render(w.Start.Format("Jan 02")), cli.Bar(w.Percentage(), 24), w.Percentage())
	}

	b.WriteString("\n" + cli.HeadingStyle.Render("Year") + "\n")
	b.WriteString(cli.Heatmap(analytics.Heatmap(all, today)))
	return b.String()
}

func trendLabel(d analytics.Direction) string {
	switch d {
	case analytics.DirectionUp:
		return cli.SuccessStyle.Render("↗ improving")
	case analytics.DirectionDown:
		return cli.WarningStyle.Render("↘ declining")
	default:
		return cli.InfoStyle.Render("→ stable")
	}
}

func (m Model) viewInsights() string {
	all := m.deps.Habits.All()
	report := insights.Generate(all, m.today())

	var b strings.Builder
	b.WriteString(cli.HeadingStyle.Render("Insights") + "\n")
	if report.Empty {
		b.WriteString(cli.MutedStyle.Render(report.Message) + "\n")
	}
	for _, in := range report.Insights {
		line := toneStyle(in.Tone).Render("● "+in.Title) + "  " + in.Description
		if in.Value != "" {
			line += "  " + cli.MutedStyle.Render(in.Value)
		}
		b.WriteString(line + "\n")
	}

	recs := insights.Recommend(all)
	if len(recs) > 0 {
		b.WriteString("\n" + cli.HeadingStyle.Render("Suggested habits") + "\n")
		for _, r := range recs {
			fmt.Fprintf(&b, "%s %s  %s\n", r.Emoji, r.Title, cli.MutedStyle.Render(fmt.Sprintf("%s · %s", r.Category, r.Difficulty)))
		}
		b.WriteString(cli.MutedStyle.Render("Add one with 'elevate recommend --add N'.") + "\n")
	}
	return b.String()
}

func toneStyle(t models.InsightTone) lipgloss.Style {
	switch t {
	case models.ToneSuccess:
		return cli.SuccessStyle
	case models.ToneWarning:
		return cli.WarningStyle
	default:
		return cli.InfoStyle
	}
}

func (m Model) viewAchievements() string {
	var b strings.Builder
	if m.deps.Achievements == nil {
		return cli.MutedStyle.Render("Achievements unavailable.")
	}
	p := m.deps.Achievements.Progress()
	b.WriteString(cli.HeadingStyle.Render(fmt.Sprintf("Achievements · %d/%d", p.Unlocked, p.Total)) + "\n")
	b.WriteString(cli.Bar(float64(p.Percentage), 30) + fmt.Sprintf(" %d%%\n\n", p.Percentage))

	for _, a := range achievements.Catalog() {
		line := fmt.Sprintf("%s %s  %s", a.Emoji, a.Title, a.Description)
		if m.deps.Achievements.IsUnlocked(a.ID) {
			b.WriteString(cli.SuccessStyle.Render("✓ ") + line + "\n")
		} else {
			b.WriteString(lockedStyle.Render("🔒 "+a.Title+"  "+a.Description) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	if m.formErr == "" {
		return m.form.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.formErr), "", m.form.View())
}

func (m Model) viewConfirmDelete() string {
	name := "this habit"
	if h, err := m.deps.Habits.Get(m.deleteID); err == nil {
		name = cli.HabitLabel(h)
	}
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s and its whole history?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewNotices() string {
	if len(m.notices) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.notices))
	for _, n := range m.notices {
		line := cli.RenderNotice(n)
		if n.Action != nil {
			line += cli.MutedStyle.Render(" [c] " + n.Action.Label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().Margin(0, 2).Render(strings.Join(lines, "\n"))
}
