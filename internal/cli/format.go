package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

var (
	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	// BandColors index heatmap intensity bands 0..4
	BandColors = []lipgloss.Color{"236", "22", "28", "34", "46"}
)

// RenderNotice formats a notification as a single line.
func RenderNotice(n models.Notification) string {
	style := InfoStyle
	icon := "ℹ"
	switch n.Type {
	case models.NotificationSuccess:
		style, icon = SuccessStyle, "✓"
	case models.NotificationWarning:
		style, icon = WarningStyle, "⚠"
	case models.NotificationError:
		style, icon = ErrorStyle, "✗"
	case models.NotificationAchievement:
		style, icon = HeadingStyle, "🏆"
	}
	line := style.Render(icon + " " + n.Title)
	if n.Message != "" {
		line += " " + n.Message
	}
	return line
}

// HabitLabel renders "emoji name", or just the name without an emoji.
func HabitLabel(h models.Habit) string {
	if h.Emoji == "" {
		return h.Name
	}
	return h.Emoji + " " + h.Name
}

// FormatSchedule describes when a habit is due.
func FormatSchedule(h models.Habit) string {
	switch h.Frequency {
	case models.FrequencyDaily:
		return "daily"
	case models.FrequencyWeekly:
		return "weekly (Sun)"
	case models.FrequencyCustom:
		return "custom (" + utils.FormatWeekdays(h.CustomDays) + ")"
	default:
		return string(h.Frequency)
	}
}

// Bar draws a fixed-width progress bar for a percentage.
func Bar(percentage float64, width int) string {
	filled := int(percentage/100*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return SuccessStyle.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("░", width-filled))
}

// Heatmap renders cells as a GitHub-style grid: one row per weekday, one
// column per week, oldest on the left.
func Heatmap(cells []analytics.Cell) string {
	if len(cells) == 0 {
		return ""
	}
	lead := int(cells[0].Start.Weekday())
	cols := (lead + len(cells) + 6) / 7

	grid := make([][]string, 7)
	for row := range grid {
		grid[row] = make([]string, cols)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}
	for i, cell := range cells {
		pos := lead + i
		grid[pos%7][pos/7] = lipgloss.NewStyle().Foreground(BandColors[cell.Band]).Render("■")
	}

	var b strings.Builder
	for row, line := range grid {
		fmt.Fprintf(&b, "%s ", MutedStyle.Render(time.Weekday(row).String()[:3]))
		b.WriteString(strings.Join(line, ""))
		b.WriteString("\n")
	}
	b.WriteString(MutedStyle.Render("Less "))
	for _, c := range BandColors {
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("■"))
	}
	b.WriteString(MutedStyle.Render(" More"))
	return b.String()
}
