package habits

import (
	"fmt"
	"slices"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/streak"
	"github.com/julianstephens/elevate/internal/utils"
)

type HabitShowCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	h, err := ctx.ResolveHabit(c.Name)
	if err != nil {
		return err
	}
	today := ctx.Today()

	fmt.Fprintln(ctx.Out, cli.HeadingStyle.Render(cli.HabitLabel(h)))
	fmt.Fprintf(ctx.Out, "  ID:        %s\n", h.ID)
	fmt.Fprintf(ctx.Out, "  Schedule:  %s\n", cli.FormatSchedule(h))
	fmt.Fprintf(ctx.Out, "  Category:  %s\n", h.Category)
	fmt.Fprintf(ctx.Out, "  Started:   %s\n", h.StartDate)
	if h.ReminderEnabled {
		fmt.Fprintf(ctx.Out, "  Reminder:  %s\n", h.ReminderTime)
	} else {
		fmt.Fprintln(ctx.Out, "  Reminder:  off")
	}
	fmt.Fprintf(ctx.Out, "  Streak:    %d (best %d)\n", streak.Compute(h, today), streak.Longest(h, today))

	month := analytics.Span([]models.Habit{h}, utils.AddDays(today, -29), today)
	fmt.Fprintf(ctx.Out, "  30 days:   %s %d/%d (%.0f%%)\n", cli.Bar(month.Percentage(), 20), month.Completed, month.Total, month.Percentage())

	days := make([]string, 0, len(h.Completions))
	for d, done := range h.Completions {
		if done {
			days = append(days, d)
		}
	}
	slices.Sort(days)
	fmt.Fprintf(ctx.Out, "  Completed: %d days total\n", len(days))
	if n := len(days); n > 0 {
		recent := days[max(0, n-7):]
		fmt.Fprintf(ctx.Out, "  Recent:    %s\n", cli.MutedStyle.Render(fmt.Sprint(recent)))
	}
	return nil
}
