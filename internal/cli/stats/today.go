package stats

import (
	"fmt"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/streak"
	"github.com/julianstephens/elevate/internal/utils"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	today := ctx.Today()
	all := ctx.Habits().All()
	due := ctx.Habits().Today(today)
	summary := analytics.Today(all, today)

	fmt.Fprintln(ctx.Out, cli.HeadingStyle.Render("Today · "+today.Format("Monday, January 2")))
	fmt.Fprintf(ctx.Out, "%s %d/%d done (%.0f%%)   🔥 %d total streak days\n\n",
		cli.Bar(summary.Percentage(), 20), summary.Completed, summary.Due, summary.Percentage(), summary.TotalStreak)

	if len(due) == 0 {
		if len(all) == 0 {
			fmt.Fprintln(ctx.Out, "No habits yet. Add one with 'elevate habit add' or try 'elevate recommend'.")
		} else {
			fmt.Fprintln(ctx.Out, "Nothing is due today.")
		}
		return nil
	}

	key := utils.FormatDate(today)
	for _, h := range due {
		mark := "[ ]"
		if h.IsCompleted(key) {
			mark = cli.SuccessStyle.Render("[✓]")
		}
		reminder := ""
		if h.ReminderEnabled {
			reminder = cli.MutedStyle.Render(" ⏰ " + h.ReminderTime)
		}
		fmt.Fprintf(ctx.Out, "%s %s%s  %s\n", mark, cli.HabitLabel(h), reminder,
			cli.MutedStyle.Render(fmt.Sprintf("🔥 %d", streak.Compute(h, today))))
	}
	return nil
}
