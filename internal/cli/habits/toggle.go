package habits

import (
	"fmt"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/schedule"
	"github.com/julianstephens/elevate/internal/utils"
)

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	h, err := ctx.ResolveHabit(c.Name)
	if err != nil {
		return err
	}
	day, err := ctx.ParseDay(c.Date)
	if err != nil {
		return err
	}
	if day.After(ctx.Today()) {
		return fmt.Errorf("cannot mark %s: date is in the future", utils.FormatDate(day))
	}

	updated, err := ctx.Habits().ToggleCompletion(h.ID, day)
	if err != nil {
		return err
	}

	key := utils.FormatDate(day)
	if updated.IsCompleted(key) {
		fmt.Fprintf(ctx.Out, "%s %s for %s (streak: %d)\n", cli.SuccessStyle.Render("✓ Marked"), cli.HabitLabel(updated), key, updated.Streak)
	} else {
		fmt.Fprintf(ctx.Out, "Unmarked %s for %s (streak: %d)\n", cli.HabitLabel(updated), key, updated.Streak)
	}
	if !schedule.IsDue(updated, day) {
		fmt.Fprintln(ctx.Out, cli.MutedStyle.Render("Note: this habit is not due on that day, so it does not count toward the streak."))
	}
	ctx.FlushNotices()
	return nil
}
