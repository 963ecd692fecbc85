package habits

import (
	"fmt"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/streak"
	"github.com/julianstephens/elevate/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit's details and streaks."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit as done for a day."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Emoji     string `help:"Emoji shown next to the name." default:"${default_emoji}"`
	Frequency string `help:"How often the habit is due." enum:"daily,weekly,custom" default:"daily"`
	Days      string `help:"Days for a custom habit, e.g. mon,wed,fri."`
	Start     string `help:"Start date (YYYY-MM-DD, default today)."`
	Category  string `help:"Category used for grouping." default:"${default_category}"`
	Reminder  string `help:"Daily reminder time (HH:MM)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	if _, err := ctx.Habits().FindByName(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	days, err := utils.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}
	start := c.Start
	if start == "" {
		start = utils.FormatDate(ctx.Today())
	}

	h, err := ctx.Habits().Add(models.HabitInput{
		Name:            c.Name,
		Emoji:           c.Emoji,
		Frequency:       models.Frequency(c.Frequency),
		CustomDays:      days,
		StartDate:       start,
		Category:        c.Category,
		ReminderTime:    c.Reminder,
		ReminderEnabled: c.Reminder != "",
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Added habit: %s (%s)\n", cli.HabitLabel(h), cli.FormatSchedule(h))
	ctx.FlushNotices()
	return nil
}

// HabitEditCmd changes only the fields given on the command line.
type HabitEditCmd struct {
	Name      string  `arg:"" help:"Habit name."`
	Rename    *string `help:"New name."`
	Emoji     *string `help:"Emoji shown next to the name."`
	Frequency *string `help:"How often the habit is due." enum:"daily,weekly,custom"`
	Days      *string `help:"Days for a custom habit, e.g. mon,wed,fri."`
	Start     *string `help:"Start date (YYYY-MM-DD)."`
	Category  *string `help:"Category used for grouping."`
	Reminder  *string `help:"Reminder time (HH:MM); empty disables the reminder."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	h, err := ctx.ResolveHabit(c.Name)
	if err != nil {
		return err
	}

	in := h.Input()
	if c.Rename != nil {
		if other, err := ctx.Habits().FindByName(*c.Rename); err == nil && other.ID != h.ID {
			return fmt.Errorf("habit with name %q already exists", *c.Rename)
		}
		in.Name = *c.Rename
	}
	if c.Emoji != nil {
		in.Emoji = *c.Emoji
	}
	if c.Frequency != nil {
		in.Frequency = models.Frequency(*c.Frequency)
	}
	if c.Days != nil {
		days, err := utils.ParseWeekdays(*c.Days)
		if err != nil {
			return err
		}
		in.CustomDays = days
	}
	if c.Start != nil {
		in.StartDate = *c.Start
	}
	if c.Category != nil {
		in.Category = *c.Category
	}
	if c.Reminder != nil {
		in.ReminderTime = *c.Reminder
		in.ReminderEnabled = *c.Reminder != ""
	}

	updated, err := ctx.Habits().Update(h.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Updated habit: %s (%s)\n", cli.HabitLabel(updated), cli.FormatSchedule(updated))
	ctx.FlushNotices()
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	h, err := ctx.ResolveHabit(c.Name)
	if err != nil {
		return err
	}
	if !c.Yes && !ctx.Confirm(fmt.Sprintf("Delete %q and its %d completions?", h.Name, len(h.Completions))) {
		fmt.Fprintln(ctx.Out, "Cancelled.")
		return nil
	}
	if err := ctx.Habits().Delete(h.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Deleted habit: %s\n", h.Name)
	return nil
}

type HabitListCmd struct {
	Category string `help:"Only show habits in this category."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	list := ctx.Habits().All()
	if len(list) == 0 {
		fmt.Fprintln(ctx.Out, "No habits found. Add one with 'elevate habit add'.")
		return nil
	}

	today := utils.FormatDate(ctx.Today())
	shown := 0
	for _, h := range list {
		if c.Category != "" && h.Category != c.Category {
			continue
		}
		mark := "[ ]"
		if h.IsCompleted(today) {
			mark = cli.SuccessStyle.Render("[✓]")
		}
		fmt.Fprintf(ctx.Out, "%s %-28s %-22s %s\n", mark, cli.HabitLabel(h), cli.FormatSchedule(h),
			cli.MutedStyle.Render(fmt.Sprintf("🔥 %d", streak.Compute(h, ctx.Today()))))
		shown++
	}
	if shown == 0 {
		fmt.Fprintf(ctx.Out, "No habits in category %q.\n", c.Category)
	}
	return nil
}
