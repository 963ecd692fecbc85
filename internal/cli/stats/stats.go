package stats

import (
	"fmt"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
)

type StatsCmd struct {
	Trend   StatsTrendCmd   `cmd:"" help:"Daily completion trend." default:"1"`
	Weekly  StatsWeeklyCmd  `cmd:"" help:"Completion rate over the last 12 weeks."`
	Heatmap StatsHeatmapCmd `cmd:"" help:"Year-long completion heatmap."`
}

// habitFilter selects all habits or the one named by --habit.
type habitFilter struct {
	Habit string `help:"Only include this habit."`
}

func (f habitFilter) apply(ctx *cli.Context) ([]models.Habit, string, error) {
	all := ctx.Habits().All()
	if f.Habit == "" {
		return all, "All habits", nil
	}
	h, err := ctx.ResolveHabit(f.Habit)
	if err != nil {
		return nil, "", err
	}
	return analytics.Filter(all, h.ID), cli.HabitLabel(h), nil
}

type StatsTrendCmd struct {
	Filter habitFilter `embed:""`
	Range  string      `help:"Window: week, month or year." enum:"week,month,year" default:"month"`
}

func (c *StatsTrendCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	r, err := analytics.ParseRange(c.Range)
	if err != nil {
		return err
	}
	habits, label, err := c.Filter.apply(ctx)
	if err != nil {
		return err
	}

	series := analytics.Daily(habits, ctx.Today(), r.Days())
	trend := analytics.Trend(series)
	summary := analytics.Summarize(series)

	fmt.Fprintln(ctx.Out, cli.HeadingStyle.Render(fmt.Sprintf("%s · last %d days", label, r.Days())))

	// A year of rows is unreadable; show weekly blocks instead.
	rows := series
	layout := "Mon Jan 02"
	if r == analytics.RangeYear {
		rows = collapse(series, 7)
		layout = "Jan 02"
	}
	for _, b := range rows {
		fmt.Fprintf(ctx.Out, "%s  %s %3.0f%%\n", cli.MutedStyle.Render(b.Start.Format(layout)), cli.Bar(b.Percentage(), 30), b.Percentage())
	}

	fmt.Fprintln(ctx.Out)
	fmt.Fprintf(ctx.Out, "Average %.0f%%   Best %.0f%%   Perfect days %d\n", summary.Average, summary.Best, summary.PerfectDays)
	fmt.Fprintf(ctx.Out, "Trend: %s (%.0f%% → %.0f%%, %+.1f pts)\n", trendLabel(trend.Direction), trend.FirstHalf, trend.SecondHalf, trend.Change)
	return nil
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

// collapse merges consecutive buckets into groups of size n, keeping order.
func collapse(series []analytics.Bucket, n int) []analytics.Bucket {
	var out []analytics.Bucket
	for i := 0; i < len(series); i += n {
		group := series[i:min(i+n, len(series))]
		merged := analytics.Bucket{Start: group[0].Start, End: group[len(group)-1].End}
		for _, b := range group {
			merged.Completed += b.Completed
			merged.Total += b.Total
		}
		out = append(out, merged)
	}
	return out
}

type StatsWeeklyCmd struct {
	Filter habitFilter `embed:""`
}

func (c *StatsWeeklyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	habits, label, err := c.Filter.apply(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, cli.HeadingStyle.Render(fmt.Sprintf("%s · last %d weeks", label, constants.WeeklyBlocks)))
	for _, b := range analytics.Weekly(habits, ctx.Today(), constants.WeeklyBlocks) {
		span := b.Start.Format("Jan 02") + " – " + b.End.Format("Jan 02")
		fmt.Fprintf(ctx.Out, "%s  %s %3.0f%%  %s\n", cli.MutedStyle.Render(span), cli.Bar(b.Percentage(), 30), b.Percentage(),
			cli.MutedStyle.Render(fmt.Sprintf("%d/%d", b.Completed, b.Total)))
	}
	return nil
}

type StatsHeatmapCmd struct {
	Filter habitFilter `embed:""`
}

func (c *StatsHeatmapCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	habits, label, err := c.Filter.apply(ctx)
	if err != nil {
		return err
	}

	cells := analytics.Heatmap(habits, ctx.Today())
	active := 0
	for _, cell := range cells {
		if cell.Completed > 0 {
			active++
		}
	}
	fmt.Fprintln(ctx.Out, cli.HeadingStyle.Render(label+" · past year"))
	fmt.Fprintln(ctx.Out, cli.Heatmap(cells))
	fmt.Fprintf(ctx.Out, "%d active days in the last %d\n", active, len(cells))
	return nil
}
