package stats

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/elevate/internal/achievements"
	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/insights"
	"github.com/julianstephens/elevate/internal/models"
)

type InsightsCmd struct{}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	report := insights.Generate(ctx.Habits().All(), ctx.Today())
	fmt.Fprintln(ctx.Out, cli.HeadingStyle.Render("Insights"))
	if report.Empty {
		fmt.Fprintln(ctx.Out, cli.MutedStyle.Render(report.Message))
		return nil
	}
	for _, in := range report.Insights {
		line := toneStyle(in.Tone).Render("● "+in.Title) + "  " + in.Description
		if in.Value != "" {
			line += "  " + cli.MutedStyle.Render(in.Value)
		}
		fmt.Fprintln(ctx.Out, line)
	}
	return nil
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

type RecommendCmd struct {
	Add int `help:"Add the Nth suggestion (1-based) as a new habit."`
}

func (c *RecommendCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	recs := insights.Recommend(ctx.Habits().All())
	if len(recs) == 0 {
		fmt.Fprintln(ctx.Out, "No suggestions right now. You already track everything we would recommend.")
		return nil
	}

	if c.Add != 0 {
		if c.Add < 1 || c.Add > len(recs) {
			return fmt.Errorf("--add must be between 1 and %d", len(recs))
		}
		rec := recs[c.Add-1]
		h, err := ctx.Habits().Add(insights.FromRecommendation(rec, ctx.Today()))
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.Out, "Added habit: %s (daily, reminder at %s)\n", cli.HabitLabel(h), h.ReminderTime)
		ctx.FlushNotices()
		return nil
	}

	fmt.Fprintln(ctx.Out, cli.HeadingStyle.Render("Suggested habits"))
	for i, r := range recs {
		fmt.Fprintf(ctx.Out, "%d. %s %s  %s\n", i+1, r.Emoji, r.Title,
			cli.MutedStyle.Render(fmt.Sprintf("%s · %s · %.0f%% match", r.Category, r.Difficulty, r.Confidence*100)))
		fmt.Fprintf(ctx.Out, "   %s\n", r.Description)
		fmt.Fprintf(ctx.Out, "   %s\n", cli.MutedStyle.Render("Why: "+r.Reasoning))
	}
	fmt.Fprintln(ctx.Out, cli.MutedStyle.Render("\nAdd one with 'elevate recommend --add N'."))
	return nil
}

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	tracker := ctx.Achievements()

	// Pick up anything earned since the last mutation, e.g. a day rolling over.
	if _, err := tracker.Check(ctx.Habits().All(), ctx.Now()); err != nil {
		return err
	}
	ctx.FlushNotices()

	p := tracker.Progress()
	fmt.Fprintln(ctx.Out, cli.HeadingStyle.Render(fmt.Sprintf("Achievements %d/%d", p.Unlocked, p.Total)))
	fmt.Fprintf(ctx.Out, "%s %d%%\n\n", cli.Bar(float64(p.Percentage), 30), p.Percentage)

	unlocked := make(map[string]models.UnlockedAchievement)
	for _, u := range tracker.Unlocked() {
		unlocked[u.ID] = u
	}
	for _, a := range achievements.Catalog() {
		if u, ok := unlocked[a.ID]; ok {
			fmt.Fprintf(ctx.Out, "%s %s  %s  %s\n", a.Emoji, cli.SuccessStyle.Render(a.Title), a.Description,
				cli.MutedStyle.Render("unlocked "+u.UnlockedAt.Format("Jan 2, 2006")))
		} else {
			fmt.Fprintf(ctx.Out, "🔒 %s  %s\n", cli.MutedStyle.Render(a.Title), cli.MutedStyle.Render(a.Description))
		}
	}
	return nil
}
