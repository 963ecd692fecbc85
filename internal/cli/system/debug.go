package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/streak"
)

type DebugCmd struct {
	DBPath           DebugDBPathCmd           `cmd:"" name:"db-path" help:"Show storage location."`
	DumpHabit        DebugDumpHabitCmd        `cmd:"" help:"Dump a habit as JSON."`
	DumpAchievements DebugDumpAchievementsCmd `cmd:"" help:"Dump unlocked achievements as JSON."`
	DumpNotices      DebugDumpNoticesCmd      `cmd:"" help:"Dump pending notifications as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(ctx.Out, string(data))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path":    ctx.Store.GetConfigPath(),
		"backups": ctx.Backups().Dir(),
	})
}

type DebugDumpHabitCmd struct {
	Habit string `arg:"" help:"Name or ID of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	h, err := ctx.ResolveHabit(cmd.Habit)
	if err != nil {
		return err
	}
	h.Streak = streak.Compute(h, ctx.Now())
	return printJSON(ctx, h)
}

type DebugDumpAchievementsCmd struct{}

func (cmd *DebugDumpAchievementsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return printJSON(ctx, ctx.Achievements().Unlocked())
}

type DebugDumpNoticesCmd struct{}

func (cmd *DebugDumpNoticesCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return printJSON(ctx, ctx.Center.Active())
}
