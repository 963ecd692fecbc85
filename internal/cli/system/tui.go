package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	notices := ctx.Center.Subscribe()
	defer ctx.Center.Unsubscribe(notices)

	if ctx.Config.Reminders.Enabled {
		sched, err := ctx.Reminders()
		if err != nil {
			return err
		}
		runCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := sched.Start(runCtx); err != nil {
			return err
		}
		defer sched.Stop()
		if ctx.Config.Notifications.Native {
			if err := sched.ScheduleAllNative(ctx.Habits().All(), ctx.Now()); err != nil {
				logger.Debug("Native reminders not armed", "error", err)
			}
		}
	}

	model := tui.NewModel(tui.Deps{
		Habits:       ctx.Habits(),
		Achievements: ctx.Achievements(),
		Center:       ctx.Center,
		Notices:      notices,
		Now:          ctx.Now,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
