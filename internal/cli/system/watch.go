package system

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/logger"
)

// WatchCmd keeps the reminder scheduler running in the foreground and prints
// every notification it produces until interrupted.
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.Reminders.Enabled {
		return fmt.Errorf("reminders are disabled in config")
	}
	if err := ctx.Open(); err != nil {
		return err
	}

	sched, err := ctx.Reminders()
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notices := ctx.Center.Subscribe()
	defer ctx.Center.Unsubscribe(notices)

	if err := sched.Start(runCtx); err != nil {
		return err
	}
	defer sched.Stop()

	armNative := func() {
		if !ctx.Config.Notifications.Native {
			return
		}
		if err := sched.ScheduleAllNative(ctx.Habits().All(), ctx.Now()); err != nil {
			logger.Warn("Native reminders unavailable", "error", err)
		}
	}
	armNative()

	// Native alerts are one-shot timers, so they are re-armed periodically.
	rearm := time.NewTicker(time.Hour)
	defer rearm.Stop()

	fmt.Fprintln(ctx.Out, cli.MutedStyle.Render("Watching for reminders. Press Ctrl+C to stop."))
	for {
		select {
		case <-runCtx.Done():
			fmt.Fprintln(ctx.Out)
			return nil
		case <-rearm.C:
			armNative()
		case n, ok := <-notices:
			if !ok {
				return nil
			}
			fmt.Fprintln(ctx.Out, cli.RenderNotice(n))
		}
	}
}
