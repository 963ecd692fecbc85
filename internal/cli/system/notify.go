package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/reminder"
)

// NotifyCmd runs a single reminder check. It is meant to be invoked once a
// minute by cron or a systemd timer when no long-running watcher is active.
type NotifyCmd struct {
	DryRun bool `help:"Print reminders to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.Reminders.Enabled {
		if c.DryRun {
			fmt.Fprintln(ctx.Out, "Reminders are disabled in config.")
		}
		return nil
	}
	if err := ctx.Open(); err != nil {
		return err
	}

	sched, err := ctx.Reminders()
	if err != nil {
		return err
	}
	ids := sched.Tick(ctx.Now())
	if len(ids) == 0 {
		if c.DryRun {
			fmt.Fprintln(ctx.Out, "No reminders due right now.")
		}
		return nil
	}

	if c.DryRun {
		ctx.FlushNotices()
		return nil
	}

	var sendErrs []error
	for _, id := range ids {
		h, err := ctx.Habits().Get(id)
		if err != nil {
			continue
		}
		if err := sched.SendNative(h); err != nil {
			if errors.Is(err, reminder.ErrNoNativeSender) {
				break
			}
			logger.Warn("Native reminder failed", "habit", id, "error", err)
			sendErrs = append(sendErrs, err)
		}
	}
	ctx.FlushNotices()
	return errors.Join(sendErrs...)
}
