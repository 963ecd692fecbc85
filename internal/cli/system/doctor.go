package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/keyring"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/storage"
	"github.com/julianstephens/elevate/internal/validation"
)

type DoctorCmd struct{}

// schemaReporter is implemented by the SQL-backed stores.
type schemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}

type check struct {
	name     string
	run      func(ctx *cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Habit data", run: checkHabitData, needsDB: true},
	{name: "Achievement data", run: checkAchievementData, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", run: checkKeyring, warnOnly: true},
	{name: "Tray notifications", run: checkTray, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	reachable := false
	for i, c := range checks {
		if c.needsDB && !reachable {
			fmt.Fprintf(ctx.Out, "⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "%s %s: OK\n", cli.SuccessStyle.Render("✓"), c.name)
		case c.warnOnly:
			fmt.Fprintf(ctx.Out, "%s %s: WARNING\n", cli.WarningStyle.Render("⚠"), c.name)
			fmt.Fprintf(ctx.Out, "   %v\n", err)
		default:
			fmt.Fprintf(ctx.Out, "%s %s: FAIL\n", cli.ErrorStyle.Render("❌"), c.name)
			fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
			hasError = true
		}
		if i == 0 {
			reachable = err == nil
		}
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	r, ok := ctx.Store.(schemaReporter)
	if !ok {
		return nil
	}
	current, latest, err := r.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'elevate init')", current, latest)
	}
	return nil
}

func checkHabitData(ctx *cli.Context) error {
	list, _, err := storage.LoadDocument[[]models.Habit](ctx.Store, constants.HabitsDocumentKey)
	if err != nil {
		return err
	}
	result := validation.New().ValidateHabits(list)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkAchievementData(ctx *cli.Context) error {
	_, _, err := storage.LoadDocument[[]models.UnlockedAchievement](ctx.Store, constants.AchievementsDocumentKey)
	return err
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'elevate backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; PostgreSQL credentials must come from %s or .pgpass", constants.ConnectionEnvVar)
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	if ctx.Native == nil || !ctx.Native.Available() {
		return fmt.Errorf("%s is not running; reminders are shown in the terminal only", constants.TrayExecutable)
	}
	return nil
}
