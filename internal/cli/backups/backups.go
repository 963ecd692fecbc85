package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/elevate/internal/backup"
	"github.com/julianstephens/elevate/internal/cli"
	errs "github.com/julianstephens/elevate/internal/errors"
)

type ExportCmd struct {
	Out string `short:"o" help:"Output file." default:"${export_file}" type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Backups().Export(c.Out); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Exported habits to %s\n", c.Out)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Habit export file to import." type:"existingfile"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	if n := ctx.Habits().Len(); n > 0 && !c.Yes {
		if !ctx.Confirm(fmt.Sprintf("Importing replaces your %d current habits. A backup is made first. Continue?", n)) {
			fmt.Fprintln(ctx.Out, "Cancelled.")
			return nil
		}
	}

	n, err := ctx.Backups().Import(c.File, ctx.Habits())
	if err != nil {
		if errors.Is(err, errs.ErrImportFormat) {
			return fmt.Errorf("%s: %w", errs.Notice(err), err)
		}
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Imported %d habits from %s\n", n, filepath.Base(c.File))
	ctx.FlushNotices()
	return nil
}

type ClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	if !c.Yes && !ctx.Confirm("Are you sure you want to clear all your habit data? This action cannot be undone.") {
		fmt.Fprintln(ctx.Out, "Cancelled.")
		return nil
	}
	if err := ctx.Habits().Clear(); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "All habit data has been cleared.")
	return nil
}

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the current habits." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore habits from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	path, err := ctx.Backups().Snapshot()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	if path == "" {
		fmt.Fprintln(ctx.Out, "Nothing to back up yet.")
		return nil
	}
	fmt.Fprintf(ctx.Out, "✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(ctx.Out, "No backups found.")
		fmt.Fprintf(ctx.Out, "Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Fprintf(ctx.Out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), ctx.Config.Backups.Max)
	for _, b := range backups {
		fmt.Fprintf(ctx.Out, "  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	fmt.Fprintf(ctx.Out, "\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	mgr := ctx.Backups()

	path, err := resolveBackupPath(c.BackupFile, mgr.Dir())
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Fprintln(ctx.Out, "⚠️  This replaces your current habits with the backup.")
		fmt.Fprintln(ctx.Out, "A backup of your current habits will be created first.")
		fmt.Fprintf(ctx.Out, "\nRestore from: %s\n", path)
		if !ctx.Confirm("Continue?") {
			fmt.Fprintln(ctx.Out, "Restore cancelled.")
			return nil
		}
	}

	n, err := mgr.Restore(path, ctx.Habits())
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Restored %d habits from %s\n", n, filepath.Base(path))
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a bare file name inside the backup directory.
func resolveBackupPath(name, dir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", dir)
}
