package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing data file before initializing."`
	Import string `help:"Habit export file to load after initializing." type:"existingfile"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Initialized elevate storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Import != "" {
		if err := ctx.Open(); err != nil {
			return err
		}
		n, err := ctx.Backups().Import(c.Import, ctx.Habits())
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Fprintf(ctx.Out, "Imported %d habits from %s\n", n, c.Import)
	}
	return nil
}

// reset removes a file-backed store. PostgreSQL data is never dropped here.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return fmt.Errorf("--force is not supported for PostgreSQL storage")
	}
	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if err := ctx.Store.Load(); err == nil {
		if snap, err := ctx.Backups().Snapshot(); err == nil && snap != "" {
			fmt.Fprintf(ctx.Out, "Saved a backup of your habits: %s\n", snap)
		}
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	fmt.Fprintf(ctx.Out, "Deleted existing database at: %s\n", path)
	return nil
}
