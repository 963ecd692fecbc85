package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/cli/backups"
	"github.com/julianstephens/elevate/internal/cli/habits"
	"github.com/julianstephens/elevate/internal/cli/stats"
	"github.com/julianstephens/elevate/internal/cli/system"
	"github.com/julianstephens/elevate/internal/config"
	"github.com/julianstephens/elevate/internal/constants"
	errs "github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/keyring"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/storage"
	"github.com/julianstephens/elevate/internal/storage/postgres"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `name:"config" help:"YAML settings file." type:"path" default:"${config_file}"`
	Storage    string `help:"SQLite file, .json file or PostgreSQL connection string. Credentials must NOT be embedded in PostgreSQL connection strings; use ${conn_env}, .pgpass or the OS keyring." env:"ELEVATE_STORAGE"`
	Verbose    bool   `help:"Log debug output to stderr."`

	Init         system.InitCmd        `cmd:"" help:"Initialize elevate storage."`
	Tui          system.TuiCmd         `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit        habits.HabitCmd       `cmd:"" help:"Manage habits and completions."`
	Today        stats.TodayCmd        `cmd:"" help:"Show habits due today."`
	Stats        stats.StatsCmd        `cmd:"" help:"Completion statistics."`
	Insights     stats.InsightsCmd     `cmd:"" help:"Show insights about your habits."`
	Recommend    stats.RecommendCmd    `cmd:"" help:"Suggest new habits."`
	Achievements stats.AchievementsCmd `cmd:"" help:"Show achievement progress."`
	Export       backups.ExportCmd     `cmd:"" help:"Export habits to a JSON file."`
	Import       backups.ImportCmd     `cmd:"" help:"Replace habits with an exported JSON file."`
	Clear        backups.ClearCmd      `cmd:"" help:"Delete all habit data."`
	Backup       backups.BackupCmd     `cmd:"" help:"Manage automatic habit snapshots."`
	Watch        system.WatchCmd       `cmd:"" help:"Run reminders in the foreground."`
	Doctor       system.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Keyring      system.KeyringCmd     `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug        system.DebugCmd       `cmd:"" help:"Debug commands for troubleshooting."`
	Notify       system.NotifyCmd      `cmd:"" hidden:"" help:"Run one reminder check (used by cron)."`
}

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, insights and achievements"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":          constants.Version,
			"config_file":      constants.DefaultConfigFile,
			"conn_env":         constants.ConnectionEnvVar,
			"default_emoji":    constants.DefaultEmoji,
			"default_category": constants.DefaultCategory,
			"export_file":      constants.ExportFileName,
		},
	)

	cfgPath := config.ExpandHome(CLI.ConfigFile)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		errs.Fatal(fmt.Errorf("failed to load config: %w", err))
	}
	configDir := filepath.Dir(cfgPath)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Verbose || cfg.Debug,
		ConfigDir: configDir,
		Quiet:     ctx.Command() == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	target, err := resolveStorage(CLI.Storage, cfg)
	if err != nil {
		errs.Fatal(err)
	}
	logger.Debug("Resolved storage", "kind", storage.KindOf(target))

	appCtx := cli.NewContext(storage.New(target), cfg, configDir)
	defer appCtx.Store.Close()

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Store.Close()
		errs.Fatal(err)
	}
}

// resolveStorage picks the storage target: the flag, then the config file,
// then a PostgreSQL connection string from the environment or keyring, and
// finally the default SQLite file.
func resolveStorage(flag string, cfg *config.Config) (string, error) {
	target := flag
	if target == "" {
		target = cfg.Storage
	}
	if target == "" {
		connStr, source, err := keyring.ResolveConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using PostgreSQL connection string", "source", source)
			return connStr, nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed", "error", err)
		}
		target = constants.DefaultDataPath
	}

	if storage.KindOf(target) != storage.KindPostgres {
		return config.ExpandHome(target), nil
	}
	if err := postgres.ValidateConnString(target); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return "", fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed on the command line or in config; "+
				"store it with 'elevate keyring set', export %s, or use .pgpass", constants.ConnectionEnvVar)
		}
		return "", err
	}
	return target, nil
}
