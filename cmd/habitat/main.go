package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/sgreene/habitat/internal/cli"
	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/errors"
	"github.com/sgreene/habitat/internal/logger"
	"github.com/sgreene/habitat/internal/storage"
	"github.com/sgreene/habitat/internal/validation"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path (.json or .db) or PostgreSQL connection string. Credentials must NOT be embedded in connection strings; use the OS keyring or HABITAT_DB_CONNECTION." default:"~/.config/habitat/habitat.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize habitat storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive day view." default:"1"`
	Today    cli.TodayCmd    `cmd:"" help:"Show today's habit status."`
	Toggle   cli.ToggleCmd   `cmd:"" help:"Cycle a habit's status for a day."`
	Skip     cli.SkipCmd     `cmd:"" help:"Mark a habit skipped for a day."`
	Fail     cli.FailCmd     `cmd:"" help:"Mark a habit failed for a day."`
	Step     cli.StepCmd     `cmd:"" help:"Toggle a routine step for a day."`
	Streak   cli.StreakCmd   `cmd:"" help:"Show a habit's streak."`
	Week     cli.WeekCmd     `cmd:"" help:"Show weekly goal progress."`
	Cal      cli.CalCmd      `cmd:"" help:"Show the month completion calendar."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Identity cli.IdentityCmd `cmd:"" help:"Manage identities."`
	Note     cli.NoteCmd     `cmd:"" help:"Manage per-day habit notes."`
	Schedule cli.ScheduleCmd `cmd:"" help:"Manage the day-plan timeline."`
	Fast     cli.FastCmd     `cmd:"" help:"Manage fasting sessions."`
	Remind   cli.RemindCmd   `cmd:"" help:"Send tray reminders for today's schedules."`
	Export   cli.ExportCmd   `cmd:"" help:"Export all data to a portable file."`
	Import   cli.ImportCmd   `cmd:"" help:"Import data from an export file."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage store backups."`
	Creds    cli.ConfigCmd   `cmd:"" name:"config" help:"Manage configuration and credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with identities, routines, streaks, and fasting timers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandHome(CLI.Config)

	var store storage.Provider
	switch {
	case strings.HasPrefix(configPath, "postgres://") || strings.HasPrefix(configPath, "postgresql://"):
		if storage.HasEmbeddedCredentials(configPath) {
			errors.Fatalf("connection strings with embedded credentials are not allowed; use 'habitat config set-connection-string' or HABITAT_DB_CONNECTION")
		}
		store = storage.NewPostgresStore(configPath)
	case strings.HasSuffix(configPath, ".db"):
		store = storage.NewSQLiteStore(configPath)
	default:
		store = storage.NewJSONStore(configPath)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		// Logging is best-effort; commands still run without it.
		logger.Logger = nil
	}

	appCtx := &cli.Context{
		Store:     store,
		Engine:    engine.New(),
		Validator: validation.New(),
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
