package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgreene/habitat/internal/backup"
	"github.com/sgreene/habitat/internal/keyring"
	"github.com/sgreene/habitat/internal/notifier"
	"github.com/sgreene/habitat/internal/query"
	"github.com/sgreene/habitat/internal/timeutil"
	"github.com/sgreene/habitat/internal/tui"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitat storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	model := tui.New(snapshot, ctx.Engine, ctx.Store)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

type RemindCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

// RemindCmd sends a tray notification for every schedule due today.
// The query layer computes the values; the notifier owns delivery.
func (c *RemindCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	date, _ := timeutil.ParseDayKey(day)

	reminders := query.DueSchedules(snapshot, date)
	if len(reminders) == 0 {
		fmt.Println("Nothing scheduled today.")
		return nil
	}

	n := notifier.New()
	for _, r := range reminders {
		text := fmt.Sprintf("%s at %s", r.HabitName, r.Time)
		if err := n.Notify(text); err != nil {
			return fmt.Errorf("failed to notify: %w", err)
		}
	}
	fmt.Printf("Sent %d reminders.\n", len(reminders))
	return nil
}

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n", b.Timestamp.Format(time.RFC3339), b.Path, b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if err := mgr.RestoreBackup(c.Path); err != nil {
		return err
	}
	fmt.Printf("Restored from %s\n", c.Path)
	return nil
}

type ConfigCmd struct {
	SetConnectionString    ConfigSetConnCmd    `cmd:"" name:"set-connection-string" help:"Store the postgres connection string in the OS keyring."`
	DeleteConnectionString ConfigDeleteConnCmd `cmd:"" name:"delete-connection-string" help:"Remove the stored connection string."`
}

type ConfigSetConnCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string (with credentials)."`
}

func (c *ConfigSetConnCmd) Run(ctx *Context) error {
	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type ConfigDeleteConnCmd struct{}

func (c *ConfigDeleteConnCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
