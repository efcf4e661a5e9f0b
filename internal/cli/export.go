package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/export"
)

type ExportCmd struct {
	Path string `arg:"" optional:"" help:"Output file (default: stdout)."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	data, err := export.Marshal(export.Export(snapshot, time.Now()))
	if err != nil {
		return err
	}

	if c.Path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", c.Path)
	return nil
}

type ImportCmd struct {
	Path string `arg:"" help:"Export file to import."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	payload, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	imported, err := export.Import(payload)
	if err != nil {
		return err
	}

	current, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if _, err := ctx.Dispatch(current, engine.LoadState{Snapshot: imported}); err != nil {
		return err
	}
	fmt.Printf("Imported %d habits, %d identities from %s\n",
		len(imported.Habits), len(imported.Identities), c.Path)
	return nil
}
