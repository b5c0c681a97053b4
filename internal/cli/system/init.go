package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/config"
	"github.com/julianstephens/recovr/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return errors.New("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Restorable with 'recovr backup restore'
			ctx.PerformAutomaticBackup()
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized recovr storage at: %s\n", ctx.Store.GetConfigPath())

	// Write the engine config so the tuning values are discoverable
	if ctx.EnginePath != "" {
		if _, err := os.Stat(ctx.EnginePath); os.IsNotExist(err) {
			if err := config.Save(ctx.EnginePath, ctx.Engine); err != nil {
				return fmt.Errorf("failed to write engine config: %w", err)
			}
			fmt.Printf("Wrote engine config to: %s\n", ctx.EnginePath)
		}
	}

	return nil
}
