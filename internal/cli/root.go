package cli

import (
	"time"

	"github.com/julianstephens/recovr/internal/backup"
	"github.com/julianstephens/recovr/internal/config"
	"github.com/julianstephens/recovr/internal/constants"
	"github.com/julianstephens/recovr/internal/logger"
	"github.com/julianstephens/recovr/internal/metrics"
	"github.com/julianstephens/recovr/internal/storage"
	"github.com/julianstephens/recovr/internal/storage/sqlite"
)

type Context struct {
	Store storage.Provider
	// Engine is the loaded engine config; EnginePath is where it was read from.
	Engine     config.Engine
	EnginePath string
	// ConfigDir holds logs, the engine file and the server lockfile.
	ConfigDir string
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only SQLite stores are backed up.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Location returns the evaluation timezone from settings.
func (c *Context) Location() (*time.Location, error) {
	return metrics.Location(c.Store)
}

// AsOf resolves an optional --as-of/--date value in the settings timezone.
func (c *Context) AsOf(key string) (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return metrics.ResolveAsOf(key, loc)
}

// Input loads a consistent metrics input for asOfKey.
func (c *Context) Input(asOfKey string) (metrics.Input, error) {
	return metrics.Load(c.Store, asOfKey)
}

// Snapshot loads the store and computes fresh metrics for asOfKey.
func (c *Context) Snapshot(asOfKey string) (metrics.Snapshot, error) {
	in, err := c.Input(asOfKey)
	if err != nil {
		return metrics.Snapshot{}, err
	}
	return metrics.Compute(in, c.Engine), nil
}

// Currency returns the configured currency symbol.
func (c *Context) Currency() string {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Failed to load settings", "error", err)
		return constants.DefaultCurrency
	}
	return settings.Currency
}
