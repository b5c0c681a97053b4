package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/cli/backups"
	"github.com/julianstephens/recovr/internal/cli/checkins"
	"github.com/julianstephens/recovr/internal/cli/profiles"
	"github.com/julianstephens/recovr/internal/cli/reports"
	"github.com/julianstephens/recovr/internal/cli/settings"
	"github.com/julianstephens/recovr/internal/cli/system"
	"github.com/julianstephens/recovr/internal/config"
	"github.com/julianstephens/recovr/internal/constants"
	apperrors "github.com/julianstephens/recovr/internal/errors"
	"github.com/julianstephens/recovr/internal/keyring"
	"github.com/julianstephens/recovr/internal/logger"
	"github.com/julianstephens/recovr/internal/storage"
	"github.com/julianstephens/recovr/internal/storage/postgres"
	"github.com/julianstephens/recovr/internal/storage/sqlite"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Database file path or PostgreSQL connection string. Credentials must NOT be embedded in the connection string; use RECOVR_DB_CONNECTION, .pgpass or the OS keyring instead." type:"string" default:"${config_path}"`
	EngineConfig string `help:"Engine config file (milestones, goals, streak event). Defaults to engine.yaml next to the database." name:"engine-config" type:"path"`
	Debug        bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize recovr storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Validate the profile and check-ins for conflicts."`
	Serve    system.ServeCmd    `cmd:"" help:"Serve metrics as JSON over HTTP."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability and credential source."`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`

	Metrics    reports.MetricsCmd    `cmd:"" help:"Show the recovery dashboard." default:"1"`
	Milestones reports.MilestonesCmd `cmd:"" help:"Show the milestone ladder."`
	Savings    reports.SavingsCmd    `cmd:"" help:"Show money saved and goal progress."`
	Wellness   reports.WellnessCmd   `cmd:"" help:"Show wellness averages and trends."`
	Streak     reports.StreakCmd     `cmd:"" help:"Show the check-in streak."`

	Checkin struct {
		Morning checkins.MorningCmd `cmd:"" help:"Record a morning check-in. Values not given keep what was recorded earlier that day."`
		Evening checkins.EveningCmd `cmd:"" help:"Record an evening reflection."`
		List    checkins.ListCmd    `cmd:"" help:"List recent check-ins."`
		Import  checkins.ImportCmd  `cmd:"" help:"Import a JSON export."`
	} `cmd:"" help:"Record and review daily check-ins."`
	Profile struct {
		Show profiles.ProfileShowCmd `cmd:"" help:"Show the recovery profile." default:"1"`
		Set  profiles.ProfileSetCmd  `cmd:"" help:"Update profile fields."`
	} `cmd:"" help:"Manage the recovery profile."`
	Contact struct {
		Add    profiles.ContactAddCmd    `cmd:"" help:"Add an emergency contact."`
		List   profiles.ContactListCmd   `cmd:"" help:"List emergency contacts." default:"1"`
		Remove profiles.ContactRemoveCmd `cmd:"" help:"Remove an emergency contact."`
	} `cmd:"" help:"Manage emergency contacts."`
	Goal struct {
		Add      profiles.GoalAddCmd      `cmd:"" help:"Add a custom savings goal."`
		List     profiles.GoalListCmd     `cmd:"" help:"List savings goals with progress." default:"1"`
		Activate profiles.GoalActivateCmd `cmd:"" help:"Set the active savings goal."`
		Remove   profiles.GoalRemoveCmd   `cmd:"" help:"Remove a custom savings goal."`
	} `cmd:"" help:"Manage savings goals."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

// selfLoading commands open (or never need) the store themselves.
var selfLoading = []string{"init", "doctor", "keyring"}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Recovery metrics: sobriety time, milestones, savings, wellness trends and check-in streaks."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
			"server_addr": constants.DefaultServerAddr,
		},
	)

	store, configDir, err := openStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	enginePath := CLI.EngineConfig
	if enginePath == "" {
		enginePath = config.Path(configDir)
	}

	if err := logger.Init(logger.Config{
		Debug:      CLI.Debug,
		ConfigDir:  configDir,
		Store:      describeStore(store),
		EnginePath: enginePath,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	engine, err := config.Load(enginePath)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:      store,
		Engine:     engine,
		EnginePath: enginePath,
		ConfigDir:  configDir,
	}

	if needsStore(kctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	if err := kctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

func needsStore(command string) bool {
	name, _, _ := strings.Cut(command, " ")
	for _, c := range selfLoading {
		if name == c {
			return false
		}
	}
	return true
}

// openStore picks the provider for the --config value. An explicit connection
// string wins; with the default path, a connection string from the environment
// or keyring selects PostgreSQL; otherwise the value is a SQLite file.
func openStore(configValue string) (storage.Provider, string, error) {
	if postgres.IsConnString(configValue) {
		if err := postgres.ValidateConnString(configValue); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("%w; use 'recovr keyring set', %s or a .pgpass file instead", err, constants.EnvDBConnection)
			}
			return nil, "", err
		}
		dir, err := defaultConfigDir()
		return postgres.New(configValue), dir, err
	}

	if configValue == constants.DefaultConfigPath {
		if connStr, _, err := keyring.Resolve(); err == nil && postgres.IsConnString(connStr) {
			dir, err := defaultConfigDir()
			return postgres.New(connStr), dir, err
		}
	}

	path, err := expandHome(configValue)
	if err != nil {
		return nil, "", err
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

// describeStore names the backend for logs without exposing connection details.
func describeStore(store storage.Provider) string {
	if _, ok := store.(*postgres.Store); ok {
		return "postgres"
	}
	return "sqlite:" + store.GetConfigPath()
}

func defaultConfigDir() (string, error) {
	path, err := expandHome(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Abs(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
