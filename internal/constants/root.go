package constants

const (
	AppName            = "recovr"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/recovr/recovr.db"
	DefaultEngineFile  = "engine.yaml"
	Version            = "v0.3.0"

	// EnvDBConnection holds a PostgreSQL connection string as an alternative to the keyring
	EnvDBConnection = "RECOVR_DB_CONNECTION"
	// EnvLogLevel overrides the file log level (debug, info, warn, error)
	EnvLogLevel = "RECOVR_LOG_LEVEL"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "recovr-"
	BackupFileSuffix = ".db"

	// Server constants
	DefaultServerAddr    = "127.0.0.1:7465"
	ServerLockfileName   = "recovr-server.lock"
	ServerExecutableName = "recovr"
)
