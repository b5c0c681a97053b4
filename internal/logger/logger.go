package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/recovr/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Store and EnginePath are recorded in the startup line so a log file
	// shows which database and engine config produced it.
	Store      string
	EnginePath string
}

// Path returns the log file location for configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// level picks the file log level: --debug wins, then RECOVR_LOG_LEVEL, then warn.
func level(cfg Config) log.Level {
	if cfg.Debug {
		return log.DebugLevel
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvLogLevel)); v != "" {
		if l, err := log.ParseLevel(v); err == nil {
			return l
		}
	}
	return log.WarnLevel
}

// Init initializes the global logger. Output goes to a rotating file at
// Path(ConfigDir) and, in debug mode, to stderr as well. The first line
// records the version, store and engine config in use.
func Init(cfg Config) error {
	logPath := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level(cfg),
		Prefix:          constants.AppName,
	})

	Logger.Debug("Starting", "version", constants.Version, "store", cfg.Store, "engine", cfg.EnginePath, "log", logPath)
	return nil
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs a fatal error and exits
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
