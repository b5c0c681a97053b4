package storage

import (
	apperrors "github.com/julianstephens/recovr/internal/errors"
	"github.com/julianstephens/recovr/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = apperrors.ErrNotFound

// Provider is the persistence contract shared by the SQLite and PostgreSQL stores.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profile. GetProfile includes custom savings goals and emergency contacts;
	// SaveProfile writes the scalar fields only.
	GetProfile() (models.RecoveryProfile, error)
	SaveProfile(models.RecoveryProfile) error

	// Savings goals
	AddSavingsGoal(models.SavingsGoal) error
	GetSavingsGoals() ([]models.SavingsGoal, error)
	DeleteSavingsGoal(id string) error

	// Emergency contacts
	AddEmergencyContact(models.EmergencyContact) error
	GetEmergencyContacts() ([]models.EmergencyContact, error)
	DeleteEmergencyContact(id string) error

	// Check-ins. UpsertCheckIn merges the submitted halves into any existing
	// record for the same date.
	UpsertCheckIn(models.CheckIn) (models.CheckIn, error)
	GetCheckIn(date string) (models.CheckIn, error)
	// GetCheckIns returns records with startDay <= date <= endDay, ascending.
	// An empty bound is open.
	GetCheckIns(startDay, endDay string) ([]models.CheckIn, error)
	DeleteCheckIn(date string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by stores with a versioned schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}
