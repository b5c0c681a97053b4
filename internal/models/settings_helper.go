package models

import (
	"fmt"

	"github.com/julianstephens/recovr/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Unknown keys are rejected so typos in stored keys surface early.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingCurrency:
			settings.Currency = value
		default:
			return Settings{}, fmt.Errorf("unknown setting %q", key)
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone: settings.Timezone,
		constants.SettingCurrency: settings.Currency,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.Currency == "" {
		settings.Currency = constants.DefaultCurrency
	}
}
