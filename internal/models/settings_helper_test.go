package models

import (
	"testing"

	"github.com/julianstephens/recovr/internal/constants"
)

func TestSettingsRoundTrip(t *testing.T) {
	in := Settings{Timezone: "Europe/London", Currency: "£"}
	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMapToSettingsUnknownKey(t *testing.T) {
	if _, err := MapToSettings(map[string]string{"day_start": "07:00"}); err == nil {
		t.Error("expected error for unknown setting key")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{}
	ApplyDefaultSettings(&s)
	if s.Timezone != constants.DefaultTimezone || s.Currency != constants.DefaultCurrency {
		t.Errorf("ApplyDefaultSettings() = %+v", s)
	}

	s = Settings{Timezone: "UTC", Currency: "€"}
	ApplyDefaultSettings(&s)
	if s.Timezone != "UTC" || s.Currency != "€" {
		t.Errorf("ApplyDefaultSettings() overwrote explicit values: %+v", s)
	}
}
