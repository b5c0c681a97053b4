package metrics

import (
	"fmt"
	"time"

	"github.com/julianstephens/recovr/internal/dates"
	apperrors "github.com/julianstephens/recovr/internal/errors"
	"github.com/julianstephens/recovr/internal/storage"
)

// Location returns the evaluation timezone from the stored settings.
func Location(store storage.Provider) (*time.Location, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return dates.LoadLocation(settings.Timezone)
}

// ResolveAsOf parses an optional YYYY-MM-DD key in loc. An empty key means today.
func ResolveAsOf(key string, loc *time.Location) (time.Time, error) {
	if key == "" {
		return dates.Today(loc), nil
	}
	t, err := dates.Parse(key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", apperrors.ErrInvalidDate, key)
	}
	return t, nil
}

// Load reads a consistent Input from the store for the given as-of key.
func Load(store storage.Provider, asOfKey string) (Input, error) {
	loc, err := Location(store)
	if err != nil {
		return Input{}, err
	}
	asOf, err := ResolveAsOf(asOfKey, loc)
	if err != nil {
		return Input{}, err
	}

	profile, err := store.GetProfile()
	if err != nil {
		return Input{}, fmt.Errorf("failed to load profile: %w", err)
	}
	checkIns, err := store.GetCheckIns("", "")
	if err != nil {
		return Input{}, fmt.Errorf("failed to load check-ins: %w", err)
	}

	return Input{Profile: profile, CheckIns: checkIns, AsOf: asOf}, nil
}
