package sobriety

import (
	"time"

	"github.com/julianstephens/recovr/internal/dates"
)

// Count is the number of whole days sober. Set is false when no usable start
// date exists, which is different from Days == 0 (the start date is today).
type Count struct {
	Days int  `json:"days"`
	Set  bool `json:"set"`
}

// ElapsedDays counts days from a YYYY-MM-DD start date to asOf. The start
// date is interpreted in asOf's location. A start date in the future clamps
// to zero; an empty or malformed start date yields an unset Count.
func ElapsedDays(start string, asOf time.Time) Count {
	if start == "" {
		return Count{}
	}
	startDay, err := dates.Parse(start, asOf.Location())
	if err != nil {
		return Count{}
	}
	return Since(startDay, asOf)
}

// Since is ElapsedDays for an already parsed start date.
func Since(start, asOf time.Time) Count {
	days := dates.DaysBetween(start, asOf)
	if days < 0 {
		days = 0
	}
	return Count{Days: days, Set: true}
}
