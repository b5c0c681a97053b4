// Package streak computes consecutive-day check-in streaks.
package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/recovr/internal/constants"
	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/models"
)

// Event selects which check-in submissions qualify for a streak.
type Event string

const (
	EventMorning Event = constants.StreakEventMorning
	EventEvening Event = constants.StreakEventEvening
	EventAny     Event = constants.StreakEventAny
)

// ParseEvent resolves an event name.
func ParseEvent(s string) (Event, error) {
	switch e := Event(s); e {
	case EventMorning, EventEvening, EventAny:
		return e, nil
	default:
		return "", fmt.Errorf("unknown streak event %q (expected morning, evening or any)", s)
	}
}

// Info holds current and longest streak values.
type Info struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Compute returns the current and longest runs of consecutive calendar days.
//
// The current streak ends at asOf when asOf has an event, or at the day before
// when it does not: today only breaks a streak once it has fully elapsed.
// Days after asOf are ignored. Duplicate days count once.
func Compute(days []time.Time, asOf time.Time) Info {
	today := dates.Midnight(asOf)

	keyed := make(map[string]time.Time, len(days))
	for _, d := range days {
		d = dates.Midnight(d.In(asOf.Location()))
		if dates.DaysBetween(d, today) < 0 {
			continue
		}
		keyed[dates.Key(d)] = d
	}
	if len(keyed) == 0 {
		return Info{}
	}

	sorted := make([]time.Time, 0, len(keyed))
	for _, d := range keyed {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if dates.DaysBetween(sorted[i-1], sorted[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	info := Info{Longest: longest}
	// run now holds the length of the final run.
	if dates.DaysBetween(sorted[len(sorted)-1], today) <= 1 {
		info.Current = run
	}
	return info
}

// EventDays returns the days on which records contain the event, interpreted
// in loc. Records with an unparsable date are skipped.
func EventDays(records []models.CheckIn, event Event, loc *time.Location) []time.Time {
	out := make([]time.Time, 0, len(records))
	for _, r := range records {
		if !qualifies(r, event) {
			continue
		}
		day, err := dates.Parse(r.Date, loc)
		if err != nil {
			continue
		}
		out = append(out, day)
	}
	return out
}

func qualifies(r models.CheckIn, event Event) bool {
	switch event {
	case EventMorning:
		return r.HasMorning()
	case EventEvening:
		return r.HasEvening()
	case EventAny:
		return r.HasMorning() || r.HasEvening()
	}
	return false
}
