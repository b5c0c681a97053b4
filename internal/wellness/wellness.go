// Package wellness aggregates check-in ratings: per-metric averages,
// week-over-week changes and missed check-in counts.
package wellness

import (
	"sort"
	"time"

	"github.com/julianstephens/recovr/internal/constants"
	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/models"
)

// Delta compares the trailing week ending at asOf with the week before it.
// Current and Previous are nil when the window holds no values; Change is nil
// unless both are present.
type Delta struct {
	Metric        models.Metric `json:"metric"`
	Current       *float64      `json:"current"`
	Previous      *float64      `json:"previous"`
	Change        *float64      `json:"change"`
	IsImprovement bool          `json:"is_improvement"`
}

// Summary bundles every aggregate for one metric.
type Summary struct {
	Metric  models.Metric `json:"metric"`
	Average *float64      `json:"average"`
	Samples int           `json:"samples"`
	Week    Delta         `json:"week_over_week"`
	Missed  int           `json:"missed"`
}

// Average returns the mean of every recorded value for metric. It reports
// false when no record carries the metric.
func Average(records []models.CheckIn, metric models.Metric) (float64, bool) {
	sum, n := 0, 0
	for _, r := range records {
		v, ok := r.Value(metric)
		if !ok {
			continue
		}
		sum += clamp(v)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// WeekOverWeek compares the mean over asOf-6..asOf with the mean over
// asOf-13..asOf-7. For craving and anxiety a decrease is an improvement.
func WeekOverWeek(records []models.CheckIn, metric models.Metric, asOf time.Time) Delta {
	days := sortedByDate(records, asOf.Location())
	today := dates.Midnight(asOf)

	current := windowMean(days, metric, dates.AddDays(today, -(constants.WeekLength-1)), today)
	previous := windowMean(days, metric,
		dates.AddDays(today, -(2*constants.WeekLength-1)),
		dates.AddDays(today, -constants.WeekLength))

	d := Delta{Metric: metric, Current: current, Previous: previous}
	if current != nil && previous != nil {
		change := *current - *previous
		d.Change = &change
		if metric.LowerIsBetter() {
			d.IsImprovement = change < 0
		} else {
			d.IsImprovement = change > 0
		}
	}
	return d
}

// MissedCount returns how many calendar days in the windowDays ending at asOf
// have no recorded value for metric. A record without the metric counts as
// missing.
func MissedCount(records []models.CheckIn, metric models.Metric, asOf time.Time, windowDays int) int {
	if windowDays <= 0 {
		return 0
	}
	days := sortedByDate(records, asOf.Location())
	today := dates.Midnight(asOf)
	from := dates.AddDays(today, -(windowDays - 1))

	seen := make(map[string]struct{})
	for _, d := range days {
		if !inRange(d.day, from, today) {
			continue
		}
		if _, ok := d.record.Value(metric); ok {
			seen[dates.Key(d.day)] = struct{}{}
		}
	}

	missed := windowDays - len(seen)
	if missed < 0 {
		return 0
	}
	return missed
}

// Summarize computes a Summary for every metric. Averages and sample counts
// cover records dated on or before asOf; unparsable dates are skipped.
func Summarize(records []models.CheckIn, asOf time.Time, windowDays int) map[models.Metric]Summary {
	history := upTo(records, asOf)
	out := make(map[models.Metric]Summary, len(models.AllMetrics))
	for _, m := range models.AllMetrics {
		s := Summary{
			Metric: m,
			Week:   WeekOverWeek(records, m, asOf),
			Missed: MissedCount(records, m, asOf, windowDays),
		}
		if avg, ok := Average(history, m); ok {
			s.Average = &avg
		}
		for _, r := range history {
			if _, ok := r.Value(m); ok {
				s.Samples++
			}
		}
		out[m] = s
	}
	return out
}

type datedRecord struct {
	day    time.Time
	record models.CheckIn
}

// sortedByDate parses every record date in loc and returns them ascending.
// Records with an unparsable date are dropped. The input is not modified.
func sortedByDate(records []models.CheckIn, loc *time.Location) []datedRecord {
	out := make([]datedRecord, 0, len(records))
	for _, r := range records {
		day, err := dates.Parse(r.Date, loc)
		if err != nil {
			continue
		}
		out = append(out, datedRecord{day: day, record: r})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].day.Before(out[j].day)
	})
	return out
}

// upTo returns the records dated on or before asOf, in input order.
func upTo(records []models.CheckIn, asOf time.Time) []models.CheckIn {
	today := dates.Midnight(asOf)
	out := make([]models.CheckIn, 0, len(records))
	for _, r := range records {
		day, err := dates.Parse(r.Date, asOf.Location())
		if err != nil || dates.DaysBetween(day, today) < 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

func windowMean(days []datedRecord, metric models.Metric, from, to time.Time) *float64 {
	sum, n := 0, 0
	for _, d := range days {
		if !inRange(d.day, from, to) {
			continue
		}
		if v, ok := d.record.Value(metric); ok {
			sum += clamp(v)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := float64(sum) / float64(n)
	return &mean
}

func inRange(day, from, to time.Time) bool {
	return dates.DaysBetween(from, day) >= 0 && dates.DaysBetween(day, to) >= 0
}

func clamp(v int) int {
	if v < constants.MinMetricValue {
		return constants.MinMetricValue
	}
	if v > constants.MaxMetricValue {
		return constants.MaxMetricValue
	}
	return v
}
