package constants

// Product constants for the metrics engine. These are presentational estimates,
// not derived figures; the engine config file can override every one of them.
const (
	// InterestPenaltyMultiplier scales total savings into an illustrative
	// compounded-interest-equivalent loss for the relapse counterfactual.
	InterestPenaltyMultiplier = "0.34"
	// HealthCostPerDay is the fixed per-day health cost estimate, in currency units.
	HealthCostPerDay = "4"
	// MissedCheckInWindowDays is the trailing window used for missed check-in counts.
	MissedCheckInWindowDays = 31
	// WeekLength is the size of each window in week-over-week comparisons.
	WeekLength = 7

	// Wellness values are recorded on a 0-10 scale.
	MinMetricValue = 0
	MaxMetricValue = 10

	StreakEventMorning = "morning"
	StreakEventEvening = "evening"
	StreakEventAny     = "any"
	DefaultStreakEvent = StreakEventMorning
)

func init() {
	if MissedCheckInWindowDays <= 0 || WeekLength <= 0 {
		panic("MissedCheckInWindowDays and WeekLength must be positive")
	}
	if MinMetricValue >= MaxMetricValue {
		panic("MinMetricValue must be below MaxMetricValue")
	}
}
