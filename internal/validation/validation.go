package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/recovr/internal/constants"
	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateCheckIn   ConflictType = "duplicate_checkin"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictValueOutOfRange    ConflictType = "value_out_of_range"
	ConflictFutureSobrietyDate ConflictType = "future_sobriety_date"
	ConflictNegativeDailyCost  ConflictType = "negative_daily_cost"
	ConflictInvalidGoalTarget  ConflictType = "invalid_goal_target"
	ConflictUnknownActiveGoal  ConflictType = "unknown_active_goal"
)

// Conflict represents a detected problem in the profile or check-in history
type Conflict struct {
	Type        ConflictType `json:"type"`
	Description string       `json:"description"`
	Date        string       `json:"date,omitempty"` // YYYY-MM-DD format (if applicable)
	Items       []string     `json:"items,omitempty"`
	IDs         []string     `json:"ids,omitempty"` // IDs of records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict `json:"conflicts"`
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks stored data against the invariants the metrics engine relies on
type Validator struct {
	defaultGoalIDs map[string]bool
}

// New creates a new Validator. defaultGoals are the configured built-in goals,
// which a profile may select as its active goal.
func New(defaultGoals []models.SavingsGoal) *Validator {
	ids := make(map[string]bool, len(defaultGoals))
	for _, g := range defaultGoals {
		ids[g.ID] = true
	}
	return &Validator{defaultGoalIDs: ids}
}

// Validate checks the profile and check-ins. asOf bounds the sobriety start date.
func (v *Validator) Validate(profile models.RecoveryProfile, checkIns []models.CheckIn, asOf time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, v.ValidateProfile(profile, asOf).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateCheckIns(checkIns).Conflicts...)
	return result
}

// ValidateProfile checks the recovery fields and savings goals of a profile
func (v *Validator) ValidateProfile(profile models.RecoveryProfile, asOf time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if profile.SobrietyStartDate != "" {
		start, err := dates.Parse(profile.SobrietyStartDate, asOf.Location())
		if err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Invalid sobriety start date: %s", profile.SobrietyStartDate),
				Date:        profile.SobrietyStartDate,
			})
		} else if dates.DaysBetween(start, asOf) < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureSobrietyDate,
				Description: fmt.Sprintf("Sobriety start date %s is after %s", profile.SobrietyStartDate, dates.Key(asOf)),
				Date:        profile.SobrietyStartDate,
			})
		}
	}

	if profile.DailyCost.IsNegative() {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictNegativeDailyCost,
			Description: fmt.Sprintf("Daily cost is negative: %s", profile.DailyCost),
		})
	}

	goalIDs := make(map[string]bool, len(profile.CustomSavingsGoals))
	for _, goal := range profile.CustomSavingsGoals {
		goalIDs[goal.ID] = true
		if !goal.TargetAmount.IsPositive() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidGoalTarget,
				Description: fmt.Sprintf("Savings goal \"%s\" has non-positive target: %s", goal.Name, goal.TargetAmount),
				Items:       []string{goal.Name},
				IDs:         []string{goal.ID},
			})
		}
	}

	if id := profile.ActiveSavingsGoalID; id != "" && !goalIDs[id] && !v.defaultGoalIDs[id] {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnknownActiveGoal,
			Description: fmt.Sprintf("Active savings goal not found: %s", id),
			IDs:         []string{id},
		})
	}

	return result
}

// ValidateCheckIns checks check-in dates and metric ranges
func (v *Validator) ValidateCheckIns(checkIns []models.CheckIn) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byDate := make(map[string][]string)
	for _, c := range checkIns {
		if !dates.Valid(c.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Check-in %s has invalid date: %q", c.ID, c.Date),
				Date:        c.Date,
				IDs:         []string{c.ID},
			})
			continue
		}
		byDate[c.Date] = append(byDate[c.Date], c.ID)

		for _, m := range models.AllMetrics {
			value, ok := c.Value(m)
			if !ok {
				continue
			}
			if value < constants.MinMetricValue || value > constants.MaxMetricValue {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictValueOutOfRange,
					Description: fmt.Sprintf("Check-in on %s has %s out of range: %d (expected %d-%d)",
						c.Date, m, value, constants.MinMetricValue, constants.MaxMetricValue),
					Date:  c.Date,
					Items: []string{string(m)},
					IDs:   []string{c.ID},
				})
			}
		}
	}

	// Report duplicates in date order so output is stable
	duplicateDates := make([]string, 0)
	for date, ids := range byDate {
		if len(ids) > 1 {
			duplicateDates = append(duplicateDates, date)
		}
	}
	sort.Strings(duplicateDates)
	for _, date := range duplicateDates {
		ids := byDate[date]
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateCheckIn,
			Description: fmt.Sprintf("Multiple check-ins on %s (IDs: %v)", date, ids),
			Date:        date,
			IDs:         ids,
		})
	}

	return result
}
