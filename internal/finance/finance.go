// Package finance projects money saved from a sobriety start date and a
// daily substance cost, and tracks progress toward savings goals.
//
// The model is a simple daily rate: no compounding and no partial days.
// Every amount is a decimal so that total == days * dailyCost holds exactly.
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/recovr/internal/constants"
	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/models"
	"github.com/julianstephens/recovr/internal/sobriety"
)

// Reason explains why a projection is not applicable.
type Reason string

const (
	ReasonNoDailyCost Reason = "no_daily_cost"
	ReasonNoStartDate Reason = "no_start_date"
)

// Config holds the presentational constants for the relapse counterfactual.
type Config struct {
	InterestPenaltyMultiplier decimal.Decimal
	HealthCostPerDay          decimal.Decimal
}

// DefaultConfig returns the built-in product constants.
func DefaultConfig() Config {
	return Config{
		InterestPenaltyMultiplier: decimal.RequireFromString(constants.InterestPenaltyMultiplier),
		HealthCostPerDay:          decimal.RequireFromString(constants.HealthCostPerDay),
	}
}

// Input is everything the projector reads.
type Input struct {
	StartDate      string // YYYY-MM-DD, empty when unset
	DailyCost      decimal.Decimal
	AsOf           time.Time
	Goals          []models.SavingsGoal
	ActiveGoalID   string
	ActualSetAside *decimal.Decimal
}

// RelapseCost is the hypothetical cost of having kept using.
type RelapseCost struct {
	WouldHaveSpent        decimal.Decimal `json:"would_have_spent"`
	InterestPenalty       decimal.Decimal `json:"interest_penalty"`
	HealthCostEstimate    decimal.Decimal `json:"health_cost_estimate"`
	TotalHypotheticalCost decimal.Decimal `json:"total_hypothetical_cost"`
}

// GoalProgress is one savings goal measured against projected savings.
type GoalProgress struct {
	models.SavingsGoal
	Remaining decimal.Decimal `json:"remaining"`
	Percent   int             `json:"percent"`
	Reached   bool            `json:"reached"`
	// DaysAway is nil when no projection is possible.
	DaysAway *int `json:"days_away"`
	// ActualPercent measures the self-reported amount set aside, when known.
	ActualPercent *int `json:"actual_percent,omitempty"`
	Active        bool `json:"active"`
}

// Projection is the projector output. When Applicable is false every money
// field is meaningless and Reason says why.
type Projection struct {
	Applicable     bool             `json:"applicable"`
	Reason         Reason           `json:"reason,omitempty"`
	ElapsedDays    int              `json:"elapsed_days"`
	DailyCost      decimal.Decimal  `json:"daily_cost"`
	TotalSaved     decimal.Decimal  `json:"total_saved"`
	SavedThisMonth decimal.Decimal  `json:"saved_this_month"`
	SavedThisYear  decimal.Decimal  `json:"saved_this_year"`
	Relapse        *RelapseCost     `json:"relapse,omitempty"`
	Goals          []GoalProgress   `json:"goals,omitempty"`
	ActiveGoal     *GoalProgress    `json:"active_goal,omitempty"`
	ActualSetAside *decimal.Decimal `json:"actual_set_aside,omitempty"`
}

// Project computes savings, the relapse counterfactual and goal progress.
func Project(in Input, cfg Config) Projection {
	if !in.DailyCost.IsPositive() {
		return Projection{Reason: ReasonNoDailyCost}
	}
	elapsed := sobriety.ElapsedDays(in.StartDate, in.AsOf)
	if !elapsed.Set {
		return Projection{Reason: ReasonNoStartDate}
	}
	start, _ := dates.Parse(in.StartDate, in.AsOf.Location())

	total := in.DailyCost.Mul(decimal.NewFromInt(int64(elapsed.Days)))
	p := Projection{
		Applicable:     true,
		ElapsedDays:    elapsed.Days,
		DailyCost:      in.DailyCost,
		TotalSaved:     total,
		SavedThisMonth: in.DailyCost.Mul(decimal.NewFromInt(int64(daysInPeriod(start, in.AsOf, dates.StartOfMonth(in.AsOf))))),
		SavedThisYear:  in.DailyCost.Mul(decimal.NewFromInt(int64(daysInPeriod(start, in.AsOf, dates.StartOfYear(in.AsOf))))),
		Relapse:        relapseCost(total, elapsed.Days, cfg),
		ActualSetAside: in.ActualSetAside,
	}

	p.Goals = make([]GoalProgress, 0, len(in.Goals))
	for _, g := range in.Goals {
		gp := goalProgress(g, total, in.DailyCost, in.ActualSetAside)
		gp.Active = in.ActiveGoalID != "" && g.ID == in.ActiveGoalID
		p.Goals = append(p.Goals, gp)
	}
	for i := range p.Goals {
		if p.Goals[i].Active {
			active := p.Goals[i]
			p.ActiveGoal = &active
			break
		}
	}

	return p
}

// daysInPeriod counts saved days between periodStart and asOf, inclusive of
// the sobriety start day. Starting before the period counts every day of the
// period so far; a future start counts nothing.
func daysInPeriod(start, asOf, periodStart time.Time) int {
	if dates.DaysBetween(start, asOf) < 0 {
		return 0
	}
	if dates.DaysBetween(start, periodStart) > 0 {
		return dates.DaysBetween(periodStart, asOf) + 1
	}
	return dates.DaysBetween(start, asOf) + 1
}

func relapseCost(total decimal.Decimal, elapsed int, cfg Config) *RelapseCost {
	interest := total.Mul(cfg.InterestPenaltyMultiplier).Round(0)
	health := decimal.NewFromInt(int64(elapsed)).Mul(cfg.HealthCostPerDay).Round(0)
	return &RelapseCost{
		WouldHaveSpent:        total,
		InterestPenalty:       interest,
		HealthCostEstimate:    health,
		TotalHypotheticalCost: total.Add(interest).Add(health),
	}
}

func goalProgress(g models.SavingsGoal, total, dailyCost decimal.Decimal, actual *decimal.Decimal) GoalProgress {
	gp := GoalProgress{
		SavingsGoal: g,
		Remaining:   decimal.Max(decimal.Zero, g.TargetAmount.Sub(total)),
		Percent:     percentOf(total, g.TargetAmount),
		Reached:     total.GreaterThanOrEqual(g.TargetAmount),
	}
	if days, ok := DaysAway(g.TargetAmount, total, dailyCost); ok {
		gp.DaysAway = &days
	}
	if actual != nil {
		ap := percentOf(*actual, g.TargetAmount)
		gp.ActualPercent = &ap
	}
	return gp
}

// DaysAway returns how many more days at dailyCost it takes for saved to
// reach target. It reports false when dailyCost is not positive, since no
// projection is possible.
func DaysAway(target, saved, dailyCost decimal.Decimal) (int, bool) {
	if !dailyCost.IsPositive() {
		return 0, false
	}
	remaining := target.Sub(saved)
	if !remaining.IsPositive() {
		return 0, true
	}
	return int(remaining.Div(dailyCost).Ceil().IntPart()), true
}

// MergeGoals returns the default goals followed by the user's custom goals.
func MergeGoals(defaults, custom []models.SavingsGoal) []models.SavingsGoal {
	out := make([]models.SavingsGoal, 0, len(defaults)+len(custom))
	for _, g := range defaults {
		g.Default = true
		out = append(out, g)
	}
	return append(out, custom...)
}

func percentOf(part, whole decimal.Decimal) int {
	if !whole.IsPositive() {
		return 100
	}
	if part.IsNegative() {
		return 0
	}
	p := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if p > 100 {
		return 100
	}
	return int(p)
}
