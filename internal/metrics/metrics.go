// Package metrics composes the engine components into a single snapshot.
//
// Compute is a pure function of its input: it reads no clock, holds no state
// and never modifies the profile or check-ins it is given, so it is safe to
// call concurrently.
package metrics

import (
	"time"

	"github.com/julianstephens/recovr/internal/completion"
	"github.com/julianstephens/recovr/internal/config"
	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/finance"
	"github.com/julianstephens/recovr/internal/milestones"
	"github.com/julianstephens/recovr/internal/models"
	"github.com/julianstephens/recovr/internal/sobriety"
	"github.com/julianstephens/recovr/internal/streak"
	"github.com/julianstephens/recovr/internal/wellness"
)

// Input is a consistent snapshot of the user's data plus the evaluation day.
// AsOf's location is the evaluation timezone.
type Input struct {
	Profile  models.RecoveryProfile
	CheckIns []models.CheckIn
	AsOf     time.Time
}

// Snapshot is every derived value shown to the user.
type Snapshot struct {
	AsOf     string         `json:"as_of"`
	Sobriety sobriety.Count `json:"sobriety"`
	// Milestones is nil when no sobriety start date is set.
	Milestones *milestones.Ladder                 `json:"milestones"`
	Finance    finance.Projection                 `json:"finance"`
	Wellness   map[models.Metric]wellness.Summary `json:"wellness"`
	Streak     streak.Info                        `json:"streak"`
	// StreakEvent is the check-in event the streak counts.
	StreakEvent       streak.Event      `json:"streak_event"`
	ProfileCompletion completion.Result `json:"profile_completion"`
	CheckIns          int               `json:"check_ins"`
}

// Compute derives a Snapshot from in using the tuning values in cfg.
func Compute(in Input, cfg config.Engine) Snapshot {
	asOf := dates.Midnight(in.AsOf)
	loc := asOf.Location()

	snap := Snapshot{
		AsOf:        dates.Key(asOf),
		Sobriety:    sobriety.ElapsedDays(in.Profile.SobrietyStartDate, asOf),
		StreakEvent: cfg.StreakEvent,
		CheckIns:    len(in.CheckIns),
	}

	if snap.Sobriety.Set {
		ladder := milestones.Evaluate(snap.Sobriety.Days, cfg.Milestones)
		snap.Milestones = &ladder
	}

	snap.Finance = finance.Project(financeInput(in.Profile, cfg, asOf), cfg.Finance())
	snap.Wellness = wellness.Summarize(in.CheckIns, asOf, cfg.MissedWindowDays)
	snap.Streak = streak.Compute(streak.EventDays(in.CheckIns, cfg.StreakEvent, loc), asOf)
	snap.ProfileCompletion = completion.Score(in.Profile, cfg.RequiredProfileFields)

	return snap
}

// Savings runs only the financial projection.
func Savings(p models.RecoveryProfile, cfg config.Engine, asOf time.Time) finance.Projection {
	return finance.Project(financeInput(p, cfg, dates.Midnight(asOf)), cfg.Finance())
}

func financeInput(p models.RecoveryProfile, cfg config.Engine, asOf time.Time) finance.Input {
	return finance.Input{
		StartDate:      p.SobrietyStartDate,
		DailyCost:      p.DailyCost,
		AsOf:           asOf,
		Goals:          finance.MergeGoals(cfg.DefaultSavingsGoals, p.CustomSavingsGoals),
		ActiveGoalID:   p.ActiveSavingsGoalID,
		ActualSetAside: p.ActualMoneySetAside,
	}
}
