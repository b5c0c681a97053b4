// Package config loads the metrics engine tuning file, by default stored at
// ~/.config/recovr/engine.yaml. A missing file means built-in defaults.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/recovr/internal/completion"
	"github.com/julianstephens/recovr/internal/constants"
	"github.com/julianstephens/recovr/internal/finance"
	"github.com/julianstephens/recovr/internal/logger"
	"github.com/julianstephens/recovr/internal/models"
	"github.com/julianstephens/recovr/internal/streak"
)

// Engine holds every tunable constant the metrics engine reads.
type Engine struct {
	Milestones                []models.Milestone   `yaml:"milestones"`
	InterestPenaltyMultiplier decimal.Decimal      `yaml:"interest_penalty_multiplier"`
	HealthCostPerDay          decimal.Decimal      `yaml:"health_cost_per_day"`
	MissedWindowDays          int                  `yaml:"missed_window_days"`
	RequiredProfileFields     []completion.Field   `yaml:"required_profile_fields"`
	DefaultSavingsGoals       []models.SavingsGoal `yaml:"default_savings_goals"`
	StreakEvent               streak.Event         `yaml:"streak_event"`
}

// DefaultMilestones is the built-in milestone catalog, ascending.
var DefaultMilestones = []models.Milestone{
	{DaysRequired: 1, Title: "First Day", Icon: "🌱", Description: "The first full day. Everything starts here."},
	{DaysRequired: 3, Title: "72 Hours", Icon: "🌿", Description: "The hardest physical stretch is behind you."},
	{DaysRequired: 7, Title: "One Week", Icon: "⭐", Description: "Seven days in a row."},
	{DaysRequired: 14, Title: "Two Weeks", Icon: "🌟", Description: "New routines are taking hold."},
	{DaysRequired: 30, Title: "One Month", Icon: "🏅", Description: "A full month of recovery."},
	{DaysRequired: 60, Title: "Two Months", Icon: "🎯", Description: "Sixty days of choosing yourself."},
	{DaysRequired: 90, Title: "Three Months", Icon: "🏆", Description: "Ninety days, a major turning point."},
	{DaysRequired: 180, Title: "Six Months", Icon: "💎", Description: "Half a year of progress."},
	{DaysRequired: 365, Title: "One Year", Icon: "🎉", Description: "A full year of sobriety."},
	{DaysRequired: 730, Title: "Two Years", Icon: "👑", Description: "Two years of steady growth."},
	{DaysRequired: 1825, Title: "Five Years", Icon: "🌄", Description: "Five years. A new life."},
}

// DefaultSavingsGoals are offered to every user alongside their custom goals.
var DefaultSavingsGoals = []models.SavingsGoal{
	{ID: "default-weekend-trip", Name: "Weekend Trip", TargetAmount: decimal.NewFromInt(300), Icon: "🏕️"},
	{ID: "default-new-phone", Name: "New Phone", TargetAmount: decimal.NewFromInt(800), Icon: "📱"},
	{ID: "default-emergency-fund", Name: "Emergency Fund", TargetAmount: decimal.NewFromInt(1000), Icon: "🛟"},
	{ID: "default-vacation", Name: "Vacation", TargetAmount: decimal.NewFromInt(2500), Icon: "✈️"},
}

// Default returns the built-in engine configuration.
func Default() Engine {
	fin := finance.DefaultConfig()
	return Engine{
		Milestones:                append([]models.Milestone(nil), DefaultMilestones...),
		InterestPenaltyMultiplier: fin.InterestPenaltyMultiplier,
		HealthCostPerDay:          fin.HealthCostPerDay,
		MissedWindowDays:          constants.MissedCheckInWindowDays,
		RequiredProfileFields:     append([]completion.Field(nil), completion.DefaultFields...),
		DefaultSavingsGoals:       append([]models.SavingsGoal(nil), DefaultSavingsGoals...),
		StreakEvent:               streak.Event(constants.DefaultStreakEvent),
	}
}

// Path returns the engine file location inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.DefaultEngineFile)
}

// Load reads the engine file at path. Keys absent from the file keep their
// defaults; a missing file yields Default(). The result is validated.
func Load(path string) (Engine, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Engine{}, fmt.Errorf("reading engine config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Engine{}, fmt.Errorf("parsing engine config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Engine{}, fmt.Errorf("invalid engine config %s: %w", path, err)
	}

	logger.Debug("Loaded engine config", "path", path, "milestones", len(cfg.Milestones))
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg Engine) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling engine config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks the configuration for values the engine cannot use.
// Duplicate milestone thresholds are allowed but logged.
func (e Engine) Validate() error {
	var errs []error

	if e.InterestPenaltyMultiplier.IsNegative() {
		errs = append(errs, fmt.Errorf("interest_penalty_multiplier must not be negative, got %s", e.InterestPenaltyMultiplier))
	}
	if e.HealthCostPerDay.IsNegative() {
		errs = append(errs, fmt.Errorf("health_cost_per_day must not be negative, got %s", e.HealthCostPerDay))
	}
	if e.MissedWindowDays <= 0 {
		errs = append(errs, fmt.Errorf("missed_window_days must be positive, got %d", e.MissedWindowDays))
	}
	if _, err := streak.ParseEvent(string(e.StreakEvent)); err != nil {
		errs = append(errs, err)
	}
	for _, f := range e.RequiredProfileFields {
		if _, err := completion.ParseField(string(f)); err != nil {
			errs = append(errs, err)
		}
	}

	seen := make(map[int]string, len(e.Milestones))
	for _, m := range e.Milestones {
		if m.DaysRequired < 0 {
			errs = append(errs, fmt.Errorf("milestone %q has negative days %d", m.Title, m.DaysRequired))
			continue
		}
		if prev, ok := seen[m.DaysRequired]; ok {
			logger.Warn("Duplicate milestone threshold", "days", m.DaysRequired, "first", prev, "second", m.Title)
			continue
		}
		seen[m.DaysRequired] = m.Title
	}

	goalIDs := make(map[string]bool, len(e.DefaultSavingsGoals))
	for _, g := range e.DefaultSavingsGoals {
		if g.ID == "" {
			errs = append(errs, fmt.Errorf("default savings goal %q has no id", g.Name))
		} else if goalIDs[g.ID] {
			errs = append(errs, fmt.Errorf("duplicate default savings goal id %q", g.ID))
		}
		goalIDs[g.ID] = true
		if !g.TargetAmount.IsPositive() {
			errs = append(errs, fmt.Errorf("default savings goal %q must have a positive target", g.Name))
		}
	}

	return stderrors.Join(errs...)
}

// Finance returns the projector settings.
func (e Engine) Finance() finance.Config {
	return finance.Config{
		InterestPenaltyMultiplier: e.InterestPenaltyMultiplier,
		HealthCostPerDay:          e.HealthCostPerDay,
	}
}
