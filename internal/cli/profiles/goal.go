package profiles

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/finance"
	"github.com/julianstephens/recovr/internal/metrics"
	"github.com/julianstephens/recovr/internal/models"
	"github.com/julianstephens/recovr/internal/storage"
)

type GoalAddCmd struct {
	Name     string `arg:"" help:"Goal name."`
	Target   string `arg:"" help:"Target amount."`
	Icon     string `help:"Emoji or icon for the goal." default:"🎯"`
	Activate bool   `help:"Make this the active goal."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("goal name is required")
	}
	target, err := parseAmount(c.Target)
	if err != nil {
		return fmt.Errorf("invalid target amount: %w", err)
	}
	if !target.IsPositive() {
		return errors.New("target amount must be positive")
	}

	goal := models.SavingsGoal{
		ID:           uuid.New().String(),
		Name:         name,
		TargetAmount: target,
		Icon:         c.Icon,
	}
	if err := ctx.Store.AddSavingsGoal(goal); err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	fmt.Printf("✓ Added goal %s %s (ID: %s)\n", goal.Icon, goal.Name, goal.ID)

	if c.Activate {
		return activate(ctx, goal.ID)
	}
	return nil
}

type GoalListCmd struct {
	AsOf string `help:"Measure progress as of this day (YYYY-MM-DD)." name:"as-of"`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	asOf, err := ctx.AsOf(c.AsOf)
	if err != nil {
		return err
	}
	projection := metrics.Savings(profile, ctx.Engine, asOf)
	currency := ctx.Currency()

	fmt.Println(cli.TitleStyle.Render("Savings goals"))
	goals := projection.Goals
	if !projection.Applicable {
		// Without a projection, list the goals without progress
		for _, g := range finance.MergeGoals(ctx.Engine.DefaultSavingsGoals, profile.CustomSavingsGoals) {
			goals = append(goals, finance.GoalProgress{SavingsGoal: g, Active: g.ID == profile.ActiveSavingsGoalID})
		}
	}
	for _, g := range goals {
		marker := "  "
		if g.Active {
			marker = cli.GoodStyle.Render("▶ ")
		}
		kind := ""
		if g.Default {
			kind = cli.MutedStyle.Render(" (default)")
		}
		fmt.Printf("%s%s %s — %s%s\n", marker, g.Icon, g.Name, cli.Money(currency, g.TargetAmount), kind)
		if projection.Applicable {
			fmt.Printf("    %s", cli.Bar(g.Percent))
			if g.DaysAway != nil && !g.Reached {
				fmt.Printf("  %s away", cli.Plural(*g.DaysAway, "day"))
			}
			fmt.Println()
		}
		fmt.Println(cli.MutedStyle.Render("    " + g.ID))
	}
	if !projection.Applicable {
		fmt.Println(cli.WarnStyle.Render("\nSet a sobriety date and daily cost to see progress."))
	}
	return nil
}

type GoalActivateCmd struct {
	ID string `arg:"" help:"Goal ID (custom or default)."`
}

func (c *GoalActivateCmd) Run(ctx *cli.Context) error {
	return activate(ctx, c.ID)
}

func activate(ctx *cli.Context, id string) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	found := false
	for _, g := range finance.MergeGoals(ctx.Engine.DefaultSavingsGoals, profile.CustomSavingsGoals) {
		if g.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("goal %s not found", id)
	}

	profile.ActiveSavingsGoalID = id
	profile.UpdatedAt = time.Now()
	if err := ctx.Store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Println("✓ Active goal updated.")
	return nil
}

type GoalRemoveCmd struct {
	ID string `arg:"" help:"Custom goal ID."`
}

func (c *GoalRemoveCmd) Run(ctx *cli.Context) error {
	for _, g := range ctx.Engine.DefaultSavingsGoals {
		if g.ID == c.ID {
			return fmt.Errorf("%s is a default goal; edit the engine config to change defaults", c.ID)
		}
	}
	if err := ctx.Store.DeleteSavingsGoal(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("goal %s not found", c.ID)
		}
		return fmt.Errorf("failed to remove goal: %w", err)
	}
	fmt.Println("✓ Goal removed.")
	return nil
}
