package reports

import (
	"fmt"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/streak"
)

// MetricsCmd prints the full dashboard.
type MetricsCmd struct {
	AsOf string `help:"Evaluate as of this day (YYYY-MM-DD, default today)." name:"as-of"`
	JSON bool   `help:"Print the snapshot as JSON."`
}

func (c *MetricsCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Snapshot(c.AsOf)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(snap)
	}
	fmt.Println(renderDashboard(snap, ctx.Currency(), ctx.Engine.MissedWindowDays))
	return nil
}

type MilestonesCmd struct {
	AsOf string `help:"Evaluate as of this day (YYYY-MM-DD, default today)." name:"as-of"`
	JSON bool   `help:"Print as JSON."`
}

func (c *MilestonesCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Snapshot(c.AsOf)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(map[string]any{"as_of": snap.AsOf, "sobriety": snap.Sobriety, "milestones": snap.Milestones})
	}

	fmt.Println(cli.TitleStyle.Render("Milestones"))
	fmt.Println(renderSobriety(snap.Sobriety))
	if snap.Milestones != nil {
		fmt.Println(renderNextMilestone(snap.Milestones))
		fmt.Println()
		fmt.Println(renderLadder(snap.Milestones))
	}
	return nil
}

type SavingsCmd struct {
	AsOf string `help:"Evaluate as of this day (YYYY-MM-DD, default today)." name:"as-of"`
	JSON bool   `help:"Print as JSON."`
}

func (c *SavingsCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Snapshot(c.AsOf)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(map[string]any{"as_of": snap.AsOf, "savings": snap.Finance})
	}

	fmt.Println(cli.TitleStyle.Render("Savings"))
	fmt.Println(renderSavings(snap.Finance, ctx.Currency(), true))
	return nil
}

type WellnessCmd struct {
	AsOf string `help:"Evaluate as of this day (YYYY-MM-DD, default today)." name:"as-of"`
	JSON bool   `help:"Print as JSON."`
}

func (c *WellnessCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Snapshot(c.AsOf)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(map[string]any{"as_of": snap.AsOf, "wellness": snap.Wellness})
	}

	fmt.Println(cli.TitleStyle.Render("Wellness"))
	fmt.Println(renderWellness(snap.Wellness, ctx.Engine.MissedWindowDays))
	return nil
}

type StreakCmd struct {
	AsOf  string `help:"Evaluate as of this day (YYYY-MM-DD, default today)." name:"as-of"`
	Event string `help:"Check-in event to count: morning, evening or any (default from engine config)."`
	JSON  bool   `help:"Print as JSON."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	in, err := ctx.Input(c.AsOf)
	if err != nil {
		return err
	}
	event := ctx.Engine.StreakEvent
	if c.Event != "" {
		if event, err = streak.ParseEvent(c.Event); err != nil {
			return err
		}
	}
	info := streak.Compute(streak.EventDays(in.CheckIns, event, in.AsOf.Location()), in.AsOf)

	if c.JSON {
		return printJSON(map[string]any{"event": event, "streak": info})
	}
	fmt.Println(cli.TitleStyle.Render("Check-in streak"))
	fmt.Println(renderStreak(info, event))
	return nil
}
