package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/finance"
	"github.com/julianstephens/recovr/internal/metrics"
	"github.com/julianstephens/recovr/internal/milestones"
	"github.com/julianstephens/recovr/internal/models"
	"github.com/julianstephens/recovr/internal/sobriety"
	"github.com/julianstephens/recovr/internal/streak"
	"github.com/julianstephens/recovr/internal/wellness"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderSobriety(c sobriety.Count) string {
	if !c.Set {
		return cli.WarnStyle.Render("No sobriety date set. Use 'recovr profile set --sobriety-date YYYY-MM-DD'.")
	}
	return cli.Row("Sober for", cli.Plural(c.Days, "day"))
}

func renderNextMilestone(ladder *milestones.Ladder) string {
	if ladder == nil {
		return ""
	}
	if ladder.Next == nil {
		return cli.GoodStyle.Render("Every milestone achieved 🎉")
	}
	next := ladder.Next
	return strings.Join([]string{
		cli.Row("Next milestone", fmt.Sprintf("%s %s in %s", next.Icon, next.Title, cli.Plural(next.DaysUntil, "day"))),
		cli.Row("", cli.Bar(next.SegmentPercent)),
	}, "\n")
}

func renderLadder(ladder *milestones.Ladder) string {
	if ladder == nil {
		return ""
	}
	var lines []string
	for _, s := range ladder.Statuses {
		mark := cli.MutedStyle.Render("○")
		detail := cli.MutedStyle.Render(fmt.Sprintf("in %s", cli.Plural(s.DaysUntil, "day")))
		if s.Achieved {
			mark = cli.GoodStyle.Render("●")
			detail = cli.GoodStyle.Render("achieved")
		}
		lines = append(lines, fmt.Sprintf("  %s %5d  %s %-14s %s", mark, s.DaysRequired, s.Icon, s.Title, detail))
	}
	return strings.Join(lines, "\n")
}

func renderSavings(p finance.Projection, currency string, withGoals bool) string {
	if !p.Applicable {
		switch p.Reason {
		case finance.ReasonNoDailyCost:
			return cli.WarnStyle.Render("Savings unavailable: set a daily cost with 'recovr profile set --daily-cost'.")
		default:
			return cli.WarnStyle.Render("Savings unavailable: set a sobriety date first.")
		}
	}

	lines := []string{
		cli.Row("Total saved", cli.Money(currency, p.TotalSaved)),
		cli.Row("This month", cli.Money(currency, p.SavedThisMonth)),
		cli.Row("This year", cli.Money(currency, p.SavedThisYear)),
	}
	if p.ActualSetAside != nil {
		lines = append(lines, cli.Row("Actually set aside", cli.Money(currency, *p.ActualSetAside)))
	}
	if p.ActiveGoal != nil {
		g := p.ActiveGoal
		lines = append(lines, cli.Row("Active goal", fmt.Sprintf("%s %s (%s)", g.Icon, g.Name, cli.Money(currency, g.TargetAmount))))
		lines = append(lines, cli.Row("", cli.Bar(g.Percent)+goalETA(*g)))
	}
	if withGoals {
		for _, g := range p.Goals {
			if g.Active {
				continue
			}
			lines = append(lines, cli.Row(g.Icon+" "+g.Name, cli.Bar(g.Percent)+goalETA(g)))
		}
	}
	if p.Relapse != nil {
		r := p.Relapse
		lines = append(lines,
			cli.SectionStyle.Render("If you had kept using"),
			cli.Row("Would have spent", cli.Money(currency, r.WouldHaveSpent)),
			cli.Row("Interest penalty", cli.Money(currency, r.InterestPenalty)),
			cli.Row("Health costs", cli.Money(currency, r.HealthCostEstimate)),
			cli.Row("Total", cli.Money(currency, r.TotalHypotheticalCost)),
		)
	}
	return strings.Join(lines, "\n")
}

func goalETA(g finance.GoalProgress) string {
	switch {
	case g.Reached:
		return cli.GoodStyle.Render("  reached")
	case g.DaysAway != nil:
		return cli.MutedStyle.Render(fmt.Sprintf("  %s away", cli.Plural(*g.DaysAway, "day")))
	default:
		return ""
	}
}

func renderWellness(summaries map[models.Metric]wellness.Summary, window int) string {
	lines := []string{cli.MutedStyle.Render(fmt.Sprintf("  %-12s %7s %8s %9s %7s", "metric", "average", "7 days", "vs prior", "missed"))}
	for _, m := range models.AllMetrics {
		s, ok := summaries[m]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-12s %7s %8s %9s %7d",
			m, floatOrDash(s.Average), floatOrDash(s.Week.Current), change(s.Week), s.Missed))
	}
	lines = append(lines, cli.MutedStyle.Render(fmt.Sprintf("  missed = days without a value in the last %d days", window)))
	return strings.Join(lines, "\n")
}

func change(d wellness.Delta) string {
	if d.Change == nil {
		return "—"
	}
	s := fmt.Sprintf("%+.1f", *d.Change)
	if d.IsImprovement {
		return cli.GoodStyle.Render(s)
	}
	if *d.Change != 0 {
		return cli.WarnStyle.Render(s)
	}
	return s
}

func floatOrDash(f *float64) string {
	if f == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f", *f)
}

func renderStreak(info streak.Info, event streak.Event) string {
	return strings.Join([]string{
		cli.Row("Current streak", cli.Plural(info.Current, "day")),
		cli.Row("Longest streak", cli.Plural(info.Longest, "day")),
		cli.MutedStyle.Render(fmt.Sprintf("  counting %s check-ins", event)),
	}, "\n")
}

func renderDashboard(snap metrics.Snapshot, currency string, window int) string {
	header := cli.TitleStyle.Render("Recovery dashboard") + cli.MutedStyle.Render("  as of "+snap.AsOf)

	top := []string{renderSobriety(snap.Sobriety)}
	if next := renderNextMilestone(snap.Milestones); next != "" {
		top = append(top, next)
	}
	top = append(top,
		renderStreak(snap.Streak, snap.StreakEvent),
		cli.Row("Profile complete", cli.Bar(snap.ProfileCompletion.Percent)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		cli.CardStyle.Render(strings.Join(top, "\n")),
		cli.SectionStyle.Render("Savings"),
		renderSavings(snap.Finance, currency, false),
		cli.SectionStyle.Render("Wellness"),
		renderWellness(snap.Wellness, window),
	)
}
