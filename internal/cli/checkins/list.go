package checkins

import (
	"fmt"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/models"
)

type ListCmd struct {
	Days int    `help:"Number of days to show, ending today." default:"14"`
	AsOf string `help:"Last day to show (YYYY-MM-DD)." name:"as-of"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	end, err := ctx.AsOf(c.AsOf)
	if err != nil {
		return err
	}
	start := dates.AddDays(end, -(c.Days - 1))

	records, err := ctx.Store.GetCheckIns(dates.Key(start), dates.Key(end))
	if err != nil {
		return fmt.Errorf("failed to load check-ins: %w", err)
	}
	byDate := make(map[string]models.CheckIn, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Check-ins %s to %s", dates.Key(start), dates.Key(end))))
	fmt.Println(cli.MutedStyle.Render("  date        mood crav anx  sleep day"))
	for day := end; !day.Before(start); day = dates.AddDays(day, -1) {
		key := dates.Key(day)
		r, ok := byDate[key]
		if !ok {
			fmt.Println(cli.MutedStyle.Render("  " + key + "  missed"))
			continue
		}
		fmt.Printf("  %s  %-4s %-4s %-4s %-5s %-4s\n", key,
			value(r, models.MetricMood), value(r, models.MetricCraving), value(r, models.MetricAnxiety),
			value(r, models.MetricSleep), value(r, models.MetricOverallDay))
	}
	return nil
}

func value(r models.CheckIn, m models.Metric) string {
	if v, ok := r.Value(m); ok {
		return fmt.Sprintf("%d", v)
	}
	return "·"
}
