package checkins

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/constants"
	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/models"
)

// runForm is replaced in tests.
var runForm = func(f *huh.Form) error { return f.Run() }

type MorningCmd struct {
	Date    string `help:"Day to record (YYYY-MM-DD, default today)."`
	Mood    *int   `help:"Mood (0-10)."`
	Craving *int   `help:"Craving level (0-10)."`
	Anxiety *int   `help:"Anxiety level (0-10)."`
	Sleep   *int   `help:"Sleep quality (0-10)."`
}

func (c *MorningCmd) Run(ctx *cli.Context) error {
	day, err := ctx.AsOf(c.Date)
	if err != nil {
		return err
	}

	data := models.MorningData{Mood: c.Mood, Craving: c.Craving, Anxiety: c.Anxiety, Sleep: c.Sleep}
	if data.Mood == nil && data.Craving == nil && data.Anxiety == nil && data.Sleep == nil {
		if err := morningForm(&data); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name  string
		value *int
	}{
		{"mood", data.Mood},
		{"craving", data.Craving},
		{"anxiety", data.Anxiety},
		{"sleep", data.Sleep},
	} {
		if err := checkRange(f.name, f.value); err != nil {
			return err
		}
	}

	saved, err := ctx.Store.UpsertCheckIn(models.CheckIn{
		Date:      dates.Key(day),
		Morning:   &data,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}
	fmt.Printf("✓ Morning check-in saved for %s\n", saved.Date)
	return nil
}

type EveningCmd struct {
	Date       string `help:"Day to record (YYYY-MM-DD, default today)."`
	Overall    *int   `help:"Overall day rating (0-10)."`
	Challenges string `help:"What was hard today."`
	Gratitude  string `help:"Something you are grateful for."`
	Goal       string `help:"Goal for tomorrow."`
}

func (c *EveningCmd) Run(ctx *cli.Context) error {
	day, err := ctx.AsOf(c.Date)
	if err != nil {
		return err
	}

	data := models.EveningData{
		OverallDay:   c.Overall,
		Challenges:   strings.TrimSpace(c.Challenges),
		Gratitude:    strings.TrimSpace(c.Gratitude),
		TomorrowGoal: strings.TrimSpace(c.Goal),
	}
	if data.OverallDay == nil && data.Challenges == "" && data.Gratitude == "" && data.TomorrowGoal == "" {
		if err := eveningForm(&data); err != nil {
			return err
		}
	}
	if err := checkRange("overall", data.OverallDay); err != nil {
		return err
	}

	saved, err := ctx.Store.UpsertCheckIn(models.CheckIn{
		Date:      dates.Key(day),
		Evening:   &data,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}
	fmt.Printf("✓ Evening reflection saved for %s\n", saved.Date)
	return nil
}

func checkRange(name string, v *int) error {
	if v != nil && (*v < constants.MinMetricValue || *v > constants.MaxMetricValue) {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, constants.MinMetricValue, constants.MaxMetricValue, *v)
	}
	return nil
}

func morningForm(data *models.MorningData) error {
	var mood, craving, anxiety, sleep string
	form := huh.NewForm(
		huh.NewGroup(
			ratingInput("Mood", "How are you feeling? (0 low, 10 great)", &mood),
			ratingInput("Craving", "How strong are cravings? (0 none, 10 intense)", &craving),
			ratingInput("Anxiety", "How anxious are you? (0 calm, 10 severe)", &anxiety),
			ratingInput("Sleep", "How well did you sleep? (0 poor, 10 great)", &sleep),
		).Title("Morning check-in"),
	).WithTheme(huh.ThemeDracula())

	if err := runForm(form); err != nil {
		return fmt.Errorf("check-in cancelled: %w", err)
	}

	data.Mood = parseRating(mood)
	data.Craving = parseRating(craving)
	data.Anxiety = parseRating(anxiety)
	data.Sleep = parseRating(sleep)
	return nil
}

func eveningForm(data *models.EveningData) error {
	var overall string
	form := huh.NewForm(
		huh.NewGroup(
			ratingInput("Overall day", "How was today overall? (0-10)", &overall),
			huh.NewText().Title("Challenges").Value(&data.Challenges),
			huh.NewText().Title("Gratitude").Value(&data.Gratitude),
			huh.NewInput().Title("Goal for tomorrow").Value(&data.TomorrowGoal),
		).Title("Evening reflection"),
	).WithTheme(huh.ThemeDracula())

	if err := runForm(form); err != nil {
		return fmt.Errorf("reflection cancelled: %w", err)
	}

	data.OverallDay = parseRating(overall)
	data.Challenges = strings.TrimSpace(data.Challenges)
	data.Gratitude = strings.TrimSpace(data.Gratitude)
	data.TomorrowGoal = strings.TrimSpace(data.TomorrowGoal)
	return nil
}

// ratingInput is an optional 0-10 field; blank means not recorded.
func ratingInput(title, description string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(description).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			i, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			if i < constants.MinMetricValue || i > constants.MaxMetricValue {
				return fmt.Errorf("enter a number from %d to %d", constants.MinMetricValue, constants.MaxMetricValue)
			}
			return nil
		})
}

func parseRating(s string) *int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &i
}
