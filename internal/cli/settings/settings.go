package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/constants"
	"github.com/julianstephens/recovr/internal/dates"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone *string `help:"IANA timezone used to decide calendar days (e.g. America/New_York, or Local)."`
	Currency *string `help:"Symbol printed before money amounts."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println(cli.TitleStyle.Render("Current Settings"))
		fmt.Println(cli.Row("Timezone", settings.Timezone))
		fmt.Println(cli.Row("Currency", settings.Currency))
		fmt.Println(cli.Row("Engine config", ctx.EnginePath))
		return nil
	}

	updated := false
	if c.Timezone != nil {
		tz := strings.TrimSpace(*c.Timezone)
		if tz == "" {
			tz = constants.DefaultTimezone
		}
		if _, err := dates.LoadLocation(tz); err != nil {
			return err
		}
		settings.Timezone = tz
		updated = true
	}
	if c.Currency != nil {
		cur := strings.TrimSpace(*c.Currency)
		if cur == "" {
			cur = constants.DefaultCurrency
		}
		settings.Currency = cur
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
