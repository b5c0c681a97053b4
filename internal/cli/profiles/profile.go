package profiles

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/dates"
	apperrors "github.com/julianstephens/recovr/internal/errors"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	currency := ctx.Currency()

	name := strings.TrimSpace(profile.FirstName + " " + profile.LastName)
	if name == "" {
		name = "(no name)"
	}
	fmt.Println(cli.TitleStyle.Render(name))
	fmt.Println(cli.Row("Phone", orDash(profile.Phone)))
	fmt.Println(cli.Row("Date of birth", orDash(profile.DateOfBirth)))
	fmt.Println(cli.Row("City", orDash(profile.AddressCity)))
	fmt.Println(cli.Row("Profile image", orDash(profile.ProfileImageURL)))

	fmt.Println(cli.SectionStyle.Render("Recovery"))
	fmt.Println(cli.Row("Substance", orDash(profile.Substance)))
	fmt.Println(cli.Row("Sobriety start", orDash(profile.SobrietyStartDate)))
	fmt.Println(cli.Row("Daily cost", cli.Money(currency, profile.DailyCost)))
	if profile.ActualMoneySetAside != nil {
		fmt.Println(cli.Row("Money set aside", cli.Money(currency, *profile.ActualMoneySetAside)))
	}
	fmt.Println(cli.Row("Active goal", orDash(profile.ActiveSavingsGoalID)))
	fmt.Println(cli.Row("Custom goals", fmt.Sprintf("%d", len(profile.CustomSavingsGoals))))
	fmt.Println(cli.Row("Emergency contacts", fmt.Sprintf("%d", len(profile.EmergencyContacts))))

	return nil
}

type ProfileSetCmd struct {
	FirstName    *string `help:"First name."`
	LastName     *string `help:"Last name."`
	Phone        *string `help:"Phone number."`
	DateOfBirth  *string `help:"Date of birth (YYYY-MM-DD)." name:"date-of-birth"`
	City         *string `help:"City."`
	ProfileImage *string `help:"Profile image URL."`
	Substance    *string `help:"Substance being avoided."`
	SobrietyDate *string `help:"Sobriety start date (YYYY-MM-DD). Empty string clears it."`
	DailyCost    *string `help:"Daily cost of the substance."`
	SetAside     *string `help:"Money actually set aside so far. Empty string clears it."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	updated := false
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
			updated = true
		}
	}
	setString(&profile.FirstName, c.FirstName)
	setString(&profile.LastName, c.LastName)
	setString(&profile.Phone, c.Phone)
	setString(&profile.AddressCity, c.City)
	setString(&profile.ProfileImageURL, c.ProfileImage)
	setString(&profile.Substance, c.Substance)

	if c.DateOfBirth != nil {
		if err := checkDate(*c.DateOfBirth); err != nil {
			return err
		}
		setString(&profile.DateOfBirth, c.DateOfBirth)
	}
	if c.SobrietyDate != nil {
		if err := checkDate(*c.SobrietyDate); err != nil {
			return err
		}
		setString(&profile.SobrietyStartDate, c.SobrietyDate)
	}

	if c.DailyCost != nil {
		cost, err := parseAmount(*c.DailyCost)
		if err != nil {
			return fmt.Errorf("invalid daily cost: %w", err)
		}
		if cost.IsNegative() {
			return fmt.Errorf("daily cost cannot be negative")
		}
		profile.DailyCost = cost
		updated = true
	}
	if c.SetAside != nil {
		if strings.TrimSpace(*c.SetAside) == "" {
			profile.ActualMoneySetAside = nil
		} else {
			amount, err := parseAmount(*c.SetAside)
			if err != nil {
				return fmt.Errorf("invalid set-aside amount: %w", err)
			}
			profile.ActualMoneySetAside = &amount
		}
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use 'recovr profile show' to view the profile or flags to update it.")
		return nil
	}

	profile.UpdatedAt = time.Now()
	if err := ctx.Store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Println("✓ Profile updated.")
	return nil
}

// checkDate accepts an empty string (clear) or a YYYY-MM-DD key.
func checkDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || dates.Valid(s) {
		return nil
	}
	return fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	return decimal.NewFromString(s)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
