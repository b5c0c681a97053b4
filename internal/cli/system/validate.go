package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/validation"
)

type ValidateCmd struct {
	AsOf string `help:"Evaluate future-date checks against this day (YYYY-MM-DD)." name:"as-of"`
	JSON bool   `help:"Print conflicts as JSON."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := runValidation(ctx, cmd.AsOf)
	if err != nil {
		return err
	}

	if cmd.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Print(result.FormatReport())
		if !result.HasConflicts() {
			fmt.Println()
		}
	}

	if result.HasConflicts() {
		return errors.New("validation found conflicts")
	}
	return nil
}

func runValidation(ctx *cli.Context, asOfKey string) (validation.ValidationResult, error) {
	asOf, err := ctx.AsOf(asOfKey)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load profile: %w", err)
	}
	checkIns, err := ctx.Store.GetCheckIns("", "")
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load check-ins: %w", err)
	}

	return validation.New(ctx.Engine.DefaultSavingsGoals).Validate(profile, checkIns, asOf), nil
}
