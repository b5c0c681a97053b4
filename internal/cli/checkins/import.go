package checkins

import (
	"fmt"
	"os"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/ingest"
	"github.com/julianstephens/recovr/internal/logger"
	"github.com/julianstephens/recovr/internal/storage"
)

type ImportCmd struct {
	File        string `arg:"" help:"JSON export file." type:"existingfile"`
	SkipProfile bool   `help:"Import check-ins only."`
	DryRun      bool   `help:"Report what would be imported without writing."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	export, warnings, err := ingest.Decoder{Location: loc}.Read(f)
	if err != nil {
		return err
	}

	for _, w := range warnings {
		logger.Warn("Import warning", "path", w.Path, "message", w.Message)
		fmt.Println(cli.WarnStyle.Render("⚠ " + w.String()))
	}

	if c.DryRun {
		fmt.Printf("Dry run: %d check-in(s), profile: %v, %d warning(s)\n",
			len(export.CheckIns), export.Profile != nil && !c.SkipProfile, len(warnings))
		return nil
	}

	ctx.PerformAutomaticBackup()

	if export.Profile != nil && !c.SkipProfile {
		if err := importProfile(ctx.Store, export); err != nil {
			return err
		}
		fmt.Println("✓ Profile imported")
	}

	for _, checkIn := range export.CheckIns {
		if _, err := ctx.Store.UpsertCheckIn(checkIn); err != nil {
			return fmt.Errorf("failed to import check-in for %s: %w", checkIn.Date, err)
		}
	}
	fmt.Printf("✓ Imported %d check-in(s) with %d warning(s)\n", len(export.CheckIns), len(warnings))
	return nil
}

// importProfile adds goals and contacts whose ids are not already stored,
// then replaces the scalar profile fields.
func importProfile(store storage.Provider, export ingest.Export) error {
	p := *export.Profile

	existing, err := store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	goalIDs := make(map[string]bool)
	for _, g := range existing.CustomSavingsGoals {
		goalIDs[g.ID] = true
	}
	contactIDs := make(map[string]bool)
	for _, ct := range existing.EmergencyContacts {
		contactIDs[ct.ID] = true
	}

	for _, g := range p.CustomSavingsGoals {
		if goalIDs[g.ID] {
			continue
		}
		if err := store.AddSavingsGoal(g); err != nil {
			return fmt.Errorf("failed to add goal %s: %w", g.Name, err)
		}
	}
	for _, ct := range p.EmergencyContacts {
		if contactIDs[ct.ID] {
			continue
		}
		if err := store.AddEmergencyContact(ct); err != nil {
			return fmt.Errorf("failed to add contact %s: %w", ct.Name, err)
		}
	}

	if err := store.SaveProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
