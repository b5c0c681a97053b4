package profiles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/models"
	"github.com/julianstephens/recovr/internal/storage"
)

type ContactAddCmd struct {
	Name         string `arg:"" help:"Contact name."`
	Phone        string `arg:"" help:"Contact phone number."`
	Relationship string `help:"Relationship (sponsor, friend, family...)."`
}

func (c *ContactAddCmd) Run(ctx *cli.Context) error {
	contact := models.EmergencyContact{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(c.Name),
		Phone:        strings.TrimSpace(c.Phone),
		Relationship: strings.TrimSpace(c.Relationship),
	}
	if contact.Name == "" || contact.Phone == "" {
		return errors.New("contact name and phone are required")
	}

	if err := ctx.Store.AddEmergencyContact(contact); err != nil {
		return fmt.Errorf("failed to add contact: %w", err)
	}
	fmt.Printf("✓ Added contact %s (ID: %s)\n", contact.Name, contact.ID)
	return nil
}

type ContactListCmd struct{}

func (c *ContactListCmd) Run(ctx *cli.Context) error {
	contacts, err := ctx.Store.GetEmergencyContacts()
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	if len(contacts) == 0 {
		fmt.Println("No emergency contacts. Add one with 'recovr contact add <name> <phone>'.")
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Emergency contacts"))
	for _, contact := range contacts {
		line := fmt.Sprintf("  %s  %s", contact.Name, contact.Phone)
		if contact.Relationship != "" {
			line += cli.MutedStyle.Render(" (" + contact.Relationship + ")")
		}
		fmt.Println(line)
		fmt.Println(cli.MutedStyle.Render("    " + contact.ID))
	}
	return nil
}

type ContactRemoveCmd struct {
	ID string `arg:"" help:"Contact ID."`
}

func (c *ContactRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteEmergencyContact(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("contact %s not found", c.ID)
		}
		return fmt.Errorf("failed to remove contact: %w", err)
	}
	fmt.Println("✓ Contact removed.")
	return nil
}
