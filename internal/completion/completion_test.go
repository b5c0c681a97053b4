package completion

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/recovr/internal/models"
)

func fullProfile() models.RecoveryProfile {
	return models.RecoveryProfile{
		FirstName:         "Sam",
		LastName:          "Rivera",
		Phone:             "555-0100",
		DateOfBirth:       "1990-02-14",
		AddressCity:       "Portland",
		ProfileImageURL:   "https://example.com/sam.png",
		Substance:         "alcohol",
		SobrietyStartDate: "2024-01-01",
		DailyCost:         decimal.NewFromInt(12),
		EmergencyContacts: []models.EmergencyContact{{ID: "c1", Name: "Alex", Phone: "555-0199"}},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		profile       func() models.RecoveryProfile
		required      []Field
		wantPercent   int
		wantCompleted int
		wantMissing   int
	}{
		{
			name:          "complete profile",
			profile:       fullProfile,
			required:      DefaultFields,
			wantPercent:   100,
			wantCompleted: 10,
		},
		{
			name: "six of ten",
			profile: func() models.RecoveryProfile {
				p := fullProfile()
				p.Phone = ""
				p.AddressCity = "   "
				p.ProfileImageURL = ""
				p.EmergencyContacts = nil
				return p
			},
			required:      DefaultFields,
			wantPercent:   60,
			wantCompleted: 6,
			wantMissing:   4,
		},
		{
			name:        "empty profile",
			profile:     func() models.RecoveryProfile { return models.RecoveryProfile{} },
			required:    DefaultFields,
			wantPercent: 0,
			wantMissing: 10,
		},
		{
			name: "zero daily cost is missing",
			profile: func() models.RecoveryProfile {
				p := fullProfile()
				p.DailyCost = decimal.Zero
				return p
			},
			required:      []Field{FieldDailyCost, FieldFirstName, FieldLastName},
			wantPercent:   67,
			wantCompleted: 2,
			wantMissing:   1,
		},
		{
			name:        "no required fields",
			profile:     func() models.RecoveryProfile { return models.RecoveryProfile{} },
			required:    nil,
			wantPercent: 100,
		},
		{
			name:          "duplicates and unknown fields ignored",
			profile:       fullProfile,
			required:      []Field{FieldPhone, FieldPhone, "favourite_colour"},
			wantPercent:   100,
			wantCompleted: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.profile(), tt.required)
			if got.Percent != tt.wantPercent {
				t.Errorf("Percent = %d, want %d", got.Percent, tt.wantPercent)
			}
			if got.Completed != tt.wantCompleted {
				t.Errorf("Completed = %d, want %d", got.Completed, tt.wantCompleted)
			}
			if len(got.Missing) != tt.wantMissing {
				t.Errorf("Missing = %v, want %d entries", got.Missing, tt.wantMissing)
			}
		})
	}
}

func TestScoreOrderIndependent(t *testing.T) {
	p := fullProfile()
	p.LastName = ""
	reversed := make([]Field, len(DefaultFields))
	for i, f := range DefaultFields {
		reversed[len(DefaultFields)-1-i] = f
	}
	if a, b := Score(p, DefaultFields).Percent, Score(p, reversed).Percent; a != b {
		t.Errorf("order changed score: %d vs %d", a, b)
	}
}

func TestParseField(t *testing.T) {
	for _, f := range DefaultFields {
		if _, err := ParseField(string(f)); err != nil {
			t.Errorf("ParseField(%q): %v", f, err)
		}
	}
	if _, err := ParseField("shoe_size"); err == nil {
		t.Error("ParseField(shoe_size) should fail")
	}
}
