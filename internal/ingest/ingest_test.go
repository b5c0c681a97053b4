package ingest

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func decode(t *testing.T, doc string) (Export, []Warning) {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	out, warnings, err := Decoder{Location: loc}.Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	return out, warnings
}

func hasWarning(warnings []Warning, path string) bool {
	for _, w := range warnings {
		if w.Path == path {
			return true
		}
	}
	return false
}

func TestReadProfileVariants(t *testing.T) {
	out, warnings := decode(t, `{
		"profile": {
			"firstName": " Sam ",
			"lastName": "Rivera",
			"sobrietyDate": "2024-01-15",
			"dailyCost": "12.50",
			"moneySetAside": 40,
			"activeSavingsGoal": "bike",
			"customSavingsGoals": [
				{"id": "bike", "name": "Bike", "targetAmount": 600, "icon": "🚲"},
				{"name": "Broken", "targetAmount": 0},
				{"name": "Concert", "amount": "$1,200"}
			],
			"emergencyContacts": [
				{"name": "Alex", "phoneNumber": "555-0100", "relationship": "sponsor"},
				{"name": "Nobody"}
			]
		}
	}`)

	p := out.Profile
	if p == nil {
		t.Fatal("expected a profile")
	}
	if p.FirstName != "Sam" || p.LastName != "Rivera" {
		t.Errorf("name = %q %q", p.FirstName, p.LastName)
	}
	if p.SobrietyStartDate != "2024-01-15" {
		t.Errorf("SobrietyStartDate = %q, want 2024-01-15", p.SobrietyStartDate)
	}
	if p.DailyCost.String() != "12.5" {
		t.Errorf("DailyCost = %s, want 12.5", p.DailyCost)
	}
	if p.ActualMoneySetAside == nil || p.ActualMoneySetAside.String() != "40" {
		t.Errorf("ActualMoneySetAside = %v, want 40", p.ActualMoneySetAside)
	}
	if p.ActiveSavingsGoalID != "bike" {
		t.Errorf("ActiveSavingsGoalID = %q, want bike", p.ActiveSavingsGoalID)
	}

	if len(p.CustomSavingsGoals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(p.CustomSavingsGoals))
	}
	if p.CustomSavingsGoals[0].ID != "bike" || p.CustomSavingsGoals[0].Icon != "🚲" {
		t.Errorf("unexpected first goal: %+v", p.CustomSavingsGoals[0])
	}
	concert := p.CustomSavingsGoals[1]
	if concert.ID == "" || concert.TargetAmount.String() != "1200" {
		t.Errorf("unexpected second goal: %+v", concert)
	}
	if !hasWarning(warnings, "profile.customSavingsGoals[1]") {
		t.Errorf("expected a warning for the zero-target goal, got %v", warnings)
	}

	if len(p.EmergencyContacts) != 1 || p.EmergencyContacts[0].Phone != "555-0100" {
		t.Errorf("unexpected contacts: %+v", p.EmergencyContacts)
	}
	if !hasWarning(warnings, "profile.emergencyContacts[1]") {
		t.Errorf("expected a warning for the incomplete contact, got %v", warnings)
	}
}

func TestReadNegativeDailyCost(t *testing.T) {
	out, warnings := decode(t, `{"profile": {"sobrietyStartDate": "2024-01-15", "dailyCost": -3}}`)
	if !out.Profile.DailyCost.IsZero() {
		t.Errorf("DailyCost = %s, want 0", out.Profile.DailyCost)
	}
	if !hasWarning(warnings, "profile.dailyCost") {
		t.Errorf("expected a dailyCost warning, got %v", warnings)
	}
}

func TestReadDateForms(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"date key", `"2024-03-10"`, "2024-03-10"},
		// 02:30 UTC is still the previous evening in New York.
		{"rfc3339", `"2024-03-11T02:30:00Z"`, "2024-03-10"},
		{"rfc3339 with offset", `"2024-03-10T23:00:00-05:00"`, "2024-03-10"},
		{"timestamp", `{"seconds": 1710037800, "nanoseconds": 0}`, "2024-03-09"},
		{"legacy timestamp", `{"_seconds": 1710037800, "_nanoseconds": 0}`, "2024-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := decode(t, `{"checkIns": [{"date": `+tt.value+`, "mood": 5}]}`)
			if len(out.CheckIns) != 1 {
				t.Fatalf("expected 1 check-in, got %d", len(out.CheckIns))
			}
			if got := out.CheckIns[0].Date; got != tt.want {
				t.Errorf("Date = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadCheckInVariants(t *testing.T) {
	out, warnings := decode(t, `{
		"checkins": [
			{"date": "2024-03-02", "morningData": {"mood": 7, "cravingLevel": "2", "anxietyLevel": 3, "sleepQuality": 8},
			 "eveningData": {"dayRating": 9, "gratitude": "sunlight"}},
			{"date": "2024-03-01", "mood": 4, "craving": 12, "sleep": null},
			{"date": "yesterday", "mood": 5},
			{"mood": 5}
		]
	}`)

	if len(out.CheckIns) != 2 {
		t.Fatalf("expected 2 check-ins, got %d", len(out.CheckIns))
	}
	if out.CheckIns[0].Date != "2024-03-01" || out.CheckIns[1].Date != "2024-03-02" {
		t.Fatalf("check-ins not sorted by date: %q, %q", out.CheckIns[0].Date, out.CheckIns[1].Date)
	}

	legacy := out.CheckIns[0]
	if legacy.Morning == nil || legacy.Morning.Mood == nil || *legacy.Morning.Mood != 4 {
		t.Errorf("expected top-level mood 4, got %+v", legacy.Morning)
	}
	if legacy.Morning.Craving != nil {
		t.Errorf("out-of-range craving should be dropped, got %d", *legacy.Morning.Craving)
	}
	if legacy.Morning.Sleep != nil {
		t.Error("null sleep should stay unset")
	}
	if legacy.Evening != nil {
		t.Error("legacy record without evening fields should have no evening")
	}
	if !hasWarning(warnings, "checkins[1].craving") {
		t.Errorf("expected an out-of-range warning, got %v", warnings)
	}

	full := out.CheckIns[1]
	m := full.Morning
	if m == nil || *m.Mood != 7 || *m.Craving != 2 || *m.Anxiety != 3 || *m.Sleep != 8 {
		t.Errorf("unexpected morning data: %+v", m)
	}
	if full.Evening == nil || *full.Evening.OverallDay != 9 || full.Evening.Gratitude != "sunlight" {
		t.Errorf("unexpected evening data: %+v", full.Evening)
	}
	if full.ID == "" {
		t.Error("expected a generated ID")
	}

	if !hasWarning(warnings, "checkins[2].date") {
		t.Errorf("expected an invalid-date warning, got %v", warnings)
	}
	if !hasWarning(warnings, "checkins[3]") {
		t.Errorf("expected a missing-date warning, got %v", warnings)
	}
}

func TestReadMergesDuplicateDates(t *testing.T) {
	out, warnings := decode(t, `{"checkIns": [
		{"date": "2024-03-01", "morningData": {"mood": 6}},
		{"date": "2024-03-01", "eveningData": {"overallDay": 8}}
	]}`)

	if len(out.CheckIns) != 1 {
		t.Fatalf("expected 1 merged check-in, got %d", len(out.CheckIns))
	}
	c := out.CheckIns[0]
	if !c.HasMorning() || !c.HasEvening() {
		t.Errorf("expected both halves after merge, got %+v", c)
	}
	if !hasWarning(warnings, "checkIns[1]") {
		t.Errorf("expected a duplicate warning, got %v", warnings)
	}
}

func TestReadEmptyMorningCountsAsSubmitted(t *testing.T) {
	out, _ := decode(t, `{"checkIns": [{"date": "2024-03-01", "morningData": {}}]}`)
	if !out.CheckIns[0].HasMorning() {
		t.Error("an explicit empty morning should count as submitted")
	}
}

func TestReadInvalidDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `hello`},
		{"array", `[1, 2]`},
		{"null", `null`},
		{"empty object", `{}`},
		{"check-ins not a list", `{"checkIns": {"date": "2024-03-01"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadExport(strings.NewReader(tt.doc))
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}
