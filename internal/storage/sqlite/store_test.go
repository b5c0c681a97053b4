package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/julianstephens/recovr/internal/errors"
	"github.com/julianstephens/recovr/internal/models"
	"github.com/julianstephens/recovr/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitCreatesDefaults(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if settings.Timezone != "Local" || settings.Currency != "$" {
		t.Errorf("unexpected default settings: %+v", settings)
	}

	current, latest, err := store.SchemaVersion()
	if err != nil || current != latest || current == 0 {
		t.Errorf("SchemaVersion() = %d, %d, %v", current, latest, err)
	}

	profile, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}
	if profile.HasSobrietyDate() || !profile.DailyCost.IsZero() {
		t.Errorf("expected empty profile, got %+v", profile)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, apperrors.ErrNotInitialized) {
		t.Errorf("Load() = %v, want ErrNotInitialized", err)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if err := store.SaveSettings(models.Settings{Timezone: "UTC", Currency: "€"}); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer reopened.Close()

	settings, err := reopened.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if settings.Timezone != "UTC" || settings.Currency != "€" {
		t.Errorf("settings not persisted: %+v", settings)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	setAside := decimal.RequireFromString("125.50")
	want := models.RecoveryProfile{
		FirstName:           "Sam",
		LastName:            "Rivera",
		Phone:               "555-0100",
		DateOfBirth:         "1990-02-14",
		AddressCity:         "Portland",
		Substance:           "alcohol",
		SobrietyStartDate:   "2024-01-01",
		DailyCost:           decimal.RequireFromString("12.75"),
		ActualMoneySetAside: &setAside,
		ActiveSavingsGoalID: "default-new-phone",
	}
	if err := store.SaveProfile(want); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	got, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}
	if got.FirstName != want.FirstName || got.SobrietyStartDate != want.SobrietyStartDate ||
		got.ActiveSavingsGoalID != want.ActiveSavingsGoalID {
		t.Errorf("profile mismatch: %+v", got)
	}
	if !got.DailyCost.Equal(want.DailyCost) {
		t.Errorf("DailyCost = %s, want %s", got.DailyCost, want.DailyCost)
	}
	if got.ActualMoneySetAside == nil || !got.ActualMoneySetAside.Equal(setAside) {
		t.Errorf("ActualMoneySetAside = %v, want %s", got.ActualMoneySetAside, setAside)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}

	want.ActualMoneySetAside = nil
	if err := store.SaveProfile(want); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}
	if got, _ = store.GetProfile(); got.ActualMoneySetAside != nil {
		t.Errorf("ActualMoneySetAside should be cleared, got %s", got.ActualMoneySetAside)
	}
}

func TestSavingsGoals(t *testing.T) {
	store := setupTestStore(t)

	goal := models.SavingsGoal{ID: "g1", Name: "Bike", TargetAmount: decimal.NewFromInt(400), Icon: "🚲"}
	if err := store.AddSavingsGoal(goal); err != nil {
		t.Fatalf("AddSavingsGoal() error: %v", err)
	}
	if err := store.SaveProfile(models.RecoveryProfile{ActiveSavingsGoalID: "g1"}); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	profile, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}
	if len(profile.CustomSavingsGoals) != 1 || !profile.CustomSavingsGoals[0].TargetAmount.Equal(goal.TargetAmount) {
		t.Fatalf("CustomSavingsGoals = %+v", profile.CustomSavingsGoals)
	}

	if err := store.DeleteSavingsGoal("g1"); err != nil {
		t.Fatalf("DeleteSavingsGoal() error: %v", err)
	}
	profile, _ = store.GetProfile()
	if len(profile.CustomSavingsGoals) != 0 || profile.ActiveSavingsGoalID != "" {
		t.Errorf("goal not removed: %+v", profile)
	}

	if err := store.DeleteSavingsGoal("g1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestEmergencyContacts(t *testing.T) {
	store := setupTestStore(t)

	for _, c := range []models.EmergencyContact{
		{ID: "c1", Name: "Alex", Phone: "555-0101", Relationship: "sponsor"},
		{ID: "c2", Name: "Kim", Phone: "555-0102"},
	} {
		if err := store.AddEmergencyContact(c); err != nil {
			t.Fatalf("AddEmergencyContact() error: %v", err)
		}
	}

	contacts, err := store.GetEmergencyContacts()
	if err != nil || len(contacts) != 2 {
		t.Fatalf("GetEmergencyContacts() = %v, %v", contacts, err)
	}
	if err := store.DeleteEmergencyContact("c1"); err != nil {
		t.Fatalf("DeleteEmergencyContact() error: %v", err)
	}
	if contacts, _ = store.GetEmergencyContacts(); len(contacts) != 1 || contacts[0].ID != "c2" {
		t.Errorf("contacts after delete = %+v", contacts)
	}
}

func TestUpsertCheckInMergesHalves(t *testing.T) {
	store := setupTestStore(t)

	morning := models.CheckIn{
		Date:      "2024-03-01",
		Morning:   &models.MorningData{Mood: models.IntPtr(7), Craving: models.IntPtr(2)},
		UpdatedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	first, err := store.UpsertCheckIn(morning)
	if err != nil {
		t.Fatalf("UpsertCheckIn(morning) error: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated ID")
	}

	evening := models.CheckIn{
		Date:      "2024-03-01",
		Evening:   &models.EveningData{OverallDay: models.IntPtr(8), Gratitude: "sunshine"},
		UpdatedAt: time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC),
	}
	if _, err := store.UpsertCheckIn(evening); err != nil {
		t.Fatalf("UpsertCheckIn(evening) error: %v", err)
	}

	got, err := store.GetCheckIn("2024-03-01")
	if err != nil {
		t.Fatalf("GetCheckIn() error: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("ID changed: %s -> %s", first.ID, got.ID)
	}
	if v, ok := got.Value(models.MetricMood); !ok || v != 7 {
		t.Errorf("mood = %d, %v; want 7", v, ok)
	}
	if _, ok := got.Value(models.MetricAnxiety); ok {
		t.Error("anxiety should be unrecorded")
	}
	if v, ok := got.Value(models.MetricOverallDay); !ok || v != 8 {
		t.Errorf("overallDay = %d, %v; want 8", v, ok)
	}
	if got.Evening.Gratitude != "sunshine" {
		t.Errorf("gratitude = %q", got.Evening.Gratitude)
	}
	if !got.UpdatedAt.Equal(evening.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, evening.UpdatedAt)
	}
}

func TestEmptyMorningIsStillSubmitted(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.UpsertCheckIn(models.CheckIn{Date: "2024-03-02", Morning: &models.MorningData{}}); err != nil {
		t.Fatalf("UpsertCheckIn() error: %v", err)
	}
	got, err := store.GetCheckIn("2024-03-02")
	if err != nil {
		t.Fatalf("GetCheckIn() error: %v", err)
	}
	if !got.HasMorning() || got.HasEvening() {
		t.Errorf("HasMorning=%v HasEvening=%v", got.HasMorning(), got.HasEvening())
	}
}

func TestGetCheckInsRange(t *testing.T) {
	store := setupTestStore(t)

	for _, d := range []string{"2024-03-05", "2024-03-01", "2024-03-03", "2024-02-28"} {
		if _, err := store.UpsertCheckIn(models.CheckIn{Date: d, Morning: &models.MorningData{Mood: models.IntPtr(5)}}); err != nil {
			t.Fatalf("UpsertCheckIn(%s) error: %v", d, err)
		}
	}

	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{name: "all", want: []string{"2024-02-28", "2024-03-01", "2024-03-03", "2024-03-05"}},
		{name: "bounded", start: "2024-03-01", end: "2024-03-03", want: []string{"2024-03-01", "2024-03-03"}},
		{name: "open end", start: "2024-03-02", want: []string{"2024-03-03", "2024-03-05"}},
		{name: "empty range", start: "2025-01-01", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetCheckIns(tt.start, tt.end)
			if err != nil {
				t.Fatalf("GetCheckIns() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("GetCheckIns() returned %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Date != tt.want[i] {
					t.Errorf("record %d = %s, want %s", i, got[i].Date, tt.want[i])
				}
			}
		})
	}
}

func TestDeleteCheckIn(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.UpsertCheckIn(models.CheckIn{Date: "2024-03-01", Morning: &models.MorningData{}}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteCheckIn("2024-03-01"); err != nil {
		t.Fatalf("DeleteCheckIn() error: %v", err)
	}
	if _, err := store.GetCheckIn("2024-03-01"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCheckIn() = %v, want ErrNotFound", err)
	}
	if err := store.DeleteCheckIn("2024-03-01"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteCheckIn() = %v, want ErrNotFound", err)
	}
}
