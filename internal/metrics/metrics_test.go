package metrics

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/recovr/internal/config"
	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/finance"
	"github.com/julianstephens/recovr/internal/models"
)

func sampleInput() Input {
	checkIns := []models.CheckIn{}
	for _, d := range []string{"2024-05-05", "2024-05-06", "2024-05-07", "2024-05-09", "2024-05-10"} {
		checkIns = append(checkIns, models.CheckIn{
			ID:   d,
			Date: d,
			Morning: &models.MorningData{
				Mood:    models.IntPtr(6),
				Craving: models.IntPtr(3),
				Anxiety: models.IntPtr(4),
				Sleep:   models.IntPtr(7),
			},
		})
	}
	checkIns = append(checkIns, models.CheckIn{
		ID:      "eve",
		Date:    "2024-05-08",
		Evening: &models.EveningData{OverallDay: models.IntPtr(8)},
	})

	return Input{
		Profile: models.RecoveryProfile{
			FirstName:           "Jo",
			LastName:            "Park",
			SobrietyStartDate:   "2024-04-01",
			Substance:           "nicotine",
			DailyCost:           decimal.NewFromInt(10),
			ActiveSavingsGoalID: "custom-1",
			CustomSavingsGoals: []models.SavingsGoal{
				{ID: "custom-1", Name: "Headphones", TargetAmount: decimal.NewFromInt(450)},
			},
		},
		CheckIns: checkIns,
		AsOf:     dates.FromParts(2024, 5, 10, time.UTC).Add(14 * time.Hour),
	}
}

func TestCompute(t *testing.T) {
	snap := Compute(sampleInput(), config.Default())

	if snap.AsOf != "2024-05-10" {
		t.Errorf("AsOf = %s", snap.AsOf)
	}
	if !snap.Sobriety.Set || snap.Sobriety.Days != 39 {
		t.Fatalf("Sobriety = %+v, want 39 days", snap.Sobriety)
	}
	if snap.Milestones == nil || snap.Milestones.Next == nil {
		t.Fatal("expected a next milestone")
	}
	if snap.Milestones.Next.DaysRequired != 60 || snap.Milestones.Next.DaysUntil != 21 {
		t.Errorf("Next = %+v", snap.Milestones.Next)
	}
	if len(snap.Milestones.Achieved) != 5 {
		t.Errorf("Achieved = %d, want 5", len(snap.Milestones.Achieved))
	}

	if !snap.Finance.Applicable || !snap.Finance.TotalSaved.Equal(decimal.NewFromInt(390)) {
		t.Errorf("Finance = %+v", snap.Finance)
	}
	if snap.Finance.ActiveGoal == nil || *snap.Finance.ActiveGoal.DaysAway != 6 {
		t.Errorf("ActiveGoal = %+v", snap.Finance.ActiveGoal)
	}
	if len(snap.Finance.Goals) != len(config.DefaultSavingsGoals)+1 {
		t.Errorf("Goals = %d", len(snap.Finance.Goals))
	}

	if snap.Streak.Current != 2 || snap.Streak.Longest != 3 {
		t.Errorf("Streak = %+v, want 2/3", snap.Streak)
	}

	mood := snap.Wellness[models.MetricMood]
	if mood.Average == nil || *mood.Average != 6 || mood.Missed != 26 {
		t.Errorf("mood = %+v", mood)
	}

	if snap.ProfileCompletion.Percent != 50 {
		t.Errorf("ProfileCompletion = %+v, want 50", snap.ProfileCompletion)
	}
}

func TestComputeDeterministic(t *testing.T) {
	in := sampleInput()
	cfg := config.Default()
	a := Compute(in, cfg)
	b := Compute(in, cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("Compute is not deterministic")
	}
}

func TestComputeWithoutStartDate(t *testing.T) {
	in := sampleInput()
	in.Profile.SobrietyStartDate = ""

	snap := Compute(in, config.Default())
	if snap.Sobriety.Set {
		t.Error("Sobriety should be unset")
	}
	if snap.Milestones != nil {
		t.Error("Milestones should be nil without a start date")
	}
	if snap.Finance.Applicable || snap.Finance.Reason != finance.ReasonNoStartDate {
		t.Errorf("Finance = %+v", snap.Finance)
	}
	if snap.Streak.Longest != 3 {
		t.Errorf("streak should not depend on the start date: %+v", snap.Streak)
	}
}

func TestComputeZeroDailyCost(t *testing.T) {
	in := sampleInput()
	in.Profile.DailyCost = decimal.Zero

	snap := Compute(in, config.Default())
	if snap.Finance.Applicable || snap.Finance.Reason != finance.ReasonNoDailyCost {
		t.Errorf("Finance = %+v", snap.Finance)
	}
	if snap.Milestones == nil {
		t.Error("milestones should not depend on daily cost")
	}
}

func TestComputeEmptyHistory(t *testing.T) {
	snap := Compute(Input{AsOf: dates.FromParts(2024, 1, 1, time.UTC)}, config.Default())
	if snap.Streak.Current != 0 || snap.Streak.Longest != 0 {
		t.Errorf("Streak = %+v", snap.Streak)
	}
	for m, s := range snap.Wellness {
		if s.Average != nil {
			t.Errorf("%s average = %v, want nil", m, *s.Average)
		}
	}
	if snap.ProfileCompletion.Percent != 0 {
		t.Errorf("ProfileCompletion = %d", snap.ProfileCompletion.Percent)
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	in := sampleInput()
	before := make([]models.CheckIn, len(in.CheckIns))
	copy(before, in.CheckIns)

	Compute(in, config.Default())
	if !reflect.DeepEqual(before, in.CheckIns) {
		t.Error("Compute reordered or modified check-ins")
	}
}

func TestComputeIgnoresCheckInsAfterAsOf(t *testing.T) {
	in := sampleInput()
	in.CheckIns = append(in.CheckIns, models.CheckIn{
		ID:      "later",
		Date:    "2024-05-20",
		Morning: &models.MorningData{Mood: models.IntPtr(1), Craving: models.IntPtr(10)},
	})

	snap := Compute(in, config.Default())
	mood := snap.Wellness[models.MetricMood]
	if mood.Average == nil || *mood.Average != 6 || mood.Samples != 5 {
		t.Errorf("mood = %+v, want average 6 from 5 samples", mood)
	}
	if snap.Streak.Current != 2 || snap.Streak.Longest != 3 {
		t.Errorf("Streak = %+v, want 2/3", snap.Streak)
	}
}
