package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestProjectTotals(t *testing.T) {
	asOf := dates.FromParts(2024, 3, 15, time.UTC)

	tests := []struct {
		name      string
		start     string
		wantTotal string
		wantMonth string
		wantYear  string
	}{
		// Started before the month and year: whole periods so far.
		{name: "started last year", start: "2023-12-01", wantTotal: "1050", wantMonth: "150", wantYear: "750"},
		// Started mid-month: inclusive of the start day.
		{name: "started mid month", start: "2024-03-10", wantTotal: "50", wantMonth: "60", wantYear: "60"},
		{name: "started today", start: "2024-03-15", wantTotal: "0", wantMonth: "10", wantYear: "10"},
		{name: "started in the future", start: "2024-03-20", wantTotal: "0", wantMonth: "0", wantYear: "0"},
		{name: "started on first of month", start: "2024-03-01", wantTotal: "140", wantMonth: "150", wantYear: "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project(Input{StartDate: tt.start, DailyCost: d("10"), AsOf: asOf}, DefaultConfig())
			if !p.Applicable {
				t.Fatalf("Applicable = false (%s)", p.Reason)
			}
			assertDecimal(t, "TotalSaved", p.TotalSaved, tt.wantTotal)
			assertDecimal(t, "SavedThisMonth", p.SavedThisMonth, tt.wantMonth)
			assertDecimal(t, "SavedThisYear", p.SavedThisYear, tt.wantYear)
		})
	}
}

func TestProjectAdditivity(t *testing.T) {
	cost := d("12.37")
	start := dates.FromParts(2023, 1, 1, time.UTC)
	for i := 0; i < 500; i += 7 {
		asOf := dates.AddDays(start, i)
		p := Project(Input{StartDate: "2023-01-01", DailyCost: cost, AsOf: asOf}, DefaultConfig())
		want := cost.Mul(decimal.NewFromInt(int64(p.ElapsedDays)))
		if p.ElapsedDays != i || !p.TotalSaved.Equal(want) {
			t.Fatalf("day %d: elapsed=%d total=%s want %s", i, p.ElapsedDays, p.TotalSaved, want)
		}
	}
}

func TestProjectNotApplicable(t *testing.T) {
	asOf := dates.FromParts(2024, 3, 15, time.UTC)

	tests := []struct {
		name   string
		in     Input
		reason Reason
	}{
		{name: "zero daily cost", in: Input{StartDate: "2024-01-01", DailyCost: decimal.Zero, AsOf: asOf}, reason: ReasonNoDailyCost},
		{name: "negative daily cost", in: Input{StartDate: "2024-01-01", DailyCost: d("-3"), AsOf: asOf}, reason: ReasonNoDailyCost},
		{name: "no start date", in: Input{DailyCost: d("5"), AsOf: asOf}, reason: ReasonNoStartDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Goals = []models.SavingsGoal{{ID: "g", Name: "Trip", TargetAmount: d("100")}}
			p := Project(tt.in, DefaultConfig())
			if p.Applicable {
				t.Fatal("Applicable = true, want false")
			}
			if p.Reason != tt.reason {
				t.Errorf("Reason = %s, want %s", p.Reason, tt.reason)
			}
			if p.Relapse != nil || p.Goals != nil || p.ActiveGoal != nil {
				t.Errorf("money-derived fields populated on inapplicable projection: %+v", p)
			}
		})
	}
}

func TestRelapseCost(t *testing.T) {
	asOf := dates.FromParts(2024, 1, 31, time.UTC)
	p := Project(Input{StartDate: "2024-01-01", DailyCost: d("15"), AsOf: asOf}, DefaultConfig())

	// 30 days at 15/day
	assertDecimal(t, "WouldHaveSpent", p.Relapse.WouldHaveSpent, "450")
	assertDecimal(t, "InterestPenalty", p.Relapse.InterestPenalty, "153")
	assertDecimal(t, "HealthCostEstimate", p.Relapse.HealthCostEstimate, "120")
	assertDecimal(t, "TotalHypotheticalCost", p.Relapse.TotalHypotheticalCost, "723")
}

func TestRelapseCostConfigurable(t *testing.T) {
	asOf := dates.FromParts(2024, 1, 11, time.UTC)
	cfg := Config{InterestPenaltyMultiplier: d("0.5"), HealthCostPerDay: d("2.5")}
	p := Project(Input{StartDate: "2024-01-01", DailyCost: d("3"), AsOf: asOf}, cfg)

	assertDecimal(t, "InterestPenalty", p.Relapse.InterestPenalty, "15")
	assertDecimal(t, "HealthCostEstimate", p.Relapse.HealthCostEstimate, "25")
}

func TestDaysAway(t *testing.T) {
	tests := []struct {
		name          string
		target, saved string
		daily         string
		want          int
		wantOK        bool
	}{
		{name: "even division", target: "100", saved: "50", daily: "10", want: 5, wantOK: true},
		{name: "rounds up partial day", target: "100", saved: "50", daily: "15", want: 4, wantOK: true},
		{name: "already reached", target: "100", saved: "150", daily: "10", want: 0, wantOK: true},
		{name: "zero daily cost", target: "100", saved: "0", daily: "0", want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DaysAway(d(tt.target), d(tt.saved), d(tt.daily))
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DaysAway() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGoalProgress(t *testing.T) {
	asOf := dates.FromParts(2024, 1, 6, time.UTC)
	setAside := d("20")
	goals := MergeGoals(
		[]models.SavingsGoal{{ID: "default-1", Name: "Weekend away", TargetAmount: d("100")}},
		[]models.SavingsGoal{{ID: "custom-1", Name: "Bike", TargetAmount: d("40")}},
	)

	p := Project(Input{
		StartDate:      "2024-01-01",
		DailyCost:      d("10"),
		AsOf:           asOf,
		Goals:          goals,
		ActiveGoalID:   "default-1",
		ActualSetAside: &setAside,
	}, DefaultConfig())

	if len(p.Goals) != 2 {
		t.Fatalf("Goals = %d, want 2", len(p.Goals))
	}

	weekend := p.Goals[0]
	if !weekend.Default || !weekend.Active {
		t.Errorf("weekend goal flags: default=%v active=%v", weekend.Default, weekend.Active)
	}
	if weekend.DaysAway == nil || *weekend.DaysAway != 5 {
		t.Errorf("weekend DaysAway = %v, want 5", weekend.DaysAway)
	}
	if weekend.Percent != 50 || weekend.Reached {
		t.Errorf("weekend Percent = %d Reached = %v", weekend.Percent, weekend.Reached)
	}
	assertDecimal(t, "weekend Remaining", weekend.Remaining, "50")
	if weekend.ActualPercent == nil || *weekend.ActualPercent != 20 {
		t.Errorf("weekend ActualPercent = %v, want 20", weekend.ActualPercent)
	}

	bike := p.Goals[1]
	if bike.Default || bike.Active {
		t.Errorf("bike goal flags: default=%v active=%v", bike.Default, bike.Active)
	}
	if !bike.Reached || bike.Percent != 100 || *bike.DaysAway != 0 {
		t.Errorf("bike = %+v, want reached", bike)
	}

	if p.ActiveGoal == nil || p.ActiveGoal.ID != "default-1" {
		t.Errorf("ActiveGoal = %+v", p.ActiveGoal)
	}
}

func TestProjectDoesNotMutateGoals(t *testing.T) {
	goals := []models.SavingsGoal{{ID: "a", Name: "A", TargetAmount: d("10")}}
	MergeGoals(goals, nil)
	if goals[0].Default {
		t.Error("MergeGoals mutated its input")
	}
}
