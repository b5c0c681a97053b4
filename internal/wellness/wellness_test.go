package wellness

import (
	"testing"
	"time"

	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/models"
)

var asOf = dates.FromParts(2024, 6, 20, time.UTC)

func morning(date string, mood, craving int) models.CheckIn {
	return models.CheckIn{
		ID:   date,
		Date: date,
		Morning: &models.MorningData{
			Mood:    models.IntPtr(mood),
			Craving: models.IntPtr(craving),
		},
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name    string
		records []models.CheckIn
		metric  models.Metric
		want    float64
		wantOK  bool
	}{
		{name: "no records", records: nil, metric: models.MetricMood, wantOK: false},
		{
			name:    "simple mean",
			records: []models.CheckIn{morning("2024-06-01", 4, 2), morning("2024-06-02", 7, 3)},
			metric:  models.MetricMood,
			want:    5.5,
			wantOK:  true,
		},
		{
			name: "absent sub-metric is skipped not zero",
			records: []models.CheckIn{
				morning("2024-06-01", 8, 2),
				{Date: "2024-06-02", Morning: &models.MorningData{Craving: models.IntPtr(5)}},
			},
			metric: models.MetricMood,
			want:   8,
			wantOK: true,
		},
		{
			name:    "out of range values are clamped",
			records: []models.CheckIn{morning("2024-06-01", 15, 0), morning("2024-06-02", -4, 0)},
			metric:  models.MetricMood,
			want:    5,
			wantOK:  true,
		},
		{
			name:    "evening metric without evening data",
			records: []models.CheckIn{morning("2024-06-01", 5, 5)},
			metric:  models.MetricOverallDay,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Average(tt.records, tt.metric)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Average() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
			if ok && (got < 0 || got > 10) {
				t.Errorf("Average() = %v out of bounds", got)
			}
		})
	}
}

func TestAverageOrderIndependent(t *testing.T) {
	sorted := []models.CheckIn{
		morning("2024-06-01", 3, 1),
		morning("2024-06-02", 6, 2),
		morning("2024-06-03", 7, 8),
		morning("2024-06-04", 9, 4),
	}
	unsorted := []models.CheckIn{sorted[2], sorted[0], sorted[3], sorted[1]}

	a, _ := Average(sorted, models.MetricMood)
	b, _ := Average(unsorted, models.MetricMood)
	if a != b {
		t.Errorf("Average differs by order: %v vs %v", a, b)
	}

	wa := WeekOverWeek(sorted, models.MetricMood, asOf)
	wb := WeekOverWeek(unsorted, models.MetricMood, asOf)
	if (wa.Change == nil) != (wb.Change == nil) || (wa.Change != nil && *wa.Change != *wb.Change) {
		t.Errorf("WeekOverWeek differs by order")
	}
}

func TestWeekOverWeek(t *testing.T) {
	records := []models.CheckIn{
		// previous week: 2024-06-07..2024-06-13
		morning("2024-06-07", 4, 8),
		morning("2024-06-13", 6, 6),
		// current week: 2024-06-14..2024-06-20
		morning("2024-06-14", 8, 3),
		morning("2024-06-20", 6, 5),
		// outside both windows
		morning("2024-06-06", 0, 10),
		morning("2024-06-21", 0, 10),
	}

	mood := WeekOverWeek(records, models.MetricMood, asOf)
	if mood.Current == nil || *mood.Current != 7 {
		t.Fatalf("mood current = %v, want 7", mood.Current)
	}
	if mood.Previous == nil || *mood.Previous != 5 {
		t.Fatalf("mood previous = %v, want 5", mood.Previous)
	}
	if *mood.Change != 2 || !mood.IsImprovement {
		t.Errorf("mood change = %v improvement = %v", *mood.Change, mood.IsImprovement)
	}

	craving := WeekOverWeek(records, models.MetricCraving, asOf)
	if *craving.Change != -3 || !craving.IsImprovement {
		t.Errorf("craving change = %v improvement = %v, want -3 true", *craving.Change, craving.IsImprovement)
	}
}

func TestWeekOverWeekMissingWindow(t *testing.T) {
	records := []models.CheckIn{morning("2024-06-18", 5, 5)}
	d := WeekOverWeek(records, models.MetricMood, asOf)
	if d.Current == nil || d.Previous != nil || d.Change != nil || d.IsImprovement {
		t.Errorf("WeekOverWeek() = %+v, want current only", d)
	}
}

func TestWeekOverWeekNoChangeIsNotImprovement(t *testing.T) {
	records := []models.CheckIn{morning("2024-06-10", 5, 5), morning("2024-06-19", 5, 5)}
	for _, m := range []models.Metric{models.MetricMood, models.MetricCraving} {
		d := WeekOverWeek(records, m, asOf)
		if d.Change == nil || *d.Change != 0 || d.IsImprovement {
			t.Errorf("%s: %+v", m, d)
		}
	}
}

func TestMissedCount(t *testing.T) {
	records := []models.CheckIn{
		morning("2024-06-20", 5, 5),
		morning("2024-06-19", 5, 5),
		morning("2024-06-19", 6, 6), // duplicate date counts once
		{Date: "2024-06-18", Morning: &models.MorningData{Mood: models.IntPtr(4)}},
		morning("2024-05-01", 5, 5), // outside the window
		morning("2024-06-25", 5, 5), // after asOf
		{Date: "not-a-date", Morning: &models.MorningData{Mood: models.IntPtr(4)}},
	}

	tests := []struct {
		metric models.Metric
		window int
		want   int
	}{
		{metric: models.MetricMood, window: 31, want: 28},
		{metric: models.MetricCraving, window: 31, want: 29},
		{metric: models.MetricSleep, window: 31, want: 31},
		{metric: models.MetricMood, window: 2, want: 0},
		{metric: models.MetricMood, window: 0, want: 0},
	}

	for _, tt := range tests {
		got := MissedCount(records, tt.metric, asOf, tt.window)
		if got != tt.want {
			t.Errorf("MissedCount(%s, %d) = %d, want %d", tt.metric, tt.window, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	records := []models.CheckIn{
		morning("2024-06-20", 6, 2),
		{Date: "2024-06-19", Evening: &models.EveningData{OverallDay: models.IntPtr(9)}},
	}

	got := Summarize(records, asOf, 31)
	if len(got) != len(models.AllMetrics) {
		t.Fatalf("Summarize returned %d metrics", len(got))
	}
	if s := got[models.MetricMood]; s.Average == nil || *s.Average != 6 || s.Samples != 1 || s.Missed != 30 {
		t.Errorf("mood summary = %+v", s)
	}
	if s := got[models.MetricOverallDay]; s.Average == nil || *s.Average != 9 {
		t.Errorf("overallDay summary = %+v", s)
	}
	if s := got[models.MetricAnxiety]; s.Average != nil || s.Samples != 0 || s.Missed != 31 {
		t.Errorf("anxiety summary = %+v", s)
	}
}

func TestSummarizeIgnoresLaterAndUndatedRecords(t *testing.T) {
	records := []models.CheckIn{
		morning("2024-06-19", 2, 8),
		morning("2024-06-25", 10, 0),
		morning("garbage", 10, 0),
	}

	got := Summarize(records, asOf, 31)
	s := got[models.MetricMood]
	if s.Average == nil || *s.Average != 2 || s.Samples != 1 {
		t.Errorf("mood summary = %+v, want average 2 from 1 sample", s)
	}
	if s.Week.Current == nil || *s.Week.Current != 2 {
		t.Errorf("mood week = %+v", s.Week)
	}
	if s := got[models.MetricCraving]; s.Average == nil || *s.Average != 8 || s.Samples != 1 {
		t.Errorf("craving summary = %+v, want average 8 from 1 sample", s)
	}
}

func TestDoesNotMutateInput(t *testing.T) {
	records := []models.CheckIn{morning("2024-06-20", 1, 1), morning("2024-06-01", 2, 2)}
	Summarize(records, asOf, 31)
	if records[0].Date != "2024-06-20" || records[1].Date != "2024-06-01" {
		t.Error("input slice was reordered")
	}
}
