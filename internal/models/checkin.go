package models

import "time"

// Metric names a single wellness value recorded in a check-in.
type Metric string

const (
	MetricMood       Metric = "mood"
	MetricCraving    Metric = "craving"
	MetricAnxiety    Metric = "anxiety"
	MetricSleep      Metric = "sleep"
	MetricOverallDay Metric = "overallDay"
)

// AllMetrics lists every wellness metric in display order.
var AllMetrics = []Metric{MetricMood, MetricCraving, MetricAnxiety, MetricSleep, MetricOverallDay}

// ParseMetric resolves a metric name, returning false for unknown names.
func ParseMetric(s string) (Metric, bool) {
	for _, m := range AllMetrics {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// LowerIsBetter reports whether a decrease in the metric is an improvement.
func (m Metric) LowerIsBetter() bool {
	return m == MetricCraving || m == MetricAnxiety
}

// MorningData holds the morning check-in ratings (0-10). A nil field was not recorded.
type MorningData struct {
	Mood    *int `json:"mood,omitempty"`
	Craving *int `json:"craving,omitempty"`
	Anxiety *int `json:"anxiety,omitempty"`
	Sleep   *int `json:"sleep,omitempty"`
}

// EveningData holds the evening reflection.
type EveningData struct {
	OverallDay   *int   `json:"overall_day,omitempty"`
	Challenges   string `json:"challenges,omitempty"`
	Gratitude    string `json:"gratitude,omitempty"`
	TomorrowGoal string `json:"tomorrow_goal,omitempty"`
}

// CheckIn is the record for a single calendar day. There is at most one per date.
type CheckIn struct {
	ID        string       `json:"id"`
	Date      string       `json:"date"` // YYYY-MM-DD format
	Morning   *MorningData `json:"morning,omitempty"`
	Evening   *EveningData `json:"evening,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Value returns the recorded value for m, or false when it was not recorded.
func (c CheckIn) Value(m Metric) (int, bool) {
	var p *int
	switch m {
	case MetricMood, MetricCraving, MetricAnxiety, MetricSleep:
		if c.Morning == nil {
			return 0, false
		}
		switch m {
		case MetricMood:
			p = c.Morning.Mood
		case MetricCraving:
			p = c.Morning.Craving
		case MetricAnxiety:
			p = c.Morning.Anxiety
		case MetricSleep:
			p = c.Morning.Sleep
		}
	case MetricOverallDay:
		if c.Evening == nil {
			return 0, false
		}
		p = c.Evening.OverallDay
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// HasMorning reports whether any morning value was submitted.
func (c CheckIn) HasMorning() bool {
	return c.Morning != nil
}

// HasEvening reports whether the evening reflection was submitted.
func (c CheckIn) HasEvening() bool {
	return c.Evening != nil
}

// Merge overlays the recorded fields of other onto c, keeping c's identity.
// Values are merged field by field: a later entry with only a craving keeps
// the mood recorded earlier that day, and an evening entry keeps the morning.
func (c CheckIn) Merge(other CheckIn) CheckIn {
	if other.Morning != nil {
		c.Morning = c.Morning.merge(other.Morning)
	}
	if other.Evening != nil {
		c.Evening = c.Evening.merge(other.Evening)
	}
	if other.UpdatedAt.After(c.UpdatedAt) {
		c.UpdatedAt = other.UpdatedAt
	}
	return c
}

func (m *MorningData) merge(other *MorningData) *MorningData {
	out := MorningData{}
	if m != nil {
		out = *m
	}
	out.Mood = overlay(out.Mood, other.Mood)
	out.Craving = overlay(out.Craving, other.Craving)
	out.Anxiety = overlay(out.Anxiety, other.Anxiety)
	out.Sleep = overlay(out.Sleep, other.Sleep)
	return &out
}

func (e *EveningData) merge(other *EveningData) *EveningData {
	out := EveningData{}
	if e != nil {
		out = *e
	}
	out.OverallDay = overlay(out.OverallDay, other.OverallDay)
	if other.Challenges != "" {
		out.Challenges = other.Challenges
	}
	if other.Gratitude != "" {
		out.Gratitude = other.Gratitude
	}
	if other.TomorrowGoal != "" {
		out.TomorrowGoal = other.TomorrowGoal
	}
	return &out
}

func overlay(old, v *int) *int {
	if v != nil {
		return v
	}
	return old
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
