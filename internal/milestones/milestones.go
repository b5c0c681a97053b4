package milestones

import (
	"math"
	"sort"

	"github.com/julianstephens/recovr/internal/models"
)

// Status is one rung of the ladder evaluated against an elapsed day count.
type Status struct {
	models.Milestone
	Achieved  bool `json:"achieved"`
	DaysUntil int  `json:"days_until"`
}

// Progress describes the next unachieved milestone.
type Progress struct {
	models.Milestone
	DaysUntil int `json:"days_until"`
	// ProgressPercent is elapsed/required, from day zero.
	ProgressPercent int `json:"progress_percent"`
	// SegmentPercent is progress from the previous achieved threshold.
	SegmentPercent int `json:"segment_percent"`
}

// Ladder is the full catalog evaluated for one elapsed day count.
// Next is nil when every milestone has been achieved.
type Ladder struct {
	Statuses []Status           `json:"statuses"`
	Achieved []models.Milestone `json:"achieved"`
	Next     *Progress          `json:"next"`
}

// Sorted returns a copy of catalog ordered by DaysRequired. Entries that share
// a threshold keep their catalog order.
func Sorted(catalog []models.Milestone) []models.Milestone {
	out := make([]models.Milestone, len(catalog))
	copy(out, catalog)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysRequired < out[j].DaysRequired
	})
	return out
}

// Evaluate marks each milestone as achieved when elapsed >= DaysRequired and
// finds the first unachieved one. Negative elapsed values are treated as zero.
func Evaluate(elapsed int, catalog []models.Milestone) Ladder {
	if elapsed < 0 {
		elapsed = 0
	}

	ladder := Ladder{
		Statuses: make([]Status, 0, len(catalog)),
		Achieved: []models.Milestone{},
	}

	previous := 0
	for _, m := range Sorted(catalog) {
		achieved := elapsed >= m.DaysRequired
		status := Status{
			Milestone: m,
			Achieved:  achieved,
			DaysUntil: max(0, m.DaysRequired-elapsed),
		}
		ladder.Statuses = append(ladder.Statuses, status)

		if achieved {
			ladder.Achieved = append(ladder.Achieved, m)
			previous = m.DaysRequired
			continue
		}
		if ladder.Next == nil {
			ladder.Next = &Progress{
				Milestone:       m,
				DaysUntil:       status.DaysUntil,
				ProgressPercent: percent(elapsed, m.DaysRequired),
				SegmentPercent:  percent(elapsed-previous, m.DaysRequired-previous),
			}
		}
	}

	return ladder
}

func percent(done, total int) int {
	if total <= 0 {
		return 100
	}
	p := int(math.Round(100 * float64(done) / float64(total)))
	return min(100, max(0, p))
}
