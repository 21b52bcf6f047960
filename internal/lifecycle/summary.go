package lifecycle

import (
	"time"

	"github.com/healthpath/portal/internal/model"
)

type Summary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Abandoned int `json:"abandoned"`
	Overdue   int `json:"overdue"`
}

func Summarize(goals []model.HealthGoal, now time.Time) Summary {
	var s Summary
	for _, g := range goals {
		s.Total++
		switch g.Status {
		case model.GoalStatusActive:
			s.Active++
		case model.GoalStatusCompleted:
			s.Completed++
		case model.GoalStatusAbandoned:
			s.Abandoned++
		}
		if Derive(g, now).IsOverdue {
			s.Overdue++
		}
	}
	return s
}

// FilterByStatus keeps the order of goals.
func FilterByStatus(goals []model.HealthGoal, status model.GoalStatus) []model.HealthGoal {
	out := make([]model.HealthGoal, 0, len(goals))
	for _, g := range goals {
		if g.Status == status {
			out = append(out, g)
		}
	}
	return out
}
