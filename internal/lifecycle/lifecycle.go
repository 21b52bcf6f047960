// Package lifecycle derives goal progress and applies the goal state
// transitions. Every function is pure: the caller supplies "now" and is
// responsible for persisting the returned record.
package lifecycle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/healthpath/portal/internal/model"
)

// ErrTerminal is returned when a transition would leave a terminal state.
var ErrTerminal = errors.New("goal is in a terminal state")

type ProgressView struct {
	Ratio      *float64 `json:"ratio"`
	IsOverdue  bool     `json:"is_overdue"`
	IsTerminal bool     `json:"is_terminal"`
}

// Derive computes the display state of a goal at the instant now.
func Derive(goal model.HealthGoal, now time.Time) ProgressView {
	view := ProgressView{
		IsTerminal: goal.Status.IsTerminal(),
	}

	if goal.HasTarget() {
		ratio := goal.CurrentValue / *goal.TargetValue * 100
		ratio = math.Max(0, math.Min(ratio, 100))
		view.Ratio = &ratio
	}

	view.IsOverdue = goal.TargetDate != nil &&
		goal.TargetDate.Before(now) &&
		goal.Status != model.GoalStatusCompleted

	return view
}

// ApplyProgressUpdate returns a copy of goal with CurrentValue replaced.
//
// The status is not checked here: callers that only allow updates on active
// goals enforce that before calling. The value is stored exactly as given.
func ApplyProgressUpdate(goal model.HealthGoal, value float64, now time.Time) model.HealthGoal {
	goal.TargetValue = cloneFloat(goal.TargetValue)
	goal.TargetDate = cloneDate(goal.TargetDate)
	goal.CurrentValue = value
	goal.UpdatedAt = now
	return goal
}

// MarkCompleted moves an active goal to completed. Completing a goal that is
// already completed is a no-op and returns it unchanged. An abandoned goal
// cannot be completed.
func MarkCompleted(goal model.HealthGoal, now time.Time) (model.HealthGoal, error) {
	return transition(goal, model.GoalStatusCompleted, now)
}

// Abandon moves an active goal to abandoned, with the same rules as
// MarkCompleted.
func Abandon(goal model.HealthGoal, now time.Time) (model.HealthGoal, error) {
	return transition(goal, model.GoalStatusAbandoned, now)
}

func transition(goal model.HealthGoal, to model.GoalStatus, now time.Time) (model.HealthGoal, error) {
	goal.TargetValue = cloneFloat(goal.TargetValue)
	goal.TargetDate = cloneDate(goal.TargetDate)

	switch goal.Status {
	case to:
		return goal, nil
	case model.GoalStatusActive:
		goal.Status = to
		goal.UpdatedAt = now
		return goal, nil
	case model.GoalStatusCompleted, model.GoalStatusAbandoned:
		return goal, fmt.Errorf("cannot move %s goal to %s: %w", goal.Status, to, ErrTerminal)
	}
	return goal, fmt.Errorf("unknown goal status %q", goal.Status)
}

// ParseNumber parses s as a finite decimal number.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneDate(d *model.Date) *model.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
