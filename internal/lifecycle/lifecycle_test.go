package lifecycle

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/healthpath/portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func float(v float64) *float64 { return &v }

func date(s string) *model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestDerive_Ratio(t *testing.T) {
	tests := []struct {
		name    string
		target  *float64
		current float64
		want    *float64
	}{
		{name: "no target", target: nil, current: 5, want: nil},
		{name: "zero target", target: float(0), current: 5, want: nil},
		{name: "negative target", target: float(-10), current: 5, want: nil},
		{name: "partial", target: float(10), current: 4, want: float(40)},
		{name: "exact", target: float(10), current: 10, want: float(100)},
		{name: "over target clamps", target: float(10), current: 12, want: float(100)},
		{name: "negative current clamps", target: float(10), current: -3, want: float(0)},
		{name: "fractional", target: float(8), current: 1, want: float(12.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := model.HealthGoal{
				TargetValue:  tt.target,
				CurrentValue: tt.current,
				Status:       model.GoalStatusActive,
			}

			view := Derive(goal, now)

			if tt.want == nil {
				assert.Nil(t, view.Ratio)
				return
			}
			require.NotNil(t, view.Ratio)
			assert.InDelta(t, *tt.want, *view.Ratio, 1e-9)
		})
	}
}

func TestDerive_RatioAlwaysInRange(t *testing.T) {
	targets := []float64{0.001, 1, 3, 10, 250, 1e9}
	currents := []float64{-1e9, -1, 0, 0.5, 1, 7, 10, 1e12}

	for _, target := range targets {
		for _, current := range currents {
			goal := model.HealthGoal{TargetValue: float(target), CurrentValue: current, Status: model.GoalStatusActive}
			view := Derive(goal, now)
			require.NotNil(t, view.Ratio)
			assert.GreaterOrEqual(t, *view.Ratio, 0.0)
			assert.LessOrEqual(t, *view.Ratio, 100.0)
		}
	}
}

func TestDerive_Overdue(t *testing.T) {
	tests := []struct {
		name    string
		date    *model.Date
		status  model.GoalStatus
		overdue bool
	}{
		{name: "no date", date: nil, status: model.GoalStatusActive, overdue: false},
		{name: "past date active", date: date("2026-03-01"), status: model.GoalStatusActive, overdue: true},
		{name: "future date active", date: date("2026-04-01"), status: model.GoalStatusActive, overdue: false},
		{name: "past date completed", date: date("2020-01-01"), status: model.GoalStatusCompleted, overdue: false},
		{name: "past date abandoned", date: date("2026-03-01"), status: model.GoalStatusAbandoned, overdue: true},
		{name: "today after midnight", date: date("2026-03-10"), status: model.GoalStatusActive, overdue: true},
		{name: "tomorrow", date: date("2026-03-11"), status: model.GoalStatusActive, overdue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := model.HealthGoal{TargetDate: tt.date, Status: tt.status}
			assert.Equal(t, tt.overdue, Derive(goal, now).IsOverdue)
		})
	}
}

func TestDerive_Terminal(t *testing.T) {
	assert.False(t, Derive(model.HealthGoal{Status: model.GoalStatusActive}, now).IsTerminal)
	assert.True(t, Derive(model.HealthGoal{Status: model.GoalStatusCompleted}, now).IsTerminal)
	assert.True(t, Derive(model.HealthGoal{Status: model.GoalStatusAbandoned}, now).IsTerminal)
}

func TestDerive_Deterministic(t *testing.T) {
	goal := model.HealthGoal{TargetValue: float(3), CurrentValue: 1, TargetDate: date("2026-01-01"), Status: model.GoalStatusActive}
	first := Derive(goal, now)
	for range 5 {
		assert.Equal(t, first, Derive(goal, now))
	}
}

func TestApplyProgressUpdate(t *testing.T) {
	created := now.Add(-48 * time.Hour)
	goal := model.HealthGoal{
		ID:           "g1",
		TargetValue:  float(10),
		CurrentValue: 4,
		TargetDate:   date("2026-05-01"),
		Status:       model.GoalStatusActive,
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	updated := ApplyProgressUpdate(goal, -7.25, now)

	assert.Equal(t, -7.25, updated.CurrentValue)
	assert.Equal(t, now, updated.UpdatedAt)
	assert.Equal(t, created, updated.CreatedAt)

	// input untouched
	assert.Equal(t, 4.0, goal.CurrentValue)
	assert.Equal(t, created, goal.UpdatedAt)

	// no shared optional fields
	*updated.TargetValue = 99
	updated.TargetDate.Day = 2
	assert.Equal(t, 10.0, *goal.TargetValue)
	assert.Equal(t, 1, goal.TargetDate.Day)
}

func TestApplyProgressUpdate_AnyStatus(t *testing.T) {
	goal := model.HealthGoal{Status: model.GoalStatusCompleted, CurrentValue: 1}
	updated := ApplyProgressUpdate(goal, 2, now)
	assert.Equal(t, 2.0, updated.CurrentValue)
	assert.Equal(t, model.GoalStatusCompleted, updated.Status)
}

func TestMarkCompleted(t *testing.T) {
	created := now.Add(-time.Hour)
	goal := model.HealthGoal{Status: model.GoalStatusActive, TargetValue: float(10), CurrentValue: 2, UpdatedAt: created}

	completed, err := MarkCompleted(goal, now)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusCompleted, completed.Status)
	assert.Equal(t, now, completed.UpdatedAt)
	assert.Equal(t, 2.0, completed.CurrentValue)
	assert.Equal(t, 10.0, *completed.TargetValue)
	assert.Equal(t, model.GoalStatusActive, goal.Status)

	later := now.Add(time.Hour)
	again, err := MarkCompleted(completed, later)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusCompleted, again.Status)
	assert.Equal(t, now, again.UpdatedAt, "repeat completion must not touch updated_at")
}

func TestMarkCompleted_Abandoned(t *testing.T) {
	goal := model.HealthGoal{Status: model.GoalStatusAbandoned, UpdatedAt: now}

	_, err := MarkCompleted(goal, now.Add(time.Hour))
	assert.True(t, errors.Is(err, ErrTerminal))
}

func TestAbandon(t *testing.T) {
	goal := model.HealthGoal{Status: model.GoalStatusActive}

	abandoned, err := Abandon(goal, now)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusAbandoned, abandoned.Status)

	_, err = Abandon(abandoned, now)
	assert.NoError(t, err)

	_, err = Abandon(model.HealthGoal{Status: model.GoalStatusCompleted}, now)
	assert.ErrorIs(t, err, ErrTerminal)
}

func TestEndToEnd(t *testing.T) {
	goal := model.HealthGoal{
		Title:        "Walk more",
		TargetValue:  float(10),
		CurrentValue: 4,
		TargetDate:   date("2025-12-31"),
		Status:       model.GoalStatusActive,
	}

	view := Derive(goal, now)
	require.NotNil(t, view.Ratio)
	assert.Equal(t, 40.0, *view.Ratio)
	assert.True(t, view.IsOverdue)

	goal = ApplyProgressUpdate(goal, 12, now)
	assert.Equal(t, 12.0, goal.CurrentValue)
	view = Derive(goal, now)
	assert.Equal(t, 100.0, *view.Ratio)

	goal, err := MarkCompleted(goal, now)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusCompleted, goal.Status)
	view = Derive(goal, now)
	assert.False(t, view.IsOverdue)
	assert.True(t, view.IsTerminal)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "10", want: 10},
		{in: " 2.5 ", want: 2.5},
		{in: "-4", want: -4},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "-Infinity", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumber(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, math.IsNaN(got))
			assert.Equal(t, tt.want, got)
		})
	}
}
