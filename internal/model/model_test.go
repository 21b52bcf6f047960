package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalStatus(t *testing.T) {
	tests := []struct {
		status   GoalStatus
		valid    bool
		terminal bool
	}{
		{status: GoalStatusActive, valid: true, terminal: false},
		{status: GoalStatusCompleted, valid: true, terminal: true},
		{status: GoalStatusAbandoned, valid: true, terminal: true},
		{status: "paused", valid: false, terminal: false},
		{status: "", valid: false, terminal: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestGoalStatus_JSON(t *testing.T) {
	var goal HealthGoal
	err := json.Unmarshal([]byte(`{"status":"completed"}`), &goal)
	require.NoError(t, err)
	assert.Equal(t, GoalStatusCompleted, goal.Status)

	err = json.Unmarshal([]byte(`{"status":"done"}`), &goal)
	assert.Error(t, err)

	_, err = json.Marshal(HealthGoal{Status: "bogus"})
	assert.Error(t, err)
}

func TestGoalStatus_Scan(t *testing.T) {
	var s GoalStatus
	require.NoError(t, s.Scan("abandoned"))
	assert.Equal(t, GoalStatusAbandoned, s)
	require.NoError(t, s.Scan([]byte("active")))
	assert.Equal(t, GoalStatusActive, s)
	assert.Error(t, s.Scan("archived"))
	assert.Error(t, s.Scan(nil))
	assert.Error(t, s.Scan(42))
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2026-07-04")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.July, Day: 4}, d)
	assert.Equal(t, "2026-07-04", d.String())
	assert.Equal(t, time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC), d.Time())

	assert.True(t, d.Before(time.Date(2026, time.July, 4, 0, 0, 1, 0, time.UTC)))
	assert.False(t, d.Before(time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)))

	_, err = ParseDate("07/04/2026")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due *Date `json:"due"`
	}

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2026-01-31"}`), &w))
	require.NotNil(t, w.Due)
	assert.Equal(t, 31, w.Due.Day)

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2026-01-31"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"due":null}`), &w))
	assert.Nil(t, w.Due)

	assert.Error(t, json.Unmarshal([]byte(`{"due":"soon"}`), &w))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2025-12-01"))
	assert.Equal(t, "2025-12-01", d.String())

	require.NoError(t, d.Scan([]byte("2025-12-02T00:00:00Z")))
	assert.Equal(t, "2025-12-02", d.String())

	require.NoError(t, d.Scan(time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-12-03", d.String())

	assert.Error(t, d.Scan(1))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-03", v)
}

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("provider")
	require.NoError(t, err)
	assert.Equal(t, UserRoleProvider, role)

	_, err = ParseUserRole("admin")
	assert.Error(t, err)
}

func TestHealthGoal_HasTarget(t *testing.T) {
	ten, zero := 10.0, 0.0
	assert.True(t, (&HealthGoal{TargetValue: &ten}).HasTarget())
	assert.False(t, (&HealthGoal{TargetValue: &zero}).HasTarget())
	assert.False(t, (&HealthGoal{}).HasTarget())
}
