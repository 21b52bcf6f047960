package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

// ParseGoalStatus returns the status named by s or an error for anything
// outside the closed set.
func ParseGoalStatus(s string) (GoalStatus, error) {
	status := GoalStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("invalid goal status %q", s)
	}
	return status, nil
}

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusAbandoned:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s GoalStatus) IsTerminal() bool {
	switch s {
	case GoalStatusCompleted, GoalStatusAbandoned:
		return true
	case GoalStatusActive:
		return false
	}
	return false
}

func (s GoalStatus) String() string {
	return string(s)
}

func (s GoalStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid goal status %q", string(s))
	}
	return []byte(s), nil
}

func (s *GoalStatus) UnmarshalText(text []byte) error {
	status, err := ParseGoalStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

func (s *GoalStatus) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	case nil:
		return fmt.Errorf("goal status is null")
	}
	return fmt.Errorf("cannot scan %T into goal status", src)
}

func (s GoalStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid goal status %q", string(s))
	}
	return string(s), nil
}

type HealthGoal struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description"`
	TargetValue  *float64   `db:"target_value" json:"target_value"`
	CurrentValue float64    `db:"current_value" json:"current_value"`
	Unit         string     `db:"unit" json:"unit"`
	TargetDate   *Date      `db:"target_date" json:"target_date"`
	Status       GoalStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// HasTarget reports whether the goal carries a usable quantitative target.
// Targets at or below zero cannot produce a progress ratio.
func (g *HealthGoal) HasTarget() bool {
	return g.TargetValue != nil && *g.TargetValue > 0
}
