// Package queue defines the domain events the portal publishes and the
// publishers that deliver them.
package queue

import "time"

const GoalCompletedQueue = "goal.completed"

// GoalCompletedEvent is published once when a goal moves from active to
// completed. Consumers (reminder mailers, provider dashboards) get enough to
// act without reading the goals table.
type GoalCompletedEvent struct {
	GoalID       string    `json:"goal_id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	CurrentValue float64   `json:"current_value"`
	TargetValue  *float64  `json:"target_value,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	CompletedAt  time.Time `json:"completed_at"`
}
