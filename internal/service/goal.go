package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/healthpath/portal/internal/lifecycle"
	"github.com/healthpath/portal/internal/model"
	"github.com/healthpath/portal/internal/queue"
	"github.com/healthpath/portal/internal/repository"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrGoalNotActive = errors.New("only active goals can record progress")
)

// GoalView is a stored goal plus the progress derived from it at read time.
type GoalView struct {
	model.HealthGoal
	Progress lifecycle.ProgressView `json:"progress"`
}

type GoalExport struct {
	ExportedAt string            `json:"exported_at"`
	Summary    lifecycle.Summary `json:"summary"`
	Goals      []GoalView        `json:"goals"`
}

type GoalService struct {
	repo      repository.GoalRepository
	publisher queue.Publisher
	now       Clock
}

func NewGoalService(repo repository.GoalRepository, publisher queue.Publisher) *GoalService {
	return &GoalService{
		repo:      repo,
		publisher: publisher,
		now:       utcNow,
	}
}

func (s *GoalService) view(goal model.HealthGoal) GoalView {
	return GoalView{HealthGoal: goal, Progress: lifecycle.Derive(goal, s.now())}
}

// Goals lists the user's goals newest first, each with its progress.
func (s *GoalService) Goals(ctx context.Context, userID string) ([]GoalView, error) {
	return s.GoalsWithStatus(ctx, userID, "")
}

// GoalsWithStatus is Goals narrowed to one status. An empty status keeps
// every goal.
func (s *GoalService) GoalsWithStatus(ctx context.Context, userID string, status model.GoalStatus) ([]GoalView, error) {
	goals, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, storageError("list goals", err)
	}
	if status != "" {
		goals = lifecycle.FilterByStatus(goals, status)
	}

	views := make([]GoalView, len(goals))
	for i, g := range goals {
		views[i] = s.view(g)
	}
	return views, nil
}

// Create validates the input before touching storage.
func (s *GoalService) Create(ctx context.Context, userID string, input lifecycle.NewGoalInput) (*GoalView, error) {
	goal, err := lifecycle.ValidateNewGoal(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	goal.UserID = userID
	goal.CreatedAt = now
	goal.UpdatedAt = now

	err = s.repo.Create(ctx, &goal)
	if err != nil {
		return nil, storageError("create goal", err)
	}

	slog.Info("goal created", "user_id", userID, "goal_id", goal.ID)

	v := s.view(goal)
	return &v, nil
}

func (s *GoalService) load(ctx context.Context, userID, goalID string) (*model.HealthGoal, error) {
	goal, err := s.repo.ByID(ctx, userID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, storageError("get goal", err)
	}
	return goal, nil
}

// UpdateProgress records a new current value on an active goal.
func (s *GoalService) UpdateProgress(ctx context.Context, userID, goalID string, value float64) (*GoalView, error) {
	goal, err := s.load(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if goal.Status != model.GoalStatusActive {
		return nil, fmt.Errorf("goal is %s: %w", goal.Status, ErrGoalNotActive)
	}

	updated := lifecycle.ApplyProgressUpdate(*goal, value, s.now())

	err = s.update(ctx, userID, goalID, repository.GoalPatch{
		CurrentValue: &updated.CurrentValue,
		UpdatedAt:    updated.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	v := s.view(updated)
	return &v, nil
}

// Complete marks the goal completed. Completing twice returns the stored goal
// without writing; completing an abandoned goal fails with
// lifecycle.ErrTerminal.
func (s *GoalService) Complete(ctx context.Context, userID, goalID string) (*GoalView, error) {
	goal, err := s.load(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	completed, err := lifecycle.MarkCompleted(*goal, s.now())
	if err != nil {
		return nil, err
	}

	if completed.Status == goal.Status {
		v := s.view(completed)
		return &v, nil
	}

	err = s.update(ctx, userID, goalID, repository.GoalPatch{
		Status:    &completed.Status,
		UpdatedAt: completed.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, completed)

	v := s.view(completed)
	return &v, nil
}

// Abandon is not reachable over HTTP; it exists for administrative tooling.
func (s *GoalService) Abandon(ctx context.Context, userID, goalID string) (*GoalView, error) {
	goal, err := s.load(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	abandoned, err := lifecycle.Abandon(*goal, s.now())
	if err != nil {
		return nil, err
	}

	if abandoned.Status != goal.Status {
		err = s.update(ctx, userID, goalID, repository.GoalPatch{
			Status:    &abandoned.Status,
			UpdatedAt: abandoned.UpdatedAt,
		})
		if err != nil {
			return nil, err
		}
	}

	v := s.view(abandoned)
	return &v, nil
}

func (s *GoalService) update(ctx context.Context, userID, goalID string, patch repository.GoalPatch) error {
	err := s.repo.Update(ctx, userID, goalID, patch)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return ErrGoalNotFound
	}
	if err != nil {
		return storageError("update goal", err)
	}
	return nil
}

func (s *GoalService) publishCompleted(ctx context.Context, goal model.HealthGoal) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishGoalCompleted(ctx, queue.GoalCompletedEvent{
		GoalID:       goal.ID,
		UserID:       goal.UserID,
		Title:        goal.Title,
		CurrentValue: goal.CurrentValue,
		TargetValue:  goal.TargetValue,
		Unit:         goal.Unit,
		CompletedAt:  goal.UpdatedAt,
	})
	if err != nil {
		// The goal is already stored as completed
		slog.Warn("failed to publish goal completed event", "error", err, "goal_id", goal.ID)
	}
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	err := s.repo.Delete(ctx, userID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return ErrGoalNotFound
	}
	if err != nil {
		return storageError("delete goal", err)
	}

	slog.Info("goal deleted", "user_id", userID, "goal_id", goalID)
	return nil
}

// Summary counts the user's goals for the dashboard stat cards.
func (s *GoalService) Summary(ctx context.Context, userID string) (lifecycle.Summary, error) {
	goals, err := s.repo.List(ctx, userID)
	if err != nil {
		return lifecycle.Summary{}, storageError("list goals", err)
	}
	return lifecycle.Summarize(goals, s.now()), nil
}

// Export bundles every goal of the user for download.
func (s *GoalService) Export(ctx context.Context, userID string) (*GoalExport, error) {
	goals, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, storageError("list goals", err)
	}

	now := s.now()
	export := &GoalExport{
		ExportedAt: now.Format("2006-01-02T15:04:05Z07:00"),
		Summary:    lifecycle.Summarize(goals, now),
		Goals:      make([]GoalView, len(goals)),
	}
	for i, g := range goals {
		export.Goals[i] = GoalView{HealthGoal: g, Progress: lifecycle.Derive(g, now)}
	}

	return export, nil
}

// Now is the service clock, so callers derive progress at the same instant.
func (s *GoalService) Now() time.Time {
	return s.now()
}
