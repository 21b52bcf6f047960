package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/healthpath/portal/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrEmptyPatch   = errors.New("goal patch changes nothing")
)

// GoalPatch lists the fields an update may change. Nil fields are left as
// stored; UpdatedAt is always written.
type GoalPatch struct {
	CurrentValue *float64
	Status       *model.GoalStatus
	UpdatedAt    time.Time
}

type GoalRepository interface {
	Create(ctx context.Context, goal *model.HealthGoal) error
	ByID(ctx context.Context, userID, goalID string) (*model.HealthGoal, error)
	List(ctx context.Context, userID string) ([]model.HealthGoal, error)
	Update(ctx context.Context, userID, goalID string, patch GoalPatch) error
	Delete(ctx context.Context, userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

const goalColumns = `id, user_id, title, description, target_value, current_value, unit, target_date, status, created_at, updated_at`

// Create inserts the goal, assigning its ID and timestamps when unset.
func (r *goalRepository) Create(ctx context.Context, goal *model.HealthGoal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}
	if goal.UpdatedAt.IsZero() {
		goal.UpdatedAt = goal.CreatedAt
	}

	query := `INSERT INTO health_goals (` + goalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		goal.TargetDate,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(ctx context.Context, userID, goalID string) (*model.HealthGoal, error) {
	goal := &model.HealthGoal{}
	query := `SELECT ` + goalColumns + ` FROM health_goals WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// List returns the user's goals, newest first.
func (r *goalRepository) List(ctx context.Context, userID string) ([]model.HealthGoal, error) {
	goals := []model.HealthGoal{}
	query := `SELECT ` + goalColumns + ` FROM health_goals WHERE user_id = $1 ORDER BY created_at DESC, id`

	err := r.db.SelectContext(ctx, &goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, userID, goalID string, patch GoalPatch) error {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.CurrentValue != nil {
		add("current_value", *patch.CurrentValue)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if len(sets) == 0 {
		return ErrEmptyPatch
	}

	updatedAt := patch.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	add("updated_at", updatedAt)

	args = append(args, goalID, userID)
	query := fmt.Sprintf(`UPDATE health_goals SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	query := `DELETE FROM health_goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
