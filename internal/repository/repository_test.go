package repository

import (
	"context"
	"testing"
	"time"

	"github.com/healthpath/portal/internal/db/dbtest"
	"github.com/healthpath/portal/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, database *sqlx.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "hash", Role: model.UserRolePatient}
	require.NoError(t, NewUserRepository(database).Create(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	database := dbtest.New(t)
	repo := NewUserRepository(database)
	ctx := context.Background()

	user := &model.User{Email: "ana@example.com", PasswordHash: "hash", Role: model.UserRoleProvider}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := repo.ByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, model.UserRoleProvider, byEmail.Role)

	byID, err := repo.ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", byID.Email)

	err = repo.Create(ctx, &model.User{Email: "ana@example.com", PasswordHash: "x", Role: model.UserRolePatient})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = repo.ByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), ErrUserNotFound)
}

func TestProfileRepository_Upsert(t *testing.T) {
	database := dbtest.New(t)
	repo := NewProfileRepository(database)
	ctx := context.Background()
	user := createUser(t, database, "p@example.com")

	_, err := repo.ByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	dob, err := model.ParseDate("1990-04-12")
	require.NoError(t, err)

	profile := &model.UserProfile{UserID: user.ID, FullName: "Pat Doe", DateOfBirth: &dob, BloodType: "O+"}
	require.NoError(t, repo.Upsert(ctx, profile))

	stored, err := repo.ByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pat Doe", stored.FullName)
	require.NotNil(t, stored.DateOfBirth)
	assert.Equal(t, "1990-04-12", stored.DateOfBirth.String())

	stored.FullName = "Pat Q. Doe"
	stored.DateOfBirth = nil
	stored.Allergies = "penicillin"
	require.NoError(t, repo.Upsert(ctx, stored))

	updated, err := repo.ByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pat Q. Doe", updated.FullName)
	assert.Nil(t, updated.DateOfBirth)
	assert.Equal(t, "penicillin", updated.Allergies)
	assert.Equal(t, "O+", updated.BloodType)
}

func TestGoalRepository_CRUD(t *testing.T) {
	database := dbtest.New(t)
	repo := NewGoalRepository(database)
	ctx := context.Background()
	owner := createUser(t, database, "owner@example.com")
	other := createUser(t, database, "other@example.com")

	target := 10.0
	due, err := model.ParseDate("2026-06-30")
	require.NoError(t, err)

	goal := &model.HealthGoal{
		UserID:       owner.ID,
		Title:        "Walk 10k steps",
		TargetValue:  &target,
		CurrentValue: 4,
		Unit:         "k steps",
		TargetDate:   &due,
		Status:       model.GoalStatusActive,
	}
	require.NoError(t, repo.Create(ctx, goal))
	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, goal.CreatedAt, goal.UpdatedAt)

	stored, err := repo.ByID(ctx, owner.ID, goal.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.TargetValue)
	assert.Equal(t, 10.0, *stored.TargetValue)
	assert.Equal(t, 4.0, stored.CurrentValue)
	require.NotNil(t, stored.TargetDate)
	assert.Equal(t, "2026-06-30", stored.TargetDate.String())
	assert.Equal(t, model.GoalStatusActive, stored.Status)

	_, err = repo.ByID(ctx, other.ID, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	value := 12.5
	later := goal.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, owner.ID, goal.ID, GoalPatch{CurrentValue: &value, UpdatedAt: later}))

	stored, err = repo.ByID(ctx, owner.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, stored.CurrentValue)
	assert.Equal(t, model.GoalStatusActive, stored.Status, "status untouched by a value patch")
	assert.True(t, stored.UpdatedAt.Equal(later))

	completed := model.GoalStatusCompleted
	require.NoError(t, repo.Update(ctx, owner.ID, goal.ID, GoalPatch{Status: &completed, UpdatedAt: later}))
	stored, err = repo.ByID(ctx, owner.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusCompleted, stored.Status)
	assert.Equal(t, 12.5, stored.CurrentValue, "value untouched by a status patch")

	assert.ErrorIs(t, repo.Update(ctx, owner.ID, goal.ID, GoalPatch{}), ErrEmptyPatch)
	assert.ErrorIs(t, repo.Update(ctx, other.ID, goal.ID, GoalPatch{CurrentValue: &value}), ErrGoalNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, other.ID, goal.ID), ErrGoalNotFound)
	require.NoError(t, repo.Delete(ctx, owner.ID, goal.ID))
	_, err = repo.ByID(ctx, owner.ID, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalRepository_ListNewestFirst(t *testing.T) {
	database := dbtest.New(t)
	repo := NewGoalRepository(database)
	ctx := context.Background()
	owner := createUser(t, database, "owner@example.com")
	other := createUser(t, database, "other@example.com")

	base := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		goal := &model.HealthGoal{
			UserID:    owner.ID,
			Title:     title,
			Status:    model.GoalStatusActive,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, goal))
	}
	require.NoError(t, repo.Create(ctx, &model.HealthGoal{UserID: other.ID, Title: "foreign", Status: model.GoalStatusActive}))

	goals, err := repo.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "third", goals[0].Title)
	assert.Equal(t, "second", goals[1].Title)
	assert.Equal(t, "first", goals[2].Title)
	assert.Nil(t, goals[0].TargetValue)
	assert.Nil(t, goals[0].TargetDate)

	empty, err := repo.List(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGoalRepository_CascadeOnUserDelete(t *testing.T) {
	database := dbtest.New(t)
	repo := NewGoalRepository(database)
	ctx := context.Background()
	owner := createUser(t, database, "owner@example.com")

	require.NoError(t, repo.Create(ctx, &model.HealthGoal{UserID: owner.ID, Title: "Sleep 8h", Status: model.GoalStatusActive}))
	require.NoError(t, NewUserRepository(database).Delete(ctx, owner.ID))

	goals, err := repo.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestArticleRepository(t *testing.T) {
	database := dbtest.New(t)
	reader := NewArticleRepository(database)
	writer := NewArticleWriter(database)
	ctx := context.Background()

	older := &model.HealthArticle{
		Slug: "hydration-basics", Title: "Hydration basics", Category: "nutrition",
		Content: "Drink water.", PublishedAt: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &model.HealthArticle{
		Slug: "sleep-hygiene", Title: "Sleep hygiene", Category: "sleep",
		Content: "Go to bed.", PublishedAt: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, writer.Upsert(ctx, older))
	require.NoError(t, writer.Upsert(ctx, newer))

	articles, err := reader.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "sleep-hygiene", articles[0].Slug)
	assert.Equal(t, "hydration-basics", articles[1].Slug)

	firstID := older.ID
	older.ID = ""
	older.Title = "Hydration basics, revised"
	require.NoError(t, writer.Upsert(ctx, older))
	assert.Equal(t, firstID, older.ID, "re-seeding keeps the stored id")

	byID, err := reader.ByID(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, "Hydration basics, revised", byID.Title)

	bySlug, err := reader.ByID(ctx, "sleep-hygiene")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, bySlug.ID)

	_, err = reader.ByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}
