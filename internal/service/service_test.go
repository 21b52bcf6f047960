package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/healthpath/portal/internal/model"
	"github.com/healthpath/portal/internal/queue"
	"github.com/healthpath/portal/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func devEmail() *EmailService {
	return NewEmailService("", "noreply@example.com", "http://localhost:8080", "HealthPath", true)
}

func seedUser(t *testing.T, database *sqlx.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "x", Role: model.UserRolePatient}
	require.NoError(t, repository.NewUserRepository(database).Create(context.Background(), user))
	return user
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.GoalCompletedEvent
	err    error
}

func (p *recordingPublisher) PublishGoalCompleted(_ context.Context, e queue.GoalCompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }
