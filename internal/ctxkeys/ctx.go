package ctxkeys

import (
	"context"
	"time"

	"github.com/healthpath/portal/internal/config"
	"github.com/healthpath/portal/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey      contextKey = "user"
	ConfigKey    contextKey = "config"
	RequestIDKey contextKey = "request_id"
	ExpiresAtKey contextKey = "session_expires_at"
)

func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// SessionExpiresAt is when the token that authenticated the request expires.
func SessionExpiresAt(ctx context.Context) time.Time {
	t, _ := ctx.Value(ExpiresAtKey).(time.Time)
	return t
}

func WithSessionExpiresAt(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ExpiresAtKey, t)
}
