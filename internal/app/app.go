package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/healthpath/portal/internal/cache"
	"github.com/healthpath/portal/internal/config"
	"github.com/healthpath/portal/internal/db"
	"github.com/healthpath/portal/internal/queue"
	"github.com/healthpath/portal/internal/repository"
	"github.com/healthpath/portal/internal/service"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// App owns every long-lived client. Nothing here is global; Close releases
// them in reverse order of creation.
type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	Redis          *redis.Client
	Publisher      queue.Publisher
	AuthService    *service.AuthService
	UserService    *service.UserService
	ProfileService *service.ProfileService
	EmailService   *service.EmailService
	GoalService    *service.GoalService
	ArticleService *service.ArticleService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return build(ctx, cfg, database), nil
}

func build(ctx context.Context, cfg *config.Config, database *sqlx.DB) *App {
	a := &App{Cfg: cfg, DB: database}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	articleRepository := repository.NewArticleRepository(database)

	// Optional infrastructure: both degrade to in-process fallbacks
	var articleCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		a.Redis = cache.NewRedisClient(ctx, cfg.RedisURL)
		if a.Redis != nil {
			articleCache = cache.NewRedis(a.Redis, cfg.CachePrefix)
			slog.Info("article cache enabled", "ttl", cfg.CacheTTL)
		}
	}
	a.Publisher = queue.New(cfg.AMQPURL)

	// Services
	a.EmailService = service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	a.AuthService = service.NewAuthService(
		userRepository,
		a.EmailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	a.UserService = service.NewUserService(userRepository, profileRepository, a.EmailService)
	a.ProfileService = service.NewProfileService(profileRepository)
	a.GoalService = service.NewGoalService(goalRepository, a.Publisher)
	a.ArticleService = service.NewArticleService(articleRepository, articleCache, cfg.CacheTTL)

	return a
}

func (a *App) Close() error {
	var errs []error

	if a.Publisher != nil {
		errs = append(errs, a.Publisher.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}

	return errors.Join(errs...)
}
