package routes

import (
	"net/http"

	"github.com/healthpath/portal/internal/app"
	"github.com/healthpath/portal/internal/handler"
	"github.com/healthpath/portal/internal/middleware"
)

func SetupRoutes(app *app.App) (http.Handler, error) {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	account := handler.NewAccountHandler(app.AuthService, app.UserService)
	profile := handler.NewProfileHandler(app.ProfileService)
	goal := handler.NewGoalHandler(app.GoalService)
	article := handler.NewArticleHandler(app.ArticleService)
	dashboard := handler.NewDashboardHandler(app.GoalService, app.ArticleService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Check)

	// Auth (rate limited per IP)
	limiter := middleware.NewRateLimiter(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow)

	mux.HandleFunc("POST /auth/sign-up", limiter.Limit(auth.SignUp))
	mux.HandleFunc("POST /auth/sign-in", limiter.Limit(auth.SignIn))
	mux.HandleFunc("POST /auth/sign-out", auth.SignOut)
	mux.HandleFunc("GET /auth/session", auth.Session)

	// Health library
	mux.HandleFunc("GET /articles", article.List)
	mux.HandleFunc("GET /articles/categories", article.Categories)
	mux.HandleFunc("GET /articles/{id}", article.Show)
	mux.HandleFunc("GET /articles/{id}/read", article.Read)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	mux.HandleFunc("GET /app/dashboard", middleware.RequireAuth(dashboard.Show))

	// Profile
	mux.HandleFunc("GET /app/profile", middleware.RequireAuth(profile.Show))
	mux.HandleFunc("PUT /app/profile", middleware.RequireAuth(profile.Update))

	// Account
	mux.HandleFunc("PUT /app/account/password", middleware.RequireAuth(account.ChangePassword))
	mux.HandleFunc("DELETE /app/account", middleware.RequireAuth(account.DeleteAccount))

	// Goals
	mux.HandleFunc("GET /app/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("GET /app/goals/export", middleware.RequireAuth(goal.Export))
	mux.HandleFunc("POST /app/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("PATCH /app/goals/{id}/progress", middleware.RequireAuth(goal.UpdateProgress))
	mux.HandleFunc("POST /app/goals/{id}/complete", middleware.RequireAuth(goal.Complete))
	mux.HandleFunc("DELETE /app/goals/{id}", middleware.RequireAuth(goal.Delete))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	csrf, err := middleware.CSRFProtection(app.Cfg.CORSAllowedOrigins)
	if err != nil {
		return nil, err
	}

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSAllowedOrigins, false), // answers preflight before anything else
		middleware.Config(app.Cfg),
		middleware.NonceMiddleware, // before SecurityHeaders
		middleware.SecurityHeaders,
		csrf,
		middleware.AuthMiddleware(app.AuthService),
	)

	return h, nil
}
