package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/healthpath/portal/internal/ctxkeys"
	"github.com/healthpath/portal/internal/service"
	"github.com/healthpath/portal/internal/ui"
)

// SessionResolver is the part of the auth service the middleware needs.
type SessionResolver interface {
	Session(ctx context.Context, token string) (*service.Session, error)
	ClearJWTCookie(w http.ResponseWriter)
}

// AuthMiddleware resolves the session token (cookie or bearer header) and
// adds the user to the context. Requests without a valid token continue
// anonymously.
func AuthMiddleware(auth SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, fromCookie := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := auth.Session(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrInvalidSession) {
					if fromCookie {
						auth.ClearJWTCookie(w)
					}
				} else {
					slog.Error("failed to resolve session", "error", err, "path", r.URL.Path)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), session.User)
			ctx = ctxkeys.WithSessionExpiresAt(ctx, session.ExpiresAt)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) (token string, fromCookie bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, value, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value), false
		}
	}

	cookie, err := r.Cookie(service.AuthCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}

// RequireAuth answers 401 when no user is signed in.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			ui.Error(w, r, http.StatusUnauthorized, ui.ErrorBody{
				Code:    "unauthenticated",
				Message: "Please sign in to continue.",
			})
			return
		}

		next.ServeHTTP(w, r)
	}
}
