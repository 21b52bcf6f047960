package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS lets the browser app on allowedOrigins call the API with cookies.
func CORS(allowedOrigins []string, debug bool) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           600,
		Debug:            debug,
	})
	return c.Handler
}
