package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets browsers on origin read the read-only endpoints. An empty origin
// allows any.
func CORS(origin string) func(next http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}
