package middleware

import (
	"net/http"
	"strings"

	"github.com/benvon/date-night/internal/request"
	"github.com/rs/cors"
)

const corsMaxAgeSeconds = 86400

// CORS creates CORS middleware from a comma-separated origin list.
// "*" or an empty list allows any origin without credentials.
func CORS(allowedOrigins string) func(http.Handler) http.Handler {
	origins := ParseOrigins(allowedOrigins)
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}

	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", request.RequestIDHeader},
		ExposedHeaders: []string{request.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         corsMaxAgeSeconds,
	}
	if allowAll {
		opts.AllowedOrigins = []string{"*"}
	} else {
		opts.AllowedOrigins = origins
		opts.AllowCredentials = true
	}

	return cors.New(opts).Handler
}

// ParseOrigins splits a comma-separated origin list, trimming blanks and duplicates
func ParseOrigins(raw string) []string {
	var origins []string
	seen := make(map[string]struct{})
	for _, origin := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		origins = append(origins, trimmed)
	}
	return origins
}
