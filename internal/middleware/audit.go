package middleware

import (
	"net/http"

	logpkg "github.com/benvon/date-night/internal/logger"
	"github.com/benvon/date-night/internal/request"
	"go.uber.org/zap"
)

// Audit records throttled clients and server-side failures. Planner
// requests carry the user in the name query parameter, which is logged
// sanitized so repeated offenders can be traced.
func Audit(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			var event string
			switch {
			case rec.statusCode == http.StatusTooManyRequests:
				event = "rate_limit_violation"
			case rec.statusCode >= http.StatusInternalServerError:
				event = "server_error_response"
			default:
				return
			}

			fields := []zap.Field{
				zap.Int("status_code", rec.statusCode),
				zap.String("request_id", request.RequestIDFromContext(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", logpkg.SanitizePath(r.URL.Path)),
				zap.String("ip", logpkg.SanitizeString(request.ClientIP(r), logpkg.MaxGeneralStringLength)),
			}
			if name := r.URL.Query().Get("name"); name != "" {
				fields = append(fields, zap.String("user", logpkg.SanitizeUserName(name)))
			}
			logger.Warn(event, fields...)
		})
	}
}
