package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	logpkg "github.com/benvon/date-night/internal/logger"
	"github.com/benvon/date-night/internal/request"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body written when middleware rejects a request
// before it reaches a handler
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	RequestID string `json:"request_id,omitempty"`
}

func newErrorResponse(r *http.Request, status int, message string) ErrorResponse {
	return ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
		RequestID: request.RequestIDFromContext(r.Context()),
	}
}

// ErrorHandler recovers handler panics and answers with a generic 500.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func ErrorHandler(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic_recovered",
					zap.Any("error", rec),
					zap.String("request_id", request.RequestIDFromContext(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", logpkg.SanitizePath(r.URL.Path)),
					zap.ByteString("stack", debug.Stack()),
				)
				respondErrorJSON(w, r, http.StatusInternalServerError, "An unexpected error occurred", logger)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// respondErrorJSON writes an ErrorResponse. logger may be nil.
func respondErrorJSON(w http.ResponseWriter, r *http.Request, status int, message string, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(newErrorResponse(r, status, message))
	if err != nil && logger != nil {
		logger.Error("failed_to_encode_error_response",
			zap.Error(err),
			zap.Int("status_code", status),
			zap.String("path", logpkg.SanitizePath(r.URL.Path)),
		)
	}
}
