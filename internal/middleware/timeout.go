package middleware

import (
	"encoding/json"
	"net/http"
	"time"
)

// DefaultRequestTimeout applies when no positive timeout is configured
const DefaultRequestTimeout = 30 * time.Second

// Timeout bounds handler run time. A handler that has not finished after
// timeout sees its context cancelled and the client gets a 503 with a
// JSON body. Per-request fields are left out because http.TimeoutHandler
// takes a fixed message.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	body, _ := json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}{
		Error:   http.StatusText(http.StatusServiceUnavailable),
		Message: "request timed out after " + timeout.String(),
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
