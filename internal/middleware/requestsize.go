package middleware

import (
	"fmt"
	"net/http"
)

// DefaultMaxRequestSize bounds idea payloads (64KB)
const DefaultMaxRequestSize int64 = 64 << 10

// MaxRequestSize rejects bodies whose declared length exceeds maxBytes and
// caps the rest with http.MaxBytesReader, which handlers see as
// *http.MaxBytesError while decoding.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}
	tooLarge := fmt.Sprintf("Request body must not exceed %d bytes", maxBytes)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				respondErrorJSON(w, r, http.StatusRequestEntityTooLarge, tooLarge, nil)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
