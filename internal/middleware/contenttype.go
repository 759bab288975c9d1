package middleware

import (
	"mime"
	"net/http"
)

// ContentType requires application/json on PUT, POST and PATCH requests
// that carry a body. The body-less reset endpoints pass through.
func ContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !writesBody(r) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Content-Type")
		if header == "" {
			respondErrorJSON(w, r, http.StatusBadRequest, "Content-Type header is required", nil)
			return
		}
		mediaType, _, err := mime.ParseMediaType(header)
		if err != nil || mediaType != "application/json" {
			respondErrorJSON(w, r, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writesBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	if r.ContentLength > 0 {
		return true
	}
	// -1 is an unknown length, as with chunked encoding
	return r.ContentLength < 0 && r.Body != nil && r.Body != http.NoBody
}
