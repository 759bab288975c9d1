package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/benvon/date-night/internal/database"
)

const maxErrorMessageLength = 200

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// MessageResponse is the body of confirmation responses
type MessageResponse struct {
	Message string `json:"message"`
}

// respondJSON sends data as the JSON response body
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondMessage sends a {"message": ...} confirmation
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Message: message})
}

// sanitizeErrorMessage bounds error messages sent to clients. Titles echoed
// in fault messages may be multibyte, so the cut lands on a rune boundary.
func sanitizeErrorMessage(message string) string {
	if len(message) <= maxErrorMessageLength {
		return message
	}
	cut := maxErrorMessageLength
	for cut > 0 && !utf8.RuneStart(message[cut]) {
		cut--
	}
	return message[:cut] + "..."
}

// MethodNotAllowed answers requests whose path matched a route registered
// for other methods
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for %s", r.Method, r.URL.Path))
}

// NotFound answers requests that matched no route
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSONError(w, http.StatusNotFound, "Not Found", "No route for "+r.URL.Path)
}

// respondJSONError sends an error JSON response with sanitized error messages
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	respondJSON(w, status, ErrorResponse{
		Success:   false,
		Error:     errorType,
		Message:   sanitizeErrorMessage(message),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// decodeJSON decodes a single JSON object from the request body and
// writes the error response itself when decoding fails
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
		case errors.Is(err, io.EOF):
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Request body is required")
		default:
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		}
		return false
	}
	if decoder.More() {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Request body must contain a single JSON object")
		return false
	}
	return true
}

// faultMessage prefixes the client-safe part of a repository error
func faultMessage(prefix string, err error) string {
	var storeErr *database.StoreError
	if errors.As(err, &storeErr) && storeErr.Message != "" {
		return prefix + ": " + storeErr.Message
	}
	return prefix
}
