package handlers

import (
	"context"
	"net/http"

	logpkg "github.com/benvon/date-night/internal/logger"
	"github.com/benvon/date-night/internal/planner"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// allCategories is echoed as the budget of a reset without one
const allCategories = "All"

// IdeaPlanner is the per-user suggestion service behind the planner routes
type IdeaPlanner interface {
	Suggest(ctx context.Context, user, budget string) planner.Outcome
	Reset(ctx context.Context, user, budget string) planner.Outcome
}

var _ IdeaPlanner = (*planner.Planner)(nil)

// DateNightHandler serves the file-backed planner
type DateNightHandler struct {
	planner IdeaPlanner
	logger  *zap.Logger
}

// NewDateNightHandler creates a new planner handler
func NewDateNightHandler(p IdeaPlanner, logger *zap.Logger) *DateNightHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DateNightHandler{planner: p, logger: logger}
}

// DateNightResponse is returned by GET /date-night
type DateNightResponse struct {
	User   string `json:"user"`
	Budget string `json:"budget"`
	Idea   string `json:"idea"`
}

// ResetResponse is returned by POST /reset
type ResetResponse struct {
	User    string `json:"user"`
	Budget  string `json:"budget"`
	Message string `json:"message"`
}

// RegisterRoutes registers planner routes on the given router
// The router should already have the /api prefix
func (h *DateNightHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/date-night", h.GetDateNight).Methods("GET")
	r.HandleFunc("/reset", h.ResetUser).Methods("POST")
}

// GetDateNight suggests an idea the user has not seen in the requested budget.
// Every planner outcome, including an invalid or exhausted budget, is a 200
// whose idea field carries the message.
func (h *DateNightHandler) GetDateNight(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("name")
	if name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Query parameter 'name' is required")
		return
	}
	budget := query.Get("budget")

	outcome := h.planner.Suggest(r.Context(), name, budget)
	h.logger.Debug("date_night_suggested",
		zap.String("user", logpkg.SanitizeUserName(name)),
		zap.String("outcome", outcome.Kind.String()),
	)

	respondJSON(w, http.StatusOK, DateNightResponse{
		User:   name,
		Budget: budget,
		Idea:   outcome.Message,
	})
}

// ResetUser clears the user's shown ideas for one budget, or all budgets when none is given
func (h *DateNightHandler) ResetUser(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("name")
	if name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Query parameter 'name' is required")
		return
	}

	budget := query.Get("budget")
	outcome := h.planner.Reset(r.Context(), name, budget)
	h.logger.Info("date_night_reset",
		zap.String("user", logpkg.SanitizeUserName(name)),
		zap.String("outcome", outcome.Kind.String()),
	)

	echoed := budget
	if !query.Has("budget") {
		echoed = allCategories
	}
	respondJSON(w, http.StatusOK, ResetResponse{
		User:    name,
		Budget:  echoed,
		Message: outcome.Message,
	})
}
