package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/benvon/date-night/internal/database"
	logpkg "github.com/benvon/date-night/internal/logger"
	"github.com/benvon/date-night/internal/models"
	"github.com/benvon/date-night/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Confirmation messages of the idea routes
const (
	MessageIdeasReset  = "All ideas have been reset successfully"
	MessageIdeaUpdated = "Date night idea has been successfully updated"
	MessageIdeaDeleted = "Date night idea has been successfully deleted"
)

// IdeaHandler serves the database-backed idea routes
type IdeaHandler struct {
	repo   database.IdeaRepositoryInterface
	logger *zap.Logger
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(repo database.IdeaRepositoryInterface, logger *zap.Logger) *IdeaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdeaHandler{repo: repo, logger: logger}
}

// IdeaRequest is the body of addIdea and updateIdea
type IdeaRequest struct {
	Title          string  `json:"title" validate:"required,max=255"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	BudgetCategory string  `json:"budgetCategory" validate:"required,budget_category"`
	Location       *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// RegisterRoutes registers idea routes on the given router
// The router should already have the /api/date-night-ideas prefix
func (h *IdeaHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/random/{budgetCategory}", h.GetRandomIdea).Methods("GET")
	r.HandleFunc("/reset", h.ResetIdeas).Methods("POST")
	r.HandleFunc("/addIdea", h.AddIdea).Methods("POST")
	r.HandleFunc("/updateIdea/{id}", h.UpdateIdea).Methods("PUT")
	r.HandleFunc("/deleteIdea/{id}", h.DeleteIdea).Methods("DELETE")
	r.HandleFunc("/allIdeas", h.GetAllIdeas).Methods("GET")
}

// GetRandomIdea hands out an unsuggested idea and flags it. 204 means every
// idea in the category has been suggested.
func (h *IdeaHandler) GetRandomIdea(w http.ResponseWriter, r *http.Request) {
	category, err := validation.ValidateBudgetCategory(mux.Vars(r)["budgetCategory"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	idea, found, err := h.repo.FindRandomAvailable(r.Context(), category)
	if err != nil {
		h.fault(w, r, "Failed to find idea", err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(w, http.StatusOK, idea)
}

// ResetIdeas marks every idea as not yet suggested
func (h *IdeaHandler) ResetIdeas(w http.ResponseWriter, r *http.Request) {
	n, err := h.repo.Reset(r.Context())
	if err != nil {
		h.fault(w, r, "Failed to reset ideas", err)
		return
	}

	h.logger.Info("ideas_reset", zap.Int64("rows", n))
	respondMessage(w, http.StatusOK, MessageIdeasReset)
}

// AddIdea stores a new idea
func (h *IdeaHandler) AddIdea(w http.ResponseWriter, r *http.Request) {
	input, ok := h.readIdea(w, r)
	if !ok {
		return
	}

	idea, err := h.repo.Create(r.Context(), input)
	if err != nil {
		h.fault(w, r, "Failed to add idea", err)
		return
	}

	respondJSON(w, http.StatusCreated, idea)
}

// UpdateIdea overwrites an idea's fields
func (h *IdeaHandler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIdeaID(w, r)
	if !ok {
		return
	}
	input, ok := h.readIdea(w, r)
	if !ok {
		return
	}

	updated, err := h.repo.Update(r.Context(), id, input)
	if err != nil {
		h.fault(w, r, "Failed to update idea", err)
		return
	}
	if !updated {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Date night idea not found")
		return
	}

	respondMessage(w, http.StatusOK, MessageIdeaUpdated)
}

// DeleteIdea removes an idea
func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIdeaID(w, r)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.fault(w, r, "Failed to delete idea", err)
		return
	}
	if !deleted {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Date night idea not found")
		return
	}

	respondMessage(w, http.StatusOK, MessageIdeaDeleted)
}

// GetAllIdeas lists every idea
func (h *IdeaHandler) GetAllIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.fault(w, r, "Failed to list ideas", err)
		return
	}
	if ideas == nil {
		ideas = []*models.Idea{}
	}

	respondJSON(w, http.StatusOK, ideas)
}

// readIdea decodes, sanitizes and validates an idea body
func (h *IdeaHandler) readIdea(w http.ResponseWriter, r *http.Request) (models.IdeaInput, bool) {
	var req IdeaRequest
	if !decodeJSON(w, r, &req) {
		return models.IdeaInput{}, false
	}

	req.Title = validation.SanitizeText(req.Title)
	req.Description = validation.SanitizeOptional(req.Description)
	req.Location = validation.SanitizeOptional(req.Location)

	if err := validation.Validate.Struct(req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed: "+validation.Describe(err))
		return models.IdeaInput{}, false
	}

	return models.IdeaInput{
		Title:          req.Title,
		Description:    req.Description,
		BudgetCategory: models.NormalizeBudget(req.BudgetCategory),
		Location:       req.Location,
	}, true
}

func parseIdeaID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid idea ID")
		return 0, false
	}
	return id, true
}

// fault logs a repository failure and replies 500
func (h *IdeaHandler) fault(w http.ResponseWriter, r *http.Request, prefix string, err error) {
	h.logger.Error("idea_repository_error",
		zap.String("path", logpkg.SanitizePath(r.URL.Path)),
		zap.Bool("store_unavailable", errors.Is(err, database.ErrStoreUnavailable)),
		zap.String("error", logpkg.SanitizeError(err)),
	)
	respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", faultMessage(prefix, err))
}
