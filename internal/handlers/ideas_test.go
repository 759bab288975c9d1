package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benvon/date-night/internal/database"
	"github.com/benvon/date-night/internal/models"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
)

func newIdeaRouter(repo *mockIdeaRepo) *mux.Router {
	r := mux.NewRouter()
	NewIdeaHandler(repo, nil).RegisterRoutes(r.PathPrefix("/api/date-night-ideas").Subrouter())
	return r
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return body
}

var errUnavailable = &database.StoreError{Op: "test", Message: "Unable to connect to the server or database", Err: &pq.Error{Code: "08006"}}

func TestGetRandomIdea(t *testing.T) {
	t.Parallel()

	idea := &models.Idea{ID: 4, Title: "Stargazing", BudgetCategory: models.BudgetFree, CreatedAt: time.Now()}

	tests := []struct {
		name         string
		path         string
		find         func(context.Context, models.BudgetCategory) (*models.Idea, bool, error)
		wantStatus   int
		wantCategory models.BudgetCategory
	}{
		{
			name:         "found with normalized category",
			path:         "/api/date-night-ideas/random/free",
			find:         func(context.Context, models.BudgetCategory) (*models.Idea, bool, error) { return idea, true, nil },
			wantStatus:   http.StatusOK,
			wantCategory: models.BudgetFree,
		},
		{
			name:         "none available",
			path:         "/api/date-night-ideas/random/Free",
			find:         func(context.Context, models.BudgetCategory) (*models.Idea, bool, error) { return nil, false, nil },
			wantStatus:   http.StatusNoContent,
			wantCategory: models.BudgetFree,
		},
		{
			name:       "invalid category",
			path:       "/api/date-night-ideas/random/Lavish",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:         "store fault",
			path:         "/api/date-night-ideas/random/EXPENSIVE",
			find:         func(context.Context, models.BudgetCategory) (*models.Idea, bool, error) { return nil, false, errUnavailable },
			wantStatus:   http.StatusInternalServerError,
			wantCategory: models.BudgetExpensive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockIdeaRepo{
				FindRandomAvailableFunc: func(ctx context.Context, category models.BudgetCategory) (*models.Idea, bool, error) {
					if category != tt.wantCategory {
						t.Errorf("category = %q, want %q", category, tt.wantCategory)
					}
					return tt.find(ctx, category)
				},
			}

			w := serve(newIdeaRouter(repo), http.MethodGet, tt.path, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}

			switch tt.wantStatus {
			case http.StatusOK:
				var got models.Idea
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if got.ID != 4 || got.Title != "Stargazing" {
					t.Errorf("idea = %+v", got)
				}
			case http.StatusNoContent:
				if w.Body.Len() != 0 {
					t.Errorf("Expected empty body, got %q", w.Body.String())
				}
			case http.StatusInternalServerError:
				body := decodeError(t, w)
				if !strings.Contains(body.Message, "Unable to connect to the server or database") {
					t.Errorf("message = %q", body.Message)
				}
			}
		})
	}
}

func TestResetIdeas(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		repo := &mockIdeaRepo{ResetFunc: func(context.Context) (int64, error) { return 3, nil }}
		w := serve(newIdeaRouter(repo), http.MethodPost, "/api/date-night-ideas/reset", "")

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var body MessageResponse
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body.Message != MessageIdeasReset {
			t.Errorf("message = %q, want %q", body.Message, MessageIdeasReset)
		}
	})

	t.Run("fault", func(t *testing.T) {
		t.Parallel()
		repo := &mockIdeaRepo{ResetFunc: func(context.Context) (int64, error) { return 0, errUnavailable }}
		w := serve(newIdeaRouter(repo), http.MethodPost, "/api/date-night-ideas/reset", "")

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d", w.Code)
		}
		if body := decodeError(t, w); !strings.HasPrefix(body.Message, "Failed to reset ideas") {
			t.Errorf("message = %q", body.Message)
		}
	})
}

func TestAddIdea(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		createErr   error
		wantStatus  int
		wantMessage string
		check       func(t *testing.T, input models.IdeaInput)
	}{
		{
			name:       "created",
			body:       `{"title":"  Cooking class ","budgetCategory":"moderate","location":"Downtown"}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, input models.IdeaInput) {
				if input.Title != "Cooking class" {
					t.Errorf("title = %q, want sanitized", input.Title)
				}
				if input.BudgetCategory != models.BudgetModerate {
					t.Errorf("budgetCategory = %q, want Moderate", input.BudgetCategory)
				}
				if input.Description != nil {
					t.Errorf("description = %q, want nil", *input.Description)
				}
				if input.Location == nil || *input.Location != "Downtown" {
					t.Errorf("location = %v, want Downtown", input.Location)
				}
			},
		},
		{
			name:        "missing title",
			body:        `{"budgetCategory":"Free"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "title is required",
		},
		{
			name:        "invalid category",
			body:        `{"title":"Picnic","budgetCategory":"Lavish"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "budgetCategory must be Free, Cheap, Moderate, or Expensive",
		},
		{
			name:        "malformed body",
			body:        `{"title":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
		{
			name:        "insert failed",
			body:        `{"title":"Picnic","budgetCategory":"Free"}`,
			createErr:   &database.StoreError{Op: "create", Message: "Failed to insert your date night idea into the database"},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to add idea: Failed to insert your date night idea into the database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockIdeaRepo{
				CreateFunc: func(_ context.Context, input models.IdeaInput) (*models.Idea, error) {
					if tt.check != nil {
						tt.check(t, input)
					}
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &models.Idea{ID: 9, Title: input.Title, BudgetCategory: input.BudgetCategory}, nil
				},
			}

			w := serve(newIdeaRouter(repo), http.MethodPost, "/api/date-night-ideas/addIdea", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus == http.StatusCreated {
				var got models.Idea
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if got.ID != 9 {
					t.Errorf("id = %d, want 9", got.ID)
				}
				return
			}
			if body := decodeError(t, w); !strings.Contains(body.Message, tt.wantMessage) {
				t.Errorf("message = %q, want it to contain %q", body.Message, tt.wantMessage)
			}
		})
	}
}

func TestAddIdea_CamelCasePayload(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 2, 14, 19, 0, 0, 0, time.UTC)
	repo := &mockIdeaRepo{
		CreateFunc: func(_ context.Context, input models.IdeaInput) (*models.Idea, error) {
			if input.Description == nil || *input.Description != "d" {
				t.Errorf("description = %v, want d", input.Description)
			}
			return &models.Idea{
				ID:             3,
				Title:          input.Title,
				Description:    input.Description,
				BudgetCategory: input.BudgetCategory,
				Location:       input.Location,
				CreatedAt:      created,
			}, nil
		},
	}

	body := `{"title":"Picnic","description":"d","budgetCategory":"Free","location":"Park"}`
	w := serve(newIdeaRouter(repo), http.MethodPost, "/api/date-night-ideas/addIdea", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var got map[string]any
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	for _, key := range []string{"budgetCategory", "createdAt", "isSuggested"} {
		if _, ok := got[key]; !ok {
			t.Errorf("response is missing %q: %v", key, got)
		}
	}
	if got["budgetCategory"] != "Free" {
		t.Errorf("budgetCategory = %v, want Free", got["budgetCategory"])
	}
	if _, ok := got["budget_category"]; ok {
		t.Error("response must not carry snake_case keys")
	}
}

func TestUpdateIdea(t *testing.T) {
	t.Parallel()

	validBody := `{"title":"Museum","budgetCategory":"Cheap"}`

	tests := []struct {
		name       string
		path       string
		body       string
		updated    bool
		updateErr  error
		wantStatus int
	}{
		{"updated", "/api/date-night-ideas/updateIdea/3", validBody, true, nil, http.StatusOK},
		{"no such id", "/api/date-night-ideas/updateIdea/99", validBody, false, nil, http.StatusNotFound},
		{"invalid id", "/api/date-night-ideas/updateIdea/abc", validBody, false, nil, http.StatusBadRequest},
		{"invalid body", "/api/date-night-ideas/updateIdea/3", `{"title":""}`, false, nil, http.StatusBadRequest},
		{"fault", "/api/date-night-ideas/updateIdea/3", validBody, false, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockIdeaRepo{
				UpdateFunc: func(_ context.Context, id int64, input models.IdeaInput) (bool, error) {
					if input.BudgetCategory != models.BudgetCheap {
						t.Errorf("budgetCategory = %q, want Cheap", input.BudgetCategory)
					}
					return tt.updated, tt.updateErr
				},
			}

			w := serve(newIdeaRouter(repo), http.MethodPut, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var body MessageResponse
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if body.Message != MessageIdeaUpdated {
					t.Errorf("message = %q, want %q", body.Message, MessageIdeaUpdated)
				}
			}
		})
	}
}

func TestDeleteIdea(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		deleted    bool
		deleteErr  error
		wantStatus int
	}{
		{"deleted", "/api/date-night-ideas/deleteIdea/3", true, nil, http.StatusOK},
		{"no such id", "/api/date-night-ideas/deleteIdea/99", false, nil, http.StatusNotFound},
		{"invalid id", "/api/date-night-ideas/deleteIdea/-1", false, nil, http.StatusBadRequest},
		{"fault", "/api/date-night-ideas/deleteIdea/3", false, errUnavailable, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockIdeaRepo{
				DeleteFunc: func(_ context.Context, id int64) (bool, error) {
					return tt.deleted, tt.deleteErr
				},
			}

			w := serve(newIdeaRouter(repo), http.MethodDelete, tt.path, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK {
				var body MessageResponse
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if body.Message != MessageIdeaDeleted {
					t.Errorf("message = %q, want %q", body.Message, MessageIdeaDeleted)
				}
			}
		})
	}
}

func TestGetAllIdeas(t *testing.T) {
	t.Parallel()

	t.Run("empty list is not null", func(t *testing.T) {
		t.Parallel()
		repo := &mockIdeaRepo{GetAllFunc: func(context.Context) ([]*models.Idea, error) { return nil, nil }}
		w := serve(newIdeaRouter(repo), http.MethodGet, "/api/date-night-ideas/allIdeas", "")

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if got := strings.TrimSpace(w.Body.String()); got != "[]" {
			t.Errorf("body = %q, want []", got)
		}
	})

	t.Run("lists ideas", func(t *testing.T) {
		t.Parallel()
		repo := &mockIdeaRepo{GetAllFunc: func(context.Context) ([]*models.Idea, error) {
			return []*models.Idea{{ID: 1, Title: "Picnic"}, {ID: 2, Title: "Concert"}}, nil
		}}
		w := serve(newIdeaRouter(repo), http.MethodGet, "/api/date-night-ideas/allIdeas", "")

		var got []models.Idea
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("fault", func(t *testing.T) {
		t.Parallel()
		repo := &mockIdeaRepo{GetAllFunc: func(context.Context) ([]*models.Idea, error) { return nil, errUnavailable }}
		w := serve(newIdeaRouter(repo), http.MethodGet, "/api/date-night-ideas/allIdeas", "")
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}
	})
}
