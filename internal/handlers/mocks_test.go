package handlers

import (
	"context"

	"github.com/benvon/date-night/internal/models"
	"github.com/benvon/date-night/internal/planner"
)

type mockPlanner struct {
	SuggestFunc func(ctx context.Context, user, budget string) planner.Outcome
	ResetFunc   func(ctx context.Context, user, budget string) planner.Outcome
}

func (m *mockPlanner) Suggest(ctx context.Context, user, budget string) planner.Outcome {
	return m.SuggestFunc(ctx, user, budget)
}

func (m *mockPlanner) Reset(ctx context.Context, user, budget string) planner.Outcome {
	return m.ResetFunc(ctx, user, budget)
}

type mockIdeaRepo struct {
	FindRandomAvailableFunc func(ctx context.Context, category models.BudgetCategory) (*models.Idea, bool, error)
	CreateFunc              func(ctx context.Context, input models.IdeaInput) (*models.Idea, error)
	UpdateFunc              func(ctx context.Context, id int64, input models.IdeaInput) (bool, error)
	DeleteFunc              func(ctx context.Context, id int64) (bool, error)
	ResetFunc               func(ctx context.Context) (int64, error)
	GetAllFunc              func(ctx context.Context) ([]*models.Idea, error)
}

func (m *mockIdeaRepo) FindRandomAvailable(ctx context.Context, category models.BudgetCategory) (*models.Idea, bool, error) {
	return m.FindRandomAvailableFunc(ctx, category)
}

func (m *mockIdeaRepo) Create(ctx context.Context, input models.IdeaInput) (*models.Idea, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockIdeaRepo) Update(ctx context.Context, id int64, input models.IdeaInput) (bool, error) {
	return m.UpdateFunc(ctx, id, input)
}

func (m *mockIdeaRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return m.DeleteFunc(ctx, id)
}

func (m *mockIdeaRepo) Reset(ctx context.Context) (int64, error) {
	return m.ResetFunc(ctx)
}

func (m *mockIdeaRepo) GetAll(ctx context.Context) ([]*models.Idea, error) {
	return m.GetAllFunc(ctx)
}
