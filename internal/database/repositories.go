package database

import (
	"context"

	"github.com/benvon/date-night/internal/models"
)

// IdeaRepositoryInterface defines the idea repository operations used by handlers and the CLI
type IdeaRepositoryInterface interface {
	FindRandomAvailable(ctx context.Context, category models.BudgetCategory) (*models.Idea, bool, error)
	Create(ctx context.Context, input models.IdeaInput) (*models.Idea, error)
	Update(ctx context.Context, id int64, input models.IdeaInput) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Reset(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]*models.Idea, error)
}

// Ensure concrete types implement the interfaces
var (
	_ IdeaRepositoryInterface = (*IdeaRepository)(nil)
)
