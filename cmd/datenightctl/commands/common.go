package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/benvon/date-night/internal/config"
	"github.com/benvon/date-night/internal/database"
)

// IdeaStore is what the ideas commands need from the idea table
type IdeaStore interface {
	database.IdeaRepositoryInterface
	Seed(ctx context.Context, src database.SeedSource) (int, error)
}

var _ IdeaStore = (*database.IdeaRepository)(nil)

// openIdeaStore connects to the configured database. Tests replace it.
var openIdeaStore = func(cfg *config.Config) (IdeaStore, func() error, error) {
	if !cfg.DatabaseEnabled() {
		return nil, nil, errDatabaseRequired
	}
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return database.NewIdeaRepository(db), db.Close, nil
}

var errDatabaseRequired = errors.New("DATABASE_URL is required for this command")

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// withIdeaStore opens the idea store, runs fn and closes the store
func withIdeaStore(fn func(ctx context.Context, store IdeaStore, cfg *config.Config) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeFn, err := openIdeaStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()
	return fn(context.Background(), store, cfg)
}
