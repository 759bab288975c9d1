package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/benvon/date-night/internal/models"
)

const ideaColumns = `id, title, description, budget_category, location, created_at, is_suggested`

// SeedSource supplies ideas per category for Seed
type SeedSource interface {
	Categories() []models.BudgetCategory
	Ideas(category models.BudgetCategory) []string
}

// IdeaRepository handles date_night_idea database operations
type IdeaRepository struct {
	db *DB
}

// NewIdeaRepository creates a new idea repository
func NewIdeaRepository(db *DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

// FindRandomAvailable picks a random unsuggested idea in the category and
// marks it suggested in a single statement. Concurrent callers skip rows
// locked by each other, so no idea is handed out twice.
func (r *IdeaRepository) FindRandomAvailable(ctx context.Context, category models.BudgetCategory) (*models.Idea, bool, error) {
	query := `
		WITH next_idea AS (
			SELECT id FROM date_night_idea
			WHERE budget_category = $1 AND is_suggested = FALSE
			ORDER BY RANDOM()
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE date_night_idea SET is_suggested = TRUE
		WHERE id IN (SELECT id FROM next_idea)
		RETURNING ` + ideaColumns

	idea, err := scanIdea(r.db.QueryRowContext(ctx, query, string(category)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapErr("find_random_available", "failed to find an available idea", err)
	}
	return idea, true, nil
}

// Create inserts a new idea and returns the stored row
func (r *IdeaRepository) Create(ctx context.Context, input models.IdeaInput) (*models.Idea, error) {
	query := `
		INSERT INTO date_night_idea (title, description, budget_category, location)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + ideaColumns

	idea, err := scanIdea(r.db.QueryRowContext(ctx, query,
		input.Title,
		nullString(input.Description),
		string(input.BudgetCategory),
		nullString(input.Location),
	))
	if err != nil {
		return nil, wrapErr("create", "Failed to insert your date night idea into the database", err)
	}
	return idea, nil
}

// Update overwrites the writable fields of an idea. It reports false when no row has the id.
func (r *IdeaRepository) Update(ctx context.Context, id int64, input models.IdeaInput) (bool, error) {
	query := `
		UPDATE date_night_idea
		SET title = $1, description = $2, budget_category = $3, location = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		input.Title,
		nullString(input.Description),
		string(input.BudgetCategory),
		nullString(input.Location),
		id,
	)
	if err != nil {
		return false, wrapErr("update", "failed to update idea", err)
	}
	return affected("update", result)
}

// Delete removes an idea. It reports false when no row has the id.
func (r *IdeaRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM date_night_idea WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, wrapErr("delete", "failed to delete idea", err)
	}
	return affected("delete", result)
}

// Reset marks every idea as not yet suggested and returns the number of rows touched
func (r *IdeaRepository) Reset(ctx context.Context) (int64, error) {
	query := `UPDATE date_night_idea SET is_suggested = FALSE`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, wrapErr("reset", "failed to reset ideas", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, wrapErr("reset", "failed to get rows affected", err)
	}
	return n, nil
}

// GetAll returns every idea ordered by id. The slice is empty, not nil, when there are none.
func (r *IdeaRepository) GetAll(ctx context.Context) ([]*models.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM date_night_idea ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr("get_all", "failed to list ideas", err)
	}
	defer rows.Close()

	ideas := make([]*models.Idea, 0)
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, wrapErr("get_all", "failed to scan idea", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("get_all", "failed to iterate ideas", err)
	}
	return ideas, nil
}

// Seed inserts every catalog idea whose title is not yet stored in its
// category. It returns the number of rows inserted.
func (r *IdeaRepository) Seed(ctx context.Context, src SeedSource) (int, error) {
	query := `
		INSERT INTO date_night_idea (title, budget_category)
		SELECT $1::text, $2::text
		WHERE NOT EXISTS (
			SELECT 1 FROM date_night_idea WHERE title = $1::text AND budget_category = $2::text
		)
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrapErr("seed", "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, category := range src.Categories() {
		for _, title := range src.Ideas(category) {
			result, err := tx.ExecContext(ctx, query, title, string(category))
			if err != nil {
				return 0, wrapErr("seed", "failed to insert catalog idea", err)
			}
			n, err := result.RowsAffected()
			if err != nil {
				return 0, wrapErr("seed", "failed to get rows affected", err)
			}
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, wrapErr("seed", "failed to commit transaction", err)
	}
	return inserted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (*models.Idea, error) {
	idea := &models.Idea{}
	var description, location sql.NullString
	var category string
	var createdAt sql.NullTime

	if err := row.Scan(
		&idea.ID,
		&idea.Title,
		&description,
		&category,
		&location,
		&createdAt,
		&idea.IsSuggested,
	); err != nil {
		return nil, err
	}

	idea.BudgetCategory = models.BudgetCategory(category)
	if description.Valid {
		idea.Description = &description.String
	}
	if location.Valid {
		idea.Location = &location.String
	}
	if createdAt.Valid {
		idea.CreatedAt = createdAt.Time
	}
	return idea, nil
}

func affected(op string, result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, wrapErr(op, "failed to get rows affected", err)
	}
	return n > 0, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
