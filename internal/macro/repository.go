package macro

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository persists macro goals to SQLite. Goal rows are append-only:
// setting new goals inserts a new row and Latest returns the most recent one.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new goal repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save appends a new goal set for the account.
func (r *Repository) Save(ctx context.Context, accountID string, goals Goals) error {
	const q = `
		INSERT INTO macro_goals (account_id, calories, proteins, fats, carbohydrates, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		accountID, goals.Calories, goals.Proteins, goals.Fats, goals.Carbohydrates, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert macro goals: %w", err)
	}
	return nil
}

// Latest returns the most recently created goal set for the account, or
// (nil, nil) when the account has never set goals.
func (r *Repository) Latest(ctx context.Context, accountID string) (*Goals, error) {
	const q = `
		SELECT calories, proteins, fats, carbohydrates
		FROM macro_goals
		WHERE account_id = ?
		ORDER BY id DESC
		LIMIT 1`

	var g Goals
	err := r.db.QueryRowContext(ctx, q, accountID).Scan(
		&g.Calories, &g.Proteins, &g.Fats, &g.Carbohydrates)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest macro goals: %w", err)
	}
	return &g, nil
}
