package meals

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"macromate/internal/macro"
)

// Repository is the database-backed store for canonical recipe records.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new recipe repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts a recipe or refreshes the existing record with the same
// external id.
func (r *Repository) Upsert(ctx context.Context, rec Recipe) error {
	ingredientsJSON, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}

	now := time.Now().UTC()

	const q = `
		INSERT INTO recipes (
			external_id, title, image, ready_in_minutes, servings,
			calories, proteins, fats, carbohydrates,
			summary, instructions, ingredients, meal_type,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (external_id) DO UPDATE SET
			title = excluded.title,
			image = excluded.image,
			ready_in_minutes = excluded.ready_in_minutes,
			servings = excluded.servings,
			calories = excluded.calories,
			proteins = excluded.proteins,
			fats = excluded.fats,
			carbohydrates = excluded.carbohydrates,
			summary = excluded.summary,
			instructions = excluded.instructions,
			ingredients = excluded.ingredients,
			meal_type = excluded.meal_type,
			updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, q,
		rec.ExternalID, rec.Title, rec.Image, rec.ReadyInMinutes, rec.Servings,
		rec.Calories, rec.Proteins, rec.Fats, rec.Carbohydrates,
		rec.Summary, rec.Instructions, string(ingredientsJSON), string(rec.MealType),
		now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert recipe %d: %w", rec.ExternalID, err)
	}
	return nil
}

// Get retrieves a recipe by external id, or (nil, nil) when not cached.
func (r *Repository) Get(ctx context.Context, externalID int64) (*Recipe, error) {
	const q = `
		SELECT external_id, title, image, ready_in_minutes, servings,
		       calories, proteins, fats, carbohydrates,
		       summary, instructions, ingredients, meal_type,
		       created_at, updated_at
		FROM recipes
		WHERE external_id = ?`

	var (
		rec             Recipe
		ingredientsJSON string
		mealType        string
	)
	err := r.db.QueryRowContext(ctx, q, externalID).Scan(
		&rec.ExternalID, &rec.Title, &rec.Image, &rec.ReadyInMinutes, &rec.Servings,
		&rec.Calories, &rec.Proteins, &rec.Fats, &rec.Carbohydrates,
		&rec.Summary, &rec.Instructions, &ingredientsJSON, &mealType,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe %d: %w", externalID, err)
	}

	if err := json.Unmarshal([]byte(ingredientsJSON), &rec.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingredients for recipe %d: %w", externalID, err)
	}
	rec.MealType = macro.Slot(mealType)

	return &rec, nil
}
