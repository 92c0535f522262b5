package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Repository handles persistence of shopping lists.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save upserts the list keyed by (account, start, end). Regenerating for the
// same triple overwrites the derived fields in place and keeps the
// completion state; it never creates a duplicate row. The stored row id is
// written back to list.ID.
func (r *Repository) Save(ctx context.Context, list *ShoppingList) error {
	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	aislesJSON, err := json.Marshal(list.Aisles)
	if err != nil {
		return fmt.Errorf("failed to marshal aisles: %w", err)
	}
	breakdownJSON, err := json.Marshal(list.MealBreakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal meal breakdown: %w", err)
	}
	summaryJSON, err := json.Marshal(list.MealTypeSummary)
	if err != nil {
		return fmt.Errorf("failed to marshal meal type summary: %w", err)
	}

	now := time.Now().UTC()

	const q = `
		INSERT INTO shopping_lists (
			account_id, start_date, end_date,
			items, aisles, total_cost, total_items,
			meal_breakdown, meal_type_summary,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id, start_date, end_date) DO UPDATE SET
			items = excluded.items,
			aisles = excluded.aisles,
			total_cost = excluded.total_cost,
			total_items = excluded.total_items,
			meal_breakdown = excluded.meal_breakdown,
			meal_type_summary = excluded.meal_type_summary,
			updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, q,
		list.AccountID, list.StartDate.Format(dateLayout), list.EndDate.Format(dateLayout),
		string(itemsJSON), string(aislesJSON), list.TotalCost, list.TotalItems,
		string(breakdownJSON), string(summaryJSON),
		now, now)
	if err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}

	const idQuery = `
		SELECT id FROM shopping_lists
		WHERE account_id = ? AND start_date = ? AND end_date = ?`

	err = r.db.QueryRowContext(ctx, idQuery,
		list.AccountID, list.StartDate.Format(dateLayout), list.EndDate.Format(dateLayout)).
		Scan(&list.ID)
	if err != nil {
		return fmt.Errorf("failed to read back shopping list id: %w", err)
	}
	return nil
}

// Get retrieves a shopping list by id, or (nil, nil) when it does not exist.
func (r *Repository) Get(ctx context.Context, id int64) (*ShoppingList, error) {
	const q = `
		SELECT id, account_id, start_date, end_date,
		       items, aisles, total_cost, total_items,
		       meal_breakdown, meal_type_summary,
		       is_completed, completed_at, created_at, updated_at
		FROM shopping_lists
		WHERE id = ?`

	var (
		list             ShoppingList
		startStr, endStr string
		itemsJSON        string
		aislesJSON       string
		breakdownJSON    string
		summaryJSON      string
		completedAt      sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&list.ID, &list.AccountID, &startStr, &endStr,
		&itemsJSON, &aislesJSON, &list.TotalCost, &list.TotalItems,
		&breakdownJSON, &summaryJSON,
		&list.Completed, &completedAt, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shopping list %d: %w", id, err)
	}

	if list.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("failed to parse start date %q: %w", startStr, err)
	}
	if list.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("failed to parse end date %q: %w", endStr, err)
	}
	if completedAt.Valid {
		list.CompletedAt = &completedAt.Time
	}

	if err := json.Unmarshal([]byte(itemsJSON), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}
	if err := json.Unmarshal([]byte(aislesJSON), &list.Aisles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal aisles: %w", err)
	}
	if err := json.Unmarshal([]byte(breakdownJSON), &list.MealBreakdown); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal breakdown: %w", err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &list.MealTypeSummary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal type summary: %w", err)
	}

	return &list, nil
}

// SetCompleted toggles the completion flag. Marking sets the completion
// timestamp; un-marking clears it.
func (r *Repository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	var completedAt interface{}
	if completed {
		completedAt = time.Now().UTC()
	}

	const q = `
		UPDATE shopping_lists
		SET is_completed = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, q, completed, completedAt, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update completion for shopping list %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check completion update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("shopping list %d not found", id)
	}
	return nil
}
