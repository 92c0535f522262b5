package meals

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"macromate/internal/macro"
)

// dateLayout is how plan dates are stored; dates carry no time component.
const dateLayout = "2006-01-02"

// MealPlan is one account's recipe selections for a single day. There is at
// most one plan per (account, date); saving again replaces the selections.
type MealPlan struct {
	ID        int64     `json:"id"`
	AccountID string    `json:"account_id"`
	Date      time.Time `json:"date"`

	// Selected recipe external ids per slot; nil when the slot is empty.
	Breakfast *int64 `json:"breakfast,omitempty"`
	Lunch     *int64 `json:"lunch,omitempty"`
	Dinner    *int64 `json:"dinner,omitempty"`
}

// Selection pairs a meal slot with the selected recipe's external id.
type Selection struct {
	Slot     macro.Slot
	RecipeID int64
}

// Selections returns the plan's non-empty slots in day order.
func (p MealPlan) Selections() []Selection {
	var sel []Selection
	if p.Breakfast != nil {
		sel = append(sel, Selection{macro.SlotBreakfast, *p.Breakfast})
	}
	if p.Lunch != nil {
		sel = append(sel, Selection{macro.SlotLunch, *p.Lunch})
	}
	if p.Dinner != nil {
		sel = append(sel, Selection{macro.SlotDinner, *p.Dinner})
	}
	return sel
}

// PlanRepository persists meal-plan selections.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new meal-plan repository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Save inserts or replaces the plan for (account, date).
func (r *PlanRepository) Save(ctx context.Context, plan MealPlan) error {
	now := time.Now().UTC()

	const q = `
		INSERT INTO meal_plans (account_id, date, breakfast_id, lunch_id, dinner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id, date) DO UPDATE SET
			breakfast_id = excluded.breakfast_id,
			lunch_id = excluded.lunch_id,
			dinner_id = excluded.dinner_id,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, q,
		plan.AccountID, plan.Date.Format(dateLayout),
		plan.Breakfast, plan.Lunch, plan.Dinner,
		now, now)
	if err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}

// Get retrieves the plan for (account, date), or (nil, nil) when none
// exists.
func (r *PlanRepository) Get(ctx context.Context, accountID string, date time.Time) (*MealPlan, error) {
	const q = `
		SELECT id, account_id, date, breakfast_id, lunch_id, dinner_id
		FROM meal_plans
		WHERE account_id = ? AND date = ?`

	plan, err := scanPlan(r.db.QueryRowContext(ctx, q, accountID, date.Format(dateLayout)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return plan, nil
}

// GetRange retrieves all plans for the account between start and end,
// inclusive, ordered by date.
func (r *PlanRepository) GetRange(ctx context.Context, accountID string, start, end time.Time) ([]MealPlan, error) {
	const q = `
		SELECT id, account_id, date, breakfast_id, lunch_id, dinner_id
		FROM meal_plans
		WHERE account_id = ? AND date >= ? AND date <= ?
		ORDER BY date`

	rows, err := r.db.QueryContext(ctx, q, accountID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}
	defer rows.Close()

	var plans []MealPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlan(row rowScanner) (*MealPlan, error) {
	var (
		plan    MealPlan
		dateStr string
	)
	if err := row.Scan(&plan.ID, &plan.AccountID, &dateStr, &plan.Breakfast, &plan.Lunch, &plan.Dinner); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan date %q: %w", dateStr, err)
	}
	plan.Date = date

	return &plan, nil
}
