package shopping

import (
	"errors"
	"time"

	"macromate/internal/macro"
)

// ErrNoSelections is returned when a date range contains no meal-plan
// selections to build a list from. It is a legitimate empty-result
// condition, not a system fault.
var ErrNoSelections = errors.New("no meal plans selected for date range")

// Item is one consolidated shopping-list line: the same ingredient
// (normalized name + unit) merged across every recipe that uses it.
type Item struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Aisle    string  `json:"aisle"`
	Image    string  `json:"image"`
	Original string  `json:"original"`

	// UsedIn lists contributing recipe titles. A recipe appears at most
	// once, which is what prevents a recipe listing the same ingredient
	// twice from double-adding it.
	UsedIn []string `json:"used_in"`

	EstimatedCost    float64 `json:"estimated_cost"`
	PerServingAmount float64 `json:"per_serving_amount"`
	RecipeServings   int     `json:"recipe_servings"`
	ServingInfo      string  `json:"serving_info"`
}

// IngredientCost is the per-ingredient entry of a recipe's cost breakdown.
type IngredientCost struct {
	Name                string  `json:"name"`
	CostPerServing      float64 `json:"cost_per_serving"`
	AmountPerServing    string  `json:"amount_per_serving"`
	TotalIngredientCost float64 `json:"total_ingredient_cost"`
	TotalAmount         string  `json:"total_amount"`
}

// RecipeBreakdown summarizes one recipe's cost inside a shopping list.
type RecipeBreakdown struct {
	CostPerServing  float64          `json:"cost_per_serving"`
	TotalServings   int              `json:"total_servings"`
	TotalRecipeCost float64          `json:"total_recipe_cost"`
	MealType        macro.Slot       `json:"meal_type"`
	Ingredients     []IngredientCost `json:"ingredients"`
}

// SlotSummary aggregates cost across the recipes sharing one meal slot.
type SlotSummary struct {
	TotalCost float64  `json:"total_cost"`
	Recipes   []string `json:"recipes"`
}

// ShoppingList is a consolidated, cost-estimated shopping list for a date
// range. Identity is (account, start, end); regenerating for the same triple
// overwrites the derived fields in place.
type ShoppingList struct {
	ID        int64     `json:"id"`
	AccountID string    `json:"account_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Items           []Item                     `json:"items"`
	Aisles          map[string][]Item          `json:"aisles"`
	TotalCost       float64                    `json:"total_cost"`
	TotalItems      int                        `json:"total_items"`
	MealBreakdown   map[string]RecipeBreakdown `json:"meal_breakdown"`
	MealTypeSummary map[string]SlotSummary     `json:"meal_type_summary"`

	Completed   bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
