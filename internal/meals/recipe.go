package meals

import (
	"errors"
	"time"

	"macromate/internal/macro"
)

// ErrProviderUnavailable is returned when the external recipe provider
// cannot be reached or answers with an error. The caller may retry the whole
// operation; nothing is partially cached.
var ErrProviderUnavailable = errors.New("recipe provider unavailable")

// IngredientLine is one ingredient occurrence inside a recipe. Lines are not
// independently identified; they are always scoped to one recipe.
type IngredientLine struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Aisle    string  `json:"aisle"`
	Image    string  `json:"image"`
	Original string  `json:"original"`

	// Provider-embedded price hints in US cents; zero when absent.
	CostCents       float64 `json:"cost_cents,omitempty"`
	PricePerServing float64 `json:"price_per_serving,omitempty"`
}

// Recipe is the canonical recipe record. Identity key is ExternalID; records
// are upserted whenever fetched from the provider and never duplicated.
// Nutrient values are per serving.
type Recipe struct {
	ExternalID     int64            `json:"external_id"`
	Title          string           `json:"title"`
	Image          string           `json:"image"`
	ReadyInMinutes int              `json:"ready_in_minutes"`
	Servings       int              `json:"servings"`
	Calories       float64          `json:"calories"`
	Proteins       float64          `json:"proteins"`
	Fats           float64          `json:"fats"`
	Carbohydrates  float64          `json:"carbohydrates"`
	Summary        string           `json:"summary"`
	Instructions   string           `json:"instructions"`
	Ingredients    []IngredientLine `json:"ingredients"`
	MealType       macro.Slot       `json:"meal_type,omitempty"`
	CreatedAt      time.Time        `json:"created_at,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at,omitempty"`
}
