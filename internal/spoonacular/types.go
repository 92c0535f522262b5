package spoonacular

import "encoding/json"

// Recipe is a raw recipe payload from the Spoonacular API. The same shape is
// returned (with different fields populated) by the complexSearch and the
// recipe information endpoints.
type Recipe struct {
	ID                  int64        `json:"id"`
	Title               string       `json:"title"`
	Image               string       `json:"image"`
	ReadyInMinutes      int          `json:"readyInMinutes"`
	Servings            int          `json:"servings"`
	Summary             string       `json:"summary"`
	Instructions        string       `json:"instructions"`
	PricePerServing     float64      `json:"pricePerServing"`
	Nutrition           Nutrition    `json:"nutrition"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients"`

	// Ingredients is a fallback shape some payloads carry instead of
	// extendedIngredients: a flat list of strings or partial objects.
	// Entries are kept raw and decoded per-variant during normalization.
	Ingredients []json.RawMessage `json:"ingredients"`
}

// Nutrition is the nested nutrient list attached to a recipe.
type Nutrition struct {
	Nutrients []Nutrient `json:"nutrients"`
}

// Nutrient is a single named nutrient amount, e.g. {"Calories", 350, "kcal"}.
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Ingredient is a structured ingredient entry from the rich ingredient list.
type Ingredient struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	Unit            string  `json:"unit"`
	Aisle           string  `json:"aisle"`
	Image           string  `json:"image"`
	Original        string  `json:"original"`
	PricePerServing float64 `json:"pricePerServing"`
	EstimatedCost   *Money  `json:"estimatedCost"`
}

// Money is a provider-embedded price value, expressed in the named unit
// (normally "US Cents").
type Money struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// SearchQuery holds the macro bounds and desired count for a recipe search.
type SearchQuery struct {
	MealType    string
	MinCalories float64
	MaxCalories float64
	MinProtein  float64
	MaxProtein  float64
	MinFat      float64
	MaxFat      float64
	MinCarbs    float64
	MaxCarbs    float64
	Number      int
}

type searchResponse struct {
	Results []Recipe `json:"results"`
}
