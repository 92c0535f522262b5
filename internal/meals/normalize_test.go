package meals

import (
	"encoding/json"
	"testing"

	"macromate/internal/macro"
	"macromate/internal/spoonacular"
)

func TestNormalize(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		raw := spoonacular.Recipe{
			ID:             100,
			Title:          "Greek Yogurt Bowl",
			Image:          "https://img.example/100.jpg",
			ReadyInMinutes: 10,
			Servings:       2,
			Summary:        "A <b>quick</b> breakfast bowl.",
			Nutrition: spoonacular.Nutrition{Nutrients: []spoonacular.Nutrient{
				{Name: "Calories", Amount: 350, Unit: "kcal"},
				{Name: "Protein", Amount: 25, Unit: "g"},
				{Name: "Fat", Amount: 12, Unit: "g"},
				{Name: "Carbohydrates", Amount: 40, Unit: "g"},
			}},
			ExtendedIngredients: []spoonacular.Ingredient{
				{Name: "greek yogurt", Amount: 1, Unit: "cup", Aisle: "Milk, Eggs, Other Dairy"},
			},
		}

		rec, err := Normalize(raw, macro.SlotBreakfast)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.ExternalID != 100 {
			t.Errorf("Expected external id 100, got %d", rec.ExternalID)
		}
		if rec.Calories != 350 || rec.Proteins != 25 || rec.Fats != 12 || rec.Carbohydrates != 40 {
			t.Errorf("Unexpected macros: %+v", rec)
		}
		if rec.Summary != "A quick breakfast bowl." {
			t.Errorf("Expected markup stripped, got %q", rec.Summary)
		}
		if rec.MealType != macro.SlotBreakfast {
			t.Errorf("Expected meal type breakfast, got %q", rec.MealType)
		}
		if len(rec.Ingredients) != 1 || rec.Ingredients[0].Aisle != "Milk, Eggs, Other Dairy" {
			t.Errorf("Unexpected ingredients: %+v", rec.Ingredients)
		}
	})

	t.Run("NutrientFallbackChain", func(t *testing.T) {
		raw := spoonacular.Recipe{
			ID:       101,
			Title:    "Energy Labels",
			Servings: 1,
			Nutrition: spoonacular.Nutrition{Nutrients: []spoonacular.Nutrient{
				{Name: "Energy", Amount: 420},
				{Name: "Protein", Amount: 0}, // present but zero, keep falling
				{Name: "Proteins", Amount: 18},
				{Name: "Total Fat", Amount: 9},
				{Name: "Carbs", Amount: 52},
			}},
		}

		rec, err := Normalize(raw, macro.SlotLunch)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Calories != 420 {
			t.Errorf("Expected calories from 'Energy', got %v", rec.Calories)
		}
		if rec.Proteins != 18 {
			t.Errorf("Expected zero value skipped in fallback chain, got %v", rec.Proteins)
		}
		if rec.Fats != 9 || rec.Carbohydrates != 52 {
			t.Errorf("Unexpected macros: fats %v carbs %v", rec.Fats, rec.Carbohydrates)
		}
	})

	t.Run("MissingNutrients", func(t *testing.T) {
		rec, err := Normalize(spoonacular.Recipe{ID: 102, Title: "Bare"}, macro.SlotDinner)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Calories != 0 || rec.Proteins != 0 {
			t.Errorf("Expected zero macros, got %+v", rec)
		}
	})

	t.Run("ZeroServingsDefaultsToOne", func(t *testing.T) {
		rec, err := Normalize(spoonacular.Recipe{ID: 103, Title: "No Servings"}, macro.SlotDinner)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Servings != 1 {
			t.Errorf("Expected servings 1, got %d", rec.Servings)
		}
	})

	t.Run("MissingID", func(t *testing.T) {
		if _, err := Normalize(spoonacular.Recipe{Title: "No ID"}, macro.SlotLunch); err == nil {
			t.Fatal("Expected error for recipe without external id")
		}
	})

	t.Run("MissingTitle", func(t *testing.T) {
		if _, err := Normalize(spoonacular.Recipe{ID: 104}, macro.SlotLunch); err == nil {
			t.Fatal("Expected error for recipe without title")
		}
	})
}

func TestExtractIngredients(t *testing.T) {
	t.Run("RichListPreferred", func(t *testing.T) {
		raw := spoonacular.Recipe{
			ExtendedIngredients: []spoonacular.Ingredient{
				{Name: "onion", Amount: 1, Unit: "piece", EstimatedCost: &spoonacular.Money{Value: 32, Unit: "US Cents"}},
			},
			Ingredients: []json.RawMessage{json.RawMessage(`"ignored flat entry"`)},
		}

		lines := ExtractIngredients(raw)
		if len(lines) != 1 {
			t.Fatalf("Expected 1 line, got %d", len(lines))
		}
		if lines[0].Name != "onion" || lines[0].CostCents != 32 {
			t.Errorf("Unexpected line: %+v", lines[0])
		}
	})

	t.Run("FlatMixedShapes", func(t *testing.T) {
		raw := spoonacular.Recipe{
			Ingredients: []json.RawMessage{
				json.RawMessage(`"2 cups flour"`),
				json.RawMessage(`{"name": "butter", "amount": 0.5, "unit": "cup"}`),
				json.RawMessage(`42`), // neither shape, dropped
			},
		}

		lines := ExtractIngredients(raw)
		if len(lines) != 2 {
			t.Fatalf("Expected 2 lines, got %d", len(lines))
		}
		if lines[0].Name != "2 cups flour" || lines[0].Original != "2 cups flour" {
			t.Errorf("Unexpected string line: %+v", lines[0])
		}
		if lines[1].Name != "butter" || lines[1].Amount != 0.5 || lines[1].Original != "butter" {
			t.Errorf("Unexpected object line: %+v", lines[1])
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if lines := ExtractIngredients(spoonacular.Recipe{}); len(lines) != 0 {
			t.Errorf("Expected no lines, got %d", len(lines))
		}
	})
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>Ready in <b>20</b> minutes.</p>", "Ready in 20 minutes."},
		{"a < b but not markup", "a < b but not markup"},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
