package meals

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"macromate/internal/macro"
	"macromate/internal/spoonacular"
)

// Normalize converts one raw provider recipe into the canonical Recipe
// shape. It returns an error for recipes missing their identity fields;
// callers skip those rather than aborting the batch.
func Normalize(raw spoonacular.Recipe, slot macro.Slot) (Recipe, error) {
	if raw.ID == 0 {
		return Recipe{}, fmt.Errorf("recipe %q has no external id", raw.Title)
	}
	if raw.Title == "" {
		return Recipe{}, fmt.Errorf("recipe %d has no title", raw.ID)
	}

	nutrients := flattenNutrients(raw.Nutrition.Nutrients)

	servings := raw.Servings
	if servings <= 0 {
		servings = 1
	}

	return Recipe{
		ExternalID:     raw.ID,
		Title:          raw.Title,
		Image:          raw.Image,
		ReadyInMinutes: raw.ReadyInMinutes,
		Servings:       servings,
		Calories:       pickNutrient(nutrients, "calories", "energy", "energy (kcal)"),
		Proteins:       pickNutrient(nutrients, "protein", "proteins"),
		Fats:           pickNutrient(nutrients, "fat", "total fat", "fats"),
		Carbohydrates:  pickNutrient(nutrients, "carbohydrates", "carbs", "total carbohydrates"),
		Summary:        stripHTML(raw.Summary),
		Instructions:   raw.Instructions,
		Ingredients:    ExtractIngredients(raw),
		MealType:       slot,
	}, nil
}

// flattenNutrients converts the provider's nested nutrient list into a flat
// case-insensitive name -> amount map. [{"Calories", 350}] becomes
// {"calories": 350}.
func flattenNutrients(nutrients []spoonacular.Nutrient) map[string]float64 {
	flat := make(map[string]float64, len(nutrients))
	for _, n := range nutrients {
		flat[strings.ToLower(n.Name)] = n.Amount
	}
	return flat
}

// pickNutrient returns the first present non-zero value along the fallback
// chain, or 0 when every name misses.
func pickNutrient(flat map[string]float64, names ...string) float64 {
	for _, name := range names {
		if v, ok := flat[name]; ok && v != 0 {
			return v
		}
	}
	return 0
}

// ExtractIngredients normalizes either provider ingredient shape into
// canonical lines: the rich extendedIngredients list, or the fallback flat
// list whose entries may be plain strings or partial objects.
func ExtractIngredients(raw spoonacular.Recipe) []IngredientLine {
	if len(raw.ExtendedIngredients) > 0 {
		lines := make([]IngredientLine, 0, len(raw.ExtendedIngredients))
		for _, ing := range raw.ExtendedIngredients {
			lines = append(lines, ingredientLine(ing))
		}
		return lines
	}

	var lines []IngredientLine
	for _, entry := range raw.Ingredients {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			lines = append(lines, IngredientLine{Name: s, Original: s})
			continue
		}

		var ing spoonacular.Ingredient
		if err := json.Unmarshal(entry, &ing); err == nil {
			line := ingredientLine(ing)
			if line.Original == "" {
				line.Original = line.Name
			}
			lines = append(lines, line)
		}
		// Entries that are neither shape are dropped.
	}
	return lines
}

func ingredientLine(ing spoonacular.Ingredient) IngredientLine {
	line := IngredientLine{
		Name:            ing.Name,
		Amount:          ing.Amount,
		Unit:            ing.Unit,
		Aisle:           ing.Aisle,
		Image:           ing.Image,
		Original:        ing.Original,
		PricePerServing: ing.PricePerServing,
	}
	if ing.EstimatedCost != nil {
		line.CostCents = ing.EstimatedCost.Value
	}
	return line
}

// stripHTML removes the provider's embedded markup from summaries, leaving
// plain text. On parse failure the original string is kept.
func stripHTML(s string) string {
	if s == "" || !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
