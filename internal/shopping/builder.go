package shopping

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"macromate/internal/macro"
	"macromate/internal/meals"
	"macromate/internal/pricing"
)

// RecipeSource supplies full recipe detail (ingredients with aisle and
// pricing data) for a recipe external id.
type RecipeSource interface {
	FullRecipe(ctx context.Context, externalID int64) (*meals.Recipe, error)
}

// CostEstimator resolves one ingredient line to an estimated cost.
type CostEstimator interface {
	Estimate(ctx context.Context, ing pricing.Ingredient) float64
}

// Builder turns a range of meal-plan selections into a consolidated,
// cost-estimated shopping list.
type Builder struct {
	recipes   RecipeSource
	estimator CostEstimator
	logger    *zap.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(recipes RecipeSource, estimator CostEstimator, logger *zap.Logger) *Builder {
	return &Builder{recipes: recipes, estimator: estimator, logger: logger}
}

// recipeEntry tracks one distinct recipe and the slot it was first selected
// for.
type recipeEntry struct {
	recipe *meals.Recipe
	slot   macro.Slot
}

// Build creates the shopping list for the given plans. It fails with
// ErrNoSelections when no plan in the range has a non-empty slot. A recipe
// whose detail fetch fails is skipped and logged; a malformed ingredient
// line (no name, no amount) contributes zero cost and zero amount rather
// than aborting the list.
func (b *Builder) Build(ctx context.Context, accountID string, start, end time.Time, plans []meals.MealPlan) (*ShoppingList, error) {
	// Collect distinct recipes in first-seen order; a recipe used on three
	// different days is fetched and expanded once.
	var (
		order   []int64
		details = make(map[int64]recipeEntry)
	)
	selected := false
	for _, plan := range plans {
		for _, sel := range plan.Selections() {
			selected = true
			if _, ok := details[sel.RecipeID]; ok {
				continue
			}
			rec, err := b.recipes.FullRecipe(ctx, sel.RecipeID)
			if err != nil {
				b.logger.Warn("skipping recipe without detail",
					zap.Int64("recipe_id", sel.RecipeID), zap.Error(err))
				continue
			}
			details[sel.RecipeID] = recipeEntry{recipe: rec, slot: sel.Slot}
			order = append(order, sel.RecipeID)
		}
	}

	if !selected {
		return nil, ErrNoSelections
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("no recipe details available for range: %w", meals.ErrProviderUnavailable)
	}

	var (
		keyOrder     []string
		consolidated = make(map[string]*Item)
		breakdown    = make(map[string]RecipeBreakdown)
	)

	for _, id := range order {
		entry := details[id]
		rec := entry.recipe
		servings := rec.Servings

		var (
			recipeCost  float64
			ingredients []IngredientCost
		)

		for _, line := range rec.Ingredients {
			cost := b.estimator.Estimate(ctx, pricing.Ingredient{
				Name:            line.Name,
				Amount:          line.Amount,
				Unit:            line.Unit,
				CostCents:       line.CostCents,
				PricePerServing: line.PricePerServing,
			})

			perServingAmount := line.Amount
			costPerServing := cost
			if servings > 0 {
				perServingAmount = line.Amount / float64(servings)
				costPerServing = cost / float64(servings)
			}

			ingredients = append(ingredients, IngredientCost{
				Name:                line.Name,
				CostPerServing:      round2(costPerServing),
				AmountPerServing:    fmt.Sprintf("%v %s", round2(perServingAmount), line.Unit),
				TotalIngredientCost: round2(cost),
				TotalAmount:         fmt.Sprintf("%v %s", line.Amount, line.Unit),
			})
			recipeCost += cost

			key := consolidationKey(line.Name, line.Unit)
			if item, ok := consolidated[key]; ok {
				// The double-count guard: a recipe that lists the same
				// name+unit twice contributes only its first line.
				if !contains(item.UsedIn, rec.Title) {
					item.Amount += line.Amount
					item.EstimatedCost += cost
					item.UsedIn = append(item.UsedIn, rec.Title)
				}
				continue
			}

			aisle := line.Aisle
			if aisle == "" {
				aisle = "Other"
			}
			consolidated[key] = &Item{
				Name:             line.Name,
				Amount:           line.Amount,
				Unit:             line.Unit,
				Aisle:            aisle,
				Image:            line.Image,
				Original:         line.Original,
				UsedIn:           []string{rec.Title},
				EstimatedCost:    cost,
				PerServingAmount: round2(perServingAmount),
				RecipeServings:   servings,
				ServingInfo:      fmt.Sprintf("%v %s per serving", round2(perServingAmount), line.Unit),
			}
			keyOrder = append(keyOrder, key)
		}

		costPerServing := recipeCost
		if servings > 0 {
			costPerServing = recipeCost / float64(servings)
		}
		breakdown[rec.Title] = RecipeBreakdown{
			CostPerServing:  round2(costPerServing),
			TotalServings:   servings,
			TotalRecipeCost: round2(recipeCost),
			MealType:        entry.slot,
			Ingredients:     ingredients,
		}
	}

	// Finalize: round for display, sum totals, group by aisle.
	var (
		items     []Item
		totalCost float64
		aisles    = make(map[string][]Item)
	)
	for _, key := range keyOrder {
		item := consolidated[key]
		item.Amount = round2(item.Amount)
		item.EstimatedCost = round2(item.EstimatedCost)

		items = append(items, *item)
		totalCost += item.EstimatedCost
		aisles[item.Aisle] = append(aisles[item.Aisle], *item)
	}

	// Fold recipe breakdowns into per-slot summaries, in selection order so
	// regeneration yields identical output.
	summary := make(map[string]SlotSummary)
	seenTitles := make(map[string]bool)
	for _, id := range order {
		title := details[id].recipe.Title
		if seenTitles[title] {
			continue
		}
		seenTitles[title] = true

		bd := breakdown[title]
		slot := string(bd.MealType)
		s := summary[slot]
		s.TotalCost += bd.TotalRecipeCost
		s.Recipes = append(s.Recipes, title)
		summary[slot] = s
	}
	for slot, s := range summary {
		s.TotalCost = round2(s.TotalCost)
		summary[slot] = s
	}

	return &ShoppingList{
		AccountID:       accountID,
		StartDate:       start,
		EndDate:         end,
		Items:           items,
		Aisles:          aisles,
		TotalCost:       round2(totalCost),
		TotalItems:      len(items),
		MealBreakdown:   breakdown,
		MealTypeSummary: summary,
	}, nil
}

// consolidationKey merges lines across recipes: lower-cased, trimmed
// name + unit.
func consolidationKey(name, unit string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "_" + strings.ToLower(strings.TrimSpace(unit))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
