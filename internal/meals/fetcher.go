package meals

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"macromate/internal/macro"
	"macromate/internal/spoonacular"
)

// DefaultOptionCount is how many recipe candidates a meal-option fetch
// requests when the caller does not specify a count.
const DefaultOptionCount = 24

// Fetcher queries the recipe provider for recipes matching a slot's macro
// targets, normalizes the results and caches them as canonical records.
type Fetcher struct {
	client  spoonacular.Client
	recipes *Repository
	planner *macro.Planner
	logger  *zap.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(client spoonacular.Client, recipes *Repository, planner *macro.Planner, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		recipes: recipes,
		planner: planner,
		logger:  logger,
	}
}

// FetchMealOptions returns up to count recipe candidates for the slot whose
// macros fall inside the target range derived from goals. Returned recipes
// are upserted into the recipe store keyed by external id, so repeated
// fetches converge to one record with refreshed nutrient data. A provider
// failure surfaces as ErrProviderUnavailable with nothing partially cached;
// an individual malformed recipe is skipped and logged, never fatal.
func (f *Fetcher) FetchMealOptions(ctx context.Context, goals macro.Goals, slot macro.Slot, count int) ([]Recipe, error) {
	targets, err := f.planner.TargetRange(goals, slot)
	if err != nil {
		return nil, err
	}

	if count <= 0 {
		count = DefaultOptionCount
	}

	raw, err := f.client.SearchRecipes(ctx, spoonacular.SearchQuery{
		MealType:    string(slot),
		MinCalories: targets.Calories.Min,
		MaxCalories: targets.Calories.Max,
		MinProtein:  targets.Proteins.Min,
		MaxProtein:  targets.Proteins.Max,
		MinFat:      targets.Fats.Min,
		MaxFat:      targets.Fats.Max,
		MinCarbs:    targets.Carbohydrates.Min,
		MaxCarbs:    targets.Carbohydrates.Max,
		Number:      count,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	options := make([]Recipe, 0, len(raw))
	for _, r := range raw {
		rec, err := Normalize(r, slot)
		if err != nil {
			f.logger.Warn("skipping malformed recipe", zap.String("title", r.Title), zap.Error(err))
			continue
		}

		if err := f.recipes.Upsert(ctx, rec); err != nil {
			f.logger.Warn("failed to cache recipe", zap.String("title", rec.Title), zap.Error(err))
			continue
		}

		options = append(options, rec)
	}

	return options, nil
}

// FetchAllMealOptions fetches options for all three slots. A slot whose
// fetch fails yields an empty list for that slot rather than failing the
// whole call.
func (f *Fetcher) FetchAllMealOptions(ctx context.Context, goals macro.Goals, count int) (map[macro.Slot][]Recipe, error) {
	options := make(map[macro.Slot][]Recipe, len(macro.Slots))
	for _, slot := range macro.Slots {
		recipes, err := f.FetchMealOptions(ctx, goals, slot, count)
		if err != nil {
			f.logger.Warn("failed to fetch meal options", zap.String("slot", string(slot)), zap.Error(err))
			options[slot] = []Recipe{}
			continue
		}
		options[slot] = recipes
	}
	return options, nil
}

// FullRecipe fetches detailed recipe information (ingredients with aisle and
// pricing data) for a single recipe, used when building shopping lists.
func (f *Fetcher) FullRecipe(ctx context.Context, externalID int64) (*Recipe, error) {
	raw, err := f.client.RecipeInformation(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	rec, err := Normalize(*raw, "")
	if err != nil {
		return nil, fmt.Errorf("failed to normalize recipe %d: %w", externalID, err)
	}
	return &rec, nil
}
