package pricing

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"macromate/internal/usda"
)

// CacheTTL is how long a looked-up unit-price estimate stays valid.
const CacheTTL = 24 * time.Hour

// Items containing these markers cost nothing.
var freeMarkers = []string{"water", "ice", "air"}

// Basic seasonings are very cheap but not free: 5 cents per unit.
var cheapMarkers = []string{"salt", "pepper", "black pepper"}

// Ingredient is the pricing view of one ingredient line: its name, the
// amount the recipe calls for, the provider's free-form unit, and any
// provider-embedded price hints.
type Ingredient struct {
	Name   string
	Amount float64
	Unit   string

	// CostCents is the provider's direct price estimate in US cents per
	// unit, 0 when absent.
	CostCents float64
	// PricePerServing is the provider's serving-scaled price in US cents,
	// 0 when absent.
	PricePerServing float64
}

// Estimator resolves an ingredient line to an estimated cost by cascading
// through pricing tiers: free/cheap markers, provider-embedded prices, the
// pricing provider (cached), then the static unit-cost model. Provider
// errors fall through to the next tier rather than failing the line.
type Estimator struct {
	foods  usda.Client
	cache  Cache
	model  *UnitCostModel
	logger *zap.Logger
}

// NewEstimator creates an Estimator. foods may be nil, in which case the
// pricing-provider tier is skipped entirely.
func NewEstimator(foods usda.Client, cache Cache, model *UnitCostModel, logger *zap.Logger) *Estimator {
	return &Estimator{foods: foods, cache: cache, model: model, logger: logger}
}

// Estimate returns a non-negative estimated cost for the ingredient.
// A zero amount costs zero in every tier; malformed lines (no name, no
// amount) therefore resolve to zero rather than erroring.
func (e *Estimator) Estimate(ctx context.Context, ing Ingredient) float64 {
	name := strings.ToLower(strings.TrimSpace(ing.Name))

	if containsAny(name, freeMarkers...) {
		return 0
	}
	if containsAny(name, cheapMarkers...) {
		return 0.05 * ing.Amount
	}

	if ing.Amount == 0 {
		return 0
	}

	// Provider-embedded pricing.
	if ing.CostCents > 0 {
		cost := ing.CostCents / 100 * ing.Amount
		e.logger.Debug("using provider price", zap.String("ingredient", name), zap.Float64("cost", cost))
		return cost
	}
	if ing.PricePerServing > 0 {
		// Already serving-scaled; no further multiply by amount.
		cost := ing.PricePerServing / 100
		e.logger.Debug("using provider per-serving price", zap.String("ingredient", name), zap.Float64("cost", cost))
		return cost
	}

	// Pricing provider, gated through the cache.
	if cost, ok := e.foodPrice(ctx, name, ing.Amount, strings.ToLower(ing.Unit)); ok {
		e.logger.Debug("using food-data price", zap.String("ingredient", name), zap.Float64("cost", cost))
		return cost
	}

	// Static fallback table.
	cost := e.model.Cost(name, ing.Amount, ing.Unit)
	e.logger.Debug("using static estimation", zap.String("ingredient", name), zap.Float64("cost", cost))
	return cost
}

// foodPrice resolves the pricing-provider tier. The cache stores the unit
// price estimate, not the final line cost, so one cached value serves any
// amount or unit. A provider error or an empty match set reports no result
// so the caller falls through.
func (e *Estimator) foodPrice(ctx context.Context, name string, amount float64, unit string) (float64, bool) {
	if e.foods == nil {
		return 0, false
	}

	key := "usda_price_" + strings.ReplaceAll(name, " ", "_")
	if unitPrice, ok := e.cache.Get(key); ok {
		return packageCost(unitPrice, amount, unit, name), true
	}

	result, err := e.foods.SearchFoods(ctx, name)
	if err != nil {
		e.logger.Warn("food price lookup failed", zap.String("ingredient", name), zap.Error(err))
		return 0, false
	}
	if result == nil || len(result.Foods) == 0 {
		// No match; fall back to the static table.
		return 0, false
	}

	// Any non-empty result is treated as a relevance hit; the price comes
	// from the static retail category table, not the matched record.
	unitPrice := retailPrice(name)
	e.cache.Set(key, unitPrice, CacheTTL)

	return packageCost(unitPrice, amount, unit, name), true
}
