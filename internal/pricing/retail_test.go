package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPackageCost(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice float64
		amount    float64
		unit      string
		item      string
		want      float64
	}{
		// Eggs come by the dozen; a recipe's 3 eggs still buys one carton.
		{"EggsOneDozen", 2.88, 3, "piece", "eggs", 2.88},
		{"EggsTwoDozen", 2.88, 14, "", "egg whites", 2.88 * 2},
		// Cheese comes in 8oz blocks.
		{"CheeseOneBlock", 5.98, 4, "oz", "cheddar cheese", 5.98},
		{"CheeseTwoBlocks", 5.98, 10, "ounces", "cheddar cheese", 5.98 * 2},
		// Milk: one gallon covers up to 16 cups.
		{"MilkOneGallon", 3.59, 4, "cups", "whole milk", 3.59},
		{"MilkTwoGallons", 3.59, 20, "cups", "whole milk", 3.59 * 2},
		// Meat rounds up to half-pounds.
		{"MeatHalfPound", 4.32, 0.3, "pound", "chicken breast", 4.32 * 0.5},
		{"MeatOunces", 7.14, 12, "oz", "ground beef", 7.14 * 1},
		// Canned goods: whole cans.
		{"CannedBeans", 2.50, 1.5, "cups", "black beans", 2.50 * 2},
		// Bread by the loaf.
		{"BreadSlices", 1.89, 8, "slices", "whole wheat bread", 1.89},
		// Individual vegetables at a quarter of the per-pound price.
		{"OnionPieces", 1.28, 2, "pieces", "red onion", 1.28 / 4 * 2},
		{"TomatoCups", 2.87, 1, "cup", "diced tomato", 2.87 * 0.5},
		// Carrots and potatoes come in multi-pound bags.
		{"CarrotBag", 1.15, 3, "pieces", "carrots", 1.15 * 2.5},
		// Oils and seasonings: one container serves many recipes.
		{"OilBottle", 3.45, 3, "tbsp", "olive oil", 3.45},
		{"SeasoningFraction", 2.50, 1, "tsp", "garlic powder", 2.50 * 0.1},
		// Zero amount costs nothing regardless of category.
		{"ZeroAmount", 4.32, 0, "pound", "chicken", 0},
		// Default conversions for uncategorized items.
		{"DefaultPound", 2.50, 2, "lb", "quinoa", 2.50},
		{"DefaultCups", 2.50, 2, "cups", "quinoa", 2.50 * 0.25},
		{"DefaultUnknownUnit", 2.50, 5, "dash", "quinoa", 2.50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := packageCost(tt.unitPrice, tt.amount, tt.unit, tt.item)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRetailPriceFirstMatchWins(t *testing.T) {
	// "chicken" is listed before "pepper", so compound names resolve to the
	// protein category.
	assert.InDelta(t, 4.32, retailPrice("chicken with peppers"), 1e-9)
	assert.InDelta(t, 2.50, retailPrice("star anise"), 1e-9)
}

func TestRoundUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.05, 0},
		{0.1, 1},
		{1.0, 1},
		{1.1, 2},
		{2.4, 3},
	}
	for _, tt := range tests {
		if got := roundUp(tt.in); got != tt.want {
			t.Errorf("roundUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Now()
	cache := NewMemoryCacheWithClock(func() time.Time { return now })

	cache.Set("usda_price_milk", 3.59, time.Hour)

	got, ok := cache.Get("usda_price_milk")
	assert.True(t, ok)
	assert.Equal(t, 3.59, got)

	now = now.Add(2 * time.Hour)
	_, ok = cache.Get("usda_price_milk")
	assert.False(t, ok)
}
