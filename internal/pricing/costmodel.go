package pricing

import "strings"

// CostEntry maps an ingredient-name substring to a base price for the
// ingredient's typical purchase unit (per pound, per gallon, per bottle...).
type CostEntry struct {
	Match string
	Price float64
}

// UnitCostModel is the static fallback knowledge base used when neither the
// recipe provider nor the pricing provider yields a price. Entries are
// checked in declaration order and the first substring match wins; the
// ordering is part of the model's behavior, so callers must not sort it.
type UnitCostModel struct {
	entries      []CostEntry
	defaultPrice float64
}

// NewUnitCostModel creates a model with an explicit table and default price.
func NewUnitCostModel(entries []CostEntry, defaultPrice float64) *UnitCostModel {
	return &UnitCostModel{entries: entries, defaultPrice: defaultPrice}
}

// DefaultUnitCostModel returns the hand-tuned price table. The values and
// their ordering are a behavioral contract; a shopping list should rather
// over-estimate than under-estimate.
func DefaultUnitCostModel() *UnitCostModel {
	return NewUnitCostModel([]CostEntry{
		// Proteins (per pound unless specified)
		{"chicken breast", 7.99},
		{"chicken thigh", 5.99},
		{"ground beef", 6.99},
		{"ground turkey", 5.99},
		{"salmon", 15.99},
		{"tuna", 12.99},
		{"shrimp", 13.99},
		{"eggs", 0.30}, // per egg
		{"egg", 0.30},
		// Dairy (per container/typical size)
		{"milk", 4.29},         // per gallon
		{"heavy cream", 3.99},  // per pint
		{"sour cream", 2.99},   // per container
		{"yogurt", 1.29},       // per cup
		{"butter", 4.99},       // per pound
		{"cheese", 5.99},       // per pound
		{"cream cheese", 2.99}, // per 8oz
		// Vegetables (per pound unless specified)
		{"onion", 1.49},
		{"garlic", 4.99}, // per pound, used in small amounts
		{"tomato", 2.99},
		{"bell pepper", 3.99},
		{"carrot", 1.29},
		{"celery", 1.99},
		{"potato", 1.99},
		{"broccoli", 2.99},
		{"spinach", 3.99},
		{"lettuce", 2.49}, // per head
		// Pantry staples
		{"rice", 2.99},  // per 2lb bag
		{"pasta", 1.29}, // per box
		{"bread", 2.99}, // per loaf
		{"flour", 3.99}, // per 5lb bag
		{"sugar", 3.49}, // per 4lb bag
		{"olive oil", 7.99},
		{"vegetable oil", 3.99},
		{"vinegar", 2.99},
		{"soy sauce", 2.99},
		// Spices, expensive per weight but used in tiny amounts
		{"oregano", 2.99},
		{"basil", 2.99},
		{"thyme", 2.99},
		{"paprika", 3.49},
		{"cumin", 3.49},
		{"black pepper", 4.99},
	}, 2.99)
}

// basePrice returns the first matching entry's price, or the default.
func (m *UnitCostModel) basePrice(name string) float64 {
	for _, e := range m.entries {
		if strings.Contains(name, e.Match) {
			return e.Price
		}
	}
	return m.defaultPrice
}

// Cost estimates the line cost for an ingredient by converting the base
// price through unit-specific ratios. name is expected lower-cased.
func (m *UnitCostModel) Cost(name string, amount float64, unit string) float64 {
	if amount == 0 {
		return 0
	}

	base := m.basePrice(name)
	unitLower := strings.ToLower(unit)

	switch unitLower {
	case "cup", "cups":
		// 1 cup is 1/16 of a gallon for liquids, 1/4 pound for solids.
		if strings.Contains(name, "milk") || strings.Contains(name, "cream") {
			return base * (amount / 16)
		}
		return base * (amount / 4)

	case "tablespoon", "tablespoons", "tbsp":
		if strings.Contains(name, "oil") || strings.Contains(name, "vinegar") {
			return base * (amount / 32) // ~32 tbsp per bottle
		}
		return base * (amount / 16)

	case "teaspoon", "teaspoons", "tsp":
		return base * (amount / 48) // ~48 tsp per small spice container

	case "quart", "quarts", "qt":
		return base * (amount / 4)

	case "pint", "pints":
		return base * (amount / 8)

	case "ounce", "ounces", "oz":
		return base * (amount / 16)

	case "pound", "pounds", "lb", "lbs":
		return base * amount

	case "piece", "pieces", "whole", "head", "heads":
		if strings.Contains(name, "egg") {
			return base * amount
		}
		if strings.Contains(name, "onion") || strings.Contains(name, "pepper") {
			return 0.75 * amount // individual vegetables
		}
		return base * 0.5 * amount

	case "clove", "cloves":
		return base * (amount / 12) // ~12 cloves per head of garlic

	case "package", "packages", "bag", "bags", "container":
		return base * amount

	default:
		// Unknown unit: assume a fraction of the base purchase unit.
		return base * 0.1 * amount
	}
}
