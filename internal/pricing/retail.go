package pricing

import "strings"

// retailPriceEntry maps an ingredient-name substring to an estimated retail
// price, based on USDA Cost of Food at Home reports (2024 estimates).
type retailPriceEntry struct {
	match string
	price float64
}

// retailPrices is checked in declaration order; first match wins.
var retailPrices = []retailPriceEntry{
	// Proteins (per pound)
	{"chicken", 4.32},
	{"beef", 7.14},
	{"turkey", 5.89},
	{"salmon", 13.45},
	{"fish", 10.20},
	{"egg", 2.88}, // per dozen
	// Dairy
	{"milk", 3.59}, // per gallon
	{"cream", 8.50},
	{"butter", 5.12},
	{"cheese", 5.98},
	{"yogurt", 5.45},
	// Vegetables (per pound)
	{"onion", 1.28},
	{"garlic", 3.45},
	{"tomato", 2.87},
	{"pepper", 3.21},
	{"carrot", 1.15},
	{"celery", 1.67},
	{"potato", 1.33},
	{"broccoli", 2.45},
	{"spinach", 4.12},
	// Grains & pantry (per pound)
	{"rice", 1.89},
	{"pasta", 1.34},
	{"bread", 1.89},
	{"flour", 0.89},
	{"sugar", 0.95},
	{"oil", 3.45},
}

const defaultRetailPrice = 2.50

// retailPrice returns the estimated retail price category for an ingredient
// name (lower-cased).
func retailPrice(name string) float64 {
	for _, e := range retailPrices {
		if strings.Contains(name, e.match) {
			return e.price
		}
	}
	return defaultRetailPrice
}

// roundUp converts a fractional package count into whole packages, always
// rounding up so the list never under-estimates what must be bought.
func roundUp(x float64) int {
	return int(x + 0.9)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func unitIn(unit string, opts ...string) bool {
	for _, o := range opts {
		if unit == o {
			return true
		}
	}
	return false
}

// packageCost converts a per-unit price into a line cost based on the
// discrete packages groceries are actually sold in: whole cans, gallons,
// 8oz cheese blocks, dozens of eggs, loaves, half-pounds of meat, bags of
// vegetables. Quantities always round up, never down. name and unit are
// expected lower-cased.
func packageCost(unitPrice, amount float64, unit, name string) float64 {
	if amount == 0 {
		return 0
	}

	// Canned goods: always buy whole cans.
	if containsAny(name, "corn", "beans", "tomatoes", "sauce") {
		if unitIn(unit, "cup", "cups", "ounce", "ounces", "oz") {
			cans := roundUp(amount)
			if cans < 1 {
				cans = 1
			}
			return unitPrice * float64(cans)
		}
	}

	// Dairy: gallons and quarts.
	if containsAny(name, "milk", "cream") {
		if unitIn(unit, "cup", "cups") {
			if amount <= 16 {
				return unitPrice // one gallon covers it
			}
			return unitPrice * float64(roundUp(amount/16))
		}
		if unitIn(unit, "quart", "quarts") {
			if amount <= 4 {
				return unitPrice
			}
			return unitPrice * float64(roundUp(amount/4))
		}
	}

	// Cheese: 8oz blocks.
	if strings.Contains(name, "cheese") {
		if unitIn(unit, "cup", "cups", "ounce", "ounces", "oz") {
			blocks := roundUp(amount / 8)
			if blocks < 1 {
				blocks = 1
			}
			return unitPrice * float64(blocks)
		}
	}

	// Eggs: sold by the dozen.
	if strings.Contains(name, "egg") {
		if unitIn(unit, "piece", "pieces", "whole", "") {
			dozens := roundUp(amount / 12)
			if dozens < 1 {
				dozens = 1
			}
			return unitPrice * float64(dozens)
		}
	}

	// Bread: sold by the loaf, ~20 slices per loaf.
	if strings.Contains(name, "bread") {
		if unitIn(unit, "slice", "slices") {
			loaves := roundUp(amount / 20)
			if loaves < 1 {
				loaves = 1
			}
			return unitPrice * float64(loaves)
		}
	}

	// Meat: priced per pound, rounded up to the nearest half-pound.
	if containsAny(name, "chicken", "beef", "pork", "turkey", "fish", "salmon") {
		if unitIn(unit, "pound", "pounds", "lb", "lbs") {
			pounds := float64(roundUp(amount/0.5)) * 0.5
			return unitPrice * pounds
		}
		if unitIn(unit, "ounce", "ounces", "oz") {
			pounds := float64(roundUp((amount/16)/0.5)) * 0.5
			return unitPrice * pounds
		}
	}

	// Vegetables sold individually, ~4 pieces per pound.
	if containsAny(name, "onion", "pepper", "tomato") {
		if unitIn(unit, "piece", "pieces", "whole") {
			pieces := roundUp(amount)
			if pieces < 1 {
				pieces = 1
			}
			return (unitPrice / 4) * float64(pieces)
		}
		if unitIn(unit, "cup", "cups") {
			return unitPrice * 0.5 // about half a pound
		}
	}

	// Carrots and potatoes usually come in 2-3lb bags.
	if containsAny(name, "carrot", "potato") {
		if unitIn(unit, "piece", "pieces", "cup", "cups") {
			return unitPrice * 2.5
		}
	}

	// Pantry staples in standard packages.
	if strings.Contains(name, "rice") {
		if unitIn(unit, "cup", "cups") {
			if amount <= 8 {
				return unitPrice // one 2lb bag
			}
			return unitPrice * float64(roundUp(amount/8))
		}
	}

	if strings.Contains(name, "pasta") {
		if unitIn(unit, "cup", "cups", "ounce", "ounces", "oz") {
			if amount <= 16 {
				return unitPrice // one box
			}
			return unitPrice * float64(roundUp(amount/16))
		}
	}

	// Oils: one bottle lasts for most recipes.
	if strings.Contains(name, "oil") {
		if unitIn(unit, "tablespoon", "tablespoons", "tbsp", "cup", "cups") {
			return unitPrice
		}
	}

	// Seasonings: one container lasts for many recipes.
	if containsAny(name, "salt", "pepper", "garlic powder", "onion powder") {
		if unitIn(unit, "teaspoon", "teaspoons", "tsp", "tablespoon", "tablespoons", "tbsp") {
			return unitPrice * 0.1
		}
	}

	// Default: buy at least one standard unit.
	var factor float64
	switch unit {
	case "pound", "pounds", "lb", "lbs":
		factor = 1.0
	case "ounce", "ounces", "oz":
		n := roundUp(amount / 16)
		if n < 1 {
			n = 1
		}
		factor = float64(n)
	case "cup", "cups":
		n := roundUp(amount / 4)
		if n < 1 {
			n = 1
		}
		factor = float64(n) * 0.25
	case "piece", "pieces":
		n := roundUp(amount)
		if n < 1 {
			n = 1
		}
		factor = float64(n) * 0.25
	case "whole":
		n := roundUp(amount)
		if n < 1 {
			n = 1
		}
		factor = float64(n) * 0.5
	default:
		factor = 1.0
	}

	return unitPrice * factor
}
