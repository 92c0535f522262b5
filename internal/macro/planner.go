package macro

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMealSlot is returned when a meal slot name is not one of
// breakfast, lunch or dinner.
var ErrInvalidMealSlot = errors.New("invalid meal slot")

// ErrNoGoals is returned when an account has never set macro goals.
var ErrNoGoals = errors.New("no macro goals set")

// Slot is a named meal occasion with its own macro-share weights.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
)

// Slots lists the recognized meal slots in day order.
var Slots = []Slot{SlotBreakfast, SlotLunch, SlotDinner}

// ParseSlot converts a free-form slot name into a Slot.
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return Slot(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMealSlot, s)
}

// Goals holds one account's daily macro-nutrient targets. Goals are
// immutable inputs to planning; setting new goals appends a new row and the
// planner always operates on the most recently created set.
type Goals struct {
	Calories      float64 `json:"calories" validate:"gte=0"`
	Proteins      float64 `json:"proteins" validate:"gte=0"`
	Fats          float64 `json:"fats" validate:"gte=0"`
	Carbohydrates float64 `json:"carbohydrates" validate:"gte=0"`
}

// Range is an inclusive min/max band for a single macro.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SlotTarget is the acceptable macro range for one meal slot. It is derived,
// ephemeral and recomputed on every planning call.
type SlotTarget struct {
	Slot          Slot  `json:"meal_slot"`
	Calories      Range `json:"calories"`
	Proteins      Range `json:"proteins"`
	Fats          Range `json:"fats"`
	Carbohydrates Range `json:"carbohydrates"`
}

// Weights is the share of the daily goal one slot should carry, per macro.
// Weights for a macro need not sum to 1 across slots; each is independently
// tunable.
type Weights struct {
	Calories      float64
	Proteins      float64
	Fats          float64
	Carbohydrates float64
}

// Distribution maps each meal slot to its macro weights.
type Distribution map[Slot]Weights

// DefaultDistribution returns the standard share of daily macros assigned to
// each meal, based on typical eating patterns.
func DefaultDistribution() Distribution {
	return Distribution{
		SlotBreakfast: {Calories: 0.25, Proteins: 0.27, Fats: 0.20, Carbohydrates: 0.35},
		SlotLunch:     {Calories: 0.35, Proteins: 0.33, Fats: 0.30, Carbohydrates: 0.35},
		SlotDinner:    {Calories: 0.40, Proteins: 0.40, Fats: 0.50, Carbohydrates: 0.30},
	}
}

// DefaultTolerance is the symmetric band applied around each slot's base
// amount when deriving min/max targets.
const DefaultTolerance = 0.5

// Planner computes per-slot macro target ranges from daily goals. It is a
// pure function of its inputs; the distribution and tolerance are injected so
// tests can substitute their own tables.
type Planner struct {
	dist      Distribution
	tolerance float64
}

// NewPlanner creates a Planner with an explicit distribution and tolerance.
func NewPlanner(dist Distribution, tolerance float64) *Planner {
	return &Planner{dist: dist, tolerance: tolerance}
}

// DefaultPlanner creates a Planner with the standard distribution and
// tolerance.
func DefaultPlanner() *Planner {
	return NewPlanner(DefaultDistribution(), DefaultTolerance)
}

// TargetRange computes the acceptable macro range for one meal slot.
// For each macro: base = dailyGoal * weight, min = floor(base*(1-tol)),
// max = ceil(base*(1+tol)).
func (p *Planner) TargetRange(goals Goals, slot Slot) (SlotTarget, error) {
	weights, ok := p.dist[slot]
	if !ok {
		return SlotTarget{}, fmt.Errorf("%w: %q", ErrInvalidMealSlot, slot)
	}

	return SlotTarget{
		Slot:          slot,
		Calories:      p.band(goals.Calories, weights.Calories),
		Proteins:      p.band(goals.Proteins, weights.Proteins),
		Fats:          p.band(goals.Fats, weights.Fats),
		Carbohydrates: p.band(goals.Carbohydrates, weights.Carbohydrates),
	}, nil
}

func (p *Planner) band(dailyGoal, weight float64) Range {
	base := dailyGoal * weight
	return Range{
		Min: math.Floor(base * (1 - p.tolerance)),
		Max: math.Ceil(base * (1 + p.tolerance)),
	}
}
