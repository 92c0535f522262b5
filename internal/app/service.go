package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"macromate/internal/macro"
	"macromate/internal/meals"
	"macromate/internal/shopping"
)

// Service wires the planning, fetching and shopping-list components behind
// the operations the outer API layer consumes.
type Service struct {
	planner  *macro.Planner
	goals    *macro.Repository
	fetcher  *meals.Fetcher
	recipes  *meals.Repository
	plans    *meals.PlanRepository
	builder  *shopping.Builder
	lists    *shopping.Repository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates and initializes a new Service instance.
func NewService(
	planner *macro.Planner,
	goals *macro.Repository,
	fetcher *meals.Fetcher,
	recipes *meals.Repository,
	plans *meals.PlanRepository,
	builder *shopping.Builder,
	lists *shopping.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		planner:  planner,
		goals:    goals,
		fetcher:  fetcher,
		recipes:  recipes,
		plans:    plans,
		builder:  builder,
		lists:    lists,
		validate: validator.New(),
		logger:   logger,
	}
}

// SetGoals validates and appends a new daily goal set for the account.
// Goals are never mutated in place; the newest row supersedes the rest.
func (s *Service) SetGoals(ctx context.Context, accountID string, goals macro.Goals) error {
	if err := s.validate.Struct(goals); err != nil {
		return fmt.Errorf("invalid macro goals: %w", err)
	}
	return s.goals.Save(ctx, accountID, goals)
}

// CurrentGoals returns the account's most recently created goal set.
func (s *Service) CurrentGoals(ctx context.Context, accountID string) (*macro.Goals, error) {
	goals, err := s.goals.Latest(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		return nil, macro.ErrNoGoals
	}
	return goals, nil
}

// PlanTargets computes the macro target range for one meal slot from the
// account's current goals.
func (s *Service) PlanTargets(ctx context.Context, accountID string, slot macro.Slot) (macro.SlotTarget, error) {
	goals, err := s.CurrentGoals(ctx, accountID)
	if err != nil {
		return macro.SlotTarget{}, err
	}
	return s.planner.TargetRange(*goals, slot)
}

// FetchMealOptions returns recipe candidates for one slot based on the
// account's current goals.
func (s *Service) FetchMealOptions(ctx context.Context, accountID string, slot macro.Slot, count int) ([]meals.Recipe, error) {
	goals, err := s.CurrentGoals(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.fetcher.FetchMealOptions(ctx, *goals, slot, count)
}

// FetchAllMealOptions returns recipe candidates for all three slots.
func (s *Service) FetchAllMealOptions(ctx context.Context, accountID string, count int) (map[macro.Slot][]meals.Recipe, error) {
	goals, err := s.CurrentGoals(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.fetcher.FetchAllMealOptions(ctx, *goals, count)
}

// SaveMealPlan stores the account's selections for one date, replacing any
// previous plan for that date.
func (s *Service) SaveMealPlan(ctx context.Context, plan meals.MealPlan) error {
	return s.plans.Save(ctx, plan)
}

// MealPlanForDate returns the stored plan for (account, date), or (nil, nil)
// when none exists.
func (s *Service) MealPlanForDate(ctx context.Context, accountID string, date time.Time) (*meals.MealPlan, error) {
	return s.plans.Get(ctx, accountID, date)
}

// MealTotals reports the combined per-serving macros of the meals selected
// for a date, and how close they come to the daily goals.
type MealTotals struct {
	Totals          macro.Goals        `json:"totals"`
	DailyGoals      macro.Goals        `json:"daily_goals"`
	GoalPercentages map[string]float64 `json:"goal_percentages"`
}

// MealTotals sums the selected recipes' macros for a date and reports each
// as a percentage of the account's daily goals.
func (s *Service) MealTotals(ctx context.Context, accountID string, date time.Time) (*MealTotals, error) {
	goals, err := s.CurrentGoals(ctx, accountID)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.Get(ctx, accountID, date)
	if err != nil {
		return nil, err
	}

	var totals macro.Goals
	if plan != nil {
		for _, sel := range plan.Selections() {
			rec, err := s.recipes.Get(ctx, sel.RecipeID)
			if err != nil {
				return nil, err
			}
			if rec == nil {
				continue
			}
			totals.Calories += rec.Calories
			totals.Proteins += rec.Proteins
			totals.Fats += rec.Fats
			totals.Carbohydrates += rec.Carbohydrates
		}
	}

	return &MealTotals{
		Totals:     totals,
		DailyGoals: *goals,
		GoalPercentages: map[string]float64{
			"calories_percentage":      percentage(totals.Calories, goals.Calories),
			"proteins_percentage":      percentage(totals.Proteins, goals.Proteins),
			"fats_percentage":          percentage(totals.Fats, goals.Fats),
			"carbohydrates_percentage": percentage(totals.Carbohydrates, goals.Carbohydrates),
		},
	}, nil
}

// GenerateShoppingList builds and persists the consolidated shopping list
// for the account's meal plans between start and end, inclusive. The stored
// list is keyed by (account, start, end); regenerating updates it in place.
func (s *Service) GenerateShoppingList(ctx context.Context, accountID string, start, end time.Time) (*shopping.ShoppingList, error) {
	if end.IsZero() {
		end = start
	}

	plans, err := s.plans.GetRange(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}

	list, err := s.builder.Build(ctx, accountID, start, end, plans)
	if err != nil {
		return nil, err
	}

	if err := s.lists.Save(ctx, list); err != nil {
		return nil, err
	}

	s.logger.Info("shopping list generated",
		zap.String("account", accountID),
		zap.Int("items", list.TotalItems),
		zap.Float64("total_cost", list.TotalCost))

	return s.lists.Get(ctx, list.ID)
}

// GenerateWeeklyShoppingList builds the list for a full week starting at
// weekStart.
func (s *Service) GenerateWeeklyShoppingList(ctx context.Context, accountID string, weekStart time.Time) (*shopping.ShoppingList, error) {
	return s.GenerateShoppingList(ctx, accountID, weekStart, weekStart.AddDate(0, 0, 6))
}

// MarkShoppingListCompleted toggles a list's completion flag and returns the
// updated record.
func (s *Service) MarkShoppingListCompleted(ctx context.Context, listID int64, completed bool) (*shopping.ShoppingList, error) {
	if err := s.lists.SetCompleted(ctx, listID, completed); err != nil {
		return nil, err
	}
	return s.lists.Get(ctx, listID)
}

func percentage(value, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Round(value/goal*1000) / 10
}
