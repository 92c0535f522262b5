package meals

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"macromate/internal/database"
	"macromate/internal/macro"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestRecipeRepositoryUpsert(t *testing.T) {
	repo := NewRepository(newTestDB(t).SQL)
	ctx := context.Background()

	rec := Recipe{
		ExternalID: 42,
		Title:      "Lentil Curry",
		Servings:   4,
		Calories:   520,
		Proteins:   22,
		MealType:   macro.SlotDinner,
		Ingredients: []IngredientLine{
			{Name: "red lentils", Amount: 1, Unit: "cup", Aisle: "Pasta and Rice"},
		},
	}

	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got == nil {
		t.Fatal("Expected recipe, got nil")
	}
	if got.Title != "Lentil Curry" || got.Calories != 520 {
		t.Errorf("Unexpected recipe: %+v", got)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Name != "red lentils" {
		t.Errorf("Unexpected ingredients: %+v", got.Ingredients)
	}

	// Upserting again with refreshed data replaces the record in place.
	rec.Title = "Red Lentil Curry"
	rec.Calories = 540
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, err = repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Title != "Red Lentil Curry" || got.Calories != 540 {
		t.Errorf("Expected refreshed record, got %+v", got)
	}
}

func TestRecipeRepositoryGetMissing(t *testing.T) {
	repo := NewRepository(newTestDB(t).SQL)

	got, err := repo.Get(context.Background(), 9999)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing recipe, got %+v", got)
	}
}

func TestPlanRepository(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t).SQL)
	ctx := context.Background()

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	breakfast, dinner := int64(11), int64(13)

	t.Run("SaveAndGet", func(t *testing.T) {
		plan := MealPlan{
			AccountID: "acct-1",
			Date:      monday,
			Breakfast: &breakfast,
			Dinner:    &dinner,
		}
		if err := repo.Save(ctx, plan); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		got, err := repo.Get(ctx, "acct-1", monday)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got == nil {
			t.Fatal("Expected plan, got nil")
		}
		if got.Breakfast == nil || *got.Breakfast != 11 {
			t.Errorf("Unexpected breakfast selection: %+v", got.Breakfast)
		}
		if got.Lunch != nil {
			t.Errorf("Expected empty lunch slot, got %v", *got.Lunch)
		}
		if !got.Date.Equal(monday) {
			t.Errorf("Expected date %v, got %v", monday, got.Date)
		}
	})

	t.Run("SaveReplacesSelections", func(t *testing.T) {
		lunch := int64(12)
		if err := repo.Save(ctx, MealPlan{AccountID: "acct-1", Date: monday, Lunch: &lunch}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		got, err := repo.Get(ctx, "acct-1", monday)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Breakfast != nil {
			t.Errorf("Expected breakfast cleared, got %v", *got.Breakfast)
		}
		if got.Lunch == nil || *got.Lunch != 12 {
			t.Errorf("Unexpected lunch selection: %+v", got.Lunch)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		got, err := repo.Get(ctx, "acct-1", monday.AddDate(0, 0, 30))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for missing plan, got %+v", got)
		}
	})

	t.Run("GetRange", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			id := int64(20 + i)
			plan := MealPlan{AccountID: "acct-2", Date: monday.AddDate(0, 0, i), Breakfast: &id}
			if err := repo.Save(ctx, plan); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
		}

		plans, err := repo.GetRange(ctx, "acct-2", monday, monday.AddDate(0, 0, 2))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(plans) != 2 {
			t.Fatalf("Expected 2 plans in range, got %d", len(plans))
		}
		if !plans[0].Date.Before(plans[1].Date) {
			t.Errorf("Expected plans ordered by date, got %v then %v", plans[0].Date, plans[1].Date)
		}
	})
}

func TestSelections(t *testing.T) {
	breakfast, lunch := int64(1), int64(2)
	plan := MealPlan{Breakfast: &breakfast, Lunch: &lunch}

	sel := plan.Selections()
	if len(sel) != 2 {
		t.Fatalf("Expected 2 selections, got %d", len(sel))
	}
	if sel[0].Slot != macro.SlotBreakfast || sel[0].RecipeID != 1 {
		t.Errorf("Unexpected first selection: %+v", sel[0])
	}
	if sel[1].Slot != macro.SlotLunch || sel[1].RecipeID != 2 {
		t.Errorf("Unexpected second selection: %+v", sel[1])
	}

	if got := (MealPlan{}).Selections(); len(got) != 0 {
		t.Errorf("Expected no selections for empty plan, got %d", len(got))
	}
}
