package shopping

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"macromate/internal/database"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.SQL)
}

func sampleList() *ShoppingList {
	return &ShoppingList{
		AccountID: "acct-1",
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		Items: []Item{
			{Name: "onion", Amount: 2, Unit: "piece", Aisle: "Produce", UsedIn: []string{"Onion Soup"}, EstimatedCost: 0.64},
		},
		Aisles: map[string][]Item{
			"Produce": {{Name: "onion", Amount: 2, Unit: "piece", Aisle: "Produce"}},
		},
		TotalCost:  0.64,
		TotalItems: 1,
		MealBreakdown: map[string]RecipeBreakdown{
			"Onion Soup": {CostPerServing: 0.16, TotalServings: 4, TotalRecipeCost: 0.64, MealType: "dinner"},
		},
		MealTypeSummary: map[string]SlotSummary{
			"dinner": {TotalCost: 0.64, Recipes: []string{"Onion Soup"}},
		},
	}
}

func TestRepositorySaveAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	list := sampleList()
	require.NoError(t, repo.Save(ctx, list))
	require.NotZero(t, list.ID)

	got, err := repo.Get(ctx, list.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "acct-1", got.AccountID)
	assert.Equal(t, list.StartDate, got.StartDate)
	assert.Equal(t, list.EndDate, got.EndDate)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "onion", got.Items[0].Name)
	assert.Equal(t, 0.64, got.TotalCost)
	assert.Contains(t, got.MealBreakdown, "Onion Soup")
	assert.Contains(t, got.MealTypeSummary, "dinner")
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestRepositorySaveIsIdempotentPerRange(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	list := sampleList()
	require.NoError(t, repo.Save(ctx, list))
	firstID := list.ID

	// Regenerating for the same (account, start, end) overwrites in place.
	regenerated := sampleList()
	regenerated.TotalCost = 1.28
	regenerated.Items[0].Amount = 4
	require.NoError(t, repo.Save(ctx, regenerated))
	assert.Equal(t, firstID, regenerated.ID)

	got, err := repo.Get(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, 1.28, got.TotalCost)
	assert.Equal(t, 4.0, got.Items[0].Amount)

	// A different range gets its own row.
	other := sampleList()
	other.EndDate = other.EndDate.AddDate(0, 0, 7)
	require.NoError(t, repo.Save(ctx, other))
	assert.NotEqual(t, firstID, other.ID)
}

func TestRepositorySetCompleted(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	list := sampleList()
	require.NoError(t, repo.Save(ctx, list))

	require.NoError(t, repo.SetCompleted(ctx, list.ID, true))

	got, err := repo.Get(ctx, list.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)

	// Regenerating the list keeps the completion state.
	require.NoError(t, repo.Save(ctx, sampleList()))
	got, err = repo.Get(ctx, list.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	// Un-marking clears the timestamp.
	require.NoError(t, repo.SetCompleted(ctx, list.ID, false))
	got, err = repo.Get(ctx, list.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestRepositorySetCompletedMissing(t *testing.T) {
	repo := newTestRepository(t)
	assert.Error(t, repo.SetCompleted(context.Background(), 9999, true))
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Get(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, got)
}
