package mealplan

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"meal-plan-generator/internal/core/cache"
	"meal-plan-generator/internal/core/planner"
	"meal-plan-generator/internal/core/recipe"
	"meal-plan-generator/internal/infrastructure/config"
	"meal-plan-generator/internal/infrastructure/storage"
	"meal-plan-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wednesday = time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *recipe.Catalog {
	t.Helper()
	foods := []recipe.Ingredient{
		{ID: "oats", ProteinPer100g: 13, CarbsPer100g: 68, FatPer100g: 6.5},
		{ID: "chicken", ProteinPer100g: 31, FatPer100g: 3.6},
		{ID: "rice", ProteinPer100g: 7, CarbsPer100g: 80, FatPer100g: 1},
		{ID: "yogurt", ProteinPer100g: 10, CarbsPer100g: 4, FatPer100g: 2},
	}
	recipes := []recipe.Recipe{
		{ID: "b1", MealType: recipe.Breakfast, Components: []recipe.Component{{Food: "oats", Grams: 80}, {Food: "yogurt", Grams: 150}}},
		{ID: "l1", MealType: recipe.Lunch, Components: []recipe.Component{{Food: "chicken", Grams: 150}, {Food: "rice", Grams: 100}}},
		{ID: "d1", MealType: recipe.Dinner, Components: []recipe.Component{{Food: "chicken", Grams: 120}, {Food: "rice", Grams: 60}}},
		{ID: "s1", MealType: recipe.Snack, Components: []recipe.Component{{Food: "yogurt", Grams: 200}}},
	}
	c, err := recipe.NewCatalog(recipes, foods)
	require.NoError(t, err)
	return c
}

func testConfig() *config.Config {
	return &config.Config{
		Planner: config.PlannerConfig{
			DayNames:           planner.DefaultDayNames,
			DefaultMealsPerDay: 3,
			DefaultGoal:        "maintain",
		},
	}
}

func newTestService(t *testing.T) (*Service, *storage.SQLiteStorage) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mem := cache.NewManager(&config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Hour})
	t.Cleanup(func() { mem.Close() })

	svc := NewService(testConfig(), testCatalog(t), mem, store, planner.WithClock(func() time.Time { return wednesday }))
	return svc, store
}

var weekRequest = PlanRequest{
	DailyTargets: planner.DailyTargets{Calories: 2000, Protein: 150, Carbs: 200, Fat: 65},
}

func TestGenerateWeek(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.GenerateWeek(ctx, weekRequest)
	require.NoError(t, err)

	assert.True(t, common.IsUUID(result.ID))
	assert.False(t, result.Cached)
	assert.Equal(t, "2026-10-26", result.Plan.StartDate)
	assert.Equal(t, planner.GoalMaintain, result.Plan.Goal)
	assert.Equal(t, 3, result.Plan.MealsPerDay)
	require.Len(t, result.Plan.Days, 7)
}

func TestGenerateWeekCached(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.GenerateWeek(ctx, weekRequest)
	require.NoError(t, err)

	// 明確指定相同起始日也命中同一筆快取
	req := weekRequest
	req.StartDate = "2026-10-26"
	second, err := svc.GenerateWeek(ctx, req)
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Plan, second.Plan)

	plans, err := svc.ListPlans(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestGenerateWeekStoresPlan(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.GenerateWeek(ctx, weekRequest)
	require.NoError(t, err)

	rec, err := svc.GetPlan(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.KindWeek, rec.Kind)
	assert.Equal(t, "2026-10-26", rec.StartDate)

	var stored planner.WeekPlan
	require.NoError(t, json.Unmarshal(rec.Plan, &stored))
	assert.Equal(t, result.Plan.Days[0].Date, stored.Days[0].Date)
	assert.Len(t, stored.Days, 7)
}

func TestGenerateWeekErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := weekRequest
	req.StartDate = "26/10/2026"
	_, err := svc.GenerateWeek(ctx, req)
	assert.True(t, errors.Is(err, common.ErrInvalidRequest))

	req = weekRequest
	req.Preferences.MealsPerDay = 4
	_, err = svc.GenerateWeek(ctx, req)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	assert.True(t, errors.Is(err, planner.ErrUnsupportedSlotCount))
	assert.Equal(t, 400, common.AsCustomError(err).Status)

	req = weekRequest
	req.DailyTargets.Protein = -1
	_, err = svc.GenerateWeek(ctx, req)
	assert.True(t, errors.Is(err, planner.ErrInvalidTargets))
}

func TestGenerateDay(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := weekRequest
	req.Preferences = planner.UserPreferences{MealsPerDay: 5, Goal: planner.GoalGain}
	result, err := svc.GenerateDay(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "2026-10-21", result.Plan.Date)
	assert.Equal(t, "Wednesday", result.Plan.DayName)
	assert.Equal(t, []string{"breakfast", "snack1", "lunch", "snack2", "dinner"}, result.Plan.Slots())

	again, err := svc.GenerateDay(ctx, req)
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, result.ID, again.ID)
}

func TestGetPlanErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetPlan(ctx, "not-a-uuid")
	assert.True(t, errors.Is(err, common.ErrInvalidRequest))

	_, err = svc.GetPlan(ctx, common.GenerateUUID())
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestServiceWithoutStore(t *testing.T) {
	svc := NewService(testConfig(), testCatalog(t), nil, nil)
	ctx := context.Background()

	result, err := svc.GenerateWeek(ctx, weekRequest)
	require.NoError(t, err)
	assert.Len(t, result.Plan.Days, 7)

	_, err = svc.GetPlan(ctx, result.ID)
	assert.True(t, errors.Is(err, common.ErrServiceUnavailable))

	plans, err := svc.ListPlans(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestDistribution(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Distribution(0, "")
	require.NoError(t, err)
	assert.Equal(t, 3, d.MealsPerDay)
	assert.Equal(t, planner.GoalMaintain, d.Goal)
	assert.Equal(t, []string{"breakfast", "lunch", "dinner"}, d.Distribution.Slots())

	_, err = svc.Distribution(6, "bulk")
	assert.True(t, errors.Is(err, common.ErrConfiguration))
}

func TestRecipes(t *testing.T) {
	svc, _ := newTestService(t)

	all, err := svc.Recipes("")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	snacks, err := svc.Recipes("SNACK")
	require.NoError(t, err)
	require.Len(t, snacks, 1)
	assert.Equal(t, "s1", snacks[0].ID)

	_, err = svc.Recipes("brunch")
	assert.True(t, errors.Is(err, common.ErrInvalidRequest))
}

func TestEmptyCatalogUnavailable(t *testing.T) {
	empty, err := recipe.NewCatalog(nil, nil)
	require.NoError(t, err)
	svc := NewService(testConfig(), empty, nil, nil)
	ctx := context.Background()

	_, err = svc.GenerateWeek(ctx, weekRequest)
	assert.True(t, errors.Is(err, common.ErrCatalogUnavailable))

	_, err = svc.GenerateDay(ctx, weekRequest)
	assert.True(t, errors.Is(err, common.ErrCatalogUnavailable))
}

func TestRecipeByID(t *testing.T) {
	svc, _ := newTestService(t)

	r, err := svc.Recipe("l1")
	require.NoError(t, err)
	assert.Equal(t, recipe.Lunch, r.MealType)

	_, err = svc.Recipe("missing")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
