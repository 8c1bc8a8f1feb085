package planner

import (
	"testing"

	"meal-plan-generator/internal/core/recipe"

	"github.com/stretchr/testify/require"
)

var testFoods = []recipe.Ingredient{
	{ID: "oats", Name: "Oats", ProteinPer100g: 10, CarbsPer100g: 60, FatPer100g: 5},
	{ID: "chicken", Name: "Chicken", CaloriesPer100g: 165, ProteinPer100g: 30, CarbsPer100g: 0, FatPer100g: 4},
	{ID: "rice", Name: "Rice", ProteinPer100g: 2.5, CarbsPer100g: 28, FatPer100g: 0.5},
	{ID: "yogurt", Name: "Yogurt", ProteinPer100g: 10, CarbsPer100g: 4, FatPer100g: 2},
	{ID: "egg", Name: "Egg", ProteinPer100g: 13, CarbsPer100g: 1, FatPer100g: 10},
	{ID: "eggplant", Name: "Eggplant", ProteinPer100g: 1, CarbsPer100g: 6, FatPer100g: 0.2},
	{ID: "water", Name: "Water"},
	{ID: "fuel", Name: "Fuel", CarbsPer100g: 25},
}

func component(food string, grams float64) recipe.Component {
	return recipe.Component{Food: food, Grams: grams, DisplayName: food}
}

// 未縮放營養：b1 325 kcal、b2 219、b3 358、l1 487、d1 245、s1 148
var (
	oatmeal      = recipe.Recipe{ID: "b1", Name: "Oatmeal", MealType: recipe.Breakfast, Components: []recipe.Component{component("oats", 100)}}
	omelette     = recipe.Recipe{ID: "b2", Name: "Omelette", MealType: recipe.Breakfast, Components: []recipe.Component{component("egg", 150)}}
	bigOatmeal   = recipe.Recipe{ID: "b3", Name: "Big oatmeal", MealType: recipe.Breakfast, Components: []recipe.Component{component("oats", 110)}}
	chickenRice  = recipe.Recipe{ID: "l1", Name: "Chicken rice", MealType: recipe.Lunch, Components: []recipe.Component{component("chicken", 150), component("rice", 200)}}
	eggplantBake = recipe.Recipe{ID: "d1", Name: "Eggplant bake", MealType: recipe.Dinner, Components: []recipe.Component{component("eggplant", 300), component("chicken", 100)}}
	yogurtBowl   = recipe.Recipe{ID: "s1", Name: "Yogurt", MealType: recipe.Snack, Components: []recipe.Component{component("yogurt", 200)}}
)

func newTestCatalog(t *testing.T, recipes ...recipe.Recipe) *recipe.Catalog {
	t.Helper()
	c, err := recipe.NewCatalog(recipes, testFoods)
	require.NoError(t, err)
	return c
}

func defaultTestCatalog(t *testing.T) *recipe.Catalog {
	return newTestCatalog(t, oatmeal, omelette, chickenRice, eggplantBake, yogurtBowl)
}

var scenarioTargets = DailyTargets{Calories: 2000, Protein: 150, Carbs: 200, Fat: 65}
