package planner

import (
	"meal-plan-generator/internal/core/nutrition"
	"meal-plan-generator/internal/core/recipe"
)

// 初次縮放的係數範圍
const (
	MinScaleFactor = 0.7
	MaxScaleFactor = 1.5
)

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// InitialScaleFactor 依未縮放熱量計算初次縮放係數
func InitialScaleFactor(unscaledCalories, targetCalories float64) float64 {
	if unscaledCalories <= 0 {
		return 1.0
	}
	return clamp(targetCalories/unscaledCalories, MinScaleFactor, MaxScaleFactor)
}

// ScaleRecipe 縮放食譜份量以接近餐次目標，回傳新的餐點與缺少的食材 ID
func ScaleRecipe(lookup recipe.IngredientLookup, r recipe.Recipe, target SlotTarget) (GeneratedMeal, []string) {
	unscaled, missing := nutrition.RecipeMacros(lookup, r.Components, 1.0)
	factor := InitialScaleFactor(unscaled.Calories, target.Calories)

	components := make([]ScaledComponent, len(r.Components))
	for i, c := range r.Components {
		components[i] = ScaledComponent{
			Name:  c.DisplayName,
			Food:  c.Food,
			Grams: c.Grams,
		}
	}

	meal := GeneratedMeal{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Image:          r.Image,
		PreparationTip: r.PreparationTip,
		MealType:       r.MealType,
		ScaleFactor:    factor,
	}
	return rescaleMeal(lookup, meal, components, factor), missing
}

// rescaleMeal 以係數調整每個成分的克數（取整到 5g），重算成分與餐點營養。
// 不修改傳入的 components。
func rescaleMeal(lookup recipe.IngredientLookup, meal GeneratedMeal, components []ScaledComponent, factor float64) GeneratedMeal {
	out := meal
	out.Components = make([]ScaledComponent, len(components))

	var totals nutrition.Macros
	for i, c := range components {
		grams := nutrition.RoundGrams(c.Grams * factor)
		m, _ := nutrition.ComponentMacros(lookup, c.Food, grams)
		out.Components[i] = ScaledComponent{
			Name:   c.Name,
			Food:   c.Food,
			Grams:  grams,
			Macros: m,
		}
		totals = totals.Add(m)
	}

	out.Totals = totals.Rounded()
	return out
}

// sumMeals 加總餐點營養並取整
func sumMeals(meals []SlotMeal) nutrition.Macros {
	var totals nutrition.Macros
	for _, sm := range meals {
		totals = totals.Add(sm.Meal.Totals)
	}
	return totals.Rounded()
}
