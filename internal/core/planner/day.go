package planner

import (
	"fmt"
	"time"

	"meal-plan-generator/internal/core/nutrition"
)

// BuildDay 依分配表逐一產生餐次。
// used 不會被修改，回傳值為加入本日食譜後的新集合。
func (e *Engine) BuildDay(date time.Time, targets DailyTargets, dist Distribution, prefs UserPreferences, used UsedRecipes) (DayPlan, UsedRecipes, []Warning, error) {
	dateStr := date.Format(DateLayout)
	day := DayPlan{
		Date:    dateStr,
		DayName: e.DayName(date),
		Meals:   make([]SlotMeal, 0, len(dist)),
	}
	var warnings []Warning

	for _, share := range dist {
		base, err := BaseMealType(share.Slot)
		if err != nil {
			return DayPlan{}, used, nil, err
		}

		byType := e.catalog.RecipesFor(base)
		if len(byType) == 0 {
			warnings = append(warnings, Warning{
				Kind:    NoCandidate,
				Date:    dateStr,
				Slot:    share.Slot,
				Message: fmt.Sprintf("no %s recipes in catalog", base),
			})
			continue
		}

		candidates := FilterRecipes(byType, prefs)
		if len(candidates) == 0 {
			warnings = append(warnings, Warning{
				Kind:    NoCandidate,
				Date:    dateStr,
				Slot:    share.Slot,
				Message: fmt.Sprintf("all %d %s recipes excluded by allergies or dislikes", len(byType), base),
			})
			continue
		}

		target, err := TargetFor(targets, share.Slot, dist)
		if err != nil {
			return DayPlan{}, used, nil, err
		}

		scored := ScoreCandidates(e.catalog, candidates, target, used, prefs)
		i := best(scored)
		if i < 0 {
			continue
		}
		chosen := scored[i].Recipe

		// 所有以替代值評分的候選都回報，包含未被選中的
		for _, c := range scored {
			for _, food := range c.Missing {
				msg := fmt.Sprintf("ingredient %q not in catalog, filler nutrition used for scoring", food)
				if c.Recipe.ID == chosen.ID {
					msg += "; it contributes no nutrition to the scaled meal"
				}
				warnings = append(warnings, Warning{
					Kind:       DataQuality,
					Date:       dateStr,
					Slot:       share.Slot,
					RecipeID:   c.Recipe.ID,
					Ingredient: food,
					Message:    msg,
				})
			}
		}

		meal, _ := ScaleRecipe(e.catalog, chosen, target)
		day.Meals = append(day.Meals, SlotMeal{Slot: share.Slot, Meal: meal})
		used = used.With(chosen.ID)
	}

	day.Totals = sumMeals(day.Meals)
	day.Report = DayReport{Target: targets.Macros()}
	day.Report.fill(day.Totals)
	return day, used, warnings, nil
}

// fill 依實際值更新熱量差距
func (r *DayReport) fill(actual nutrition.Macros) {
	r.CalorieDiff = actual.Calories - r.Target.Calories
	r.CalorieDiffPct = 0
	if r.Target.Calories > 0 {
		r.CalorieDiffPct = r.CalorieDiff / r.Target.Calories * 100
	}
}
