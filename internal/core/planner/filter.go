package planner

import "meal-plan-generator/internal/core/recipe"

// FilterRecipes 移除含過敏原或不喜歡食材的食譜。
// 過敏與不喜歡清單皆為空時原樣回傳輸入切片。
func FilterRecipes(recipes []recipe.Recipe, prefs UserPreferences) []recipe.Recipe {
	if len(prefs.Allergies) == 0 && len(prefs.Dislikes) == 0 {
		return recipes
	}

	kept := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if anyTermMatches(prefs.Allergies, r.Components) {
			continue
		}
		if anyTermMatches(prefs.Dislikes, r.Components) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
