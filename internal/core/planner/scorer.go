package planner

import (
	"math"

	"meal-plan-generator/internal/core/nutrition"
	"meal-plan-generator/internal/core/recipe"
)

// 評分權重：熱量與蛋白質為主要指標
const (
	weightCalories = 0.4
	weightProtein  = 0.3
	weightCarbs    = 0.2
	weightFat      = 0.1

	// PreferenceBonus 每個命中的偏好詞扣除的分數
	PreferenceBonus = 0.05
	// UsedPenalty 本週已使用過的食譜加上的分數
	UsedPenalty = 0.5
)

func normalizedSquare(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	d := (actual - target) / target
	return d * d
}

// Candidate 一個候選食譜的評分結果；Missing 為評分時以替代值計算的食材
type Candidate struct {
	Recipe  recipe.Recipe
	Score   float64
	Missing []string
}

// Score 計算食譜相對於餐次目標的分數，越低越好。
// 不含已使用懲罰，該項由 Select 加上。
func Score(lookup recipe.IngredientLookup, r recipe.Recipe, target SlotTarget, prefs UserPreferences) float64 {
	s, _ := score(lookup, r, target, prefs)
	return s
}

func score(lookup recipe.IngredientLookup, r recipe.Recipe, target SlotTarget, prefs UserPreferences) (float64, []string) {
	actual, missing := nutrition.RecipeMacros(lookup, r.Components, 1.0)

	s := weightCalories*normalizedSquare(actual.Calories, target.Calories) +
		weightProtein*normalizedSquare(actual.Protein, target.Protein) +
		weightCarbs*normalizedSquare(actual.Carbs, target.Carbs) +
		weightFat*normalizedSquare(actual.Fat, target.Fat)

	for _, term := range prefs.PreferredIngredients {
		if termMatchesAny(term, r.Components) {
			s -= PreferenceBonus
		}
	}
	return s, missing
}

// ScoreCandidates 依輸入順序為每個候選評分，已使用的食譜加上懲罰
func ScoreCandidates(lookup recipe.IngredientLookup, candidates []recipe.Recipe, target SlotTarget, used UsedRecipes, prefs UserPreferences) []Candidate {
	scored := make([]Candidate, len(candidates))
	for i, c := range candidates {
		s, missing := score(lookup, c, target, prefs)
		if used.Contains(c.ID) {
			s += UsedPenalty
		}
		scored[i] = Candidate{Recipe: c, Score: s, Missing: missing}
	}
	return scored
}

// best 回傳分數最低者的索引；同分時取先出現者，無候選時為 -1
func best(scored []Candidate) int {
	idx := -1
	bestScore := math.Inf(1)
	for i, c := range scored {
		if c.Score < bestScore {
			idx, bestScore = i, c.Score
		}
	}
	return idx
}

// Select 選出分數最低的候選；同分時取先出現者，無候選時回傳 false
func Select(lookup recipe.IngredientLookup, candidates []recipe.Recipe, target SlotTarget, used UsedRecipes, prefs UserPreferences) (recipe.Recipe, bool) {
	scored := ScoreCandidates(lookup, candidates, target, used, prefs)
	i := best(scored)
	if i < 0 {
		return recipe.Recipe{}, false
	}
	return scored[i].Recipe, true
}
