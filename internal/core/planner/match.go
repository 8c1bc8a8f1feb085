package planner

import (
	"strings"

	"meal-plan-generator/internal/core/recipe"
)

// TermMatches 不分大小寫的雙向子字串比對：詞包含食材，或食材包含詞。
// 空白詞不匹配任何食材。
func TermMatches(term, ingredient string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	ing := strings.ToLower(strings.TrimSpace(ingredient))
	if t == "" || ing == "" {
		return false
	}
	return strings.Contains(ing, t) || strings.Contains(t, ing)
}

// anyTermMatches 食譜中是否有任一成分符合任一詞
func anyTermMatches(terms []string, components []recipe.Component) bool {
	for _, term := range terms {
		if termMatchesAny(term, components) {
			return true
		}
	}
	return false
}

func termMatchesAny(term string, components []recipe.Component) bool {
	for _, c := range components {
		if TermMatches(term, c.Food) {
			return true
		}
	}
	return false
}
