package planner

import (
	"testing"

	"meal-plan-generator/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var oatmealTarget = SlotTarget{Calories: 325, Protein: 10, Carbs: 60, Fat: 5}

func TestScorePerfectMatch(t *testing.T) {
	c := newTestCatalog(t, oatmeal)
	assert.InDelta(t, 0.0, Score(c, oatmeal, oatmealTarget, UserPreferences{}), 1e-12)
}

func TestScoreWeightedError(t *testing.T) {
	c := newTestCatalog(t, omelette)
	// 219 kcal, 19.5 P, 1.5 C, 15 F
	want := 0.4*sq((219.0-325)/325) + 0.3*sq((19.5-10)/10) + 0.2*sq((1.5-60)/60) + 0.1*sq((15.0-5)/5)
	assert.InDelta(t, want, Score(c, omelette, oatmealTarget, UserPreferences{}), 1e-9)
}

func sq(x float64) float64 { return x * x }

func TestScoreZeroTargetIgnored(t *testing.T) {
	c := newTestCatalog(t, oatmeal)
	target := oatmealTarget
	target.Fat = 0
	assert.InDelta(t, 0.0, Score(c, oatmeal, target, UserPreferences{}), 1e-12)
}

func TestScorePreferenceBonusPerTerm(t *testing.T) {
	c := newTestCatalog(t, chickenRice)
	target := SlotTarget{Calories: 487, Protein: 50, Carbs: 56, Fat: 7}

	base := Score(c, chickenRice, target, UserPreferences{})
	assert.InDelta(t, 0.0, base, 1e-12)

	prefs := UserPreferences{PreferredIngredients: []string{"chicken", "RICE", "rice noodles", "salmon"}}
	// chicken、RICE 命中；"rice noodles" 包含 rice 也命中；salmon 不命中
	assert.InDelta(t, -0.15, Score(c, chickenRice, target, prefs), 1e-12)
}

func TestSelectEmpty(t *testing.T) {
	c := newTestCatalog(t)
	_, ok := Select(c, nil, oatmealTarget, UsedRecipes{}, UserPreferences{})
	assert.False(t, ok)
}

func TestSelectMinimum(t *testing.T) {
	c := newTestCatalog(t, oatmeal, omelette, bigOatmeal)
	got, ok := Select(c, []recipe.Recipe{omelette, bigOatmeal, oatmeal}, oatmealTarget, UsedRecipes{}, UserPreferences{})
	require.True(t, ok)
	assert.Equal(t, "b1", got.ID)
}

func TestSelectUsedPenalty(t *testing.T) {
	c := newTestCatalog(t, oatmeal, omelette, bigOatmeal)
	candidates := []recipe.Recipe{oatmeal, omelette, bigOatmeal}

	got, ok := Select(c, candidates, oatmealTarget, NewUsedRecipes("b1"), UserPreferences{})
	require.True(t, ok)
	assert.Equal(t, "b3", got.ID)

	// 已使用但仍明顯優於其他候選時可以重複
	got, ok = Select(c, []recipe.Recipe{oatmeal, omelette}, oatmealTarget, NewUsedRecipes("b1"), UserPreferences{})
	require.True(t, ok)
	assert.Equal(t, "b1", got.ID)
}

func TestSelectTieKeepsFirst(t *testing.T) {
	twin := oatmeal
	twin.ID = "b1-twin"
	c := newTestCatalog(t, oatmeal, twin)

	got, ok := Select(c, []recipe.Recipe{twin, oatmeal}, oatmealTarget, UsedRecipes{}, UserPreferences{})
	require.True(t, ok)
	assert.Equal(t, "b1-twin", got.ID)
}

func TestSelectSingleCandidateIgnoresPenalty(t *testing.T) {
	c := newTestCatalog(t, yogurtBowl)
	got, ok := Select(c, []recipe.Recipe{yogurtBowl}, oatmealTarget, NewUsedRecipes("s1"), UserPreferences{})
	require.True(t, ok)
	assert.Equal(t, "s1", got.ID)
}

func TestUsedRecipesWithDoesNotMutate(t *testing.T) {
	var empty UsedRecipes
	one := empty.With("a")
	two := one.With("b")

	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, one.Len())
	assert.False(t, one.Contains("b"))
	assert.True(t, two.Contains("a"))
	assert.True(t, two.Contains("b"))
	assert.Equal(t, two, two.With("a"))
}

func TestScoreCandidatesReportsMissing(t *testing.T) {
	c := newTestCatalog(t, oatmeal)
	ghost := recipe.Recipe{ID: "ghost", MealType: recipe.Breakfast, Components: []recipe.Component{component("oats", 50), component("ghost_food", 100)}}

	scored := ScoreCandidates(c, []recipe.Recipe{oatmeal, ghost}, oatmealTarget, NewUsedRecipes("b1"), UserPreferences{})
	require.Len(t, scored, 2)

	assert.Empty(t, scored[0].Missing)
	assert.InDelta(t, UsedPenalty, scored[0].Score, 1e-12)
	assert.Equal(t, []string{"ghost_food"}, scored[1].Missing)
	assert.InDelta(t, Score(c, ghost, oatmealTarget, UserPreferences{}), scored[1].Score, 1e-12)
}
