package planner

import (
	"errors"
	"testing"

	"meal-plan-generator/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealDistributionSumsToOne(t *testing.T) {
	for _, count := range SupportedMealCounts {
		for _, goal := range []GoalType{GoalLose, GoalMaintain, GoalGain} {
			dist, err := MealDistribution(count, goal)
			require.NoError(t, err)
			assert.Len(t, dist, count)
			assert.InDelta(t, 1.0, dist.Sum(), 1e-9, "count=%d goal=%s", count, goal)
		}
	}
}

func TestMealDistributionOrder(t *testing.T) {
	dist, err := MealDistribution(6, GoalLose)
	require.NoError(t, err)
	assert.Equal(t, []string{"breakfast", "snack1", "lunch", "snack2", "snack3", "dinner"}, dist.Slots())

	dist, err = MealDistribution(5, GoalGain)
	require.NoError(t, err)
	assert.Equal(t, []string{"breakfast", "snack1", "lunch", "snack2", "dinner"}, dist.Slots())
	f, ok := dist.Fraction("lunch")
	require.True(t, ok)
	assert.Equal(t, 0.35, f)
}

func TestThreeMealDistributionIgnoresGoal(t *testing.T) {
	lose, err := MealDistribution(3, GoalLose)
	require.NoError(t, err)
	gain, err := MealDistribution(3, GoalGain)
	require.NoError(t, err)
	assert.Equal(t, lose, gain)
}

func TestMealDistributionRejectsUnsupportedCount(t *testing.T) {
	for _, count := range []int{0, 1, 2, 4, 7} {
		_, err := MealDistribution(count, GoalMaintain)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.True(t, errors.Is(err, ErrUnsupportedSlotCount))
	}
}

func TestMealDistributionRejectsUnknownGoal(t *testing.T) {
	_, err := MealDistribution(5, GoalType("bulk"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownGoal))
}

func TestMealDistributionReturnsCopy(t *testing.T) {
	dist, err := MealDistribution(3, GoalMaintain)
	require.NoError(t, err)
	dist[0].Fraction = 0

	again, err := MealDistribution(3, GoalMaintain)
	require.NoError(t, err)
	assert.Equal(t, 0.35, again[0].Fraction)
}

func TestBaseMealType(t *testing.T) {
	cases := map[string]recipe.MealType{
		"breakfast": recipe.Breakfast,
		"snack1":    recipe.Snack,
		"snack3":    recipe.Snack,
		"dinner":    recipe.Dinner,
	}
	for slot, want := range cases {
		got, err := BaseMealType(slot)
		require.NoError(t, err)
		assert.Equal(t, want, got, slot)
	}

	_, err := BaseMealType("brunch")
	assert.True(t, errors.Is(err, ErrUnknownSlot))
}

func TestParseGoal(t *testing.T) {
	g, err := ParseGoal("")
	require.NoError(t, err)
	assert.Equal(t, GoalMaintain, g)

	g, err = ParseGoal(" Lose ")
	require.NoError(t, err)
	assert.Equal(t, GoalLose, g)

	_, err = ParseGoal("cut")
	assert.True(t, IsConfigError(err))
}
