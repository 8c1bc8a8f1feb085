package planner

import (
	"strings"

	"meal-plan-generator/internal/core/recipe"
)

// SlotShare 一個餐次與其佔每日目標的比例
type SlotShare struct {
	Slot     string  `json:"slot"`
	Fraction float64 `json:"fraction"`
}

// Distribution 一天的餐次分配表，順序即生成順序
type Distribution []SlotShare

// SupportedMealCounts 支援的每日餐數
var SupportedMealCounts = []int{3, 5, 6}

var threeMealTable = Distribution{
	{"breakfast", 0.35},
	{"lunch", 0.40},
	{"dinner", 0.25},
}

var fiveMealTables = map[GoalType]Distribution{
	GoalLose: {
		{"breakfast", 0.30},
		{"snack1", 0.10},
		{"lunch", 0.30},
		{"snack2", 0.10},
		{"dinner", 0.20},
	},
	GoalGain: {
		{"breakfast", 0.25},
		{"snack1", 0.12},
		{"lunch", 0.35},
		{"snack2", 0.12},
		{"dinner", 0.16},
	},
	GoalMaintain: {
		{"breakfast", 0.25},
		{"snack1", 0.10},
		{"lunch", 0.35},
		{"snack2", 0.10},
		{"dinner", 0.20},
	},
}

var sixMealTables = map[GoalType]Distribution{
	GoalLose: {
		{"breakfast", 0.25},
		{"snack1", 0.08},
		{"lunch", 0.28},
		{"snack2", 0.08},
		{"snack3", 0.08},
		{"dinner", 0.23},
	},
	GoalGain: {
		{"breakfast", 0.22},
		{"snack1", 0.10},
		{"lunch", 0.30},
		{"snack2", 0.10},
		{"snack3", 0.10},
		{"dinner", 0.18},
	},
	GoalMaintain: {
		{"breakfast", 0.22},
		{"snack1", 0.08},
		{"lunch", 0.30},
		{"snack2", 0.08},
		{"snack3", 0.10},
		{"dinner", 0.22},
	},
}

// MealDistribution 依餐數與目標取得分配表；3 餐不看目標。
// 回傳的是副本，呼叫端可自由修改。
func MealDistribution(mealsPerDay int, goal GoalType) (Distribution, error) {
	if goal == "" {
		goal = GoalMaintain
	}
	if _, err := ParseGoal(string(goal)); err != nil {
		return nil, err
	}

	var table Distribution
	switch mealsPerDay {
	case 3:
		table = threeMealTable
	case 5:
		table = fiveMealTables[goal]
	case 6:
		table = sixMealTables[goal]
	default:
		return nil, configErrorf(ErrUnsupportedSlotCount, "%d (supported: 3, 5, 6)", mealsPerDay)
	}

	return append(Distribution(nil), table...), nil
}

// Fraction 取得餐次比例
func (d Distribution) Fraction(slot string) (float64, bool) {
	for _, s := range d {
		if s.Slot == slot {
			return s.Fraction, true
		}
	}
	return 0, false
}

// Slots 依順序列出餐次名稱
func (d Distribution) Slots() []string {
	slots := make([]string, len(d))
	for i, s := range d {
		slots[i] = s.Slot
	}
	return slots
}

// Sum 比例總和
func (d Distribution) Sum() float64 {
	var total float64
	for _, s := range d {
		total += s.Fraction
	}
	return total
}

// BaseMealType 將餐次名稱對應到食譜類別，例如 snack2 → snack
func BaseMealType(slot string) (recipe.MealType, error) {
	base := strings.TrimRight(slot, "0123456789")
	t, err := recipe.ParseMealType(base)
	if err != nil {
		return "", configErrorf(ErrUnknownSlot, "%q", slot)
	}
	return t, nil
}
