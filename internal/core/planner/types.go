package planner

import (
	"fmt"
	"strings"

	"meal-plan-generator/internal/core/nutrition"
	"meal-plan-generator/internal/core/recipe"
)

// GoalType 使用者的飲食目標
type GoalType string

const (
	GoalLose     GoalType = "lose"
	GoalMaintain GoalType = "maintain"
	GoalGain     GoalType = "gain"
)

// ParseGoal 解析目標；空字串視為 maintain
func ParseGoal(s string) (GoalType, error) {
	g := GoalType(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case "":
		return GoalMaintain, nil
	case GoalLose, GoalMaintain, GoalGain:
		return g, nil
	}
	return "", configErrorf(ErrUnknownGoal, "goal type %q", s)
}

// UserPreferences 單次生成期間唯讀的使用者偏好
type UserPreferences struct {
	Allergies            []string `json:"allergies,omitempty"`
	Dislikes             []string `json:"dislikes,omitempty"`
	PreferredIngredients []string `json:"preferredIngredients,omitempty"`
	MealsPerDay          int      `json:"desiredMealsPerDay"`
	Goal                 GoalType `json:"goalType"`
}

// DailyTargets 一天的目標值，四項皆須 >= 0
type DailyTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Validate 檢查目標值
func (d DailyTargets) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"calories", d.Calories},
		{"protein", d.Protein},
		{"carbs", d.Carbs},
		{"fat", d.Fat},
	}
	for _, f := range fields {
		if f.value < 0 {
			return configErrorf(ErrInvalidTargets, "%s must be >= 0, got %v", f.name, f.value)
		}
	}
	return nil
}

// Macros 轉為 nutrition.Macros
func (d DailyTargets) Macros() nutrition.Macros {
	return nutrition.Macros{Calories: d.Calories, Protein: d.Protein, Carbs: d.Carbs, Fat: d.Fat}
}

// SlotTarget 單一餐次的目標值
type SlotTarget = nutrition.Macros

// ScaledComponent 縮放後的成分與其營養值
type ScaledComponent struct {
	Name  string  `json:"name"`
	Food  string  `json:"food"`
	Grams float64 `json:"grams"`
	nutrition.Macros
}

// GeneratedMeal 由食譜複製並縮放而來的一餐
type GeneratedMeal struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Image          string            `json:"image,omitempty"`
	PreparationTip string            `json:"preparationTip,omitempty"`
	MealType       recipe.MealType   `json:"mealType"`
	ScaleFactor    float64           `json:"scaleFactor"`
	Components     []ScaledComponent `json:"components"`
	Totals         nutrition.Macros  `json:"totals"`
}

// clone 深拷貝成分列表
func (m GeneratedMeal) clone() GeneratedMeal {
	out := m
	out.Components = append([]ScaledComponent(nil), m.Components...)
	return out
}

// SlotMeal 一個餐次與其餐點
type SlotMeal struct {
	Slot string        `json:"slot"`
	Meal GeneratedMeal `json:"meal"`
}

// DayReport 一天的目標/實際差距與修正結果
type DayReport struct {
	Target         nutrition.Macros `json:"target"`
	CalorieDiff    float64          `json:"calorieDiff"`
	CalorieDiffPct float64          `json:"calorieDiffPct"`
	Iterations     int              `json:"iterations"`
	Converged      bool             `json:"converged"`
}

// DayPlan 一天的計畫；Meals 依分配表順序排列
type DayPlan struct {
	Date    string           `json:"date"`
	DayName string           `json:"dayName"`
	Meals   []SlotMeal       `json:"meals"`
	Totals  nutrition.Macros `json:"dailyTotals"`
	Report  DayReport        `json:"report"`
}

// Meal 依餐次名稱取得餐點
func (d DayPlan) Meal(slot string) (GeneratedMeal, bool) {
	for _, sm := range d.Meals {
		if sm.Slot == slot {
			return sm.Meal, true
		}
	}
	return GeneratedMeal{}, false
}

// Slots 回傳實際產生的餐次名稱
func (d DayPlan) Slots() []string {
	slots := make([]string, 0, len(d.Meals))
	for _, sm := range d.Meals {
		slots = append(slots, sm.Slot)
	}
	return slots
}

// clone 深拷貝，避免修正過程與呼叫端共用切片
func (d DayPlan) clone() DayPlan {
	out := d
	out.Meals = make([]SlotMeal, len(d.Meals))
	for i, sm := range d.Meals {
		out.Meals[i] = SlotMeal{Slot: sm.Slot, Meal: sm.Meal.clone()}
	}
	return out
}

// WeeklyAverages 七天的算術平均
type WeeklyAverages struct {
	AvgCalories float64 `json:"avgCalories"`
	AvgProtein  float64 `json:"avgProtein"`
	AvgCarbs    float64 `json:"avgCarbs"`
	AvgFat      float64 `json:"avgFat"`
}

// WeekPlan 七天計畫與週平均
type WeekPlan struct {
	StartDate    string         `json:"startDate"`
	Goal         GoalType       `json:"goalType"`
	MealsPerDay  int            `json:"mealsPerDay"`
	Distribution Distribution   `json:"distribution"`
	Days         []DayPlan      `json:"days"`
	Averages     WeeklyAverages `json:"weeklyAverages"`
	Warnings     []Warning      `json:"warnings,omitempty"`
}

func (w WeekPlan) String() string {
	return fmt.Sprintf("week %s (%d days, %.0f kcal avg)", w.StartDate, len(w.Days), w.Averages.AvgCalories)
}
