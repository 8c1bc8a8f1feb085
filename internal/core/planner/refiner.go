package planner

import (
	"fmt"
	"math"
)

// 每日修正的常數
const (
	ToleranceCalories   = 10
	ToleranceMacroRatio = 0.01
	MaxRefineIterations = 50

	MinCorrectionFactor = 0.85
	MaxCorrectionFactor = 1.15
)

// RefineResult 修正迴圈的結果
type RefineResult struct {
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
	Factors    []float64 `json:"factors,omitempty"`
}

func macroDeviation(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Abs(actual-target) / target
}

func ratio(target, actual float64) float64 {
	if actual <= 0 {
		return 1.0
	}
	return target / actual
}

// withinTolerance 熱量差距 <= 10 且最大營養素偏差 <= 1%
func withinTolerance(day DayPlan, targets DailyTargets) bool {
	if math.Abs(day.Totals.Calories-targets.Calories) > ToleranceCalories {
		return false
	}
	worst := math.Max(
		macroDeviation(day.Totals.Protein, targets.Protein),
		math.Max(
			macroDeviation(day.Totals.Carbs, targets.Carbs),
			macroDeviation(day.Totals.Fat, targets.Fat),
		),
	)
	return worst <= ToleranceMacroRatio
}

// CorrectionFactor 四項比值的加權平均，限制在 [0.85, 1.15]
func CorrectionFactor(day DayPlan, targets DailyTargets) float64 {
	combined := weightCalories*ratio(targets.Calories, day.Totals.Calories) +
		weightProtein*ratio(targets.Protein, day.Totals.Protein) +
		weightCarbs*ratio(targets.Carbs, day.Totals.Carbs) +
		weightFat*ratio(targets.Fat, day.Totals.Fat)
	return clamp(combined, MinCorrectionFactor, MaxCorrectionFactor)
}

// RefineDay 反覆以單一係數縮放整天的餐點，直到進入容差或達到次數上限。
// 回傳新的 DayPlan，傳入的 day 不會被修改。
func (e *Engine) RefineDay(day DayPlan, targets DailyTargets) (DayPlan, RefineResult) {
	current := day.clone()
	var result RefineResult

	for result.Iterations < MaxRefineIterations {
		if withinTolerance(current, targets) {
			result.Converged = true
			break
		}

		factor := CorrectionFactor(current, targets)
		result.Factors = append(result.Factors, factor)

		meals := make([]SlotMeal, len(current.Meals))
		for i, sm := range current.Meals {
			meal := rescaleMeal(e.catalog, sm.Meal, sm.Meal.Components, factor)
			meal.ScaleFactor = sm.Meal.ScaleFactor * factor
			meals[i] = SlotMeal{Slot: sm.Slot, Meal: meal}
		}
		current.Meals = meals
		current.Totals = sumMeals(meals)
		result.Iterations++
	}

	if !result.Converged {
		result.Converged = withinTolerance(current, targets)
	}

	current.Report.Target = targets.Macros()
	current.Report.fill(current.Totals)
	current.Report.Iterations = result.Iterations
	current.Report.Converged = result.Converged
	return current, result
}

func convergenceWarning(day DayPlan, targets DailyTargets) Warning {
	return Warning{
		Kind: Convergence,
		Date: day.Date,
		Message: fmt.Sprintf("not within tolerance after %d iterations: %.0f kcal (target %.0f)",
			day.Report.Iterations, day.Totals.Calories, targets.Calories),
	}
}
