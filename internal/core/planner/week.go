package planner

import "time"

// DaysPerWeek 一次生成的天數
const DaysPerWeek = 7

// WeekRequest 生成一週計畫的輸入
type WeekRequest struct {
	Targets     DailyTargets
	Preferences UserPreferences
	// StartDate 為零值時使用下一個星期一
	StartDate time.Time
	// Used 預先放入的已使用食譜
	Used UsedRecipes
}

// NextMonday 回傳 now 之後的下一個星期一（當天為星期一時回傳七天後）
func NextMonday(now time.Time) time.Time {
	mondayBased := (int(now.Weekday()) + 6) % 7
	days := (7 - mondayBased) % 7
	if days == 0 {
		days = 7
	}
	y, m, d := now.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, now.Location())
}

// StartDateFor 解析起始日；未指定時以引擎時鐘計算下一個星期一
func (e *Engine) StartDateFor(start time.Time) time.Time {
	if start.IsZero() {
		return NextMonday(e.now())
	}
	y, m, d := start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, start.Location())
}

// Plan 解析分配表並驗證目標，任何一天建立前即失敗
func (e *Engine) Plan(targets DailyTargets, prefs UserPreferences) (Distribution, GoalType, error) {
	goal, err := ParseGoal(string(prefs.Goal))
	if err != nil {
		return nil, "", err
	}
	if err := targets.Validate(); err != nil {
		return nil, "", err
	}
	dist, err := MealDistribution(prefs.MealsPerDay, goal)
	if err != nil {
		return nil, "", err
	}
	for _, share := range dist {
		if _, err := BaseMealType(share.Slot); err != nil {
			return nil, "", err
		}
	}
	return dist, goal, nil
}

// GenerateDay 建立並修正單一天；used 為本日之前已使用的食譜
func (e *Engine) GenerateDay(date time.Time, targets DailyTargets, prefs UserPreferences, used UsedRecipes) (DayPlan, UsedRecipes, []Warning, error) {
	dist, goal, err := e.Plan(targets, prefs)
	if err != nil {
		return DayPlan{}, used, nil, err
	}
	prefs.Goal = goal
	return e.generateDay(date, targets, dist, prefs, used)
}

func (e *Engine) generateDay(date time.Time, targets DailyTargets, dist Distribution, prefs UserPreferences, used UsedRecipes) (DayPlan, UsedRecipes, []Warning, error) {
	day, used, warnings, err := e.BuildDay(date, targets, dist, prefs, used)
	if err != nil {
		return DayPlan{}, used, nil, err
	}
	refined, result := e.RefineDay(day, targets)
	if !result.Converged {
		warnings = append(warnings, convergenceWarning(refined, targets))
	}
	return refined, used, warnings, nil
}

// GenerateWeek 產生連續七天的計畫；已使用食譜在整週間累積
func (e *Engine) GenerateWeek(req WeekRequest) (WeekPlan, error) {
	dist, goal, err := e.Plan(req.Targets, req.Preferences)
	if err != nil {
		return WeekPlan{}, err
	}
	prefs := req.Preferences
	prefs.Goal = goal

	start := e.StartDateFor(req.StartDate)
	week := WeekPlan{
		StartDate:    start.Format(DateLayout),
		Goal:         goal,
		MealsPerDay:  len(dist),
		Distribution: dist,
		Days:         make([]DayPlan, 0, DaysPerWeek),
	}

	used := req.Used
	for i := 0; i < DaysPerWeek; i++ {
		date := start.AddDate(0, 0, i)
		day, next, warnings, err := e.generateDay(date, req.Targets, dist, prefs, used)
		if err != nil {
			return WeekPlan{}, err
		}
		used = next
		week.Days = append(week.Days, day)
		week.Warnings = append(week.Warnings, warnings...)
	}

	week.Averages = Averages(week.Days)
	return week, nil
}

// Averages 每日總計的算術平均，不依餐數加權
func Averages(days []DayPlan) WeeklyAverages {
	if len(days) == 0 {
		return WeeklyAverages{}
	}
	var avg WeeklyAverages
	for _, d := range days {
		avg.AvgCalories += d.Totals.Calories
		avg.AvgProtein += d.Totals.Protein
		avg.AvgCarbs += d.Totals.Carbs
		avg.AvgFat += d.Totals.Fat
	}
	n := float64(len(days))
	avg.AvgCalories /= n
	avg.AvgProtein /= n
	avg.AvgCarbs /= n
	avg.AvgFat /= n
	return avg
}
