package mealplan

import (
	"encoding/json"
	"time"

	"meal-plan-generator/internal/core/planner"
	"meal-plan-generator/internal/infrastructure/storage"
)

// PlanRequest 生成計畫的請求
type PlanRequest struct {
	DailyTargets planner.DailyTargets    `json:"dailyTargets"`
	Preferences  planner.UserPreferences `json:"preferences"`
	// StartDate 格式 YYYY-MM-DD；週計畫未指定時為下一個星期一，單日計畫為今天
	StartDate string `json:"startDate,omitempty"`
}

// WeekResult 週計畫結果
type WeekResult struct {
	ID     string           `json:"id"`
	Cached bool             `json:"cached"`
	Plan   planner.WeekPlan `json:"plan"`
}

// DayResult 單日計畫結果
type DayResult struct {
	ID       string            `json:"id"`
	Cached   bool              `json:"cached"`
	Plan     planner.DayPlan   `json:"plan"`
	Warnings []planner.Warning `json:"warnings,omitempty"`
}

// PlanRecord 已保存的計畫
type PlanRecord struct {
	ID        string           `json:"id"`
	Kind      storage.PlanKind `json:"kind"`
	StartDate string           `json:"startDate"`
	CreatedAt time.Time        `json:"createdAt"`
	Plan      json.RawMessage  `json:"plan,omitempty"`
}

// DistributionResult 分配表查詢結果
type DistributionResult struct {
	MealsPerDay  int                  `json:"mealsPerDay"`
	Goal         planner.GoalType     `json:"goalType"`
	Distribution planner.Distribution `json:"distribution"`
}

func recordFrom(p storage.StoredPlan, withData bool) PlanRecord {
	rec := PlanRecord{
		ID:        p.ID,
		Kind:      p.Kind,
		StartDate: p.StartDate,
		CreatedAt: p.CreatedAt,
	}
	if withData {
		rec.Plan = json.RawMessage(p.Data)
	}
	return rec
}
