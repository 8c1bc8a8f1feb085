package planner

import "fmt"

// WarningKind 可恢復的偏差類型
type WarningKind string

const (
	// DataQuality 食材不在目錄中：縮放前以替代值計算，縮放後營養為零
	DataQuality WarningKind = "data_quality"
	// NoCandidate 餐次沒有可用食譜，該餐次略過
	NoCandidate WarningKind = "no_candidate"
	// Convergence 修正迴圈用盡次數仍未進入容差
	Convergence WarningKind = "convergence"
)

// Warning 生成過程中收集的結構化警告
type Warning struct {
	Kind       WarningKind `json:"kind"`
	Date       string      `json:"date,omitempty"`
	Slot       string      `json:"slot,omitempty"`
	RecipeID   string      `json:"recipeId,omitempty"`
	Ingredient string      `json:"ingredient,omitempty"`
	Message    string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}
