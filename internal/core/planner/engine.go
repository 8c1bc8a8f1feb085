// Package planner 將每日營養目標轉換為一週的餐點計畫。
//
// 流程：分配表 → 餐次目標 → 過濾 → 評分選擇 → 份量縮放 → 每日修正。
// 引擎本身不做 I/O、不寫日誌，所有可恢復的偏差都以 Warning 回傳。
package planner

import (
	"time"

	"meal-plan-generator/internal/core/recipe"
)

// Catalog 引擎需要的唯讀目錄
type Catalog interface {
	recipe.IngredientLookup
	recipe.Source
}

// DefaultDayNames 預設的星期名稱，由星期一開始
var DefaultDayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DateLayout 計畫中日期的格式
const DateLayout = "2006-01-02"

// Engine 計畫引擎；建立後不可變，可被多個 goroutine 共用
type Engine struct {
	catalog  Catalog
	now      func() time.Time
	dayNames []string
}

// Option 引擎選項
type Option func(*Engine)

// WithClock 替換取得目前時間的函式
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithDayNames 設定由星期一開始的七個星期名稱；長度不為 7 時忽略
func WithDayNames(names []string) Option {
	return func(e *Engine) {
		if len(names) == 7 {
			e.dayNames = append([]string(nil), names...)
		}
	}
}

// NewEngine 創建計畫引擎
func NewEngine(catalog Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:  catalog,
		now:      time.Now,
		dayNames: DefaultDayNames,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DayName 取得日期對應的星期名稱
func (e *Engine) DayName(date time.Time) string {
	return e.dayNames[(int(date.Weekday())+6)%7]
}

// Today 引擎時鐘的當天零時
func (e *Engine) Today() time.Time {
	y, m, d := e.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.now().Location())
}
