package recipe

import (
	"fmt"
	"strings"
)

// MealType 餐點類別
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes 目錄中的類別，順序即檔案中的分組順序
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// ParseMealType 解析餐點類別（不分大小寫）
func ParseMealType(s string) (MealType, error) {
	t := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown meal type %q", s)
	}
	return t, nil
}

// Valid 檢查類別是否合法
func (t MealType) Valid() bool {
	switch t {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// Ingredient 食材營養資料（每 100g）
type Ingredient struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	NameEn          string  `json:"nameEn,omitempty"`
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
	CarbsPer100g    float64 `json:"carbsPer100g"`
	FatPer100g      float64 `json:"fatsPer100g"`
	Category        string  `json:"category,omitempty"`
}

// Component 食譜中的一項食材與克數
type Component struct {
	Food        string  `json:"food"`
	Grams       float64 `json:"grams"`
	DisplayName string  `json:"displayName"`
}

// Recipe 目錄中的食譜，引擎只讀不寫
type Recipe struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Image          string      `json:"image,omitempty"`
	PreparationTip string      `json:"preparationTip,omitempty"`
	Components     []Component `json:"components"`
	Tags           []string    `json:"tags,omitempty"`
	SuitableFor    []string    `json:"suitableFor,omitempty"`
	MealType       MealType    `json:"mealType"`
}

// IngredientLookup 依 ID 查詢食材，找不到時回傳 false
type IngredientLookup interface {
	Ingredient(id string) (Ingredient, bool)
}

// Source 可依類別取得食譜的目錄
type Source interface {
	RecipesFor(mealType MealType) []Recipe
}
