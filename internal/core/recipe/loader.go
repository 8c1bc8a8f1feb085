package recipe

import (
	"fmt"
	"io"
	"os"

	"meal-plan-generator/internal/pkg/common"
)

// mealFile 對應 meal_components.json：以類別分組的食譜陣列
type mealFile map[string][]Recipe

// ParseMeals 解析分組格式的食譜檔；記錄未帶 mealType 時沿用所在分組
func ParseMeals(r io.Reader) ([]Recipe, error) {
	var groups mealFile
	if err := common.DecodeJSON(r, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}

	for key := range groups {
		if _, err := ParseMealType(key); err != nil {
			return nil, fmt.Errorf("meals file: %w", err)
		}
	}

	var recipes []Recipe
	for _, t := range MealTypes {
		for _, rec := range groups[string(t)] {
			if rec.MealType == "" {
				rec.MealType = t
			}
			if rec.MealType != t {
				return nil, fmt.Errorf("recipe %q listed under %q but declares meal type %q", rec.ID, t, rec.MealType)
			}
			recipes = append(recipes, rec)
		}
	}
	return recipes, nil
}

// ParseFoods 解析食材營養表（JSON 陣列）
func ParseFoods(r io.Reader) ([]Ingredient, error) {
	var foods []Ingredient
	if err := common.DecodeJSON(r, &foods); err != nil {
		return nil, fmt.Errorf("failed to decode foods: %w", err)
	}
	return foods, nil
}

// LoadFiles 從本地檔案載入目錄
func LoadFiles(mealsPath, foodsPath string) (*Catalog, error) {
	mf, err := os.Open(mealsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open meals file: %w", err)
	}
	defer mf.Close()

	recipes, err := ParseMeals(mf)
	if err != nil {
		return nil, err
	}

	ff, err := os.Open(foodsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open foods file: %w", err)
	}
	defer ff.Close()

	foods, err := ParseFoods(ff)
	if err != nil {
		return nil, err
	}

	return NewCatalog(recipes, foods)
}
