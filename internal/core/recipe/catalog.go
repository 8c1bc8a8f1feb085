package recipe

import (
	"fmt"
	"strings"
)

// Catalog 唯讀的食譜與食材快照
type Catalog struct {
	recipes     []Recipe
	byType      map[MealType][]Recipe
	ingredients map[string]Ingredient
}

// Stats 目錄統計
type Stats struct {
	Recipes     int              `json:"recipes"`
	Ingredients int              `json:"ingredients"`
	ByMealType  map[MealType]int `json:"by_meal_type"`
}

// NewCatalog 建立目錄；重複的食譜或食材 ID、未知的餐點類別都視為錯誤
func NewCatalog(recipes []Recipe, ingredients []Ingredient) (*Catalog, error) {
	c := &Catalog{
		recipes:     make([]Recipe, 0, len(recipes)),
		byType:      make(map[MealType][]Recipe, len(MealTypes)),
		ingredients: make(map[string]Ingredient, len(ingredients)),
	}

	for _, ing := range ingredients {
		if strings.TrimSpace(ing.ID) == "" {
			return nil, fmt.Errorf("ingredient %q has empty id", ing.Name)
		}
		if _, dup := c.ingredients[ing.ID]; dup {
			return nil, fmt.Errorf("duplicate ingredient id %q", ing.ID)
		}
		c.ingredients[ing.ID] = ing
	}

	seen := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("recipe %q has empty id", r.Name)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate recipe id %q", r.ID)
		}
		if !r.MealType.Valid() {
			return nil, fmt.Errorf("recipe %q: unknown meal type %q", r.ID, r.MealType)
		}
		seen[r.ID] = struct{}{}
		c.recipes = append(c.recipes, r)
		c.byType[r.MealType] = append(c.byType[r.MealType], r)
	}

	return c, nil
}

// Ingredient 實現 IngredientLookup
func (c *Catalog) Ingredient(id string) (Ingredient, bool) {
	ing, ok := c.ingredients[id]
	return ing, ok
}

// RecipesFor 回傳指定類別的食譜（目錄順序），呼叫端不可修改
func (c *Catalog) RecipesFor(mealType MealType) []Recipe {
	return c.byType[mealType]
}

// Recipes 回傳全部食譜
func (c *Catalog) Recipes() []Recipe {
	return c.recipes
}

// Recipe 依 ID 查詢食譜
func (c *Catalog) Recipe(id string) (Recipe, bool) {
	for _, r := range c.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

// Stats 回傳目錄統計
func (c *Catalog) Stats() Stats {
	byType := make(map[MealType]int, len(MealTypes))
	for _, t := range MealTypes {
		byType[t] = len(c.byType[t])
	}
	return Stats{
		Recipes:     len(c.recipes),
		Ingredients: len(c.ingredients),
		ByMealType:  byType,
	}
}
