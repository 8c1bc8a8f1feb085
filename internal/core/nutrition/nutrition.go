// Package nutrition 計算食材與食譜的營養值。
//
// 熱量一律由巨量營養素推導（蛋白質 4、碳水 4、脂肪 9 kcal/g），
// 食材表中的 caloriesPer100g 欄位不參與計算。
package nutrition

import (
	"math"
	"strconv"

	"meal-plan-generator/internal/core/recipe"
)

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9

	// GramStep 份量四捨五入的單位
	GramStep = 5
)

// Macros 熱量與三大營養素
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// FillerPer100g 目錄中找不到食材時使用的每 100g 替代值
var FillerPer100g = Macros{Protein: 5, Carbs: 15, Fat: 5}

// Add 逐欄相加
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// Scale 逐欄乘上係數
func (m Macros) Scale(f float64) Macros {
	return Macros{
		Calories: m.Calories * f,
		Protein:  m.Protein * f,
		Carbs:    m.Carbs * f,
		Fat:      m.Fat * f,
	}
}

// Rounded 熱量取整，營養素取一位小數
func (m Macros) Rounded() Macros {
	return Macros{
		Calories: Round0(m.Calories),
		Protein:  Round1(m.Protein),
		Carbs:    Round1(m.Carbs),
		Fat:      Round1(m.Fat),
	}
}

// Round0 取整（銀行家捨入）
func Round0(x float64) float64 {
	return math.RoundToEven(x)
}

// Round1 取一位小數，依二進位值的精確十進位展開捨入（0.15 → 0.1）
func Round1(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// RoundGrams 四捨五入到最接近的 5g
func RoundGrams(g float64) float64 {
	return math.RoundToEven(g/GramStep) * GramStep
}

// DerivedCalories 由營養素推導熱量並取整
func DerivedCalories(protein, carbs, fat float64) float64 {
	return Round0(protein*kcalPerGramProtein + carbs*kcalPerGramCarbs + fat*kcalPerGramFat)
}

// Per100g 取得食材的每 100g 營養素（熱量留空，由呼叫端推導）
func Per100g(ing recipe.Ingredient) Macros {
	return Macros{
		Protein: ing.ProteinPer100g,
		Carbs:   ing.CarbsPer100g,
		Fat:     ing.FatPer100g,
	}
}

// ForGrams 依克數換算營養素（未取整）
func ForGrams(per100g Macros, grams float64) Macros {
	ratio := grams / 100.0
	return Macros{
		Protein: per100g.Protein * ratio,
		Carbs:   per100g.Carbs * ratio,
		Fat:     per100g.Fat * ratio,
	}
}

// ComponentMacros 計算單一成分的營養值：營養素一位小數，熱量由取整後的營養素推導。
// 食材不在目錄中時回傳零值與 false。
func ComponentMacros(lookup recipe.IngredientLookup, food string, grams float64) (Macros, bool) {
	ing, ok := lookup.Ingredient(food)
	if !ok {
		return Macros{}, false
	}
	m := ForGrams(Per100g(ing), grams)
	m.Protein = Round1(m.Protein)
	m.Carbs = Round1(m.Carbs)
	m.Fat = Round1(m.Fat)
	m.Calories = DerivedCalories(m.Protein, m.Carbs, m.Fat)
	return m, true
}

// RecipeMacros 計算食譜在指定縮放係數下的營養值。
// 找不到的食材以 FillerPer100g 代入，並回傳其 ID（依出現順序、不重複）。
func RecipeMacros(lookup recipe.IngredientLookup, components []recipe.Component, factor float64) (Macros, []string) {
	var total Macros
	var missing []string
	seen := make(map[string]bool)

	for _, c := range components {
		grams := c.Grams * factor
		per100g := FillerPer100g
		if ing, ok := lookup.Ingredient(c.Food); ok {
			per100g = Per100g(ing)
		} else if !seen[c.Food] {
			seen[c.Food] = true
			missing = append(missing, c.Food)
		}
		total = total.Add(ForGrams(per100g, grams))
	}

	total.Protein = Round1(total.Protein)
	total.Carbs = Round1(total.Carbs)
	total.Fat = Round1(total.Fat)
	total.Calories = DerivedCalories(total.Protein, total.Carbs, total.Fat)
	return total, missing
}
