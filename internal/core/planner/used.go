package planner

// UsedRecipes 本週已放入計畫的食譜 ID。
// 零值即空集合；With 回傳新集合，不修改接收者。
type UsedRecipes struct {
	ids map[string]struct{}
}

// NewUsedRecipes 以既有 ID 建立集合
func NewUsedRecipes(ids ...string) UsedRecipes {
	var u UsedRecipes
	for _, id := range ids {
		u = u.With(id)
	}
	return u
}

// Contains 檢查 ID 是否已使用
func (u UsedRecipes) Contains(id string) bool {
	_, ok := u.ids[id]
	return ok
}

// With 回傳加入 id 後的新集合
func (u UsedRecipes) With(id string) UsedRecipes {
	if u.Contains(id) {
		return u
	}
	next := make(map[string]struct{}, len(u.ids)+1)
	for k := range u.ids {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}
	return UsedRecipes{ids: next}
}

// Len 集合大小
func (u UsedRecipes) Len() int {
	return len(u.ids)
}
