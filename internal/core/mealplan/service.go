// Package mealplan 是計畫引擎的應用服務：驗證請求、查詢快取、執行引擎並保存結果。
package mealplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-plan-generator/internal/core/cache"
	"meal-plan-generator/internal/core/planner"
	"meal-plan-generator/internal/core/recipe"
	"meal-plan-generator/internal/infrastructure/config"
	"meal-plan-generator/internal/infrastructure/storage"
	"meal-plan-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 計畫儲存
type Store interface {
	SavePlan(ctx context.Context, plan storage.StoredPlan) error
	GetPlan(ctx context.Context, id string) (storage.StoredPlan, error)
	ListRecent(ctx context.Context, limit int) ([]storage.StoredPlan, error)
}

// Service 計畫服務
type Service struct {
	engine             *planner.Engine
	catalog            *recipe.Catalog
	cache              cache.Cache
	store              Store
	defaultMealsPerDay int
	defaultGoal        planner.GoalType
}

// NewService 創建計畫服務；cache 或 store 為 nil 時略過對應步驟
func NewService(cfg *config.Config, catalog *recipe.Catalog, c cache.Cache, store Store, opts ...planner.Option) *Service {
	if c == nil {
		c = cache.Disabled{}
	}
	engineOpts := append([]planner.Option{planner.WithDayNames(cfg.Planner.DayNames)}, opts...)

	return &Service{
		engine:             planner.NewEngine(catalog, engineOpts...),
		catalog:            catalog,
		cache:              c,
		store:              store,
		defaultMealsPerDay: cfg.Planner.DefaultMealsPerDay,
		defaultGoal:        planner.GoalType(cfg.Planner.DefaultGoal),
	}
}

// Catalog 回傳目前使用的目錄
func (s *Service) Catalog() *recipe.Catalog {
	return s.catalog
}

// checkCatalog 目錄沒有任何食譜時無法生成計畫
func (s *Service) checkCatalog() error {
	if s.catalog == nil || len(s.catalog.Recipes()) == 0 {
		return common.ErrCatalogUnavailable.Wrap(errors.New("recipe catalog is empty"))
	}
	return nil
}

// normalize 套用預設值並解析起始日
func (s *Service) normalize(req PlanRequest) (PlanRequest, time.Time, error) {
	if req.Preferences.MealsPerDay == 0 {
		req.Preferences.MealsPerDay = s.defaultMealsPerDay
	}
	if req.Preferences.Goal == "" {
		req.Preferences.Goal = s.defaultGoal
	}

	var start time.Time
	if strings.TrimSpace(req.StartDate) != "" {
		t, err := time.Parse(planner.DateLayout, strings.TrimSpace(req.StartDate))
		if err != nil {
			return req, time.Time{}, common.ErrInvalidRequest.Wrap(fmt.Errorf("startDate must be YYYY-MM-DD: %w", err))
		}
		start = t
	}
	return req, start, nil
}

// cacheKey 以解析後的請求計算快取鍵
func cacheKey(kind storage.PlanKind, req PlanRequest, start time.Time) (string, error) {
	req.StartDate = start.Format(planner.DateLayout)
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	return string(kind) + ":" + common.HashString(string(data)), nil
}

// engineError 將引擎錯誤轉為 API 錯誤
func engineError(err error) error {
	if planner.IsConfigError(err) {
		return common.ErrConfiguration.Wrap(err)
	}
	return common.ErrInternalError.Wrap(err)
}

// GenerateWeek 生成或從快取取得一週計畫
func (s *Service) GenerateWeek(ctx context.Context, req PlanRequest) (*WeekResult, error) {
	if err := s.checkCatalog(); err != nil {
		return nil, err
	}
	req, start, err := s.normalize(req)
	if err != nil {
		return nil, err
	}
	start = s.engine.StartDateFor(start)

	key, err := cacheKey(storage.KindWeek, req, start)
	if err != nil {
		return nil, common.ErrInternalError.Wrap(err)
	}

	var cached WeekResult
	if s.lookup(ctx, key, &cached) {
		cached.Cached = true
		return &cached, nil
	}

	week, err := s.engine.GenerateWeek(planner.WeekRequest{
		Targets:     req.DailyTargets,
		Preferences: req.Preferences,
		StartDate:   start,
	})
	if err != nil {
		common.LogWarn("Weekly plan rejected", zap.Error(err))
		return nil, engineError(err)
	}
	logWarnings(week.Warnings)

	result := &WeekResult{ID: common.GenerateUUID(), Plan: week}
	if err := s.persist(ctx, key, storage.KindWeek, week.StartDate, result.ID, week, result); err != nil {
		return nil, err
	}

	common.LogInfo("Weekly plan generated",
		zap.String("plan_id", result.ID),
		zap.String("start_date", week.StartDate),
		zap.Int("meals_per_day", week.MealsPerDay),
		zap.String("goal", string(week.Goal)),
		zap.Float64("avg_calories", week.Averages.AvgCalories),
		zap.Int("warnings", len(week.Warnings)),
	)
	return result, nil
}

// GenerateDay 生成或從快取取得單日計畫
func (s *Service) GenerateDay(ctx context.Context, req PlanRequest) (*DayResult, error) {
	if err := s.checkCatalog(); err != nil {
		return nil, err
	}
	req, date, err := s.normalize(req)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = s.engine.Today()
	}

	key, err := cacheKey(storage.KindDay, req, date)
	if err != nil {
		return nil, common.ErrInternalError.Wrap(err)
	}

	var cached DayResult
	if s.lookup(ctx, key, &cached) {
		cached.Cached = true
		return &cached, nil
	}

	day, _, warnings, err := s.engine.GenerateDay(date, req.DailyTargets, req.Preferences, planner.UsedRecipes{})
	if err != nil {
		common.LogWarn("Day plan rejected", zap.Error(err))
		return nil, engineError(err)
	}
	logWarnings(warnings)

	result := &DayResult{ID: common.GenerateUUID(), Plan: day, Warnings: warnings}
	if err := s.persist(ctx, key, storage.KindDay, day.Date, result.ID, day, result); err != nil {
		return nil, err
	}

	common.LogInfo("Day plan generated",
		zap.String("plan_id", result.ID),
		zap.String("date", day.Date),
		zap.Float64("calories", day.Totals.Calories),
		zap.Float64("calorie_diff", day.Report.CalorieDiff),
		zap.Int("iterations", day.Report.Iterations),
	)
	return result, nil
}

// lookup 讀取快取；任何錯誤都視為未命中
func (s *Service) lookup(ctx context.Context, key string, v interface{}) bool {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) && !errors.Is(err, common.ErrCacheDisabled) {
			common.LogWarn("Cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		common.LogWarn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// persist 保存計畫並寫入快取；快取失敗只記錄警告
func (s *Service) persist(ctx context.Context, key string, kind storage.PlanKind, startDate, id string, plan, result interface{}) error {
	if s.store != nil {
		data, err := json.Marshal(plan)
		if err != nil {
			return common.ErrInternalError.Wrap(err)
		}
		err = s.store.SavePlan(ctx, storage.StoredPlan{
			ID:          id,
			Kind:        kind,
			StartDate:   startDate,
			RequestHash: key,
			Data:        data,
		})
		if err != nil {
			common.LogError("Failed to save plan", zap.String("plan_id", id), zap.Error(err))
			return common.ErrInternalError.Wrap(err)
		}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return common.ErrInternalError.Wrap(err)
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		common.LogWarn("Failed to cache plan", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// GetPlan 依 ID 讀取已保存的計畫
func (s *Service) GetPlan(ctx context.Context, id string) (*PlanRecord, error) {
	if !common.IsUUID(id) {
		return nil, common.ErrInvalidRequest.Wrap(fmt.Errorf("invalid plan id %q", id))
	}
	if s.store == nil {
		return nil, common.ErrServiceUnavailable.Wrap(errors.New("plan storage disabled"))
	}

	plan, err := s.store.GetPlan(ctx, id)
	if errors.Is(err, storage.ErrPlanNotFound) {
		return nil, common.ErrNotFound.Wrap(err)
	}
	if err != nil {
		return nil, common.ErrInternalError.Wrap(err)
	}

	rec := recordFrom(plan, true)
	return &rec, nil
}

// ListPlans 列出最近保存的計畫（不含內容）
func (s *Service) ListPlans(ctx context.Context, limit int) ([]PlanRecord, error) {
	if s.store == nil {
		return []PlanRecord{}, nil
	}
	plans, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, common.ErrInternalError.Wrap(err)
	}
	records := make([]PlanRecord, 0, len(plans))
	for _, p := range plans {
		records = append(records, recordFrom(p, false))
	}
	return records, nil
}

// Distribution 查詢分配表；參數為零值時使用預設值
func (s *Service) Distribution(mealsPerDay int, goal string) (*DistributionResult, error) {
	if mealsPerDay == 0 {
		mealsPerDay = s.defaultMealsPerDay
	}
	if goal == "" {
		goal = string(s.defaultGoal)
	}
	g, err := planner.ParseGoal(goal)
	if err != nil {
		return nil, engineError(err)
	}
	dist, err := planner.MealDistribution(mealsPerDay, g)
	if err != nil {
		return nil, engineError(err)
	}
	return &DistributionResult{MealsPerDay: mealsPerDay, Goal: g, Distribution: dist}, nil
}

// Recipes 列出目錄中的食譜；mealType 為空時回傳全部
func (s *Service) Recipes(mealType string) ([]recipe.Recipe, error) {
	if mealType == "" {
		return s.catalog.Recipes(), nil
	}
	t, err := recipe.ParseMealType(mealType)
	if err != nil {
		return nil, common.ErrInvalidRequest.Wrap(err)
	}
	recipes := s.catalog.RecipesFor(t)
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	return recipes, nil
}

// Recipe 依 ID 取得目錄中的食譜
func (s *Service) Recipe(id string) (*recipe.Recipe, error) {
	r, ok := s.catalog.Recipe(id)
	if !ok {
		return nil, common.ErrNotFound.Wrap(fmt.Errorf("recipe %q", id))
	}
	return &r, nil
}

// logWarnings 以結構化欄位記錄引擎警告
func logWarnings(warnings []planner.Warning) {
	for _, w := range warnings {
		common.LogWarn("Plan generation warning",
			zap.String("kind", string(w.Kind)),
			zap.String("date", w.Date),
			zap.String("slot", w.Slot),
			zap.String("recipe_id", w.RecipeID),
			zap.String("ingredient", w.Ingredient),
			zap.String("message", w.Message),
		)
	}
}
