package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-plan-generator/internal/api"
	"meal-plan-generator/internal/api/handlers/health"
	"meal-plan-generator/internal/core/cache"
	"meal-plan-generator/internal/core/mealplan"
	"meal-plan-generator/internal/core/recipe"
	"meal-plan-generator/internal/infrastructure/config"
	"meal-plan-generator/internal/infrastructure/storage"
	"meal-plan-generator/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("Config loaded",
		zap.String("env", cfg.App.Env),
		zap.String("meals_path", cfg.Catalog.MealsPath),
		zap.String("remote_url", cfg.Catalog.RemoteURL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("sqlite_path", cfg.Storage.SQLitePath),
	)

	// 載入食譜目錄
	catalog, err := loadCatalog(cfg)
	if err != nil {
		common.LogFatal("Failed to load recipe catalog", zap.Error(err))
	}
	stats := catalog.Stats()
	common.LogInfo("Recipe catalog loaded",
		zap.Int("recipes", stats.Recipes),
		zap.Int("ingredients", stats.Ingredients),
	)

	// 初始化快取
	planCache, err := cache.New(&cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	defer planCache.Close()

	// 初始化計畫儲存；未設定路徑時停用
	var (
		store  mealplan.Store
		pinger health.Pinger
	)
	if cfg.Storage.SQLitePath != "" {
		db, err := storage.NewSQLiteStorage(cfg.Storage.SQLitePath)
		if err != nil {
			common.LogFatal("Failed to open plan storage", zap.Error(err))
		}
		defer db.Close()
		store, pinger = db, db
	}

	planService := mealplan.NewService(cfg, catalog, planCache, store)

	// 設置路由
	router, err := api.SetupRouter(cfg, planService, pinger)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}

// loadCatalog 有遠端位址時從遠端下載，否則讀取本地檔案
func loadCatalog(cfg *config.Config) (*recipe.Catalog, error) {
	if cfg.Catalog.RemoteURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.Timeout+5*time.Second)
		defer cancel()
		return recipe.NewRemoteSource(cfg.Catalog.RemoteURL, cfg.Catalog.Timeout).Fetch(ctx)
	}
	return recipe.LoadFiles(cfg.Catalog.MealsPath, cfg.Catalog.FoodsPath)
}
