package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"meal-plan-generator/internal/api/handlers/health"
	planHandler "meal-plan-generator/internal/api/handlers/plan"
	"meal-plan-generator/internal/api/middleware"
	"meal-plan-generator/internal/core/mealplan"
	"meal-plan-generator/internal/infrastructure/config"
	"meal-plan-generator/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 30 * time.Second

// SetupRouter 設置路由；store 為 nil 時就緒檢查略過儲存
func SetupRouter(cfg *config.Config, planService *mealplan.Service, store health.Pinger) (*gin.Engine, error) {
	if cfg == nil || planService == nil {
		return nil, fmt.Errorf("router requires config and plan service")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrNotFound.Response(false))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.ErrMethodNotAllowed.Response(false))
	})

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	if cfg.Server.MaxBodyBytes > 0 {
		router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	}

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("plan_service", planService)
		if store != nil {
			c.Set("plan_store", store)
		}

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrGatewayTimeout.Response(false))
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	plans := planHandler.NewHandler(planService, cfg.App.Debug)

	api := router.Group("/api/v1")
	{
		planGroup := api.Group("/plans")
		if cfg.RateLimit.Enabled {
			planGroup.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
		}
		planGroup.Use(middleware.NewDeduplicator(cfg.DedupWindow).Middleware())
		{
			planGroup.POST("/week", plans.HandleWeekPlan)
			planGroup.POST("/day", plans.HandleDayPlan)
			planGroup.GET("", plans.HandleListPlans)
			planGroup.GET("/:id", plans.HandleGetPlan)
		}

		api.GET("/distributions", plans.HandleDistribution)
		api.GET("/catalog/recipes", plans.HandleRecipes)
		api.GET("/catalog/recipes/:id", plans.HandleRecipe)
	}

	common.LogInfo("Router setup completed",
		zap.Duration("timeout", timeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)

	return router, nil
}
