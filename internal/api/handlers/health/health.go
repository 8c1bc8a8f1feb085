package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"meal-plan-generator/internal/core/mealplan"
	"meal-plan-generator/internal/core/recipe"
	"meal-plan-generator/internal/infrastructure/config"
	"meal-plan-generator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 可檢查連線的依賴
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *recipe.Stats          `json:"catalog,omitempty"`
}

func planService(c *gin.Context) *mealplan.Service {
	v, exists := c.Get("plan_service")
	if !exists {
		return nil
	}
	svc, _ := v.(*mealplan.Service)
	return svc
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, common.ErrInternalError.Response(false))
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, common.ErrInternalError.Response(false))
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if svc := planService(c); svc != nil && svc.Catalog() != nil {
		stats := svc.Catalog().Stats()
		response.Catalog = &stats
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：目錄已載入且計畫儲存可連線
func ReadinessCheck(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if svc := planService(c); svc != nil && svc.Catalog() != nil && len(svc.Catalog().Recipes()) > 0 {
		checks["catalog"] = "ok"
	} else {
		checks["catalog"] = "empty"
		ready = false
	}

	if v, exists := c.Get("plan_store"); exists {
		if store, ok := v.(Pinger); ok {
			if err := store.Ping(c.Request.Context()); err != nil {
				common.LogWarn("Plan store not ready", zap.Error(err))
				checks["storage"] = "unavailable"
				ready = false
			} else {
				checks["storage"] = "ok"
			}
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
