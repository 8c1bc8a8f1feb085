package plan

import (
	"net/http"
	"strconv"

	"meal-plan-generator/internal/core/mealplan"
	"meal-plan-generator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 計畫相關處理程序
type Handler struct {
	service *mealplan.Service
	debug   bool
}

// NewHandler 創建計畫處理程序；debug 時錯誤回應包含原始錯誤
func NewHandler(service *mealplan.Service, debug bool) *Handler {
	return &Handler{service: service, debug: debug}
}

// respondError 以 CustomError 的狀態碼與代碼回應
func (h *Handler) respondError(c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	fields := []zap.Field{
		zap.String("code", ce.Code),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.Writer.Header().Get("X-Request-ID")),
		zap.Error(err),
	}
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("Request failed", fields...)
	} else {
		common.LogWarn("Request rejected", fields...)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(h.debug))
}

func (h *Handler) bindRequest(c *gin.Context) (mealplan.PlanRequest, bool) {
	var req mealplan.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, common.ErrInvalidRequest.Wrap(err))
		return req, false
	}
	return req, true
}

// HandleWeekPlan 生成一週計畫
func (h *Handler) HandleWeekPlan(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	result, err := h.service.GenerateWeek(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Cached {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// HandleDayPlan 生成單日計畫
func (h *Handler) HandleDayPlan(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	result, err := h.service.GenerateDay(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Cached {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// HandleGetPlan 讀取已保存的計畫
func (h *Handler) HandleGetPlan(c *gin.Context) {
	rec, err := h.service.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// HandleListPlans 列出最近的計畫
func (h *Handler) HandleListPlans(c *gin.Context) {
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		h.respondError(c, err)
		return
	}

	plans, err := h.service.ListPlans(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// HandleDistribution 查詢餐次分配表
func (h *Handler) HandleDistribution(c *gin.Context) {
	meals, err := queryInt(c, "meals", 0)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.service.Distribution(meals, c.Query("goal"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleRecipes 列出目錄中的食譜
func (h *Handler) HandleRecipes(c *gin.Context) {
	recipes, err := h.service.Recipes(c.Query("mealType"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(recipes),
		"recipes": recipes,
	})
}

// HandleRecipe 依 ID 取得目錄中的食譜
func (h *Handler) HandleRecipe(c *gin.Context) {
	r, err := h.service.Recipe(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewError(common.ErrCodeInvalidRequest, "query parameter "+name+" must be an integer", http.StatusBadRequest, err)
	}
	return v, nil
}
