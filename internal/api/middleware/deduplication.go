package middleware

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-plan-generator/internal/pkg/common"
)

const defaultDedupWindow = time.Second

// Deduplicator 在時間窗內拒絕相同路徑與內容的重複 POST
type Deduplicator struct {
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	requests map[string]time.Time
}

// NewDeduplicator 創建去重器；window <= 0 時使用 1 秒
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &Deduplicator{
		window:   window,
		now:      time.Now,
		requests: make(map[string]time.Time),
	}
}

// seen 記錄指紋並回報是否在時間窗內出現過
func (d *Deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if last, exists := d.requests[fingerprint]; exists && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now

	// 順帶清理過舊的指紋
	for k, t := range d.requests {
		if now.Sub(t) > 10*d.window {
			delete(d.requests, k)
		}
	}
	return false
}

// Middleware 請求去重中間件
func (d *Deduplicator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}
			bodyHash = common.HashString(string(body))

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		// 生成請求指紋
		fingerprint := c.ClientIP() + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		if d.seen(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
				Code:    common.ErrCodeTooManyRequests,
				Message: "request too frequent",
			})
			return
		}

		c.Next()
	}
}
