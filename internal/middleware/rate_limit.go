package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
)

// TokenBucket 按key(客户端IP)的令牌桶限流器
type TokenBucket struct {
	rate       int
	capacity   int
	tokens     map[string]int
	lastUpdate map[string]time.Time
	mu         sync.Mutex
}

// NewTokenBucket 创建令牌桶限流器
func NewTokenBucket(rate, capacity int) *TokenBucket {
	tb := &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     make(map[string]int),
		lastUpdate: make(map[string]time.Time),
	}

	go tb.cleanup()

	return tb
}

// Allow 检查是否允许请求
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()

	if _, exists := tb.tokens[key]; !exists {
		tb.tokens[key] = tb.capacity
		tb.lastUpdate[key] = now
	}

	elapsed := now.Sub(tb.lastUpdate[key])
	tokensToAdd := int(elapsed.Seconds() * float64(tb.rate))

	if tokensToAdd > 0 {
		tb.tokens[key] = min(tb.tokens[key]+tokensToAdd, tb.capacity)
		tb.lastUpdate[key] = now
	}

	if tb.tokens[key] > 0 {
		tb.tokens[key]--
		return true
	}

	return false
}

// cleanup 定期清理超过5分钟未访问的key
func (tb *TokenBucket) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		tb.mu.Lock()
		now := time.Now()
		for key, lastTime := range tb.lastUpdate {
			if now.Sub(lastTime) > 5*time.Minute {
				delete(tb.tokens, key)
				delete(tb.lastUpdate, key)
			}
		}
		tb.mu.Unlock()
	}
}

// RateLimitMiddleware 限流中间件
func RateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiter := NewTokenBucket(int(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			logger.Warn("请求被限流",
				zap.String("ip", key),
				zap.String("path", c.Request.URL.Path),
			)

			c.JSON(http.StatusTooManyRequests, model.Response{
				Code:    http.StatusTooManyRequests,
				Message: "请求过于频繁,请稍后再试",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
