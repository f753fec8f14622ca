package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/database"
	"github.com/rwecho/AIGCPilot/internal/pkg/redis"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	cfg       *config.Config
	startTime time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// Health 健康检查接口
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.Success(gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
		"uptime": time.Since(h.startTime).String(),
	}))
}

// Ping 简单ping接口
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// Ready 就绪检查，确认依赖服务可用。Redis是可选依赖，未启用不算失败。
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := make(map[string]string)

	db := database.GetDB()
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Ping(); err == nil {
			checks["mysql"] = "ok"
		} else {
			checks["mysql"] = "error: " + err.Error()
		}
	} else {
		checks["mysql"] = "error: " + err.Error()
	}

	if rdb := redis.GetClient(); rdb != nil {
		if err := rdb.Ping(c.Request.Context()).Err(); err == nil {
			checks["redis"] = "ok"
		} else {
			checks["redis"] = "error: " + err.Error()
		}
	} else {
		checks["redis"] = "disabled"
	}

	if checks["mysql"] != "ok" {
		c.JSON(http.StatusServiceUnavailable, model.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "service not ready",
			Data:    checks,
		})
		return
	}
	c.JSON(http.StatusOK, model.Success(checks))
}
