package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/pkg/pagecache"
	"github.com/rwecho/AIGCPilot/internal/repository"
	"github.com/rwecho/AIGCPilot/internal/service"
)

// HealthCheckHandler 链接巡检处理器
type HealthCheckHandler struct {
	healthService service.HealthCheckService
	logRepo       repository.CrawlerLogRepository
	cache         *pagecache.Cache
}

// NewHealthCheckHandler 创建链接巡检处理器
func NewHealthCheckHandler(cfg *config.Config, cache *pagecache.Cache) *HealthCheckHandler {
	return &HealthCheckHandler{
		healthService: service.NewHealthCheckService(&cfg.Crawler),
		logRepo:       repository.NewCrawlerLogRepository(),
		cache:         cache,
	}
}

// Run 触发一轮链接巡检，同步执行后返回结果
func (h *HealthCheckHandler) Run(c *gin.Context) {
	result, err := h.healthService.Run(c.Request.Context())
	if err != nil {
		logger.Error("链接巡检失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("巡检失败"))
		return
	}

	if result.OfflineCount > 0 {
		h.cache.InvalidateTags(c.Request.Context(), "tools")
	}
	c.JSON(http.StatusOK, model.Success(result))
}

// Logs 最近的巡检与采集日志
func (h *HealthCheckHandler) Logs(c *gin.Context) {
	logs, err := h.logRepo.ListRecent(c.Request.Context(), 50)
	if err != nil {
		logger.Error("查询巡检日志失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	c.JSON(http.StatusOK, model.Success(logs))
}
