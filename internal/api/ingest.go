package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/pkg/pagecache"
	"github.com/rwecho/AIGCPilot/internal/service"
)

// IngestHandler 采集入库处理器
type IngestHandler struct {
	ingestService service.IngestService
	cache         *pagecache.Cache
}

// NewIngestHandler 创建采集入库处理器
func NewIngestHandler(cache *pagecache.Cache) *IngestHandler {
	return &IngestHandler{
		ingestService: service.NewIngestService(),
		cache:         cache,
	}
}

// InjectTool 采集端写入工具。无论带不带评分，入库后一律是待审状态。
func (h *IngestHandler) InjectTool(c *gin.Context) {
	var req service.ToolInjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	tool, err := h.ingestService.InjectTool(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, model.BadRequest(err.Error()))
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, model.NotFound("分类不存在: "+req.CategorySlug))
		default:
			logger.Error("工具入库失败", zap.String("url", req.URL), zap.Error(err))
			c.JSON(http.StatusInternalServerError, model.ServerError("入库失败"))
		}
		return
	}

	logger.Info("工具入库成功",
		zap.Uint64("tool_id", tool.ToolID),
		zap.String("url", tool.URL),
	)
	c.JSON(http.StatusOK, model.Success(tool))
}

// InjectNews 采集端写入资讯。关联不上的工具URL直接跳过，不报错。
func (h *IngestHandler) InjectNews(c *gin.Context) {
	var req service.NewsInjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	news, err := h.ingestService.InjectNews(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, model.BadRequest(err.Error()))
			return
		}
		logger.Error("资讯入库失败", zap.String("title", req.Title), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("入库失败"))
		return
	}

	h.cache.InvalidateTags(c.Request.Context(), "news")
	logger.Info("资讯入库成功", zap.Uint64("news_id", news.NewsID))
	c.JSON(http.StatusOK, model.Success(news))
}
