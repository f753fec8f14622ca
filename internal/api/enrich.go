package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/pkg/pagecache"
	"github.com/rwecho/AIGCPilot/internal/service"
)

// EnrichHandler 补全处理器：给采集端派发待补全的工具并回写补全结果
type EnrichHandler struct {
	ingestService service.IngestService
	cache         *pagecache.Cache
}

// NewEnrichHandler 创建补全处理器
func NewEnrichHandler(cache *pagecache.Cache) *EnrichHandler {
	return &EnrichHandler{
		ingestService: service.NewIngestService(),
		cache:         cache,
	}
}

// List 返回一批缺截图或缺详情的工具，按最久未更新优先
func (h *EnrichHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	tools, err := h.ingestService.ListNeedingEnrichment(c.Request.Context(), limit)
	if err != nil {
		logger.Error("查询待补全工具失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}

	c.JSON(http.StatusOK, model.Success(tools))
}

// Apply 回写补全结果。只更新请求里带的字段，已驳回的工具不接受回写。
func (h *EnrichHandler) Apply(c *gin.Context) {
	var req service.EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	tool, err := h.ingestService.ApplyEnrichment(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, model.BadRequest(err.Error()))
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, model.NotFound("工具不存在"))
		case errors.Is(err, service.ErrRejectedTool):
			c.JSON(http.StatusBadRequest, model.BadRequest("已驳回的工具不接受补全"))
		default:
			logger.Error("补全回写失败", zap.Uint64("id", req.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, model.ServerError("回写失败"))
		}
		return
	}

	h.cache.InvalidateTags(c.Request.Context(), "tools")
	c.JSON(http.StatusOK, model.Success(tool))
}
