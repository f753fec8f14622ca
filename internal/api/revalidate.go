package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/pkg/pagecache"
)

// RevalidateHandler 页面缓存失效处理器
type RevalidateHandler struct {
	cache *pagecache.Cache
}

// NewRevalidateHandler 创建缓存失效处理器
func NewRevalidateHandler(cache *pagecache.Cache) *RevalidateHandler {
	return &RevalidateHandler{cache: cache}
}

type revalidateRequest struct {
	Paths []string `json:"paths"`
	Tags  []string `json:"tags"`
}

// Revalidate 主动让缓存失效。不带参数时刷新站点主路径和分类标签。
func (h *RevalidateHandler) Revalidate(c *gin.Context) {
	var req revalidateRequest
	// 空请求体等同于全量默认刷新
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	if len(req.Paths) == 0 && len(req.Tags) == 0 {
		req.Paths = []string{"/zh", "/en", "/sitemap.xml"}
		req.Tags = []string{"categories"}
	}

	if !h.cache.Enabled() {
		c.JSON(http.StatusOK, model.SuccessWithMessage("缓存未启用", gin.H{
			"paths": req.Paths,
			"tags":  req.Tags,
		}))
		return
	}

	if len(req.Paths) > 0 {
		if err := h.cache.InvalidatePaths(c.Request.Context(), req.Paths...); err != nil {
			logger.Error("按路径刷新缓存失败", zap.Strings("paths", req.Paths), zap.Error(err))
			c.JSON(http.StatusInternalServerError, model.ServerError("刷新失败"))
			return
		}
	}
	if len(req.Tags) > 0 {
		if err := h.cache.InvalidateTags(c.Request.Context(), req.Tags...); err != nil {
			logger.Error("按标签刷新缓存失败", zap.Strings("tags", req.Tags), zap.Error(err))
			c.JSON(http.StatusInternalServerError, model.ServerError("刷新失败"))
			return
		}
	}

	logger.Info("缓存已刷新",
		zap.Strings("paths", req.Paths),
		zap.Strings("tags", req.Tags),
	)
	c.JSON(http.StatusOK, model.Success(gin.H{
		"paths": req.Paths,
		"tags":  req.Tags,
	}))
}
