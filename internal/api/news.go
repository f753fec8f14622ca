package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/middleware"
	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/pkg/pagecache"
	"github.com/rwecho/AIGCPilot/internal/repository"
	"github.com/rwecho/AIGCPilot/internal/service"
)

// NewsHandler 资讯处理器
type NewsHandler struct {
	resolver  service.ResolverService
	newsRepo  repository.NewsRepository
	toolRepo  repository.ToolRepository
	cache     *pagecache.Cache
	listTTL   time.Duration
	detailTTL time.Duration
}

// NewNewsHandler 创建资讯处理器
func NewNewsHandler(cfg *config.Config, cache *pagecache.Cache) *NewsHandler {
	return &NewsHandler{
		resolver:  service.NewResolverService(),
		newsRepo:  repository.NewNewsRepository(),
		toolRepo:  repository.NewToolRepository(),
		cache:     cache,
		listTTL:   cfg.Cache.GetListTTL(),
		detailTTL: cfg.Cache.GetDetailTTL(),
	}
}

// List 公开的资讯列表，分页
func (h *NewsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	locale := middleware.Locale(c)
	cacheKey := "/api/news?locale=" + locale + "&page=" + strconv.Itoa(page) + "&page_size=" + strconv.Itoa(pageSize)
	if data, ok := h.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	views, total, err := h.resolver.NewsList(c.Request.Context(), locale, page, pageSize)
	if err != nil {
		logger.Error("查询资讯列表失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}

	resp := model.PageData(total, page, pageSize, views)
	if body, err := json.Marshal(resp); err == nil {
		h.cache.Set(c.Request.Context(), cacheKey, body, h.listTTL, "news")
	}
	c.JSON(http.StatusOK, resp)
}

// Detail 公开的资讯详情
func (h *NewsHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("ID格式错误"))
		return
	}

	locale := middleware.Locale(c)
	cacheKey := "/api/news/" + c.Param("id") + "?locale=" + locale
	if data, ok := h.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	view, err := h.resolver.NewsDetail(c.Request.Context(), locale, id)
	if err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, model.NotFound("资讯不存在"))
			return
		}
		logger.Error("查询资讯详情失败", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}

	resp := model.Success(view)
	if body, err := json.Marshal(resp); err == nil {
		h.cache.Set(c.Request.Context(), cacheKey, body, h.detailTTL, "news")
	}
	c.JSON(http.StatusOK, resp)
}

// AdminList 后台资讯列表，不过滤状态
func (h *NewsHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.newsRepo.ListAdmin(c.Request.Context(), page, pageSize)
	if err != nil {
		logger.Error("查询后台资讯列表失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}

	c.JSON(http.StatusOK, model.PageData(total, page, pageSize, items))
}

type newsUpdateRequest struct {
	Title        *string  `json:"title"`
	Content      *string  `json:"content"`
	SourceURL    *string  `json:"source_url"`
	Status       *string  `json:"status"`
	RelatedTools []uint64 `json:"related_tool_ids"`
}

// AdminUpdate 后台编辑资讯
func (h *NewsHandler) AdminUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("ID格式错误"))
		return
	}

	var req newsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	news, err := h.newsRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	if news == nil {
		c.JSON(http.StatusNotFound, model.NotFound("资讯不存在"))
		return
	}

	if req.Title != nil {
		news.Title = *req.Title
	}
	if req.Content != nil {
		news.Content = *req.Content
	}
	if req.SourceURL != nil {
		news.SourceURL = *req.SourceURL
	}
	if req.Status != nil {
		if *req.Status != model.StatusPublished && *req.Status != model.StatusOffline {
			c.JSON(http.StatusBadRequest, model.BadRequest("无效的状态"))
			return
		}
		news.Status = *req.Status
	}

	if err := h.newsRepo.Update(c.Request.Context(), news); err != nil {
		logger.Error("更新资讯失败", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("更新失败"))
		return
	}

	if req.RelatedTools != nil {
		tools := make([]*model.Tool, 0, len(req.RelatedTools))
		for _, toolID := range req.RelatedTools {
			tool, err := h.toolRepo.GetByID(c.Request.Context(), toolID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
				return
			}
			if tool != nil {
				tools = append(tools, tool)
			}
		}
		if err := h.newsRepo.ReplaceRelatedTools(c.Request.Context(), news, tools); err != nil {
			logger.Error("更新资讯关联工具失败", zap.Uint64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, model.ServerError("更新失败"))
			return
		}
	}

	h.cache.InvalidateTags(c.Request.Context(), "news")

	news, err = h.newsRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	c.JSON(http.StatusOK, model.Success(news))
}

// AdminDelete 后台删除资讯
func (h *NewsHandler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("ID格式错误"))
		return
	}

	news, err := h.newsRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	if news == nil {
		c.JSON(http.StatusNotFound, model.NotFound("资讯不存在"))
		return
	}

	if err := h.newsRepo.Delete(c.Request.Context(), id); err != nil {
		logger.Error("删除资讯失败", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("删除失败"))
		return
	}

	h.cache.InvalidateTags(c.Request.Context(), "news")
	c.JSON(http.StatusOK, model.SuccessWithMessage("删除成功", nil))
}
