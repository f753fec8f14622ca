package api

import (
	"encoding/json"
	"fmt"
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

// CategoryHandler 分类处理器
type CategoryHandler struct {
	resolver     service.ResolverService
	categoryRepo repository.CategoryRepository
	toolRepo     repository.ToolRepository
	cache        *pagecache.Cache
	listTTL      time.Duration
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(cfg *config.Config, cache *pagecache.Cache) *CategoryHandler {
	return &CategoryHandler{
		resolver:     service.NewResolverService(),
		categoryRepo: repository.NewCategoryRepository(),
		toolRepo:     repository.NewToolRepository(),
		cache:        cache,
		listTTL:      cfg.Cache.GetListTTL(),
	}
}

// List 公开的分类列表
func (h *CategoryHandler) List(c *gin.Context) {
	locale := middleware.Locale(c)
	cacheKey := "/api/categories?locale=" + locale

	if data, ok := h.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	views, err := h.resolver.CategoryList(c.Request.Context(), locale)
	if err != nil {
		logger.Error("查询分类列表失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}

	resp := model.Success(views)
	if body, err := json.Marshal(resp); err == nil {
		h.cache.Set(c.Request.Context(), cacheKey, body, h.listTTL, "categories")
	}
	c.JSON(http.StatusOK, resp)
}

type categoryRequest struct {
	Slug   string `json:"slug" binding:"required"`
	NameZh string `json:"name_zh" binding:"required"`
	NameEn string `json:"name_en"`
	Icon   string `json:"icon"`
}

// Create 后台新建分类
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	existing, err := h.categoryRepo.GetBySlug(c.Request.Context(), req.Slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("slug已存在"))
		return
	}

	category := &model.Category{
		Slug:   req.Slug,
		NameZh: req.NameZh,
		NameEn: req.NameEn,
		Icon:   req.Icon,
	}
	if err := h.categoryRepo.Create(c.Request.Context(), category); err != nil {
		logger.Error("创建分类失败", zap.String("slug", req.Slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("创建失败"))
		return
	}

	h.cache.InvalidateTags(c.Request.Context(), "categories")
	c.JSON(http.StatusOK, model.Success(category))
}

// Update 后台更新分类
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("ID格式错误"))
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	category, err := h.categoryRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, model.NotFound("分类不存在"))
		return
	}

	category.Slug = req.Slug
	category.NameZh = req.NameZh
	category.NameEn = req.NameEn
	category.Icon = req.Icon
	if err := h.categoryRepo.Update(c.Request.Context(), category); err != nil {
		logger.Error("更新分类失败", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("更新失败"))
		return
	}

	h.cache.InvalidateTags(c.Request.Context(), "categories")
	c.JSON(http.StatusOK, model.Success(category))
}

// Delete 后台删除分类。尚有工具挂在该分类时拒绝删除。
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("ID格式错误"))
		return
	}

	category, err := h.categoryRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, model.NotFound("分类不存在"))
		return
	}

	count, err := h.toolRepo.CountByCategory(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, model.BadRequest(fmt.Sprintf("该分类下还有%d个工具，不能删除", count)))
		return
	}

	if err := h.categoryRepo.Delete(c.Request.Context(), id); err != nil {
		logger.Error("删除分类失败", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("删除失败"))
		return
	}

	h.cache.InvalidateTags(c.Request.Context(), "categories")
	c.JSON(http.StatusOK, model.SuccessWithMessage("删除成功", nil))
}
