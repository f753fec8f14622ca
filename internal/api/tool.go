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

// ToolHandler 工具处理器
type ToolHandler struct {
	resolver     service.ResolverService
	toolRepo     repository.ToolRepository
	categoryRepo repository.CategoryRepository
	cache        *pagecache.Cache
	listTTL      time.Duration
	detailTTL    time.Duration
}

// NewToolHandler 创建工具处理器
func NewToolHandler(cfg *config.Config, cache *pagecache.Cache) *ToolHandler {
	return &ToolHandler{
		resolver:     service.NewResolverService(),
		toolRepo:     repository.NewToolRepository(),
		categoryRepo: repository.NewCategoryRepository(),
		cache:        cache,
		listTTL:      cfg.Cache.GetListTTL(),
		detailTTL:    cfg.Cache.GetDetailTTL(),
	}
}

// List 公开的工具列表。支持按分类slug和热门筛选。
// urlsOnly=true 时只返回全部工具URL，供采集端去重用。
func (h *ToolHandler) List(c *gin.Context) {
	if c.Query("urlsOnly") == "true" {
		urls, err := h.toolRepo.ListURLs(c.Request.Context())
		if err != nil {
			logger.Error("查询工具URL失败", zap.Error(err))
			c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
			return
		}
		c.JSON(http.StatusOK, model.Success(urls))
		return
	}

	locale := middleware.Locale(c)
	categorySlug := c.Query("category")
	hotOnly := c.Query("hot") == "true"

	cacheKey := "/api/tools?locale=" + locale + "&category=" + categorySlug
	if hotOnly {
		cacheKey += "&hot=true"
	}
	if data, ok := h.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	filter := repository.ToolFilter{HotOnly: hotOnly}
	if categorySlug != "" {
		category, err := h.categoryRepo.GetBySlug(c.Request.Context(), categorySlug)
		if err != nil {
			c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
			return
		}
		if category == nil {
			c.JSON(http.StatusNotFound, model.NotFound("分类不存在"))
			return
		}
		filter.CategoryID = category.CategoryID
	}

	views, err := h.resolver.ToolList(c.Request.Context(), locale, filter)
	if err != nil {
		logger.Error("查询工具列表失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}

	resp := model.Success(views)
	if body, err := json.Marshal(resp); err == nil {
		h.cache.Set(c.Request.Context(), cacheKey, body, h.listTTL, "tools")
	}
	c.JSON(http.StatusOK, resp)
}

// Detail 公开的工具详情
func (h *ToolHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("ID格式错误"))
		return
	}

	locale := middleware.Locale(c)
	cacheKey := "/api/tools/" + c.Param("id") + "?locale=" + locale
	if data, ok := h.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	view, err := h.resolver.ToolDetail(c.Request.Context(), locale, id)
	if err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, model.NotFound("工具不存在"))
			return
		}
		logger.Error("查询工具详情失败", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}

	resp := model.Success(view)
	if body, err := json.Marshal(resp); err == nil {
		h.cache.Set(c.Request.Context(), cacheKey, body, h.detailTTL, "tools")
	}
	c.JSON(http.StatusOK, resp)
}

// AdminList 后台工具列表，按状态筛选、分页
func (h *ToolHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	status := c.Query("status")
	if status != "" && !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, model.BadRequest("无效的状态"))
		return
	}

	tools, total, err := h.toolRepo.ListAdmin(c.Request.Context(), page, pageSize, status)
	if err != nil {
		logger.Error("查询后台工具列表失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}

	c.JSON(http.StatusOK, model.PageData(total, page, pageSize, tools))
}

type toolUpdateRequest struct {
	Status    *string  `json:"status"`
	IsHot     *bool    `json:"is_hot"`
	Rate      *float64 `json:"rate"`
	Region    *string  `json:"region"`
	TitleZh   *string  `json:"title_zh"`
	TitleEn   *string  `json:"title_en"`
	SummaryZh *string  `json:"summary_zh"`
	SummaryEn *string  `json:"summary_en"`
	ContentZh *string  `json:"content_zh"`
	ContentEn *string  `json:"content_en"`
	Logo      *string  `json:"logo"`
	VideoURL  *string  `json:"video_url"`
	CoreValue *string  `json:"core_value"`
	UseCases  *string  `json:"use_cases"`
	ProsCons  *string  `json:"pros_cons"`
}

// AdminUpdate 后台编辑工具。字段都是稀疏更新，状态变更走状态机校验。
func (h *ToolHandler) AdminUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("ID格式错误"))
		return
	}

	var req toolUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	tool, err := h.toolRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	if tool == nil || tool.IsDeleted {
		c.JSON(http.StatusNotFound, model.NotFound("工具不存在"))
		return
	}

	fields := map[string]interface{}{}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, model.BadRequest("无效的状态"))
			return
		}
		if !model.CanTransition(tool.Status, *req.Status) {
			c.JSON(http.StatusBadRequest, model.BadRequest("不允许从"+tool.Status+"变更为"+*req.Status))
			return
		}
		if *req.Status != tool.Status {
			fields["status"] = *req.Status
		}
	}
	if req.IsHot != nil {
		fields["is_hot"] = *req.IsHot
	}
	if req.Rate != nil {
		if *req.Rate < 0 || *req.Rate > 5 {
			c.JSON(http.StatusBadRequest, model.BadRequest("评分需在0到5之间"))
			return
		}
		fields["rate"] = *req.Rate
	}
	if req.Region != nil {
		fields["region"] = *req.Region
	}
	if req.TitleZh != nil {
		fields["title_zh"] = *req.TitleZh
	}
	if req.TitleEn != nil {
		fields["title_en"] = *req.TitleEn
	}
	if req.SummaryZh != nil {
		fields["summary_zh"] = *req.SummaryZh
	}
	if req.SummaryEn != nil {
		fields["summary_en"] = *req.SummaryEn
	}
	if req.ContentZh != nil {
		fields["content_zh"] = *req.ContentZh
	}
	if req.ContentEn != nil {
		fields["content_en"] = *req.ContentEn
	}
	if req.Logo != nil {
		fields["logo"] = *req.Logo
	}
	if req.VideoURL != nil {
		fields["video_url"] = *req.VideoURL
	}
	if req.CoreValue != nil {
		fields["core_value"] = *req.CoreValue
	}
	if req.UseCases != nil {
		fields["use_cases"] = *req.UseCases
	}
	if req.ProsCons != nil {
		fields["pros_cons"] = *req.ProsCons
	}

	if len(fields) > 0 {
		if err := h.toolRepo.Updates(c.Request.Context(), id, fields); err != nil {
			logger.Error("更新工具失败", zap.Uint64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, model.ServerError("更新失败"))
			return
		}
	}

	h.cache.InvalidateTags(c.Request.Context(), "tools")

	tool, err = h.toolRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	c.JSON(http.StatusOK, model.Success(tool))
}

// AdminDelete 后台软删除工具
func (h *ToolHandler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("ID格式错误"))
		return
	}

	tool, err := h.toolRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ServerError("查询失败"))
		return
	}
	if tool == nil || tool.IsDeleted {
		c.JSON(http.StatusNotFound, model.NotFound("工具不存在"))
		return
	}

	if err := h.toolRepo.SoftDelete(c.Request.Context(), id); err != nil {
		logger.Error("删除工具失败", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("删除失败"))
		return
	}

	h.cache.InvalidateTags(c.Request.Context(), "tools")
	c.JSON(http.StatusOK, model.SuccessWithMessage("删除成功", nil))
}
