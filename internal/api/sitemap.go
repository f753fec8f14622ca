package api

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/pkg/pagecache"
	"github.com/rwecho/AIGCPilot/internal/repository"
)

// SitemapHandler 站点地图与robots处理器
type SitemapHandler struct {
	toolRepo repository.ToolRepository
	newsRepo repository.NewsRepository
	baseURL  string
	cache    *pagecache.Cache
	ttl      time.Duration
}

// NewSitemapHandler 创建站点地图处理器
func NewSitemapHandler(cfg *config.Config, cache *pagecache.Cache) *SitemapHandler {
	return &SitemapHandler{
		toolRepo: repository.NewToolRepository(),
		newsRepo: repository.NewNewsRepository(),
		baseURL:  strings.TrimRight(cfg.Site.BaseURL, "/"),
		cache:    cache,
		ttl:      cfg.Cache.GetDetailTTL(),
	}
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap 输出sitemap.xml，只收录已发布内容，双语页面各一条
func (h *SitemapHandler) Sitemap(c *gin.Context) {
	ctx := c.Request.Context()

	if data, ok := h.cache.Get(ctx, "/sitemap.xml"); ok {
		c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
		return
	}

	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, locale := range model.Locales {
		set.URLs = append(set.URLs,
			sitemapURL{Loc: fmt.Sprintf("%s/%s", h.baseURL, locale)},
			sitemapURL{Loc: fmt.Sprintf("%s/%s/news", h.baseURL, locale)},
		)
	}

	tools, err := h.toolRepo.ListPublishedForSitemap(ctx)
	if err != nil {
		logger.Error("生成站点地图失败", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	for _, tool := range tools {
		for _, locale := range model.Locales {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:     fmt.Sprintf("%s/%s/tools/%d", h.baseURL, locale, tool.ToolID),
				LastMod: tool.UpdatedAt.UTC().Format("2006-01-02"),
			})
		}
	}

	items, err := h.newsRepo.ListPublishedForSitemap(ctx)
	if err != nil {
		logger.Error("生成站点地图失败", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	for _, news := range items {
		for _, locale := range model.Locales {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:     fmt.Sprintf("%s/%s/news/%d", h.baseURL, locale, news.NewsID),
				LastMod: news.UpdatedAt.UTC().Format("2006-01-02"),
			})
		}
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	payload := append([]byte(xml.Header), body...)

	h.cache.Set(ctx, "/sitemap.xml", payload, h.ttl, "tools", "news")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", payload)
}

// Robots 输出robots.txt，屏蔽后台和接口路径
func (h *SitemapHandler) Robots(c *gin.Context) {
	body := strings.Join([]string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /admin/",
		"Disallow: /login/",
		"Disallow: /api/",
		"",
		"Sitemap: " + h.baseURL + "/sitemap.xml",
		"",
	}, "\n")
	c.String(http.StatusOK, body)
}
