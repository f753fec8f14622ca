package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rwecho/AIGCPilot/internal/middleware"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/pagecache"
	"github.com/rwecho/AIGCPilot/internal/pkg/redis"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimitMiddleware(cfg))

	// 页面缓存，Redis不可用时自动降级为直查
	cache := pagecache.New(redis.GetClient())

	toolHandler := NewToolHandler(cfg, cache)
	newsHandler := NewNewsHandler(cfg, cache)
	categoryHandler := NewCategoryHandler(cfg, cache)
	authHandler := NewAuthHandler(cfg)
	chatHandler := NewChatHandler(cfg)
	ingestHandler := NewIngestHandler(cache)
	enrichHandler := NewEnrichHandler(cache)
	healthCheckHandler := NewHealthCheckHandler(cfg, cache)
	revalidateHandler := NewRevalidateHandler(cache)
	sitemapHandler := NewSitemapHandler(cfg, cache)
	healthHandler := NewHealthHandler(cfg)

	// 裸根路径按协商语言跳转
	r.GET("/", func(c *gin.Context) {
		locale := middleware.NegotiateLocale(c, cfg.Site.DefaultLocale)
		c.Redirect(http.StatusFound, "/"+locale)
	})

	// 搜索引擎入口
	r.GET("/sitemap.xml", sitemapHandler.Sitemap)
	r.GET("/robots.txt", sitemapHandler.Robots)

	// API分组
	api := r.Group("/api")
	{
		// 健康检查接口
		api.GET("/health", healthHandler.Health)
		api.GET("/ping", healthHandler.Ping)
		api.GET("/ready", healthHandler.Ready)

		// 认证接口
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", authHandler.Me)
		api.POST("/auth/logout", authHandler.Logout)

		// 公开内容接口，带语言协商
		public := api.Group("", middleware.LocaleMiddleware(cfg.Site.DefaultLocale))
		{
			public.GET("/categories", categoryHandler.List)
			public.GET("/tools", toolHandler.List)
			public.GET("/tools/:id", toolHandler.Detail)
			public.GET("/news", newsHandler.List)
			public.GET("/news/:id", newsHandler.Detail)
		}

		// AI对话接口
		api.POST("/chat", chatHandler.Stream)

		// 后台管理接口，需要会话登录
		admin := api.Group("/admin", middleware.SessionAuthMiddleware(cfg))
		{
			admin.GET("/tools", toolHandler.AdminList)
			admin.PATCH("/tools/:id", toolHandler.AdminUpdate)
			admin.DELETE("/tools/:id", toolHandler.AdminDelete)

			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			admin.GET("/news", newsHandler.AdminList)
			admin.PATCH("/news/:id", newsHandler.AdminUpdate)
			admin.DELETE("/news/:id", newsHandler.AdminDelete)

			admin.GET("/logs", healthCheckHandler.Logs)
		}

		// 采集端接口，需要Bearer密钥
		crawler := api.Group("/crawler", middleware.CrawlerAuthMiddleware(cfg))
		{
			crawler.POST("/tools", ingestHandler.InjectTool)
			crawler.POST("/news", ingestHandler.InjectNews)
			crawler.GET("/enrich", enrichHandler.List)
			crawler.PATCH("/enrich", enrichHandler.Apply)
			crawler.POST("/healthcheck", healthCheckHandler.Run)
		}

		// 缓存刷新，管理员会话或采集密钥都可以调
		api.POST("/revalidate", middleware.SessionOrCrawlerMiddleware(cfg), revalidateHandler.Revalidate)
	}

	return r
}
