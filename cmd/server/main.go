package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/api"
	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/database"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/pkg/redis"
	"github.com/rwecho/AIGCPilot/internal/repository"
	"github.com/rwecho/AIGCPilot/internal/service"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.FilePath); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("AIGCPilot 启动中...")

	// 初始化数据库
	if err := database.InitMySQL(&cfg.Database); err != nil {
		logger.Fatal("初始化MySQL失败", zap.Error(err))
	}
	defer database.Close()
	logger.Info("MySQL连接成功")

	// 表结构迁移
	if err := database.GetDB().AutoMigrate(
		&model.Category{},
		&model.Tool{},
		&model.News{},
		&model.Admin{},
		&model.CrawlerLog{},
	); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 初始化Redis（可选，失败时页面缓存降级为直查）
	if err := redis.InitRedis(&cfg.Redis); err != nil {
		logger.Warn("Redis连接失败，页面缓存将不可用", zap.Error(err))
	} else {
		defer redis.Close()
		logger.Info("Redis连接成功")
	}

	// 种入初始数据
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	authService := service.NewAuthService(cfg)
	if err := authService.SeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		cancel()
		logger.Fatal("创建初始管理员失败", zap.Error(err))
	}
	if err := service.SeedCategories(ctx, repository.NewCategoryRepository()); err != nil {
		cancel()
		logger.Fatal("创建初始分类失败", zap.Error(err))
	}
	cancel()

	// 创建路由
	router := api.SetupRouter(cfg)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 启动服务器
	go func() {
		logger.Info("服务器启动",
			zap.Int("port", cfg.Server.Port),
			zap.String("mode", cfg.Server.Mode),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务器...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务器已关闭")
}
