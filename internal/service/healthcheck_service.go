package service

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/repository"
)

// HealthCheckResult 一次巡检的汇总
type HealthCheckResult struct {
	TotalChecked int      `json:"total_checked"`
	OfflineCount int      `json:"offline_count"`
	OfflineTools []string `json:"offline_tools"`
}

// HealthCheckService 链接健康巡检。每次取最久未确认的一批已发布工具
// 逐个探测：可达则刷新updated_at把它推到队列末尾，不可达则下线。
// 单个工具的失败不会中断整批。
type HealthCheckService interface {
	Run(ctx context.Context) (*HealthCheckResult, error)
}

type healthCheckService struct {
	toolRepo  repository.ToolRepository
	logRepo   repository.CrawlerLogRepository
	client    *http.Client
	batchSize int
	userAgent string
}

// NewHealthCheckService 创建巡检服务
func NewHealthCheckService(cfg *config.CrawlerConfig) HealthCheckService {
	return NewHealthCheckServiceWith(
		repository.NewToolRepository(),
		repository.NewCrawlerLogRepository(),
		&http.Client{Timeout: cfg.GetProbeTimeout()},
		cfg.HealthCheckBatch,
		cfg.HealthCheckUserAgent,
	)
}

// NewHealthCheckServiceWith 以显式依赖创建巡检服务
func NewHealthCheckServiceWith(toolRepo repository.ToolRepository, logRepo repository.CrawlerLogRepository, client *http.Client, batchSize int, userAgent string) HealthCheckService {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &healthCheckService{
		toolRepo:  toolRepo,
		logRepo:   logRepo,
		client:    client,
		batchSize: batchSize,
		userAgent: userAgent,
	}
}

// Run 执行一轮巡检并写入一条审计日志
func (s *healthCheckService) Run(ctx context.Context) (*HealthCheckResult, error) {
	tools, err := s.toolRepo.ListPublishedOldest(ctx, s.batchSize)
	if err != nil {
		return nil, err
	}

	result := &HealthCheckResult{
		TotalChecked: len(tools),
		OfflineTools: []string{},
	}

	for _, tool := range tools {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if s.probe(ctx, tool.URL) {
			if err := s.toolRepo.Touch(ctx, tool.ToolID); err != nil {
				logger.Warn("刷新巡检时间失败",
					zap.Uint64("tool_id", tool.ToolID),
					zap.Error(err),
				)
			}
			continue
		}

		logger.Info("链接不可达，工具下线",
			zap.Uint64("tool_id", tool.ToolID),
			zap.String("url", tool.URL),
		)
		if err := s.toolRepo.SetStatus(ctx, tool.ToolID, model.StatusOffline); err != nil {
			logger.Warn("标记下线失败",
				zap.Uint64("tool_id", tool.ToolID),
				zap.Error(err),
			)
			continue
		}
		result.OfflineCount++
		result.OfflineTools = append(result.OfflineTools, tool.TitleZh)
	}

	entry := &model.CrawlerLog{
		Status: model.CrawlerLogSuccess,
		Message: fmt.Sprintf("Health Check completed. Checked %d items. Found %d offline.",
			result.TotalChecked, result.OfflineCount),
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		logger.Warn("写入巡检日志失败", zap.Error(err))
	}

	return result, nil
}

// probe 探测URL是否可达，2xx/3xx视为存活
func (s *healthCheckService) probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}
