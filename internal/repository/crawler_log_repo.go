package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/database"
)

// CrawlerLogRepository 自动化任务日志仓储接口，只写入和读取，不修改
type CrawlerLogRepository interface {
	Create(ctx context.Context, log *model.CrawlerLog) error
	ListRecent(ctx context.Context, limit int) ([]*model.CrawlerLog, error)
}

type crawlerLogRepository struct {
	db *gorm.DB
}

// NewCrawlerLogRepository 创建日志仓储
func NewCrawlerLogRepository() CrawlerLogRepository {
	return &crawlerLogRepository{
		db: database.GetDB(),
	}
}

// Create 追加一条任务日志
func (r *crawlerLogRepository) Create(ctx context.Context, log *model.CrawlerLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListRecent 最近的任务日志，供诊断查看
func (r *crawlerLogRepository) ListRecent(ctx context.Context, limit int) ([]*model.CrawlerLog, error) {
	var logs []*model.CrawlerLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
