package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/database"
)

// ToolFilter 公开列表的筛选条件
type ToolFilter struct {
	CategoryID uint64
	HotOnly    bool
}

// ToolRepository 工具仓储接口
type ToolRepository interface {
	Create(ctx context.Context, tool *model.Tool) error
	Upsert(ctx context.Context, tool *model.Tool) error
	Updates(ctx context.Context, id uint64, fields map[string]interface{}) error
	GetByID(ctx context.Context, id uint64) (*model.Tool, error)
	GetByURL(ctx context.Context, url string) (*model.Tool, error)
	GetByURLs(ctx context.Context, urls []string) ([]*model.Tool, error)
	ListPublic(ctx context.Context, filter ToolFilter) ([]*model.Tool, error)
	ListAdmin(ctx context.Context, page, pageSize int, status string) ([]*model.Tool, int64, error)
	ListURLs(ctx context.Context) ([]string, error)
	ListNeedingEnrichment(ctx context.Context, limit int) ([]*model.Tool, error)
	ListPublishedOldest(ctx context.Context, limit int) ([]*model.Tool, error)
	ListPublishedForSitemap(ctx context.Context) ([]*model.Tool, error)
	CountByCategory(ctx context.Context, categoryID uint64) (int64, error)
	Touch(ctx context.Context, id uint64) error
	SetStatus(ctx context.Context, id uint64, status string) error
	SoftDelete(ctx context.Context, id uint64) error
}

type toolRepository struct {
	db *gorm.DB
}

// NewToolRepository 创建工具仓储
func NewToolRepository() ToolRepository {
	return &toolRepository{
		db: database.GetDB(),
	}
}

// Create 创建工具
func (r *toolRepository) Create(ctx context.Context, tool *model.Tool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

// Upsert 按URL创建或更新。已存在时只覆盖采集可写的内容字段和状态，
// 不触碰评分、分类与展示开关，保证同一payload重复提交幂等。
func (r *toolRepository) Upsert(ctx context.Context, tool *model.Tool) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title_zh", "title_en",
			"summary_zh", "summary_en",
			"core_value", "use_cases", "pros_cons",
			"status", "updated_at",
		}),
	}).Create(tool).Error
}

// Updates 稀疏更新指定字段
func (r *toolRepository) Updates(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Tool{}).
		Where("tool_id = ?", id).
		Updates(fields).Error
}

// GetByID 根据ID获取工具(带分类)
func (r *toolRepository) GetByID(ctx context.Context, id uint64) (*model.Tool, error) {
	var tool model.Tool
	err := r.db.WithContext(ctx).Preload("Category").Where("tool_id = ?", id).First(&tool).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &tool, nil
}

// GetByURL 根据URL获取工具
func (r *toolRepository) GetByURL(ctx context.Context, url string) (*model.Tool, error) {
	var tool model.Tool
	err := r.db.WithContext(ctx).Preload("Category").Where("url = ?", url).First(&tool).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &tool, nil
}

// GetByURLs 按URL批量查找
func (r *toolRepository) GetByURLs(ctx context.Context, urls []string) ([]*model.Tool, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	var tools []*model.Tool
	err := r.db.WithContext(ctx).Where("url IN ?", urls).Find(&tools).Error
	if err != nil {
		return nil, err
	}
	return tools, nil
}

// ListPublic 公开列表：已发布且未软删，按创建时间倒序
func (r *toolRepository) ListPublic(ctx context.Context, filter ToolFilter) ([]*model.Tool, error) {
	query := r.db.WithContext(ctx).Preload("Category").
		Where("status = ?", model.StatusPublished).
		Where("is_deleted = ?", false)

	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.HotOnly {
		query = query.Where("is_hot = ?", true)
	}

	var tools []*model.Tool
	err := query.Order("created_at DESC").Find(&tools).Error
	if err != nil {
		return nil, err
	}
	return tools, nil
}

// ListAdmin 后台列表：全部状态，可按状态筛选，分页
func (r *toolRepository) ListAdmin(ctx context.Context, page, pageSize int, status string) ([]*model.Tool, int64, error) {
	var tools []*model.Tool
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Tool{}).Where("is_deleted = ?", false)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Category").Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&tools).Error
	if err != nil {
		return nil, 0, err
	}

	return tools, total, nil
}

// ListURLs 返回全部工具URL(含软删和未发布)，供外部采集去重
func (r *toolRepository) ListURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Model(&model.Tool{}).Pluck("url", &urls).Error
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// ListNeedingEnrichment 缺少截图/核心价值/使用场景的工具，
// 按最旧更新优先，跳过终态(已拒绝/已下线)
func (r *toolRepository) ListNeedingEnrichment(ctx context.Context, limit int) ([]*model.Tool, error) {
	var tools []*model.Tool
	err := r.db.WithContext(ctx).
		Where("screenshot_url = '' OR core_value = '' OR use_cases = ''").
		Where("status NOT IN ?", []string{model.StatusRejected, model.StatusOffline}).
		Where("is_deleted = ?", false).
		Order("updated_at ASC").
		Limit(limit).
		Find(&tools).Error
	if err != nil {
		return nil, err
	}
	return tools, nil
}

// ListPublishedOldest 巡检批次：已发布工具按最旧更新优先
func (r *toolRepository) ListPublishedOldest(ctx context.Context, limit int) ([]*model.Tool, error) {
	var tools []*model.Tool
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusPublished).
		Where("is_deleted = ?", false).
		Order("updated_at ASC").
		Limit(limit).
		Find(&tools).Error
	if err != nil {
		return nil, err
	}
	return tools, nil
}

// ListPublishedForSitemap 已发布工具，按更新时间倒序
func (r *toolRepository) ListPublishedForSitemap(ctx context.Context) ([]*model.Tool, error) {
	var tools []*model.Tool
	err := r.db.WithContext(ctx).
		Select("tool_id", "updated_at").
		Where("status = ?", model.StatusPublished).
		Where("is_deleted = ?", false).
		Order("updated_at DESC").
		Find(&tools).Error
	if err != nil {
		return nil, err
	}
	return tools, nil
}

// CountByCategory 统计分类下未软删的工具数
func (r *toolRepository) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tool{}).
		Where("category_id = ?", categoryID).
		Where("is_deleted = ?", false).
		Count(&count).Error
	return count, err
}

// Touch 刷新updated_at，把该行推到巡检队列末尾
func (r *toolRepository) Touch(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Model(&model.Tool{}).
		Where("tool_id = ?", id).
		Update("updated_at", time.Now()).Error
}

// SetStatus 更新状态
func (r *toolRepository) SetStatus(ctx context.Context, id uint64, status string) error {
	return r.db.WithContext(ctx).Model(&model.Tool{}).
		Where("tool_id = ?", id).
		Update("status", status).Error
}

// SoftDelete 软删除
func (r *toolRepository) SoftDelete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Model(&model.Tool{}).
		Where("tool_id = ?", id).
		Update("is_deleted", true).Error
}
