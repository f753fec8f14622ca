package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/database"
)

// NewsRepository 资讯仓储接口
type NewsRepository interface {
	Create(ctx context.Context, news *model.News) error
	Update(ctx context.Context, news *model.News) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.News, error)
	ListPublished(ctx context.Context, page, pageSize int) ([]*model.News, int64, error)
	ListAdmin(ctx context.Context, page, pageSize int) ([]*model.News, int64, error)
	ListPublishedForSitemap(ctx context.Context) ([]*model.News, error)
	ReplaceRelatedTools(ctx context.Context, news *model.News, tools []*model.Tool) error
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository 创建资讯仓储
func NewNewsRepository() NewsRepository {
	return &newsRepository{
		db: database.GetDB(),
	}
}

// Create 创建资讯(含关联工具)
func (r *newsRepository) Create(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

// Update 更新资讯
func (r *newsRepository) Update(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Omit("RelatedTools").Save(news).Error
}

// Delete 删除资讯
func (r *newsRepository) Delete(ctx context.Context, id uint64) error {
	news := model.News{NewsID: id}
	// 先清掉关联，再删主行
	if err := r.db.WithContext(ctx).Model(&news).Association("RelatedTools").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&news).Error
}

// GetByID 根据ID获取资讯(带关联工具)
func (r *newsRepository) GetByID(ctx context.Context, id uint64) (*model.News, error) {
	var news model.News
	err := r.db.WithContext(ctx).Preload("RelatedTools").Where("news_id = ?", id).First(&news).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &news, nil
}

// ListPublished 公开列表：仅已发布，按创建时间倒序
func (r *newsRepository) ListPublished(ctx context.Context, page, pageSize int) ([]*model.News, int64, error) {
	var items []*model.News
	var total int64

	query := r.db.WithContext(ctx).Model(&model.News{}).Where("status = ?", model.StatusPublished)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListAdmin 后台列表：全部状态
func (r *newsRepository) ListAdmin(ctx context.Context, page, pageSize int) ([]*model.News, int64, error) {
	var items []*model.News
	var total int64

	query := r.db.WithContext(ctx).Model(&model.News{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListPublishedForSitemap 已发布资讯，按更新时间倒序
func (r *newsRepository) ListPublishedForSitemap(ctx context.Context) ([]*model.News, error) {
	var items []*model.News
	err := r.db.WithContext(ctx).
		Select("news_id", "updated_at").
		Where("status = ?", model.StatusPublished).
		Order("updated_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceRelatedTools 重建资讯与工具的关联
func (r *newsRepository) ReplaceRelatedTools(ctx context.Context, news *model.News, tools []*model.Tool) error {
	return r.db.WithContext(ctx).Model(news).Association("RelatedTools").Replace(tools)
}
