package service

import (
	"context"
	"errors"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/repository"
)

// ErrNotFound 实体不存在，或对公开路径不可见
var ErrNotFound = errors.New("内容不存在")

// ResolverService 内容解析服务：按请求语言把实体投影成本地化视图。
// 所有页面级的 zh/en 字段选择都收敛在这里，回退规则只写一遍。
type ResolverService interface {
	ToolDetail(ctx context.Context, locale string, id uint64) (*model.LocalizedTool, error)
	ToolList(ctx context.Context, locale string, filter repository.ToolFilter) ([]*model.LocalizedTool, error)
	NewsDetail(ctx context.Context, locale string, id uint64) (*model.LocalizedNews, error)
	NewsList(ctx context.Context, locale string, page, pageSize int) ([]*model.LocalizedNews, int64, error)
	CategoryList(ctx context.Context, locale string) ([]*model.LocalizedCategory, error)
}

type resolverService struct {
	toolRepo     repository.ToolRepository
	newsRepo     repository.NewsRepository
	categoryRepo repository.CategoryRepository
}

// NewResolverService 创建内容解析服务
func NewResolverService() ResolverService {
	return NewResolverServiceWith(
		repository.NewToolRepository(),
		repository.NewNewsRepository(),
		repository.NewCategoryRepository(),
	)
}

// NewResolverServiceWith 以显式依赖创建内容解析服务
func NewResolverServiceWith(toolRepo repository.ToolRepository, newsRepo repository.NewsRepository, categoryRepo repository.CategoryRepository) ResolverService {
	return &resolverService{
		toolRepo:     toolRepo,
		newsRepo:     newsRepo,
		categoryRepo: categoryRepo,
	}
}

// LocalizeTool 把工具实体投影为指定语言的视图
func LocalizeTool(tool *model.Tool, locale string) *model.LocalizedTool {
	view := &model.LocalizedTool{
		ToolID:        tool.ToolID,
		URL:           tool.URL,
		Title:         tool.Title(locale),
		Summary:       tool.Summary(locale),
		Content:       tool.Content(locale),
		Logo:          tool.Logo,
		ScreenshotURL: tool.ScreenshotURL,
		VideoURL:      tool.VideoURL,
		Rate:          tool.Rate,
		Region:        tool.Region,
		IsHot:         tool.IsHot,
		CoreValue:     tool.CoreValue,
		UseCases:      tool.UseCases,
		ProsCons:      tool.ProsCons,
		CategoryID:    tool.CategoryID,
		CreatedAt:     tool.CreatedAt,
		UpdatedAt:     tool.UpdatedAt,
	}
	if tool.Category != nil {
		view.CategorySlug = tool.Category.Slug
		view.CategoryName = tool.Category.Name(locale)
	}
	return view
}

// LocalizeNews 把资讯实体投影为指定语言的视图，关联工具名同语言展开
func LocalizeNews(news *model.News, locale string) *model.LocalizedNews {
	view := &model.LocalizedNews{
		NewsID:    news.NewsID,
		Title:     news.Title,
		Content:   news.Content,
		SourceURL: news.SourceURL,
		CreatedAt: news.CreatedAt,
		UpdatedAt: news.UpdatedAt,
	}
	for _, tool := range news.RelatedTools {
		view.RelatedTools = append(view.RelatedTools, model.ToolBrief{
			ToolID: tool.ToolID,
			Title:  tool.Title(locale),
			URL:    tool.URL,
		})
	}
	return view
}

// LocalizeCategory 把分类投影为指定语言的视图
func LocalizeCategory(category *model.Category, locale string) *model.LocalizedCategory {
	return &model.LocalizedCategory{
		CategoryID: category.CategoryID,
		Slug:       category.Slug,
		Name:       category.Name(locale),
		Icon:       category.Icon,
	}
}

// ToolDetail 公开的工具详情。未发布或已软删的工具一律视为不存在。
func (s *resolverService) ToolDetail(ctx context.Context, locale string, id uint64) (*model.LocalizedTool, error) {
	tool, err := s.toolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tool == nil || tool.IsDeleted || tool.Status != model.StatusPublished {
		return nil, ErrNotFound
	}
	return LocalizeTool(tool, locale), nil
}

// ToolList 公开的工具列表
func (s *resolverService) ToolList(ctx context.Context, locale string, filter repository.ToolFilter) ([]*model.LocalizedTool, error) {
	tools, err := s.toolRepo.ListPublic(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]*model.LocalizedTool, 0, len(tools))
	for _, tool := range tools {
		view := LocalizeTool(tool, locale)
		// 列表不携带长文
		view.Content = ""
		views = append(views, view)
	}
	return views, nil
}

// NewsDetail 公开的资讯详情。未发布的资讯即使存在也返回不存在。
func (s *resolverService) NewsDetail(ctx context.Context, locale string, id uint64) (*model.LocalizedNews, error) {
	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if news == nil || news.Status != model.StatusPublished {
		return nil, ErrNotFound
	}
	return LocalizeNews(news, locale), nil
}

// NewsList 公开的资讯列表
func (s *resolverService) NewsList(ctx context.Context, locale string, page, pageSize int) ([]*model.LocalizedNews, int64, error) {
	items, total, err := s.newsRepo.ListPublished(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*model.LocalizedNews, 0, len(items))
	for _, news := range items {
		view := LocalizeNews(news, locale)
		view.Content = ""
		views = append(views, view)
	}
	return views, total, nil
}

// CategoryList 分类列表
func (s *resolverService) CategoryList(ctx context.Context, locale string) ([]*model.LocalizedCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*model.LocalizedCategory, 0, len(categories))
	for _, category := range categories {
		views = append(views, LocalizeCategory(category, locale))
	}
	return views, nil
}
