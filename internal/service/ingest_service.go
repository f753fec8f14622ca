package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/repository"
)

var (
	// ErrValidation 必填字段缺失或取值非法
	ErrValidation = errors.New("参数校验失败")
	// ErrCategoryNotFound 目标分类不存在
	ErrCategoryNotFound = errors.New("分类不存在")
	// ErrRejectedTool 已拒绝的工具是终态，自动化不再写入
	ErrRejectedTool = errors.New("工具已被拒绝")
)

// ToolInjectRequest 外部采集注入工具的请求体。
// aiScore只影响初始星级，永远不影响发布状态。
type ToolInjectRequest struct {
	TitleZh      string  `json:"title_zh"`
	TitleEn      string  `json:"title_en"`
	URL          string  `json:"url"`
	SummaryZh    string  `json:"summary_zh"`
	SummaryEn    string  `json:"summary_en"`
	CoreValue    string  `json:"coreValue"`
	UseCases     string  `json:"useCases"`
	ProsCons     string  `json:"prosCons"`
	CategorySlug string  `json:"categorySlug"`
	AIScore      float64 `json:"aiScore"`
}

// NewsInjectRequest 外部采集注入资讯的请求体
type NewsInjectRequest struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	SourceURL       string   `json:"sourceUrl"`
	RelatedToolURLs []string `json:"relatedToolUrls"`
	Status          string   `json:"status"`
}

// EnrichRequest 富化回写请求，指针字段区分"未提供"和"清空"
type EnrichRequest struct {
	ID            uint64  `json:"id"`
	TitleZh       *string `json:"title_zh"`
	TitleEn       *string `json:"title_en"`
	SummaryZh     *string `json:"summary_zh"`
	SummaryEn     *string `json:"summary_en"`
	ContentZh     *string `json:"content_zh"`
	ContentEn     *string `json:"content_en"`
	CoreValue     *string `json:"coreValue"`
	UseCases      *string `json:"useCases"`
	ProsCons      *string `json:"prosCons"`
	ScreenshotURL *string `json:"screenshotUrl"`
	Status        *string `json:"status"`
}

// IngestService 外部自动化写入口：工具upsert、资讯注入、富化回写。
// 所有经此进入的工具一律PENDING，发布只能由管理员完成。
type IngestService interface {
	InjectTool(ctx context.Context, req *ToolInjectRequest) (*model.Tool, error)
	InjectNews(ctx context.Context, req *NewsInjectRequest) (*model.News, error)
	ListNeedingEnrichment(ctx context.Context, limit int) ([]*model.Tool, error)
	ApplyEnrichment(ctx context.Context, req *EnrichRequest) (*model.Tool, error)
}

type ingestService struct {
	toolRepo     repository.ToolRepository
	newsRepo     repository.NewsRepository
	categoryRepo repository.CategoryRepository
}

// NewIngestService 创建采集注入服务
func NewIngestService() IngestService {
	return NewIngestServiceWith(
		repository.NewToolRepository(),
		repository.NewNewsRepository(),
		repository.NewCategoryRepository(),
	)
}

// NewIngestServiceWith 以显式依赖创建采集注入服务
func NewIngestServiceWith(toolRepo repository.ToolRepository, newsRepo repository.NewsRepository, categoryRepo repository.CategoryRepository) IngestService {
	return &ingestService{
		toolRepo:     toolRepo,
		newsRepo:     newsRepo,
		categoryRepo: categoryRepo,
	}
}

// InjectTool 按URL upsert工具。无论外部给出多高的质量分，
// 新内容一律落在PENDING沙箱里等人工审核。
func (s *ingestService) InjectTool(ctx context.Context, req *ToolInjectRequest) (*model.Tool, error) {
	if req.TitleZh == "" {
		return nil, fmt.Errorf("%w: 缺少title_zh", ErrValidation)
	}
	if req.URL == "" {
		return nil, fmt.Errorf("%w: 缺少url", ErrValidation)
	}
	if req.CategorySlug == "" {
		return nil, fmt.Errorf("%w: 缺少categorySlug", ErrValidation)
	}

	category, err := s.categoryRepo.GetBySlug(ctx, req.CategorySlug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, req.CategorySlug)
	}

	titleEn := req.TitleEn
	if titleEn == "" {
		titleEn = req.TitleZh
	}

	// 10分制质量分折算5星制，只在首次创建时生效
	rate := 5.0
	if req.AIScore > 0 {
		rate = req.AIScore / 2
		if rate > 5.0 {
			rate = 5.0
		}
	}

	tool := &model.Tool{
		URL:        req.URL,
		TitleZh:    req.TitleZh,
		TitleEn:    titleEn,
		SummaryZh:  req.SummaryZh,
		SummaryEn:  req.SummaryEn,
		CoreValue:  req.CoreValue,
		UseCases:   req.UseCases,
		ProsCons:   req.ProsCons,
		CategoryID: category.CategoryID,
		Status:     model.StatusPending,
		Rate:       rate,
	}

	if err := s.toolRepo.Upsert(ctx, tool); err != nil {
		logger.Error("工具upsert失败", zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}

	saved, err := s.toolRepo.GetByURL(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("upsert后未找到工具: %s", req.URL)
	}

	logger.Info("工具已注入",
		zap.String("url", saved.URL),
		zap.String("status", saved.Status),
	)

	return saved, nil
}

// InjectNews 注入资讯。与工具不同，资讯默认直接发布；
// relatedToolUrls里解析不到的URL静默跳过。
func (s *ingestService) InjectNews(ctx context.Context, req *NewsInjectRequest) (*model.News, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: 缺少title", ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = model.StatusPublished
	}
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: 非法status %s", ErrValidation, status)
	}

	var related []*model.Tool
	if len(req.RelatedToolURLs) > 0 {
		tools, err := s.toolRepo.GetByURLs(ctx, req.RelatedToolURLs)
		if err != nil {
			return nil, err
		}
		related = tools
	}

	news := &model.News{
		Title:        req.Title,
		Content:      req.Content,
		SourceURL:    req.SourceURL,
		Status:       status,
		RelatedTools: related,
	}

	if err := s.newsRepo.Create(ctx, news); err != nil {
		logger.Error("资讯注入失败", zap.String("title", req.Title), zap.Error(err))
		return nil, err
	}

	logger.Info("资讯已注入",
		zap.Uint64("news_id", news.NewsID),
		zap.Int("related_tools", len(related)),
	)

	return news, nil
}

// ListNeedingEnrichment 待富化的工具列表
func (s *ingestService) ListNeedingEnrichment(ctx context.Context, limit int) ([]*model.Tool, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.toolRepo.ListNeedingEnrichment(ctx, limit)
}

// ApplyEnrichment 稀疏回写富化字段，只更新提供了的键。
// 状态字段只接受OFFLINE(外部判定站点已死)，其他状态值忽略——
// 这是除管理员之外唯一能改状态的入口。
func (s *ingestService) ApplyEnrichment(ctx context.Context, req *EnrichRequest) (*model.Tool, error) {
	if req.ID == 0 {
		return nil, fmt.Errorf("%w: 缺少id", ErrValidation)
	}

	tool, err := s.toolRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, ErrNotFound
	}
	if tool.Status == model.StatusRejected {
		return nil, ErrRejectedTool
	}

	fields := map[string]interface{}{}
	setIf := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	setIf("title_zh", req.TitleZh)
	setIf("title_en", req.TitleEn)
	setIf("summary_zh", req.SummaryZh)
	setIf("summary_en", req.SummaryEn)
	setIf("content_zh", req.ContentZh)
	setIf("content_en", req.ContentEn)
	setIf("core_value", req.CoreValue)
	setIf("use_cases", req.UseCases)
	setIf("pros_cons", req.ProsCons)
	setIf("screenshot_url", req.ScreenshotURL)

	if req.Status != nil && *req.Status == model.StatusOffline {
		fields["status"] = model.StatusOffline
	}

	if len(fields) == 0 {
		return tool, nil
	}

	if err := s.toolRepo.Updates(ctx, req.ID, fields); err != nil {
		logger.Error("富化回写失败", zap.Uint64("tool_id", req.ID), zap.Error(err))
		return nil, err
	}

	return s.toolRepo.GetByID(ctx, req.ID)
}
