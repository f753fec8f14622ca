package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/repository"
)

// defaultCategories 站点初始分类，首次启动时种入
var defaultCategories = []model.Category{
	{Slug: "hot", NameZh: "热门工具", NameEn: "Hot Tools", Icon: "🔥"},
	{Slug: "ai-writing", NameZh: "AI写作", NameEn: "AI Writing", Icon: "✍️"},
	{Slug: "ai-image", NameZh: "AI绘画", NameEn: "AI Image", Icon: "🎨"},
	{Slug: "ai-video", NameZh: "AI视频", NameEn: "AI Video", Icon: "🎬"},
	{Slug: "ai-audio", NameZh: "AI音频", NameEn: "AI Audio", Icon: "🎵"},
	{Slug: "ai-chat", NameZh: "AI对话", NameEn: "AI Chat", Icon: "💬"},
	{Slug: "ai-design", NameZh: "AI设计", NameEn: "AI Design", Icon: "✨"},
	{Slug: "ai-office", NameZh: "AI办公", NameEn: "AI Office", Icon: "💼"},
	{Slug: "ai-coding", NameZh: "AI编程", NameEn: "AI Coding", Icon: "💻"},
	{Slug: "ai-industry", NameZh: "行业应用", NameEn: "Industry AI", Icon: "🏭"},
	{Slug: "ai-resources", NameZh: "学习资源", NameEn: "Resources", Icon: "📚"},
}

// SeedCategories 补齐缺失的初始分类。已有的slug不动，幂等可重入。
func SeedCategories(ctx context.Context, categoryRepo repository.CategoryRepository) error {
	for i := range defaultCategories {
		category := defaultCategories[i]

		existing, err := categoryRepo.GetBySlug(ctx, category.Slug)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		if err := categoryRepo.Create(ctx, &category); err != nil {
			return err
		}
		logger.Info("初始分类已创建", zap.String("slug", category.Slug))
	}
	return nil
}
