package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rwecho/AIGCPilot/internal/model"
)

func newIngestFixture() (*mockToolRepo, *mockNewsRepo, *mockCategoryRepo, IngestService) {
	toolRepo := &mockToolRepo{}
	newsRepo := &mockNewsRepo{}
	categoryRepo := &mockCategoryRepo{
		getBySlugFunc: func(ctx context.Context, slug string) (*model.Category, error) {
			if slug == "ai-writing" {
				return &model.Category{CategoryID: 7, Slug: "ai-writing"}, nil
			}
			return nil, nil
		},
	}
	return toolRepo, newsRepo, categoryRepo, NewIngestServiceWith(toolRepo, newsRepo, categoryRepo)
}

func TestInjectTool_AlwaysPending(t *testing.T) {
	// 质量分再高也不允许直接发布
	scores := []float64{0, -1, 3.5, 9.8, 20}

	for _, score := range scores {
		toolRepo, _, _, svc := newIngestFixture()

		var upserted *model.Tool
		toolRepo.upsertFunc = func(ctx context.Context, tool *model.Tool) error {
			upserted = tool
			return nil
		}
		toolRepo.getByURLFunc = func(ctx context.Context, url string) (*model.Tool, error) {
			return upserted, nil
		}

		_, err := svc.InjectTool(context.Background(), &ToolInjectRequest{
			TitleZh:      "测试工具",
			URL:          "https://example.com/tool",
			CategorySlug: "ai-writing",
			AIScore:      score,
		})
		if err != nil {
			t.Fatalf("aiScore=%v: InjectTool失败: %v", score, err)
		}
		if upserted.Status != model.StatusPending {
			t.Errorf("aiScore=%v: 状态 = %s, want PENDING", score, upserted.Status)
		}
	}
}

func TestInjectTool_RateFromScore(t *testing.T) {
	cases := []struct {
		score float64
		want  float64
	}{
		{8, 4},
		{10, 5},
		{12, 5},  // 超出10分制的截到满分
		{0, 5},   // 没给分默认满分
		{-3, 5},  // 负分同样走默认
		{7, 3.5},
	}

	for _, tc := range cases {
		toolRepo, _, _, svc := newIngestFixture()

		var upserted *model.Tool
		toolRepo.upsertFunc = func(ctx context.Context, tool *model.Tool) error {
			upserted = tool
			return nil
		}
		toolRepo.getByURLFunc = func(ctx context.Context, url string) (*model.Tool, error) {
			return upserted, nil
		}

		_, err := svc.InjectTool(context.Background(), &ToolInjectRequest{
			TitleZh:      "测试工具",
			URL:          "https://example.com/tool",
			CategorySlug: "ai-writing",
			AIScore:      tc.score,
		})
		if err != nil {
			t.Fatalf("aiScore=%v: InjectTool失败: %v", tc.score, err)
		}
		if upserted.Rate != tc.want {
			t.Errorf("aiScore=%v: rate = %v, want %v", tc.score, upserted.Rate, tc.want)
		}
	}
}

func TestInjectTool_TitleEnFallback(t *testing.T) {
	toolRepo, _, _, svc := newIngestFixture()

	var upserted *model.Tool
	toolRepo.upsertFunc = func(ctx context.Context, tool *model.Tool) error {
		upserted = tool
		return nil
	}
	toolRepo.getByURLFunc = func(ctx context.Context, url string) (*model.Tool, error) {
		return upserted, nil
	}

	_, err := svc.InjectTool(context.Background(), &ToolInjectRequest{
		TitleZh:      "智能助手",
		URL:          "https://example.com/tool",
		CategorySlug: "ai-writing",
	})
	if err != nil {
		t.Fatalf("InjectTool失败: %v", err)
	}
	if upserted.TitleEn != "智能助手" {
		t.Errorf("title_en缺失时应回填中文标题, got %q", upserted.TitleEn)
	}
}

func TestInjectTool_Validation(t *testing.T) {
	_, _, _, svc := newIngestFixture()

	cases := []*ToolInjectRequest{
		{URL: "https://example.com", CategorySlug: "ai-writing"}, // 缺title_zh
		{TitleZh: "工具", CategorySlug: "ai-writing"},              // 缺url
		{TitleZh: "工具", URL: "https://example.com"},              // 缺categorySlug
	}
	for i, req := range cases {
		if _, err := svc.InjectTool(context.Background(), req); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: err = %v, want ErrValidation", i, err)
		}
	}
}

func TestInjectTool_UnknownCategory(t *testing.T) {
	_, _, _, svc := newIngestFixture()

	_, err := svc.InjectTool(context.Background(), &ToolInjectRequest{
		TitleZh:      "工具",
		URL:          "https://example.com",
		CategorySlug: "no-such-slug",
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestInjectNews_DefaultPublished(t *testing.T) {
	_, newsRepo, _, svc := newIngestFixture()

	news, err := svc.InjectNews(context.Background(), &NewsInjectRequest{
		Title: "行业快讯",
	})
	if err != nil {
		t.Fatalf("InjectNews失败: %v", err)
	}
	if news.Status != model.StatusPublished {
		t.Errorf("status = %s, want PUBLISHED", news.Status)
	}
	if newsRepo.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", newsRepo.createCalls)
	}
}

func TestInjectNews_SkipsUnresolvedToolURLs(t *testing.T) {
	toolRepo, _, _, svc := newIngestFixture()

	// 三个URL里只有一个能解析到工具
	toolRepo.getByURLsFunc = func(ctx context.Context, urls []string) ([]*model.Tool, error) {
		return []*model.Tool{{ToolID: 1, URL: "https://known.com"}}, nil
	}

	news, err := svc.InjectNews(context.Background(), &NewsInjectRequest{
		Title:           "关联测试",
		RelatedToolURLs: []string{"https://known.com", "https://ghost1.com", "https://ghost2.com"},
	})
	if err != nil {
		t.Fatalf("InjectNews失败: %v", err)
	}
	if len(news.RelatedTools) != 1 {
		t.Errorf("解析不到的URL应静默跳过, related = %d, want 1", len(news.RelatedTools))
	}
}

func TestInjectNews_InvalidStatus(t *testing.T) {
	_, _, _, svc := newIngestFixture()

	if _, err := svc.InjectNews(context.Background(), &NewsInjectRequest{
		Title:  "非法状态",
		Status: "DRAFT",
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestApplyEnrichment_SparseUpdate(t *testing.T) {
	toolRepo, _, _, svc := newIngestFixture()

	stored := &model.Tool{ToolID: 3, Status: model.StatusPending, TitleZh: "原标题", SummaryZh: "原摘要"}
	toolRepo.getByIDFunc = func(ctx context.Context, id uint64) (*model.Tool, error) {
		return stored, nil
	}

	var gotFields map[string]interface{}
	toolRepo.updatesFunc = func(ctx context.Context, id uint64, fields map[string]interface{}) error {
		gotFields = fields
		return nil
	}

	screenshot := "https://cdn.example.com/shot.png"
	coreValue := "一句话价值"
	_, err := svc.ApplyEnrichment(context.Background(), &EnrichRequest{
		ID:            3,
		ScreenshotURL: &screenshot,
		CoreValue:     &coreValue,
	})
	if err != nil {
		t.Fatalf("ApplyEnrichment失败: %v", err)
	}

	if len(gotFields) != 2 {
		t.Fatalf("只应更新提供的字段, got %v", gotFields)
	}
	if gotFields["screenshot_url"] != screenshot || gotFields["core_value"] != coreValue {
		t.Errorf("回写字段不符: %v", gotFields)
	}
}

func TestApplyEnrichment_StatusOnlyAcceptsOffline(t *testing.T) {
	toolRepo, _, _, svc := newIngestFixture()
	toolRepo.getByIDFunc = func(ctx context.Context, id uint64) (*model.Tool, error) {
		return &model.Tool{ToolID: 3, Status: model.StatusPending}, nil
	}

	var gotFields map[string]interface{}
	toolRepo.updatesFunc = func(ctx context.Context, id uint64, fields map[string]interface{}) error {
		gotFields = fields
		return nil
	}

	// 外部试图直接发布，必须被忽略
	published := model.StatusPublished
	if _, err := svc.ApplyEnrichment(context.Background(), &EnrichRequest{ID: 3, Status: &published}); err != nil {
		t.Fatalf("ApplyEnrichment失败: %v", err)
	}
	if toolRepo.updatesCalls != 0 {
		t.Errorf("非OFFLINE的状态回写不应触发更新, fields = %v", gotFields)
	}

	offline := model.StatusOffline
	if _, err := svc.ApplyEnrichment(context.Background(), &EnrichRequest{ID: 3, Status: &offline}); err != nil {
		t.Fatalf("ApplyEnrichment失败: %v", err)
	}
	if gotFields["status"] != model.StatusOffline {
		t.Errorf("OFFLINE状态应被接受, fields = %v", gotFields)
	}
}

func TestApplyEnrichment_RejectedToolRefused(t *testing.T) {
	toolRepo, _, _, svc := newIngestFixture()
	toolRepo.getByIDFunc = func(ctx context.Context, id uint64) (*model.Tool, error) {
		return &model.Tool{ToolID: 9, Status: model.StatusRejected}, nil
	}

	title := "新标题"
	if _, err := svc.ApplyEnrichment(context.Background(), &EnrichRequest{ID: 9, TitleZh: &title}); !errors.Is(err, ErrRejectedTool) {
		t.Errorf("err = %v, want ErrRejectedTool", err)
	}
}

func TestApplyEnrichment_NotFound(t *testing.T) {
	_, _, _, svc := newIngestFixture()

	if _, err := svc.ApplyEnrichment(context.Background(), &EnrichRequest{ID: 404}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListNeedingEnrichment_DefaultLimit(t *testing.T) {
	toolRepo, _, _, svc := newIngestFixture()

	var gotLimit int
	toolRepo.listEnrichFunc = func(ctx context.Context, limit int) ([]*model.Tool, error) {
		gotLimit = limit
		return nil, nil
	}

	if _, err := svc.ListNeedingEnrichment(context.Background(), 0); err != nil {
		t.Fatalf("ListNeedingEnrichment失败: %v", err)
	}
	if gotLimit != 5 {
		t.Errorf("limit = %d, want 默认5", gotLimit)
	}
}
