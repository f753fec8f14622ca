package service

import (
	"context"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/repository"
)

// mockToolRepo 按需挂接的工具仓储桩，没挂的函数返回零值
type mockToolRepo struct {
	createFunc     func(ctx context.Context, tool *model.Tool) error
	upsertFunc     func(ctx context.Context, tool *model.Tool) error
	updatesFunc    func(ctx context.Context, id uint64, fields map[string]interface{}) error
	getByIDFunc    func(ctx context.Context, id uint64) (*model.Tool, error)
	getByURLFunc   func(ctx context.Context, url string) (*model.Tool, error)
	getByURLsFunc  func(ctx context.Context, urls []string) ([]*model.Tool, error)
	listPublicFunc func(ctx context.Context, filter repository.ToolFilter) ([]*model.Tool, error)
	listOldestFunc func(ctx context.Context, limit int) ([]*model.Tool, error)
	listEnrichFunc func(ctx context.Context, limit int) ([]*model.Tool, error)
	touchFunc      func(ctx context.Context, id uint64) error
	setStatusFunc  func(ctx context.Context, id uint64, status string) error

	upsertCalls    int
	updatesCalls   int
	touchCalls     int
	setStatusCalls int
}

func (m *mockToolRepo) Create(ctx context.Context, tool *model.Tool) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, tool)
	}
	return nil
}

func (m *mockToolRepo) Upsert(ctx context.Context, tool *model.Tool) error {
	m.upsertCalls++
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, tool)
	}
	return nil
}

func (m *mockToolRepo) Updates(ctx context.Context, id uint64, fields map[string]interface{}) error {
	m.updatesCalls++
	if m.updatesFunc != nil {
		return m.updatesFunc(ctx, id, fields)
	}
	return nil
}

func (m *mockToolRepo) GetByID(ctx context.Context, id uint64) (*model.Tool, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockToolRepo) GetByURL(ctx context.Context, url string) (*model.Tool, error) {
	if m.getByURLFunc != nil {
		return m.getByURLFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockToolRepo) GetByURLs(ctx context.Context, urls []string) ([]*model.Tool, error) {
	if m.getByURLsFunc != nil {
		return m.getByURLsFunc(ctx, urls)
	}
	return nil, nil
}

func (m *mockToolRepo) ListPublic(ctx context.Context, filter repository.ToolFilter) ([]*model.Tool, error) {
	if m.listPublicFunc != nil {
		return m.listPublicFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockToolRepo) ListAdmin(ctx context.Context, page, pageSize int, status string) ([]*model.Tool, int64, error) {
	return nil, 0, nil
}

func (m *mockToolRepo) ListURLs(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockToolRepo) ListNeedingEnrichment(ctx context.Context, limit int) ([]*model.Tool, error) {
	if m.listEnrichFunc != nil {
		return m.listEnrichFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockToolRepo) ListPublishedOldest(ctx context.Context, limit int) ([]*model.Tool, error) {
	if m.listOldestFunc != nil {
		return m.listOldestFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockToolRepo) ListPublishedForSitemap(ctx context.Context) ([]*model.Tool, error) {
	return nil, nil
}

func (m *mockToolRepo) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	return 0, nil
}

func (m *mockToolRepo) Touch(ctx context.Context, id uint64) error {
	m.touchCalls++
	if m.touchFunc != nil {
		return m.touchFunc(ctx, id)
	}
	return nil
}

func (m *mockToolRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	m.setStatusCalls++
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockToolRepo) SoftDelete(ctx context.Context, id uint64) error {
	return nil
}

type mockNewsRepo struct {
	createFunc        func(ctx context.Context, news *model.News) error
	getByIDFunc       func(ctx context.Context, id uint64) (*model.News, error)
	listPublishedFunc func(ctx context.Context, page, pageSize int) ([]*model.News, int64, error)
	createCalls       int
}

func (m *mockNewsRepo) Create(ctx context.Context, news *model.News) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, news)
	}
	return nil
}

func (m *mockNewsRepo) Update(ctx context.Context, news *model.News) error { return nil }
func (m *mockNewsRepo) Delete(ctx context.Context, id uint64) error        { return nil }

func (m *mockNewsRepo) GetByID(ctx context.Context, id uint64) (*model.News, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockNewsRepo) ListPublished(ctx context.Context, page, pageSize int) ([]*model.News, int64, error) {
	if m.listPublishedFunc != nil {
		return m.listPublishedFunc(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockNewsRepo) ListAdmin(ctx context.Context, page, pageSize int) ([]*model.News, int64, error) {
	return nil, 0, nil
}

func (m *mockNewsRepo) ListPublishedForSitemap(ctx context.Context) ([]*model.News, error) {
	return nil, nil
}

func (m *mockNewsRepo) ReplaceRelatedTools(ctx context.Context, news *model.News, tools []*model.Tool) error {
	return nil
}

type mockCategoryRepo struct {
	getBySlugFunc func(ctx context.Context, slug string) (*model.Category, error)
	listFunc      func(ctx context.Context) ([]*model.Category, error)
	createCalls   int
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	m.createCalls++
	return nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *model.Category) error { return nil }
func (m *mockCategoryRepo) Delete(ctx context.Context, id uint64) error                { return nil }

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type mockAdminRepo struct {
	getByUsernameFunc func(ctx context.Context, username string) (*model.Admin, error)
	countFunc         func(ctx context.Context) (int64, error)
	createCalls       int
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *model.Admin) error {
	m.createCalls++
	return nil
}

func (m *mockAdminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockAdminRepo) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockLogRepo struct {
	logs []*model.CrawlerLog
}

func (m *mockLogRepo) Create(ctx context.Context, log *model.CrawlerLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockLogRepo) ListRecent(ctx context.Context, limit int) ([]*model.CrawlerLog, error) {
	return m.logs, nil
}
