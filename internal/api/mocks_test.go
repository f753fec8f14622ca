package api

import (
	"context"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/repository"
)

type mockToolRepo struct {
	getByIDFunc         func(ctx context.Context, id uint64) (*model.Tool, error)
	updatesFunc         func(ctx context.Context, id uint64, fields map[string]interface{}) error
	countByCategoryFunc func(ctx context.Context, categoryID uint64) (int64, error)
	softDeleteCalls     int
}

func (m *mockToolRepo) Create(ctx context.Context, tool *model.Tool) error { return nil }
func (m *mockToolRepo) Upsert(ctx context.Context, tool *model.Tool) error { return nil }

func (m *mockToolRepo) Updates(ctx context.Context, id uint64, fields map[string]interface{}) error {
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
	return nil, nil
}

func (m *mockToolRepo) GetByURLs(ctx context.Context, urls []string) ([]*model.Tool, error) {
	return nil, nil
}

func (m *mockToolRepo) ListPublic(ctx context.Context, filter repository.ToolFilter) ([]*model.Tool, error) {
	return nil, nil
}

func (m *mockToolRepo) ListAdmin(ctx context.Context, page, pageSize int, status string) ([]*model.Tool, int64, error) {
	return nil, 0, nil
}

func (m *mockToolRepo) ListURLs(ctx context.Context) ([]string, error) { return nil, nil }

func (m *mockToolRepo) ListNeedingEnrichment(ctx context.Context, limit int) ([]*model.Tool, error) {
	return nil, nil
}

func (m *mockToolRepo) ListPublishedOldest(ctx context.Context, limit int) ([]*model.Tool, error) {
	return nil, nil
}

func (m *mockToolRepo) ListPublishedForSitemap(ctx context.Context) ([]*model.Tool, error) {
	return nil, nil
}

func (m *mockToolRepo) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	if m.countByCategoryFunc != nil {
		return m.countByCategoryFunc(ctx, categoryID)
	}
	return 0, nil
}

func (m *mockToolRepo) Touch(ctx context.Context, id uint64) error                { return nil }
func (m *mockToolRepo) SetStatus(ctx context.Context, id uint64, status string) error { return nil }

func (m *mockToolRepo) SoftDelete(ctx context.Context, id uint64) error {
	m.softDeleteCalls++
	return nil
}

type mockCategoryRepo struct {
	getByIDFunc   func(ctx context.Context, id uint64) (*model.Category, error)
	getBySlugFunc func(ctx context.Context, slug string) (*model.Category, error)
	listFunc      func(ctx context.Context) ([]*model.Category, error)
	deleteCalls   int
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *model.Category) error { return nil }
func (m *mockCategoryRepo) Update(ctx context.Context, category *model.Category) error { return nil }

func (m *mockCategoryRepo) Delete(ctx context.Context, id uint64) error {
	m.deleteCalls++
	return nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
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
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *model.Admin) error { return nil }

func (m *mockAdminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockAdminRepo) Count(ctx context.Context) (int64, error) { return 0, nil }
