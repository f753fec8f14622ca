package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/jwt"
)

func testJWTService() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", 24)
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	adminRepo := &mockAdminRepo{
		getByUsernameFunc: func(ctx context.Context, username string) (*model.Admin, error) {
			if username == "admin" {
				return &model.Admin{AdminID: 1, Username: "admin", PasswordHash: string(hash)}, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthServiceWith(adminRepo, testJWTService())

	token, admin, err := svc.Login(context.Background(), &model.LoginRequest{Username: "admin", Password: "right-password"})
	if err != nil {
		t.Fatalf("Login失败: %v", err)
	}
	if token == "" {
		t.Error("token为空")
	}
	if admin.Username != "admin" {
		t.Errorf("username = %q", admin.Username)
	}

	// 签出的token要能通过校验
	claims, err := testJWTService().ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken失败: %v", err)
	}
	if claims.AdminID != 1 || claims.Username != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	adminRepo := &mockAdminRepo{
		getByUsernameFunc: func(ctx context.Context, username string) (*model.Admin, error) {
			return &model.Admin{AdminID: 1, Username: "admin", PasswordHash: string(hash)}, nil
		},
	}
	svc := NewAuthServiceWith(adminRepo, testJWTService())

	if _, _, err := svc.Login(context.Background(), &model.LoginRequest{Username: "admin", Password: "wrong"}); err != ErrPasswordIncorrect {
		t.Errorf("err = %v, want ErrPasswordIncorrect", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthServiceWith(&mockAdminRepo{}, testJWTService())

	if _, _, err := svc.Login(context.Background(), &model.LoginRequest{Username: "ghost", Password: "x"}); err != ErrUserNotFound {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestSeedAdmin_OnlyWhenEmpty(t *testing.T) {
	adminRepo := &mockAdminRepo{}
	svc := NewAuthServiceWith(adminRepo, testJWTService())

	if err := svc.SeedAdmin(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("SeedAdmin失败: %v", err)
	}
	if adminRepo.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", adminRepo.createCalls)
	}

	// 已有管理员时不重复创建
	adminRepo2 := &mockAdminRepo{
		countFunc: func(ctx context.Context) (int64, error) { return 1, nil },
	}
	svc2 := NewAuthServiceWith(adminRepo2, testJWTService())
	if err := svc2.SeedAdmin(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("SeedAdmin失败: %v", err)
	}
	if adminRepo2.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0", adminRepo2.createCalls)
	}
}

func TestSeedAdmin_SkipsWhenUnconfigured(t *testing.T) {
	adminRepo := &mockAdminRepo{}
	svc := NewAuthServiceWith(adminRepo, testJWTService())

	if err := svc.SeedAdmin(context.Background(), "", ""); err != nil {
		t.Fatalf("SeedAdmin失败: %v", err)
	}
	if adminRepo.createCalls != 0 {
		t.Errorf("未配置账号时不应创建, createCalls = %d", adminRepo.createCalls)
	}
}

func TestSeedCategories_Idempotent(t *testing.T) {
	existing := map[string]bool{"hot": true, "ai-writing": true}
	categoryRepo := &mockCategoryRepo{
		getBySlugFunc: func(ctx context.Context, slug string) (*model.Category, error) {
			if existing[slug] {
				return &model.Category{Slug: slug}, nil
			}
			return nil, nil
		},
	}

	if err := SeedCategories(context.Background(), categoryRepo); err != nil {
		t.Fatalf("SeedCategories失败: %v", err)
	}
	want := len(defaultCategories) - 2
	if categoryRepo.createCalls != want {
		t.Errorf("createCalls = %d, want %d", categoryRepo.createCalls, want)
	}
}
