package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/jwt"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrPasswordIncorrect = errors.New("密码错误")
)

// AuthService 认证服务接口
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (string, *model.Admin, error)
	SeedAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	adminRepo  repository.AdminRepository
	jwtService *jwt.JWTService
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config) AuthService {
	return NewAuthServiceWith(repository.NewAdminRepository(), jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours))
}

// NewAuthServiceWith 以显式依赖创建认证服务
func NewAuthServiceWith(adminRepo repository.AdminRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Login 管理员登录，成功返回会话token
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (string, *model.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		logger.Error("查询管理员失败", zap.Error(err))
		return "", nil, err
	}
	if admin == nil {
		return "", nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrPasswordIncorrect
	}

	token, err := s.jwtService.GenerateToken(admin.AdminID, admin.Username)
	if err != nil {
		logger.Error("生成会话token失败", zap.Error(err))
		return "", nil, err
	}

	logger.Info("管理员登录成功", zap.String("username", admin.Username))

	return token, admin, nil
}

// SeedAdmin 显式初始化管理员账号。管理员表为空时按配置创建，
// 否则什么都不做。取代"首次登录时顺手建号"的隐式引导。
func (s *authService) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		logger.Warn("未配置初始管理员账号，跳过seed")
		return nil
	}

	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("初始管理员已创建", zap.String("username", username))
	return nil
}
