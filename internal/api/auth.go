package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/middleware"
	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/jwt"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/service"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService service.AuthService
	jwtService  *jwt.JWTService
	secureMode  bool
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: service.NewAuthService(cfg),
		jwtService:  jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours),
		secureMode:  cfg.Server.Mode == "release",
	}
}

// Login 登录接口，成功后把会话token写入HttpOnly cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	token, admin, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		logger.Warn("登录失败",
			zap.String("username", req.Username),
			zap.Error(err),
		)

		switch err {
		case service.ErrUserNotFound:
			c.JSON(http.StatusUnauthorized, model.Unauthorized("用户不存在"))
		case service.ErrPasswordIncorrect:
			c.JSON(http.StatusUnauthorized, model.Unauthorized("密码错误"))
		default:
			c.JSON(http.StatusInternalServerError, model.ServerError("登录失败"))
		}
		return
	}

	maxAge := int(h.jwtService.Expiration().Seconds())
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.secureMode, true)

	c.JSON(http.StatusOK, model.Success(gin.H{
		"username": admin.Username,
	}))
}

// Me 返回当前会话信息。没有会话不算错误，按匿名返回。
func (h *AuthHandler) Me(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, model.Success(nil))
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusOK, model.Success(nil))
		return
	}

	c.JSON(http.StatusOK, model.Success(gin.H{
		"admin_id": claims.AdminID,
		"username": claims.Username,
	}))
}

// Logout 登出接口，清掉会话cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureMode, true)
	c.JSON(http.StatusOK, model.SuccessWithMessage("已登出", nil))
}
