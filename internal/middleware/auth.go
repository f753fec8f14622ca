package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/jwt"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
)

// SessionCookieName 管理后台会话cookie名
const SessionCookieName = "auth_token"

// sessionClaims 从cookie里解出会话声明，失败返回nil(视为匿名，不是错误)
func sessionClaims(c *gin.Context, jwtService *jwt.JWTService) *jwt.Claims {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return nil
	}
	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	return claims
}

// SessionAuthMiddleware 管理员会话认证中间件，无有效会话直接401
func SessionAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	return func(c *gin.Context) {
		claims := sessionClaims(c, jwtService)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, model.Unauthorized("未登录或会话已过期"))
			c.Abort()
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// bearerToken 提取Authorization头里的Bearer token
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// crawlerTokenValid 校验自动化共享密钥
func crawlerTokenValid(c *gin.Context, secret string) bool {
	if secret == "" {
		return false
	}
	token := bearerToken(c)
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}

// CrawlerAuthMiddleware 自动化(采集/富化/巡检)接口认证中间件，
// 校验Bearer token是否等于共享密钥
func CrawlerAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !crawlerTokenValid(c, cfg.Crawler.Secret) {
			logger.Warn("自动化接口认证失败",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusUnauthorized, model.Unauthorized("无效的访问凭证"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionOrCrawlerMiddleware 双认证：管理员会话或自动化密钥任一有效即放行。
// 缓存失效接口同时服务后台按钮和外部流水线。
func SessionOrCrawlerMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	return func(c *gin.Context) {
		if crawlerTokenValid(c, cfg.Crawler.Secret) {
			c.Next()
			return
		}
		if claims := sessionClaims(c, jwtService); claims != nil {
			c.Set("admin_id", claims.AdminID)
			c.Set("username", claims.Username)
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, model.Unauthorized("无效的访问凭证"))
		c.Abort()
	}
}
