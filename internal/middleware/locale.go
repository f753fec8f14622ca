package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/rwecho/AIGCPilot/internal/model"
)

// LocaleCookieName 语言偏好cookie名
const LocaleCookieName = "locale"

const localeCookieMaxAge = 365 * 24 * 3600

// matcher的tag顺序必须与model.Locales一致，匹配结果按下标映射回locale串
var localeMatcher = language.NewMatcher([]language.Tag{
	language.Chinese,
	language.English,
})

// NegotiateLocale 按 查询参数 → cookie → Accept-Language → 默认值 的顺序
// 解析请求语言
func NegotiateLocale(c *gin.Context, defaultLocale string) string {
	if q := c.Query("locale"); model.ValidLocale(q) {
		return q
	}

	if cookie, err := c.Cookie(LocaleCookieName); err == nil && model.ValidLocale(cookie) {
		return cookie
	}

	if header := c.GetHeader("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			_, i, _ := localeMatcher.Match(tags...)
			if i >= 0 && i < len(model.Locales) {
				return model.Locales[i]
			}
		}
	}

	if model.ValidLocale(defaultLocale) {
		return defaultLocale
	}
	return model.LocaleZh
}

// LocaleMiddleware 解析请求语言并固定到上下文和cookie
func LocaleMiddleware(defaultLocale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := NegotiateLocale(c, defaultLocale)

		c.Set("locale", locale)
		c.SetCookie(LocaleCookieName, locale, localeCookieMaxAge, "/", "", false, false)
		c.Next()
	}
}

// Locale 取当前请求已固定的语言
func Locale(c *gin.Context) string {
	if v, exists := c.Get("locale"); exists {
		if locale, ok := v.(string); ok {
			return locale
		}
	}
	return model.LocaleZh
}
