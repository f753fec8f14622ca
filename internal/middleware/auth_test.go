package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/jwt"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireHours = 24
	cfg.Crawler.Secret = "crawler-secret"
	return cfg
}

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/protected", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestSessionAuth_RejectsAnonymous(t *testing.T) {
	r := protectedRouter(SessionAuthMiddleware(testConfig()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", w.Code)
	}
}

func TestSessionAuth_AcceptsValidCookie(t *testing.T) {
	cfg := testConfig()
	token, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours).GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("GenerateToken失败: %v", err)
	}

	r := protectedRouter(SessionAuthMiddleware(cfg))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("code = %d, want 200", w.Code)
	}
}

func TestSessionAuth_RejectsForgedToken(t *testing.T) {
	// 另一把密钥签出来的token不能用
	token, err := jwt.NewJWTService("other-secret", 24).GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("GenerateToken失败: %v", err)
	}

	r := protectedRouter(SessionAuthMiddleware(testConfig()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", w.Code)
	}
}

func TestCrawlerAuth(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"正确密钥", "Bearer crawler-secret", http.StatusOK},
		{"错误密钥", "Bearer wrong", http.StatusUnauthorized},
		{"缺少头", "", http.StatusUnauthorized},
		{"非Bearer格式", "Basic crawler-secret", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := protectedRouter(CrawlerAuthMiddleware(testConfig()))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("code = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestCrawlerAuth_EmptySecretRejectsAll(t *testing.T) {
	cfg := testConfig()
	cfg.Crawler.Secret = ""
	r := protectedRouter(CrawlerAuthMiddleware(cfg))

	// 未配置密钥时即使带空Bearer也不放行
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", w.Code)
	}
}

func TestSessionOrCrawler_EitherWorks(t *testing.T) {
	cfg := testConfig()
	token, _ := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours).GenerateToken(1, "admin")

	r := protectedRouter(SessionOrCrawlerMiddleware(cfg))

	// 采集密钥放行
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer crawler-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("采集密钥: code = %d, want 200", w.Code)
	}

	// 管理员会话放行
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("管理员会话: code = %d, want 200", w.Code)
	}

	// 两者都没有则拒绝
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("匿名: code = %d, want 401", w.Code)
	}
}
