package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rwecho/AIGCPilot/internal/model"
)

func negotiateFor(t *testing.T, setup func(req *http.Request)) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	if setup != nil {
		setup(c.Request)
	}
	return NegotiateLocale(c, model.LocaleZh)
}

func TestNegotiateLocale_Default(t *testing.T) {
	if got := negotiateFor(t, nil); got != model.LocaleZh {
		t.Errorf("无任何偏好时应取默认语言, got %q", got)
	}
}

func TestNegotiateLocale_QueryWins(t *testing.T) {
	got := negotiateFor(t, func(req *http.Request) {
		req.URL.RawQuery = "locale=en"
		req.AddCookie(&http.Cookie{Name: LocaleCookieName, Value: "zh"})
		req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	})
	if got != model.LocaleEn {
		t.Errorf("查询参数优先级应最高, got %q", got)
	}
}

func TestNegotiateLocale_CookieOverHeader(t *testing.T) {
	got := negotiateFor(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: LocaleCookieName, Value: "en"})
		req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	})
	if got != model.LocaleEn {
		t.Errorf("cookie应优先于Accept-Language, got %q", got)
	}
}

func TestNegotiateLocale_AcceptLanguage(t *testing.T) {
	got := negotiateFor(t, func(req *http.Request) {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9,zh;q=0.5")
	})
	if got != model.LocaleEn {
		t.Errorf("应按Accept-Language协商出en, got %q", got)
	}

	got = negotiateFor(t, func(req *http.Request) {
		req.Header.Set("Accept-Language", "zh-TW,zh;q=0.9")
	})
	if got != model.LocaleZh {
		t.Errorf("繁体中文应协商到zh, got %q", got)
	}
}

func TestNegotiateLocale_InvalidValuesIgnored(t *testing.T) {
	got := negotiateFor(t, func(req *http.Request) {
		req.URL.RawQuery = "locale=fr"
		req.AddCookie(&http.Cookie{Name: LocaleCookieName, Value: "jp"})
	})
	if got != model.LocaleZh {
		t.Errorf("非法的locale值应被忽略并落到默认语言, got %q", got)
	}
}

func TestLocaleMiddleware_SetsContextAndCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(LocaleMiddleware(model.LocaleZh))
	r.GET("/probe", func(c *gin.Context) {
		c.String(http.StatusOK, Locale(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != model.LocaleEn {
		t.Errorf("上下文语言 = %q, want en", w.Body.String())
	}

	found := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == LocaleCookieName && cookie.Value == model.LocaleEn {
			found = true
		}
	}
	if !found {
		t.Error("locale cookie未写回")
	}
}
