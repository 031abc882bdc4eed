package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ronoos/storefront/internal/config"
	"github.com/ronoos/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		name             string
		origin           string
		allowedOrigins   []string
		allowCredentials bool
		want             string
	}{
		{"wildcard without credentials", "https://app.example.com", []string{"*"}, false, "*"},
		{"wildcard with credentials echoes origin", "https://app.example.com", []string{"*"}, true, "https://app.example.com"},
		{"wildcard with credentials no origin", "", []string{"*"}, true, "*"},
		{"exact match", "https://app.example.com", []string{"https://app.example.com"}, true, "https://app.example.com"},
		{"case insensitive match", "https://APP.example.com", []string{"https://app.example.com"}, false, "https://APP.example.com"},
		{"no match", "https://evil.example.com", []string{"https://app.example.com"}, false, ""},
		{"empty allowed list", "https://app.example.com", nil, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveAllowedOrigin(tc.origin, tc.allowedOrigins, tc.allowCredentials)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, getRequestID(c))
	})

	// 未携带时生成
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(recorder, request)
	generated := recorder.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatal("expected generated request id header")
	}
	if recorder.Body.String() != generated {
		t.Fatalf("expected context request id %q, got %q", generated, recorder.Body.String())
	}

	// 已携带时透传
	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/ping", nil)
	request.Header.Set(requestIDHeader, "req-123")
	engine.ServeHTTP(recorder, request)
	if recorder.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("expected request id passthrough, got %q", recorder.Header().Get(requestIDHeader))
	}
}

func newDeviceSessionEngine(cfg config.SessionConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(DeviceSessionMiddleware(cfg))
	engine.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(shared.ContextKeyDeviceID))
	})
	return engine
}

func TestDeviceSessionMintsCookie(t *testing.T) {
	engine := newDeviceSessionEngine(config.SessionConfig{SecretKey: "test-secret", CookieName: "rn_device"})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	engine.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	deviceID := recorder.Body.String()
	if deviceID == "" {
		t.Fatal("expected device id in context")
	}

	var sessionCookie *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "rn_device" {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected device cookie set")
	}
	if !sessionCookie.HttpOnly {
		t.Fatal("expected http-only device cookie")
	}

	// 带着 Cookie 再访问，设备 ID 保持不变且不重复签发
	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.AddCookie(sessionCookie)
	engine.ServeHTTP(recorder, request)

	if recorder.Body.String() != deviceID {
		t.Fatalf("expected stable device id %q, got %q", deviceID, recorder.Body.String())
	}
	if len(recorder.Result().Cookies()) != 0 {
		t.Fatal("expected no cookie re-issue for valid session")
	}
}

func TestDeviceSessionInvalidCookieReplaced(t *testing.T) {
	engine := newDeviceSessionEngine(config.SessionConfig{SecretKey: "test-secret", CookieName: "rn_device"})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.AddCookie(&http.Cookie{Name: "rn_device", Value: "not-a-jwt"})
	engine.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if recorder.Body.String() == "" {
		t.Fatal("expected fresh device id")
	}
	replaced := false
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "rn_device" && cookie.Value != "not-a-jwt" {
			replaced = true
		}
	}
	if !replaced {
		t.Fatal("expected invalid cookie replaced")
	}
}

func TestDeviceSessionRequiresSecret(t *testing.T) {
	engine := newDeviceSessionEngine(config.SessionConfig{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	engine.ServeHTTP(recorder, request)

	if !strings.Contains(recorder.Body.String(), `"status_code":401`) {
		t.Fatalf("expected unauthorized envelope without secret, got %s", recorder.Body.String())
	}
}
