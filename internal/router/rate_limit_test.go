package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRateLimitContext(t *testing.T, body string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	request.RemoteAddr = "203.0.113.9:51234"
	c.Request = request
	return c
}

func TestKeyByIPAndJSONField(t *testing.T) {
	keyFunc := KeyByIPAndJSONField("email")

	c := newRateLimitContext(t, `{"email": " User@Example.COM ", "password": "secret"}`)
	key := keyFunc(c)
	if key != "user@example.com|203.0.113.9" {
		t.Fatalf("unexpected key %q", key)
	}

	// 取字段后请求体仍可被后续 handler 读取
	var payload struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		t.Fatalf("body must stay readable after key extraction: %v", err)
	}
	if payload.Email != " User@Example.COM " {
		t.Fatalf("unexpected body email %q", payload.Email)
	}
}

func TestKeyByIPAndJSONFieldFallbacks(t *testing.T) {
	keyFunc := KeyByIPAndJSONField("email")

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "email=user"},
		{"field missing", `{"password": "secret"}`},
		{"field not string", `{"email": 42}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newRateLimitContext(t, tc.body)
			if key := keyFunc(c); key != "203.0.113.9" {
				t.Fatalf("expected ip fallback, got %q", key)
			}
		})
	}
}

func TestRateLimitMiddlewareDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/login", RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 5}, KeyByIP), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", nil))
	if recorder.Code != http.StatusOK || recorder.Body.String() != "ok" {
		t.Fatalf("expected passthrough without redis, got %d %q", recorder.Code, recorder.Body.String())
	}
}

func TestToInt64(t *testing.T) {
	if v, ok := toInt64(int64(7)); !ok || v != 7 {
		t.Fatalf("int64 conversion failed: %v %v", v, ok)
	}
	if v, ok := toInt64(float64(3.9)); !ok || v != 3 {
		t.Fatalf("float64 conversion failed: %v %v", v, ok)
	}
	if _, ok := toInt64("7"); ok {
		t.Fatal("string must not convert")
	}
}
