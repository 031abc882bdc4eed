package router

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ronoos/storefront/internal/authz"
	"github.com/ronoos/storefront/internal/cache"
	"github.com/ronoos/storefront/internal/config"
	"github.com/ronoos/storefront/internal/http/handlers/shared"
	"github.com/ronoos/storefront/internal/http/response"
	"github.com/ronoos/storefront/internal/logger"
	"github.com/ronoos/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const authSnapshotContextKey = "auth_snapshot"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// DeviceSessionMiddleware 设备会话中间件
// Cookie 缺失或非法时签发新设备 ID，购物车与定制流程按设备隔离
func DeviceSessionMiddleware(cfg config.SessionConfig) gin.HandlerFunc {
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = "rn_device"
	}
	expire := time.Duration(cfg.ExpireHours) * time.Hour
	if expire <= 0 {
		expire = 30 * 24 * time.Hour
	}
	return func(c *gin.Context) {
		if cfg.SecretKey == "" {
			response.Unauthorized(c, "会话密钥未配置")
			c.Abort()
			return
		}

		deviceID := ""
		if cookieValue, err := c.Cookie(cookieName); err == nil {
			if parsed, err := service.ParseDeviceToken(cfg.SecretKey, cookieValue); err == nil {
				deviceID = parsed
			}
		}
		if deviceID == "" {
			deviceID = service.NewDeviceID()
			token, err := service.SignDeviceToken(cfg.SecretKey, deviceID, expire)
			if err != nil {
				logger.Errorw("device_session_sign_failed", "error", err)
				response.Error(c, response.CodeInternal, "会话签发失败")
				c.Abort()
				return
			}
			c.SetCookie(cookieName, token, int(expire.Seconds()), "/", "", false, true)
		}

		c.Set(shared.ContextKeyDeviceID, deviceID)
		c.Next()
	}
}

// UpstreamAuthMiddleware 上游令牌鉴权中间件
// 令牌本体由上游校验，这里只要求携带并解析出用户快照
func UpstreamAuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.TrimSpace(authHeader) == "" {
			response.Unauthorized(c, "缺少鉴权信息")
			c.Abort()
			return
		}
		snapshot, err := authService.Resolve(c.Request.Context(), authHeader)
		if err != nil || snapshot == nil {
			response.Unauthorized(c, "鉴权信息无效")
			c.Abort()
			return
		}
		c.Set(authSnapshotContextKey, snapshot)
		c.Next()
	}
}

// BakerRBACMiddleware 后厨 RBAC 鉴权中间件
func BakerRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("baker_rbac_service_unavailable")
			response.Unauthorized(c, "鉴权服务不可用")
			c.Abort()
			return
		}

		value, exists := c.Get(authSnapshotContextKey)
		if !exists {
			response.Unauthorized(c, "缺少鉴权信息")
			c.Abort()
			return
		}
		snapshot, ok := value.(*cache.AuthSnapshot)
		if !ok || snapshot == nil || strings.TrimSpace(snapshot.Role) == "" {
			response.Unauthorized(c, "鉴权信息无效")
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceRole(snapshot.Role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("baker_rbac_enforce_failed",
				"user_id", snapshot.UserID,
				"role", snapshot.Role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Unauthorized(c, "鉴权失败")
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("baker_rbac_permission_denied",
				"user_id", snapshot.UserID,
				"role", snapshot.Role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, "没有访问权限")
			c.Abort()
			return
		}

		c.Next()
	}
}
