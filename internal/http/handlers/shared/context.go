package shared

import (
	"strconv"

	"github.com/ronoos/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ContextKeyDeviceID 设备 ID 在 gin 上下文中的键
const ContextKeyDeviceID = "device_id"

// DeviceID 从上下文读取设备 ID，缺失时返回错误响应
func DeviceID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextKeyDeviceID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "设备会话缺失", nil)
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		RespondError(c, response.CodeInternal, "设备会话异常", nil)
		return "", false
	}
	return id, true
}

// AuthHeader 读取请求携带的 Authorization 头
func AuthHeader(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return ""
	}
	return c.Request.Header.Get("Authorization")
}

// ParamUint 解析路径参数为 uint，非法时返回错误响应
func ParamUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		RespondError(c, response.CodeBadRequest, "路径参数非法", err)
		return 0, false
	}
	return uint(parsed), true
}
