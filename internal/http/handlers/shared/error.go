package shared

import (
	"errors"

	"github.com/ronoos/storefront/internal/http/response"
	"github.com/ronoos/storefront/internal/logger"
	"github.com/ronoos/storefront/internal/service"
	"github.com/ronoos/storefront/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

type mappedHandlerError struct {
	target error
	code   int
}

var serviceErrorMappings = []mappedHandlerError{
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest},
	{target: service.ErrCakeBuildNotFound, code: response.CodeNotFound},
	{target: service.ErrCakeBuildDisabled, code: response.CodeForbidden},
	{target: service.ErrCakeStepInvalid, code: response.CodeBadRequest},
	{target: service.ErrCakeCategoryInvalid, code: response.CodeBadRequest},
	{target: service.ErrCakeOptionInvalid, code: response.CodeBadRequest},
	{target: service.ErrCakeBuildIncomplete, code: response.CodeBadRequest},
	{target: service.ErrCakeMessageTooLong, code: response.CodeBadRequest},
	{target: service.ErrDeliverySlotInvalid, code: response.CodeBadRequest},
	{target: service.ErrDeliveryDateInvalid, code: response.CodeBadRequest},
	{target: service.ErrDeliveryAddressRequired, code: response.CodeBadRequest},
	{target: service.ErrCheckoutInFlight, code: response.CodeConflict},
	{target: service.ErrOrderNotCancellable, code: response.CodeConflict},
	{target: service.ErrOrderStatusInvalid, code: response.CodeConflict},
	{target: service.ErrPaymentStatusInvalid, code: response.CodeBadRequest},
}

// RespondServiceError 将业务错误按映射表转成响应
// 上游业务错误透传其状态码与明细，未识别错误按内部错误兜底
func RespondServiceError(c *gin.Context, err error) {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			RespondError(c, mapping.code, mapping.target.Error(), nil)
			return
		}
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.StatusCode, apiErr.Detail, nil)
		return
	}
	if errors.Is(err, upstream.ErrRequestFailed) {
		RespondError(c, response.CodeUpstream, "上游服务不可用", err)
		return
	}
	RespondError(c, response.CodeInternal, "服务器内部错误", err)
}
