package baker

import (
	"github.com/ronoos/storefront/internal/http/handlers/shared"
	"github.com/ronoos/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UpdateStatusRequest 状态推进请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest 支付状态更新请求
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// ListOrders 全部订单
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.OrderService.ListByUser(c.Request.Context(), shared.AuthHeader(c))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(c.Request.Context(), shared.AuthHeader(c), id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateStatus 推进订单状态（只允许沿流转链前进一步或从待处理取消）
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	order, err := h.OrderService.AdvanceStatus(c.Request.Context(), shared.AuthHeader(c), id, req.Status)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdatePaymentStatus 更新支付状态
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	order, err := h.OrderService.UpdatePaymentStatus(c.Request.Context(), shared.AuthHeader(c), id, req.PaymentStatus)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}
