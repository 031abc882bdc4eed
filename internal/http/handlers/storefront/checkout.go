package storefront

import (
	"github.com/ronoos/storefront/internal/cache"
	"github.com/ronoos/storefront/internal/http/handlers/shared"
	"github.com/ronoos/storefront/internal/http/response"
	"github.com/ronoos/storefront/internal/service"
	"github.com/ronoos/storefront/internal/upstream"

	"github.com/gin-gonic/gin"
)

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	DeliveryType string                 `json:"delivery_type" binding:"required"`
	DeliveryDate string                 `json:"delivery_date" binding:"required"`
	DeliverySlot string                 `json:"delivery_slot" binding:"required"`
	AddressID    *uint                  `json:"address_id"`
	NewAddress   *upstream.AddressInput `json:"new_address"`
}

// PlaceOrder 提交订单
func (h *Handler) PlaceOrder(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}

	email := ""
	if value, exists := c.Get("auth_snapshot"); exists {
		if snapshot, ok := value.(*cache.AuthSnapshot); ok && snapshot != nil {
			email = snapshot.Email
		}
	}

	result, err := h.CheckoutService.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		DeviceID:     deviceID,
		AuthHeader:   shared.AuthHeader(c),
		Email:        email,
		DeliveryType: req.DeliveryType,
		DeliveryDate: req.DeliveryDate,
		DeliverySlot: req.DeliverySlot,
		AddressID:    req.AddressID,
		NewAddress:   req.NewAddress,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ListOrders 我的订单列表
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

// CancelOrder 取消订单（仅待处理状态允许）
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	if err := h.CheckoutService.CancelOrder(c.Request.Context(), shared.AuthHeader(c), id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "cancelled", nil)
}
