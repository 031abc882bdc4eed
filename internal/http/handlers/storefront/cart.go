package storefront

import (
	"github.com/ronoos/storefront/internal/http/handlers/shared"
	"github.com/ronoos/storefront/internal/http/response"
	"github.com/ronoos/storefront/internal/models"
	"github.com/ronoos/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	Kind          string       `json:"kind" binding:"required"`
	ProductID     *uint        `json:"product_id"`
	VariantID     *uint        `json:"variant_id"`
	DisplayName   string       `json:"display_name"`
	VariantLabel  string       `json:"variant_label"`
	UnitPrice     models.Money `json:"unit_price"`
	Quantity      int          `json:"quantity" binding:"required"`
	CustomConfig  models.JSON  `json:"custom_config"`
	MessageOnCake string       `json:"message_on_cake"`
}

// UpdateCartItemRequest 修改购物车行请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	summary, err := h.CartService.Summary(deviceID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, summary)
}

// AddCartItem 加入购物车（同行合并数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	item, err := h.CartService.AddItem(service.AddCartItemInput{
		DeviceID:      deviceID,
		Kind:          req.Kind,
		ProductID:     req.ProductID,
		VariantID:     req.VariantID,
		DisplayName:   req.DisplayName,
		VariantLabel:  req.VariantLabel,
		UnitPrice:     req.UnitPrice,
		Quantity:      req.Quantity,
		CustomConfig:  req.CustomConfig,
		MessageOnCake: req.MessageOnCake,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 修改行数量（数量归零删除该行）
func (h *Handler) UpdateCartItem(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	lineID := c.Param("line_id")
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	if err := h.CartService.UpdateQuantity(deviceID, lineID, req.Quantity); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	summary, err := h.CartService.Summary(deviceID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, summary)
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	lineID := c.Param("line_id")
	if err := h.CartService.RemoveItem(deviceID, lineID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "removed", nil)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(deviceID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "cleared", nil)
}
