package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ronoos/storefront/internal/models"
)

// OrderItemInput 订单行载荷
// 定制蛋糕行 product_id / product_variant_id 置空，配置随 custom_config 上送
type OrderItemInput struct {
	ProductID        *uint        `json:"product_id"`
	ProductVariantID *uint        `json:"product_variant_id"`
	Quantity         int          `json:"quantity"`
	UnitPrice        models.Money `json:"unit_price"`
	Subtotal         models.Money `json:"subtotal"`
	CustomConfig     models.JSON  `json:"custom_config,omitempty"`
	MessageOnCake    string       `json:"message_on_cake,omitempty"`
}

// CreateOrderInput 下单载荷
type CreateOrderInput struct {
	DeliveryType    string           `json:"delivery_type"`
	DeliveryAddress *uint            `json:"delivery_address"`
	DeliveryDate    string           `json:"delivery_date"`
	DeliverySlot    string           `json:"delivery_slot"`
	TotalAmount     models.Money     `json:"total_amount"`
	DiscountAmount  models.Money     `json:"discount_amount"`
	FinalAmount     models.Money     `json:"final_amount"`
	PaymentStatus   string           `json:"payment_status"`
	Items           []OrderItemInput `json:"items"`
}

// CreatedOrder 下单结果（只取网关关心的字段）
type CreatedOrder struct {
	ID            uint         `json:"id"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"payment_status"`
	FinalAmount   models.Money `json:"final_amount"`
	DeliveryDate  string       `json:"delivery_date"`
	DeliverySlot  string       `json:"delivery_slot"`
}

// CreateOrder 向上游创建订单
func (c *Client) CreateOrder(ctx context.Context, authHeader string, input CreateOrderInput) (*CreatedOrder, error) {
	var order CreatedOrder
	if err := c.do(ctx, http.MethodPost, "/orders/", authHeader, input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders 拉取当前用户订单（原样返回）
func (c *Client) ListOrders(ctx context.Context, authHeader string) (json.RawMessage, error) {
	return c.ProxyJSON(ctx, http.MethodGet, "/orders/", authHeader, nil)
}

// GetOrder 拉取订单详情（原样返回）
func (c *Client) GetOrder(ctx context.Context, authHeader string, id uint) (json.RawMessage, error) {
	return c.ProxyJSON(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/", id), authHeader, nil)
}

// GetOrderStatus 读取订单当前状态（取消前置校验用）
func (c *Client) GetOrderStatus(ctx context.Context, authHeader string, id uint) (string, error) {
	var order struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/", id), authHeader, nil, &order); err != nil {
		return "", err
	}
	return order.Status, nil
}

// UpdateOrderStatus 更新订单状态
func (c *Client) UpdateOrderStatus(ctx context.Context, authHeader string, id uint, status string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	return c.ProxyJSON(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status/", id), authHeader, body)
}

// UpdateOrderPaymentStatus 更新订单支付状态
func (c *Client) UpdateOrderPaymentStatus(ctx context.Context, authHeader string, id uint, paymentStatus string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"payment_status": paymentStatus})
	if err != nil {
		return nil, err
	}
	return c.ProxyJSON(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/payment-status/", id), authHeader, body)
}

// GetAnalytics 拉取经营分析汇总（原样返回）
func (c *Client) GetAnalytics(ctx context.Context, authHeader string) (json.RawMessage, error) {
	return c.ProxyJSON(ctx, http.MethodGet, "/orders/analytics/", authHeader, nil)
}
