package service

import (
	"context"
	"encoding/json"

	"github.com/ronoos/storefront/internal/constants"
	"github.com/ronoos/storefront/internal/upstream"
)

// OrderService 订单查询与后厨侧状态流转
type OrderService struct {
	client *upstream.Client
}

// NewOrderService 创建订单服务
func NewOrderService(client *upstream.Client) *OrderService {
	return &OrderService{client: client}
}

// ListByUser 查询当前用户订单
func (s *OrderService) ListByUser(ctx context.Context, authHeader string) (json.RawMessage, error) {
	return s.client.ListOrders(ctx, authHeader)
}

// GetByID 查询订单详情
func (s *OrderService) GetByID(ctx context.Context, authHeader string, id uint) (json.RawMessage, error) {
	return s.client.GetOrder(ctx, authHeader, id)
}

// AdvanceStatus 推进订单状态
// 只允许沿固定流转链前进一步，或从 pending 取消
func (s *OrderService) AdvanceStatus(ctx context.Context, authHeader string, id uint, target string) (json.RawMessage, error) {
	current, err := s.client.GetOrderStatus(ctx, authHeader, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(current, target) {
		return nil, ErrOrderStatusInvalid
	}
	return s.client.UpdateOrderStatus(ctx, authHeader, id, target)
}

// UpdatePaymentStatus 更新支付状态
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, authHeader string, id uint, paymentStatus string) (json.RawMessage, error) {
	if !constants.IsValidPaymentStatus(paymentStatus) {
		return nil, ErrPaymentStatusInvalid
	}
	return s.client.UpdateOrderPaymentStatus(ctx, authHeader, id, paymentStatus)
}

// Analytics 查询经营分析
func (s *OrderService) Analytics(ctx context.Context, authHeader string) (json.RawMessage, error) {
	return s.client.GetAnalytics(ctx, authHeader)
}

func canTransition(current, target string) bool {
	if target == constants.OrderStatusCancelled {
		return constants.OrderStatusCanCancel(current)
	}
	currentRank := constants.OrderStatusRank(current)
	targetRank := constants.OrderStatusRank(target)
	if currentRank < 0 || targetRank < 0 {
		return false
	}
	return targetRank == currentRank+1
}
