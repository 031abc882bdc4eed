package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ronoos/storefront/internal/config"
	"github.com/ronoos/storefront/internal/constants"
	"github.com/ronoos/storefront/internal/logger"
	"github.com/ronoos/storefront/internal/models"
	"github.com/ronoos/storefront/internal/queue"
	"github.com/ronoos/storefront/internal/upstream"
)

// PlaceOrderInput 下单输入
// 配送上门时二选一：AddressID 复用已有地址，NewAddress 先建后用
type PlaceOrderInput struct {
	DeviceID     string
	AuthHeader   string
	Email        string
	DeliveryType string
	DeliveryDate string
	DeliverySlot string
	AddressID    *uint
	NewAddress   *upstream.AddressInput
}

// PlaceOrderResult 下单结果
type PlaceOrderResult struct {
	Order       *upstream.CreatedOrder `json:"order"`
	DeliveryFee models.Money           `json:"delivery_fee"`
	TotalAmount models.Money           `json:"total_amount"`
	FinalAmount models.Money           `json:"final_amount"`
}

// CheckoutService 下单服务
type CheckoutService struct {
	cart        *CartService
	builds      CakeBuildStore
	client      *upstream.Client
	queueClient *queue.Client
	deliveryFee models.Money

	// 同一设备同一时刻只允许一笔下单在途
	inflight sync.Map
}

// NewCheckoutService 创建下单服务
func NewCheckoutService(cart *CartService, builds CakeBuildStore, client *upstream.Client, queueClient *queue.Client, cfg *config.CheckoutConfig) *CheckoutService {
	fee := models.NewMoneyFromInt(50)
	if cfg != nil && strings.TrimSpace(cfg.DeliveryFee) != "" {
		if parsed, err := models.NewMoneyFromString(cfg.DeliveryFee); err == nil {
			fee = parsed
		}
	}
	return &CheckoutService{
		cart:        cart,
		builds:      builds,
		client:      client,
		queueClient: queueClient,
		deliveryFee: fee,
	}
}

// PlaceOrder 提交订单
// 地址创建失败时整单中止，不会产生半成品订单；成功后清空购物车
func (s *CheckoutService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if strings.TrimSpace(input.DeviceID) == "" {
		return nil, ErrInvalidCartItem
	}
	if _, loaded := s.inflight.LoadOrStore(input.DeviceID, struct{}{}); loaded {
		return nil, ErrCheckoutInFlight
	}
	defer s.inflight.Delete(input.DeviceID)

	if err := s.validateDelivery(input); err != nil {
		return nil, err
	}

	summary, err := s.cart.Summary(input.DeviceID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, ErrCartEmpty
	}

	addressID := input.AddressID
	if input.DeliveryType == constants.DeliveryTypeDelivery && addressID == nil {
		address, err := s.client.CreateAddress(ctx, input.AuthHeader, *input.NewAddress)
		if err != nil {
			return nil, err
		}
		addressID = &address.ID
	}

	fee := models.Money{}
	if input.DeliveryType == constants.DeliveryTypeDelivery {
		fee = s.deliveryFee
	}
	totalAmount := summary.TotalPrice.Add(fee)
	discountAmount := models.Money{}
	finalAmount := totalAmount

	items := make([]upstream.OrderItemInput, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, upstream.OrderItemInput{
			ProductID:        item.ProductID,
			ProductVariantID: item.VariantID,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Subtotal:         item.Subtotal(),
			CustomConfig:     item.CustomConfig,
			MessageOnCake:    item.MessageOnCake,
		})
	}

	order, err := s.client.CreateOrder(ctx, input.AuthHeader, upstream.CreateOrderInput{
		DeliveryType:    input.DeliveryType,
		DeliveryAddress: addressID,
		DeliveryDate:    input.DeliveryDate,
		DeliverySlot:    input.DeliverySlot,
		TotalAmount:     totalAmount,
		DiscountAmount:  discountAmount,
		FinalAmount:     finalAmount,
		PaymentStatus:   constants.PaymentStatusPending,
		Items:           items,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(input.DeviceID); err != nil {
		logger.Errorw("checkout_cart_clear_failed", "device_id", input.DeviceID, "order_id", order.ID, "error", err)
	}
	if err := s.builds.Delete(ctx, input.DeviceID); err != nil {
		logger.Warnw("checkout_build_clear_failed", "device_id", input.DeviceID, "error", err)
	}
	s.enqueueConfirmationEmail(order, input)

	return &PlaceOrderResult{
		Order:       order,
		DeliveryFee: fee,
		TotalAmount: totalAmount,
		FinalAmount: finalAmount,
	}, nil
}

// CancelOrder 取消订单（仅 pending 状态允许）
func (s *CheckoutService) CancelOrder(ctx context.Context, authHeader string, orderID uint) error {
	status, err := s.client.GetOrderStatus(ctx, authHeader, orderID)
	if err != nil {
		return err
	}
	if !constants.OrderStatusCanCancel(status) {
		return ErrOrderNotCancellable
	}
	_, err = s.client.UpdateOrderStatus(ctx, authHeader, orderID, constants.OrderStatusCancelled)
	return err
}

func (s *CheckoutService) validateDelivery(input PlaceOrderInput) error {
	if input.DeliveryType != constants.DeliveryTypePickup && input.DeliveryType != constants.DeliveryTypeDelivery {
		return ErrInvalidCartItem
	}
	if !constants.IsValidDeliverySlot(input.DeliverySlot) {
		return ErrDeliverySlotInvalid
	}
	date, err := time.Parse("2006-01-02", input.DeliveryDate)
	if err != nil {
		return ErrDeliveryDateInvalid
	}
	today := time.Now().Truncate(24 * time.Hour)
	if date.Before(today) {
		return ErrDeliveryDateInvalid
	}
	if input.DeliveryType == constants.DeliveryTypeDelivery && input.AddressID == nil && input.NewAddress == nil {
		return ErrDeliveryAddressRequired
	}
	return nil
}

func (s *CheckoutService) enqueueConfirmationEmail(order *upstream.CreatedOrder, input PlaceOrderInput) {
	if s.queueClient == nil || !s.queueClient.Enabled() || strings.TrimSpace(input.Email) == "" {
		return
	}
	err := s.queueClient.EnqueueOrderConfirmationEmail(queue.OrderConfirmationEmailPayload{
		OrderID:      order.ID,
		Email:        input.Email,
		FinalAmount:  order.FinalAmount.String(),
		DeliveryDate: input.DeliveryDate,
		DeliverySlot: input.DeliverySlot,
	})
	if err != nil {
		logger.Errorw("checkout_confirmation_email_enqueue_failed", "order_id", order.ID, "error", err)
	}
}
