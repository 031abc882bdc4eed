package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ronoos/storefront/internal/logger"
	"github.com/ronoos/storefront/internal/provider"
	"github.com/ronoos/storefront/internal/queue"
	"github.com/ronoos/storefront/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.Email == "" {
		logger.Debugw("worker_order_confirmation_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_confirmation_email_skip_email_service_nil", "order_id", payload.OrderID)
		return nil
	}
	input := service.OrderConfirmationInput{
		OrderID:      payload.OrderID,
		FinalAmount:  payload.FinalAmount,
		DeliveryDate: payload.DeliveryDate,
		DeliverySlot: payload.DeliverySlot,
	}
	if err := c.EmailService.SendOrderConfirmation(payload.Email, input); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled):
			logger.Debugw("worker_order_confirmation_email_skip_disabled", "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrInvalidEmail):
			logger.Debugw("worker_order_confirmation_email_skip_invalid_receiver", "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrEmailRecipientRejected):
			logger.Debugw("worker_order_confirmation_email_skip_rejected_receiver", "order_id", payload.OrderID)
			return nil
		default:
			logger.Warnw("worker_order_confirmation_email_send_failed",
				"order_id", payload.OrderID,
				"receiver_email", payload.Email,
				"error", err,
			)
			return err
		}
	}
	return nil
}
