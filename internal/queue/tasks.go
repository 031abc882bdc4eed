package queue

import (
	"encoding/json"

	"github.com/ronoos/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmationEmail 下单确认邮件任务
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
)

// OrderConfirmationEmailPayload 下单确认邮件任务载荷
// 自包含：消费侧不回查上游
type OrderConfirmationEmailPayload struct {
	OrderID      uint   `json:"order_id"`
	Email        string `json:"email"`
	FinalAmount  string `json:"final_amount"`
	DeliveryDate string `json:"delivery_date"`
	DeliverySlot string `json:"delivery_slot"`
}

// NewOrderConfirmationEmailTask 创建下单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}
