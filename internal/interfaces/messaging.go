package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/shopspring/decimal"
)

// OrderMessage is the kitchen ticket sent once an order is paid.
type OrderMessage struct {
	OrderID       string            `json:"order_id"`
	TableNumber   string            `json:"table_number"`
	Items         []domain.CartItem `json:"items"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	EstimatedTime int               `json:"estimated_time"`
	CreatedAt     time.Time         `json:"created_at"`
}

type StatusUpdateMessage struct {
	OrderID     string        `json:"order_id"`
	TableNumber string        `json:"table_number"`
	OldStatus   domain.Status `json:"old_status"`
	NewStatus   domain.Status `json:"new_status"`
	ChangedBy   string        `json:"changed_by"`
	Timestamp   time.Time     `json:"timestamp"`
}

type MessagePublisher interface {
	PublishOrder(ctx context.Context, msg OrderMessage) error
	PublishStatusUpdate(ctx context.Context, msg StatusUpdateMessage) error
}

type MessageConsumer interface {
	ConsumeOrders(ctx context.Context, handler OrderMessageHandler) error
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}

type (
	OrderMessageHandler func(ctx context.Context, body []byte) error
	NotificationHandler func(ctx context.Context, body []byte) error
)
