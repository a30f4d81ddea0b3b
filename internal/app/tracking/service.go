package tracking

import (
	"context"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

type OrderReader interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type Service struct {
	orders OrderReader
	logger logger.Logger
}

func NewService(orders OrderReader, logger logger.Logger) *Service {
	return &Service{
		orders: orders,
		logger: logger,
	}
}

// GetOrderStatus is what the customer's status page shows.
func (s *Service) GetOrderStatus(ctx context.Context, orderID string) (*interfaces.OrderStatusView, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		s.logger.Debug("order_lookup_failed", "Order status lookup failed", orderID, map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	return &interfaces.OrderStatusView{
		OrderID:       order.ID,
		Status:        order.Status,
		Progress:      order.Progress(),
		EstimatedTime: order.EstimatedTime,
	}, nil
}
