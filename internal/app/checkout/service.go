package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
	"github.com/shopspring/decimal"
)

type TableSource interface {
	Table(ctx context.Context) (string, error)
}

// Service turns the cart into a paid order: create, authorize, confirm, then
// empty the cart. A declined payment leaves the order unpaid and the cart
// intact.
type Service struct {
	session  TableSource
	cart     interfaces.CartService
	orders   interfaces.OrderService
	payments interfaces.PaymentService
	logger   logger.Logger
}

func NewService(
	session TableSource,
	cart interfaces.CartService,
	orders interfaces.OrderService,
	payments interfaces.PaymentService,
	logger logger.Logger,
) *Service {
	return &Service{
		session:  session,
		cart:     cart,
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

// Submit places the current cart for the session's table. On a declined
// payment both the receipt (status pending_payment) and the error are
// returned so the caller can offer a retry.
func (s *Service) Submit(ctx context.Context) (*interfaces.Receipt, error) {
	table, err := s.session.Table(ctx)
	if err != nil {
		return nil, err
	}
	if table == "" {
		return nil, domain.ValidationError{Field: "tableNumber", Message: "no table selected"}
	}

	items := s.cart.Snapshot()
	_, total := domain.SumItems(items)

	placement, err := s.orders.CreateOrder(ctx, table, items)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("checkout_started", fmt.Sprintf("Order %s created for table %s", placement.OrderID, table), placement.OrderID, map[string]interface{}{
		"total_amount": total.String(),
	})

	return s.pay(ctx, placement.OrderID, placement.EstimatedTime, total)
}

// RetryPayment authorizes an order whose earlier payment was declined.
func (s *Service) RetryPayment(ctx context.Context, orderID string) (*interfaces.Receipt, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusPendingPayment {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, order.Status, domain.ErrInvalidStatusTransition)
	}

	estimate := 0
	if order.EstimatedTime != nil {
		estimate = *order.EstimatedTime
	}
	return s.pay(ctx, order.ID, estimate, order.TotalAmount)
}

func (s *Service) pay(ctx context.Context, orderID string, estimate int, total decimal.Decimal) (*interfaces.Receipt, error) {
	receipt := &interfaces.Receipt{
		OrderID:       orderID,
		EstimatedTime: estimate,
		TotalAmount:   total,
		Status:        domain.StatusPendingPayment,
	}

	auth, err := s.payments.Authorize(ctx, orderID, total)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentDeclined) {
			return receipt, err
		}
		s.logger.Error("payment_failed", "Payment authorization failed", orderID, nil, err)
		return nil, err
	}
	receipt.TransactionID = auth.TransactionID

	order, err := s.orders.ConfirmPayment(ctx, orderID)
	if err != nil {
		s.logger.Error("confirm_failed", "Payment authorized but order not confirmed", orderID, map[string]interface{}{
			"transaction_id": auth.TransactionID,
		}, err)
		return nil, err
	}
	receipt.Status = order.Status

	if err := s.cart.ClearCart(ctx); err != nil {
		// the order is paid; a stale cart is recoverable
		s.logger.Error("cart_clear_failed", "Failed to clear cart after checkout", orderID, nil, err)
	}

	s.logger.Info("checkout_completed", fmt.Sprintf("Order %s paid", orderID), orderID, map[string]interface{}{
		"transaction_id": auth.TransactionID,
		"total_amount":   total.String(),
	})

	return receipt, nil
}
