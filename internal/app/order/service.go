package order

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/app/simulate"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
	"github.com/google/uuid"
)

const changedByStaff = "staff"

type Delays struct {
	Create  time.Duration
	Status  time.Duration
	History time.Duration
}

type Options struct {
	// StrictTransitions rejects status changes outside the lifecycle table.
	// Off by default: staff may set any known status.
	StrictTransitions bool
	MinEstimate       int
	MaxEstimate       int
	Location          *time.Location
	Delays            Delays

	Now   func() time.Time
	IntN  func(n int) int
	NewID func() string
}

// Service is the order ledger. Orders are appended, never removed, and only
// their status changes after creation.
type Service struct {
	repo      interfaces.OrderRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
	opts      Options
	mu        sync.Mutex
}

// NewService fills unset options with production defaults. publisher may be nil.
func NewService(repo interfaces.OrderRepository, publisher interfaces.MessagePublisher, logger logger.Logger, opts Options) *Service {
	if opts.MinEstimate < 1 {
		opts.MinEstimate = 10
	}
	if opts.MaxEstimate < opts.MinEstimate {
		opts.MaxEstimate = opts.MinEstimate
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IntN == nil {
		opts.IntN = rand.IntN
	}
	if opts.NewID == nil {
		opts.NewID = newOrderID
	}

	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
	}
}

// UUIDv7 ids are time ordered, so sorting by id sorts by recency.
func newOrderID() string {
	return "ORD-" + uuid.Must(uuid.NewV7()).String()
}

func (s *Service) Location() *time.Location {
	return s.opts.Location
}

// CreateOrder appends an order awaiting payment. It only becomes visible to
// the kitchen once ConfirmPayment succeeds.
func (s *Service) CreateOrder(ctx context.Context, tableNumber string, items []domain.CartItem) (*interfaces.Placement, error) {
	if err := simulate.Delay(ctx, s.opts.Delays.Create); err != nil {
		return nil, err
	}

	tableNumber = strings.TrimSpace(tableNumber)
	if tableNumber == "" {
		return nil, domain.ValidationError{Field: "tableNumber", Message: "table number is required"}
	}

	estimate := s.opts.MinEstimate + s.opts.IntN(s.opts.MaxEstimate-s.opts.MinEstimate+1)

	order, err := domain.NewOrder(s.opts.NewID(), tableNumber, items, estimate, s.opts.Now())
	if err != nil {
		s.logger.Error("validation_failed", "Order validation failed", "", nil, err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, append(orders, order)); err != nil {
		s.logger.Error("order_save_failed", "Failed to create order", order.ID, nil, err)
		return nil, err
	}

	s.logger.Debug("order_received", "Order created, awaiting payment", order.ID, map[string]interface{}{
		"order_id":     order.ID,
		"table_number": order.TableNumber,
		"total_amount": order.TotalAmount.String(),
	})

	return &interfaces.Placement{OrderID: order.ID, EstimatedTime: estimate}, nil
}

// ConfirmPayment finalizes an unpaid order to pending. Confirming an order
// that is already past payment is a no-op.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case domain.StatusPendingPayment:
	case domain.StatusCancelled:
		return nil, fmt.Errorf("order %s: %w: cancelled orders cannot be paid", orderID, domain.ErrInvalidStatusTransition)
	default:
		return order.Clone(), nil
	}

	order.Status = domain.StatusPending
	if err := s.repo.Save(ctx, orders); err != nil {
		s.logger.Error("order_save_failed", "Failed to confirm order", orderID, nil, err)
		return nil, err
	}

	s.logger.Info("order_confirmed", fmt.Sprintf("Order %s paid and sent to kitchen", orderID), orderID, map[string]interface{}{
		"table_number": order.TableNumber,
	})

	s.publishTicket(ctx, order)
	s.publishStatus(ctx, order, domain.StatusPendingPayment, "payment")

	return order.Clone(), nil
}

// CancelUnpaid cancels an order whose payment never went through.
func (s *Service) CancelUnpaid(ctx context.Context, orderID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.StatusPendingPayment {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, order.Status, domain.ErrInvalidStatusTransition)
	}

	order.Status = domain.StatusCancelled
	if err := s.repo.Save(ctx, orders); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, order, domain.StatusPendingPayment, "payment")
	return order.Clone(), nil
}

// ExpireUnpaid cancels every order that has waited for payment longer than
// olderThan and returns how many were cancelled.
func (s *Service) ExpireUnpaid(ctx context.Context, olderThan time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}

	now := s.opts.Now()
	var expired []*domain.Order
	for _, o := range orders {
		if o.Status == domain.StatusPendingPayment && now.Sub(o.CreatedAt) > olderThan {
			o.Status = domain.StatusCancelled
			expired = append(expired, o)
		}
	}

	if len(expired) == 0 {
		return 0, nil
	}

	if err := s.repo.Save(ctx, orders); err != nil {
		s.logger.Error("order_save_failed", "Failed to expire unpaid orders", "", nil, err)
		return 0, err
	}

	for _, o := range expired {
		s.publishStatus(ctx, o, domain.StatusPendingPayment, "payment-timeout")
	}

	s.logger.Info("unpaid_orders_expired", fmt.Sprintf("Cancelled %d unpaid orders", len(expired)), "", map[string]interface{}{
		"count": len(expired),
	})

	return len(expired), nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if err := simulate.Delay(ctx, s.opts.Delays.Status); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

// ListOrders returns orders in ledger order, filtered to r when it is non-nil.
// Sorting is left to the caller.
func (s *Service) ListOrders(ctx context.Context, r *domain.DateRange) ([]*domain.Order, error) {
	if err := simulate.Delay(ctx, s.opts.Delays.History); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if r != nil && !r.Contains(o.CreatedAt) {
			continue
		}
		result = append(result, o.Clone())
	}
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error) {
	if err := simulate.Delay(ctx, s.opts.Delays.Status); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}

	old := order.Status
	if err := order.TransitionTo(status, s.opts.StrictTransitions); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, orders); err != nil {
		s.logger.Error("order_save_failed", "Failed to update order status", orderID, nil, err)
		return nil, err
	}

	s.logger.Debug("status_updated", fmt.Sprintf("Order %s: %s -> %s", orderID, old, status), orderID, map[string]interface{}{
		"old_status": old,
		"new_status": status,
	})

	s.publishStatus(ctx, order, old, changedByStaff)
	return order.Clone(), nil
}

func (s *Service) find(ctx context.Context, orderID string) ([]*domain.Order, *domain.Order, error) {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			return orders, o, nil
		}
	}
	return nil, nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
}

// Publishing failures are logged only: the ledger write has already happened.
func (s *Service) publishTicket(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}

	msg := interfaces.OrderMessage{
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Items:       domain.CloneItems(order.Items),
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
	if order.EstimatedTime != nil {
		msg.EstimatedTime = *order.EstimatedTime
	}

	if err := s.publisher.PublishOrder(ctx, msg); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish kitchen ticket", order.ID, nil, err)
		return
	}
	s.logger.Debug("order_published", "Kitchen ticket published", order.ID, nil)
}

func (s *Service) publishStatus(ctx context.Context, order *domain.Order, old domain.Status, changedBy string) {
	if s.publisher == nil {
		return
	}

	msg := interfaces.StatusUpdateMessage{
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		OldStatus:   old,
		NewStatus:   order.Status,
		ChangedBy:   changedBy,
		Timestamp:   s.opts.Now().UTC(),
	}

	if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish status update", order.ID, nil, err)
	}
}
