package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a submitted cart. Everything but Status is fixed at creation.
type Order struct {
	ID            string          `json:"id"`
	TableNumber   string          `json:"tableNumber"`
	Items         []CartItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	EstimatedTime *int            `json:"estimatedTime,omitempty"`
}

// NewOrder validates items and builds an order awaiting payment. The items are
// copied so later changes to the caller's slice do not leak into the ledger.
func NewOrder(id, tableNumber string, items []CartItem, estimatedMinutes int, createdAt time.Time) (*Order, error) {
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	order := &Order{
		ID:          id,
		TableNumber: tableNumber,
		Items:       CloneItems(items),
		Status:      StatusPendingPayment,
		CreatedAt:   createdAt,
	}
	if estimatedMinutes > 0 {
		est := estimatedMinutes
		order.EstimatedTime = &est
	}
	order.CalculateTotal()

	return order, nil
}

// ValidateItems checks the line items of a would-be order.
func ValidateItems(items []CartItem) error {
	if len(items) == 0 {
		return ValidationError{Field: "items", Message: "order must contain at least 1 item"}
	}

	for i, item := range items {
		if item.ID == "" {
			return ValidationError{Field: fmt.Sprintf("items[%d].id", i), Message: "item id is required"}
		}
		if item.Quantity < 1 {
			return ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "item quantity must be at least 1"}
		}
		if item.Price.IsNegative() {
			return ValidationError{Field: fmt.Sprintf("items[%d].price", i), Message: "item price must not be negative"}
		}
	}
	return nil
}

// CalculateTotal sets TotalAmount to the sum of the line items.
func (o *Order) CalculateTotal() {
	_, total := SumItems(o.Items)
	o.TotalAmount = total
}

// Progress is the derived completion percentage of the order.
func (o *Order) Progress() int {
	return o.Status.Progress()
}

// TransitionTo moves the order to newStatus. In strict mode only the lifecycle
// table is accepted; otherwise any known status is.
func (o *Order) TransitionTo(newStatus Status, strict bool) error {
	if !newStatus.IsValid() {
		return ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", newStatus)}
	}

	if strict && !o.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, newStatus)
	}

	o.Status = newStatus
	return nil
}

func (o *Order) Clone() *Order {
	out := *o
	out.Items = CloneItems(o.Items)
	if o.EstimatedTime != nil {
		est := *o.EstimatedTime
		out.EstimatedTime = &est
	}
	return &out
}
