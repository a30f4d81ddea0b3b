package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/shopspring/decimal"
)

type CatalogService interface {
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id string) (domain.MenuItem, error)
	AddItem(ctx context.Context, fields domain.MenuItemFields) (domain.MenuItem, error)
	UpdateItem(ctx context.Context, id string, patch domain.MenuItemPatch) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, id string) error
}

// CartService is local and synchronous: no artificial latency, only the
// persistence write after each mutation.
type CartService interface {
	AddToCart(ctx context.Context, item domain.MenuItem) error
	AddByID(ctx context.Context, id string) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	RemoveFromCart(ctx context.Context, id string) error
	ClearCart(ctx context.Context) error
	View() CartView
	Snapshot() []domain.CartItem
}

type MenuReader interface {
	GetItem(ctx context.Context, id string) (domain.MenuItem, error)
}

type CartView struct {
	Items       []domain.CartItem `json:"items"`
	TotalItems  int               `json:"totalItems"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, tableNumber string, items []domain.CartItem) (*Placement, error)
	ConfirmPayment(ctx context.Context, orderID string) (*domain.Order, error)
	CancelUnpaid(ctx context.Context, orderID string) (*domain.Order, error)
	ExpireUnpaid(ctx context.Context, olderThan time.Duration) (int, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, r *domain.DateRange) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error)
	Location() *time.Location
}

// Placement is what the customer learns right after submitting.
type Placement struct {
	OrderID       string `json:"orderId"`
	EstimatedTime int    `json:"estimatedTime"`
}

type PaymentService interface {
	Authorize(ctx context.Context, orderID string, amount decimal.Decimal) (*Authorization, error)
}

type Authorization struct {
	TransactionID string `json:"transactionId,omitempty"`
	Success       bool   `json:"success"`
}

type RevenueService interface {
	GetRevenue(ctx context.Context, start, end string) ([]domain.RevenueDatum, error)
}

type CheckoutService interface {
	Submit(ctx context.Context) (*Receipt, error)
	RetryPayment(ctx context.Context, orderID string) (*Receipt, error)
}

type Receipt struct {
	OrderID       string          `json:"orderId"`
	EstimatedTime int             `json:"estimatedTime"`
	TransactionID string          `json:"transactionId,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        domain.Status   `json:"status"`
}

type TrackingService interface {
	GetOrderStatus(ctx context.Context, orderID string) (*OrderStatusView, error)
}

type OrderStatusView struct {
	OrderID       string        `json:"orderId"`
	Status        domain.Status `json:"status"`
	Progress      int           `json:"progress"`
	EstimatedTime *int          `json:"estimatedTime,omitempty"`
}

type SessionService interface {
	ValidateTable(ctx context.Context, code string) TableCheck
	SetTable(ctx context.Context, code string) error
	Table(ctx context.Context) (string, error)
	Login(ctx context.Context, password string) error
	Logout(ctx context.Context) error
	LoggedIn(ctx context.Context) (bool, error)
}

type TableCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
