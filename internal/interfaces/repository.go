package interfaces

import (
	"context"

	"github.com/YelzhanWeb/tableorder/internal/domain"
)

// MenuRepository loads and saves the whole catalog. found is false when
// nothing has been written yet.
type MenuRepository interface {
	Load(ctx context.Context) (items []domain.MenuItem, found bool, err error)
	Save(ctx context.Context, items []domain.MenuItem) error
}

type OrderRepository interface {
	Load(ctx context.Context) ([]*domain.Order, error)
	Save(ctx context.Context, orders []*domain.Order) error
}

type CartRepository interface {
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
	Clear(ctx context.Context) error
}

type SessionRepository interface {
	TableNumber(ctx context.Context) (string, error)
	SetTableNumber(ctx context.Context, table string) error
	StaffLoggedIn(ctx context.Context) (bool, error)
	SetStaffLoggedIn(ctx context.Context, loggedIn bool) error
}
