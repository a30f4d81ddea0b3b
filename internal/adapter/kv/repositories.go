package kv

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

type menuRepository struct {
	items collection[[]domain.MenuItem]
}

func NewMenuRepository(store interfaces.KeyValueStore, lgr logger.Logger) interfaces.MenuRepository {
	return &menuRepository{items: collection[[]domain.MenuItem]{store: store, key: KeyMenuItems, logger: lgr}}
}

func (r *menuRepository) Load(ctx context.Context) ([]domain.MenuItem, bool, error) {
	return r.items.load(ctx)
}

func (r *menuRepository) Save(ctx context.Context, items []domain.MenuItem) error {
	if items == nil {
		items = []domain.MenuItem{}
	}
	return r.items.save(ctx, items)
}

type orderRepository struct {
	orders collection[[]*domain.Order]
}

func NewOrderRepository(store interfaces.KeyValueStore, lgr logger.Logger) interfaces.OrderRepository {
	return &orderRepository{orders: collection[[]*domain.Order]{store: store, key: KeyOrders, logger: lgr}}
}

func (r *orderRepository) Load(ctx context.Context) ([]*domain.Order, error) {
	orders, _, err := r.orders.load(ctx)
	return orders, err
}

func (r *orderRepository) Save(ctx context.Context, orders []*domain.Order) error {
	if orders == nil {
		orders = []*domain.Order{}
	}
	return r.orders.save(ctx, orders)
}

type cartRepository struct {
	items collection[[]domain.CartItem]
}

func NewCartRepository(store interfaces.KeyValueStore, lgr logger.Logger) interfaces.CartRepository {
	return &cartRepository{items: collection[[]domain.CartItem]{store: store, key: KeyCart, logger: lgr}}
}

func (r *cartRepository) Load(ctx context.Context) ([]domain.CartItem, error) {
	items, _, err := r.items.load(ctx)
	return items, err
}

func (r *cartRepository) Save(ctx context.Context, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	return r.items.save(ctx, items)
}

func (r *cartRepository) Clear(ctx context.Context) error {
	return r.items.clear(ctx)
}

// sessionRepository stores plain strings, not JSON.
type sessionRepository struct {
	store interfaces.KeyValueStore
}

func NewSessionRepository(store interfaces.KeyValueStore) interfaces.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) TableNumber(ctx context.Context) (string, error) {
	v, ok, err := r.store.Read(ctx, KeyTableNumber)
	if err != nil {
		return "", fmt.Errorf("failed to read table number: %w", err)
	}
	if !ok {
		return "", nil
	}
	return string(v), nil
}

func (r *sessionRepository) SetTableNumber(ctx context.Context, table string) error {
	if err := r.store.Write(ctx, KeyTableNumber, []byte(table)); err != nil {
		return fmt.Errorf("failed to write table number: %w", err)
	}
	return nil
}

func (r *sessionRepository) StaffLoggedIn(ctx context.Context) (bool, error) {
	v, ok, err := r.store.Read(ctx, KeyStaffLoggedIn)
	if err != nil {
		return false, fmt.Errorf("failed to read staff session: %w", err)
	}
	return ok && string(v) == "true", nil
}

func (r *sessionRepository) SetStaffLoggedIn(ctx context.Context, loggedIn bool) error {
	var err error
	if loggedIn {
		err = r.store.Write(ctx, KeyStaffLoggedIn, []byte("true"))
	} else {
		err = r.store.Delete(ctx, KeyStaffLoggedIn)
	}
	if err != nil {
		return fmt.Errorf("failed to update staff session: %w", err)
	}
	return nil
}
