package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
	"github.com/shopspring/decimal"
)

// Service is the single cart of the active session. The in-memory state is
// only replaced after the new state has been persisted.
type Service struct {
	repo   interfaces.CartRepository
	menu   interfaces.MenuReader
	logger logger.Logger

	mu          sync.Mutex
	items       []domain.CartItem
	index       map[string]int
	totalItems  int
	totalAmount decimal.Decimal
}

// NewService rehydrates the cart from the repository in one pass.
func NewService(ctx context.Context, repo interfaces.CartRepository, menu interfaces.MenuReader, logger logger.Logger) (*Service, error) {
	s := &Service{
		repo:   repo,
		menu:   menu,
		logger: logger,
	}

	stored, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	s.set(bulkLoad(stored))

	if len(s.items) > 0 {
		logger.Debug("cart_restored", "Cart restored from storage", "", map[string]interface{}{
			"lines":       len(s.items),
			"total_items": s.totalItems,
		})
	}

	return s, nil
}

// bulkLoad builds the cart directly from stored entries. Duplicate ids are
// merged, keeping the first snapshot, and entries without a usable quantity
// are dropped.
func bulkLoad(stored []domain.CartItem) []domain.CartItem {
	items := make([]domain.CartItem, 0, len(stored))
	seen := make(map[string]int, len(stored))

	for _, entry := range stored {
		if entry.ID == "" || entry.Quantity < 1 {
			continue
		}
		if i, ok := seen[entry.ID]; ok {
			items[i].Quantity += entry.Quantity
			continue
		}
		seen[entry.ID] = len(items)
		items = append(items, entry.Clone())
	}
	return items
}

func (s *Service) AddToCart(ctx context.Context, item domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.CloneItems(s.items)
	if i, ok := s.index[item.ID]; ok {
		next[i].Quantity++
	} else {
		next = append(next, domain.CartItem{MenuItem: item.Clone(), Quantity: 1})
	}

	return s.commit(ctx, next)
}

// AddByID snapshots the current catalog entry into the cart.
func (s *Service) AddByID(ctx context.Context, id string) error {
	item, err := s.menu.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if !item.Available {
		return domain.ValidationError{Field: "id", Message: fmt.Sprintf("menu item %s is not available", id)}
	}
	return s.AddToCart(ctx, item)
}

// UpdateQuantity sets an entry's quantity. Quantities below 1 and unknown ids
// leave the cart untouched; removal is RemoveFromCart's job.
func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil
	}

	next := domain.CloneItems(s.items)
	next[i].Quantity = quantity
	return s.commit(ctx, next)
}

func (s *Service) RemoveFromCart(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil
	}

	next := make([]domain.CartItem, 0, len(s.items)-1)
	next = append(next, domain.CloneItems(s.items[:i])...)
	next = append(next, domain.CloneItems(s.items[i+1:])...)
	return s.commit(ctx, next)
}

func (s *Service) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("cart_clear_failed", "Failed to clear cart", "", nil, err)
		return err
	}
	s.set(nil)
	return nil
}

func (s *Service) View() interfaces.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return interfaces.CartView{
		Items:       domain.CloneItems(s.items),
		TotalItems:  s.totalItems,
		TotalAmount: s.totalAmount,
	}
}

func (s *Service) Snapshot() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.CloneItems(s.items)
}

func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

func (s *Service) TotalAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalAmount
}

func (s *Service) commit(ctx context.Context, next []domain.CartItem) error {
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("cart_save_failed", "Failed to save cart", "", nil, err)
		return err
	}
	s.set(next)
	return nil
}

func (s *Service) set(items []domain.CartItem) {
	s.items = items
	s.index = make(map[string]int, len(items))
	for i, item := range items {
		s.index[item.ID] = i
	}
	s.totalItems, s.totalAmount = domain.SumItems(items)
}
