package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/app/simulate"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

type Delays struct {
	List  time.Duration
	Item  time.Duration
	Write time.Duration
}

// Service owns the menu. Every mutation rewrites the whole catalog.
type Service struct {
	repo   interfaces.MenuRepository
	logger logger.Logger
	delays Delays
	mu     sync.Mutex
}

func NewService(repo interfaces.MenuRepository, logger logger.Logger, delays Delays) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		delays: delays,
	}
}

func (s *Service) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	if err := simulate.Delay(ctx, s.delays.List); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *Service) GetItem(ctx context.Context, id string) (domain.MenuItem, error) {
	if err := simulate.Delay(ctx, s.delays.Item); err != nil {
		return domain.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return domain.MenuItem{}, err
	}

	i := indexOf(items, id)
	if i < 0 {
		return domain.MenuItem{}, fmt.Errorf("menu item %s: %w", id, domain.ErrNotFound)
	}
	return items[i], nil
}

func (s *Service) AddItem(ctx context.Context, fields domain.MenuItemFields) (domain.MenuItem, error) {
	if err := simulate.Delay(ctx, s.delays.Write); err != nil {
		return domain.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return domain.MenuItem{}, err
	}

	item, err := domain.NewMenuItem(nextID(items), fields)
	if err != nil {
		return domain.MenuItem{}, err
	}

	if err := s.repo.Save(ctx, append(items, item)); err != nil {
		s.logger.Error("menu_save_failed", "Failed to save menu", "", nil, err)
		return domain.MenuItem{}, err
	}

	s.logger.Info("menu_item_added", fmt.Sprintf("Menu item %s added", item.ID), "", map[string]interface{}{
		"id":       item.ID,
		"name":     item.Name,
		"category": item.Category,
	})

	return item.Clone(), nil
}

func (s *Service) UpdateItem(ctx context.Context, id string, patch domain.MenuItemPatch) (domain.MenuItem, error) {
	if err := simulate.Delay(ctx, s.delays.Write); err != nil {
		return domain.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return domain.MenuItem{}, err
	}

	i := indexOf(items, id)
	if i < 0 {
		return domain.MenuItem{}, fmt.Errorf("menu item %s: %w", id, domain.ErrNotFound)
	}

	updated := items[i].Apply(patch)
	if err := updated.Validate(); err != nil {
		return domain.MenuItem{}, err
	}
	items[i] = updated

	if err := s.repo.Save(ctx, items); err != nil {
		s.logger.Error("menu_save_failed", "Failed to save menu", "", nil, err)
		return domain.MenuItem{}, err
	}

	s.logger.Debug("menu_item_updated", fmt.Sprintf("Menu item %s updated", id), "", nil)

	return updated.Clone(), nil
}

// DeleteItem is idempotent; deleting an unknown id still rewrites the catalog.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := simulate.Delay(ctx, s.delays.Write); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}

	if err := s.repo.Save(ctx, kept); err != nil {
		s.logger.Error("menu_save_failed", "Failed to save menu", "", nil, err)
		return err
	}

	s.logger.Debug("menu_item_deleted", fmt.Sprintf("Menu item %s deleted", id), "", nil)
	return nil
}

func (s *Service) load(ctx context.Context) ([]domain.MenuItem, error) {
	items, found, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("menu_load_failed", "Failed to load menu", "", nil, err)
		return nil, err
	}
	if !found {
		return DefaultMenu(), nil
	}
	return items, nil
}

func indexOf(items []domain.MenuItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// nextID starts at dish-(count+1) and skips ids that are still in use, which
// happens once items have been deleted.
func nextID(items []domain.MenuItem) string {
	for n := len(items) + 1; ; n++ {
		id := fmt.Sprintf("dish-%03d", n)
		if indexOf(items, id) < 0 {
			return id
		}
	}
}
