package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

// Keys of the persisted state.
const (
	KeyCart          = "cart"
	KeyOrders        = "orders"
	KeyMenuItems     = "menuItems"
	KeyTableNumber   = "tableNumber"
	KeyStaffLoggedIn = "merchantLoggedIn"
)

// collection stores one JSON document under a fixed key. A document that
// fails to parse is logged, dropped, and reported as absent.
type collection[T any] struct {
	store  interfaces.KeyValueStore
	key    string
	logger logger.Logger
}

func (c collection[T]) load(ctx context.Context) (T, bool, error) {
	var zero T

	data, ok, err := c.store.Read(ctx, c.key)
	if err != nil {
		return zero, false, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	if !ok {
		return zero, false, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Error("storage_corrupt", fmt.Sprintf("Discarding corrupt %s", c.key), "", map[string]interface{}{
			"key": c.key,
		}, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err))

		if err := c.store.Delete(ctx, c.key); err != nil {
			return zero, false, fmt.Errorf("failed to discard corrupt %s: %w", c.key, err)
		}
		return zero, false, nil
	}

	return v, true, nil
}

func (c collection[T]) save(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.key, err)
	}
	if err := c.store.Write(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	return nil
}

func (c collection[T]) clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", c.key, err)
	}
	return nil
}
