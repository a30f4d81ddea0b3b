package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/YelzhanWeb/tableorder/internal/adapter/kv"
	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/adapter/memory"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	lgr := logger.NewWithWriter("test", "error", io.Discard)
	return NewService(kv.NewMenuRepository(store, lgr), lgr, Delays{}), store
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestListItemsFallsBackToSeed(t *testing.T) {
	svc, store := newTestService(t)

	items, err := svc.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 6)
	assert.Equal(t, "dish-001", items[0].ID)
	assert.Equal(t, "dish-006", items[5].ID)

	// reading does not write the seed
	_, ok, _ := store.Read(context.Background(), kv.KeyMenuItems)
	assert.False(t, ok)
}

func TestAddItemScenario(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	item, err := svc.AddItem(ctx, domain.MenuItemFields{Name: "汤", Price: price(20), Category: "汤品"})
	require.NoError(t, err)
	assert.Equal(t, "dish-007", item.ID)
	assert.True(t, item.Available)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 7)
	assert.Equal(t, "dish-007", items[6].ID)

	_, ok, _ := store.Read(ctx, kv.KeyMenuItems)
	assert.True(t, ok)
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		fields domain.MenuItemFields
	}{
		{"no name", domain.MenuItemFields{Price: price(20), Category: "汤品"}},
		{"no price", domain.MenuItemFields{Name: "汤", Category: "汤品"}},
		{"negative price", domain.MenuItemFields{Name: "汤", Price: price(-1), Category: "汤品"}},
		{"no category", domain.MenuItemFields{Name: "汤", Price: price(20)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, tt.fields)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 6)
}

func TestAddItemAfterDeleteKeepsIDsUnique(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.DeleteItem(ctx, "dish-003"))

	item, err := svc.AddItem(ctx, domain.MenuItemFields{Name: "汤", Price: price(20), Category: "汤品"})
	require.NoError(t, err)
	assert.Equal(t, "dish-007", item.ID)

	items, _ := svc.ListItems(ctx)
	seen := map[string]bool{}
	for _, it := range items {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestGetItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	item, err := svc.GetItem(ctx, "dish-003")
	require.NoError(t, err)
	assert.Equal(t, "北京烤鸭", item.Name)

	_, err = svc.GetItem(ctx, "dish-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	off := false
	updated, err := svc.UpdateItem(ctx, "dish-001", domain.MenuItemPatch{Price: price(52), Available: &off})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(52).Equal(updated.Price))
	assert.False(t, updated.Available)
	assert.Equal(t, "宫保鸡丁", updated.Name)

	got, err := svc.GetItem(ctx, "dish-001")
	require.NoError(t, err)
	assert.False(t, got.Available)

	// unavailable items are still listed
	items, _ := svc.ListItems(ctx)
	assert.Len(t, items, 6)

	_, err = svc.UpdateItem(ctx, "dish-404", domain.MenuItemPatch{Price: price(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	blank := " "
	_, err = svc.UpdateItem(ctx, "dish-001", domain.MenuItemPatch{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, _ = svc.GetItem(ctx, "dish-001")
	assert.Equal(t, "宫保鸡丁", got.Name)
}

func TestDeleteItemIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.DeleteItem(ctx, "dish-002"))
	require.NoError(t, svc.DeleteItem(ctx, "dish-002"))
	require.NoError(t, svc.DeleteItem(ctx, "missing"))

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 5)

	_, err = svc.GetItem(ctx, "dish-002")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
