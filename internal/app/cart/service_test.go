package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/YelzhanWeb/tableorder/internal/adapter/kv"
	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/adapter/memory"
	"github.com/YelzhanWeb/tableorder/internal/app/catalog"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = logger.NewWithWriter("test", "error", io.Discard)

type fixture struct {
	store   *memory.Store
	catalog *catalog.Service
	cart    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	cat := catalog.NewService(kv.NewMenuRepository(store, quiet), quiet, catalog.Delays{})
	c, err := NewService(context.Background(), kv.NewCartRepository(store, quiet), cat, quiet)
	require.NoError(t, err)
	return &fixture{store: store, catalog: cat, cart: c}
}

func dish(id string, price int64) domain.MenuItem {
	return domain.MenuItem{ID: id, Name: id, Price: decimal.NewFromInt(price), Category: "热菜", Available: true}
}

func TestRepeatedAddsAccumulate(t *testing.T) {
	for _, n := range []int{1, 2, 5, 13} {
		f := newFixture(t)
		item := dish("dish-001", 48)

		for i := 0; i < n; i++ {
			require.NoError(t, f.cart.AddToCart(context.Background(), item))
		}

		view := f.cart.View()
		require.Len(t, view.Items, 1)
		assert.Equal(t, n, view.TotalItems)
		assert.True(t, decimal.NewFromInt(int64(48*n)).Equal(view.TotalAmount), "n=%d total=%s", n, view.TotalAmount)
	}
}

func TestUpdateQuantityFloor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.cart.AddToCart(ctx, dish("dish-001", 48)))
	require.NoError(t, f.cart.AddToCart(ctx, dish("dish-001", 48)))

	before := f.cart.View()
	for _, q := range []int{0, -1} {
		require.NoError(t, f.cart.UpdateQuantity(ctx, "dish-001", q))
		assert.Equal(t, before, f.cart.View())
	}

	require.NoError(t, f.cart.UpdateQuantity(ctx, "dish-001", 5))
	assert.Equal(t, 5, f.cart.TotalItems())
	assert.True(t, decimal.NewFromInt(240).Equal(f.cart.TotalAmount()))

	require.NoError(t, f.cart.UpdateQuantity(ctx, "dish-404", 3))
	assert.Equal(t, 5, f.cart.TotalItems())
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.cart.AddToCart(ctx, dish("dish-001", 48)))
	require.NoError(t, f.cart.AddToCart(ctx, dish("dish-002", 42)))

	before := f.cart.View()
	require.NoError(t, f.cart.RemoveFromCart(ctx, "dish-404"))
	assert.Equal(t, before, f.cart.View())

	require.NoError(t, f.cart.RemoveFromCart(ctx, "dish-001"))
	view := f.cart.View()
	require.Len(t, view.Items, 1)
	assert.Equal(t, "dish-002", view.Items[0].ID)
	assert.Equal(t, 1, view.TotalItems)

	// re-adding after removal starts a fresh line
	require.NoError(t, f.cart.AddToCart(ctx, dish("dish-001", 48)))
	assert.Equal(t, "dish-001", f.cart.View().Items[1].ID)
}

func TestClearCartErasesPersistedSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.cart.AddToCart(ctx, dish("dish-001", 48)))

	_, ok, _ := f.store.Read(ctx, kv.KeyCart)
	require.True(t, ok)

	require.NoError(t, f.cart.ClearCart(ctx))
	assert.Empty(t, f.cart.Snapshot())
	assert.Equal(t, 0, f.cart.TotalItems())
	assert.True(t, f.cart.TotalAmount().IsZero())

	_, ok, _ = f.store.Read(ctx, kv.KeyCart)
	assert.False(t, ok)
}

func TestRoundTripThroughStorage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.cart.AddToCart(ctx, dish("dish-001", 48)))
	require.NoError(t, f.cart.AddToCart(ctx, dish("dish-003", 168)))
	require.NoError(t, f.cart.AddToCart(ctx, dish("dish-001", 48)))
	require.NoError(t, f.cart.UpdateQuantity(ctx, "dish-003", 3))

	reloaded, err := NewService(ctx, kv.NewCartRepository(f.store, quiet), f.catalog, quiet)
	require.NoError(t, err)

	want, got := f.cart.View(), reloaded.View()
	require.Len(t, got.Items, len(want.Items))
	for i := range want.Items {
		assert.Equal(t, want.Items[i].ID, got.Items[i].ID)
		assert.Equal(t, want.Items[i].Quantity, got.Items[i].Quantity)
	}
	assert.Equal(t, want.TotalItems, got.TotalItems)
	assert.True(t, want.TotalAmount.Equal(got.TotalAmount))
}

func TestBulkLoadMergesAndDropsBadEntries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Write(ctx, kv.KeyCart, []byte(`[
		{"id":"dish-001","name":"a","price":48,"category":"热菜","available":true,"quantity":2},
		{"id":"dish-002","name":"b","price":42,"category":"热菜","available":true,"quantity":0},
		{"id":"dish-001","name":"a","price":48,"category":"热菜","available":true,"quantity":1}
	]`)))

	c, err := NewService(ctx, kv.NewCartRepository(store, quiet), nil, quiet)
	require.NoError(t, err)

	view := c.View()
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.TotalItems)
	assert.True(t, decimal.NewFromInt(144).Equal(view.TotalAmount))
}

func TestCorruptCartStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Write(ctx, kv.KeyCart, []byte(`not json`)))

	c, err := NewService(ctx, kv.NewCartRepository(store, quiet), nil, quiet)
	require.NoError(t, err)
	assert.Empty(t, c.Snapshot())

	_, ok, _ := store.Read(ctx, kv.KeyCart)
	assert.False(t, ok)
}

func TestPriceIsFrozenWhenAdded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.cart.AddByID(ctx, "dish-001"))

	newPrice := decimal.NewFromInt(99)
	_, err := f.catalog.UpdateItem(ctx, "dish-001", domain.MenuItemPatch{Price: &newPrice})
	require.NoError(t, err)

	require.NoError(t, f.cart.AddByID(ctx, "dish-001"))

	view := f.cart.View()
	assert.Equal(t, 2, view.TotalItems)
	assert.True(t, decimal.NewFromInt(96).Equal(view.TotalAmount))
}

func TestAddByIDRejectsUnknownAndUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.cart.AddByID(ctx, "dish-404"), domain.ErrNotFound)

	off := false
	_, err := f.catalog.UpdateItem(ctx, "dish-002", domain.MenuItemPatch{Available: &off})
	require.NoError(t, err)
	assert.ErrorIs(t, f.cart.AddByID(ctx, "dish-002"), domain.ErrValidation)

	assert.Empty(t, f.cart.Snapshot())
}

type failingRepo struct{ err error }

func (r failingRepo) Load(context.Context) ([]domain.CartItem, error) { return nil, nil }
func (r failingRepo) Save(context.Context, []domain.CartItem) error   { return r.err }
func (r failingRepo) Clear(context.Context) error                     { return r.err }

func TestFailedWriteLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	c, err := NewService(ctx, failingRepo{err: boom}, nil, quiet)
	require.NoError(t, err)

	assert.ErrorIs(t, c.AddToCart(ctx, dish("dish-001", 48)), boom)
	assert.Empty(t, c.Snapshot())
	assert.Equal(t, 0, c.TotalItems())
}
