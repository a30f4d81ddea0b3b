package kv

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/adapter/memory"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuRepositoryAbsentAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewMenuRepository(store, logger.NewWithWriter("test", "error", &bytes.Buffer{}))

	items, found, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, items)

	want := []domain.MenuItem{{ID: "dish-001", Name: "宫保鸡丁", Price: decimal.NewFromInt(48), Category: "热菜", Available: true}}
	require.NoError(t, repo.Save(ctx, want))

	items, found, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, items, 1)
	assert.Equal(t, "dish-001", items[0].ID)
	assert.True(t, want[0].Price.Equal(items[0].Price))

	// an emptied catalog is still a written catalog
	require.NoError(t, repo.Save(ctx, nil))
	items, found, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, items)
}

func TestCorruptDocumentIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	var logs bytes.Buffer
	repo := NewOrderRepository(store, logger.NewWithWriter("test", "debug", &logs))

	require.NoError(t, store.Write(ctx, KeyOrders, []byte(`[{"id":`)))

	orders, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, ok, _ := store.Read(ctx, KeyOrders)
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "storage_corrupt")
}

func TestOrderRepositoryPreservesFields(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(memory.NewStore(), logger.NewWithWriter("test", "error", &bytes.Buffer{}))

	est := 12
	created := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	order := &domain.Order{
		ID:          "ORD-1",
		TableNumber: "T101",
		Items: []domain.CartItem{{
			MenuItem: domain.MenuItem{ID: "dish-003", Name: "北京烤鸭", Price: decimal.NewFromInt(168), Category: "招牌菜", Available: true},
			Quantity: 2,
		}},
		TotalAmount:   decimal.NewFromInt(336),
		Status:        domain.StatusPreparing,
		CreatedAt:     created,
		EstimatedTime: &est,
	}
	require.NoError(t, repo.Save(ctx, []*domain.Order{order}))

	orders, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	got := orders[0]
	assert.Equal(t, "T101", got.TableNumber)
	assert.Equal(t, domain.StatusPreparing, got.Status)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.True(t, order.TotalAmount.Equal(got.TotalAmount))
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 12, *got.EstimatedTime)
}

func TestCartRepositoryClear(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewCartRepository(store, logger.NewWithWriter("test", "error", &bytes.Buffer{}))

	require.NoError(t, repo.Save(ctx, []domain.CartItem{{MenuItem: domain.MenuItem{ID: "dish-001"}, Quantity: 1}}))
	require.NoError(t, repo.Clear(ctx))

	_, ok, _ := store.Read(ctx, KeyCart)
	assert.False(t, ok)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewSessionRepository(store)

	table, err := repo.TableNumber(ctx)
	require.NoError(t, err)
	assert.Empty(t, table)

	require.NoError(t, repo.SetTableNumber(ctx, "T101"))
	raw, _, _ := store.Read(ctx, KeyTableNumber)
	assert.Equal(t, "T101", string(raw))

	in, err := repo.StaffLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, in)

	require.NoError(t, repo.SetStaffLoggedIn(ctx, true))
	in, _ = repo.StaffLoggedIn(ctx)
	assert.True(t, in)

	require.NoError(t, repo.SetStaffLoggedIn(ctx, false))
	_, ok, _ := store.Read(ctx, KeyStaffLoggedIn)
	assert.False(t, ok)
}
