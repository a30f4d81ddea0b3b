package amqp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = logger.NewWithWriter("test", "error", io.Discard)

func TestHandleOrderPrintsTicket(t *testing.T) {
	var out bytes.Buffer
	h := NewOrderHandler(&out, quiet)

	body, err := json.Marshal(interfaces.OrderMessage{
		OrderID:     "ORD-1",
		TableNumber: "T101",
		Items: []domain.CartItem{
			{MenuItem: domain.MenuItem{ID: "dish-001", Name: "Kung Pao Chicken", Price: decimal.NewFromInt(48)}, Quantity: 2},
			{MenuItem: domain.MenuItem{ID: "dish-004", Name: "Garlic Broccoli", Price: decimal.NewFromInt(32)}, Quantity: 1},
		},
		TotalAmount:   decimal.NewFromInt(128),
		EstimatedTime: 15,
		CreatedAt:     time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, h.HandleOrder(context.Background(), body))

	ticket := out.String()
	assert.Contains(t, ticket, "Table T101 | ORD-1")
	assert.Contains(t, ticket, " 2 x Kung Pao Chicken")
	assert.Contains(t, ticket, " 1 x Garlic Broccoli")
	assert.Contains(t, ticket, "placed 18:30, ready in ~15 min")
}

func TestHandleOrderRejectsBadTickets(t *testing.T) {
	var out bytes.Buffer
	h := NewOrderHandler(&out, quiet)

	assert.Error(t, h.HandleOrder(context.Background(), []byte("{not json")))
	assert.Error(t, h.HandleOrder(context.Background(), []byte(`{"order_id":"ORD-1","items":[]}`)))
	assert.Empty(t, out.String())
}

func TestHandleNotification(t *testing.T) {
	var out bytes.Buffer
	h := NewNotificationHandler(&out, quiet)

	body := []byte(`{"order_id":"ORD-1","table_number":"T7","old_status":"pending","new_status":"preparing","changed_by":"staff"}`)
	require.NoError(t, h.HandleNotification(context.Background(), body))
	assert.Equal(t, "Table T7, order ORD-1: status changed from 'pending' to 'preparing' by staff\n", out.String())

	assert.Error(t, h.HandleNotification(context.Background(), []byte("nope")))
}
