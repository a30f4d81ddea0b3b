package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

// OrderHandler is the kitchen display: it prints each paid order as a ticket.
type OrderHandler struct {
	out    io.Writer
	logger logger.Logger
}

func NewOrderHandler(out io.Writer, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		out:    out,
		logger: logger,
	}
}

// HandleOrder rejects malformed tickets so the consumer dead-letters them.
func (h *OrderHandler) HandleOrder(ctx context.Context, body []byte) error {
	var msg interfaces.OrderMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse order message", "", nil, err)
		return err
	}
	if msg.OrderID == "" || len(msg.Items) == 0 {
		err := errors.New("ticket without order id or items")
		h.logger.Error("ticket_invalid", "Rejected kitchen ticket", msg.OrderID, nil, err)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "==== Table %s | %s ====\n", msg.TableNumber, msg.OrderID)
	for _, item := range msg.Items {
		fmt.Fprintf(&b, "  %2d x %s\n", item.Quantity, item.Name)
	}
	fmt.Fprintf(&b, "  placed %s, ready in ~%d min\n", msg.CreatedAt.Format("15:04"), msg.EstimatedTime)

	if _, err := io.WriteString(h.out, b.String()); err != nil {
		return err
	}

	h.logger.Debug("ticket_printed", "Kitchen ticket printed", msg.OrderID, map[string]interface{}{
		"table_number": msg.TableNumber,
		"lines":        len(msg.Items),
	})
	return nil
}
