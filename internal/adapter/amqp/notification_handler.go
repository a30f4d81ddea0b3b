package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

type NotificationHandler struct {
	out    io.Writer
	logger logger.Logger
}

func NewNotificationHandler(out io.Writer, logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		out:    out,
		logger: logger,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.StatusUpdateMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse notification", "", nil, err)
		return err
	}

	h.logger.Debug("notification_received", fmt.Sprintf("Received status update for order %s", msg.OrderID),
		msg.OrderID, map[string]interface{}{
			"table_number": msg.TableNumber,
			"new_status":   msg.NewStatus,
		})

	_, err := fmt.Fprintf(h.out, "Table %s, order %s: status changed from '%s' to '%s' by %s\n",
		msg.TableNumber, msg.OrderID, msg.OldStatus, msg.NewStatus, msg.ChangedBy)
	return err
}
