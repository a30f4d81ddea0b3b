package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/YelzhanWeb/tableorder/internal/interfaces"
	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.MessagePublisher {
	return &publisher{conn: conn}
}

// KitchenRoutingKey routes a ticket by table, e.g. kitchen.T101.
func KitchenRoutingKey(table string) string {
	return "kitchen." + table
}

func (p *publisher) PublishOrder(ctx context.Context, msg interfaces.OrderMessage) error {
	return p.publish(ctx, OrdersExchange, "topic", KitchenRoutingKey(msg.TableNumber), amqp.Persistent, msg)
}

func (p *publisher) PublishStatusUpdate(ctx context.Context, msg interfaces.StatusUpdateMessage) error {
	return p.publish(ctx, NotificationsExchange, "fanout", "", amqp.Transient, msg)
}

func (p *publisher) publish(ctx context.Context, exchange, kind, key string, mode uint8, v interface{}) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, kind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.Publish(ctx, exchange, key, amqp.Publishing{
		DeliveryMode: mode,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", exchange, err)
	}

	return nil
}
