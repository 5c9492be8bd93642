package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
	"github.com/jcmexdev/orders-microservice/internal/order-service/ports"
)

var _ ports.EventPublisher = (*RabbitPublisher)(nil)

// RabbitPublisher publishes persistent messages to a durable topic exchange,
// routed by event type.
type RabbitPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu      sync.Mutex
	channel *amqp.Channel
}

func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare exchange %q: %w", exchange, err)
	}

	slog.Info("connected to RabbitMQ", "exchange", exchange)
	return &RabbitPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := rabbitMessage(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Publish(p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("events: publish %s: %w", event.Type, err)
	}
	return nil
}

func rabbitMessage(event domain.Event) (amqp.Publishing, error) {
	body, err := event.Encode()
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("events: encode %s: %w", event.Type, err)
	}
	return amqp.Publishing{
		ContentType:  contentType,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Headers: amqp.Table{
			"order_id":   event.OrderID,
			"event_type": string(event.Type),
		},
	}, nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
