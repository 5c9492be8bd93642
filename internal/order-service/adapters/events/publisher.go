// Package events publishes order lifecycle events to the configured broker.
package events

import (
	"context"
	"fmt"

	"github.com/jcmexdev/orders-microservice/internal/config"
	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
	"github.com/jcmexdev/orders-microservice/internal/order-service/ports"
)

const contentType = "application/json"

// New connects the publisher selected by cfg.Broker.
func New(ctx context.Context, cfg config.EventsConfig) (ports.EventPublisher, error) {
	switch cfg.Broker {
	case config.BrokerNone, "":
		return NoopPublisher{}, nil
	case config.BrokerNATS:
		return NewNatsPublisher(ctx, cfg.NATSURL)
	case config.BrokerRabbitMQ:
		return NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	case config.BrokerKafka:
		return NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
	default:
		return nil, fmt.Errorf("events: unknown broker %q", cfg.Broker)
	}
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

var _ ports.EventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, domain.Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
