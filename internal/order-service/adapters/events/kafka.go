package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
	"github.com/jcmexdev/orders-microservice/internal/order-service/ports"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher writes events keyed by order id, so all events of one order
// land on the same partition in order.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

func NewKafkaPublisher(ctx context.Context, brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(10*time.Millisecond),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("events: create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("events: reach kafka brokers %v: %w", brokers, err)
	}

	slog.Info("connected to Kafka", "brokers", brokers, "topic", topic)
	return &KafkaPublisher{client: client, topic: topic}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	record, err := kafkaRecord(p.topic, event)
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("events: produce %s: %w", event.Type, err)
	}
	return nil
}

func kafkaRecord(topic string, event domain.Event) (*kgo.Record, error) {
	value, err := event.Encode()
	if err != nil {
		return nil, fmt.Errorf("events: encode %s: %w", event.Type, err)
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "content_type", Value: []byte(contentType)},
		},
		Timestamp: event.OccurredAt,
	}, nil
}

func (p *KafkaPublisher) Close() error {
	p.client.Close()
	return nil
}
