package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
	"github.com/jcmexdev/orders-microservice/internal/order-service/ports"
)

const (
	natsConnectAttempts = 3
	natsRetryWait       = 2 * time.Second
	natsFlushTimeout    = 2 * time.Second
	natsMinFlushTimeout = 10 * time.Millisecond
)

var _ ports.EventPublisher = (*NatsPublisher)(nil)

// NatsPublisher publishes each event on the subject named after its type.
type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(ctx context.Context, url string) (*NatsPublisher, error) {
	var err error
	for i := 0; i < natsConnectAttempts; i++ {
		var nc *nats.Conn
		nc, err = nats.Connect(url,
			nats.Name("order-service"),
			nats.MaxReconnects(5),
			nats.ReconnectWait(natsRetryWait),
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				slog.Warn("NATS disconnected", "error", err)
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
			}),
		)
		if err == nil {
			slog.Info("connected to NATS", "url", url)
			return &NatsPublisher{nc: nc}, nil
		}

		slog.Warn("failed to connect to NATS", "attempt", i+1, "error", err)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("events: connect to NATS: %w", ctx.Err())
		case <-time.After(natsRetryWait):
		}
	}
	return nil, fmt.Errorf("events: connect to NATS after %d attempts: %w", natsConnectAttempts, err)
}

func (p *NatsPublisher) Publish(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("events: publish %s: %w", event.Type, err)
	}

	msg, err := natsMessage(event)
	if err != nil {
		return err
	}
	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("events: publish %s: %w", event.Type, err)
	}
	if err := p.nc.FlushTimeout(flushTimeout(ctx)); err != nil {
		return fmt.Errorf("events: flush %s: %w", event.Type, err)
	}
	return nil
}

func natsMessage(event domain.Event) (*nats.Msg, error) {
	data, err := event.Encode()
	if err != nil {
		return nil, fmt.Errorf("events: encode %s: %w", event.Type, err)
	}

	msg := nats.NewMsg(string(event.Type))
	msg.Data = data
	msg.Header.Set("Content-Type", contentType)
	msg.Header.Set("Order-Id", event.OrderID)
	return msg, nil
}

// flushTimeout follows the context deadline, never dropping below
// natsMinFlushTimeout since FlushTimeout rejects non-positive values.
func flushTimeout(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return natsFlushTimeout
	}
	return max(time.Until(deadline), natsMinFlushTimeout)
}

func (p *NatsPublisher) Close() error {
	if p.nc != nil && !p.nc.IsClosed() {
		return p.nc.Drain()
	}
	return nil
}
