package nats

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/nats-io/nats.go"
)

type NatsPublisher struct {
	nc *nats.Conn
}

func Connect(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("payment-service"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return NewNatsPublisher(nc), nil
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

const keyHeader = "Message-Key"

// Publish sends each message on subject topic. The message key travels as a
// header since core NATS has no partitioning.
func (p *NatsPublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	for _, m := range msgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := nats.NewMsg(topic)
		msg.Data = m.Value
		if len(m.Key) > 0 {
			msg.Header.Set(keyHeader, string(m.Key))
		}
		if err := p.nc.PublishMsg(msg); err != nil {
			return fmt.Errorf("publish %s: %w", topic, err)
		}
	}
	return nil
}

func (p *NatsPublisher) Close() error {
	return p.nc.Drain()
}
