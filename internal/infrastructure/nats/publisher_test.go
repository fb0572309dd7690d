package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

func TestConnectFailsWithoutServer(t *testing.T) {
	if _, err := Connect("nats://127.0.0.1:1"); err == nil {
		t.Error("expected connection error")
	}
}

func TestPublishStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// conn is never touched once the context is done
	p := NewNatsPublisher(nil)
	err := p.Publish(ctx, "trade-events", domain.Message{Key: []byte("k"), Value: []byte("v")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
