package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/logging"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// TradeEventNotifier publishes trade lifecycle events in the background.
// Publication failures are logged and never reach the request.
type TradeEventNotifier struct {
	publisher domain.PublisherPort
	topic     string
}

func NewTradeEventNotifier(publisher domain.PublisherPort, topic string) *TradeEventNotifier {
	return &TradeEventNotifier{publisher: publisher, topic: topic}
}

func (n *TradeEventNotifier) Notify(eventType string, trade *domain.Trade) {
	if n == nil || n.publisher == nil {
		return
	}

	event := domain.NewTradeEvent(eventType, trade)
	value, err := json.Marshal(event)
	if err != nil {
		logging.Error("Failed to marshal trade event", zap.String("type", eventType), zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		msg := domain.Message{Key: []byte(trade.ID), Value: value}
		if err := n.publisher.Publish(ctx, n.topic, msg); err != nil {
			logging.Warn("Failed to publish trade event",
				zap.String("type", eventType),
				zap.String("trade_id", trade.ID),
				zap.Error(err),
			)
		}
	}()
}
