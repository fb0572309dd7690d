package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

type memoryTradeRepo struct {
	mu     sync.Mutex
	trades map[string]*domain.Trade
	err    error
}

func newMemoryTradeRepo() *memoryTradeRepo {
	return &memoryTradeRepo{trades: make(map[string]*domain.Trade)}
}

func (r *memoryTradeRepo) CreateTrade(ctx context.Context, trade *domain.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.trades[trade.CorrelationToken]; ok {
		return domain.ErrTokenCollision
	}
	copied := *trade
	r.trades[trade.CorrelationToken] = &copied
	return nil
}

func (r *memoryTradeRepo) GetTradeByToken(ctx context.Context, token string) (*domain.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trade, ok := r.trades[token]
	if !ok {
		return nil, domain.ErrTradeNotFound
	}
	copied := *trade
	return &copied, nil
}

func (r *memoryTradeRepo) TransitionStatus(ctx context.Context, token string, from, to domain.TradeStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	trade, ok := r.trades[token]
	if !ok || trade.Status != from {
		return false, nil
	}
	trade.Status = to
	return true, nil
}

func (r *memoryTradeRepo) Ping(ctx context.Context) error {
	return r.err
}

func (r *memoryTradeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trades)
}

func (r *memoryTradeRepo) only() *domain.Trade {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, trade := range r.trades {
		copied := *trade
		return &copied
	}
	return nil
}

type fixedRateProvider struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (p *fixedRateProvider) GetName() string { return "fixed" }

func (p *fixedRateProvider) GetRate(ctx context.Context, source, target string) (decimal.Decimal, error) {
	p.calls++
	if p.err != nil {
		return decimal.Zero, p.err
	}
	return p.rate, nil
}

// recordingCheckout captures every request together with the trade state at
// the moment the remote call would have been made.
type recordingCheckout struct {
	repo     *memoryTradeRepo
	requests []*domain.CheckoutRequest
	seen     []*domain.Trade
	err      error
}

func (c *recordingCheckout) Create(ctx context.Context, req *domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	c.requests = append(c.requests, req)
	if c.repo != nil {
		if trade, err := c.repo.GetTradeByToken(ctx, req.Trade.CorrelationToken); err == nil {
			c.seen = append(c.seen, trade)
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return &domain.CheckoutSession{
		ID:          "cs_test_1",
		RedirectURL: "https://checkout.stripe.com/c/pay/cs_test_1",
	}, nil
}

type memoryEventRepo struct {
	mu     sync.Mutex
	events map[string]*domain.WebhookEventLog
	err    error
}

func newMemoryEventRepo() *memoryEventRepo {
	return &memoryEventRepo{events: make(map[string]*domain.WebhookEventLog)}
}

func (r *memoryEventRepo) SaveEvent(ctx context.Context, event *domain.WebhookEventLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.events[event.EventID]; !ok {
		r.events[event.EventID] = event
	}
	return nil
}

type channelPublisher struct {
	msgs chan domain.Message
}

func newChannelPublisher() *channelPublisher {
	return &channelPublisher{msgs: make(chan domain.Message, 16)}
}

func (p *channelPublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	for _, m := range msgs {
		p.msgs <- m
	}
	return nil
}

func (p *channelPublisher) Close() error { return nil }

var errStorage = errors.New("storage down")
