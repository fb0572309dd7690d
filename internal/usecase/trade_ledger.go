package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

const correlationTokenLength = 32

type TradeLedger interface {
	Create(ctx context.Context, userID string, amount decimal.Decimal, invoiceRef, gatewayName string) (*domain.Trade, error)
	FindByToken(ctx context.Context, token string) (*domain.Trade, error)
	TransitionToPaid(ctx context.Context, token string) (bool, error)
	TransitionToFailed(ctx context.Context, token string) (bool, error)
}

type DefaultTradeLedger struct {
	TradeRepo     domain.TradeRepository
	generateToken func() string
}

func NewDefaultTradeLedger(tradeRepo domain.TradeRepository) (*DefaultTradeLedger, error) {
	idGenerator, err := nanoid.Standard(correlationTokenLength)
	if err != nil {
		return nil, fmt.Errorf("init token generator: %w", err)
	}

	return &DefaultTradeLedger{
		TradeRepo:     tradeRepo,
		generateToken: idGenerator,
	}, nil
}

// Create persists a pending trade under a fresh correlation token. A token
// collision comes back as domain.ErrTokenCollision and is not retried.
func (l *DefaultTradeLedger) Create(ctx context.Context, userID string, amount decimal.Decimal, invoiceRef, gatewayName string) (*domain.Trade, error) {
	now := time.Now().UTC()
	trade := &domain.Trade{
		ID:               uuid.New().String(),
		UserID:           userID,
		Amount:           amount,
		InvoiceRef:       invoiceRef,
		CorrelationToken: l.generateToken(),
		GatewayName:      gatewayName,
		Status:           domain.TradePending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := l.TradeRepo.CreateTrade(ctx, trade); err != nil {
		return nil, fmt.Errorf("create trade: %w", err)
	}

	return trade, nil
}

func (l *DefaultTradeLedger) FindByToken(ctx context.Context, token string) (*domain.Trade, error) {
	return l.TradeRepo.GetTradeByToken(ctx, token)
}

// TransitionToPaid reports false, without error, when the trade is unknown
// or already terminal.
func (l *DefaultTradeLedger) TransitionToPaid(ctx context.Context, token string) (bool, error) {
	return l.TradeRepo.TransitionStatus(ctx, token, domain.TradePending, domain.TradePaid)
}

func (l *DefaultTradeLedger) TransitionToFailed(ctx context.Context, token string) (bool, error) {
	return l.TradeRepo.TransitionStatus(ctx, token, domain.TradePending, domain.TradeFailed)
}
