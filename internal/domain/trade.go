package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeStatus string

const (
	TradePending TradeStatus = "pending"
	TradePaid    TradeStatus = "paid"
	TradeFailed  TradeStatus = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s TradeStatus) Terminal() bool {
	return s == TradePaid || s == TradeFailed
}

// Trade is one payment attempt against an invoice. CorrelationToken is the
// only key shared with the payment processor.
type Trade struct {
	ID               string
	UserID           string
	Amount           decimal.Decimal
	InvoiceRef       string
	CorrelationToken string
	GatewayName      string
	Status           TradeStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PaidAt           *time.Time
}

// Trade events published on the message bus
const (
	EventTradeCreated = "trade.created"
	EventTradePaid    = "trade.paid"
)

type TradeEvent struct {
	Type             string      `json:"type"`
	TradeID          string      `json:"trade_id"`
	UserID           string      `json:"user_id"`
	InvoiceRef       string      `json:"invoice_ref"`
	CorrelationToken string      `json:"trade_no"`
	Gateway          string      `json:"gateway"`
	Amount           string      `json:"amount"`
	Status           TradeStatus `json:"status"`
	OccurredAt       time.Time   `json:"occurred_at"`
}

func NewTradeEvent(eventType string, trade *Trade) TradeEvent {
	return TradeEvent{
		Type:             eventType,
		TradeID:          trade.ID,
		UserID:           trade.UserID,
		InvoiceRef:       trade.InvoiceRef,
		CorrelationToken: trade.CorrelationToken,
		Gateway:          trade.GatewayName,
		Amount:           trade.Amount.StringFixed(2),
		Status:           trade.Status,
		OccurredAt:       time.Now().UTC(),
	}
}
