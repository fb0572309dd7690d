package models

import (
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TradeModel struct {
	ID               string             `gorm:"primaryKey;type:uuid"`
	UserID           string             `gorm:"not null;index:idx_trades_user"`
	Amount           decimal.Decimal    `gorm:"type:numeric(20,2);not null"`
	InvoiceRef       string             `gorm:"not null"`
	CorrelationToken string             `gorm:"not null;uniqueIndex:idx_trades_correlation_token"`
	GatewayName      string             `gorm:"not null"`
	Status           domain.TradeStatus `gorm:"not null;index:idx_trades_status"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PaidAt           *time.Time
}

func (TradeModel) TableName() string {
	return "trades"
}
