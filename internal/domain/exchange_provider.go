package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ExchangeRateProvider returns how many units of target one unit of source buys.
type ExchangeRateProvider interface {
	GetRate(ctx context.Context, source, target string) (decimal.Decimal, error)
	GetName() string
}
