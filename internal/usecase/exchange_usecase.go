package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Currencies settled in whole units. Everything else uses cents.
var zeroDecimalCurrencies = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true, "JPY": true,
	"KMF": true, "KRW": true, "MGA": true, "PYG": true, "RWF": true,
	"UGX": true, "VND": true, "VUV": true, "XAF": true, "XOF": true,
	"XPF": true,
}

type ExchangeUsecase interface {
	// Convert returns amount (in source) expressed in target's smallest unit.
	Convert(ctx context.Context, amount decimal.Decimal, source, target string) (int64, error)
}

type DefaultExchangeUsecase struct {
	provider domain.ExchangeRateProvider
}

func NewDefaultExchangeUsecase(provider domain.ExchangeRateProvider) *DefaultExchangeUsecase {
	return &DefaultExchangeUsecase{provider: provider}
}

func (uc *DefaultExchangeUsecase) Convert(ctx context.Context, amount decimal.Decimal, source, target string) (int64, error) {
	source = strings.ToUpper(source)
	target = strings.ToUpper(target)

	rate := decimal.NewFromInt(1)
	if source != target {
		var err error
		rate, err = uc.provider.GetRate(ctx, source, target)
		if err != nil {
			return 0, fmt.Errorf("%w: %s/%s via %s: %v", domain.ErrRateUnavailable, source, target, uc.provider.GetName(), err)
		}
		if !rate.IsPositive() {
			return 0, fmt.Errorf("%w: non-positive rate %s for %s/%s", domain.ErrRateUnavailable, rate, source, target)
		}
	}

	converted := amount.Mul(rate)
	units := converted.Mul(decimal.NewFromInt(SubdivisionFactor(target))).Truncate(0)

	return units.IntPart(), nil
}

// SubdivisionFactor is the number of smallest settlement units per whole unit.
func SubdivisionFactor(currency string) int64 {
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return 1
	}
	return 100
}
