package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-payment-service/internal/logging"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/LavaJover/shvark-payment-service/internal/usecase")

type PurchaseConfig struct {
	// Gateway is the registry key, TradeGatewayName is what gets stored on the trade.
	Gateway            string
	TradeGatewayName   string
	MinRecharge        decimal.Decimal
	MaxRecharge        decimal.Decimal
	DisplayCurrency    string
	SettlementCurrency string
	BaseURL            string
	ExternalTimeout    time.Duration
}

type PurchaseUsecase interface {
	Purchase(ctx context.Context, req *domain.PurchaseRequest) (*domain.PurchaseResult, error)
}

type DefaultPurchaseUsecase struct {
	Ledger   TradeLedger
	Exchange ExchangeUsecase
	Checkout domain.CheckoutSessionBuilder
	Events   *TradeEventNotifier
	Metrics  *metrics.TradeMetrics
	cfg      PurchaseConfig
}

func NewDefaultPurchaseUsecase(
	ledger TradeLedger,
	exchange ExchangeUsecase,
	checkout domain.CheckoutSessionBuilder,
	events *TradeEventNotifier,
	tradeMetrics *metrics.TradeMetrics,
	cfg PurchaseConfig) *DefaultPurchaseUsecase {

	if cfg.ExternalTimeout <= 0 {
		cfg.ExternalTimeout = 10 * time.Second
	}

	return &DefaultPurchaseUsecase{
		Ledger:   ledger,
		Exchange: exchange,
		Checkout: checkout,
		Events:   events,
		Metrics:  tradeMetrics,
		cfg:      cfg,
	}
}

// ValidateAmount parses price and checks it against [min, max]. Non-numeric
// input is a validation failure like any out-of-range value.
func ValidateAmount(price string, min, max decimal.Decimal) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", domain.ErrValidation, price)
	}
	if amount.LessThan(min) || amount.GreaterThan(max) {
		return decimal.Zero, fmt.Errorf("%w: %s outside [%s, %s]", domain.ErrValidation, amount, min, max)
	}
	return amount, nil
}

// InvoiceURL is where the processor sends the buyer back after checkout.
func InvoiceURL(baseURL, invoiceID string) string {
	return fmt.Sprintf("%s/user/invoice/%s/view", strings.TrimRight(baseURL, "/"), url.PathEscape(invoiceID))
}

// Purchase writes the pending trade before any external call so an
// interrupted purchase always leaves an auditable record. A failed FX or
// checkout call aborts the purchase and leaves the trade pending.
func (uc *DefaultPurchaseUsecase) Purchase(ctx context.Context, req *domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	ctx, span := tracer.Start(ctx, "purchase")
	defer span.End()
	span.SetAttributes(
		attribute.String("payment.gateway", uc.cfg.Gateway),
		attribute.String("payment.invoice_id", req.InvoiceID),
		attribute.String("payment.user_id", req.User.ID),
	)
	logger := logging.WithTraceContext(span)

	amount, err := ValidateAmount(req.Price, uc.cfg.MinRecharge, uc.cfg.MaxRecharge)
	if err != nil {
		uc.fail(span, "validation", err)
		return nil, err
	}

	trade, err := uc.Ledger.Create(ctx, req.User.ID, amount, req.InvoiceID, uc.cfg.TradeGatewayName)
	if err != nil {
		uc.fail(span, "storage", err)
		logger.Error("Failed to create trade", zap.String("user_id", req.User.ID), zap.Error(err))
		return nil, err
	}
	span.SetAttributes(attribute.String("payment.trade_no", trade.CorrelationToken))
	uc.Metrics.RecordTradeCreated(uc.cfg.Gateway, amount.InexactFloat64())
	uc.Events.Notify(domain.EventTradeCreated, trade)

	unitAmount, err := uc.convert(ctx, amount)
	if err != nil {
		uc.fail(span, "rate_unavailable", err)
		logger.Warn("Exchange rate unavailable, trade left pending",
			zap.String("trade_no", trade.CorrelationToken),
			zap.Error(err),
		)
		return nil, err
	}

	session, err := uc.createSession(ctx, &domain.CheckoutRequest{
		Trade:      trade,
		UnitAmount: unitAmount,
		Currency:   uc.cfg.SettlementCurrency,
		BuyerEmail: req.User.Email,
		SuccessURL: InvoiceURL(uc.cfg.BaseURL, req.InvoiceID),
		CancelURL:  InvoiceURL(uc.cfg.BaseURL, req.InvoiceID),
	})
	if err != nil {
		uc.fail(span, "processor_rejected", err)
		logger.Warn("Checkout session rejected, trade left pending",
			zap.String("trade_no", trade.CorrelationToken),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Info("Checkout session created",
		zap.String("trade_no", trade.CorrelationToken),
		zap.String("session_id", session.ID),
		zap.Int64("unit_amount", unitAmount),
		zap.String("currency", uc.cfg.SettlementCurrency),
	)

	return &domain.PurchaseResult{
		Trade:       trade,
		SessionID:   session.ID,
		RedirectURL: session.RedirectURL,
	}, nil
}

func (uc *DefaultPurchaseUsecase) convert(ctx context.Context, amount decimal.Decimal) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.ExternalTimeout)
	defer cancel()

	started := time.Now()
	units, err := uc.Exchange.Convert(ctx, amount, uc.cfg.DisplayCurrency, uc.cfg.SettlementCurrency)
	uc.Metrics.ObserveExternalCall("fx", started, err)
	if err != nil {
		if !errors.Is(err, domain.ErrRateUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
		}
		return 0, err
	}
	return units, nil
}

func (uc *DefaultPurchaseUsecase) createSession(ctx context.Context, req *domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.ExternalTimeout)
	defer cancel()

	started := time.Now()
	session, err := uc.Checkout.Create(ctx, req)
	uc.Metrics.ObserveExternalCall("checkout", started, err)
	if err != nil {
		if !errors.Is(err, domain.ErrProcessorRejected) {
			err = fmt.Errorf("%w: %v", domain.ErrProcessorRejected, err)
		}
		return nil, err
	}
	return session, nil
}

func (uc *DefaultPurchaseUsecase) fail(span trace.Span, reason string, err error) {
	uc.Metrics.RecordPurchaseFailure(uc.cfg.Gateway, reason)
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
}
