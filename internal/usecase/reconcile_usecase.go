package usecase

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-payment-service/internal/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type ReconcileUsecase interface {
	Reconcile(ctx context.Context, event *domain.PaymentEvent) (domain.ReconcileResult, error)
}

type DefaultReconcileUsecase struct {
	Ledger    TradeLedger
	EventRepo domain.WebhookEventRepository
	Events    *TradeEventNotifier
	Metrics   *metrics.TradeMetrics
	gateway   string
}

func NewDefaultReconcileUsecase(
	ledger TradeLedger,
	eventRepo domain.WebhookEventRepository,
	events *TradeEventNotifier,
	tradeMetrics *metrics.TradeMetrics,
	gateway string) *DefaultReconcileUsecase {

	return &DefaultReconcileUsecase{
		Ledger:    ledger,
		EventRepo: eventRepo,
		Events:    events,
		Metrics:   tradeMetrics,
		gateway:   gateway,
	}
}

// Qualifies reports whether the event confirms a successful payment.
func Qualifies(event *domain.PaymentEvent) bool {
	return event.Type == domain.EventPaymentIntentSucceeded &&
		event.Object.Status == domain.PaymentIntentSucceeded
}

// Reconcile applies a verified event at most once per trade. Redeliveries
// and unknown tokens come back as ReconcileDuplicateOrUnknown with a nil
// error; only storage failures are errors.
func (uc *DefaultReconcileUsecase) Reconcile(ctx context.Context, event *domain.PaymentEvent) (domain.ReconcileResult, error) {
	ctx, span := tracer.Start(ctx, "reconcile")
	defer span.End()
	span.SetAttributes(
		attribute.String("payment.gateway", uc.gateway),
		attribute.String("webhook.event_id", event.ID),
		attribute.String("webhook.event_type", event.Type),
	)
	logger := logging.WithTraceContext(span)

	if !Qualifies(event) {
		logger.Info("Ignoring webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
			zap.String("object_status", event.Object.Status),
		)
		uc.audit(ctx, event, domain.ReconcileIgnored)
		return domain.ReconcileIgnored, nil
	}

	token := event.CorrelationToken()
	span.SetAttributes(attribute.String("payment.trade_no", token))
	if token == "" {
		logger.Warn("Payment event without trade_no", zap.String("event_id", event.ID))
		uc.audit(ctx, event, domain.ReconcileDuplicateOrUnknown)
		return domain.ReconcileDuplicateOrUnknown, nil
	}

	applied, err := uc.Ledger.TransitionToPaid(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transition failed")
		logger.Error("Failed to mark trade paid",
			zap.String("event_id", event.ID),
			zap.String("trade_no", token),
			zap.Error(err),
		)
		return "", err
	}

	if !applied {
		logger.Info("Trade unknown or already terminal",
			zap.String("event_id", event.ID),
			zap.String("trade_no", token),
		)
		uc.audit(ctx, event, domain.ReconcileDuplicateOrUnknown)
		return domain.ReconcileDuplicateOrUnknown, nil
	}

	logger.Info("Trade paid", zap.String("event_id", event.ID), zap.String("trade_no", token))
	uc.Metrics.RecordTradePaid(uc.gateway)
	uc.audit(ctx, event, domain.ReconcileCompleted)

	trade, err := uc.Ledger.FindByToken(ctx, token)
	if err != nil {
		logger.Warn("Paid trade lookup failed, skipping event", zap.String("trade_no", token), zap.Error(err))
	} else {
		uc.Events.Notify(domain.EventTradePaid, trade)
	}

	return domain.ReconcileCompleted, nil
}

func (uc *DefaultReconcileUsecase) audit(ctx context.Context, event *domain.PaymentEvent, result domain.ReconcileResult) {
	if uc.EventRepo == nil {
		return
	}
	entry := &domain.WebhookEventLog{
		EventID:          event.ID,
		EventType:        event.Type,
		Gateway:          uc.gateway,
		CorrelationToken: event.CorrelationToken(),
		Result:           result,
		ReceivedAt:       time.Now().UTC(),
	}
	if err := uc.EventRepo.SaveEvent(ctx, entry); err != nil {
		logging.Warn("Failed to record webhook event", zap.String("event_id", event.ID), zap.Error(err))
	}
}
