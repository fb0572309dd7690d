package gateway

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-payment-service/internal/logging"
	"github.com/LavaJover/shvark-payment-service/internal/usecase"
	"go.uber.org/zap"
)

const (
	StripeName            = "stripe"
	stripeReadableName    = "Stripe"
	stripeSignatureHeader = "Stripe-Signature"
)

type StripeGateway struct {
	enabled    bool
	purchase   usecase.PurchaseUsecase
	verifier   domain.WebhookVerifier
	reconciler usecase.ReconcileUsecase
	metrics    *metrics.TradeMetrics
}

func NewStripeGateway(
	enabled bool,
	purchase usecase.PurchaseUsecase,
	verifier domain.WebhookVerifier,
	reconciler usecase.ReconcileUsecase,
	tradeMetrics *metrics.TradeMetrics) *StripeGateway {

	return &StripeGateway{
		enabled:    enabled,
		purchase:   purchase,
		verifier:   verifier,
		reconciler: reconciler,
		metrics:    tradeMetrics,
	}
}

func (g *StripeGateway) Name() string {
	return StripeName
}

func (g *StripeGateway) ReadableName() string {
	return stripeReadableName
}

func (g *StripeGateway) Enabled() bool {
	return g.enabled
}

func (g *StripeGateway) Purchase(ctx context.Context, req *domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	return g.purchase.Purchase(ctx, req)
}

// Notify verifies the delivery and hands the event to the reconciler. No
// event leaves this method unless its signature checked out.
func (g *StripeGateway) Notify(ctx context.Context, n *domain.Notification) (domain.ReconcileResult, error) {
	event, err := g.verifier.Verify(n.Body, n.Headers.Get(stripeSignatureHeader))
	if err != nil {
		outcome := "malformed"
		if errors.Is(err, domain.ErrSignatureInvalid) {
			outcome = "signature_invalid"
		}
		g.metrics.RecordWebhook(StripeName, outcome)
		logging.Warn("Rejected stripe webhook", zap.String("reason", outcome), zap.Error(err))
		return "", err
	}

	result, err := g.reconciler.Reconcile(ctx, event)
	if err != nil {
		g.metrics.RecordWebhook(StripeName, "error")
		return "", err
	}

	g.metrics.RecordWebhook(StripeName, string(result))
	return result, nil
}
