package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	stripesdk "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type ClientConfig struct {
	APIKey string
	// APIURL overrides api.stripe.com, used against mocks and in tests.
	APIURL  string
	Timeout time.Duration
}

// CheckoutSessionBuilder creates hosted checkout sessions with its own API
// client. The SDK-wide stripe.Key is never touched.
type CheckoutSessionBuilder struct {
	api *client.API
}

func NewCheckoutSessionBuilder(cfg ClientConfig) *CheckoutSessionBuilder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	backendConfig := &stripesdk.BackendConfig{
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		MaxNetworkRetries: stripesdk.Int64(0),
		EnableTelemetry:   stripesdk.Bool(false),
		LeveledLogger:     &stripesdk.LeveledLogger{Level: stripesdk.LevelError},
	}
	if cfg.APIURL != "" {
		backendConfig.URL = stripesdk.String(cfg.APIURL)
	}

	api := &client.API{}
	api.Init(cfg.APIKey, &stripesdk.Backends{
		API:     stripesdk.GetBackendWithConfig(stripesdk.APIBackend, backendConfig),
		Connect: stripesdk.GetBackendWithConfig(stripesdk.ConnectBackend, backendConfig),
		Uploads: stripesdk.GetBackendWithConfig(stripesdk.UploadsBackend, backendConfig),
	})

	return &CheckoutSessionBuilder{api: api}
}

func (b *CheckoutSessionBuilder) Create(ctx context.Context, req *domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	if req.Trade == nil || req.Trade.CorrelationToken == "" {
		return nil, fmt.Errorf("%w: trade without correlation token", domain.ErrProcessorRejected)
	}
	if req.UnitAmount <= 0 {
		return nil, fmt.Errorf("%w: non-positive unit amount %d", domain.ErrProcessorRejected, req.UnitAmount)
	}

	params := &stripesdk.CheckoutSessionParams{
		LineItems: []*stripesdk.CheckoutSessionLineItemParams{
			{
				PriceData: &stripesdk.CheckoutSessionLineItemPriceDataParams{
					Currency: stripesdk.String(req.Currency),
					ProductData: &stripesdk.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripesdk.String("Invoice #" + req.Trade.InvoiceRef),
					},
					UnitAmount: stripesdk.Int64(req.UnitAmount),
				},
				Quantity: stripesdk.Int64(1),
			},
		},
		Mode: stripesdk.String(string(stripesdk.CheckoutSessionModePayment)),
		PaymentIntentData: &stripesdk.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				domain.MetadataTradeNo: req.Trade.CorrelationToken,
			},
		},
		SuccessURL: stripesdk.String(req.SuccessURL),
		CancelURL:  stripesdk.String(req.CancelURL),
	}
	if req.BuyerEmail != "" {
		params.CustomerEmail = stripesdk.String(req.BuyerEmail)
	}
	params.Context = ctx

	session, err := b.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripesdk.Error
		if errors.As(err, &stripeErr) {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrProcessorRejected, stripeErr.Msg, stripeErr.Type)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProcessorRejected, err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("%w: session %s has no redirect url", domain.ErrProcessorRejected, session.ID)
	}

	return &domain.CheckoutSession{
		ID:          session.ID,
		RedirectURL: session.URL,
	}, nil
}
