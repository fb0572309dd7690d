package domain

import "context"

type CheckoutRequest struct {
	Trade *Trade
	// Amount in the settlement currency's smallest unit (cents).
	UnitAmount int64
	Currency   string
	BuyerEmail string
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID          string
	RedirectURL string
}

type CheckoutSessionBuilder interface {
	Create(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
}

type WebhookVerifier interface {
	Verify(rawBody []byte, signatureHeader string) (*PaymentEvent, error)
}
