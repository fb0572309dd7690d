package stripe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	stripesdk "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const SignatureHeader = "Stripe-Signature"

// WebhookVerifier authenticates Stripe deliveries against the endpoint
// secret. Verification runs over the raw body bytes as received; a body
// that was decoded and re-encoded no longer matches its signature.
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

type eventObject struct {
	ID       string            `json:"id"`
	Object   string            `json:"object"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

func NewWebhookVerifier(secret string, tolerance time.Duration) *WebhookVerifier {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &WebhookVerifier{secret: secret, tolerance: tolerance}
}

func (v *WebhookVerifier) Verify(rawBody []byte, signatureHeader string) (*domain.PaymentEvent, error) {
	var envelope stripesdk.Event
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	if envelope.ID == "" || envelope.Type == "" || envelope.Data == nil || len(envelope.Data.Raw) == 0 {
		return nil, fmt.Errorf("%w: missing id, type or data.object", domain.ErrMalformedPayload)
	}

	if err := webhook.ValidatePayloadWithTolerance(rawBody, signatureHeader, v.secret, v.tolerance); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSignatureInvalid, err)
	}

	var object eventObject
	if err := json.Unmarshal(envelope.Data.Raw, &object); err != nil {
		return nil, fmt.Errorf("%w: data.object: %v", domain.ErrMalformedPayload, err)
	}

	return &domain.PaymentEvent{
		ID:      envelope.ID,
		Type:    string(envelope.Type),
		Created: time.Unix(envelope.Created, 0).UTC(),
		Object: domain.PaymentObject{
			ID:       object.ID,
			Status:   object.Status,
			Metadata: object.Metadata,
		},
	}, nil
}
