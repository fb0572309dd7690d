package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

const testSecret = "whsec_test_secret"

const succeededEvent = `{
  "id": "evt_1",
  "object": "event",
  "type": "payment_intent.succeeded",
  "created": 1700000000,
  "data": {
    "object": {
      "id": "pi_1",
      "object": "payment_intent",
      "status": "succeeded",
      "metadata": {"trade_no": "tok-abc"}
    }
  }
}`

func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", at.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestWebhookVerifierAcceptsValidSignature(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret, 0)
	body := []byte(succeededEvent)

	event, err := verifier.Verify(body, signPayload(body, testSecret, time.Now()))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if event.ID != "evt_1" || event.Type != domain.EventPaymentIntentSucceeded {
		t.Errorf("unexpected event %+v", event)
	}
	if event.Object.Status != domain.PaymentIntentSucceeded {
		t.Errorf("unexpected status %q", event.Object.Status)
	}
	if event.CorrelationToken() != "tok-abc" {
		t.Errorf("unexpected token %q", event.CorrelationToken())
	}
	if !event.Created.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("unexpected created %v", event.Created)
	}
}

func TestWebhookVerifierRejectsWrongSecret(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret, 0)
	body := []byte(succeededEvent)

	_, err := verifier.Verify(body, signPayload(body, "whsec_other", time.Now()))
	if !errors.Is(err, domain.ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestWebhookVerifierRejectsReserializedBody(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret, 0)
	original := []byte(succeededEvent)
	header := signPayload(original, testSecret, time.Now())

	// Same JSON document with whitespace stripped.
	compact := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","created":1700000000,"data":{"object":{"id":"pi_1","object":"payment_intent","status":"succeeded","metadata":{"trade_no":"tok-abc"}}}}`)

	if _, err := verifier.Verify(compact, header); !errors.Is(err, domain.ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestWebhookVerifierRejectsStaleTimestamp(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret, time.Minute)
	body := []byte(succeededEvent)

	header := signPayload(body, testSecret, time.Now().Add(-time.Hour))
	if _, err := verifier.Verify(body, header); !errors.Is(err, domain.ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestWebhookVerifierHeaderProblems(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret, 0)
	body := []byte(succeededEvent)

	for _, header := range []string{"", "garbage", "t=abc,v1=00", fmt.Sprintf("t=%d", time.Now().Unix())} {
		if _, err := verifier.Verify(body, header); !errors.Is(err, domain.ErrSignatureInvalid) {
			t.Errorf("header %q: expected ErrSignatureInvalid, got %v", header, err)
		}
	}
}

func TestWebhookVerifierMalformedPayload(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret, 0)

	bodies := []string{
		`not json`,
		`{"id":"evt_1"`,
		`{"object":"event","type":"payment_intent.succeeded","data":{"object":{}}}`,
		`{"id":"evt_1","object":"event","data":{"object":{}}}`,
		`{"id":"evt_1","object":"event","type":"payment_intent.succeeded"}`,
	}
	for _, raw := range bodies {
		body := []byte(raw)
		_, err := verifier.Verify(body, signPayload(body, testSecret, time.Now()))
		if !errors.Is(err, domain.ErrMalformedPayload) {
			t.Errorf("body %q: expected ErrMalformedPayload, got %v", raw, err)
		}
	}
}
