package stripe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

func newCheckoutRequest() *domain.CheckoutRequest {
	return &domain.CheckoutRequest{
		Trade: &domain.Trade{
			ID:               "trade-1",
			InvoiceRef:       "42",
			CorrelationToken: "tok-abc",
			Status:           domain.TradePending,
		},
		UnitAmount: 700,
		Currency:   "usd",
		BuyerEmail: "buyer@example.com",
		SuccessURL: "https://example.com/user/invoice/42/view",
		CancelURL:  "https://example.com/user/invoice/42/view",
	}
}

func TestCheckoutSessionBuilderCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("unexpected authorization %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		expect := map[string]string{
			"mode":                                          "payment",
			"customer_email":                                "buyer@example.com",
			"line_items[0][price_data][currency]":           "usd",
			"line_items[0][price_data][unit_amount]":        "700",
			"line_items[0][price_data][product_data][name]": "Invoice #42",
			"line_items[0][quantity]":                       "1",
			"payment_intent_data[metadata][trade_no]":       "tok-abc",
			"success_url":                                   "https://example.com/user/invoice/42/view",
			"cancel_url":                                    "https://example.com/user/invoice/42/view",
		}
		for key, want := range expect {
			if got := r.PostForm.Get(key); got != want {
				t.Errorf("%s: expected %q, got %q", key, want, got)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
	}))
	defer server.Close()

	builder := NewCheckoutSessionBuilder(ClientConfig{APIKey: "sk_test_123", APIURL: server.URL})
	session, err := builder.Create(context.Background(), newCheckoutRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.ID != "cs_test_1" {
		t.Errorf("unexpected session id %q", session.ID)
	}
	if session.RedirectURL != "https://checkout.stripe.com/c/pay/cs_test_1" {
		t.Errorf("unexpected redirect %q", session.RedirectURL)
	}
}

func TestCheckoutSessionBuilderProcessorRejected(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"invalid request", http.StatusBadRequest, `{"error":{"type":"invalid_request_error","message":"Invalid currency"}}`},
		{"auth failure", http.StatusUnauthorized, `{"error":{"type":"invalid_request_error","message":"Invalid API Key"}}`},
		{"outage", http.StatusInternalServerError, `{"error":{"type":"api_error","message":"boom"}}`},
		{"no redirect url", http.StatusOK, `{"id":"cs_test_2","object":"checkout.session"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			builder := NewCheckoutSessionBuilder(ClientConfig{APIKey: "sk_test_123", APIURL: server.URL})
			_, err := builder.Create(context.Background(), newCheckoutRequest())
			if !errors.Is(err, domain.ErrProcessorRejected) {
				t.Fatalf("expected ErrProcessorRejected, got %v", err)
			}
		})
	}
}

func TestCheckoutSessionBuilderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	builder := NewCheckoutSessionBuilder(ClientConfig{APIKey: "sk_test_123", APIURL: url})
	if _, err := builder.Create(context.Background(), newCheckoutRequest()); !errors.Is(err, domain.ErrProcessorRejected) {
		t.Fatalf("expected ErrProcessorRejected, got %v", err)
	}
}

func TestCheckoutSessionBuilderRejectsBadInput(t *testing.T) {
	builder := NewCheckoutSessionBuilder(ClientConfig{APIKey: "sk_test_123", APIURL: "http://127.0.0.1:1"})

	req := newCheckoutRequest()
	req.UnitAmount = 0
	if _, err := builder.Create(context.Background(), req); !errors.Is(err, domain.ErrProcessorRejected) {
		t.Errorf("zero amount: expected ErrProcessorRejected, got %v", err)
	}

	req = newCheckoutRequest()
	req.Trade.CorrelationToken = ""
	if _, err := builder.Create(context.Background(), req); !errors.Is(err, domain.ErrProcessorRejected) {
		t.Errorf("missing token: expected ErrProcessorRejected, got %v", err)
	}
}
