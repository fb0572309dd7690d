package domain

import (
	"context"
	"net/http"
)

// PurchaseRequest is a sanitized purchase coming from the HTTP boundary.
type PurchaseRequest struct {
	User      User
	Price     string
	InvoiceID string
}

type PurchaseResult struct {
	Trade       *Trade
	SessionID   string
	RedirectURL string
}

// Notification is an untrusted delivery from a payment processor. Body must
// be the exact bytes received on the wire.
type Notification struct {
	Body    []byte
	Headers http.Header
}

// PaymentGateway is one processor integration that can be looked up by name.
type PaymentGateway interface {
	Name() string
	ReadableName() string
	Enabled() bool
	Purchase(ctx context.Context, req *PurchaseRequest) (*PurchaseResult, error)
	Notify(ctx context.Context, n *Notification) (ReconcileResult, error)
}
