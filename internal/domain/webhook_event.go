package domain

import "time"

type ReconcileResult string

const (
	ReconcileCompleted          ReconcileResult = "completed"
	ReconcileDuplicateOrUnknown ReconcileResult = "duplicate_or_unknown"
	ReconcileIgnored            ReconcileResult = "ignored"
)

const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	PaymentIntentSucceeded      = "succeeded"

	MetadataTradeNo = "trade_no"
)

// PaymentEvent is a verified processor notification.
type PaymentEvent struct {
	ID      string
	Type    string
	Created time.Time
	Object  PaymentObject
}

type PaymentObject struct {
	ID       string
	Status   string
	Metadata map[string]string
}

// CorrelationToken returns the trade token echoed back by the processor.
func (e *PaymentEvent) CorrelationToken() string {
	return e.Object.Metadata[MetadataTradeNo]
}

// WebhookEventLog is the audit record of one verified delivery.
type WebhookEventLog struct {
	ID               string
	EventID          string
	EventType        string
	Gateway          string
	CorrelationToken string
	Result           ReconcileResult
	ReceivedAt       time.Time
}
