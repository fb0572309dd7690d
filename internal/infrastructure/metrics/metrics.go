package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TradeMetrics covers the purchase and webhook flows. A nil *TradeMetrics is
// valid and records nothing.
type TradeMetrics struct {
	// Trades
	TradesCreatedTotal       *prometheus.CounterVec
	TradesCreatedAmountTotal *prometheus.CounterVec
	TradesPaidTotal          *prometheus.CounterVec

	// Purchase failures by reason (validation, rate_unavailable, processor_rejected, storage)
	PurchaseFailuresTotal *prometheus.CounterVec

	// Webhook deliveries by result (completed, duplicate_or_unknown, ignored, malformed, signature_invalid, error)
	WebhookDeliveriesTotal *prometheus.CounterVec

	// External calls (fx, checkout)
	ExternalCallDuration *prometheus.HistogramVec
}

func NewTradeMetrics(reg prometheus.Registerer) *TradeMetrics {
	factory := promauto.With(reg)

	return &TradeMetrics{
		TradesCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_trades_created_total",
				Help: "Number of pending trades created",
			},
			[]string{"gateway"},
		),

		TradesCreatedAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_trades_created_amount_total",
				Help: "Sum of created trade amounts in display currency",
			},
			[]string{"gateway"},
		),

		TradesPaidTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_trades_paid_total",
				Help: "Number of trades moved from pending to paid",
			},
			[]string{"gateway"},
		),

		PurchaseFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_purchase_failures_total",
				Help: "Purchase requests that did not produce a checkout session",
			},
			[]string{"gateway", "reason"},
		),

		WebhookDeliveriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhook_deliveries_total",
				Help: "Webhook deliveries by outcome",
			},
			[]string{"gateway", "result"},
		),

		ExternalCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_external_call_duration_seconds",
				Help:    "Duration of calls to exchange rate source and payment processor",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms, 20ms, 40ms...
			},
			[]string{"call", "success"},
		),
	}
}

func (m *TradeMetrics) RecordTradeCreated(gateway string, amount float64) {
	if m == nil {
		return
	}
	m.TradesCreatedTotal.WithLabelValues(gateway).Inc()
	m.TradesCreatedAmountTotal.WithLabelValues(gateway).Add(amount)
}

func (m *TradeMetrics) RecordTradePaid(gateway string) {
	if m == nil {
		return
	}
	m.TradesPaidTotal.WithLabelValues(gateway).Inc()
}

func (m *TradeMetrics) RecordPurchaseFailure(gateway, reason string) {
	if m == nil {
		return
	}
	m.PurchaseFailuresTotal.WithLabelValues(gateway, reason).Inc()
}

func (m *TradeMetrics) RecordWebhook(gateway, result string) {
	if m == nil {
		return
	}
	m.WebhookDeliveriesTotal.WithLabelValues(gateway, result).Inc()
}

func (m *TradeMetrics) ObserveExternalCall(call string, started time.Time, err error) {
	if m == nil {
		return
	}
	success := "true"
	if err != nil {
		success = "false"
	}
	m.ExternalCallDuration.WithLabelValues(call, success).Observe(time.Since(started).Seconds())
}
