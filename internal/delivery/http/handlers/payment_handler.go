package handlers

import (
	"errors"
	"net/http"

	"github.com/LavaJover/shvark-payment-service/internal/delivery/http/dto/payment"
	"github.com/LavaJover/shvark-payment-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-payment-service/internal/delivery/http/sanitize"
	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/logging"
	"github.com/LavaJover/shvark-payment-service/internal/usecase"
	"github.com/LavaJover/shvark-payment-service/internal/usecase/gateway"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Stripe events can carry large objects, anything past this is not a webhook.
const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	registry *gateway.Registry
	ledger   usecase.TradeLedger
}

func NewPaymentHandler(registry *gateway.Registry, ledger usecase.TradeLedger) *PaymentHandler {
	return &PaymentHandler{registry: registry, ledger: ledger}
}

// Gateways lists enabled payment gateways.
func (h *PaymentHandler) Gateways(c *gin.Context) {
	data := make([]payment.GatewayData, 0)
	for _, gw := range h.registry.Enabled() {
		data = append(data, payment.GatewayData{Name: gw.Name(), ReadableName: gw.ReadableName()})
	}
	c.JSON(http.StatusOK, payment.GatewaysResponse{Ret: payment.RetSuccess, Data: data})
}

// Purchase starts a hosted checkout for an invoice. Business failures are
// answered with 200 and ret=0.
func (h *PaymentHandler) Purchase(c *gin.Context) {
	gw, ok := h.lookup(c)
	if !ok {
		return
	}
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, payment.Response{Ret: payment.RetFailure, Msg: "Unauthorized"})
		return
	}

	var req payment.PurchaseRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, payment.Response{Ret: payment.RetFailure, Msg: "Invalid amount"})
		return
	}

	result, err := gw.Purchase(c.Request.Context(), &domain.PurchaseRequest{
		User:      user,
		Price:     sanitize.Clean(req.Price),
		InvoiceID: sanitize.InvoiceID(req.InvoiceID),
	})
	if err != nil {
		c.JSON(http.StatusOK, payment.Response{Ret: payment.RetFailure, Msg: purchaseFailureMessage(gw, err)})
		return
	}

	c.Header("Location", result.RedirectURL)
	c.JSON(http.StatusOK, payment.Response{
		Ret: payment.RetSuccess,
		Msg: "Order created, redirecting to payment page...",
	})
}

// Notify receives processor webhooks. The body is handed over untouched
// since signatures cover the exact bytes.
func (h *PaymentHandler) Notify(c *gin.Context) {
	gw, ok := h.lookup(c)
	if !ok {
		return
	}
	logger := logging.WithTraceContext(trace.SpanFromContext(c.Request.Context()))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, payment.Response{Ret: payment.RetFailure, Msg: "Unexpected Value error"})
		return
	}

	result, err := gw.Notify(c.Request.Context(), &domain.Notification{Body: body, Headers: c.Request.Header})
	switch {
	case errors.Is(err, domain.ErrMalformedPayload):
		c.JSON(http.StatusBadRequest, payment.Response{Ret: payment.RetFailure, Msg: "Unexpected Value error"})
		return
	case errors.Is(err, domain.ErrSignatureInvalid):
		c.JSON(http.StatusBadRequest, payment.Response{Ret: payment.RetFailure, Msg: "Signature Verification error"})
		return
	case err != nil:
		logger.Error("Webhook processing failed", zap.String("gateway", gw.Name()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, payment.Response{Ret: payment.RetFailure, Msg: "Internal error"})
		return
	}

	switch result {
	case domain.ReconcileCompleted, domain.ReconcileDuplicateOrUnknown:
		c.JSON(http.StatusOK, payment.Response{Ret: payment.RetSuccess, Msg: "Payment success"})
	default:
		c.JSON(http.StatusOK, payment.Response{Ret: payment.RetFailure, Msg: "Payment failed"})
	}
}

// GetTrade shows the state of one of the caller's trades.
func (h *PaymentHandler) GetTrade(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, payment.Response{Ret: payment.RetFailure, Msg: "Unauthorized"})
		return
	}

	trade, err := h.ledger.FindByToken(c.Request.Context(), sanitize.Clean(c.Param("token")))
	if err != nil || trade.UserID != user.ID {
		if err != nil && !errors.Is(err, domain.ErrTradeNotFound) {
			logging.Error("Trade lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, payment.Response{Ret: payment.RetFailure, Msg: "Internal error"})
			return
		}
		c.JSON(http.StatusNotFound, payment.Response{Ret: payment.RetFailure, Msg: "Trade not found"})
		return
	}

	c.JSON(http.StatusOK, payment.TradeResponse{
		Ret: payment.RetSuccess,
		Data: payment.TradeData{
			TradeNo:   trade.CorrelationToken,
			InvoiceID: trade.InvoiceRef,
			Amount:    trade.Amount.StringFixed(2),
			Gateway:   trade.GatewayName,
			Status:    string(trade.Status),
			CreatedAt: trade.CreatedAt,
			PaidAt:    trade.PaidAt,
		},
	})
}

func (h *PaymentHandler) lookup(c *gin.Context) (domain.PaymentGateway, bool) {
	gw, err := h.registry.Get(c.Param("gateway"))
	if err != nil {
		c.JSON(http.StatusNotFound, payment.Response{Ret: payment.RetFailure, Msg: "Payment gateway not enabled"})
		return nil, false
	}
	return gw, true
}

func purchaseFailureMessage(gw domain.PaymentGateway, err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Invalid amount"
	case errors.Is(err, domain.ErrRateUnavailable):
		return "Failed to fetch exchange rate"
	case errors.Is(err, domain.ErrProcessorRejected):
		return gw.ReadableName() + " API error"
	default:
		return "Failed to create trade"
	}
}
