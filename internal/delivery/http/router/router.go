package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-payment-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-payment-service/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const serviceName = "payment-service"

type Handlers struct {
	Payment *handlers.PaymentHandler
	Health  *handlers.HealthHandler
}

// New builds the gin engine. gatherer backs /metrics and may be nil.
func New(h Handlers, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(requestLogger())

	r.GET("/health", h.Health.HealthCheck)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Processor callbacks are authenticated by signature, not by session.
	r.POST("/payment/notify/:gateway", h.Payment.Notify)

	user := r.Group("/user/payment", middleware.RequireUser())
	user.GET("/gateways", h.Payment.Gateways)
	user.POST("/purchase/:gateway", h.Payment.Purchase)
	user.GET("/trade/:token", h.Payment.GetTrade)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("status", strconv.Itoa(status)),
			zap.Duration("duration", time.Since(start)),
		}
		if status >= http.StatusInternalServerError {
			logging.Error("HTTP request", fields...)
			return
		}
		logging.Info("HTTP request", fields...)
	}
}
