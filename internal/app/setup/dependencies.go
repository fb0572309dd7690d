package setup

import (
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-payment-service/internal/config"
	"github.com/LavaJover/shvark-payment-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-payment-service/internal/domain"
	providers "github.com/LavaJover/shvark-payment-service/internal/infrastructure/exchange_providers"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/nats"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/stripe"
	"github.com/LavaJover/shvark-payment-service/internal/logging"
	"github.com/LavaJover/shvark-payment-service/internal/usecase"
	"github.com/LavaJover/shvark-payment-service/internal/usecase/gateway"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.PaymentConfig
	DB           *gorm.DB
	Redis        *redis.Client
	Publisher    domain.PublisherPort
	Registry     *prometheus.Registry
	Metrics      *metrics.TradeMetrics
	Repositories *Repositories
}

type Repositories struct {
	TradeRepo        *repository.DefaultTradeRepository
	WebhookEventRepo domain.WebhookEventRepository
}

type UseCases struct {
	Ledger    usecase.TradeLedger
	Purchase  usecase.PurchaseUsecase
	Reconcile usecase.ReconcileUsecase
	Gateways  *gateway.Registry
}

func InitializeDependencies(cfg *config.PaymentConfig) (*Dependencies, error) {
	db := postgres.MustInitDB(cfg)

	publisher, err := initPublisher(cfg.Events)
	if err != nil {
		return nil, fmt.Errorf("event publisher: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Dependencies{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Publisher: publisher,
		Registry:  reg,
		Metrics:   metrics.NewTradeMetrics(reg),
		Repositories: &Repositories{
			TradeRepo:        repository.NewDefaultTradeRepository(db),
			WebhookEventRepo: repository.NewDefaultWebhookEventRepository(db),
		},
	}, nil
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	cfg := deps.Config

	minRecharge, maxRecharge, err := cfg.Stripe.RechargeBounds()
	if err != nil {
		return nil, err
	}

	ledger, err := usecase.NewDefaultTradeLedger(deps.Repositories.TradeRepo)
	if err != nil {
		return nil, fmt.Errorf("trade ledger: %w", err)
	}

	var events *usecase.TradeEventNotifier
	if deps.Publisher != nil {
		events = usecase.NewTradeEventNotifier(deps.Publisher, cfg.Events.Topic)
	}

	var rates domain.ExchangeRateProvider = providers.NewHTTPRateProvider(cfg.Exchange.RateURL, cfg.Exchange.RPS)
	if deps.Redis != nil {
		rates = providers.NewCachedRateProvider(rates, deps.Redis, cfg.Exchange.CacheTTL)
	}

	purchase := usecase.NewDefaultPurchaseUsecase(
		ledger,
		usecase.NewDefaultExchangeUsecase(rates),
		stripe.NewCheckoutSessionBuilder(stripe.ClientConfig{
			APIKey:  cfg.Stripe.APIKey,
			APIURL:  cfg.Stripe.APIURL,
			Timeout: cfg.Gateway.ExternalTimeout,
		}),
		events,
		deps.Metrics,
		usecase.PurchaseConfig{
			Gateway:            gateway.StripeName,
			TradeGatewayName:   "Stripe",
			MinRecharge:        minRecharge,
			MaxRecharge:        maxRecharge,
			DisplayCurrency:    cfg.Gateway.DisplayCurrency,
			SettlementCurrency: cfg.Stripe.Currency,
			BaseURL:            cfg.Gateway.BaseURL,
			ExternalTimeout:    cfg.Gateway.ExternalTimeout,
		},
	)

	reconcile := usecase.NewDefaultReconcileUsecase(
		ledger,
		deps.Repositories.WebhookEventRepo,
		events,
		deps.Metrics,
		gateway.StripeName,
	)

	registry := gateway.NewRegistry(gateway.NewStripeGateway(
		cfg.Gateway.IsActive(gateway.StripeName),
		purchase,
		stripe.NewWebhookVerifier(cfg.Stripe.EndpointSecret, cfg.Stripe.Tolerance),
		reconcile,
		deps.Metrics,
	))

	logging.Info("payment gateways initialized", zap.Int("enabled", len(registry.Enabled())))

	return &UseCases{
		Ledger:    ledger,
		Purchase:  purchase,
		Reconcile: reconcile,
		Gateways:  registry,
	}, nil
}

func InitializeHandlers(deps *Dependencies, uc *UseCases) (*handlers.PaymentHandler, *handlers.HealthHandler) {
	return handlers.NewPaymentHandler(uc.Gateways, uc.Ledger), handlers.NewHealthHandler(deps.Repositories.TradeRepo)
}

// Close releases connections opened by InitializeDependencies.
func (d *Dependencies) Close() {
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			logging.Warn("failed to close event publisher", zap.Error(err))
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			logging.Warn("failed to close redis", zap.Error(err))
		}
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

func initPublisher(cfg config.Events) (domain.PublisherPort, error) {
	switch strings.ToLower(cfg.Provider) {
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("events.kafka_brokers is empty")
		}
		return kafka.NewKafkaPublisher(cfg.KafkaBrokers), nil
	case "nats":
		publisher, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			return nil, err
		}
		return publisher, nil
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown events provider %q", cfg.Provider)
	}
}
