package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

type PaymentConfig struct {
	Env            string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer     `yaml:"http_server"`
	PaymentDB      `yaml:"payment_db"`
	Redis          `yaml:"redis"`
	Events         `yaml:"events"`
	Exchange       `yaml:"exchange"`
	Stripe         `yaml:"stripe"`
	Gateway        `yaml:"gateway"`
	Tracing        `yaml:"tracing"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

type HTTPServer struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"30s"`
}

type PaymentDB struct {
	Dsn string `yaml:"dsn" env:"PAYMENT_DB_DSN"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type Events struct {
	// kafka, nats or none
	Provider     string   `yaml:"provider" env:"EVENTS_PROVIDER" env-default:"none"`
	KafkaBrokers []string `yaml:"kafka_brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic        string   `yaml:"topic" env:"EVENTS_TOPIC" env-default:"trade-events"`
	NatsURL      string   `yaml:"nats_url" env:"NATS_URL"`
}

type Exchange struct {
	RateURL  string        `yaml:"rate_url" env:"EXCHANGE_RATE_URL"`
	CacheTTL time.Duration `yaml:"cache_ttl" env-default:"5m"`
	RPS      float64       `yaml:"rps" env-default:"5"`
}

type Stripe struct {
	APIKey         string        `yaml:"api_key" env:"STRIPE_API_KEY"`
	EndpointSecret string        `yaml:"endpoint_secret" env:"STRIPE_ENDPOINT_SECRET"`
	Currency       string        `yaml:"currency" env:"STRIPE_CURRENCY" env-default:"usd"`
	MinRecharge    string        `yaml:"min_recharge" env:"STRIPE_MIN_RECHARGE" env-default:"10"`
	MaxRecharge    string        `yaml:"max_recharge" env:"STRIPE_MAX_RECHARGE" env-default:"1000"`
	Tolerance      time.Duration `yaml:"tolerance" env-default:"5m"`
	// APIURL overrides the Stripe backend, empty means api.stripe.com
	APIURL string `yaml:"api_url" env:"STRIPE_API_URL"`
}

type Gateway struct {
	Active          []string      `yaml:"active" env:"GATEWAY_ACTIVE" env-separator:","`
	BaseURL         string        `yaml:"base_url" env:"BASE_URL"`
	ExternalTimeout time.Duration `yaml:"external_timeout" env-default:"10s"`
	DisplayCurrency string        `yaml:"display_currency" env-default:"CNY"`
}

type Tracing struct {
	Enabled  bool   `yaml:"enabled" env:"TRACING_ENABLED"`
	Endpoint string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
}

// RechargeBounds parses the configured min/max recharge amounts.
func (s Stripe) RechargeBounds() (decimal.Decimal, decimal.Decimal, error) {
	minAmount, err := decimal.NewFromString(s.MinRecharge)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("stripe.min_recharge: %w", err)
	}
	maxAmount, err := decimal.NewFromString(s.MaxRecharge)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("stripe.max_recharge: %w", err)
	}
	if minAmount.GreaterThan(maxAmount) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("stripe.min_recharge %s exceeds max_recharge %s", minAmount, maxAmount)
	}
	return minAmount, maxAmount, nil
}

// IsActive reports whether the named gateway is switched on.
func (g Gateway) IsActive(name string) bool {
	for _, active := range g.Active {
		if active == name {
			return true
		}
	}
	return false
}

func (h HTTPServer) Addr() string {
	return fmt.Sprintf("%s:%s", h.Host, h.Port)
}

func Load(configPath string) (*PaymentConfig, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	// YAML to struct object, env overrides file values
	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if _, _, err := cfg.Stripe.RechargeBounds(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *PaymentConfig {
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v\n", err)
	}

	return cfg
}
