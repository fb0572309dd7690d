package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// HTTPRateProvider reads rates from a frankfurter-compatible endpoint:
// GET <baseURL>?from=CNY&to=USD -> {"base":"CNY","rates":{"USD":0.14}}
type HTTPRateProvider struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

type rateResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func NewHTTPRateProvider(baseURL string, requestsPerSecond float64) *HTTPRateProvider {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	return &HTTPRateProvider{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 10),
	}
}

func (p *HTTPRateProvider) GetName() string {
	return "http"
}

func (p *HTTPRateProvider) GetRate(ctx context.Context, source, target string) (decimal.Decimal, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("rate limiter: %w", err)
	}

	source = strings.ToUpper(source)
	target = strings.ToUpper(target)

	query := url.Values{}
	query.Set("from", source)
	query.Set("to", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed rateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse rate response: %w", err)
	}

	value, ok := parsed.Rates[target]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate %s/%s missing in response", source, target)
	}
	if !value.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive rate %s for %s/%s", value, source, target)
	}

	return value, nil
}
