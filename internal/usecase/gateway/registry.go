package gateway

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

// Registry maps gateway names to their integrations. Adding a processor
// means registering one more domain.PaymentGateway.
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]domain.PaymentGateway
}

func NewRegistry(gateways ...domain.PaymentGateway) *Registry {
	r := &Registry{gateways: make(map[string]domain.PaymentGateway)}
	for _, gw := range gateways {
		r.Register(gw)
	}
	return r
}

func (r *Registry) Register(gw domain.PaymentGateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[strings.ToLower(gw.Name())] = gw
}

// Get returns the named gateway if it is registered and enabled.
func (r *Registry) Get(name string) (domain.PaymentGateway, error) {
	r.mu.RLock()
	gw, ok := r.gateways[strings.ToLower(name)]
	r.mu.RUnlock()

	if !ok || !gw.Enabled() {
		return nil, fmt.Errorf("%w: %s", domain.ErrGatewayDisabled, name)
	}
	return gw, nil
}

// Enabled lists enabled gateways ordered by name.
func (r *Registry) Enabled() []domain.PaymentGateway {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.PaymentGateway, 0, len(r.gateways))
	for _, gw := range r.gateways {
		if gw.Enabled() {
			result = append(result, gw)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}
