package auth

import (
	"fmt"

	"github.com/BlackMission/sociallogin/internal/domain"
)

// Registry maps provider names to their OAuth2 configuration. It is filled
// once at startup and only read afterwards.
type Registry struct {
	order     []string
	providers map[string]domain.ProviderConfig
}

// NewRegistry creates a registry holding the given providers in order.
func NewRegistry(cfgs ...domain.ProviderConfig) (*Registry, error) {
	r := &Registry{
		providers: make(map[string]domain.ProviderConfig, len(cfgs)),
	}
	for _, c := range cfgs {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a provider, replacing any entry with the same name.
// A replaced entry keeps its original position.
func (r *Registry) Register(cfg domain.ProviderConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("%w: provider name is empty", domain.ErrInvalidProvider)
	}
	if _, exists := r.providers[cfg.Name]; !exists {
		r.order = append(r.order, cfg.Name)
	}
	cfg.Scopes = append([]string(nil), cfg.Scopes...)
	r.providers[cfg.Name] = cfg
	return nil
}

// Lookup returns a provider by name.
func (r *Registry) Lookup(name string) (domain.ProviderConfig, error) {
	p, ok := r.providers[name]
	if !ok {
		return domain.ProviderConfig{}, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, name)
	}
	p.Scopes = append([]string(nil), p.Scopes...)
	return p, nil
}

// Names returns the registered provider names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns every provider in registration order.
func (r *Registry) All() []domain.ProviderConfig {
	out := make([]domain.ProviderConfig, 0, len(r.order))
	for _, name := range r.order {
		p, _ := r.Lookup(name)
		out = append(out, p)
	}
	return out
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	return len(r.order)
}
