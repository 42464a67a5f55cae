// Provider router: resolves the ResearchProvider bound to an operation.
// Each operation is bound to exactly one provider; there is no failover
// and no fallback chain.
package llm

import "fmt"

// Router holds the registered providers, keyed by provider name.
type Router struct {
	providers       map[string]ResearchProvider
	defaultProvider string
}

// NewRouter creates a Router with an initial set of providers and a default
// key for callers that do not name one.
func NewRouter(providers map[string]ResearchProvider, defaultProvider string) *Router {
	// defensive copy so the caller cannot mutate the internal map.
	ps := make(map[string]ResearchProvider, len(providers))
	for k, v := range providers {
		ps[k] = v
	}
	return &Router{providers: ps, defaultProvider: defaultProvider}
}

// Register adds (or replaces) a provider under the given key.
// Useful for tests that substitute stub providers.
func (r *Router) Register(key string, p ResearchProvider) {
	r.providers[key] = p
}

// Route returns the provider registered under key, or the default provider
// when key is empty. An unregistered key is an error.
func (r *Router) Route(key string) (ResearchProvider, error) {
	if key == "" {
		key = r.defaultProvider
	}
	p, ok := r.providers[key]
	if !ok {
		return nil, fmt.Errorf("llm router: provider %q not registered (available: %v)", key, r.keys())
	}
	return p, nil
}

// keys returns the registered provider names (for error messages).
func (r *Router) keys() []string {
	out := make([]string, 0, len(r.providers))
	for k := range r.providers {
		out = append(out, k)
	}
	return out
}
