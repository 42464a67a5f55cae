// Unit tests for Router.
// Uses stub ResearchProvider implementations: no HTTP needed.
package llm

import (
	"context"
	"testing"
)

// stubProvider is a minimal ResearchProvider stub for router testing.
type stubProvider struct{ name string }

func (s *stubProvider) Research(_ context.Context, _ ResearchRequest) (*ResearchResult, error) {
	return &ResearchResult{Text: "stub", Model: s.name}, nil
}
func (s *stubProvider) Name() string { return s.name }

func TestRouter_Route_ByKey(t *testing.T) {
	t.Parallel()

	r := NewRouter(map[string]ResearchProvider{
		"gemini":     &stubProvider{name: "gemini"},
		"perplexity": &stubProvider{name: "perplexity"},
	}, "perplexity")

	p, err := r.Route("gemini")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if p.Name() != "gemini" {
		t.Errorf("Route(\"gemini\") returned %q", p.Name())
	}
}

func TestRouter_Route_EmptyKey_UsesDefault(t *testing.T) {
	t.Parallel()

	r := NewRouter(map[string]ResearchProvider{
		"perplexity": &stubProvider{name: "perplexity"},
	}, "perplexity")

	p, err := r.Route("")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if p.Name() != "perplexity" {
		t.Errorf("default route returned %q", p.Name())
	}
}

func TestRouter_Route_UnknownKey_ReturnsError(t *testing.T) {
	t.Parallel()

	r := NewRouter(map[string]ResearchProvider{}, "perplexity")
	if _, err := r.Route("gemini"); err == nil {
		t.Error("expected error for unregistered provider, got nil")
	}
}

func TestRouter_RegisterAndRoute_NewProvider(t *testing.T) {
	t.Parallel()

	r := NewRouter(map[string]ResearchProvider{}, "gemini")
	r.Register("gemini", &stubProvider{name: "gemini"})

	p, err := r.Route("gemini")
	if err != nil {
		t.Fatalf("Route after Register failed: %v", err)
	}
	if p.Name() != "gemini" {
		t.Errorf("expected gemini, got %q", p.Name())
	}
}
