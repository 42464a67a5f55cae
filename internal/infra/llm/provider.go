// ResearchProvider interface. Adapters (Gemini, Perplexity) implement this
// so the server layer is never coupled to a specific vendor wire format.
package llm

import "context"

// ResearchProvider is the vendor-agnostic contract every adapter satisfies:
// validate → build request → invoke → normalize, in a single pass. Exactly
// one outbound call per invocation, no implicit retries.
//
// Implementations hold no cross-invocation mutable state and are safe for
// concurrent use.
type ResearchProvider interface {
	// Research performs one provider call and returns the normalized result.
	// Failures surface as one of the llm error kinds (ValidationError,
	// ConfigurationError, TransportError, ContentExtractionError).
	Research(ctx context.Context, req ResearchRequest) (*ResearchResult, error)

	// Name returns the provider identifier, e.g. "gemini" or "perplexity".
	Name() string
}
