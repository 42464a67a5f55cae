// Perplexity HTTP adapter: the conversation-driven path.
// One POST to {base}/chat/completions per invocation, bearer credential in
// the Authorization header, hard 30s wall-clock timeout, citations appended
// to the normalized text.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	// DefaultPerplexityBaseURL is the production endpoint root.
	DefaultPerplexityBaseURL = "https://api.perplexity.ai"

	// perplexityCallTimeout bounds each outbound call. On expiry the request
	// is cancelled and surfaces as a TransportError.
	perplexityCallTimeout = 30 * time.Second

	perplexityKeyEnv      = "PERPLEXITY_API_KEY"
	perplexityContentPath = "choices.0.message.content"
)

// DefaultPerplexityProfiles returns the compiled-in mode→profile table for
// the Perplexity adapter. Research is the designated fallback.
func DefaultPerplexityProfiles() ProfileTable {
	t, _ := NewProfileTable(map[Mode]Profile{
		ModeResearch: {
			Model:          "sonar-deep-research",
			SystemPreamble: "You are an exhaustive research agent. Search broadly, cross-check sources, and cite everything you rely on.",
		},
		ModeAnalysis: {
			Model:          "sonar-reasoning-pro",
			SystemPreamble: "You are a rigorous analyst. Reason step by step over the available evidence and cite your sources.",
		},
		ModeCreative: {
			Model:          "sonar-pro",
			SystemPreamble: "You are an inventive research partner. Surface surprising connections while staying grounded in cited sources.",
		},
	}, ModeResearch)
	return t
}

// PerplexityProvider implements ResearchProvider against the Perplexity
// chat completions API.
type PerplexityProvider struct {
	apiKey   string
	baseURL  string
	profiles ProfileTable
	client   *http.Client
	timeout  time.Duration
	log      *zap.Logger
}

// NewPerplexityProvider creates a PerplexityProvider with the 30s call
// timeout.
func NewPerplexityProvider(apiKey, baseURL string, profiles ProfileTable, log *zap.Logger) *PerplexityProvider {
	if baseURL == "" {
		baseURL = DefaultPerplexityBaseURL
	}
	return &PerplexityProvider{
		apiKey:   apiKey,
		baseURL:  baseURL,
		profiles: profiles,
		client:   &http.Client{},
		timeout:  perplexityCallTimeout,
		log:      log,
	}
}

// Name returns the provider identifier.
func (p *PerplexityProvider) Name() string { return "perplexity" }

// ─── internal Perplexity JSON types ─────────────────────────────────────────

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityRequest struct {
	Model    string              `json:"model"`
	Messages []perplexityMessage `json:"messages"`
}

// ─── ResearchProvider implementation ────────────────────────────────────────

// Research performs a single chat completions call. When req.History is
// non-empty it is used verbatim as the message list and req.Query is never
// referenced; otherwise a two-message [system, user] conversation is
// synthesized from the profile preamble and the query.
func (p *PerplexityProvider) Research(ctx context.Context, req ResearchRequest) (*ResearchResult, error) {
	if p.apiKey == "" {
		return nil, &ConfigurationError{Missing: perplexityKeyEnv}
	}
	if len(req.History) == 0 && req.Query == "" {
		return nil, &ValidationError{Field: "query", Reason: "required when conversation_history is empty"}
	}

	profile := p.profiles.Resolve(req.Mode)
	messages := buildMessages(req, profile)

	body, err := sonic.Marshal(perplexityRequest{
		Model:    profile.Model,
		Messages: messages,
	})
	if err != nil {
		return nil, fmt.Errorf("perplexity: marshal request: %w", err)
	}

	endpoint := p.baseURL + "/chat/completions"

	p.log.Info("perplexity request",
		zap.String("endpoint", endpoint),
		zap.String("api_key", MaskSecret(p.apiKey)),
		zap.String("model", profile.Model),
		zap.Int("messages", len(messages)),
		zap.String("query_preview", PreviewText(messages[len(messages)-1].Content)),
	)

	// Hard wall-clock bound on the one outbound call. The cancel func
	// releases the deadline timer on every exit path, success or failure.
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("perplexity: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	p.log.Info("perplexity response",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(respBody)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Status:  resp.StatusCode,
			Message: extractErrorDetail(respBody),
		}
	}

	text := gjson.GetBytes(respBody, perplexityContentPath)
	if !text.Exists() || text.String() == "" {
		return nil, &ContentExtractionError{Provider: p.Name(), Detail: "response has no message content"}
	}

	citations := extractCitations(respBody)
	return &ResearchResult{
		Text:      AppendCitations(text.String(), citations),
		Model:     profile.Model,
		Citations: citations,
	}, nil
}

// buildMessages materializes the wire message list. History, when present,
// wins outright; Query is not consulted at all in that case.
func buildMessages(req ResearchRequest, profile Profile) []perplexityMessage {
	if len(req.History) > 0 {
		msgs := make([]perplexityMessage, len(req.History))
		for i, m := range req.History {
			msgs[i] = perplexityMessage(m)
		}
		return msgs
	}
	return []perplexityMessage{
		{Role: "system", Content: profile.SystemPreamble},
		{Role: "user", Content: req.Query},
	}
}

// extractCitations pulls the citations array, if any, from the raw payload.
func extractCitations(body []byte) []string {
	raw := gjson.GetBytes(body, "citations")
	if !raw.IsArray() {
		return nil
	}
	var out []string
	raw.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}

// AppendCitations appends a numbered citation block to text, preserving
// provider order, 1-indexed. Empty citation lists leave text untouched.
func AppendCitations(text string, citations []string) string {
	if len(citations) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\nCitations:")
	for i, c := range citations {
		fmt.Fprintf(&b, "\n[%d] %s", i+1, c)
	}
	return b.String()
}
