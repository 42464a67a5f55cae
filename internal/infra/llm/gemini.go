// Gemini HTTP adapter: the profile-driven single-shot path.
// One POST to {base}/v1beta/models/{model}:generateContent per invocation,
// credential transmitted as a URL parameter.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	// DefaultGeminiBaseURL is the production endpoint root.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

	geminiKeyEnv      = "GEMINI_API_KEY"
	geminiContentPath = "candidates.0.content.parts.0.text"
)

// DefaultGeminiProfiles returns the compiled-in mode→profile table for the
// Gemini adapter. Research is the designated fallback.
func DefaultGeminiProfiles() ProfileTable {
	t, _ := NewProfileTable(map[Mode]Profile{
		ModeResearch: {
			Model:          "gemini-2.5-pro",
			SystemPreamble: "You are a meticulous research assistant. Investigate the question thoroughly and answer with well-sourced, factual detail.",
		},
		ModeAnalysis: {
			Model:          "gemini-2.5-flash",
			SystemPreamble: "You are an analytical assistant. Break the problem down, weigh the evidence, and present a structured conclusion.",
		},
		ModeCreative: {
			Model:          "gemini-2.5-flash",
			SystemPreamble: "You are a creative collaborator. Explore unconventional angles and generate original ideas.",
		},
	}, ModeResearch)
	return t
}

// GeminiProvider implements ResearchProvider against the Gemini REST API.
type GeminiProvider struct {
	apiKey   string
	baseURL  string
	profiles ProfileTable
	client   *http.Client
	log      *zap.Logger
}

// NewGeminiProvider creates a GeminiProvider.
//
// Unlike the Perplexity adapter this path applies no explicit wall-clock
// deadline of its own: it is bounded only by the caller's context and the
// transport defaults. The asymmetry is inherited behavior kept visible on
// purpose; see DESIGN.md before changing it.
func NewGeminiProvider(apiKey, baseURL string, profiles ProfileTable, log *zap.Logger) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	return &GeminiProvider{
		apiKey:   apiKey,
		baseURL:  baseURL,
		profiles: profiles,
		client:   &http.Client{},
		log:      log,
	}
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string { return "gemini" }

// ─── internal Gemini JSON types ─────────────────────────────────────────────

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

// ─── ResearchProvider implementation ────────────────────────────────────────

// Research performs a single generateContent call. The profile selected by
// req.Mode decides the model and system instruction; depth maps linearly to
// temperature with out-of-range values clamped, never rejected.
func (p *GeminiProvider) Research(ctx context.Context, req ResearchRequest) (*ResearchResult, error) {
	if p.apiKey == "" {
		return nil, &ConfigurationError{Missing: geminiKeyEnv}
	}
	if req.Query == "" {
		return nil, &ValidationError{Field: "query", Reason: "must be a non-empty string"}
	}

	profile := p.profiles.Resolve(req.Mode)

	body, err := sonic.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Query}}},
		},
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: profile.SystemPreamble}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     req.Temperature(),
			MaxOutputTokens: req.OutputCap(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, profile.Model)
	callURL := endpoint + "?key=" + url.QueryEscape(p.apiKey)

	// Pre-call record. The key rides in the URL, so the logged endpoint
	// carries the masked form only.
	p.log.Info("gemini request",
		zap.String("endpoint", endpoint+"?key="+MaskSecret(p.apiKey)),
		zap.String("model", profile.Model),
		zap.Float64("temperature", req.Temperature()),
		zap.Int("max_output_tokens", req.OutputCap()),
		zap.String("query_preview", PreviewText(req.Query)),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, callURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	// Post-call record: status and size only, never the body.
	p.log.Info("gemini response",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(respBody)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Status:  resp.StatusCode,
			Message: extractErrorDetail(respBody),
		}
	}

	text := gjson.GetBytes(respBody, geminiContentPath)
	if !text.Exists() || text.String() == "" {
		return nil, &ContentExtractionError{Provider: p.Name(), Detail: "response has no candidate text"}
	}

	return &ResearchResult{Text: text.String(), Model: profile.Model}, nil
}

// extractErrorDetail parses a provider error body best-effort. A body that
// is not the expected error shape yields an empty detail rather than a
// secondary parsing failure.
func extractErrorDetail(body []byte) string {
	return gjson.GetBytes(body, "error.message").String()
}
