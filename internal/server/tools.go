// Tool registration: operation names, declared parameter schemas, and the
// execute handlers that bridge MCP calls into the provider adapters.
//
// Each operation is bound to exactly one provider. Input shape and enum
// membership are enforced by the declared schema before a handler runs;
// numeric magnitude (depth) is deliberately left unconstrained here and
// soft-clamped by the request builder instead.
package server

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/matiasleandrokruk/deepscout/internal/infra/llm"
)

const (
	toolDeepResearch    = "deep_research"
	toolFocusedResearch = "focused_research"

	ProviderPerplexity = "perplexity"
	ProviderGemini     = "gemini"
)

type historyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepResearchInput struct {
	Query               string           `json:"query,omitempty"`
	ConversationHistory []historyMessage `json:"conversation_history,omitempty"`
	Mode                string           `json:"mode,omitempty"`
}

type focusedResearchInput struct {
	Query           string   `json:"query"`
	Mode            string   `json:"mode,omitempty"`
	Depth           *float64 `json:"depth,omitempty"`
	MaxOutputTokens int      `json:"max_output_tokens,omitempty"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolDeepResearch,
		Description: "Run an exhaustive, web-grounded research query. Answers include numbered citations. Supply either a query or a full conversation_history.",
		InputSchema: deepResearchSchema(),
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(true), // calls an external AI service
		},
	}, s.handleDeepResearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolFocusedResearch,
		Description: "Run a single-shot research or analysis prompt with tunable depth and output length.",
		InputSchema: focusedResearchSchema(),
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(true),
		},
	}, s.handleFocusedResearch)
}

func (s *Server) handleDeepResearch(ctx context.Context, _ *mcp.CallToolRequest, in deepResearchInput) (*mcp.CallToolResult, any, error) {
	return s.dispatch(ctx, toolDeepResearch, ProviderPerplexity, llm.ResearchRequest{
		Query:   in.Query,
		History: toMessages(in.ConversationHistory),
		Mode:    llm.Mode(in.Mode),
	})
}

func (s *Server) handleFocusedResearch(ctx context.Context, _ *mcp.CallToolRequest, in focusedResearchInput) (*mcp.CallToolResult, any, error) {
	return s.dispatch(ctx, toolFocusedResearch, ProviderGemini, llm.ResearchRequest{
		Query:           in.Query,
		Mode:            llm.Mode(in.Mode),
		Depth:           in.Depth,
		MaxOutputTokens: in.MaxOutputTokens,
	})
}

// dispatch resolves the provider bound to the operation, performs the single
// research call, and maps the outcome to the uniform result shape: one text
// content element on success, a propagated error otherwise. Errors are
// logged once, then surfaced, never downgraded to an empty success.
func (s *Server) dispatch(ctx context.Context, tool, providerKey string, rreq llm.ResearchRequest) (*mcp.CallToolResult, any, error) {
	log := s.log.With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("tool", tool),
	)

	provider, err := s.router.Route(providerKey)
	if err != nil {
		log.Error("provider resolution failed", zap.Error(err))
		return nil, nil, err
	}

	res, err := provider.Research(ctx, rreq)
	if err != nil {
		// Adapters never place credentials in error messages, so the
		// diagnostic line is safe to emit as-is.
		log.Error("research call failed",
			zap.String("provider", provider.Name()),
			zap.Error(err),
		)
		return nil, nil, err
	}

	log.Info("research call complete",
		zap.String("provider", provider.Name()),
		zap.String("model", res.Model),
		zap.Int("text_chars", len(res.Text)),
		zap.Int("citations", len(res.Citations)),
	)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: res.Text}},
	}, nil, nil
}

func toMessages(history []historyMessage) []llm.Message {
	if len(history) == 0 {
		return nil
	}
	out := make([]llm.Message, len(history))
	for i, m := range history {
		out[i] = llm.Message(m)
	}
	return out
}

// ─── declared parameter schemas ─────────────────────────────────────────────

func modeEnum() []any {
	modes := llm.Modes()
	out := make([]any, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}
	return out
}

func deepResearchSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Research question. Required unless conversation_history is supplied.",
			},
			"conversation_history": {
				Type:        "array",
				Description: "Ordered conversation. When present it replaces query entirely for request construction.",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"role":    {Type: "string", Enum: []any{"system", "user", "assistant"}},
						"content": {Type: "string"},
					},
					Required: []string{"role", "content"},
				},
			},
			"mode": {
				Type:        "string",
				Enum:        modeEnum(),
				Description: "Research profile. Defaults to research.",
			},
		},
		// query/conversation_history exclusivity is intentionally not a
		// schema rule: history silently wins when both are supplied.
	}
}

func focusedResearchSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Prompt to research or analyze.",
			},
			"mode": {
				Type:        "string",
				Enum:        modeEnum(),
				Description: "Research profile. Defaults to research.",
			},
			"depth": {
				Type:        "number",
				Description: "Creativity dial, nominally 0-10. Out-of-range values are clamped, not rejected.",
			},
			"max_output_tokens": {
				Type:        "integer",
				Description: "Output length cap. Defaults to 2048.",
			},
		},
		Required: []string{"query"},
	}
}

func boolPtr(b bool) *bool { return &b }
