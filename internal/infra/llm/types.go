// Package llm defines the provider-agnostic research request/response types
// shared between the provider interface and adapters.
package llm

// Message represents a single turn in a conversation (role + content).
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// Mode selects which provider profile governs an invocation.
type Mode string

const (
	ModeResearch Mode = "research"
	ModeAnalysis Mode = "analysis"
	ModeCreative Mode = "creative"
)

// Modes lists every recognized mode, in declaration order.
// Used by the server layer to declare the enum in tool schemas.
func Modes() []Mode {
	return []Mode{ModeResearch, ModeAnalysis, ModeCreative}
}

const (
	// defaultTemperature applies when no depth is supplied.
	defaultTemperature = 0.7
	// defaultMaxOutputTokens caps generated length when the caller gives none.
	defaultMaxOutputTokens = 2048
	// depthScale maps the caller-facing depth range [0,10] onto [0,1].
	depthScale = 10
)

// ResearchRequest is the validated, provider-agnostic input to an adapter.
type ResearchRequest struct {
	// Query is the primary prompt. Ignored entirely when History is non-empty
	// (the conversation-driven adapter uses History verbatim).
	Query string

	// History is an optional ordered conversation. When non-empty it
	// overrides Query for request construction.
	History []Message

	// Mode selects the provider profile. Empty or unrecognized values
	// resolve to the profile table's default.
	Mode Mode

	// Depth, when set, maps linearly to the provider temperature:
	// clamp(depth/10, 0, 1). Out-of-range magnitudes are clamped, not
	// rejected; shape errors are hard failures, magnitude is soft.
	Depth *float64

	// MaxOutputTokens caps generated length; 0 means the provider default.
	MaxOutputTokens int
}

// Temperature derives the provider "creativity" value from Depth.
func (r ResearchRequest) Temperature() float64 {
	if r.Depth == nil {
		return defaultTemperature
	}
	t := *r.Depth / depthScale
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// OutputCap returns the effective output-length ceiling.
func (r ResearchRequest) OutputCap() int {
	if r.MaxOutputTokens > 0 {
		return r.MaxOutputTokens
	}
	return defaultMaxOutputTokens
}

// ResearchResult is the normalized outcome of a successful invocation.
// Text is always non-empty: a response without extractable content is a
// ContentExtractionError, never an empty success.
type ResearchResult struct {
	Text      string
	Model     string   // the model that actually served the request
	Citations []string // raw citation references, provider order, may be nil
}

// Profile is the static per-mode provider configuration.
type Profile struct {
	Model          string // backend model identifier serving this mode
	SystemPreamble string // default system instruction when no history is given
}

// ProfileTable maps modes to profiles. It is immutable after construction so
// multiple provider configurations can coexist (adapters never share state).
type ProfileTable struct {
	profiles map[Mode]Profile
	fallback Mode
}

// NewProfileTable builds a table from the given profiles and a fallback mode.
// The fallback must be present in the map: every lookup, including
// unrecognized modes, must resolve to some profile.
func NewProfileTable(profiles map[Mode]Profile, fallback Mode) (ProfileTable, error) {
	if _, ok := profiles[fallback]; !ok {
		return ProfileTable{}, &ValidationError{Field: "fallback", Reason: "fallback mode " + string(fallback) + " has no profile entry"}
	}
	ps := make(map[Mode]Profile, len(profiles))
	for k, v := range profiles {
		ps[k] = v
	}
	return ProfileTable{profiles: ps, fallback: fallback}, nil
}

// Resolve returns the profile for mode, falling back to the default profile
// for empty or unrecognized modes. Never fails.
func (t ProfileTable) Resolve(mode Mode) Profile {
	if p, ok := t.profiles[mode]; ok {
		return p
	}
	return t.profiles[t.fallback]
}

// Merge returns a copy of the table with the given per-mode overrides
// applied. Only modes already present in the table are overridden; unknown
// keys are ignored so a config file cannot widen the mode enum.
func (t ProfileTable) Merge(overrides map[Mode]Profile) ProfileTable {
	ps := make(map[Mode]Profile, len(t.profiles))
	for k, v := range t.profiles {
		ps[k] = v
	}
	for k, v := range overrides {
		if _, ok := ps[k]; !ok {
			continue
		}
		base := ps[k]
		if v.Model != "" {
			base.Model = v.Model
		}
		if v.SystemPreamble != "" {
			base.SystemPreamble = v.SystemPreamble
		}
		ps[k] = base
	}
	return ProfileTable{profiles: ps, fallback: t.fallback}
}
