// Optional YAML profile overrides. The compiled-in profile tables cover the
// normal case; this file lets an operator repoint a mode at a different
// model or preamble without rebuilding.
//
// Shape:
//
//	gemini:
//	  analysis:
//	    model: gemini-2.5-flash
//	    preamble: "..."
//	perplexity:
//	  research:
//	    model: sonar-deep-research
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matiasleandrokruk/deepscout/internal/infra/llm"
)

// ProfileOverrides holds per-provider mode→profile overrides parsed from the
// profiles file. Keys absent from the file leave the compiled-in defaults
// untouched.
type ProfileOverrides struct {
	Gemini     map[llm.Mode]llm.Profile
	Perplexity map[llm.Mode]llm.Profile
}

type profileEntry struct {
	Model    string `yaml:"model"`
	Preamble string `yaml:"preamble"`
}

type profileFile struct {
	Gemini     map[string]profileEntry `yaml:"gemini"`
	Perplexity map[string]profileEntry `yaml:"perplexity"`
}

// LoadProfiles reads and parses the overrides file at path.
func LoadProfiles(path string) (*ProfileOverrides, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var pf profileFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parse profiles file %s: %w", path, err)
	}

	return &ProfileOverrides{
		Gemini:     toProfiles(pf.Gemini),
		Perplexity: toProfiles(pf.Perplexity),
	}, nil
}

func toProfiles(entries map[string]profileEntry) map[llm.Mode]llm.Profile {
	out := make(map[llm.Mode]llm.Profile, len(entries))
	for mode, e := range entries {
		out[llm.Mode(mode)] = llm.Profile{Model: e.Model, SystemPreamble: e.Preamble}
	}
	return out
}
