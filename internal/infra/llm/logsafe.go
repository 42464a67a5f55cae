// Log-safety helpers shared by the adapters. Hard contract: a full
// credential must never appear in any observable output, on any path.
package llm

import "fmt"

const (
	// previewLimit is the maximum number of runes of primary text content
	// included in a pre-call observability record.
	previewLimit = 100
	// maskMinLen: secrets at or below this length are fully replaced,
	// revealing a prefix+suffix of a short secret would leak most of it.
	maskMinLen = 8
)

// MaskSecret truncates a credential for logging: a short prefix and suffix
// are kept, the remainder is replaced. Short secrets are masked entirely.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= maskMinLen {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// PreviewText returns the full text when it is at most previewLimit runes,
// otherwise the first previewLimit runes plus a suffix stating the total
// length.
func PreviewText(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return fmt.Sprintf("%s... (%d chars total)", string(runes[:previewLimit]), len(runes))
}
