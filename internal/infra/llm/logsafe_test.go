// Unit tests for the log-safety helpers. The masking behavior is a hard
// security contract: full credentials must never appear in observable output.
package llm

import (
	"strings"
	"testing"
)

// ============================================================================
// MaskSecret tests
// ============================================================================

func TestMaskSecret_LongSecret_RevealsPrefixAndSuffixOnly(t *testing.T) {
	t.Parallel()

	secret := "sk-abcdefghijklmnopqrstuvwxyz0123"
	masked := MaskSecret(secret)

	if strings.Contains(masked, secret) {
		t.Fatalf("masked output %q contains the full secret", masked)
	}
	if !strings.HasPrefix(masked, secret[:4]) {
		t.Errorf("masked output %q should start with the first 4 chars", masked)
	}
	if !strings.HasSuffix(masked, secret[len(secret)-4:]) {
		t.Errorf("masked output %q should end with the last 4 chars", masked)
	}
	if len(masked) >= len(secret) {
		t.Errorf("masked output %q is not shorter than the secret", masked)
	}
}

func TestMaskSecret_ShortSecret_FullyMasked(t *testing.T) {
	t.Parallel()

	for _, secret := range []string{"a", "12345678"} {
		masked := MaskSecret(secret)
		if strings.Contains(masked, secret[:1]) {
			t.Errorf("short secret %q leaked into mask %q", secret, masked)
		}
		if masked != "***" {
			t.Errorf("MaskSecret(%q) = %q, want '***'", secret, masked)
		}
	}
}

func TestMaskSecret_Empty(t *testing.T) {
	t.Parallel()

	if got := MaskSecret(""); got != "" {
		t.Errorf("MaskSecret(\"\") = %q, want empty", got)
	}
}

// ============================================================================
// PreviewText tests
// ============================================================================

func TestPreviewText_ShortText_Verbatim(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("a", 50)
	if got := PreviewText(text); got != text {
		t.Errorf("PreviewText(50 chars) = %q, want verbatim input", got)
	}
	// Exactly at the limit is still verbatim.
	text = strings.Repeat("b", 100)
	if got := PreviewText(text); got != text {
		t.Errorf("PreviewText(100 chars) = %q, want verbatim input", got)
	}
}

func TestPreviewText_LongText_TruncatedWithTotal(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("x", 250)
	got := PreviewText(text)

	want := strings.Repeat("x", 100) + "... (250 chars total)"
	if got != want {
		t.Errorf("PreviewText(250 chars) = %q, want %q", got, want)
	}
}

func TestPreviewText_CountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("ü", 120)
	got := PreviewText(text)
	want := strings.Repeat("ü", 100) + "... (120 chars total)"
	if got != want {
		t.Errorf("PreviewText(multibyte) = %q, want %q", got, want)
	}
}
