// Error taxonomy for provider invocations. Four kinds, all of which
// propagate to the dispatcher as errors: none are retried internally and
// none are downgraded to a successful empty result.
//
//   - ValidationError: input fails the declared shape; no network call made.
//   - ConfigurationError: required credential missing; no request built.
//   - TransportError: network failure, non-2xx status, or timeout.
//   - ContentExtractionError: 2xx response but the expected content path is
//     absent or empty.
package llm

import "fmt"

// ValidationError reports caller input that fails the declared schema.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// ConfigurationError reports a required secret missing at call time.
// Credentials are never defaulted: absence is surfaced before any request
// is built.
type ConfigurationError struct {
	Missing string // name of the missing setting, e.g. "GEMINI_API_KEY"
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s is not set", e.Missing)
}

// TransportError reports a failed provider call: no response at all
// (Cause set), or a non-2xx status (Status set, Message extracted
// best-effort from the error body).
type TransportError struct {
	Status  int    // HTTP status, 0 for network-level failures
	Message string // provider error detail, may be empty
	Cause   error  // underlying error for network failures / timeouts
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider call failed: %v", e.Cause)
	}
	if e.Message == "" {
		return fmt.Sprintf("provider returned status %d", e.Status)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// ContentExtractionError reports a transport-successful response whose
// expected content path is absent or empty. Distinct from TransportError:
// the wire call succeeded, the payload shape did not.
type ContentExtractionError struct {
	Provider string
	Detail   string
}

func (e *ContentExtractionError) Error() string {
	return fmt.Sprintf("no extractable content in %s response: %s", e.Provider, e.Detail)
}
