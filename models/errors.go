package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"

	// Extraction-side error codes.
	ErrCodeFetchFailed     = "FETCH_FAILED"
	ErrCodeSourceForbidden = "SOURCE_FORBIDDEN"
	ErrCodeSourceRateLimit = "SOURCE_RATE_LIMITED"
	ErrCodeContentTooShort = "CONTENT_TOO_SHORT"

	// Generation-side error codes.
	ErrCodeGeneratorFailure     = "GENERATOR_FAILURE"
	ErrCodeGeneratorAuth        = "GENERATOR_AUTH_FAILURE"
	ErrCodeGeneratorRateLimited = "GENERATOR_RATE_LIMITED"
	ErrCodeGenerationParse      = "GENERATION_PARSE_FAILED"
	ErrCodeGenerationShortfall  = "GENERATION_COUNT_SHORTFALL"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FetchKind classifies a fetch failure so the API layer can pick a response
// code without re-deriving network semantics.
type FetchKind string

const (
	FetchForbidden          FetchKind = "forbidden"
	FetchNotFound           FetchKind = "not_found"
	FetchRateLimited        FetchKind = "rate_limited"
	FetchServerError        FetchKind = "server_error"
	FetchOtherHTTP          FetchKind = "other_http"
	FetchNetworkUnreachable FetchKind = "network_unreachable"
	FetchDNSFailure         FetchKind = "dns_failure"
	FetchConnectionRefused  FetchKind = "connection_refused"
	FetchTimeout            FetchKind = "timeout"
	FetchTLSFailure         FetchKind = "tls_failure"
	FetchUnknown            FetchKind = "unknown"
)

// FetchError is any network/HTTP/DNS/timeout/TLS problem while fetching a
// page. StatusCode is zero when no response was received.
type FetchError struct {
	Kind       FetchKind
	URL        string
	StatusCode int
	Detail     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s: %s", e.URL, e.Kind, e.Detail)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ContentError signals that an extracted page carried too little usable text.
// It is raised by the caller applying its minimum-length policy, never by the
// extractor itself.
type ContentError struct {
	URL     string
	Length  int
	Minimum int
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("content too short for %s: %d chars (minimum %d)", e.URL, e.Length, e.Minimum)
}

// InputError signals bad synthesizer arguments: empty input text or a
// missing API credential.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// UpstreamError is a generator-provider failure. Retriable failures (server
// overload, rate limits, transport errors) are eligible for automatic retry;
// non-retriable ones (bad credential, malformed request) surface immediately.
type UpstreamError struct {
	Retriable  bool
	StatusCode int
	Detail     string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generator failure (retriable=%t): %s: %v", e.Retriable, e.Detail, e.Err)
	}
	return fmt.Sprintf("generator failure (retriable=%t): %s", e.Retriable, e.Detail)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError means the generator response could not be decoded into the
// expected structure. FragmentLen carries the offending fragment's length
// rather than its content to bound error payload size. ItemIndex is the
// index of a structurally invalid item, or -1 when the failure is not tied
// to a specific item.
type ParseError struct {
	Detail      string
	FragmentLen int
	ItemIndex   int
}

func (e *ParseError) Error() string {
	if e.ItemIndex >= 0 {
		return fmt.Sprintf("parse generator output: %s (item %d)", e.Detail, e.ItemIndex)
	}
	return fmt.Sprintf("parse generator output: %s (fragment length %d)", e.Detail, e.FragmentLen)
}

// CountError means the generator delivered fewer items than required after
// trimming excess. Under-generation is never silently accepted.
type CountError struct {
	Requested int
	Got       int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("generator returned %d items, %d required", e.Got, e.Requested)
}
