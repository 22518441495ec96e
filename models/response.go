package models

// TimingInfo breaks down the time spent in each pipeline phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent fetching and extracting the page.
	FetchMs int64 `json:"fetch_ms,omitempty"`

	// SynthesisMs is the time spent in the generator round trip,
	// including retries.
	SynthesisMs int64 `json:"synthesis_ms,omitempty"`
}

// GenerateResponse is the response for POST /api/v1/generate.
type GenerateResponse struct {
	// Success indicates whether generation completed without errors.
	Success bool `json:"success"`

	// SourceURL is the normalized URL the FAQs were generated from.
	SourceURL string `json:"source_url,omitempty"`

	// Count is the number of items returned; equals the clamped
	// requested count on success.
	Count int `json:"count,omitempty"`

	// Items are the persisted draft FAQ records.
	Items []FAQItem `json:"items,omitempty"`

	// CacheStatus indicates whether the page text came from cache.
	// Values: "hit", "miss", or empty.
	CacheStatus string `json:"cache_status,omitempty"`

	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// ExtractResponse is the response for POST /api/v1/extract.
type ExtractResponse struct {
	Success  bool               `json:"success"`
	Document *ExtractedDocument `json:"document,omitempty"`
	Timing   TimingInfo         `json:"timing"`
	Error    *ErrorDetail       `json:"error,omitempty"`
}

// FAQResponse wraps a single FAQ record.
type FAQResponse struct {
	Success bool         `json:"success"`
	Item    *FAQItem     `json:"item,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// FAQListResponse wraps a list of FAQ records.
type FAQListResponse struct {
	Success bool         `json:"success"`
	Total   int          `json:"total"`
	Items   []FAQItem    `json:"items"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// PageListResponse wraps stored crawled-page snapshots.
type PageListResponse struct {
	Success bool          `json:"success"`
	Total   int           `json:"total"`
	Pages   []CrawledPage `json:"pages"`
	Error   *ErrorDetail  `json:"error,omitempty"`
}

// ErrorResponse is the bare failure envelope used by middleware and
// endpoints without a richer payload.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"` // "healthy" or "degraded"
	Uptime  string `json:"uptime"`
	Store   string `json:"store"` // "connected" or "unreachable"
	Version string `json:"version"`
}
