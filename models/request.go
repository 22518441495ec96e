package models

// GenerateRequest is the payload for POST /api/v1/generate.
type GenerateRequest struct {
	// URL is the page to extract and synthesize FAQs from. Required.
	// A missing scheme is defaulted to https:// before fetching.
	URL string `json:"url" binding:"required"`

	// Count is the desired number of FAQ items. Values outside [5, 10]
	// are clamped; zero means the default of 5.
	Count int `json:"count,omitempty"`

	// Refresh bypasses the extraction cache and any stored page snapshot,
	// forcing a fresh fetch.
	Refresh bool `json:"refresh,omitempty"`

	// WebhookURL, when set, receives a signed faqs.generated event after
	// the items are persisted.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`
}

// ExtractRequest is the payload for POST /api/v1/extract.
type ExtractRequest struct {
	// URL is the page to extract. Required.
	URL string `json:"url" binding:"required"`

	// Mode controls the extraction strategy.
	// "structured" (default): goquery pipeline with headings/paragraphs.
	// "readability": Mozilla Readability main-content extraction.
	Mode string `json:"mode,omitempty" binding:"omitempty,oneof=structured readability"`

	// CSSSelector optionally narrows extraction to matched elements before
	// the pipeline runs. Ignored in readability mode.
	CSSSelector string `json:"css_selector,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *ExtractRequest) Defaults() {
	if r.Mode == "" {
		r.Mode = "structured"
	}
}

// UpdateFAQRequest is the payload for PATCH /api/v1/faqs/:id. Nil fields are
// left unchanged.
type UpdateFAQRequest struct {
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
}
