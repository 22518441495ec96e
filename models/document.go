package models

// Headings holds the page's heading text per level, each list in document
// order. Duplicates are permitted; empty headings are dropped.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
	H4 []string `json:"h4"`
	H5 []string `json:"h5"`
	H6 []string `json:"h6"`
}

// Count returns the total number of collected headings across all levels.
func (h Headings) Count() int {
	return len(h.H1) + len(h.H2) + len(h.H3) + len(h.H4) + len(h.H5) + len(h.H6)
}

// DocumentMetadata carries derived counts and the capture timestamp.
type DocumentMetadata struct {
	HeadingCount      int    `json:"heading_count"`
	ParagraphCount    int    `json:"paragraph_count"`
	RawTextLength     int    `json:"raw_text_length"`
	CleanedTextLength int    `json:"cleaned_text_length"`
	TokenEstimate     int    `json:"token_estimate"`
	ExtractedAt       string `json:"extracted_at"` // ISO 8601
}

// ExtractedDocument is the structured result of a single extraction call.
// It lives for the duration of one request; callers may persist it as a
// CrawledPage, but the extractor has no knowledge of persistence.
type ExtractedDocument struct {
	// URL is the normalized absolute URL the document was fetched from.
	URL string `json:"url"`

	// Title is best-effort and never empty: page title, then first h1,
	// then social-meta title, then the literal "Untitled".
	Title string `json:"title"`

	// Description comes from meta tags and may be absent.
	Description string `json:"description,omitempty"`

	// SiteName and Language are best-effort metadata enrichments.
	SiteName string `json:"site_name,omitempty"`
	Language string `json:"language,omitempty"`

	Headings Headings `json:"headings"`

	// Paragraphs keeps only paragraph text whose cleaned length exceeds
	// 20 characters, filtering boilerplate and short fragments.
	Paragraphs []string `json:"paragraphs"`

	// RawText is the full text of the detected main content region,
	// pre-normalization.
	RawText string `json:"raw_text"`

	// CleanedText is RawText after whitespace normalization. It contains
	// no tab or carriage-return characters and no run of two or more
	// literal spaces.
	CleanedText string `json:"cleaned_text"`

	Metadata DocumentMetadata `json:"metadata"`
}
