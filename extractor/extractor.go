package extractor

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/faqforge/faqforge/config"
	"github.com/faqforge/faqforge/models"
)

// minParagraphLength filters boilerplate and short fragments: a paragraph is
// kept only when its cleaned length exceeds this many characters.
const minParagraphLength = 20

// noiseSelector lists the subtrees removed before any text extraction, so
// navigation chrome, banners and scripts never leak into the title, headings,
// paragraphs, or body text.
const noiseSelector = "script, style, nav, footer, header, aside, noscript, iframe, svg, " +
	".nav, .navbar, .navigation, .menu, .sidebar, .footer, .header, .banner, " +
	".breadcrumb, .cookie, .consent, .popup, .modal, .advertisement, .social, .share, " +
	"[role=navigation], [role=banner], [role=contentinfo], [role=complementary], [role=menu]"

// Extractor fetches a URL's HTML and reduces it to a structured document.
// It has no dependency on the FAQ synthesizer and performs pure
// transformation: no persistence, no minimum-content policy, no retries.
type Extractor struct {
	fetcher *Fetcher
}

// New creates an Extractor from fetch configuration.
func New(cfg config.FetchConfig) *Extractor {
	return &Extractor{fetcher: NewFetcher(cfg)}
}

// Extract normalizes the URL, fetches its HTML, and parses it into an
// ExtractedDocument. Failures fetching surface as *models.FetchError; the
// parse stage returns whatever it found, even if empty.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*models.ExtractedDocument, error) {
	target := NormalizeURL(rawURL)
	body, _, err := e.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	return Parse(string(body), target)
}

// Parse reduces raw HTML to a structured document. It is a pure
// transformation, independently testable without any network access.
func Parse(rawHTML, sourceURL string) (*models.ExtractedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, &models.FetchError{
			Kind:   models.FetchUnknown,
			URL:    sourceURL,
			Detail: "unparseable HTML",
			Err:    err,
		}
	}

	// Noise subtrees go first; everything below sees the denoised tree.
	doc.Find(noiseSelector).Remove()

	out := &models.ExtractedDocument{
		URL:        sourceURL,
		Title:      deriveTitle(doc),
		Headings:   collectHeadings(doc),
		Paragraphs: collectParagraphs(doc),
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		out.Description = CleanWhitespace(desc)
	}
	if out.Description == "" {
		if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
			out.Description = CleanWhitespace(desc)
		}
	}

	out.RawText = mainContentText(doc)
	out.CleanedText = CleanWhitespace(out.RawText)

	enrichMetadata(out, rawHTML, sourceURL)

	out.Metadata = models.DocumentMetadata{
		HeadingCount:      out.Headings.Count(),
		ParagraphCount:    len(out.Paragraphs),
		RawTextLength:     utf8.RuneCountInString(out.RawText),
		CleanedTextLength: utf8.RuneCountInString(out.CleanedText),
		TokenEstimate:     EstimateTokens(out.CleanedText),
		ExtractedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	return out, nil
}

// deriveTitle applies the ordered fallback chain: document title tag, first
// h1, social-meta title, then the literal "Untitled".
func deriveTitle(doc *goquery.Document) string {
	if t := CleanWhitespace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t := CleanWhitespace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t := CleanWhitespace(og); t != "" {
			return t
		}
	}
	return "Untitled"
}

// collectHeadings gathers h1-h6 text in document order per level, trimmed,
// with empty headings dropped. Duplicates are permitted.
func collectHeadings(doc *goquery.Document) models.Headings {
	collect := func(tag string) []string {
		items := []string{}
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			if t := CleanWhitespace(s.Text()); t != "" {
				items = append(items, t)
			}
		})
		return items
	}
	return models.Headings{
		H1: collect("h1"),
		H2: collect("h2"),
		H3: collect("h3"),
		H4: collect("h4"),
		H5: collect("h5"),
		H6: collect("h6"),
	}
}

// collectParagraphs gathers paragraph-tag text longer than the boilerplate
// threshold, cleaned and in document order.
func collectParagraphs(doc *goquery.Document) []string {
	paragraphs := []string{}
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		t := CleanWhitespace(s.Text())
		if utf8.RuneCountInString(t) > minParagraphLength {
			paragraphs = append(paragraphs, t)
		}
	})
	return paragraphs
}

// mainContentText selects the main content region by priority: article,
// then main, then the whole body.
func mainContentText(doc *goquery.Document) string {
	for _, sel := range []string{"article", "main", "body"} {
		if region := doc.Find(sel).First(); region.Length() > 0 {
			return region.Text()
		}
	}
	// Fragment without a body tag; fall back to everything.
	return doc.Text()
}
