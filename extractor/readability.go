package extractor

import (
	"context"
	"log/slog"
	nurl "net/url"
	"strings"
	"time"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"

	"github.com/faqforge/faqforge/models"
)

// enrichMetadata fills document metadata the goquery pipeline has no opinion
// on (site name, language, a description fallback) using the Mozilla
// Readability parser over the original HTML. Enrichment is best-effort: any
// failure leaves the document untouched.
func enrichMetadata(out *models.ExtractedDocument, rawHTML, sourceURL string) {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		return
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		slog.Debug("readability: metadata enrichment skipped", "url", sourceURL, "error", err)
		return
	}
	if out.Description == "" {
		out.Description = CleanWhitespace(article.Excerpt)
	}
	out.SiteName = CleanWhitespace(article.SiteName)
	out.Language = strings.TrimSpace(article.Language)
}

// ExtractReadability is the alternate extraction mode: it fetches the URL and
// runs the full Readability algorithm, keeping the structured pipeline only
// for headings and paragraphs. Useful for long-form articles where
// Readability's content scoring beats the region heuristic.
func (e *Extractor) ExtractReadability(ctx context.Context, rawURL string) (*models.ExtractedDocument, error) {
	target := NormalizeURL(rawURL)
	body, _, err := e.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	out, err := Parse(string(body), target)
	if err != nil {
		return nil, err
	}

	parsedURL, err := nurl.Parse(target)
	if err != nil {
		return out, nil
	}
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		slog.Warn("readability: extraction failed, keeping structured result",
			"url", target, "error", err,
		)
		return out, nil
	}

	if t := CleanWhitespace(article.Title); t != "" {
		out.Title = t
	}
	if strings.TrimSpace(article.TextContent) != "" {
		out.RawText = article.TextContent
		out.CleanedText = CleanWhitespace(article.TextContent)
		out.Metadata.RawTextLength = utf8.RuneCountInString(out.RawText)
		out.Metadata.CleanedTextLength = utf8.RuneCountInString(out.CleanedText)
		out.Metadata.TokenEstimate = EstimateTokens(out.CleanedText)
		out.Metadata.ExtractedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return out, nil
}
