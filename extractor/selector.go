package extractor

import (
	"bytes"
	"context"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/faqforge/faqforge/models"
)

// ApplyCSSSelector parses rawHTML, matches elements against the given CSS
// selector, and returns the concatenated outer HTML of all matched elements.
//
// If no elements match, the original rawHTML is returned unchanged so that
// downstream processing still has something to work with.
func ApplyCSSSelector(rawHTML string, selector string) (string, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	matches := cascadia.QueryAll(doc, sel)
	if len(matches) == 0 {
		return rawHTML, nil
	}

	var buf bytes.Buffer
	for _, node := range matches {
		if err := html.Render(&buf, node); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// ExtractSelection fetches the URL, narrows the HTML to the elements matched
// by the CSS selector, and parses the remainder into a structured document.
// An invalid selector is an input error, not a fetch failure.
func (e *Extractor) ExtractSelection(ctx context.Context, rawURL, selector string) (*models.ExtractedDocument, error) {
	target := NormalizeURL(rawURL)
	body, _, err := e.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	scoped, err := ApplyCSSSelector(string(body), selector)
	if err != nil {
		return nil, &models.InputError{Message: "invalid css selector: " + err.Error()}
	}
	return Parse(scoped, target)
}
