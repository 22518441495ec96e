package extractor

import (
	"context"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// mdConverter is created once and reused; the converter is goroutine-safe.
//
//   - base plugin: strips script, style, iframe, noscript, head, meta, link
//     and HTML comments.
//   - commonmark plugin: standard Markdown rendering.
//   - table plugin: preserves table structure with minimal cell padding.
var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(
			table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
		),
	),
)

// Markdown fetches the URL and renders its HTML as Markdown. Relative links
// and image sources resolve against the page URL so the output is
// self-contained.
func (e *Extractor) Markdown(ctx context.Context, rawURL string) (string, error) {
	target := NormalizeURL(rawURL)
	body, _, err := e.fetcher.Fetch(ctx, target)
	if err != nil {
		return "", err
	}
	return mdConverter.ConvertString(string(body), converter.WithDomain(target))
}
