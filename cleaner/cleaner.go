// Package cleaner converts the full-page body fallback into markdown or
// plain text on request: readability extracts the main content, then
// html-to-markdown renders it.
package cleaner

import (
	"fmt"
	"log/slog"
	nurl "net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	readability "github.com/go-shiori/go-readability"

	"github.com/use-agent/pagegrab/models"
)

// minContentLength is the minimum TextContent length (in characters) for
// readability output to be considered valid. Below this threshold we assume
// the algorithm failed to locate the main content and fall back to raw HTML.
const minContentLength = 50

// Cleaner renders raw page markup into the requested output format.
// The converter is created once and reused across requests (goroutine-safe).
type Cleaner struct {
	mdConverter *converter.Converter
}

// NewCleaner initialises the Cleaner with a pre-configured Markdown converter.
func NewCleaner() *Cleaner {
	return &Cleaner{
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				// base strips script, style, iframe, noscript, head and
				// comments; commonmark renders standard Markdown; the
				// table plugin keeps tabular structure with minimal
				// cell padding.
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
				),
			),
		),
	}
}

// Render converts rawHTML to the requested format ("markdown" or "text").
// Readability extracts the main content first; when it fails or yields too
// little text, the raw markup is used instead so the caller always gets
// something renderable.
func (c *Cleaner) Render(rawHTML, sourceURL, format string) (string, error) {
	article := extractArticle(rawHTML, sourceURL)

	switch format {
	case models.FormatMarkdown:
		return c.mdConverter.ConvertString(article.Content, converter.WithDomain(sourceURL))
	case models.FormatText:
		return article.TextContent, nil
	default:
		return "", fmt.Errorf("cleaner: unknown format %q", format)
	}
}

// extractArticle runs the Mozilla Readability algorithm. Invalid URL,
// extraction failure and too-short content all degrade to the raw markup.
func extractArticle(rawHTML, sourceURL string) readability.Article {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		slog.Warn("readability: invalid source URL, using raw HTML",
			"url", sourceURL, "error", err,
		)
		return fallbackArticle(rawHTML)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		slog.Warn("readability: extraction failed, using raw HTML",
			"url", sourceURL, "error", err,
		)
		return fallbackArticle(rawHTML)
	}

	if len(strings.TrimSpace(article.TextContent)) < minContentLength {
		slog.Warn("readability: extracted content too short, using raw HTML",
			"url", sourceURL, "length", len(article.TextContent),
		)
		return fallbackArticle(rawHTML)
	}

	return article
}

// fallbackArticle wraps raw HTML into an Article so rendering can proceed
// uniformly regardless of whether readability succeeded.
func fallbackArticle(rawHTML string) readability.Article {
	return readability.Article{
		Content:     rawHTML,
		TextContent: rawHTML,
	}
}
