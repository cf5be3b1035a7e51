package capture

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/use-agent/pagegrab/browser"
	"github.com/use-agent/pagegrab/models"
)

// extractItems waits for the first item_selector match, then builds one
// record per matched element in document order. No match within the bound
// yields an empty slice, not an error.
func (c *Capturer) extractItems(page browser.Page, cfg models.ItemsConfig) ([]models.ItemRecord, error) {
	if _, err := page.WaitForSelector(cfg.ItemSelector, c.cfg.ItemsTimeout); err != nil {
		if errors.Is(err, browser.ErrWaitTimeout) {
			slog.Info("no items appeared within bound",
				"selector", cfg.ItemSelector,
				"timeout", c.cfg.ItemsTimeout,
			)
			return []models.ItemRecord{}, nil
		}
		return nil, err
	}

	items, err := page.QuerySelectorAll(cfg.ItemSelector)
	if err != nil {
		return nil, err
	}

	records := make([]models.ItemRecord, 0, len(items))
	for _, item := range items {
		rec := models.ItemRecord{}

		if cfg.TitleSelector != "" {
			title, err := childText(item, cfg.TitleSelector, "")
			if err != nil {
				return nil, err
			}
			rec.Title = &title
		}

		links, err := itemLinks(item)
		if err != nil {
			return nil, err
		}
		rec.Links = links

		if cfg.DateSelector != "" {
			date, err := childText(item, cfg.DateSelector, "no date")
			if err != nil {
				return nil, err
			}
			rec.Date = &date
		}

		records = append(records, rec)
	}

	return records, nil
}

// childText returns the collapsed text of the first descendant matching
// selector, or placeholder when nothing matches.
func childText(item browser.Element, selector, placeholder string) (string, error) {
	el, err := item.QuerySelector(selector)
	if err != nil {
		return "", err
	}
	if el == nil {
		return placeholder, nil
	}
	text, err := el.TextContent()
	if err != nil {
		return "", err
	}
	return collapseText(text), nil
}

// itemLinks collects every anchor href under item, in document order.
// An item without anchors yields a single empty string, never an empty
// slice; consumers rely on at least one entry per item.
func itemLinks(item browser.Element) ([]string, error) {
	anchors, err := item.QuerySelectorAll("a")
	if err != nil {
		return nil, err
	}
	if len(anchors) == 0 {
		return []string{""}, nil
	}

	links := make([]string, 0, len(anchors))
	for _, a := range anchors {
		href, err := a.GetAttribute("href")
		if err != nil {
			return nil, err
		}
		links = append(links, href)
	}
	return links, nil
}

// extractBody runs the three per-selector-list extractions independently.
//
// The fallbacks differ on purpose: with no body selectors the full page
// markup stands in for the body, while empty title/date lists produce a
// single empty-string entry.
func (c *Capturer) extractBody(page browser.Page, url string, cfg models.BodyConfig) (*models.BodyContent, error) {
	body := &models.BodyContent{}

	if len(cfg.BodySelectors) > 0 {
		results, err := c.selectorResults(page, cfg.BodySelectors)
		if err != nil {
			return nil, err
		}
		body.Body = results
	} else {
		markup, err := page.Content()
		if err != nil {
			return nil, err
		}
		content := c.renderFallback(markup, url, cfg.Format)
		body.Body = []models.SelectorResult{{Content: &content}}
	}

	var err error
	if body.Title, err = c.selectorResultsOrEmpty(page, cfg.TitleSelectors); err != nil {
		return nil, err
	}
	if body.Date, err = c.selectorResultsOrEmpty(page, cfg.DateSelectors); err != nil {
		return nil, err
	}

	return body, nil
}

// selectorResults waits for each selector in turn. A timeout appends a
// nil-content entry; a resolved selector appends its collapsed text,
// possibly empty. A selector that resolves during the wait but matches
// nothing on re-query appends nothing at all.
func (c *Capturer) selectorResults(page browser.Page, selectors []string) ([]models.SelectorResult, error) {
	results := make([]models.SelectorResult, 0, len(selectors))
	for _, selector := range selectors {
		sel := selector

		if _, err := page.WaitForSelector(selector, c.cfg.SelectorTimeout); err != nil {
			if errors.Is(err, browser.ErrWaitTimeout) {
				results = append(results, models.SelectorResult{Selector: &sel})
				continue
			}
			return nil, err
		}

		el, err := page.QuerySelector(selector)
		if err != nil {
			return nil, err
		}
		if el == nil {
			continue
		}

		text, err := el.TextContent()
		if err != nil {
			return nil, err
		}
		content := collapseText(text)
		results = append(results, models.SelectorResult{Selector: &sel, Content: &content})
	}
	return results, nil
}

// selectorResultsOrEmpty substitutes the empty-list placeholder: a single
// entry with nil selector and empty (not nil) content.
func (c *Capturer) selectorResultsOrEmpty(page browser.Page, selectors []string) ([]models.SelectorResult, error) {
	if len(selectors) == 0 {
		empty := ""
		return []models.SelectorResult{{Content: &empty}}, nil
	}
	return c.selectorResults(page, selectors)
}

// renderFallback applies the requested format to the full-page fallback
// markup. Cleaning failures degrade to the raw markup.
func (c *Capturer) renderFallback(markup, url, format string) string {
	if format == "" || format == models.FormatHTML || c.cleaner == nil {
		return markup
	}
	rendered, err := c.cleaner.Render(markup, url, format)
	if err != nil {
		slog.Warn("body fallback cleaning failed, returning raw markup",
			"url", url,
			"format", format,
			"error", err,
		)
		return markup
	}
	return rendered
}

// collapseText replaces newlines with spaces and trims surrounding
// whitespace.
func collapseText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
