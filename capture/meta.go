package capture

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/pagegrab/browser"
	"github.com/use-agent/pagegrab/models"
)

// extractMeta scans every <meta> tag of the serialized page. For each
// recognised key the last matching tag wins: assignments keep overwriting
// in document order, so later tags shadow earlier ones.
func extractMeta(page browser.Page) (models.Meta, error) {
	markup, err := page.Content()
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	meta := models.Meta{}
	doc.Find("meta").Each(func(_ int, tag *goquery.Selection) {
		name := tag.AttrOr("name", "")
		property := tag.AttrOr("property", "")

		var value *string
		if content, ok := tag.Attr("content"); ok {
			value = &content
		}

		switch {
		case name == "description" || property == "og:description":
			meta[models.MetaDescription] = value
		case name == "keywords" || property == "og:keywords":
			meta[models.MetaKeywords] = value
		case property == "og:title":
			meta[models.MetaTitle] = value
		}
	})

	return meta, nil
}
