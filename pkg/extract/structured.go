package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch/internal/logger"
	"github.com/pricewatch/pricewatch/pkg/price"
)

// metaTags scans known price-bearing meta elements.
type metaTags struct{}

// Priority order: Twitter product cards, Open Graph, Facebook product
// markup.
var metaSelectors = []string{
	`meta[name="twitter:data1"]`,
	`meta[property="og:price:amount"]`,
	`meta[property="product:price:amount"]`,
}

func (metaTags) Name() string { return "meta-tags" }

func (metaTags) Extract(doc *goquery.Document) (decimal.Decimal, bool) {
	for _, sel := range metaSelectors {
		content, exists := doc.Find(sel).First().Attr("content")
		if !exists {
			continue
		}
		if amount, ok := price.Parse(content); ok {
			return amount, true
		}
	}
	return decimal.Decimal{}, false
}

// microdata reads the first element carrying a price itemprop.
type microdata struct{}

func (microdata) Name() string { return "microdata" }

func (microdata) Extract(doc *goquery.Document) (decimal.Decimal, bool) {
	sel := doc.Find(`[itemprop="price"]`).First()
	if sel.Length() == 0 {
		return decimal.Decimal{}, false
	}
	return price.Parse(strings.TrimSpace(sel.Text()))
}

// jsonLD reads the first embedded linked-data script block. A block
// that fails to parse is skipped, never an error for the page.
type jsonLD struct{}

func (jsonLD) Name() string { return "json-ld" }

func (jsonLD) Extract(doc *goquery.Document) (decimal.Decimal, bool) {
	sel := doc.Find(`script[type="application/ld+json"]`).First()
	if sel.Length() == 0 {
		return decimal.Decimal{}, false
	}

	var data any
	if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
		logger.Debug("skipping malformed structured data block", "error", err)
		return decimal.Decimal{}, false
	}

	if list, ok := data.([]any); ok {
		if len(list) == 0 {
			return decimal.Decimal{}, false
		}
		data = list[0]
	}

	root, ok := data.(map[string]any)
	if !ok {
		return decimal.Decimal{}, false
	}
	offers, ok := root["offers"].(map[string]any)
	if !ok {
		return decimal.Decimal{}, false
	}

	// schema.org allows both "price": "19.99" and "price": 19.99.
	switch v := offers["price"].(type) {
	case string:
		return price.Parse(v)
	case float64:
		return price.Parse(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return decimal.Decimal{}, false
}
