package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch/pkg/price"
)

// siblingWindow bounds how far past the heading the positional
// heuristic looks.
const siblingWindow = 5

// headingSiblings looks for a price in the elements immediately
// following the page's primary heading, where product pages usually
// place it.
type headingSiblings struct{}

func (headingSiblings) Name() string { return "heading-siblings" }

func (headingSiblings) Extract(doc *goquery.Document) (decimal.Decimal, bool) {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return decimal.Decimal{}, false
	}

	var (
		amount decimal.Decimal
		found  bool
	)
	h1.NextAll().EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= siblingWindow {
			return false
		}
		if a, ok := price.Parse(strings.TrimSpace(s.Text())); ok {
			amount, found = a, true
			return false
		}
		return true
	})
	return amount, found
}

// classNames matches well-known price class conventions. Prone to
// picking up promotional "sale price" text, so it runs last.
type classNames struct{}

var priceClasses = []string{
	"price",
	"product-price",
	"regular-price",
	"sales-price",
	"current-price",
	"woocommerce-Price-amount",
}

func (classNames) Name() string { return "class-names" }

func (classNames) Extract(doc *goquery.Document) (decimal.Decimal, bool) {
	for _, class := range priceClasses {
		sel := doc.Find("." + class).First()
		if sel.Length() == 0 {
			continue
		}
		if amount, ok := price.Parse(strings.TrimSpace(sel.Text())); ok {
			return amount, true
		}
	}
	return decimal.Decimal{}, false
}
