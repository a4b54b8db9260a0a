// Package extract locates a product price inside arbitrary,
// uncontrolled HTML.
//
// Strategies run in fixed priority order, machine-readable sources
// first: meta tags, microdata, JSON-LD, then the visual heuristics
// (heading siblings, well-known class names). The first strategy that
// yields a valid amount wins; strategies are never combined.
package extract

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch/internal/logger"
)

// ErrNotFound indicates that no strategy produced a valid price.
var ErrNotFound = errors.New("no price found")

// Strategy attempts to pull a price out of a parsed document.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Extract reports the price and true on success. A miss (no
	// signal, or a value the normalizer rejects) reports false and
	// lets the cascade fall through to the next strategy.
	Extract(doc *goquery.Document) (decimal.Decimal, bool)
}

// Cascade evaluates strategies in priority order.
type Cascade struct {
	strategies []Strategy
}

// NewCascade returns the default cascade: meta tags, microdata,
// JSON-LD, heading siblings, class names.
func NewCascade() *Cascade {
	return &Cascade{
		strategies: []Strategy{
			metaTags{},
			microdata{},
			jsonLD{},
			headingSiblings{},
			classNames{},
		},
	}
}

// ExtractPrice parses the page body and runs the cascade over it.
// Returns ErrNotFound when every strategy misses.
func (c *Cascade) ExtractPrice(html string) (decimal.Decimal, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return c.ExtractFromDocument(doc)
}

// ExtractFromDocument runs the cascade over an already-parsed document.
func (c *Cascade) ExtractFromDocument(doc *goquery.Document) (decimal.Decimal, error) {
	for _, s := range c.strategies {
		if amount, ok := s.Extract(doc); ok {
			logger.Debug("price extracted", "strategy", s.Name(), "amount", amount)
			return amount, nil
		}
	}
	return decimal.Decimal{}, ErrNotFound
}
