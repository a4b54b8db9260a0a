// Package compare runs the fetch+extract pipeline over a tracked
// product and its competitors and classifies the result.
package compare

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch/internal/logger"
)

// Fetcher retrieves the price for a single URL.
type Fetcher interface {
	FetchPrice(ctx context.Context, url string) (decimal.Decimal, error)
}

// Product is a caller-owned tracked product. URLs are opaque,
// untrusted strings; the engine never persists the product.
type Product struct {
	URL         string    `json:"url" yaml:"url"`
	Competitors []string  `json:"competitors" yaml:"competitors"`
	LastUpdated time.Time `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

// Stale reports whether the product has not been refreshed within
// maxAge. Callers use this for retention; the engine does not.
func (p Product) Stale(maxAge time.Duration) bool {
	return time.Since(p.LastUpdated) > maxAge
}

// Outcome is the result of one fetch+extract attempt. Exactly one of
// Price and Err is set once the attempt completes.
type Outcome struct {
	URL   string
	Price *decimal.Decimal
	Err   error
}

// ProgressFunc receives fractional completion values in [0,1],
// monotonically non-decreasing: one per completed URL (the own URL
// counted first) plus a final 1.
type ProgressFunc func(fraction float64)

// Config controls the engine.
type Config struct {
	Concurrency int          // competitor fetch workers, default 3
	Progress    ProgressFunc // optional progress side channel
}

// Engine coordinates fetches and produces comparison reports.
type Engine struct {
	fetcher     Fetcher
	concurrency int
	progress    ProgressFunc
}

// NewEngine creates an engine around a fetcher.
func NewEngine(fetcher Fetcher, cfg Config) *Engine {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 3
	}
	progress := cfg.Progress
	if progress == nil {
		progress = func(float64) {}
	}
	return &Engine{
		fetcher:     fetcher,
		concurrency: cfg.Concurrency,
		progress:    progress,
	}
}

type indexedOutcome struct {
	index   int
	outcome Outcome
}

// Compare fetches the own URL first, then every competitor, and
// analyzes the full outcome set. Competitor fetches run concurrently
// under the worker limit, but outcome i always corresponds to
// competitors[i]. A failed URL never aborts the batch.
func (e *Engine) Compare(ctx context.Context, ownURL string, competitors []string) *Report {
	total := len(competitors) + 1
	e.progress(0)

	own := e.fetchOne(ctx, ownURL)
	completed := 1
	e.progress(float64(completed) / float64(total))

	outcomes := make([]Outcome, len(competitors))
	results := make(chan indexedOutcome)

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup
	for i, url := range competitors {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results <- indexedOutcome{index: i, outcome: e.fetchOne(ctx, url)}
		}(i, url)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Single aggregator: positional alignment and monotonic progress
	// hold regardless of completion order.
	for r := range results {
		outcomes[r.index] = r.outcome
		completed++
		e.progress(float64(completed) / float64(total))
	}
	e.progress(1)

	return Analyze(own, outcomes)
}

// CompareProduct is a convenience wrapper over Compare.
func (e *Engine) CompareProduct(ctx context.Context, p Product) *Report {
	return e.Compare(ctx, p.URL, p.Competitors)
}

func (e *Engine) fetchOne(ctx context.Context, url string) Outcome {
	amount, err := e.fetcher.FetchPrice(ctx, url)
	if err != nil {
		logger.Debug("fetch failed", "url", url, "error", err)
		return Outcome{URL: url, Err: err}
	}
	return Outcome{URL: url, Price: &amount}
}
