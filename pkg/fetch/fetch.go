// Package fetch retrieves product pages and runs price extraction,
// retrying once with rotated browser headers when a site answers 403.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/pricewatch/pricewatch/internal/logger"
	"github.com/pricewatch/pricewatch/pkg/extract"
)

// Config holds fetch client configuration.
type Config struct {
	Timeout time.Duration // per-request timeout, default 10s
	Limiter *rate.Limiter // optional, shared across workers
	Rand    *rand.Rand    // optional randomness source for header rotation
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Timeout: 10 * time.Second}
}

// Client fetches pages and extracts their price. Safe for concurrent
// use; every attempt runs on a fresh collector.
type Client struct {
	cascade *extract.Cascade
	timeout time.Duration
	limiter *rate.Limiter

	rngMu sync.Mutex // rand.Rand is not goroutine-safe
	rng   *rand.Rand
}

// NewClient creates a fetch client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Client{
		cascade: extract.NewCascade(),
		timeout: cfg.Timeout,
		limiter: cfg.Limiter,
		rng:     rng,
	}
}

// FetchPrice retrieves the page at url and extracts its price.
//
// A 403 triggers exactly one retry with a rotated, fuller header set;
// any other non-success status or transport failure comes back as a
// typed error. A reachable page with no detectable price returns
// ErrPriceNotFound. Errors are per-URL and never panic, so batch
// callers can keep going.
func (c *Client) FetchPrice(ctx context.Context, url string) (decimal.Decimal, error) {
	if err := c.wait(ctx); err != nil {
		return decimal.Decimal{}, &TransportError{URL: url, Err: err}
	}

	logger.Debug("fetching", "url", url)
	body, status, err := c.get(url, baselineHeaders())

	if status == http.StatusForbidden {
		logger.Debug("blocked, retrying with rotated headers", "url", url)
		if err := c.wait(ctx); err != nil {
			return decimal.Decimal{}, &TransportError{URL: url, Bypassed: true, Err: err}
		}
		body, status, err = c.get(url, c.rotatedHeaders())
		if err != nil {
			return decimal.Decimal{}, classify(url, status, err, true)
		}
	} else if err != nil {
		return decimal.Decimal{}, classify(url, status, err, false)
	}

	amount, err := c.cascade.ExtractPrice(body)
	if err != nil {
		if errors.Is(err, extract.ErrNotFound) {
			return decimal.Decimal{}, ErrPriceNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("parsing %s: %w", url, err)
	}

	logger.Debug("price fetched", "url", url, "amount", amount)
	return amount, nil
}

// get performs a single GET attempt and returns the body, the HTTP
// status (0 when the request never reached a server), and any error.
func (c *Client) get(url string, headers map[string]string) (string, int, error) {
	co := colly.NewCollector(colly.IgnoreRobotsTxt())
	co.SetRequestTimeout(c.timeout)

	co.OnRequest(func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	})

	var (
		body     string
		status   int
		fetchErr error
	)
	co.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})
	co.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = err
	})

	if err := co.Visit(url); err != nil && fetchErr == nil {
		// Visit fails before any request on malformed URLs;
		// everything else arrives via OnError.
		fetchErr = err
	}
	co.Wait()

	return body, status, fetchErr
}

// classify maps an attempt failure onto the error taxonomy.
func classify(url string, status int, err error, bypassed bool) error {
	if status != 0 && (status < 200 || status >= 300) {
		return &HTTPError{URL: url, StatusCode: status, Bypassed: bypassed}
	}
	return &TransportError{URL: url, Bypassed: bypassed, Err: err}
}

func (c *Client) rotatedHeaders() map[string]string {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return browserHeaders(c.rng)
}

// wait blocks on the shared rate limiter, if one is configured.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
