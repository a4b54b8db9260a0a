package fetch

import (
	"errors"
	"fmt"
)

// ErrPriceNotFound reports a reachable page with no detectable price.
// This is a common, expected case for arbitrary third-party pages.
var ErrPriceNotFound = errors.New("price not found on the page or below minimum")

// HTTPError reports a non-success HTTP status.
type HTTPError struct {
	URL        string
	StatusCode int
	Bypassed   bool // status survived the 403 bypass retry
}

func (e *HTTPError) Error() string {
	if e.Bypassed {
		return fmt.Sprintf("fetching %s (with bypass): status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: status %d", e.URL, e.StatusCode)
}

// TransportError reports a network-level failure (DNS, refused
// connection, timeout) reaching a URL.
type TransportError struct {
	URL      string
	Bypassed bool // failure happened on the 403 bypass retry
	Err      error
}

func (e *TransportError) Error() string {
	if e.Bypassed {
		return fmt.Sprintf("fetching %s (with bypass): %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
