package fetch

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const productPage = `<html><head>
	<meta property="og:price:amount" content="19.99">
</head><body><h1>Widget</h1></body></html>`

func newTestClient() *Client {
	return NewClient(Config{
		Timeout: 2 * time.Second,
		Rand:    rand.New(rand.NewSource(1)),
	})
}

func TestFetchPrice_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(productPage))
	}))
	defer srv.Close()

	amount, err := newTestClient().FetchPrice(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchPrice() error = %v", err)
	}
	if amount.String() != "19.99" {
		t.Errorf("FetchPrice() = %s, want 19.99", amount)
	}
}

func TestFetchPrice_403ThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		// The bypass attempt must look like an organic browser visit.
		if r.Header.Get("Referer") != "https://www.google.com/" {
			t.Error("bypass attempt missing search engine referral")
		}
		if r.Header.Get("Upgrade-Insecure-Requests") != "1" {
			t.Error("bypass attempt missing browser headers")
		}
		_, _ = w.Write([]byte(productPage))
	}))
	defer srv.Close()

	amount, err := newTestClient().FetchPrice(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchPrice() error = %v", err)
	}
	if amount.String() != "19.99" {
		t.Errorf("FetchPrice() = %s, want 19.99", amount)
	}
	if got := attempts.Load(); got != 2 {
		t.Errorf("server saw %d attempts, want 2", got)
	}
}

func TestFetchPrice_DoubleForbidden(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient().FetchPrice(context.Background(), srv.URL)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("FetchPrice() error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", httpErr.StatusCode)
	}
	if !httpErr.Bypassed {
		t.Error("a second 403 must be reported as a bypass failure")
	}
	// Single retry, never a loop.
	if got := attempts.Load(); got != 2 {
		t.Errorf("server saw %d attempts, want 2", got)
	}
}

func TestFetchPrice_NonForbiddenStatusFailsImmediately(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient().FetchPrice(context.Background(), srv.URL)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("FetchPrice() error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", httpErr.StatusCode)
	}
	if httpErr.Bypassed {
		t.Error("non-403 failures must not be marked as bypass attempts")
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("server saw %d attempts, want 1", got)
	}
}

func TestFetchPrice_PriceMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>nothing for sale</p></body></html>`))
	}))
	defer srv.Close()

	_, err := newTestClient().FetchPrice(context.Background(), srv.URL)
	if !errors.Is(err, ErrPriceNotFound) {
		t.Fatalf("FetchPrice() error = %v, want ErrPriceNotFound", err)
	}
}

func TestFetchPrice_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient().FetchPrice(context.Background(), url)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("FetchPrice() error = %v, want *TransportError", err)
	}
}

func TestFetchPrice_BaselineUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != baselineUserAgent {
			t.Errorf("first attempt User-Agent = %q, want baseline", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(productPage))
	}))
	defer srv.Close()

	if _, err := newTestClient().FetchPrice(context.Background(), srv.URL); err != nil {
		t.Fatalf("FetchPrice() error = %v", err)
	}
}
