package quotes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/rebalance"
)

const quoteFixture = `{
  "quoteResponse": {
    "result": [
      {"symbol": "EQT", "regularMarketPrice": 500.25, "currency": "USD"},
      {"symbol": "BND", "regularMarketPrice": 99.5, "currency": "USD"},
      {"symbol": "HALTED", "regularMarketPrice": 0, "currency": "USD"}
    ],
    "error": null
  }
}`

func TestClient_Prices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v7/finance/quote" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbols"); got != "EQT,BND,HALTED" {
			t.Errorf("symbols = %q, want %q", got, "EQT,BND,HALTED")
		}
		w.Write([]byte(quoteFixture))
	}))
	defer srv.Close()

	c := NewClientWith(srv.URL, srv.Client())
	prices, err := c.Prices([]string{"EQT", "BND", "HALTED"})
	if err != nil {
		t.Fatalf("Prices() error = %v", err)
	}

	if !prices.Price("EQT").Equal(rebalance.M(500.25, "USD")) {
		t.Errorf("EQT price = %s, want 500.25", prices.Price("EQT"))
	}
	if !prices.Price("BND").Equal(rebalance.M(99.5, "USD")) {
		t.Errorf("BND price = %s, want 99.5", prices.Price("BND"))
	}
	// A zero market price is no price at all.
	if !prices.Price("HALTED").IsZero() {
		t.Errorf("HALTED price = %s, want unpriced", prices.Price("HALTED"))
	}
}

func TestClient_Prices_NoSymbols(t *testing.T) {
	c := NewClientWith("http://invalid.test", nil)
	prices, err := c.Prices(nil)
	if err != nil {
		t.Fatalf("Prices() error = %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("expected empty snapshot, got %v", prices)
	}
}

func TestClient_Prices_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClientWith(srv.URL, srv.Client())
	if _, err := c.Prices([]string{"EQT"}); err == nil {
		t.Errorf("Prices() succeeded on a 429, want error")
	}
}
