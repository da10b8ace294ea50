// Package quotes fetches market prices from a Yahoo-style quote gateway and
// exposes them as a price snapshot for the rebalancing engine. Responses are
// cached on disk with a daily expiry, so repeated report runs within a day
// do not hammer the gateway.
package quotes

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/rebalance"
)

// DefaultBaseURL is the quote gateway used when REBALANCE_QUOTE_URL is not set.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches quotes from one gateway. The zero value is not usable,
// construct it with NewClient.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the gateway at the REBALANCE_QUOTE_URL
// environment variable, or DefaultBaseURL. Responses expire daily.
func NewClient() *Client {
	base := os.Getenv("REBALANCE_QUOTE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{baseURL: base, client: daily()}
}

// NewClientWith creates a Client against an explicit gateway with an
// explicit http client, bypassing the cache. For tests.
func NewClientWith(baseURL string, client *http.Client) *Client {
	return &Client{baseURL: baseURL, client: client}
}

// Prices fetches a quote for every symbol and returns the snapshot.
// Symbols the gateway does not know are simply absent from the result;
// the engine treats them as unpriced.
func (c *Client) Prices(symbols []string) (rebalance.PriceMap, error) {
	if len(symbols) == 0 {
		return rebalance.PriceMap{}, nil
	}

	addr := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(strings.Join(symbols, ",")))
	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error fetching quotes for %v: %w", symbols, err)
	}

	jval, err := jsonpath.Get("$.quoteResponse.result", jobj)
	if err != nil {
		return nil, fmt.Errorf("unexpected quote response shape: %w", err)
	}
	results, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected quote response shape: result is %T", jval)
	}

	prices := make(rebalance.PriceMap, len(results))
	for _, r := range results {
		quote, ok := r.(map[string]any)
		if !ok {
			continue
		}
		symbol, ok := quote["symbol"].(string)
		if !ok {
			continue
		}
		price, ok := quote["regularMarketPrice"].(float64)
		if !ok || price == 0 {
			continue // no tradable price, leave the symbol unpriced
		}
		currency, _ := quote["currency"].(string)
		prices[symbol] = rebalance.M(price, currency)
	}
	return prices, nil
}
