package rebalance

// PriceProvider is the narrow contract a market-data collaborator fulfills.
// The engine tolerates missing symbols in the result and never retries or
// caches; both belong to the provider.
type PriceProvider interface {
	Prices(symbols []string) (PriceMap, error)
}

// PriceMap is a point-in-time price snapshot, by ticker.
type PriceMap map[string]Money

// Price returns the price for a ticker, or a zero amount when the snapshot
// has no entry. A zero price means "value unknown": valuation treats the
// position as worthless and recommendations skip it.
func (pm PriceMap) Price(ticker string) Money {
	return pm[ticker]
}

// StaticPrices is a PriceProvider over a fixed snapshot, for offline use
// and tests.
type StaticPrices PriceMap

// Prices implements PriceProvider.
func (s StaticPrices) Prices(symbols []string) (PriceMap, error) {
	result := make(PriceMap, len(symbols))
	for _, sym := range symbols {
		if price, ok := s[sym]; ok {
			result[sym] = price
		}
	}
	return result, nil
}
