package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/rebalance"
)

func samplePortfolio() (*rebalance.Portfolio, rebalance.PriceMap) {
	p := &rebalance.Portfolio{
		Holdings: []rebalance.Holding{
			{Ticker: "EQT", Name: "Equity Fund", Class: rebalance.Equity, Currency: "USD", Trades: []rebalance.Trade{
				{ID: 1, Date: rebalance.NewDate(2025, 1, 10), Type: rebalance.TradeBuy, Quantity: rebalance.Q(10), Price: rebalance.M(400, "USD")},
			}},
			{Ticker: "BND", Name: "Bond Fund", Class: rebalance.Bond, Currency: "USD", Trades: []rebalance.Trade{
				{ID: 2, Date: rebalance.NewDate(2025, 1, 10), Type: rebalance.TradeBuy, Quantity: rebalance.Q(20), Price: rebalance.M(90, "USD")},
			}},
		},
		Targets: []rebalance.TargetAllocation{
			{Class: rebalance.Equity, Percent: rebalance.P(60)},
			{Class: rebalance.Bond, Percent: rebalance.P(40)},
		},
	}
	prices := rebalance.PriceMap{"EQT": rebalance.M(500, "USD"), "BND": rebalance.M(100, "USD")}
	return p, prices
}

func TestHoldingsMarkdown(t *testing.T) {
	p, prices := samplePortfolio()
	md := HoldingsMarkdown(p, prices)

	for _, want := range []string{"# Holdings", "| EQT |", "| BND |", "Equity Fund", "**Total**"} {
		if !strings.Contains(md, want) {
			t.Errorf("holdings markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRebalanceMarkdown(t *testing.T) {
	p, prices := samplePortfolio()
	report, err := p.Rebalance(prices)
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	md := RebalanceMarkdown(report)

	for _, want := range []string{"# Rebalance Report", "## Allocations", "## Recommended Trades", "| SELL | EQT |", "| BUY | BND |", "Selling EQT consumes:"} {
		if !strings.Contains(md, want) {
			t.Errorf("rebalance markdown missing %q:\n%s", want, md)
		}
	}
}

func TestInvestMarkdown(t *testing.T) {
	p, prices := samplePortfolio()
	report, err := p.RebalanceCash(rebalance.M(500, "USD"), prices)
	if err != nil {
		t.Fatalf("RebalanceCash() error = %v", err)
	}
	md := InvestMarkdown(report)

	for _, want := range []string{"# Investment Plan", "| BUY | BND |", "Cash left uninvested"} {
		if !strings.Contains(md, want) {
			t.Errorf("invest markdown missing %q:\n%s", want, md)
		}
	}
}

func TestLotsMarkdown_Oversold(t *testing.T) {
	p := &rebalance.Portfolio{Holdings: []rebalance.Holding{{
		Ticker: "OVR",
		Trades: []rebalance.Trade{
			{ID: 1, Date: rebalance.NewDate(2025, 1, 10), Type: rebalance.TradeBuy, Quantity: rebalance.Q(5), Price: rebalance.M(100, "USD")},
			{ID: 2, Date: rebalance.NewDate(2025, 2, 1), Type: rebalance.TradeSell, Quantity: rebalance.Q(8), Price: rebalance.M(110, "USD")},
		},
	}}}
	report, err := p.NewLotReport("OVR")
	if err != nil {
		t.Fatalf("NewLotReport() error = %v", err)
	}
	md := LotsMarkdown(report)

	if !strings.Contains(md, "No open lots.") {
		t.Errorf("lots markdown missing empty-lot notice:\n%s", md)
	}
	if !strings.Contains(md, "Warning: 3 shares sold in excess") {
		t.Errorf("lots markdown missing oversold warning:\n%s", md)
	}
}

func TestGainsMarkdown(t *testing.T) {
	p, _ := samplePortfolio()
	eqt := p.Holding("EQT")
	eqt.Trades = append(eqt.Trades, rebalance.Trade{
		ID: 3, Date: rebalance.NewDate(2025, 2, 1), Type: rebalance.TradeSell,
		Quantity: rebalance.Q(2), Price: rebalance.M(450, "USD"),
	})
	report, err := p.NewLotReport("EQT")
	if err != nil {
		t.Fatalf("NewLotReport() error = %v", err)
	}
	md := GainsMarkdown(report)

	for _, want := range []string{"# Realized Gains for EQT", "| 3 | 1 | 2 |", "**Total**"} {
		if !strings.Contains(md, want) {
			t.Errorf("gains markdown missing %q:\n%s", want, md)
		}
	}
}
