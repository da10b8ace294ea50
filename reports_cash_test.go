package rebalance

import (
	"errors"
	"testing"
)

func TestRebalanceCash_FundsMostUnderweightClassFirst(t *testing.T) {
	p := &Portfolio{
		Holdings: twoClassHoldings(),
		Targets:  twoClassTargets(),
	}

	// New total 7500: BND is 1000 below its 3000 target, EQT is above its
	// 4500 target. All 500 go to BND.
	report, err := p.RebalanceCash(M(500, "USD"), twoClassPrices())
	if err != nil {
		t.Fatalf("RebalanceCash() error = %v", err)
	}
	if !report.NewTotalValue.Equal(M(7500, "USD")) {
		t.Errorf("new total = %s, want 7500", report.NewTotalValue)
	}
	if len(report.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d: %v", len(report.Trades), report.Trades)
	}
	trade := report.Trades[0]
	if trade.Ticker != "BND" || trade.Action != TradeBuy || trade.Shares != 5 {
		t.Errorf("trade = %+v, want BUY 5 BND", trade)
	}
	if !report.RemainingCash.Equal(M(0, "USD")) {
		t.Errorf("remaining cash = %s, want 0", report.RemainingCash)
	}
}

func TestRebalanceCash_WaterfallAcrossClasses(t *testing.T) {
	// Both classes underweight against a cash-heavy portfolio: 1000 cash,
	// 2000 EQT, 1000 BND, plus 1000 new cash. New total 5000.
	// EQT target 3000, deficit 1000; BND target 2000, deficit 1000.
	// Budget is 2000 (new cash plus balance): both get filled, EQT first.
	p := &Portfolio{
		CashBalance: M(1000, "USD"),
		Holdings: []Holding{
			{Ticker: "EQT", Class: Equity, Currency: "USD", Trades: []Trade{
				buy(1, NewDate(2025, 1, 10), 4, 400),
			}},
			{Ticker: "BND", Class: Bond, Currency: "USD", Trades: []Trade{
				buy(2, NewDate(2025, 1, 10), 10, 90),
			}},
		},
		Targets: twoClassTargets(),
	}
	prices := twoClassPrices()

	report, err := p.RebalanceCash(M(1000, "USD"), prices)
	if err != nil {
		t.Fatalf("RebalanceCash() error = %v", err)
	}
	if len(report.Trades) != 2 {
		t.Fatalf("expected 2 trades, got %d: %v", len(report.Trades), report.Trades)
	}
	if report.Trades[0].Ticker != "EQT" || report.Trades[0].Shares != 2 {
		t.Errorf("first trade = %+v, want BUY 2 EQT (floor of 1000/500)", report.Trades[0])
	}
	if report.Trades[1].Ticker != "BND" || report.Trades[1].Shares != 10 {
		t.Errorf("second trade = %+v, want BUY 10 BND (floor of 1000/100)", report.Trades[1])
	}
	if !report.RemainingCash.Equal(M(0, "USD")) {
		t.Errorf("remaining cash = %s, want 0", report.RemainingCash)
	}
}

func TestRebalanceCash_BuysSingleLargestHoldingOfClass(t *testing.T) {
	// Two equity holdings: the cash buys only the one worth more.
	p := &Portfolio{
		Holdings: []Holding{
			{Ticker: "SML", Class: Equity, Currency: "USD", Trades: []Trade{
				buy(1, NewDate(2025, 1, 10), 5, 90),
			}},
			{Ticker: "BIG", Class: Equity, Currency: "USD", Trades: []Trade{
				buy(2, NewDate(2025, 1, 10), 20, 90),
			}},
		},
		Targets: []TargetAllocation{{Class: Equity, Percent: P(100)}},
	}
	prices := PriceMap{"SML": M(100, "USD"), "BIG": M(100, "USD")}

	report, err := p.RebalanceCash(M(300, "USD"), prices)
	if err != nil {
		t.Fatalf("RebalanceCash() error = %v", err)
	}
	if len(report.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d: %v", len(report.Trades), report.Trades)
	}
	if report.Trades[0].Ticker != "BIG" {
		t.Errorf("funded %s, want BIG (largest in class)", report.Trades[0].Ticker)
	}
}

func TestRebalanceCash_StopsBelowOneUnit(t *testing.T) {
	p := &Portfolio{
		Holdings: twoClassHoldings(),
		Targets:  twoClassTargets(),
	}
	report, err := p.RebalanceCash(M(0.5, "USD"), twoClassPrices())
	if err != nil {
		t.Fatalf("RebalanceCash() error = %v", err)
	}
	if len(report.Trades) != 0 {
		t.Errorf("expected no trades for half a unit, got %v", report.Trades)
	}
	if !report.RemainingCash.Equal(M(0.5, "USD")) {
		t.Errorf("remaining cash = %s, want 0.5", report.RemainingCash)
	}
}

func TestRebalanceCash_RejectsBadInput(t *testing.T) {
	valid := &Portfolio{Holdings: twoClassHoldings(), Targets: twoClassTargets()}

	if _, err := valid.RebalanceCash(M(-1, "USD"), twoClassPrices()); !errors.Is(err, ErrInvalidAllocation) {
		t.Errorf("negative cash error = %v, want ErrInvalidAllocation", err)
	}

	empty := &Portfolio{Targets: twoClassTargets()}
	if _, err := empty.RebalanceCash(M(100, "USD"), twoClassPrices()); !errors.Is(err, ErrInvalidAllocation) {
		t.Errorf("no holdings error = %v, want ErrInvalidAllocation", err)
	}

	if _, err := valid.RebalanceCash(M(0, "USD"), PriceMap{}); !errors.Is(err, ErrDegenerateValuation) {
		t.Errorf("zero total error = %v, want ErrDegenerateValuation", err)
	}
}
