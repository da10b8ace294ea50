package rebalance

import (
	"errors"
	"testing"
)

func twoClassHoldings() []Holding {
	return []Holding{
		{Ticker: "EQT", Name: "Equity Fund", Class: Equity, Currency: "USD", Trades: []Trade{
			buy(1, NewDate(2025, 1, 10), 10, 400),
		}},
		{Ticker: "BND", Name: "Bond Fund", Class: Bond, Currency: "USD", Trades: []Trade{
			buy(2, NewDate(2025, 1, 10), 20, 90),
		}},
	}
}

func twoClassTargets() []TargetAllocation {
	return []TargetAllocation{
		{Class: Equity, Percent: P(60)},
		{Class: Bond, Percent: P(40)},
	}
}

func twoClassPrices() PriceMap {
	return PriceMap{"EQT": M(500, "USD"), "BND": M(100, "USD")}
}

func TestCompare_DriftAgainstTargets(t *testing.T) {
	// 10 EQT at 500 = 5000, 20 BND at 100 = 2000, total 7000.
	total, comparisons, err := Compare(twoClassHoldings(), twoClassTargets(), Money{}, twoClassPrices())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if !total.Equal(M(7000, "USD")) {
		t.Fatalf("total = %s, want 7000", total)
	}
	if len(comparisons) != 2 {
		t.Fatalf("expected 2 comparisons, got %d: %v", len(comparisons), comparisons)
	}

	tests := []struct {
		class      AssetClass
		currentPct Percent
		targetPct  Percent
		drift      Percent
		targetVal  Money
	}{
		{Equity, P(71.43), P(60), P(11.43), M(4200, "USD")},
		{Bond, P(28.57), P(40), P(-11.43), M(2800, "USD")},
	}
	for i, want := range tests {
		got := comparisons[i]
		if got.Class != want.class {
			t.Errorf("comparison %d class = %s, want %s", i, got.Class, want.class)
		}
		if !got.CurrentPercent.Equal(want.currentPct) {
			t.Errorf("%s current = %s, want %s", want.class, got.CurrentPercent, want.currentPct)
		}
		if !got.TargetPercent.Equal(want.targetPct) {
			t.Errorf("%s target = %s, want %s", want.class, got.TargetPercent, want.targetPct)
		}
		if !got.Drift.Equal(want.drift) {
			t.Errorf("%s drift = %s, want %s", want.class, got.Drift, want.drift)
		}
		if !got.TargetValue.Equal(want.targetVal) {
			t.Errorf("%s target value = %s, want %s", want.class, got.TargetValue, want.targetVal)
		}
	}
}

func TestCompare_CoversUnionOfClasses(t *testing.T) {
	// Commodity is held but untargeted; Cash is targeted but not held.
	holdings := append(twoClassHoldings(), Holding{
		Ticker: "GLD", Class: Commodity, Currency: "USD",
		Trades: []Trade{buy(3, NewDate(2025, 1, 10), 10, 100)},
	})
	targets := []TargetAllocation{
		{Class: Equity, Percent: P(55)},
		{Class: Bond, Percent: P(40)},
		{Class: Cash, Percent: P(5)},
	}
	prices := twoClassPrices()
	prices["GLD"] = M(100, "USD")

	_, comparisons, err := Compare(holdings, targets, Money{}, prices)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	classes := make([]AssetClass, 0, len(comparisons))
	for _, c := range comparisons {
		classes = append(classes, c.Class)
	}
	want := []AssetClass{Equity, Bond, Commodity, Cash}
	if len(classes) != len(want) {
		t.Fatalf("classes = %v, want %v", classes, want)
	}
	for i := range want {
		if classes[i] != want[i] {
			t.Fatalf("classes = %v, want %v", classes, want)
		}
	}
}

func TestCompare_RejectsZeroTotal(t *testing.T) {
	// Known tickers but no prices for them.
	_, _, err := Compare(twoClassHoldings(), twoClassTargets(), Money{}, PriceMap{})
	if !errors.Is(err, ErrDegenerateValuation) {
		t.Errorf("Compare() error = %v, want ErrDegenerateValuation", err)
	}
}

func TestCheckTargets(t *testing.T) {
	tests := []struct {
		name    string
		targets []TargetAllocation
		wantErr bool
	}{
		{"valid", twoClassTargets(), false},
		{"empty", nil, true},
		{"sum below 100", []TargetAllocation{{Class: Equity, Percent: P(60)}, {Class: Bond, Percent: P(39)}}, true},
		{"sum above 100", []TargetAllocation{{Class: Equity, Percent: P(60)}, {Class: Bond, Percent: P(41)}}, true},
		{"duplicate class", []TargetAllocation{{Class: Equity, Percent: P(60)}, {Class: Equity, Percent: P(40)}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTargets(tc.targets)
			if tc.wantErr && !errors.Is(err, ErrInvalidAllocation) {
				t.Errorf("CheckTargets() error = %v, want ErrInvalidAllocation", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("CheckTargets() error = %v, want nil", err)
			}
		})
	}
}
