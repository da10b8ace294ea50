package rebalance

import (
	"errors"
	"testing"
)

func buy(id int64, day Date, qty, price float64) Trade {
	return Trade{ID: id, Date: day, Type: TradeBuy, Quantity: Q(qty), Price: M(price, "USD")}
}

func sell(id int64, day Date, qty, price float64) Trade {
	return Trade{ID: id, Date: day, Type: TradeSell, Quantity: Q(qty), Price: M(price, "USD")}
}

func TestOpenLots_ConsumesHighestBasisFirst(t *testing.T) {
	trades := []Trade{
		buy(1, NewDate(2025, 1, 10), 10, 100),
		buy(2, NewDate(2025, 2, 10), 5, 120),
		sell(3, NewDate(2025, 3, 1), 8, 150),
	}

	open, err := OpenLots(trades)
	if err != nil {
		t.Fatalf("OpenLots() error = %v", err)
	}

	// The 5 shares at 120 go first, then 3 of the 10 shares at 100.
	if len(open) != 1 {
		t.Fatalf("expected 1 open lot, got %d: %v", len(open), open)
	}
	if open[0].TradeID != 1 {
		t.Errorf("open lot trade id = %d, want 1", open[0].TradeID)
	}
	if !open[0].RemainingQuantity.Equal(Q(7)) {
		t.Errorf("open lot remaining = %s, want 7", open[0].RemainingQuantity)
	}
	if !open[0].CostBasis.Equal(M(100, "USD")) {
		t.Errorf("open lot basis = %s, want 100", open[0].CostBasis)
	}
}

func TestRealizedDispositions_GainPerLot(t *testing.T) {
	trades := []Trade{
		buy(1, NewDate(2025, 1, 10), 10, 100),
		buy(2, NewDate(2025, 2, 10), 5, 120),
		sell(3, NewDate(2025, 3, 1), 8, 150),
	}

	dispositions, err := RealizedDispositions(trades)
	if err != nil {
		t.Fatalf("RealizedDispositions() error = %v", err)
	}
	if len(dispositions) != 2 {
		t.Fatalf("expected 2 dispositions, got %d: %v", len(dispositions), dispositions)
	}

	// First the whole 120-basis lot: (150-120)*5 = 150.
	d := dispositions[0]
	if d.BuyTradeID != 2 || !d.Quantity.Equal(Q(5)) || !d.RealizedGain.Equal(M(150, "USD")) {
		t.Errorf("first disposition = %+v, want buy 2, qty 5, gain 150", d)
	}
	// Then 3 shares of the 100-basis lot: (150-100)*3 = 150.
	d = dispositions[1]
	if d.BuyTradeID != 1 || !d.Quantity.Equal(Q(3)) || !d.RealizedGain.Equal(M(150, "USD")) {
		t.Errorf("second disposition = %+v, want buy 1, qty 3, gain 150", d)
	}
}

func TestBuildLots_AmortizesFeeIntoBasis(t *testing.T) {
	trades := []Trade{
		{ID: 1, Date: NewDate(2025, 1, 10), Type: TradeBuy, Quantity: Q(10), Price: M(100, "USD"), Fee: M(5, "USD")},
	}
	lots, err := BuildLots(trades)
	if err != nil {
		t.Fatalf("BuildLots() error = %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(lots))
	}
	if !lots[0].CostBasis.Equal(M(100.5, "USD")) {
		t.Errorf("basis = %s, want 100.5", lots[0].CostBasis)
	}
}

func TestRealizedDispositions_NetsSellFeeOutOfPrice(t *testing.T) {
	trades := []Trade{
		{ID: 1, Date: NewDate(2025, 1, 10), Type: TradeBuy, Quantity: Q(10), Price: M(100, "USD"), Fee: M(5, "USD")},
		{ID: 2, Date: NewDate(2025, 2, 1), Type: TradeSell, Quantity: Q(4), Price: M(120, "USD"), Fee: M(2, "USD")},
	}
	dispositions, err := RealizedDispositions(trades)
	if err != nil {
		t.Fatalf("RealizedDispositions() error = %v", err)
	}
	if len(dispositions) != 1 {
		t.Fatalf("expected 1 disposition, got %d", len(dispositions))
	}
	// Basis 100.5, net sell price 120 - 2/4 = 119.5, gain (119.5-100.5)*4 = 76.
	if !dispositions[0].RealizedGain.Equal(M(76, "USD")) {
		t.Errorf("gain = %s, want 76", dispositions[0].RealizedGain)
	}
}

func TestBuildLots_RejectsNonPositiveBuyQuantity(t *testing.T) {
	trades := []Trade{
		{ID: 1, Date: NewDate(2025, 1, 10), Type: TradeBuy, Quantity: Q(0), Price: M(100, "USD")},
	}
	if _, err := BuildLots(trades); !errors.Is(err, ErrInvalidTrade) {
		t.Errorf("BuildLots() error = %v, want ErrInvalidTrade", err)
	}
}

func TestLotReport_SurfacesOversoldQuantity(t *testing.T) {
	p := &Portfolio{Holdings: []Holding{{
		Ticker: "OVR",
		Trades: []Trade{
			buy(1, NewDate(2025, 1, 10), 5, 100),
			sell(2, NewDate(2025, 2, 1), 8, 110),
		},
	}}}

	report, err := p.NewLotReport("OVR")
	if err != nil {
		t.Fatalf("NewLotReport() error = %v", err)
	}
	if len(report.OpenLots) != 0 {
		t.Errorf("expected no open lots, got %v", report.OpenLots)
	}
	if !report.Oversold.Equal(Q(3)) {
		t.Errorf("oversold = %s, want 3", report.Oversold)
	}
	// Only the 5 covered shares realize a gain: (110-100)*5 = 50.
	if !report.TotalRealizedGain.Equal(M(50, "USD")) {
		t.Errorf("total gain = %s, want 50", report.TotalRealizedGain)
	}
}

func TestOpenLots_RemainingMatchesNetPosition(t *testing.T) {
	trades := []Trade{
		buy(1, NewDate(2025, 1, 1), 10, 100),
		buy(2, NewDate(2025, 1, 2), 20, 110),
		sell(3, NewDate(2025, 2, 1), 7, 120),
		buy(4, NewDate(2025, 3, 1), 5, 90),
		sell(5, NewDate(2025, 4, 1), 11, 130),
	}
	open, err := OpenLots(trades)
	if err != nil {
		t.Fatalf("OpenLots() error = %v", err)
	}

	var remaining Quantity
	for _, lot := range open {
		if !lot.RemainingQuantity.IsPositive() {
			t.Errorf("open lot %d has non-positive remaining %s", lot.TradeID, lot.RemainingQuantity)
		}
		remaining = remaining.Add(lot.RemainingQuantity)
	}
	// 35 bought, 18 sold.
	if !remaining.Equal(Q(17)) {
		t.Errorf("sum of remaining = %s, want 17", remaining)
	}
}

func TestOpenLots_ReplayIsIdempotent(t *testing.T) {
	trades := []Trade{
		buy(1, NewDate(2025, 1, 1), 10, 100),
		buy(2, NewDate(2025, 1, 2), 20, 110),
		sell(3, NewDate(2025, 2, 1), 7, 120),
	}
	first, err := OpenLots(trades)
	if err != nil {
		t.Fatalf("OpenLots() error = %v", err)
	}
	second, err := OpenLots(trades)
	if err != nil {
		t.Fatalf("OpenLots() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("replay changed lot count: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].TradeID != second[i].TradeID || !first[i].RemainingQuantity.Equal(second[i].RemainingQuantity) {
			t.Errorf("replay diverged at lot %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSortHIFO_EqualBasisOldestFirst(t *testing.T) {
	trades := []Trade{
		buy(2, NewDate(2025, 2, 1), 5, 100),
		buy(1, NewDate(2025, 1, 1), 5, 100),
		sell(3, NewDate(2025, 3, 1), 5, 110),
	}
	open, err := OpenLots(trades)
	if err != nil {
		t.Fatalf("OpenLots() error = %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open lot, got %d", len(open))
	}
	// Same basis: the January lot is consumed first, the February one stays.
	if open[0].TradeID != 2 {
		t.Errorf("surviving lot = %d, want 2", open[0].TradeID)
	}
}

func TestSelectLotsForSale_DoesNotConsume(t *testing.T) {
	lots := []Lot{
		{TradeID: 1, PurchaseDate: NewDate(2025, 1, 1), OriginalQuantity: Q(10), RemainingQuantity: Q(10), CostBasis: M(100, "USD")},
		{TradeID: 2, PurchaseDate: NewDate(2025, 2, 1), OriginalQuantity: Q(5), RemainingQuantity: Q(5), CostBasis: M(120, "USD")},
	}

	sales := SelectLotsForSale(lots, Q(8))

	if len(sales) != 2 {
		t.Fatalf("expected 2 lot sales, got %d: %v", len(sales), sales)
	}
	if sales[0].Lot.TradeID != 2 || !sales[0].Quantity.Equal(Q(5)) {
		t.Errorf("first sale = %+v, want 5 from lot 2", sales[0])
	}
	if sales[1].Lot.TradeID != 1 || !sales[1].Quantity.Equal(Q(3)) {
		t.Errorf("second sale = %+v, want 3 from lot 1", sales[1])
	}
	// The input lots keep their remaining quantities.
	if !lots[0].RemainingQuantity.Equal(Q(10)) || !lots[1].RemainingQuantity.Equal(Q(5)) {
		t.Errorf("preview mutated input lots: %v", lots)
	}
}
