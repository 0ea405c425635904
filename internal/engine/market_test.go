package engine

import (
	"math"
	"testing"
	"time"
)

func testMarket(t *testing.T) Market {
	t.Helper()
	opens := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	closes := opens.Add(48 * time.Hour)
	m, err := NewMarket(
		"mkt-1",
		[]OutcomeSpec{{ID: "out-a", Label: "Home"}, {ID: "out-b", Label: "Away"}},
		[]float64{0.5, 0.5},
		100,
		opens, closes,
	)
	if err != nil {
		t.Fatalf("NewMarket: %v", err)
	}
	return m
}

func TestNewMarket_Defaults(t *testing.T) {
	m := testMarket(t)
	if m.Status != MarketOpen {
		t.Fatalf("status=%s want=open", m.Status)
	}
	if m.TotalLiquidity != 200 {
		t.Fatalf("totalLiquidity=%v want=200", m.TotalLiquidity)
	}
	for i, o := range m.Outcomes {
		if o.Quantity != 0 {
			t.Fatalf("outcome[%d] quantity=%v want=0", i, o.Quantity)
		}
		if o.ImpliedProbability != 0.5 {
			t.Fatalf("outcome[%d] prob=%v want=0.5", i, o.ImpliedProbability)
		}
	}
}

func TestNewMarket_RejectsSingleOutcome(t *testing.T) {
	now := time.Now()
	_, err := NewMarket("m", []OutcomeSpec{{ID: "only"}}, []float64{1}, 100, now, now.Add(time.Hour))
	if err == nil {
		t.Fatalf("expected error for 1 outcome")
	}
}

func TestNewMarket_RejectsNonPositiveLiquidity(t *testing.T) {
	now := time.Now()
	specs := []OutcomeSpec{{ID: "a"}, {ID: "b"}}
	if _, err := NewMarket("m", specs, []float64{0.5, 0.5}, 0, now, now.Add(time.Hour)); err == nil {
		t.Fatalf("expected error for b=0")
	}
	if _, err := NewMarket("m", specs, []float64{0.5, 0.5}, -10, now, now.Add(time.Hour)); err == nil {
		t.Fatalf("expected error for b<0")
	}
}

func TestNewMarket_RejectsBadWeights(t *testing.T) {
	now := time.Now()
	specs := []OutcomeSpec{{ID: "a"}, {ID: "b"}}
	if _, err := NewMarket("m", specs, []float64{0.9, 0.2}, 100, now, now.Add(time.Hour)); err == nil {
		t.Fatalf("expected error for weights summing past 1")
	}
	if _, err := NewMarket("m", specs, []float64{0.5}, 100, now, now.Add(time.Hour)); err == nil {
		t.Fatalf("expected error for weight count mismatch")
	}
}

func TestBettingOpen_DerivedClose(t *testing.T) {
	m := testMarket(t)
	if !m.BettingOpen(m.OpensAt.Add(time.Hour)) {
		t.Fatalf("expected betting open inside window")
	}
	// Closed is derived from the clock, not a stored transition.
	if m.BettingOpen(m.ClosesAt) {
		t.Fatalf("expected betting closed at close time")
	}
	if m.Status != MarketOpen {
		t.Fatalf("status changed to %s, close must stay implicit", m.Status)
	}
}

func TestImpliedProbabilitiesSumToOne_AfterTrades(t *testing.T) {
	m := testMarket(t)
	now := m.OpensAt.Add(time.Hour)
	for i, stake := range []float64{120, 75, 40} {
		trade, err := PlaceBet(m, PlaceBetParams{
			BetID:     "b",
			UserID:    "u",
			OutcomeID:   m.Outcomes[i%2].ID,
			Amount:      stake,
			MaxSlippage: 10,
			Now:         now,
		})
		if err != nil {
			t.Fatalf("bet %d: %v", i, err)
		}
		m = trade.Market
		sum := 0.0
		for _, o := range m.Outcomes {
			sum += o.ImpliedProbability
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Fatalf("bet %d: probabilities sum to %v", i, sum)
		}
	}
}
