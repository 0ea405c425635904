package engine

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestPlaceBet_Success(t *testing.T) {
	m := testMarket(t)
	now := m.OpensAt.Add(time.Hour)
	trade, err := PlaceBet(m, PlaceBetParams{
		BetID:       "bet-1",
		UserID:      "user-1",
		OutcomeID:   "out-a",
		Amount:      10,
		MaxSlippage: 0.10,
		Now:         now,
	})
	if err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	bet := trade.Bet
	if bet.Status != BetActive {
		t.Fatalf("status=%s want=active", bet.Status)
	}
	if bet.PotentialPayout <= 0 {
		t.Fatalf("potentialPayout=%v want>0", bet.PotentialPayout)
	}
	// $10 at ~0.5 buys just under 20 shares.
	if bet.PotentialPayout < 19 || bet.PotentialPayout > 20 {
		t.Fatalf("potentialPayout=%v want~19.9", bet.PotentialPayout)
	}
	if math.Abs(bet.ProbabilityAtPlacement-0.5) > 1e-9 {
		t.Fatalf("probAtPlacement=%v want=0.5", bet.ProbabilityAtPlacement)
	}
	if bet.OddsAtPlacement != 2.00 {
		t.Fatalf("oddsAtPlacement=%v want=2.00", bet.OddsAtPlacement)
	}

	updated := trade.Market
	if updated.TotalVolume != 10 {
		t.Fatalf("totalVolume=%v want=10", updated.TotalVolume)
	}
	if updated.Outcomes[0].Quantity != bet.PotentialPayout {
		t.Fatalf("quantity=%v want=%v", updated.Outcomes[0].Quantity, bet.PotentialPayout)
	}
	// Buying one outcome reprices every outcome, not just the traded one.
	if updated.Outcomes[0].ImpliedProbability <= 0.5 {
		t.Fatalf("backed outcome prob=%v want>0.5", updated.Outcomes[0].ImpliedProbability)
	}
	if updated.Outcomes[1].ImpliedProbability >= 0.5 {
		t.Fatalf("other outcome prob=%v want<0.5", updated.Outcomes[1].ImpliedProbability)
	}
	// The input snapshot stays untouched.
	if m.Outcomes[0].Quantity != 0 || m.TotalVolume != 0 {
		t.Fatalf("input market mutated: %+v", m)
	}
}

func TestPlaceBet_ValidationOrder(t *testing.T) {
	m := testMarket(t)
	inside := m.OpensAt.Add(time.Hour)
	past := m.ClosesAt.Add(time.Minute)

	// A settled market reports MarketNotOpen even when the window has also
	// passed; the status check runs first.
	settled := m.clone()
	settled.Status = MarketSettled
	if _, err := PlaceBet(settled, PlaceBetParams{OutcomeID: "out-a", Amount: 10, Now: past}); !errors.Is(err, ErrMarketNotOpen) {
		t.Fatalf("err=%v want=ErrMarketNotOpen", err)
	}

	if _, err := PlaceBet(m, PlaceBetParams{OutcomeID: "out-a", Amount: 10, Now: past}); !errors.Is(err, ErrMarketClosed) {
		t.Fatalf("err=%v want=ErrMarketClosed", err)
	}

	if _, err := PlaceBet(m, PlaceBetParams{OutcomeID: "nope", Amount: 10, Now: inside}); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("err=%v want=ErrInvalidOutcome", err)
	}

	if _, err := PlaceBet(m, PlaceBetParams{OutcomeID: "out-a", Amount: 0, Now: inside}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err=%v want=ErrInvalidAmount", err)
	}
	if _, err := PlaceBet(m, PlaceBetParams{OutcomeID: "out-a", Amount: -50, Now: inside}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err=%v want=ErrInvalidAmount", err)
	}
}

func TestPlaceBet_SlippageExceeded(t *testing.T) {
	m := testMarket(t) // b = 100
	now := m.OpensAt.Add(time.Hour)
	_, err := PlaceBet(m, PlaceBetParams{
		BetID:       "bet-1",
		UserID:      "whale",
		OutcomeID:   "out-a",
		Amount:      100000,
		MaxSlippage: 0.05,
		Now:         now,
	})
	var slip *SlippageError
	if !errors.As(err, &slip) {
		t.Fatalf("err=%v want=SlippageError", err)
	}
	if slip.Observed <= slip.Max {
		t.Fatalf("observed=%v max=%v want observed > max", slip.Observed, slip.Max)
	}
	if slip.Max != 0.05 {
		t.Fatalf("max=%v want=0.05", slip.Max)
	}
}

func TestQuoteBet(t *testing.T) {
	m := testMarket(t)
	now := m.OpensAt.Add(time.Hour)
	quote, err := QuoteBet(m, "out-b", 50, now)
	if err != nil {
		t.Fatalf("QuoteBet: %v", err)
	}
	if quote.Shares <= 0 {
		t.Fatalf("shares=%v want>0", quote.Shares)
	}
	if quote.NewPrice <= quote.CurrentPrice {
		t.Fatalf("newPrice=%v currentPrice=%v want increase", quote.NewPrice, quote.CurrentPrice)
	}
	if quote.AveragePrice <= quote.CurrentPrice || quote.AveragePrice >= quote.NewPrice {
		t.Fatalf("averagePrice=%v outside (%v, %v)", quote.AveragePrice, quote.CurrentPrice, quote.NewPrice)
	}
	// Quoting never mutates the market.
	if m.Outcomes[1].Quantity != 0 {
		t.Fatalf("quote mutated market: %+v", m)
	}
}

func TestCashOutValue(t *testing.T) {
	m := testMarket(t)
	bet := Bet{
		ID:              "bet-1",
		MarketID:        m.ID,
		OutcomeID:       "out-a",
		Amount:          40,
		PotentialPayout: 100,
		Status:          BetActive,
	}
	// 100 shares at price 0.5, minus the 2% fee: 49.00.
	if got := CashOutValue(m, bet, 0.02); got != 49.00 {
		t.Fatalf("value=%v want=49.00", got)
	}

	inactive := bet
	inactive.Status = BetWon
	if got := CashOutValue(m, inactive, 0.02); got != 0 {
		t.Fatalf("value=%v want=0 for settled bet", got)
	}

	closed := m.clone()
	closed.Status = MarketVoided
	if got := CashOutValue(closed, bet, 0.02); got != 0 {
		t.Fatalf("value=%v want=0 for non-open market", got)
	}
}

func TestExecuteCashOut(t *testing.T) {
	m := testMarket(t)
	now := m.OpensAt.Add(2 * time.Hour)
	bet := Bet{
		ID:              "bet-1",
		MarketID:        m.ID,
		OutcomeID:       "out-a",
		Amount:          40,
		PotentialPayout: 100,
		Status:          BetActive,
	}
	out, err := ExecuteCashOut(m, bet, 0.02, now)
	if err != nil {
		t.Fatalf("ExecuteCashOut: %v", err)
	}
	if out.Status != BetCashedOut {
		t.Fatalf("status=%s want=cashed_out", out.Status)
	}
	if out.SettledAmount != 49.00 {
		t.Fatalf("settledAmount=%v want=49.00", out.SettledAmount)
	}
	if out.ProfitLoss != 9.00 {
		t.Fatalf("profitLoss=%v want=9.00", out.ProfitLoss)
	}
	if !out.SettledAt.Equal(now) {
		t.Fatalf("settledAt=%v want=%v", out.SettledAt, now)
	}
}

func TestExecuteCashOut_ZeroValue(t *testing.T) {
	m := testMarket(t)
	bet := Bet{
		ID:              "bet-1",
		MarketID:        m.ID,
		OutcomeID:       "out-a",
		Amount:          40,
		PotentialPayout: 0,
		Status:          BetActive,
	}
	if _, err := ExecuteCashOut(m, bet, 0.02, time.Now()); !errors.Is(err, ErrZeroValue) {
		t.Fatalf("err=%v want=ErrZeroValue", err)
	}
}

func TestExecuteCashOut_NotActive(t *testing.T) {
	m := testMarket(t)
	for _, status := range []BetStatus{BetCashedOut, BetWon, BetLost, BetRefunded} {
		bet := Bet{
			ID:              "bet-1",
			MarketID:        m.ID,
			OutcomeID:       "out-a",
			Amount:          40,
			PotentialPayout: 100,
			Status:          status,
		}
		if _, err := ExecuteCashOut(m, bet, 0.02, time.Now()); !errors.Is(err, ErrBetNotActive) {
			t.Fatalf("status=%s err=%v want=ErrBetNotActive", status, err)
		}
	}
}
