package engine

import (
	"errors"
	"testing"
	"time"
)

func TestSettleMarket_Payouts(t *testing.T) {
	m := testMarket(t)
	now := m.ClosesAt.Add(time.Hour)
	bets := []Bet{
		{ID: "bet-a", MarketID: m.ID, UserID: "u1", OutcomeID: "out-a", Amount: 100, PotentialPayout: 250, Status: BetActive},
		{ID: "bet-b", MarketID: m.ID, UserID: "u2", OutcomeID: "out-b", Amount: 100, PotentialPayout: 180, Status: BetActive},
	}

	res, err := SettleMarket(m, "out-a", bets, now)
	if err != nil {
		t.Fatalf("SettleMarket: %v", err)
	}
	if res.Market.Status != MarketSettled {
		t.Fatalf("status=%s want=settled", res.Market.Status)
	}
	if res.Market.WinningOutcomeID != "out-a" {
		t.Fatalf("winner=%s want=out-a", res.Market.WinningOutcomeID)
	}
	if res.Market.SettlementValue != 1 {
		t.Fatalf("settlementValue=%v want=1", res.Market.SettlementValue)
	}

	won := res.Bets[0]
	if won.Status != BetWon || won.SettledAmount != 250 || won.ProfitLoss != 150 {
		t.Fatalf("winning bet=%+v want won/250/150", won)
	}
	lost := res.Bets[1]
	if lost.Status != BetLost || lost.SettledAmount != 0 || lost.ProfitLoss != -100 {
		t.Fatalf("losing bet=%+v want lost/0/-100", lost)
	}
}

func TestSettleMarket_InvalidOutcome(t *testing.T) {
	m := testMarket(t)
	if _, err := SettleMarket(m, "out-z", nil, time.Now()); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("err=%v want=ErrInvalidOutcome", err)
	}
}

func TestSettleMarket_AlreadyTerminal(t *testing.T) {
	m := testMarket(t)
	res, err := SettleMarket(m, "out-a", nil, time.Now())
	if err != nil {
		t.Fatalf("first settle: %v", err)
	}
	if _, err := SettleMarket(res.Market, "out-a", nil, time.Now()); !errors.Is(err, ErrAlreadyTerminal) {
		t.Fatalf("err=%v want=ErrAlreadyTerminal", err)
	}
}

func TestSettleMarket_TerminalBetsPassThrough(t *testing.T) {
	m := testMarket(t)
	cashed := Bet{
		ID: "bet-c", MarketID: m.ID, OutcomeID: "out-a", Amount: 30,
		PotentialPayout: 60, Status: BetCashedOut, SettledAmount: 25, ProfitLoss: -5,
	}
	res, err := SettleMarket(m, "out-a", []Bet{cashed}, time.Now())
	if err != nil {
		t.Fatalf("SettleMarket: %v", err)
	}
	if res.Bets[0] != cashed {
		t.Fatalf("cashed-out bet changed: %+v", res.Bets[0])
	}
}

func TestVoidMarket_RefundsActiveBets(t *testing.T) {
	m := testMarket(t)
	now := time.Now().UTC()
	bets := []Bet{
		{ID: "b1", MarketID: m.ID, OutcomeID: "out-a", Amount: 50, PotentialPayout: 90, Status: BetActive},
		{ID: "b2", MarketID: m.ID, OutcomeID: "out-b", Amount: 75, PotentialPayout: 160, Status: BetActive},
		{ID: "b3", MarketID: m.ID, OutcomeID: "out-a", Amount: 20, PotentialPayout: 35, Status: BetActive},
	}

	res, err := VoidMarket(m, bets, "fixture abandoned", now)
	if err != nil {
		t.Fatalf("VoidMarket: %v", err)
	}
	if res.Market.Status != MarketVoided {
		t.Fatalf("status=%s want=voided", res.Market.Status)
	}
	if res.Market.SettlementNotes != "fixture abandoned" {
		t.Fatalf("notes=%q want verbatim reason", res.Market.SettlementNotes)
	}

	wantRefunds := []float64{50, 75, 20}
	for i, bet := range res.Bets {
		if bet.Status != BetRefunded {
			t.Fatalf("bet %d status=%s want=refunded", i, bet.Status)
		}
		if bet.SettledAmount != wantRefunds[i] {
			t.Fatalf("bet %d refund=%v want=%v", i, bet.SettledAmount, wantRefunds[i])
		}
		if bet.ProfitLoss != 0 {
			t.Fatalf("bet %d profitLoss=%v want=0", i, bet.ProfitLoss)
		}
	}
}

func TestVoidMarket_AllowedAfterClose(t *testing.T) {
	m := testMarket(t)
	// Past the betting window but not terminal: voiding is the escape hatch
	// and must still work.
	res, err := VoidMarket(m, nil, "unresolvable", m.ClosesAt.Add(72*time.Hour))
	if err != nil {
		t.Fatalf("VoidMarket: %v", err)
	}
	if res.Market.Status != MarketVoided {
		t.Fatalf("status=%s want=voided", res.Market.Status)
	}
}

func TestVoidMarket_AlreadyTerminal(t *testing.T) {
	m := testMarket(t)
	res, err := VoidMarket(m, nil, "first", time.Now())
	if err != nil {
		t.Fatalf("first void: %v", err)
	}
	if _, err := VoidMarket(res.Market, nil, "second", time.Now()); !errors.Is(err, ErrAlreadyTerminal) {
		t.Fatalf("err=%v want=ErrAlreadyTerminal", err)
	}
}
