package engine

import "time"

// SettlementResult carries the terminal market snapshot and the bets whose
// status changed. Bets already terminal (cash-outs, earlier refunds) pass
// through unchanged.
type SettlementResult struct {
	Market Market
	Bets   []Bet
}

// SettleMarket resolves the market to a winning outcome and computes every
// active bet's payout: winners collect their full potential payout (one
// unit per share), losers forfeit their stake. A terminal market is
// rejected with ErrAlreadyTerminal rather than silently recomputed, closing
// the double-settlement race; an unknown outcome id is rejected outright,
// never guessed.
func SettleMarket(m Market, winningOutcomeID string, bets []Bet, now time.Time) (SettlementResult, error) {
	if m.Terminal() {
		return SettlementResult{}, ErrAlreadyTerminal
	}
	if m.OutcomeIndex(winningOutcomeID) < 0 {
		return SettlementResult{}, ErrInvalidOutcome
	}

	settled := m.clone()
	settled.Status = MarketSettled
	settled.WinningOutcomeID = winningOutcomeID
	settled.SettlementValue = 1
	settled.SettledAt = now

	out := make([]Bet, len(bets))
	for i, bet := range bets {
		if bet.Status != BetActive {
			out[i] = bet
			continue
		}
		b := bet
		b.SettledAt = now
		if bet.OutcomeID == winningOutcomeID {
			b.Status = BetWon
			b.SettledAmount = bet.PotentialPayout
			b.ProfitLoss = bet.PotentialPayout - bet.Amount
		} else {
			b.Status = BetLost
			b.SettledAmount = 0
			b.ProfitLoss = -bet.Amount
		}
		out[i] = b
	}
	return SettlementResult{Market: settled, Bets: out}, nil
}

// VoidMarket cancels the market and refunds every active bet's stake in
// full. Voiding is the escape hatch for unresolvable or erroneous markets,
// so it is allowed whether or not betting has closed; only a market that
// already reached a terminal state is rejected. The reason is recorded
// verbatim for audit.
func VoidMarket(m Market, bets []Bet, reason string, now time.Time) (SettlementResult, error) {
	if m.Terminal() {
		return SettlementResult{}, ErrAlreadyTerminal
	}

	voided := m.clone()
	voided.Status = MarketVoided
	voided.SettlementNotes = reason
	voided.SettledAt = now

	out := make([]Bet, len(bets))
	for i, bet := range bets {
		if bet.Status != BetActive {
			out[i] = bet
			continue
		}
		b := bet
		b.Status = BetRefunded
		b.SettledAmount = bet.Amount
		b.ProfitLoss = 0
		b.SettledAt = now
		out[i] = b
	}
	return SettlementResult{Market: voided, Bets: out}, nil
}
